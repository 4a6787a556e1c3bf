package frontend

import (
	"bytes"
	"net/http"
	"strconv"
	"sync"

	"raidlytics/backend"
	"raidlytics/player"
	"raidlytics/report"
	"raidlytics/share"
	"raidlytics/simstore"
	"raidlytics/tablesort"

	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var (
	json = jsoniter.ConfigCompatibleWithStandardLibrary

	respBufferPool = sync.Pool{
		New: func() interface{} {
			b := new(bytes.Buffer)
			b.Grow(16 * 1024)

			return b
		},
	}
)

func writeJSON(c *gin.Context, status int, v interface{}) {
	buf := respBufferPool.Get().(*bytes.Buffer)
	defer respBufferPool.Put(buf)
	buf.Reset()

	err := json.NewEncoder(buf).Encode(v)
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.Data(status, "application/json; charset=utf-8", buf.Bytes())
}

type errorResponse struct {
	Status share.Status `json:"status"`
	Error  string       `json:"error"`
}

// writeError maps an error onto a status code and a user-facing message.
// Only failures that are not the user's doing are reported.
func (h *Handler) writeError(c *gin.Context, err error) {
	resp := errorResponse{Status: share.StatusFailed}

	status := http.StatusInternalServerError
	if msg, ok := backend.ReportedMessage(err); ok {
		status = http.StatusUnprocessableEntity
		resp.Error = msg
	} else {
		switch {
		case errors.Is(err, tablesort.ErrUnknownKey),
			errors.Is(err, simstore.ErrNotNumber),
			errors.Is(err, share.ErrMissingInput):
			status = http.StatusBadRequest
			resp.Error = err.Error()
		case errors.Is(err, report.ErrNoExport),
			errors.Is(err, player.ErrNoExport):
			status = http.StatusNotFound
			resp.Error = err.Error()
		case backend.IsNetwork(err):
			status = http.StatusBadGateway
			resp.Error = "Failed to reach the log backend."
			share.Capture(h.log, err)
		default:
			resp.Error = "Unexpected error."
			share.Capture(h.log, err)
		}
	}

	writeJSON(c, status, &resp)
}

// sortState reads ?sort=key&dir=asc|desc. No sort key keeps the view's default order.
func sortState(c *gin.Context) *tablesort.State {
	key := c.Query("sort")
	if key == "" {
		return nil
	}
	return &tablesort.State{
		Key:       key,
		Direction: tablesort.ParseDirection(c.Query("dir")),
	}
}

func fightIDs(c *gin.Context) string {
	return c.DefaultQuery("fights", report.AllFights)
}

type simInput struct {
	Value string `json:"value" form:"value"`
}

func readSimInput(c *gin.Context) (string, error) {
	var in simInput
	if c.ContentType() == gin.MIMEJSON {
		err := json.NewDecoder(c.Request.Body).Decode(&in)
		if err != nil {
			return "", errors.Wrap(simstore.ErrNotNumber, "malformed body")
		}
		return in.Value, nil
	}
	return c.PostForm("value"), nil
}

//////////////////////////////////////////////////

func (h *Handler) routeFights(c *gin.Context) {
	v, err := h.reports.Fights(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, v)
}

func (h *Handler) routeDPS(c *gin.Context) {
	v, err := h.reports.DPS(c.Request.Context(), c.Param("code"), fightIDs(c), sortState(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, v)
}

func (h *Handler) routeHealing(c *gin.Context) {
	v, err := h.reports.Healing(c.Request.Context(), c.Param("code"), fightIDs(c), sortState(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, v)
}

func (h *Handler) routeGear(c *gin.Context) {
	missing, _ := strconv.ParseBool(c.DefaultQuery("missing", "false"))

	v, err := h.reports.Gear(c.Request.Context(), c.Param("code"), fightIDs(c), sortState(c), missing)
	if err != nil {
		h.writeError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, v)
}

func (h *Handler) routeGearXLSX(c *gin.Context) {
	code := c.Param("code")

	var buf bytes.Buffer
	err := h.reports.GearXLSX(c.Request.Context(), code, fightIDs(c), &buf)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="gear-`+code+`.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func (h *Handler) routeAudit(c *gin.Context) {
	text, err := h.reports.Audit(c.Request.Context(), c.Param("code"), fightIDs(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.String(http.StatusOK, text)
}

func (h *Handler) routeSim(c *gin.Context) {
	v, err := h.reports.Sim(c.Request.Context(), c.Param("code"), fightIDs(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, v)
}

func (h *Handler) routeSetSim(c *gin.Context) {
	input, err := readSimInput(c)
	if err != nil {
		h.writeError(c, err)
		return
	}

	v, err := h.reports.SetSim(c.Request.Context(), c.Param("code"), c.Param("player"), input)
	if err != nil {
		h.writeError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, v)
}

func (h *Handler) routeExport(c *gin.Context) {
	b, err := h.reports.Export(c.Request.Context(), c.Param("code"), fightIDs(c), c.Param("player"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", b)
}

//////////////////////////////////////////////////

func (h *Handler) routeGuild(c *gin.Context) {
	v, err := h.guilds.Summary(c.Request.Context(), c.Query("guild"), c.Query("server"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, v)
}

func (h *Handler) routeZones(c *gin.Context) {
	v, err := h.guilds.ZoneSummary(c.Request.Context(), c.Query("guild"), c.Query("server"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, v)
}

func (h *Handler) routePopulation(c *gin.Context) {
	server := c.Query("server")
	if server == "" {
		h.writeError(c, errors.Wrap(share.ErrMissingInput, "server is required"))
		return
	}

	v, err := h.guilds.RaidingPopulation(c.Request.Context(), server)
	if err != nil {
		h.writeError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, v)
}

//////////////////////////////////////////////////

func (h *Handler) routePlayer(c *gin.Context) {
	g, s, p := c.Query("guild"), c.Query("server"), c.Query("player")
	if g == "" || s == "" || p == "" {
		h.writeError(c, errors.Wrap(share.ErrMissingInput, "guild, server and player are required"))
		return
	}

	v, err := h.players.Lookup(c.Request.Context(), g, s, p)
	if err != nil {
		h.writeError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, v)
}

func (h *Handler) routePlayerSim(c *gin.Context) {
	var req struct {
		ReportCode string `json:"reportCode"`
		FightID    int    `json:"fightId"`
		Value      string `json:"value"`
	}
	err := json.NewDecoder(c.Request.Body).Decode(&req)
	if err != nil || req.ReportCode == "" {
		writeJSON(c, http.StatusBadRequest, &errorResponse{Status: share.StatusFailed, Error: "reportCode, fightId and value are required"})
		return
	}

	v, err := h.players.SetSim(c.Request.Context(), req.ReportCode, req.FightID, req.Value)
	if err != nil {
		h.writeError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, v)
}

func (h *Handler) routePlayerExport(c *gin.Context) {
	b, err := h.players.Export(c.Request.Context(), c.Query("guild"), c.Query("server"), c.Query("player"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", b)
}
