package frontend

import (
	"net/http"

	"raidlytics/compare"
	"raidlytics/guild"
	"raidlytics/logger"
	"raidlytics/player"
	"raidlytics/report"
	"raidlytics/share"

	"github.com/dpapathanasiou/go-recaptcha"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var (
	websocketUpgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}
	websockEmptyClosure = websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
)

// Handler serves the dashboard views over one shared backend.
type Handler struct {
	log share.Logger

	compareAPI compare.Backend
	reports    *report.Service
	players    *player.Service
	guilds     *guild.Service

	recaptcha bool
}

type Options struct {
	Log        share.Logger
	CompareAPI compare.Backend
	Reports    *report.Service
	Players    *player.Service
	Guilds     *guild.Service
	// RecaptchaSecret gates the compare websocket when set.
	RecaptchaSecret string
}

func New(opt Options) *Handler {
	if opt.Log == nil {
		opt.Log = logger.Discard()
	}

	h := &Handler{
		log:        opt.Log,
		compareAPI: opt.CompareAPI,
		reports:    opt.Reports,
		players:    opt.Players,
		guilds:     opt.Guilds,
	}
	if opt.RecaptchaSecret != "" {
		recaptcha.Init(opt.RecaptchaSecret)
		h.recaptcha = true
	}
	return h
}

func (h *Handler) Route(g *gin.Engine) {
	g.Use(gin.ErrorLogger())
	g.Use(gin.Recovery())

	g.NoMethod(func(c *gin.Context) { c.AbortWithStatus(http.StatusMethodNotAllowed) })
	g.NoRoute(func(c *gin.Context) { c.AbortWithStatus(http.StatusNotFound) })

	g.GET("/compare", h.routeCompare)

	v := g.Group("/view")

	r := v.Group("/report/:code")
	r.GET("/fights", h.routeFights)
	r.GET("/dps", h.routeDPS)
	r.GET("/healing", h.routeHealing)
	r.GET("/gear", h.routeGear)
	r.GET("/gear.xlsx", h.routeGearXLSX)
	r.GET("/audit", h.routeAudit)
	r.GET("/sim", h.routeSim)
	r.PUT("/sim/:player", h.routeSetSim)
	r.GET("/export/:player", h.routeExport)

	v.GET("/guild", h.routeGuild)
	v.GET("/zones", h.routeZones)
	v.GET("/population", h.routePopulation)

	v.GET("/player", h.routePlayer)
	v.PUT("/player/sim", h.routePlayerSim)
	v.GET("/player/export", h.routePlayerExport)
}
