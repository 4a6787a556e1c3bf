package frontend

import (
	"context"
	"strings"
	"time"

	"raidlytics/compare"

	"github.com/dpapathanasiou/go-recaptcha"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

func (h *Handler) routeCompare(c *gin.Context) {
	ctx, ctxCancel := context.WithCancel(c.Request.Context())
	defer ctxCancel()

	ws, err := websocketUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Debug("websocket upgrade", "error", err.Error())
		return
	}
	defer ws.Close()

	////////////////////////////////////////////////////////////////////////////////////////////////////

	if h.recaptcha {
		ws.SetReadDeadline(time.Now().Add(10 * time.Second))
		_, msg, err := ws.ReadMessage()
		if err != nil {
			h.log.Debug("recaptcha token", "error", err.Error())
			return
		}

		ok, err := recaptcha.Confirm(remoteAddr(c), string(msg))
		if err != nil || !ok {
			return
		}
		ws.SetReadDeadline(time.Time{})
	}

	////////////////////////////////////////////////////////////////////////////////////////////////////

	s := newSession(ws, compare.NewView(h.compareAPI, h.log), h.log)
	s.Ready()

	go s.ping(ctx, ctxCancel)

	for {
		var cmd command
		err = ws.ReadJSON(&cmd)
		if err != nil {
			break
		}
		s.dispatch(ctx, cmd)
	}

	ctxCancel()
	s.Wait()

	s.lock.Lock()
	err = ws.WriteMessage(websocket.CloseMessage, websockEmptyClosure)
	s.lock.Unlock()
	if err != nil && err != websocket.ErrCloseSent {
		h.log.Debug("websocket close", "error", err.Error())
	}
}

func remoteAddr(c *gin.Context) string {
	var remoteAddr string
	if v := c.GetHeader("X-Forwarded-For"); v != "" {
		remoteAddr = v
	}
	if remoteAddr == "" {
		if v := c.GetHeader("X-Real-Ip"); v != "" {
			remoteAddr = v
		}
	}
	if remoteAddr == "" {
		remoteAddr = c.Request.RemoteAddr
		if idx := strings.LastIndexByte(remoteAddr, ':'); idx >= 0 {
			remoteAddr = remoteAddr[:idx]
		}
	}
	return remoteAddr
}
