package frontend

import (
	"bytes"
	"context"
	"sync"
	"time"

	"raidlytics/backend"
	"raidlytics/compare"
	"raidlytics/share"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
)

var (
	eventReady = []byte(`{"event":"ready"}`)
)

type command struct {
	Cmd    string `json:"cmd"`
	Code   string `json:"code"`
	Fight  string `json:"fight"`
	Player string `json:"player"`
	Metric string `json:"metric"`
}

type event struct {
	Event string      `json:"event"`
	Cmd   string      `json:"cmd,omitempty"`
	Data  interface{} `json:"data,omitempty"`
}

type completeData struct {
	HTML   string              `json:"html"`
	Result *compare.Comparison `json:"result"`
}

// session is one websocket client driving its own compare view.
type session struct {
	lock sync.Mutex
	ws   *websocket.Conn
	log  share.Logger

	view *compare.View
	wg   sync.WaitGroup
}

func newSession(ws *websocket.Conn, view *compare.View, log share.Logger) *session {
	return &session{
		ws:   ws,
		log:  log,
		view: view,
	}
}

func (s *session) writeMessage(b []byte) {
	s.lock.Lock()
	defer s.lock.Unlock()

	err := s.ws.WriteMessage(websocket.TextMessage, b)
	if err != nil && err != websocket.ErrCloseSent {
		s.log.Debug("websocket write", "error", err.Error())
	}
}

func (s *session) send(e event) {
	buf := respBufferPool.Get().(*bytes.Buffer)
	defer respBufferPool.Put(buf)
	buf.Reset()

	err := json.NewEncoder(buf).Encode(&e)
	if err != nil {
		share.Capture(s.log, errors.WithStack(err))
		return
	}
	s.writeMessage(buf.Bytes())
}

func (s *session) Ready() {
	s.writeMessage(eventReady)
}

func (s *session) Start(cmd string) {
	s.send(event{Event: "start", Cmd: cmd})
}

func (s *session) Error(cmd string, msg string) {
	s.send(event{Event: "error", Cmd: cmd, Data: msg})
}

func (s *session) Succ(c *compare.Comparison) {
	html, err := renderComparison(c)
	if err != nil {
		share.Capture(s.log, err)
		s.Error("compare", "Failed to render comparison.")
		return
	}
	s.send(event{Event: "complete", Cmd: "compare", Data: completeData{HTML: html, Result: c}})
}

// ping keeps the connection alive and cancels the session when the peer is gone.
func (s *session) ping(ctx context.Context, ctxCancel context.CancelFunc) {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.lock.Lock()
			err := s.ws.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(5*time.Second))
			s.lock.Unlock()
			if err != nil {
				ctxCancel()
				return
			}

		case <-ctx.Done():
			return
		}
	}
}

func commandMessage(err error) string {
	switch {
	case errors.Is(err, compare.ErrBusy):
		return "busy"
	case errors.Is(err, compare.ErrStale):
		return "stale"
	case errors.Is(err, compare.ErrIncomplete):
		return "Select a report, a fight and a player first."
	}
	return err.Error()
}

// dispatch applies a command. Fetching commands run in the background so a
// repeated click while one is in flight is answered with "busy".
func (s *session) dispatch(ctx context.Context, cmd command) {
	switch cmd.Cmd {
	case "player":
		s.view.SelectPlayer(cmd.Player)
		return

	case "metric":
		err := s.view.SetMetric(backend.Metric(cmd.Metric))
		if err != nil {
			s.Error(cmd.Cmd, err.Error())
		}
		return

	case "load":
		s.run(
			ctx, cmd.Cmd,
			func(ctx context.Context) error { return s.view.LoadFights(ctx, cmd.Code) },
			func(st compare.State) {
				s.send(event{Event: "fights", Data: compare.FightOptions(st.Fights)})
			},
		)

	case "fight":
		s.run(
			ctx, cmd.Cmd,
			func(ctx context.Context) error { return s.view.SelectFight(ctx, cmd.Fight) },
			func(st compare.State) {
				s.send(event{Event: "players", Data: compare.PlayerOptions(st.Players)})
			},
		)

	case "compare":
		s.run(ctx, cmd.Cmd, s.view.Compare, func(st compare.State) {
			if st.Result != nil {
				s.Succ(st.Result)
			}
		})

	default:
		s.Error(cmd.Cmd, "unknown command")
	}
}

func (s *session) run(ctx context.Context, name string, fn func(context.Context) error, done func(compare.State)) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		s.Start(name)
		err := fn(ctx)
		if err != nil {
			s.Error(name, commandMessage(err))
			return
		}

		st := s.view.State()
		if st.Error != "" {
			s.Error(name, st.Error)
			return
		}
		done(st)
	}()
}

func (s *session) Wait() {
	s.wg.Wait()
}
