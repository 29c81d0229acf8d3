package serve

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/rcsb/molpreset/pkg/logging"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// The handler serves a local embedding page; cross-origin use is
	// up to the deployment to front with its own checks.
	CheckOrigin: func(*http.Request) bool { return true },
}

// Handler upgrades to websocket and speaks the same request/response
// messages as the stdio loop, one JSON message per frame. The
// connection closes on a close request, a transport error, or
// context cancellation via the request.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logging.L()

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Warn("websocket upgrade failed", zap.Error(err))
			return
		}
		defer conn.Close()

		if err := s.writeWS(conn, Response{Success: true, Type: "ready", Data: mustMarshal(ReadyData{Version: Version})}); err != nil {
			return
		}

		ctx := r.Context()
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					log.Debug("websocket read ended", zap.Error(err))
				}
				return
			}

			var req Request
			if err := json.Unmarshal(msg, &req); err != nil {
				s.writeWS(conn, Response{Type: "error", Error: "decode: " + err.Error()})
				continue
			}

			resp, done := s.handle(ctx, req)
			if resp != nil {
				if err := s.writeWS(conn, *resp); err != nil {
					return
				}
			}
			if done {
				return
			}
		}
	})
}

func (s *Server) writeWS(conn *websocket.Conn, resp Response) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, data)
}

func mustMarshal(v any) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}
