package chat

import (
	"bytes"
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // validate the origin when exposed beyond localhost
	},
}

// WSHandler upgrades HTTP requests and feeds the resulting connections
// through the same codec and event loop as the TCP listener.
func (s *Server) WSHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			s.logger.Warn("websocket upgrade failed", "error", err)
			return
		}
		s.attach(&wsTransport{conn: conn})
	})
}

// wsTransport adapts a websocket connection to the line transport. A
// text message without a trailing newline counts as one complete line.
type wsTransport struct {
	conn *websocket.Conn
}

func (t *wsTransport) Read() ([]byte, error) {
	_, data, err := t.conn.ReadMessage()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 || data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	return data, nil
}

func (t *wsTransport) WriteLine(line []byte) error {
	return t.conn.WriteMessage(websocket.TextMessage, bytes.TrimSuffix(line, []byte("\n")))
}

func (t *wsTransport) Close() error { return t.conn.Close() }

func (t *wsTransport) RemoteAddr() string { return t.conn.RemoteAddr().String() }
