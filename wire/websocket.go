package wire

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Websocket sends one message per binary websocket message.
type Websocket struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// DialWebsocket connects to a device listening at url.
func DialWebsocket(ctx context.Context, url string) (*Websocket, error) {
	c, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	return &Websocket{conn: c}, nil
}

// Handler upgrades requests to websockets and calls serve with each
// connection. The connection is closed when serve returns.
func Handler(serve func(c Conn), log *zap.Logger) http.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Warn("websocket upgrade", zap.Error(err))
			return
		}
		log.Info("host connected", zap.String("remote", r.RemoteAddr))
		ws := &Websocket{conn: c}
		defer ws.Close()
		serve(ws)
	}
}

func (w *Websocket) Send(m Message) error {
	data, err := Encode(m)
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conn.WriteMessage(websocket.BinaryMessage, data)
}

func (w *Websocket) Receive() (Message, error) {
	for {
		typ, data, err := w.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil, io.EOF
			}
			return nil, err
		}
		if typ != websocket.BinaryMessage {
			continue
		}
		return Decode(data)
	}
}

func (w *Websocket) Close() error {
	w.mu.Lock()
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	err := w.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	w.mu.Unlock()
	if cerr := w.conn.Close(); err == nil || errors.Is(err, websocket.ErrCloseSent) {
		err = cerr
	}
	return err
}
