package notifier

import (
	"context"
	"net/http"
	"time"

	"github.com/MixinNetwork/homes.one/uuid"
	"github.com/gorilla/websocket"
	"github.com/unrolled/render"
)

var upgrader = websocket.Upgrader{
	HandshakeTimeout: 60 * time.Second,
	ReadBufferSize:   1024,
	WriteBufferSize:  1024,
	CheckOrigin:      func(r *http.Request) bool { return true },
	Error: func(w http.ResponseWriter, r *http.Request, status int, reason error) {
		render.New().JSON(w, status, map[string]interface{}{"error": reason.Error()})
	},
}

// Serve upgrades r to a websocket subscribed to channel and blocks until the
// connection closes.
func (hub *Hub) Serve(w http.ResponseWriter, r *http.Request, channel string) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	client := NewClient(conn, uuid.NewV4String(), cancel)
	if err := hub.Register(ctx, client); err != nil {
		return err
	}
	defer hub.Unregister(client)
	if err := hub.Subscribe(ctx, channel, client.cid); err != nil {
		return err
	}
	go client.WritePump(ctx)
	return client.ReadPump(ctx)
}
