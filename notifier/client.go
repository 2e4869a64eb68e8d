package notifier

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/MixinNetwork/homes.one/uuid"
	"github.com/gorilla/websocket"
)

const (
	readWait       = 10 * time.Second
	writeWait      = 10 * time.Second
	pingPeriod     = 5 * time.Second
	maxMessageSize = 1024

	ActionEmit = "EMIT_NOTIFICATION"
)

type Message struct {
	Id     string      `json:"id"`
	Action string      `json:"action"`
	Data   interface{} `json:"data,omitempty"`
}

// Client is one listing stream. It only writes; incoming frames are read
// for pongs and close detection and otherwise ignored.
type Client struct {
	conn   *websocket.Conn
	cid    string
	events chan *EventResponse
	cancel context.CancelFunc
}

func NewClient(conn *websocket.Conn, id string, cancel context.CancelFunc) *Client {
	return &Client{
		conn:   conn,
		cid:    id,
		events: make(chan *EventResponse, 1024),
		cancel: cancel,
	}
}

func (client *Client) deliver(e *EventResponse) error {
	select {
	case client.events <- e:
		return nil
	case <-time.After(writeWait):
		return errors.New("timeout to deliver notifications to " + client.cid)
	}
}

func (client *Client) WritePump(ctx context.Context) error {
	defer client.conn.Close()
	pingTicker := time.NewTicker(pingPeriod)
	defer pingTicker.Stop()

	for {
		select {
		case e := <-client.events:
			for _, n := range e.Notifications {
				if err := client.write(ctx, e.Source, n); err != nil {
					return err
				}
			}
		case <-pingTicker.C:
			deadline := time.Now().Add(writeWait)
			if err := client.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (client *Client) write(ctx context.Context, source string, n *Notification) error {
	data, err := json.Marshal(Message{
		Id:     uuid.Nil.String(),
		Action: ActionEmit,
		Data: map[string]interface{}{
			"source":       source,
			"notification": n,
		},
	})
	if err != nil {
		return err
	}
	if err := client.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	w, err := client.conn.NextWriter(websocket.BinaryMessage)
	if err != nil {
		return err
	}
	gz, err := gzip.NewWriterLevel(w, 3)
	if err != nil {
		return err
	}
	if _, err := gz.Write(data); err != nil {
		return err
	}
	if err := gz.Close(); err != nil {
		return err
	}
	return w.Close()
}

func (client *Client) ReadPump(ctx context.Context) error {
	defer client.cancel()
	client.conn.SetReadLimit(maxMessageSize)
	client.conn.SetPongHandler(func(string) error {
		return client.conn.SetReadDeadline(time.Now().Add(readWait))
	})
	for {
		if err := client.conn.SetReadDeadline(time.Now().Add(readWait)); err != nil {
			return err
		}
		if _, _, err := client.conn.NextReader(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				return err
			}
			return nil
		}
	}
}
