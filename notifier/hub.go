package notifier

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MixinNetwork/homes.one/config"
	"github.com/emirpasic/gods/lists/arraylist"
)

const (
	SourceListPending = "LIST_PENDING_NOTIFICATIONS"
	SourceEmit        = "EMIT_NOTIFICATION"

	recentLimit = 16
)

type Notification struct {
	Channel   string    `json:"channel"`
	Severity  string    `json:"severity"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`

	from *Channel
}

type Subscription struct {
	channel string
	cid     string
}

type Member struct {
	client   *Client
	channels map[string]time.Time
}

type EventResponse struct {
	Channel       string
	Source        string
	Notifications []*Notification
}

// Hub fans notifications out to the websocket clients subscribed to a
// channel. Every open channel keeps its latest notifications so a client
// that subscribes late still receives them.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	subscribe  chan *Subscription
	forget     chan string
	publish    chan *Notification
	named      sync.Map
}

func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		subscribe:  make(chan *Subscription, 64),
		forget:     make(chan string, 64),
		publish:    make(chan *Notification, 8192),
	}
}

func (hub *Hub) Run(ctx context.Context) error {
	members := make(map[string]*Member)
	channels := make(map[string]map[string]time.Time)
	recent := make(map[string]*arraylist.List)

	for {
		select {
		case client := <-hub.register:
			if _, found := members[client.cid]; !found {
				members[client.cid] = &Member{client, make(map[string]time.Time)}
			}
		case client := <-hub.unregister:
			member, found := members[client.cid]
			if !found {
				continue
			}
			delete(members, client.cid)
			for channel := range member.channels {
				delete(channels[channel], client.cid)
				if len(channels[channel]) == 0 {
					delete(channels, channel)
				}
			}
			client.cancel()
		case sub := <-hub.subscribe:
			member, found := members[sub.cid]
			if !found {
				continue
			}
			if _, found := member.channels[sub.channel]; found {
				continue
			}
			if _, found := channels[sub.channel]; !found {
				channels[sub.channel] = make(map[string]time.Time)
			}
			channels[sub.channel][sub.cid] = time.Now()
			member.channels[sub.channel] = time.Now()
			err := member.client.deliver(&EventResponse{
				Channel:       sub.channel,
				Source:        SourceListPending,
				Notifications: recentNotifications(recent[sub.channel]),
			})
			if err != nil {
				log.Println("hub subscribe", err)
				member.client.cancel()
			}
		case channel := <-hub.forget:
			delete(recent, channel)
		case n := <-hub.publish:
			if n.from.closed.Load() {
				continue
			}
			list, found := recent[n.Channel]
			if !found {
				list = arraylist.New()
				recent[n.Channel] = list
			}
			list.Add(n)
			if list.Size() > recentLimit {
				list.Remove(0)
			}
			resp := &EventResponse{Channel: n.Channel, Source: SourceEmit, Notifications: []*Notification{n}}
			for cid := range channels[n.Channel] {
				member, found := members[cid]
				if !found {
					continue
				}
				if err := member.client.deliver(resp); err != nil {
					log.Println("hub publish", err)
					member.client.cancel()
				}
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (hub *Hub) Register(ctx context.Context, client *Client) error {
	select {
	case hub.register <- client:
	case <-time.After(config.NotificationRegisterWait):
		return fmt.Errorf("timeout to register client %s", client.cid)
	}
	return nil
}

func (hub *Hub) Unregister(client *Client) error {
	select {
	case hub.unregister <- client:
	case <-time.After(config.NotificationRegisterWait):
		return fmt.Errorf("timeout to unregister client %s", client.cid)
	}
	return nil
}

func (hub *Hub) Subscribe(ctx context.Context, channel, cid string) error {
	select {
	case hub.subscribe <- &Subscription{channel, cid}:
	case <-time.After(config.NotificationRegisterWait):
		return fmt.Errorf("timeout to subscribe notifications %s %s", channel, cid)
	}
	return nil
}

// Forget closes channel and drops its buffered notifications. Notifications
// published on the closed channel afterwards are discarded.
func (hub *Hub) Forget(name string) {
	if v, found := hub.named.LoadAndDelete(name); found {
		v.(*Channel).closed.Store(true)
	}
	select {
	case hub.forget <- name:
	default:
		log.Println("hub forget dropped", name)
	}
}

// Channel returns the open channel called name, creating it when needed.
func (hub *Hub) Channel(name string) *Channel {
	v, _ := hub.named.LoadOrStore(name, &Channel{hub: hub, name: name})
	return v.(*Channel)
}

type Channel struct {
	hub    *Hub
	name   string
	closed atomic.Bool
}

func (c *Channel) Name() string {
	return c.name
}

// Notify never blocks. A notification is dropped when the hub is saturated
// or the channel is closed.
func (c *Channel) Notify(ctx context.Context, severity, message string) {
	if c.closed.Load() {
		return
	}
	n := &Notification{
		Channel:   c.name,
		Severity:  severity,
		Message:   message,
		CreatedAt: time.Now(),
		from:      c,
	}
	select {
	case c.hub.publish <- n:
	default:
		log.Println("hub publish dropped", c.name, severity, message)
	}
}

func recentNotifications(list *arraylist.List) []*Notification {
	if list == nil {
		return nil
	}
	notifications := make([]*Notification, 0, list.Size())
	for _, v := range list.Values() {
		notifications = append(notifications, v.(*Notification))
	}
	return notifications
}
