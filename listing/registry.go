package listing

import (
	"sync"

	"github.com/MixinNetwork/homes.one/durable"
	"github.com/MixinNetwork/homes.one/uuid"
)

// Registry tracks the live listing sessions by id.
type Registry struct {
	properties PropertyLister
	saved      SavedPropertyStore
	logger     *durable.LoggerClient

	mutex    sync.RWMutex
	listings map[string]*Controller
}

func NewRegistry(properties PropertyLister, saved SavedPropertyStore, logger *durable.LoggerClient) *Registry {
	return &Registry{
		properties: properties,
		saved:      saved,
		logger:     logger,
		listings:   make(map[string]*Controller),
	}
}

// Create registers an idle listing. notifier builds the notification
// channel for the new listing id and may be nil.
func (r *Registry) Create(notifier func(id string) Notifier) *Controller {
	id := uuid.NewV4String()
	var n Notifier
	if notifier != nil {
		n = notifier(id)
	}
	c := NewController(id, r.properties, r.saved, n, durable.BuildLogger(r.logger, "listing", nil))

	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.listings[id] = c
	return c
}

func (r *Registry) Get(id string) (*Controller, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	c, found := r.listings[id]
	return c, found
}

func (r *Registry) Remove(id string) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	_, found := r.listings[id]
	delete(r.listings, id)
	return found
}

func (r *Registry) Size() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.listings)
}
