package listing

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/MixinNetwork/homes.one/durable"
	"github.com/MixinNetwork/homes.one/models"
	"github.com/MixinNetwork/homes.one/session"
	"golang.org/x/sync/errgroup"
)

type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateFailed  State = "failed"
)

const (
	SeveritySuccess = "success"
	SeverityError   = "error"

	messageLoadFailed   = "Failed to load properties"
	messageSaved        = "Property saved to favorites"
	messageUnsaved      = "Property removed from favorites"
	messageToggleFailed = "Failed to update saved properties"
)

// Notifier delivers a transient user-facing message. Delivery is fire and
// forget.
type Notifier interface {
	Notify(ctx context.Context, severity, message string)
}

type PropertyLister interface {
	All(ctx context.Context) ([]*models.Property, error)
}

type SavedPropertyStore interface {
	All(ctx context.Context) ([]*models.SavedProperty, error)
	Create(ctx context.Context, propertyId string, savedDate time.Time) (*models.SavedProperty, error)
	Delete(ctx context.Context, id string) (*models.SavedProperty, error)
}

type Item struct {
	Property *models.Property
	Saved    bool
	Price    string
}

// View is a read-only snapshot of a listing.
type View struct {
	ListingId      string
	State          State
	Error          string
	Items          []Item
	Total          int
	SavedCount     int
	Filters        FilterState
	FiltersApplied bool
}

type Controller struct {
	id         string
	properties PropertyLister
	saved      SavedPropertyStore
	notifier   Notifier
	logger     *durable.Logger

	mutex           sync.Mutex
	state           State
	err             string
	allProperties   []*models.Property
	savedProperties []*models.SavedProperty
	filters         FilterState
}

func NewController(id string, properties PropertyLister, saved SavedPropertyStore, notifier Notifier, logger *durable.Logger) *Controller {
	if logger == nil {
		logger = durable.BuildLogger(nil, "listing", nil)
	}
	return &Controller{
		id:         id,
		properties: properties,
		saved:      saved,
		notifier:   notifier,
		logger:     logger,
		state:      StateIdle,
		filters:    DefaultFilterState(),
	}
}

func (c *Controller) Id() string {
	return c.id
}

func (c *Controller) State() State {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.state
}

// Load runs the initial load. It is accepted only once, from Idle.
func (c *Controller) Load(ctx context.Context) error {
	return c.startLoad(ctx, StateIdle)
}

// Retry reruns the initial load after a failure.
func (c *Controller) Retry(ctx context.Context) error {
	return c.startLoad(ctx, StateFailed)
}

func (c *Controller) startLoad(ctx context.Context, from State) error {
	c.mutex.Lock()
	if c.state != from {
		state := c.state
		c.mutex.Unlock()
		return session.ListingNotReadyError(ctx, string(state))
	}
	c.state = StateLoading
	c.err = ""
	c.mutex.Unlock()

	var properties []*models.Property
	var saved []*models.SavedProperty
	var g errgroup.Group
	g.Go(func() error {
		result, err := c.properties.All(ctx)
		properties = result
		return err
	})
	g.Go(func() error {
		result, err := c.saved.All(ctx)
		if err != nil {
			c.logger.Errorf("LISTING %s saved properties load failed %s", c.id, err.Error())
			return nil
		}
		saved = result
		return nil
	})
	err := g.Wait()

	c.mutex.Lock()
	c.savedProperties = saved
	if err != nil {
		c.state = StateFailed
		c.err = errorMessage(err)
		c.allProperties = nil
		c.mutex.Unlock()
		c.notify(ctx, SeverityError, messageLoadFailed)
		return session.ListingLoadFailureError(ctx, err)
	}
	c.state = StateReady
	c.allProperties = properties
	c.mutex.Unlock()
	c.logger.Debugf("LISTING %s ready with %d properties and %d saved", c.id, len(properties), len(saved))
	return nil
}

// ToggleSaved removes the saved record for propertyId when one exists and
// creates one otherwise. Local state changes only after the saved-property
// store confirms. The returned flag is the new saved state.
func (c *Controller) ToggleSaved(ctx context.Context, propertyId string) (bool, error) {
	propertyId = strings.TrimSpace(propertyId)
	c.mutex.Lock()
	if c.state != StateReady {
		state := c.state
		c.mutex.Unlock()
		return false, session.ListingNotReadyError(ctx, string(state))
	}
	existing := c.findSaved(propertyId)
	c.mutex.Unlock()

	if existing != nil {
		if _, err := c.saved.Delete(ctx, existing.SavedPropertyId); err != nil {
			c.notify(ctx, SeverityError, messageToggleFailed)
			return true, err
		}
		c.mutex.Lock()
		kept := make([]*models.SavedProperty, 0, len(c.savedProperties))
		for _, sp := range c.savedProperties {
			if sp.PropertyId != propertyId {
				kept = append(kept, sp)
			}
		}
		c.savedProperties = kept
		c.mutex.Unlock()
		c.notify(ctx, SeveritySuccess, messageUnsaved)
		return false, nil
	}

	sp, err := c.saved.Create(ctx, propertyId, time.Now())
	if err != nil {
		c.notify(ctx, SeverityError, messageToggleFailed)
		return false, err
	}
	c.mutex.Lock()
	if c.findSaved(propertyId) == nil {
		c.savedProperties = append(c.savedProperties, sp)
	}
	c.mutex.Unlock()
	c.notify(ctx, SeveritySuccess, messageSaved)
	return true, nil
}

func (c *Controller) SetFilter(ctx context.Context, key, value string) error {
	patch, ok := patchForKey(key, value)
	if !ok {
		return session.BadDataError(ctx)
	}
	return c.UpdateFilters(ctx, patch)
}

func (c *Controller) SetPriceRange(ctx context.Context, min, max float64) error {
	return c.UpdateFilters(ctx, FilterPatch{PriceRange: &[2]float64{min, max}})
}

func (c *Controller) UpdateFilters(ctx context.Context, patch FilterPatch) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.state != StateReady {
		return session.ListingNotReadyError(ctx, string(c.state))
	}
	filters := c.filters.Apply(patch)
	if !filters.Valid() {
		return session.BadDataError(ctx)
	}
	c.filters = filters
	return nil
}

func (c *Controller) ClearFilters(ctx context.Context) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.state != StateReady {
		return session.ListingNotReadyError(ctx, string(c.state))
	}
	c.filters = DefaultFilterState()
	return nil
}

func (c *Controller) Filters() FilterState {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.filters
}

func (c *Controller) IsSaved(propertyId string) bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.findSaved(propertyId) != nil
}

func (c *Controller) SavedProperties() []*models.SavedProperty {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	saved := make([]*models.SavedProperty, 0, len(c.savedProperties))
	for _, sp := range c.savedProperties {
		saved = append(saved, sp.Copy())
	}
	return saved
}

func (c *Controller) View() View {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	filtered := Evaluate(c.allProperties, c.filters)
	items := make([]Item, 0, len(filtered))
	for _, p := range filtered {
		items = append(items, Item{
			Property: p.Copy(),
			Saved:    c.findSaved(p.PropertyId) != nil,
			Price:    FormatPrice(p.Price),
		})
	}
	return View{
		ListingId:      c.id,
		State:          c.state,
		Error:          c.err,
		Items:          items,
		Total:          len(c.allProperties),
		SavedCount:     len(c.savedProperties),
		Filters:        c.filters,
		FiltersApplied: FiltersApplied(c.filters),
	}
}

func (c *Controller) findSaved(propertyId string) *models.SavedProperty {
	for _, sp := range c.savedProperties {
		if sp.PropertyId == propertyId {
			return sp
		}
	}
	return nil
}

func (c *Controller) notify(ctx context.Context, severity, message string) {
	if c.notifier == nil {
		return
	}
	c.notifier.Notify(ctx, severity, message)
}

func errorMessage(err error) string {
	if sessionErr, ok := err.(session.Error); ok {
		return sessionErr.Description
	}
	return err.Error()
}
