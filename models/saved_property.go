package models

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MixinNetwork/homes.one/durable"
	"github.com/MixinNetwork/homes.one/session"
	"github.com/MixinNetwork/homes.one/uuid"
)

const (
	savedPropertiesAllLatency    = 250 * time.Millisecond
	savedPropertiesFindLatency   = 200 * time.Millisecond
	savedPropertiesCreateLatency = 300 * time.Millisecond
	savedPropertiesUpdateLatency = 300 * time.Millisecond
	savedPropertiesDeleteLatency = 250 * time.Millisecond
)

type SavedProperty struct {
	SavedPropertyId string    `json:"saved_property_id"`
	PropertyId      string    `json:"property_id"`
	SavedDate       time.Time `json:"saved_date"`
}

type SavedPropertyPatch struct {
	PropertyId *string    `json:"property_id"`
	SavedDate  *time.Time `json:"saved_date"`
}

func (sp *SavedProperty) Copy() *SavedProperty {
	c := *sp
	return &c
}

// SavedPropertyService keeps at most one saved record per property id.
type SavedPropertyService struct {
	db *durable.Database
}

func NewSavedPropertyService(db *durable.Database) *SavedPropertyService {
	return &SavedPropertyService{db: db}
}

func (s *SavedPropertyService) All(ctx context.Context) ([]*SavedProperty, error) {
	if err := s.db.RoundTrip(ctx, savedPropertiesAllLatency, durable.CollectionSavedProperties, "ALL"); err != nil {
		return nil, session.ServerError(ctx, err)
	}
	values := s.db.SavedProperties().Values()
	saved := make([]*SavedProperty, 0, len(values))
	for _, v := range values {
		saved = append(saved, v.(*SavedProperty).Copy())
	}
	return saved, nil
}

func (s *SavedPropertyService) Find(ctx context.Context, id string) (*SavedProperty, error) {
	if err := s.db.RoundTrip(ctx, savedPropertiesFindLatency, durable.CollectionSavedProperties, "FIND"); err != nil {
		return nil, session.ServerError(ctx, err)
	}
	v, found := s.db.SavedProperties().Find(matchSavedProperty(id))
	if !found {
		return nil, session.SavedPropertyNotFoundError(ctx, id)
	}
	return v.(*SavedProperty).Copy(), nil
}

// Create saves propertyId as given. A zero savedDate means now.
func (s *SavedPropertyService) Create(ctx context.Context, propertyId string, savedDate time.Time) (*SavedProperty, error) {
	if strings.TrimSpace(propertyId) == "" {
		return nil, session.BadDataError(ctx)
	}
	if err := s.db.RoundTrip(ctx, savedPropertiesCreateLatency, durable.CollectionSavedProperties, "CREATE"); err != nil {
		return nil, session.ServerError(ctx, err)
	}
	if savedDate.IsZero() {
		savedDate = time.Now()
	}
	sp := &SavedProperty{
		SavedPropertyId: uuid.NewV4String(),
		PropertyId:      propertyId,
		SavedDate:       savedDate,
	}
	conflict := func(v interface{}) bool {
		other := v.(*SavedProperty)
		return other.PropertyId == sp.PropertyId || other.SavedPropertyId == sp.SavedPropertyId
	}
	if !s.db.SavedProperties().Insert(sp, conflict) {
		return nil, session.SavedPropertyConflictError(ctx, propertyId)
	}
	return sp.Copy(), nil
}

func (s *SavedPropertyService) Update(ctx context.Context, id string, patch SavedPropertyPatch) (*SavedProperty, error) {
	if patch.PropertyId != nil && strings.TrimSpace(*patch.PropertyId) == "" {
		return nil, session.BadDataError(ctx)
	}
	if err := s.db.RoundTrip(ctx, savedPropertiesUpdateLatency, durable.CollectionSavedProperties, "UPDATE"); err != nil {
		return nil, session.ServerError(ctx, err)
	}
	var conflict func(interface{}) bool
	if patch.PropertyId != nil {
		propertyId := *patch.PropertyId
		conflict = func(v interface{}) bool {
			return v.(*SavedProperty).PropertyId == propertyId
		}
	}
	v, err := s.db.SavedProperties().Update(matchSavedProperty(id), conflict, func(current interface{}) interface{} {
		merged := current.(*SavedProperty).Copy()
		if patch.PropertyId != nil {
			merged.PropertyId = *patch.PropertyId
		}
		if patch.SavedDate != nil {
			merged.SavedDate = *patch.SavedDate
		}
		return merged
	})
	switch err {
	case nil:
		return v.(*SavedProperty).Copy(), nil
	case durable.ErrRecordConflict:
		return nil, session.SavedPropertyConflictError(ctx, *patch.PropertyId)
	default:
		return nil, session.SavedPropertyNotFoundError(ctx, id)
	}
}

func (s *SavedPropertyService) Delete(ctx context.Context, id string) (*SavedProperty, error) {
	if err := s.db.RoundTrip(ctx, savedPropertiesDeleteLatency, durable.CollectionSavedProperties, "DELETE"); err != nil {
		return nil, session.ServerError(ctx, err)
	}
	v, found := s.db.SavedProperties().Remove(matchSavedProperty(id))
	if !found {
		return nil, session.SavedPropertyNotFoundError(ctx, id)
	}
	return v.(*SavedProperty).Copy(), nil
}

func matchSavedProperty(id string) func(interface{}) bool {
	return func(v interface{}) bool {
		return v.(*SavedProperty).SavedPropertyId == id
	}
}

func validateSavedProperties(saved []*SavedProperty) error {
	ids := make(map[string]bool, len(saved))
	properties := make(map[string]bool, len(saved))
	for _, sp := range saved {
		if ids[sp.SavedPropertyId] {
			return fmt.Errorf("duplicate saved property id %s", sp.SavedPropertyId)
		}
		if properties[sp.PropertyId] {
			return fmt.Errorf("property %s saved more than once", sp.PropertyId)
		}
		ids[sp.SavedPropertyId] = true
		properties[sp.PropertyId] = true
	}
	return nil
}
