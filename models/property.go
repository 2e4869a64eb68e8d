package models

import (
	"context"
	"fmt"
	"time"

	"github.com/MixinNetwork/homes.one/durable"
	"github.com/MixinNetwork/homes.one/session"
	"github.com/MixinNetwork/homes.one/uuid"
)

const (
	propertiesAllLatency    = 300 * time.Millisecond
	propertiesFindLatency   = 200 * time.Millisecond
	propertiesCreateLatency = 400 * time.Millisecond
	propertiesUpdateLatency = 350 * time.Millisecond
	propertiesDeleteLatency = 250 * time.Millisecond
)

type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
}

type Agent struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Property struct {
	PropertyId   string    `json:"property_id"`
	Title        string    `json:"title"`
	Price        float64   `json:"price"`
	Bedrooms     int       `json:"bedrooms"`
	Bathrooms    float64   `json:"bathrooms"`
	PropertyType string    `json:"property_type"`
	SquareFeet   int       `json:"square_feet"`
	Address      *Address  `json:"address"`
	Images       []string  `json:"images"`
	Features     []string  `json:"features"`
	Agent        *Agent    `json:"agent"`
	Description  string    `json:"description"`
	ListingDate  time.Time `json:"listing_date"`
}

// PropertyPatch overwrites the fields that are set and keeps the rest.
// The identifier is never patched.
type PropertyPatch struct {
	Title        *string    `json:"title"`
	Price        *float64   `json:"price"`
	Bedrooms     *int       `json:"bedrooms"`
	Bathrooms    *float64   `json:"bathrooms"`
	PropertyType *string    `json:"property_type"`
	SquareFeet   *int       `json:"square_feet"`
	Address      *Address   `json:"address"`
	Images       *[]string  `json:"images"`
	Features     *[]string  `json:"features"`
	Agent        *Agent     `json:"agent"`
	Description  *string    `json:"description"`
	ListingDate  *time.Time `json:"listing_date"`
}

func (p *Property) Copy() *Property {
	c := *p
	if p.Address != nil {
		address := *p.Address
		c.Address = &address
	}
	if p.Agent != nil {
		agent := *p.Agent
		c.Agent = &agent
	}
	c.Images = copyStrings(p.Images)
	c.Features = copyStrings(p.Features)
	return &c
}

func (patch PropertyPatch) apply(p *Property) *Property {
	merged := p.Copy()
	if patch.Title != nil {
		merged.Title = *patch.Title
	}
	if patch.Price != nil {
		merged.Price = *patch.Price
	}
	if patch.Bedrooms != nil {
		merged.Bedrooms = *patch.Bedrooms
	}
	if patch.Bathrooms != nil {
		merged.Bathrooms = *patch.Bathrooms
	}
	if patch.PropertyType != nil {
		merged.PropertyType = *patch.PropertyType
	}
	if patch.SquareFeet != nil {
		merged.SquareFeet = *patch.SquareFeet
	}
	if patch.Address != nil {
		address := *patch.Address
		merged.Address = &address
	}
	if patch.Images != nil {
		merged.Images = copyStrings(*patch.Images)
	}
	if patch.Features != nil {
		merged.Features = copyStrings(*patch.Features)
	}
	if patch.Agent != nil {
		agent := *patch.Agent
		merged.Agent = &agent
	}
	if patch.Description != nil {
		merged.Description = *patch.Description
	}
	if patch.ListingDate != nil {
		merged.ListingDate = *patch.ListingDate
	}
	return merged
}

type PropertyService struct {
	db *durable.Database
}

func NewPropertyService(db *durable.Database) *PropertyService {
	return &PropertyService{db: db}
}

func (s *PropertyService) All(ctx context.Context) ([]*Property, error) {
	if err := s.db.RoundTrip(ctx, propertiesAllLatency, durable.CollectionProperties, "ALL"); err != nil {
		return nil, session.ServerError(ctx, err)
	}
	values := s.db.Properties().Values()
	properties := make([]*Property, 0, len(values))
	for _, v := range values {
		properties = append(properties, v.(*Property).Copy())
	}
	return properties, nil
}

func (s *PropertyService) Find(ctx context.Context, id string) (*Property, error) {
	if err := s.db.RoundTrip(ctx, propertiesFindLatency, durable.CollectionProperties, "FIND"); err != nil {
		return nil, session.ServerError(ctx, err)
	}
	v, found := s.db.Properties().Find(matchProperty(id))
	if !found {
		return nil, session.PropertyNotFoundError(ctx, id)
	}
	return v.(*Property).Copy(), nil
}

func (s *PropertyService) Create(ctx context.Context, data *Property) (*Property, error) {
	if data == nil {
		return nil, session.BadDataError(ctx)
	}
	if err := s.db.RoundTrip(ctx, propertiesCreateLatency, durable.CollectionProperties, "CREATE"); err != nil {
		return nil, session.ServerError(ctx, err)
	}
	p := data.Copy()
	p.PropertyId = uuid.NewV4String()
	p.ListingDate = time.Now()
	if !s.db.Properties().Insert(p, matchProperty(p.PropertyId)) {
		return nil, session.TransactionError(ctx, fmt.Errorf("duplicate property id %s", p.PropertyId))
	}
	return p.Copy(), nil
}

func (s *PropertyService) Update(ctx context.Context, id string, patch PropertyPatch) (*Property, error) {
	if err := s.db.RoundTrip(ctx, propertiesUpdateLatency, durable.CollectionProperties, "UPDATE"); err != nil {
		return nil, session.ServerError(ctx, err)
	}
	v, err := s.db.Properties().Update(matchProperty(id), nil, func(current interface{}) interface{} {
		return patch.apply(current.(*Property))
	})
	if err != nil {
		return nil, session.PropertyNotFoundError(ctx, id)
	}
	return v.(*Property).Copy(), nil
}

func (s *PropertyService) Delete(ctx context.Context, id string) (*Property, error) {
	if err := s.db.RoundTrip(ctx, propertiesDeleteLatency, durable.CollectionProperties, "DELETE"); err != nil {
		return nil, session.ServerError(ctx, err)
	}
	v, found := s.db.Properties().Remove(matchProperty(id))
	if !found {
		return nil, session.PropertyNotFoundError(ctx, id)
	}
	return v.(*Property).Copy(), nil
}

func matchProperty(id string) func(interface{}) bool {
	return func(v interface{}) bool {
		return v.(*Property).PropertyId == id
	}
}

func copyStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string{}, s...)
}
