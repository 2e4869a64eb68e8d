package listing

import (
	"testing"

	"github.com/MixinNetwork/homes.one/models"
	"github.com/stretchr/testify/assert"
)

func testProperty(price float64, bedrooms int, bathrooms float64, propertyType string, squareFeet int, address *models.Address) *models.Property {
	return &models.Property{
		PropertyId:   "p",
		Title:        "Test",
		Price:        price,
		Bedrooms:     bedrooms,
		Bathrooms:    bathrooms,
		PropertyType: propertyType,
		SquareFeet:   squareFeet,
		Address:      address,
	}
}

func TestFilterBedrooms(t *testing.T) {
	assert := assert.New(t)
	f := DefaultFilterState()
	f.Bedrooms = "3"
	assert.False(PassesFilter(testProperty(500000, 2, 1, "House", 1000, nil), f))
	assert.True(PassesFilter(testProperty(500000, 4, 1, "House", 1000, nil), f))
	assert.True(PassesFilter(testProperty(500000, 3, 1, "House", 1000, nil), f))

	f.Bedrooms = "3.9"
	assert.True(PassesFilter(testProperty(500000, 3, 1, "House", 1000, nil), f))
	f.Bedrooms = "three"
	assert.False(PassesFilter(testProperty(500000, 4, 1, "House", 1000, nil), f))
}

func TestFilterLocation(t *testing.T) {
	assert := assert.New(t)
	austin := &models.Address{Street: "1 Main", City: "Austin", State: "TX", ZipCode: "78701"}
	f := DefaultFilterState()

	f.Location = "tx"
	assert.True(PassesFilter(testProperty(1, 1, 1, "House", 1, austin), f))
	f.Location = "AUS"
	assert.True(PassesFilter(testProperty(1, 1, 1, "House", 1, austin), f))
	f.Location = "787"
	assert.True(PassesFilter(testProperty(1, 1, 1, "House", 1, austin), f))
	f.Location = "denver"
	assert.False(PassesFilter(testProperty(1, 1, 1, "House", 1, austin), f))
	f.Location = "tx"
	assert.False(PassesFilter(testProperty(1, 1, 1, "House", 1, nil), f))
	assert.False(PassesFilter(testProperty(1, 1, 1, "House", 1, &models.Address{}), f))

	f.Location = ""
	assert.True(PassesFilter(testProperty(1, 1, 1, "House", 1, nil), f))
}

func TestFilterPriceAndThresholds(t *testing.T) {
	assert := assert.New(t)
	f := DefaultFilterState()
	f.PriceRange = [2]float64{300000, 600000}
	assert.True(PassesFilter(testProperty(300000, 1, 1, "Condo", 900, nil), f))
	assert.True(PassesFilter(testProperty(600000, 1, 1, "Condo", 900, nil), f))
	assert.False(PassesFilter(testProperty(600001, 1, 1, "Condo", 900, nil), f))
	assert.False(PassesFilter(testProperty(299999, 1, 1, "Condo", 900, nil), f))

	f = DefaultFilterState()
	f.Bathrooms = "1.5"
	assert.False(PassesFilter(testProperty(1, 1, 1, "Condo", 900, nil), f))
	assert.True(PassesFilter(testProperty(1, 1, 1.5, "Condo", 900, nil), f))
	assert.True(PassesFilter(testProperty(1, 1, 2.5, "Condo", 900, nil), f))

	f = DefaultFilterState()
	f.PropertyType = "Condo"
	assert.True(PassesFilter(testProperty(1, 1, 1, "Condo", 900, nil), f))
	assert.False(PassesFilter(testProperty(1, 1, 1, "condo", 900, nil), f))

	f = DefaultFilterState()
	f.MinSquareFeet = "1000"
	assert.False(PassesFilter(testProperty(1, 1, 1, "Condo", 999, nil), f))
	assert.True(PassesFilter(testProperty(1, 1, 1, "Condo", 1000, nil), f))

	f = DefaultFilterState()
	f.Bedrooms = "3abc"
	assert.False(PassesFilter(testProperty(1, 2, 1, "Condo", 900, nil), f))
	assert.True(PassesFilter(testProperty(1, 3, 1, "Condo", 900, nil), f))
	f.Bedrooms = "2.9"
	assert.True(PassesFilter(testProperty(1, 2, 1, "Condo", 900, nil), f))
	f.Bedrooms = "-1"
	assert.True(PassesFilter(testProperty(1, 0, 1, "Condo", 900, nil), f))
	f = DefaultFilterState()
	f.Bathrooms = "1.5x"
	assert.False(PassesFilter(testProperty(1, 1, 1, "Condo", 900, nil), f))
	assert.True(PassesFilter(testProperty(1, 1, 1.5, "Condo", 900, nil), f))
	f.Bathrooms = "many"
	assert.False(PassesFilter(testProperty(1, 1, 9, "Condo", 900, nil), f))

	assert.False(PassesFilter(nil, DefaultFilterState()))
}

func TestFilterLaw(t *testing.T) {
	assert := assert.New(t)
	properties := []*models.Property{
		testProperty(250000, 2, 1, "Apartment", 800, &models.Address{City: "Boston", State: "MA", ZipCode: "02115"}),
		testProperty(850000, 4, 3, "House", 3200, &models.Address{City: "Austin", State: "TX", ZipCode: "78701"}),
		testProperty(1250000, 3, 2.5, "Condo", 2100, &models.Address{City: "Miami", State: "FL", ZipCode: "33131"}),
		testProperty(540000, 3, 2.5, "Townhouse", 1700, nil),
	}
	filters := []FilterState{
		DefaultFilterState(),
		{PriceRange: [2]float64{0, 900000}, Bedrooms: "3"},
		{PriceRange: [2]float64{500000, 2000000}, Bathrooms: "2.5", Location: "m"},
		{PriceRange: [2]float64{0, 2000000}, PropertyType: "House", MinSquareFeet: "3000"},
		{PriceRange: [2]float64{0, 2000000}, Location: "331"},
	}
	for _, f := range filters {
		for _, p := range properties {
			expected := p.Price >= f.PriceRange[0] && p.Price <= f.PriceRange[1] &&
				(f.Bedrooms == "" || float64(p.Bedrooms) >= mustThreshold(f.Bedrooms)) &&
				(f.Bathrooms == "" || p.Bathrooms >= mustThreshold(f.Bathrooms)) &&
				(f.PropertyType == "" || p.PropertyType == f.PropertyType) &&
				(f.Location == "" || (p.Address != nil && matchLocation(p.Address, f.Location))) &&
				(f.MinSquareFeet == "" || float64(p.SquareFeet) >= mustThreshold(f.MinSquareFeet))
			assert.Equal(expected, PassesFilter(p, f), "%v %v", f, p.Title)
		}
	}

	assert.Len(Evaluate(properties, DefaultFilterState()), 4)
	assert.Len(Evaluate(properties, filters[1]), 2)
	assert.Len(Evaluate(properties, filters[2]), 1)
	assert.Len(Evaluate(properties, filters[3]), 1)
	assert.Len(Evaluate(properties, filters[4]), 1)
	assert.Len(Evaluate(nil, DefaultFilterState()), 0)
}

func mustThreshold(s string) float64 {
	n, _ := parseThreshold(s, false)
	return n
}

func TestFiltersApplied(t *testing.T) {
	assert := assert.New(t)
	f := DefaultFilterState()
	assert.False(FiltersApplied(f))
	f.PriceRange[1] = 1500000
	assert.True(FiltersApplied(f))
	f = DefaultFilterState()
	f.Location = "tx"
	assert.True(FiltersApplied(f))
	f = DefaultFilterState()
	f.MinSquareFeet = "500"
	assert.True(FiltersApplied(f))
}

func TestFilterApplyAndValid(t *testing.T) {
	assert := assert.New(t)
	bedrooms, location := "2", "Austin"
	f := DefaultFilterState().Apply(FilterPatch{Bedrooms: &bedrooms, Location: &location})
	assert.Equal("2", f.Bedrooms)
	assert.Equal("Austin", f.Location)
	assert.Equal(DefaultFilterState().PriceRange, f.PriceRange)
	assert.True(f.Valid())

	f.PriceRange = [2]float64{10, 5}
	assert.False(f.Valid())
	f.PriceRange = [2]float64{-1, 5}
	assert.True(f.Valid())
	f = DefaultFilterState()
	f.Bathrooms = "abc"
	assert.False(f.Valid())
	f.Bathrooms = "-1"
	assert.True(f.Valid())
	f.Bathrooms = ".5"
	assert.True(f.Valid())
	f.Bedrooms = ".5"
	assert.False(f.Valid())
	f.Bedrooms = "3abc"
	assert.True(f.Valid())

	_, ok := patchForKey("price", "1")
	assert.False(ok)
	patch, ok := patchForKey(FilterMinSquareFeet, "900")
	assert.True(ok)
	assert.Equal("900", *patch.MinSquareFeet)
}
