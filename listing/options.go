package listing

import (
	"github.com/MixinNetwork/homes.one/config"
	"github.com/MixinNetwork/homes.one/models"
	"github.com/emirpasic/gods/sets/treeset"
)

type Options struct {
	PropertyTypes []string
	Bedrooms      []string
	Bathrooms     []string
	PriceRange    [2]float64
	PriceStep     float64
}

// PropertyTypes merges the default property types with those present in
// properties, sorted and without duplicates.
func PropertyTypes(properties []*models.Property) []string {
	set := treeset.NewWithStringComparator()
	for _, t := range config.PropertyTypes() {
		set.Add(t)
	}
	for _, p := range properties {
		if p != nil && p.PropertyType != "" {
			set.Add(p.PropertyType)
		}
	}
	types := make([]string, 0, set.Size())
	for _, v := range set.Values() {
		types = append(types, v.(string))
	}
	return types
}

func FilterOptions(properties []*models.Property) Options {
	return Options{
		PropertyTypes: PropertyTypes(properties),
		Bedrooms:      config.BedroomOptions(),
		Bathrooms:     config.BathroomOptions(),
		PriceRange:    DefaultFilterState().PriceRange,
		PriceStep:     config.PriceStep,
	}
}
