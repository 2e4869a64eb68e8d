package listing

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/MixinNetwork/homes.one/config"
	"github.com/MixinNetwork/homes.one/models"
)

var (
	integerPrefix = regexp.MustCompile(`^[+-]?\d+`)
	decimalPrefix = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)`)
)

const (
	FilterBedrooms      = "bedrooms"
	FilterBathrooms     = "bathrooms"
	FilterPropertyType  = "property_type"
	FilterLocation      = "location"
	FilterMinSquareFeet = "min_square_feet"
)

// FilterState holds the user-selected constraints. Empty strings leave a
// constraint unset.
type FilterState struct {
	PriceRange    [2]float64 `json:"price_range"`
	Bedrooms      string     `json:"bedrooms"`
	Bathrooms     string     `json:"bathrooms"`
	PropertyType  string     `json:"property_type"`
	Location      string     `json:"location"`
	MinSquareFeet string     `json:"min_square_feet"`
}

type FilterPatch struct {
	PriceRange    *[2]float64 `json:"price_range"`
	Bedrooms      *string     `json:"bedrooms"`
	Bathrooms     *string     `json:"bathrooms"`
	PropertyType  *string     `json:"property_type"`
	Location      *string     `json:"location"`
	MinSquareFeet *string     `json:"min_square_feet"`
}

func DefaultFilterState() FilterState {
	return FilterState{
		PriceRange: [2]float64{config.DefaultMinPrice, config.DefaultMaxPrice},
	}
}

// FiltersApplied is true when the price range moved off the default or any
// other constraint is set.
func FiltersApplied(f FilterState) bool {
	if f.PriceRange != DefaultFilterState().PriceRange {
		return true
	}
	return f.Bedrooms != "" || f.Bathrooms != "" || f.PropertyType != "" ||
		f.Location != "" || f.MinSquareFeet != ""
}

func (f FilterState) Apply(patch FilterPatch) FilterState {
	if patch.PriceRange != nil {
		f.PriceRange = *patch.PriceRange
	}
	if patch.Bedrooms != nil {
		f.Bedrooms = *patch.Bedrooms
	}
	if patch.Bathrooms != nil {
		f.Bathrooms = *patch.Bathrooms
	}
	if patch.PropertyType != nil {
		f.PropertyType = *patch.PropertyType
	}
	if patch.Location != nil {
		f.Location = *patch.Location
	}
	if patch.MinSquareFeet != nil {
		f.MinSquareFeet = *patch.MinSquareFeet
	}
	return f
}

// Valid requires an ordered price range and a leading number in every set
// threshold.
func (f FilterState) Valid() bool {
	min, max := f.PriceRange[0], f.PriceRange[1]
	if math.IsNaN(min) || math.IsNaN(max) || min > max {
		return false
	}
	thresholds := []struct {
		value   string
		integer bool
	}{
		{f.Bedrooms, true},
		{f.Bathrooms, false},
		{f.MinSquareFeet, true},
	}
	for _, t := range thresholds {
		if t.value == "" {
			continue
		}
		if _, ok := parseThreshold(t.value, t.integer); !ok {
			return false
		}
	}
	return true
}

func patchForKey(key, value string) (FilterPatch, bool) {
	var patch FilterPatch
	switch key {
	case FilterBedrooms:
		patch.Bedrooms = &value
	case FilterBathrooms:
		patch.Bathrooms = &value
	case FilterPropertyType:
		patch.PropertyType = &value
	case FilterLocation:
		patch.Location = &value
	case FilterMinSquareFeet:
		patch.MinSquareFeet = &value
	default:
		return patch, false
	}
	return patch, true
}

// PassesFilter reports whether p satisfies every constraint of f. A nil
// property never passes, and a property without an address never matches a
// location constraint.
func PassesFilter(p *models.Property, f FilterState) bool {
	if p == nil {
		return false
	}
	if p.Price < f.PriceRange[0] || p.Price > f.PriceRange[1] {
		return false
	}
	if !atLeast(float64(p.Bedrooms), f.Bedrooms, true) {
		return false
	}
	if !atLeast(p.Bathrooms, f.Bathrooms, false) {
		return false
	}
	if f.PropertyType != "" && p.PropertyType != f.PropertyType {
		return false
	}
	if f.Location != "" && !matchLocation(p.Address, f.Location) {
		return false
	}
	return atLeast(float64(p.SquareFeet), f.MinSquareFeet, true)
}

func Evaluate(properties []*models.Property, f FilterState) []*models.Property {
	filtered := make([]*models.Property, 0, len(properties))
	for _, p := range properties {
		if PassesFilter(p, f) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

func matchLocation(address *models.Address, location string) bool {
	if address == nil {
		return false
	}
	needle := strings.ToLower(location)
	return strings.Contains(strings.ToLower(address.City), needle) ||
		strings.Contains(strings.ToLower(address.State), needle) ||
		strings.Contains(address.ZipCode, location)
}

// An unparsable threshold matches nothing.
func atLeast(value float64, threshold string, integer bool) bool {
	if threshold == "" {
		return true
	}
	n, ok := parseThreshold(threshold, integer)
	return ok && value >= n
}

// parseThreshold reads the leading number of s and ignores the rest, so
// "3abc" is 3. Integer thresholds stop at the decimal point.
func parseThreshold(s string, integer bool) (float64, bool) {
	prefix := decimalPrefix
	if integer {
		prefix = integerPrefix
	}
	m := prefix.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
