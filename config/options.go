package config

const (
	PropertyTypeHouse     = "House"
	PropertyTypeApartment = "Apartment"
	PropertyTypeCondo     = "Condo"
	PropertyTypeTownhouse = "Townhouse"

	DefaultMinPrice = 0
	DefaultMaxPrice = 2000000
	PriceStep       = 50000
)

func PropertyTypes() []string {
	return []string{
		PropertyTypeHouse,
		PropertyTypeApartment,
		PropertyTypeCondo,
		PropertyTypeTownhouse,
	}
}

func BedroomOptions() []string {
	return []string{"1", "2", "3", "4"}
}

func BathroomOptions() []string {
	return []string{"1", "1.5", "2", "3"}
}
