package models

type Category string

const (
	CategoryFood       Category = "Food"
	CategoryShopping   Category = "Shopping"
	CategoryUtilities  Category = "Utilities"
	CategoryHealthcare Category = "Healthcare"
	CategoryHousing    Category = "Housing"
	CategoryTransfer   Category = "Transfer"
	CategoryOthers     Category = "Others"
)

// Categories lists the closed label set in rule-priority order.
var Categories = []Category{
	CategoryFood,
	CategoryShopping,
	CategoryUtilities,
	CategoryHealthcare,
	CategoryHousing,
	CategoryTransfer,
	CategoryOthers,
}

func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}
