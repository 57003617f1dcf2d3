package categorize

import "ledgerlens-server/src/models"

// DefaultRules is the built-in priority order. Food beats Transfer for a
// transaction that matches both.
func DefaultRules() []models.CategoryRule {
	return []models.CategoryRule{
		{
			Name:     "food-recipient",
			Field:    models.FieldRecipient,
			Keywords: []string{"swiggy", "zomato", "cafe", "coffee", "restaurant"},
			Category: models.CategoryFood,
		},
		{
			Name:     "shopping-recipient",
			Field:    models.FieldRecipient,
			Keywords: []string{"amazon", "flipkart", "meesho", "myntra"},
			Category: models.CategoryShopping,
		},
		{
			Name:     "utilities-remark",
			Field:    models.FieldRemark,
			Keywords: []string{"recharge", "electricity", "gas", "bill"},
			Category: models.CategoryUtilities,
		},
		{
			Name:     "healthcare-recipient",
			Field:    models.FieldRecipient,
			Keywords: []string{"pharmacy", "apollo", "medical"},
			Category: models.CategoryHealthcare,
		},
		{
			Name:     "housing-remark",
			Field:    models.FieldRemark,
			Keywords: []string{"rent", "house"},
			Category: models.CategoryHousing,
		},
		{
			Name:     "transfer-payment",
			Field:    models.FieldPaymentMethod,
			Keywords: []string{"upi", "bank"},
			Category: models.CategoryTransfer,
		},
	}
}
