package categorize

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"ledgerlens-server/src/models"
)

func TestCategorize_DefaultRules(t *testing.T) {
	c := Default()

	tests := []struct {
		name string
		in   Input
		want models.Category
		rule string
	}{
		{"food", Input{Recipient: "SWIGGY"}, models.CategoryFood, "food-recipient"},
		{"coffee shop", Input{Recipient: "Blue Tokai Coffee"}, models.CategoryFood, "food-recipient"},
		{"shopping", Input{Recipient: "AMAZON PAY"}, models.CategoryShopping, "shopping-recipient"},
		{"utilities", Input{Remark: "Mobile Recharge"}, models.CategoryUtilities, "utilities-remark"},
		{"healthcare", Input{Recipient: "City Medical Store"}, models.CategoryHealthcare, "healthcare-recipient"},
		{"housing", Input{Remark: "June RENT"}, models.CategoryHousing, "housing-remark"},
		{"transfer upi", Input{PaymentMethod: "UPI via SBIN"}, models.CategoryTransfer, "transfer-payment"},
		{"transfer bank", Input{PaymentMethod: "Bank Transfer"}, models.CategoryTransfer, "transfer-payment"},
		{"default", Input{Recipient: "unknown shop", Remark: "misc", PaymentMethod: "cash"}, models.CategoryOthers, ""},
		{"empty", Input{}, models.CategoryOthers, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, rule := c.Explain(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.rule, rule)
		})
	}
}

func TestCategorize_Priority(t *testing.T) {
	c := Default()

	assert.Equal(t, models.CategoryFood, c.Categorize(Input{Recipient: "swiggy", Remark: "rent"}))
	assert.Equal(t, models.CategoryFood, c.Categorize(Input{Recipient: "zomato", PaymentMethod: "UPI"}))
	// Utilities (remark) is checked before Healthcare (recipient).
	assert.Equal(t, models.CategoryUtilities, c.Categorize(Input{Recipient: "apollo", Remark: "bill payment"}))
}

func TestCategorize_CustomRules(t *testing.T) {
	c := New([]models.CategoryRule{
		{Name: "fuel", Field: models.FieldRemark, Keywords: []string{" PETROL "}, Category: models.CategoryUtilities},
		{Name: "blank", Field: models.FieldRecipient, Keywords: []string{""}, Category: models.CategoryFood},
		{Name: "bad-field", Field: "amount", Keywords: []string{"1"}, Category: models.CategoryFood},
	})

	assert.Equal(t, models.CategoryUtilities, c.Categorize(Input{Remark: "HP Petrol pump"}))
	assert.Equal(t, models.CategoryOthers, c.Categorize(Input{Recipient: "swiggy", Remark: "1"}))
}

func TestAnnotate(t *testing.T) {
	txns := []models.StoredTransaction{
		{ID: 1, ParsedTransaction: models.ParsedTransaction{
			Withdrawal:        decimal.NewNullDecimal(decimal.NewFromInt(250)),
			RecipientMerchant: "ZOMATO",
			PaymentMethod:     "UPI",
		}},
		{ID: 2, ParsedTransaction: models.ParsedTransaction{CleanedRemarks: "electricity bill"}},
		{ID: 3},
	}

	Default().Annotate(txns)

	assert.Equal(t, models.CategoryFood, txns[0].Category)
	assert.Equal(t, models.CategoryUtilities, txns[1].Category)
	assert.Equal(t, models.CategoryOthers, txns[2].Category)
}

func TestDefaultRules_CoverEveryCategoryButOthers(t *testing.T) {
	seen := map[models.Category]bool{}
	for _, r := range DefaultRules() {
		seen[r.Category] = true
	}
	for _, c := range models.Categories {
		if c == models.CategoryOthers {
			assert.False(t, seen[c])
			continue
		}
		assert.True(t, seen[c], string(c))
	}
}
