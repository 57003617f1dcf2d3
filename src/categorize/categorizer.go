// Package categorize assigns spending categories with an ordered list of
// keyword rules. The first matching rule wins; no match yields Others.
package categorize

import (
	"strings"

	"ledgerlens-server/src/models"
)

// Input is the lowercased view a rule is evaluated against.
type Input struct {
	Recipient     string
	Remark        string
	PaymentMethod string
}

func InputFrom(t models.ParsedTransaction) Input {
	return Input{
		Recipient:     t.RecipientMerchant,
		Remark:        t.CleanedRemarks,
		PaymentMethod: t.PaymentMethod,
	}
}

type matcher struct {
	name     string
	match    func(in Input) bool
	category models.Category
}

type Categorizer struct {
	matchers []matcher
	fallback models.Category
}

func New(rules []models.CategoryRule) *Categorizer {
	c := &Categorizer{fallback: models.CategoryOthers}
	for _, r := range rules {
		c.matchers = append(c.matchers, matcher{
			name:     r.Name,
			match:    keywordMatcher(r.Field, r.Keywords),
			category: r.Category,
		})
	}
	return c
}

func Default() *Categorizer {
	return New(DefaultRules())
}

func (c *Categorizer) Categorize(in Input) models.Category {
	category, _ := c.Explain(in)
	return category
}

// Explain returns the category and the name of the rule that chose it.
// The rule name is empty when the fallback applied.
func (c *Categorizer) Explain(in Input) (models.Category, string) {
	in = Input{
		Recipient:     strings.ToLower(in.Recipient),
		Remark:        strings.ToLower(in.Remark),
		PaymentMethod: strings.ToLower(in.PaymentMethod),
	}
	for _, m := range c.matchers {
		if m.match(in) {
			return m.category, m.name
		}
	}
	return c.fallback, ""
}

// Annotate fills in Category on every transaction.
func (c *Categorizer) Annotate(txns []models.StoredTransaction) {
	for i := range txns {
		txns[i].Category = c.Categorize(InputFrom(txns[i].ParsedTransaction))
	}
}

func keywordMatcher(field models.RuleField, keywords []string) func(Input) bool {
	lowered := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			lowered = append(lowered, k)
		}
	}
	return func(in Input) bool {
		value := fieldValue(in, field)
		for _, k := range lowered {
			if strings.Contains(value, k) {
				return true
			}
		}
		return false
	}
}

func fieldValue(in Input, field models.RuleField) string {
	switch field {
	case models.FieldRecipient:
		return in.Recipient
	case models.FieldRemark:
		return in.Remark
	case models.FieldPaymentMethod:
		return in.PaymentMethod
	default:
		return ""
	}
}
