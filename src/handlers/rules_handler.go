package handlers

import (
	"net/http"

	"ledgerlens-server/src/categorize"
	"ledgerlens-server/src/logger"
	"ledgerlens-server/src/models"
	"ledgerlens-server/src/parser"
	"ledgerlens-server/src/rules"
)

// GetCategoryRules lists the active categorization rules in priority order.
func GetCategoryRules(set *rules.Set) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, set.Categories)
	}
}

// ExplainRemark shows what the parser and categorizer make of ?remark=.
func ExplainRemark(p *parser.Parser, c *categorize.Categorizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		remark := r.URL.Query().Get("remark")
		if remark == "" {
			writeError(w, http.StatusBadRequest, "remark is required")
			return
		}
		method, paymentRule := p.Explain(remark)
		fields := p.Parse(remark)
		category, categoryRule := c.Explain(categorize.Input{
			Recipient:     fields.RecipientMerchant,
			Remark:        fields.CleanedRemark,
			PaymentMethod: method,
		})
		log := logger.FromContext(r.Context())
		log.Debug().
			Str("payment_rule", paymentRule).
			Str("category_rule", categoryRule).
			Msg("explained remark")
		writeJSON(w, http.StatusOK, models.RuleExplanation{
			Remark:            remark,
			PaymentMethod:     method,
			PaymentRule:       paymentRule,
			RecipientMerchant: fields.RecipientMerchant,
			CleanedRemarks:    fields.CleanedRemark,
			Category:          category,
			CategoryRule:      categoryRule,
		})
	}
}

// Invalidator drops cached reads.
type Invalidator interface {
	Invalidate()
}

func ClearCache(c Invalidator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		c.Invalidate()
		log.Info().Msg("cleared transaction cache")
		writeJSON(w, http.StatusOK, map[string]string{"message": "cache cleared"})
	}
}
