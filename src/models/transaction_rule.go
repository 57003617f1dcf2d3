package models

// RuleField names the transaction attribute a category rule inspects.
type RuleField string

const (
	FieldRecipient     RuleField = "recipient"
	FieldRemark        RuleField = "remark"
	FieldPaymentMethod RuleField = "payment"
)

// CategoryRule assigns Category when Field contains any of Keywords.
type CategoryRule struct {
	Name     string    `json:"name" yaml:"name"`
	Field    RuleField `json:"field" yaml:"field"`
	Keywords []string  `json:"keywords" yaml:"keywords"`
	Category Category  `json:"category" yaml:"category"`
}
