package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type UploadResponse struct {
	Status    string   `json:"status"`
	Rows      *int     `json:"rows,omitempty"`
	Inserted  *int64   `json:"inserted,omitempty"`
	Message   string   `json:"message,omitempty"`
	Error     string   `json:"error,omitempty"`
	PlotFiles []string `json:"plot_files,omitempty"`
}

type ErrorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

type TransactionsResponse struct {
	Transactions []StoredTransaction `json:"transactions"`
	Statistics   Summary             `json:"statistics"`
}

type CategorizedExpense struct {
	Withdrawal        decimal.NullDecimal `json:"withdrawals"`
	PaymentMethod     string              `json:"payment_method"`
	RecipientMerchant string              `json:"recipient_merchant"`
	Category          Category            `json:"category"`
	TransactionDate   time.Time           `json:"transaction_date"`
}

// RuleExplanation says which rules fired for a single remark.
type RuleExplanation struct {
	Remark            string   `json:"remark"`
	PaymentMethod     string   `json:"payment_method"`
	PaymentRule       string   `json:"payment_rule,omitempty"`
	RecipientMerchant string   `json:"recipient_merchant"`
	CleanedRemarks    string   `json:"cleaned_remarks"`
	Category          Category `json:"category"`
	CategoryRule      string   `json:"category_rule,omitempty"`
}
