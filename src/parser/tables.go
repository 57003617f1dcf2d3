package parser

// Tables holds the lookup data consulted by the payment-method rules.
type Tables struct {
	// WalletApps maps an exact token to the wallet's display name.
	WalletApps map[string]string `yaml:"wallet_apps"`
	// Aliases maps an exact token to a fixed payment method.
	Aliases map[string]string `yaml:"aliases"`
	// Substrings are checked in order against the whole lowercased remark.
	Substrings []Substring `yaml:"substrings"`
}

type Substring struct {
	Needle string `yaml:"needle"`
	Method string `yaml:"method"`
}

func DefaultTables() Tables {
	return Tables{
		WalletApps: map[string]string{
			"paytm":     "Paytm",
			"googlepay": "GooglePay",
			"gpay":      "GPay",
			"bharatpe":  "BharatPe",
			"phonepe":   "PhonePe",
		},
		Aliases: map[string]string{
			"eze":    "PhonePe",
			"mab":    "Bank Transfer",
			"vyapar": "Other Merchant App",
		},
		Substrings: []Substring{
			{Needle: "@ok", Method: "BHIM/UPI"},
			{Needle: "stk-", Method: "Other Merchant Platform"},
			{Needle: "apollopharmacy", Method: "Apollo Pharmacy"},
		},
	}
}
