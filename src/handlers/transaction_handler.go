package handlers

import (
	"net/http"

	"ledgerlens-server/src/logger"
	"ledgerlens-server/src/models"
	"ledgerlens-server/src/stats"
	"ledgerlens-server/src/util"
)

// Annotator fills in the category of each transaction.
type Annotator interface {
	Annotate(txns []models.StoredTransaction)
}

// GetFinalOutput lists every transaction with summary statistics. A storage
// failure degrades to an empty list and default statistics.
func GetFinalOutput(store TransactionReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		txns, err := store.FetchAll(r.Context())
		if err != nil {
			log.Error().Err(err).Msg("failed to fetch transactions")
			txns = nil
		}
		if len(txns) == 0 {
			writeJSON(w, http.StatusOK, models.TransactionsResponse{
				Transactions: []models.StoredTransaction{},
				Statistics:   stats.EmptySummary(),
			})
			return
		}
		writeJSON(w, http.StatusOK, models.TransactionsResponse{
			Transactions: txns,
			Statistics:   stats.Summarize(models.ParsedOf(txns)),
		})
	}
}

func GetCategorizedExpenses(store TransactionReader, categorizer Annotator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		txns, err := store.FetchAll(r.Context())
		if err != nil {
			log.Error().Err(err).Msg("failed to fetch transactions for categorization")
		}
		categorizer.Annotate(txns)

		expenses := make([]models.CategorizedExpense, 0, len(txns))
		for _, t := range txns {
			expenses = append(expenses, models.CategorizedExpense{
				Withdrawal:        t.Withdrawal,
				PaymentMethod:     t.PaymentMethod,
				RecipientMerchant: t.RecipientMerchant,
				Category:          t.Category,
				TransactionDate:   t.TransactionDate,
			})
		}
		writeJSON(w, http.StatusOK, expenses)
	}
}

func GetFilteredExpenses(store TransactionReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		filter, err := parseFilter(r)
		if err != nil {
			log.Info().Err(err).Str("query", r.URL.RawQuery).Msg("invalid filter")
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		txns, err := store.FetchFiltered(r.Context(), filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to fetch filtered transactions")
			writeError(w, http.StatusInternalServerError, "failed to fetch filtered expenses")
			return
		}
		writeJSON(w, http.StatusOK, txns)
	}
}

// GetDashboardData answers {} when there is nothing to summarize.
func GetDashboardData(store TransactionReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		txns, err := store.FetchAll(r.Context())
		if err != nil {
			log.Error().Err(err).Msg("failed to fetch transactions for dashboard")
		}
		dashboard := stats.Dashboard(models.ParsedOf(txns))
		if dashboard == nil {
			writeJSON(w, http.StatusOK, struct{}{})
			return
		}
		writeJSON(w, http.StatusOK, dashboard)
	}
}

func GetMonthlyTrends(store TransactionReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		totals, err := store.FetchMonthlyTotals(r.Context())
		if err != nil {
			log.Error().Err(err).Msg("failed to fetch monthly totals")
			writeError(w, http.StatusInternalServerError, "failed to fetch monthly trends")
			return
		}
		writeJSON(w, http.StatusOK, totals)
	}
}

func parseFilter(r *http.Request) (models.TransactionFilter, error) {
	q := r.URL.Query()
	var f models.TransactionFilter

	if s := q.Get("start_date"); s != "" {
		t, err := util.ParseDate(s)
		if err != nil {
			return f, &filterError{param: "start_date", value: s}
		}
		f.StartDate = &t
	}
	if s := q.Get("end_date"); s != "" {
		t, err := util.ParseDate(s)
		if err != nil {
			return f, &filterError{param: "end_date", value: s}
		}
		f.EndDate = &t
	}
	if s := q.Get("min_amount"); s != "" {
		d, err := util.ParseAmount(s)
		if err != nil {
			return f, &filterError{param: "min_amount", value: s}
		}
		f.MinAmount = &d
	}
	if s := q.Get("max_amount"); s != "" {
		d, err := util.ParseAmount(s)
		if err != nil {
			return f, &filterError{param: "max_amount", value: s}
		}
		f.MaxAmount = &d
	}
	f.PaymentMethod = q.Get("payment_method")
	f.Recipient = q.Get("recipient")
	return f, nil
}

type filterError struct {
	param string
	value string
}

func (e *filterError) Error() string {
	return "invalid " + e.param + ": " + e.value
}
