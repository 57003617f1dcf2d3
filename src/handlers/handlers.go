package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"ledgerlens-server/src/models"
)

// TransactionReader is the read side of transaction storage.
type TransactionReader interface {
	FetchAll(ctx context.Context) ([]models.StoredTransaction, error)
	FetchFiltered(ctx context.Context, f models.TransactionFilter) ([]models.StoredTransaction, error)
	FetchMonthlyTotals(ctx context.Context) ([]models.MonthlyTotal, error)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, models.ErrorResponse{Status: "error", Error: msg})
}

func Index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "ledgerlens backend is running!"})
}

func Health(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("ok"))
}
