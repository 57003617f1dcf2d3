package ingest

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"ledgerlens-server/src/models"
	"ledgerlens-server/src/parser"
)

type fakeStore struct {
	batches [][]models.ParsedTransaction
	err     error
}

func (f *fakeStore) InsertIgnoringDuplicates(_ context.Context, txns []models.ParsedTransaction) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.batches = append(f.batches, txns)
	return int64(len(txns)), nil
}

func workbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func statementRows() [][]interface{} {
	return [][]interface{}{
		{"Account Statement"},
		{"Name: A Customer"},
		{},
		{"S No.", "Value Date", "Remarks", "Withdrawal Amount (INR )", "Deposit Amount (INR )"},
		{1, "01/01/2024", "UPI/402312/DR/SWIGGY/YESB/swiggy order", 250.5, ""},
		{2, "02/01/2024", "payment via phonepe to shop", "1,200.00", ""},
		{3, "03/01/2024", "SALARY CREDIT", "", 50000},
		{},
	}
}

func newTestPipeline(store Store) *Pipeline {
	clock := func() time.Time { return time.Date(2024, 1, 31, 18, 45, 0, 0, time.Local) }
	return NewPipeline(parser.Default(), store, zerolog.Nop()).WithClock(clock)
}

func TestProcess_XLSX(t *testing.T) {
	data := workbook(t, statementRows())

	txns, err := newTestPipeline(&fakeStore{}).Process("statement.xlsx", bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, txns, 3)

	day := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	assert.True(t, txns[0].Withdrawal.Valid)
	assert.Equal(t, "250.5", txns[0].Withdrawal.Decimal.String())
	assert.Equal(t, "UPI via YESB", txns[0].PaymentMethod)
	assert.Equal(t, "SWIGGY", txns[0].RecipientMerchant)
	assert.Equal(t, "swiggy order", txns[0].CleanedRemarks)
	assert.Equal(t, "UPI/402312/DR/SWIGGY/YESB/swiggy order", txns[0].Remarks)
	assert.Equal(t, day, txns[0].TransactionDate)

	assert.Equal(t, "1200", txns[1].Withdrawal.Decimal.String())
	assert.Equal(t, "PhonePe", txns[1].PaymentMethod)
	assert.Equal(t, parser.Unknown, txns[1].RecipientMerchant)

	assert.False(t, txns[2].Withdrawal.Valid)
	assert.Equal(t, parser.Unknown, txns[2].PaymentMethod)
}

func TestProcess_MissingColumns(t *testing.T) {
	data := workbook(t, [][]interface{}{
		{"Date", "Remarks", "Debit"},
		{"01/01/2024", "paytm", 10},
	})

	_, err := newTestPipeline(&fakeStore{}).Process("statement.xlsx", bytes.NewReader(data))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, MissingColumnsMessage, verr.Msg)
}

func TestProcess_BadExtension(t *testing.T) {
	_, err := newTestPipeline(&fakeStore{}).Process("statement.csv", bytes.NewReader(nil))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, InvalidFormatMessage, verr.Msg)
}

func TestProcess_CorruptWorkbook(t *testing.T) {
	_, err := newTestPipeline(&fakeStore{}).Process("statement.xlsx", bytes.NewReader([]byte("not a zip")))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Msg, "An error occurred")
}

func TestIngest(t *testing.T) {
	store := &fakeStore{}
	data := workbook(t, statementRows())

	res, err := newTestPipeline(store).Ingest(context.Background(), "statement.xlsx", bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, 3, res.Rows)
	assert.Equal(t, int64(3), res.Inserted)
	require.Len(t, store.batches, 1)
	assert.Equal(t, res.Transactions, store.batches[0])
}

func TestIngest_StoreFailure(t *testing.T) {
	store := &fakeStore{err: errors.New("connection refused")}
	data := workbook(t, statementRows())

	_, err := newTestPipeline(store).Ingest(context.Background(), "statement.xlsx", bytes.NewReader(data))

	require.Error(t, err)
	var verr *ValidationError
	assert.False(t, errors.As(err, &verr))
	assert.ErrorContains(t, err, "connection refused")
}

func TestIngestFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "statement.xlsx")
	require.NoError(t, os.WriteFile(path, workbook(t, statementRows()), 0o644))

	res, err := newTestPipeline(&fakeStore{}).IngestFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Rows)

	_, err = newTestPipeline(&fakeStore{}).IngestFile(context.Background(), filepath.Join(dir, "missing.xls"))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "File not found.", verr.Msg)
}

func TestExtractRows(t *testing.T) {
	rows, err := ExtractRows([][]string{
		{"Narration", "Withdrawal Amt."},
		{"  coffee ", " 40 "},
		{"", ""},
		{"deposit only"},
	})
	require.NoError(t, err)
	assert.Equal(t, []Row{{Withdrawal: "40", Remark: "coffee"}, {Remark: "deposit only"}}, rows)
}

func TestExtractRows_PrefersRemarksColumn(t *testing.T) {
	rows, err := ExtractRows([][]string{
		{"Description", "Remarks", "WITHDRAWALS"},
		{"ignored", "kept", "1"},
	})
	require.NoError(t, err)
	assert.Equal(t, []Row{{Withdrawal: "1", Remark: "kept"}}, rows)
}

func TestExtractRows_HeaderTooDeep(t *testing.T) {
	sheet := make([][]string, headerSearchRows)
	sheet = append(sheet, []string{"Remarks", "Withdrawal"})

	_, err := ExtractRows(sheet)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestReaderFor(t *testing.T) {
	r, err := ReaderFor("a.XLSX")
	require.NoError(t, err)
	assert.IsType(t, XLSXReader{}, r)

	r, err = ReaderFor("dir/b.xls")
	require.NoError(t, err)
	assert.IsType(t, XLSReader{}, r)

	for _, name := range []string{"c.csv", "xlsx", "d.xlsx.pdf", ""} {
		_, err := ReaderFor(name)
		assert.Error(t, err, name)
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in    string
		valid bool
		want  string
	}{
		{"250.50", true, "250.5"},
		{"1,234.00", true, "1234"},
		{"₹ 99", true, "99"},
		{"Rs. 12.5", true, "12.5"},
		{"INR 7", true, "7"},
		{"", false, ""},
		{"   ", false, ""},
		{"n/a", false, ""},
		{"-", false, ""},
	}
	for _, tt := range tests {
		got := parseAmount(tt.in)
		assert.Equal(t, tt.valid, got.Valid, tt.in)
		if tt.valid {
			assert.Equal(t, tt.want, got.Decimal.String(), tt.in)
		}
	}
}
