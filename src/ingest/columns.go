package ingest

import (
	"strings"

	"github.com/shopspring/decimal"
)

// headerSearchRows bounds how far down a statement preamble may push the header.
const headerSearchRows = 30

const withdrawalKeyword = "withdrawal"

// remarkKeywords are tried in order; the first header containing one wins.
var remarkKeywords = []string{"remark", "narration", "description", "particulars"}

type columns struct {
	header     int
	remark     int
	withdrawal int
}

// findColumns locates the header row and the two required columns.
func findColumns(rows [][]string) (columns, bool) {
	limit := min(len(rows), headerSearchRows)
	for i := 0; i < limit; i++ {
		withdrawal := indexOf(rows[i], func(h string) bool { return strings.Contains(h, withdrawalKeyword) })
		if withdrawal < 0 {
			continue
		}
		for _, kw := range remarkKeywords {
			remark := indexOf(rows[i], func(h string) bool { return strings.Contains(h, kw) })
			if remark >= 0 {
				return columns{header: i, remark: remark, withdrawal: withdrawal}, true
			}
		}
	}
	return columns{}, false
}

func indexOf(row []string, match func(string) bool) int {
	for i, cell := range row {
		if match(strings.ToLower(strings.TrimSpace(cell))) {
			return i
		}
	}
	return -1
}

func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

var amountNoise = strings.NewReplacer(",", "", "₹", "", "INR", "", "Rs.", "", "Rs", "", " ", "")

// parseAmount reads a withdrawal cell. Blank or non-numeric cells are invalid.
func parseAmount(s string) decimal.NullDecimal {
	s = amountNoise.Replace(strings.TrimSpace(s))
	if s == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}
