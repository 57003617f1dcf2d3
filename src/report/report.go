package report

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/wcharczuk/go-chart/v2"

	"ledgerlens-server/src/models"
)

const (
	PaymentMethodChart = "payment_method_distribution.png"
	AmountChart        = "withdrawal_amount_distribution.png"
	RecipientChart     = "top_recipients_distribution.png"

	histogramBins = 20
	topRecipients = 10
)

// Generator renders the PNG charts shown after an upload.
type Generator struct {
	Width  int
	Height int
	log    zerolog.Logger
}

func NewGenerator(log zerolog.Logger) *Generator {
	return &Generator{Width: 1000, Height: 600, log: log}
}

// Render writes every chart that has data into dir and returns the file
// names it created. Charts without data are skipped, not errors.
func (g *Generator) Render(dir string, txns []models.ParsedTransaction) ([]string, error) {
	if len(txns) == 0 {
		return []string{}, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating plots directory: %w", err)
	}

	created := []string{}
	for _, c := range []struct {
		name  string
		build func([]models.ParsedTransaction) renderer
	}{
		{PaymentMethodChart, g.paymentMethods},
		{AmountChart, g.amounts},
		{RecipientChart, g.recipients},
	} {
		r := c.build(txns)
		if r == nil {
			g.log.Debug().Str("chart", c.name).Msg("no data for chart, skipping")
			continue
		}
		if err := writePNG(filepath.Join(dir, c.name), r); err != nil {
			return created, fmt.Errorf("rendering %s: %w", c.name, err)
		}
		created = append(created, c.name)
	}
	return created, nil
}

func (g *Generator) paymentMethods(txns []models.ParsedTransaction) renderer {
	counts := rank(txns, func(t models.ParsedTransaction) string { return t.PaymentMethod })
	if len(counts) == 0 {
		return nil
	}
	bars := make([]chart.Value, len(counts))
	for i, c := range counts {
		bars[i] = chart.Value{Label: c.key, Value: float64(c.count)}
	}
	return g.barChart("Payment Method Distribution", bars)
}

func (g *Generator) amounts(txns []models.ParsedTransaction) renderer {
	var values []float64
	for _, t := range txns {
		if t.Withdrawal.Valid {
			values = append(values, t.Withdrawal.Decimal.InexactFloat64())
		}
	}
	if len(values) == 0 {
		return nil
	}
	return g.barChart("Withdrawal Amount Distribution", histogram(values, histogramBins))
}

func (g *Generator) recipients(txns []models.ParsedTransaction) renderer {
	counts := rank(txns, func(t models.ParsedTransaction) string { return t.RecipientMerchant })
	if len(counts) == 0 {
		return nil
	}
	if len(counts) > topRecipients {
		counts = counts[:topRecipients]
	}
	total := 0
	for _, c := range counts {
		total += c.count
	}
	values := make([]chart.Value, len(counts))
	for i, c := range counts {
		values[i] = chart.Value{
			Label: fmt.Sprintf("%s (%.1f%%)", c.key, 100*float64(c.count)/float64(total)),
			Value: float64(c.count),
		}
	}
	return &chart.PieChart{
		Title:  "Top 10 Recipients",
		Width:  g.Width,
		Height: g.Height,
		Values: values,
	}
}

func (g *Generator) barChart(title string, bars []chart.Value) *chart.BarChart {
	// go-chart refuses a zero-height range, so the y axis is pinned from 0.
	top := 1.0
	for _, b := range bars {
		top = math.Max(top, b.Value)
	}
	return &chart.BarChart{
		Title: title,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		Width:    g.Width,
		Height:   g.Height,
		BarWidth: barWidth(g.Width, len(bars)),
		Bars:     bars,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: math.Ceil(top * 1.1)},
		},
	}
}

func barWidth(width, bars int) int {
	w := width / (bars*2 + 1)
	if w > 60 {
		return 60
	}
	if w < 4 {
		return 4
	}
	return w
}

func writePNG(path string, r renderer) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := r.Render(chart.PNG, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

type renderer interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

type tally struct {
	key   string
	count int
}

// rank counts non-blank keys, most frequent first, ties in first-seen order.
func rank(txns []models.ParsedTransaction, key func(models.ParsedTransaction) string) []tally {
	index := map[string]int{}
	var out []tally
	for _, t := range txns {
		k := strings.TrimSpace(key(t))
		if k == "" {
			continue
		}
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, tally{key: k})
		}
		out[i].count++
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].count > out[j].count })
	return out
}

// histogram buckets values into equal-width bins labelled by their lower edge.
func histogram(values []float64, bins int) []chart.Value {
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	width := (hi - lo) / float64(bins)

	counts := make([]int, bins)
	for _, v := range values {
		i := int((v - lo) / width)
		if i >= bins {
			i = bins - 1
		}
		counts[i]++
	}

	out := make([]chart.Value, bins)
	for i, c := range counts {
		out[i] = chart.Value{
			Label: fmt.Sprintf("%.0f", lo+float64(i)*width),
			Value: float64(c),
		}
	}
	return out
}
