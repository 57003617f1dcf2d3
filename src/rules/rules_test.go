package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerlens-server/src/categorize"
	"ledgerlens-server/src/models"
	"ledgerlens-server/src/parser"
)

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	set, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, categorize.DefaultRules(), set.Categories)
	assert.Equal(t, "PhonePe", set.Parser().PaymentMethod("via phonepe"))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "reading rules")
}

func TestLoad_OverridesOnlyGivenSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	data := `
aliases:
  imps: Bank Transfer
categories:
  - name: fuel
    field: remark
    keywords: [petrol, diesel]
    category: Utilities
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	set, err := Load(path)
	require.NoError(t, err)

	p := set.Parser()
	assert.Equal(t, "Bank Transfer", p.PaymentMethod("IMPS 443"))
	assert.Equal(t, parser.Unknown, p.PaymentMethod("MAB 1"))
	assert.Equal(t, "GPay", p.PaymentMethod("gpay"))

	c := set.Categorizer()
	assert.Equal(t, models.CategoryUtilities, c.Categorize(categorize.Input{Remark: "diesel"}))
	assert.Equal(t, models.CategoryOthers, c.Categorize(categorize.Input{Recipient: "swiggy"}))
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"bad yaml", "categories: [", "parsing rules"},
		{"unknown category", "categories:\n  - {name: x, field: remark, keywords: [a], category: Travel}", "unknown category"},
		{"unknown field", "categories:\n  - {name: x, field: amount, keywords: [a], category: Food}", "unknown field"},
		{"no keywords", "categories:\n  - {name: x, field: remark, category: Food}", "no keywords"},
		{"empty substring", "substrings:\n  - {needle: '', method: X}", "needle and method"},
		{"unknown tagger", "tagger: spacy", "unknown tagger"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestParse_TaggerSelection(t *testing.T) {
	set, err := Parse([]byte("aliases:\n  imps: Bank Transfer\n"))
	require.NoError(t, err)
	assert.Equal(t, TaggerLexicon, set.Tagger)

	set, err = Parse([]byte("tagger: prose\n"))
	require.NoError(t, err)
	assert.Equal(t, TaggerProse, set.Tagger)
	assert.Equal(t, "UPI via hdfc", set.Parser().PaymentMethod("sent via upi hdfc"))
}
