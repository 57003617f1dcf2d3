// Package rules loads the parser and categorizer lookup tables from YAML.
// Sections left out of the file keep their built-in defaults.
package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"ledgerlens-server/src/categorize"
	"ledgerlens-server/src/models"
	"ledgerlens-server/src/parser"
)

// Tagger names accepted in the rules file.
const (
	TaggerLexicon = "lexicon"
	TaggerProse   = "prose"
)

type Set struct {
	Tagger       string                `yaml:"tagger,omitempty"`
	WalletApps   map[string]string     `yaml:"wallet_apps,omitempty"`
	Aliases      map[string]string     `yaml:"aliases,omitempty"`
	Substrings   []parser.Substring    `yaml:"substrings,omitempty"`
	Prepositions []string              `yaml:"prepositions,omitempty"`
	ProperNouns  []string              `yaml:"proper_nouns,omitempty"`
	Categories   []models.CategoryRule `yaml:"categories,omitempty"`
}

func Default() *Set {
	tables := parser.DefaultTables()
	return &Set{
		Tagger:       TaggerLexicon,
		WalletApps:   tables.WalletApps,
		Aliases:      tables.Aliases,
		Substrings:   tables.Substrings,
		Prepositions: parser.DefaultPrepositions,
		ProperNouns:  parser.DefaultProperNouns,
		Categories:   categorize.DefaultRules(),
	}
}

// Load reads a rules file. An empty path returns the defaults.
func Load(path string) (*Set, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Set, error) {
	var file Set
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing rules: %w", err)
	}
	set := Default()
	if file.Tagger != "" {
		set.Tagger = file.Tagger
	}
	if file.WalletApps != nil {
		set.WalletApps = file.WalletApps
	}
	if file.Aliases != nil {
		set.Aliases = file.Aliases
	}
	if file.Substrings != nil {
		set.Substrings = file.Substrings
	}
	if file.Prepositions != nil {
		set.Prepositions = file.Prepositions
	}
	if file.ProperNouns != nil {
		set.ProperNouns = file.ProperNouns
	}
	if file.Categories != nil {
		set.Categories = file.Categories
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}
	return set, nil
}

func (s *Set) Validate() error {
	switch s.Tagger {
	case "", TaggerLexicon, TaggerProse:
	default:
		return fmt.Errorf("unknown tagger %q", s.Tagger)
	}
	for i, r := range s.Categories {
		if _, ok := models.ParseCategory(string(r.Category)); !ok {
			return fmt.Errorf("category rule %d (%s): unknown category %q", i, r.Name, r.Category)
		}
		switch r.Field {
		case models.FieldRecipient, models.FieldRemark, models.FieldPaymentMethod:
		default:
			return fmt.Errorf("category rule %d (%s): unknown field %q", i, r.Name, r.Field)
		}
		if len(r.Keywords) == 0 {
			return fmt.Errorf("category rule %d (%s): no keywords", i, r.Name)
		}
	}
	for i, sub := range s.Substrings {
		if sub.Needle == "" || sub.Method == "" {
			return fmt.Errorf("substring rule %d: needle and method are required", i)
		}
	}
	return nil
}

func (s *Set) Parser() *parser.Parser {
	tables := parser.Tables{
		WalletApps: s.WalletApps,
		Aliases:    s.Aliases,
		Substrings: s.Substrings,
	}
	var tagger parser.Tagger = parser.NewLexiconTagger(s.Prepositions, s.ProperNouns)
	if s.Tagger == TaggerProse {
		tagger = parser.NewProseTagger(tagger)
	}
	return parser.New(tables, tagger)
}

func (s *Set) Categorizer() *categorize.Categorizer {
	return categorize.New(s.Categories)
}
