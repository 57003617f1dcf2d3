// Package parser recovers payment method, recipient and a cleaned
// description from bank-statement remark text. Extraction is best-effort:
// every function degrades to Unknown or the input text instead of failing.
package parser

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	Unknown = "Unknown"

	upiToken     = "upi"
	viaToken     = "via"
	debitMarker  = "/DR/"
	segmentDelim = "/"
)

// tokenSeparators are split off like a treebank tokenizer would; "/", "-",
// "." and "_" stay inside tokens so reference strings remain whole.
const tokenSeparators = ";@#$%&,:()[]{}\"'!?"

var slashSegment = regexp.MustCompile(`/[\p{L}\p{N}_]+/`)

type Fields struct {
	PaymentMethod     string
	RecipientMerchant string
	CleanedRemark     string
}

// scan is one remark prepared for the token rules.
type scan struct {
	remark string
	lower  string
	tokens []string
	tags   []Tag
}

// rule inspects token i of a scan and reports a payment method when it fires.
type rule struct {
	name  string
	apply func(s *scan, i int) (string, bool)
}

type Parser struct {
	tables Tables
	tagger Tagger
	rules  []rule
}

func New(tables Tables, tagger Tagger) *Parser {
	if tagger == nil {
		tagger = DefaultTagger()
	}
	p := &Parser{tables: tables, tagger: tagger}
	p.rules = []rule{
		{name: "wallet-app", apply: p.walletApp},
		{name: "upi", apply: p.upi},
		{name: "alias", apply: p.alias},
		{name: "substring", apply: p.substring},
		{name: "slash-segment", apply: slashBankCode},
	}
	return p
}

func Default() *Parser {
	return New(DefaultTables(), DefaultTagger())
}

func (p *Parser) Parse(remark string) Fields {
	return Fields{
		PaymentMethod:     p.PaymentMethod(remark),
		RecipientMerchant: Recipient(remark),
		CleanedRemark:     CleanRemark(remark),
	}
}

// PaymentMethod scans tokens left to right and returns the result of the
// first rule that fires on any token.
func (p *Parser) PaymentMethod(remark string) string {
	method, _ := p.match(remark)
	return method
}

// Explain is PaymentMethod plus the name of the rule that produced it.
func (p *Parser) Explain(remark string) (method, ruleName string) {
	return p.match(remark)
}

func (p *Parser) match(remark string) (string, string) {
	lower := strings.ToLower(remark)
	tokens := tokenize(lower)
	tags := p.tagger.Tag(tokens)
	if len(tags) < len(tokens) {
		padded := make([]Tag, len(tokens))
		copy(padded, tags)
		tags = padded
	}
	s := &scan{remark: remark, lower: lower, tokens: tokens, tags: tags}
	for i := range s.tokens {
		for _, r := range p.rules {
			if method, ok := r.apply(s, i); ok {
				return method, r.name
			}
		}
	}
	return Unknown, ""
}

func (p *Parser) walletApp(s *scan, i int) (string, bool) {
	name, ok := p.tables.WalletApps[s.tokens[i]]
	return name, ok
}

func (p *Parser) upi(s *scan, i int) (string, bool) {
	if s.tokens[i] != upiToken {
		return "", false
	}
	for j := 0; j < i; j++ {
		if s.tags[j] != TagPreposition && s.tokens[j] != viaToken {
			continue
		}
		for k := i + 1; k < len(s.tokens); k++ {
			if s.tags[k] == TagProperNoun {
				return "UPI via " + s.tokens[k], true
			}
		}
		break
	}
	return "UPI", true
}

func (p *Parser) alias(s *scan, i int) (string, bool) {
	method, ok := p.tables.Aliases[s.tokens[i]]
	return method, ok
}

func (p *Parser) substring(s *scan, _ int) (string, bool) {
	for _, sub := range p.tables.Substrings {
		if strings.Contains(s.lower, strings.ToLower(sub.Needle)) {
			return sub.Method, true
		}
	}
	return "", false
}

// slashBankCode handles "UPI/123/DR/NAME/BANK/..." style references. The
// segment positions come from one observed statement layout.
func slashBankCode(s *scan, _ int) (string, bool) {
	if !slashSegment.MatchString(s.remark) {
		return "", false
	}
	parts := strings.Split(s.remark, segmentDelim)
	if len(parts) <= 3 {
		return "", false
	}
	code := parts[3]
	if len(parts) > 4 && !strings.Contains(parts[4], "@") {
		code = parts[4]
	}
	return "UPI via " + strings.TrimSpace(code), true
}

// Recipient returns the counterparty named right after "/DR/". A present but
// blank segment yields "".
func Recipient(remark string) string {
	parts := strings.SplitN(remark, debitMarker, 2)
	if len(parts) < 2 {
		return Unknown
	}
	name, _, _ := strings.Cut(parts[1], segmentDelim)
	return strings.TrimSpace(name)
}

// CleanRemark keeps only the free-text tail of long slash-delimited remarks.
func CleanRemark(remark string) string {
	parts := strings.Split(remark, segmentDelim)
	if len(parts) > 4 {
		return strings.TrimSpace(parts[len(parts)-1])
	}
	return strings.TrimSpace(remark)
}

func tokenize(lower string) []string {
	fields := strings.FieldsFunc(lower, func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune(tokenSeparators, r)
	})
	tokens := fields[:0]
	for _, f := range fields {
		if f = strings.TrimRight(f, "."); f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
