package parser

type Tag int

const (
	TagOther Tag = iota
	TagPreposition
	TagProperNoun
)

// Tagger assigns a coarse part-of-speech tag to each lowercased token.
type Tagger interface {
	Tag(tokens []string) []Tag
}

// LexiconTagger tags tokens by dictionary lookup. Remarks are lowercased
// before tagging, so proper nouns are recognised from a fixed list of bank
// and payment-handle names rather than by capitalisation.
type LexiconTagger struct {
	prepositions map[string]struct{}
	properNouns  map[string]struct{}
}

func NewLexiconTagger(prepositions, properNouns []string) *LexiconTagger {
	return &LexiconTagger{
		prepositions: toSet(prepositions),
		properNouns:  toSet(properNouns),
	}
}

func DefaultTagger() *LexiconTagger {
	return NewLexiconTagger(DefaultPrepositions, DefaultProperNouns)
}

func (t *LexiconTagger) Tag(tokens []string) []Tag {
	tags := make([]Tag, len(tokens))
	for i, tok := range tokens {
		if _, ok := t.prepositions[tok]; ok {
			tags[i] = TagPreposition
		} else if _, ok := t.properNouns[tok]; ok {
			tags[i] = TagProperNoun
		}
	}
	return tags
}

var DefaultPrepositions = []string{
	"via", "through", "by", "from", "to", "with", "in", "on", "at", "for", "of", "into", "using",
}

var DefaultProperNouns = []string{
	"sbi", "hdfc", "icici", "axis", "kotak", "pnb", "bob", "canara", "idfc", "indusind",
	"yesbank", "federal", "rbl", "ybl", "ibl", "axl", "apl", "upi123",
	"okaxis", "okhdfcbank", "okicici", "oksbi", "paytmbank", "airtel", "jio", "bhim",
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
