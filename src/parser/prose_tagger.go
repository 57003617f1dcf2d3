package parser

import (
	"strings"
	"sync"

	"github.com/jdkato/prose/v2"
)

// ProseTagger tags tokens with prose's averaged perceptron model and maps
// the Penn Treebank tags onto Tag. Remarks reach the tagger lowercased, so
// the model rarely reports proper nouns; tokens it leaves as TagOther fall
// back to the lexicon.
type ProseTagger struct {
	fallback Tagger

	once  sync.Once
	model *prose.Model
	err   error
}

func NewProseTagger(fallback Tagger) *ProseTagger {
	if fallback == nil {
		fallback = DefaultTagger()
	}
	return &ProseTagger{fallback: fallback}
}

// loadModel builds the embedded model once; every later document reuses it.
func (t *ProseTagger) loadModel() (*prose.Model, error) {
	t.once.Do(func() {
		doc, err := prose.NewDocument("", prose.WithSegmentation(false), prose.WithExtraction(false))
		if err != nil {
			t.err = err
			return
		}
		t.model = doc.Model
	})
	return t.model, t.err
}

func (t *ProseTagger) Tag(tokens []string) []Tag {
	tags := t.fallback.Tag(tokens)
	if len(tokens) == 0 {
		return tags
	}
	model, err := t.loadModel()
	if err != nil {
		return tags
	}
	doc, err := prose.NewDocument(strings.Join(tokens, " "),
		prose.UsingModel(model),
		prose.WithSegmentation(false),
		prose.WithExtraction(false))
	if err != nil {
		return tags
	}
	for i, tag := range alignTags(tokens, doc.Tokens()) {
		if tag != TagOther {
			tags[i] = tag
		}
	}
	return tags
}

// alignTags maps prose tokens back onto ours. prose may split one of our
// tokens into several pieces; the first piece decides the tag.
func alignTags(tokens []string, pieces []prose.Token) []Tag {
	tags := make([]Tag, len(tokens))
	p := 0
	for i, tok := range tokens {
		if p >= len(pieces) {
			break
		}
		tags[i] = pennTag(pieces[p].Tag)
		consumed := 0
		for p < len(pieces) && consumed < len(tok) {
			consumed += len(pieces[p].Text)
			p++
		}
	}
	return tags
}

func pennTag(tag string) Tag {
	switch tag {
	case "IN":
		return TagPreposition
	case "NNP", "NNPS":
		return TagProperNoun
	}
	return TagOther
}
