package score

import (
	"github.com/chaz8081/gostt-score/internal/numexpand"
	"github.com/chaz8081/gostt-score/internal/textnorm"
)

// ReferenceSet holds the accepted normalizations of one ground-truth
// transcript: the literal text and the text with numerals spelled out. A
// hypothesis may match either one. The zero value has two empty variants.
type ReferenceSet struct {
	literal string
	spoken  string
}

// BuildReferenceSet normalizes groundTruth as written and after numeral
// expansion with e.
func BuildReferenceSet(groundTruth string, e *numexpand.Expander) ReferenceSet {
	return ReferenceSet{
		literal: textnorm.Normalize(groundTruth),
		spoken:  textnorm.Normalize(e.Expand(groundTruth)),
	}
}

// Literal returns the normalized transcript with numerals as written.
func (r ReferenceSet) Literal() string { return r.literal }

// Spoken returns the normalized transcript with numerals spelled out.
func (r ReferenceSet) Spoken() string { return r.spoken }

// Alternatives returns both variants, literal first.
func (r ReferenceSet) Alternatives() []string {
	return []string{r.literal, r.spoken}
}

// tokens returns the variants split into tokens, literal first.
func (r ReferenceSet) tokens() [][]string {
	return [][]string{textnorm.Tokens(r.literal), textnorm.Tokens(r.spoken)}
}
