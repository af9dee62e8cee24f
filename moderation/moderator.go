// Package moderation censors configured words in message text before
// it is stored. Matching ignores case, punctuation and spacing, so
// spaced-out or punctuated spellings of a censored word are still caught.
package moderation

import (
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"

	"chatboard/errors"
)

type Moderator struct {
	machine     *goahocorasick.Machine
	replacement rune
}

// NewModerator builds the Aho-Corasick automaton over the normalized
// word list. An empty list is an error: callers that want moderation
// off simply keep a nil *Moderator.
func NewModerator(words []string, replacement rune) (*Moderator, error) {
	if len(words) == 0 {
		return nil, errors.ErrEmptyWords
	}
	patterns := make([][]rune, 0, len(words))
	for _, word := range words {
		if norm, _ := normalize([]rune(word)); len(norm) > 0 {
			patterns = append(patterns, norm)
		}
	}
	if len(patterns) == 0 {
		return nil, errors.ErrEmptyWords
	}

	machine := new(goahocorasick.Machine)
	if err := machine.Build(patterns); err != nil {
		return nil, err
	}
	return &Moderator{machine: machine, replacement: replacement}, nil
}

// Censor replaces every matched span of the original text with the
// replacement rune. The span covers the original characters of the
// match including any noise runes embedded in it, so "s p a m" is
// blanked out whole.
func (m *Moderator) Censor(text string) string {
	original := []rune(text)
	normalized, origIdx := normalize(original)
	if len(normalized) == 0 {
		return text
	}

	hits := m.machine.MultiPatternSearch(normalized, false)
	if len(hits) == 0 {
		return text
	}

	for _, hit := range hits {
		start := hit.Pos
		end := start + len(hit.Word)
		if start < 0 || end > len(origIdx) {
			continue
		}
		for i := origIdx[start]; i <= origIdx[end-1]; i++ {
			original[i] = m.replacement
		}
	}
	return string(original)
}

// normalize lowercases the input and strips noise runes, keeping for
// each surviving rune the index it had in the original text.
func normalize(input []rune) ([]rune, []int) {
	normalized := make([]rune, 0, len(input))
	origIdx := make([]int, 0, len(input))
	for i, r := range input {
		if isNoise(r) {
			continue
		}
		normalized = append(normalized, unicode.ToLower(r))
		origIdx = append(origIdx, i)
	}
	return normalized, origIdx
}

func isNoise(r rune) bool {
	return unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r)
}
