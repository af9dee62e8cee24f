package moderation

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Sizes the automaton against a realistic blacklist: building happens
// once at startup, Censor runs on every message.
func Benchmark_Censor(b *testing.B) {
	req := require.New(b)
	words := make([]string, 10_000)
	for i := range words {
		words[i] = fmt.Sprintf("badword%05d", i)
	}
	moderator, err := NewModerator(words, '*')
	req.NoError(err)

	text := strings.Repeat("a perfectly ordinary chat line, badword00042 included. ", 4)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		moderator.Censor(text)
	}
}

func Benchmark_New_Moderator(b *testing.B) {
	req := require.New(b)
	words := make([]string, 10_000)
	for i := range words {
		words[i] = fmt.Sprintf("badword%05d", i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := NewModerator(words, '*')
		req.NoError(err)
	}
}
