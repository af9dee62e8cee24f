package moderation

import (
	"testing"

	"github.com/stretchr/testify/require"

	"chatboard/errors"
)

func Test_Censor_Replaces_Matched_Word(t *testing.T) {
	req := require.New(t)
	moderator, err := NewModerator([]string{"spam"}, '*')
	req.NoError(err)

	req.Equal("no **** allowed", moderator.Censor("no spam allowed"))
	req.Equal("no **** allowed", moderator.Censor("no SPAM allowed"))
}

func Test_Censor_Catches_Obfuscated_Spelling(t *testing.T) {
	req := require.New(t)
	moderator, err := NewModerator([]string{"spam"}, '*')
	req.NoError(err)

	// Spacing and punctuation inside the word are blanked with it.
	req.Equal("*******", moderator.Censor("s p a m"))
	req.Equal("******", moderator.Censor("s.p.am"))
}

func Test_Censor_Leaves_Clean_Text_Alone(t *testing.T) {
	req := require.New(t)
	moderator, err := NewModerator([]string{"spam"}, '*')
	req.NoError(err)

	clean := "perfectly fine message"
	req.Equal(clean, moderator.Censor(clean))
	req.Equal("!!!", moderator.Censor("!!!"))
}

func Test_New_Moderator_Requires_Words(t *testing.T) {
	req := require.New(t)
	_, err := NewModerator(nil, '*')
	req.ErrorIs(err, errors.ErrEmptyWords)

	_, err = NewModerator([]string{"..."}, '*')
	req.ErrorIs(err, errors.ErrEmptyWords)
}
