package domain

import (
	"testing"

	"github.com/stretchr/testify/require"

	"chatboard/errors"
)

func Test_New_Message_Populates_Every_Field(t *testing.T) {
	req := require.New(t)
	message := NewMessage("alice", "hi")
	req.NotEmpty(message.ID)
	req.Equal("alice", message.Username)
	req.Equal("hi", message.Text)
	req.Positive(message.Timestamp)
	req.NoError(message.Validate())
}

func Test_New_Message_Ids_Are_Unique(t *testing.T) {
	req := require.New(t)
	first := NewMessage("alice", "hi")
	second := NewMessage("alice", "hi")
	req.NotEqual(first.ID, second.ID)
}

func Test_Validate_New_Message_Rejects_Blank_Fields(t *testing.T) {
	req := require.New(t)
	req.NoError(ValidateNewMessage("alice", "hi"))
	req.ErrorIs(ValidateNewMessage("", "hi"), errors.ErrEmptyUsername)
	req.ErrorIs(ValidateNewMessage("   ", "hi"), errors.ErrEmptyUsername)
	req.ErrorIs(ValidateNewMessage("alice", ""), errors.ErrEmptyText)
	req.ErrorIs(ValidateNewMessage("alice", " \t "), errors.ErrEmptyText)
}

func Test_Validate_Catches_Incomplete_Record(t *testing.T) {
	req := require.New(t)
	message := NewMessage("alice", "hi")
	message.ID = ""
	req.Error(message.Validate())
}
