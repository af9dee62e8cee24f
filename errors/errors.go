package errors

import "fmt"

var (
	ErrEmptyUsername = fmt.Errorf("username is required")
	ErrEmptyText     = fmt.Errorf("text is required")
	ErrNoUsername    = fmt.Errorf("no username has been set")
	ErrSendInFlight  = fmt.Errorf("a send is already in flight")
	ErrEmptyWords    = fmt.Errorf("no words have been found")
)
