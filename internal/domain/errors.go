package domain

import "errors"

// Sentinel errors for the room engine. These are the only failures an engine
// operation can report; everything else is a silent no-op.
var (
	ErrRoomNotFound = errors.New("room not found")
	ErrRoomFull     = errors.New("room full")
	ErrInvalidBody  = errors.New("invalid body")
)
