package moderation

import "errors"

var (
	ErrUnauthorized = errors.New("Unauthorized")
	ErrNotFound     = errors.New("Vibe not found")
	ErrNotPending   = errors.New("Vibe is not pending review")
)
