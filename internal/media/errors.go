package media

import "errors"

var (
	// ErrInvalidKind indicates a kind filter other than image or video.
	ErrInvalidKind = errors.New("invalid media kind")
	// ErrInvalidCursor indicates a continuation token the store did not issue.
	ErrInvalidCursor = errors.New("invalid cursor")
)
