package media

import (
	"fmt"
	"strings"
	"time"
)

// Kind classifies an asset as image or video.
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

// Kinds lists every kind in query dispatch order.
var Kinds = []Kind{KindImage, KindVideo}

// ParseKind accepts "image" or "video" in any case. An empty string yields "" (all kinds).
func ParseKind(raw string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return "", nil
	case string(KindImage):
		return KindImage, nil
	case string(KindVideo):
		return KindVideo, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidKind, raw)
	}
}

// Asset is a stored image or video as exposed to clients.
type Asset struct {
	ID          string     `json:"id"`
	Kind        Kind       `json:"kind"`
	Format      string     `json:"format"`
	CreatedAt   time.Time  `json:"created_at"`
	SizeBytes   int64      `json:"size_bytes"`
	Width       *int       `json:"width,omitempty"`
	Height      *int       `json:"height,omitempty"`
	DeliveryURL string     `json:"delivery_url"`
	Tags        Tags       `json:"tags,omitempty"`
	CapturedAt  *time.Time `json:"captured_at,omitempty"`
}

// Page is the paginated envelope returned by listings.
type Page struct {
	Total  int     `json:"total"`
	Cursor string  `json:"cursor,omitempty"`
	Items  []Asset `json:"items"`
}

// Query scopes one kind-specific list call against the store.
type Query struct {
	Folder string
	Kind   Kind
	Cursor string
	Limit  int
}

// RawPage is one kind-scoped result set as returned by the store.
type RawPage struct {
	Kind       Kind
	Assets     []Asset
	NextCursor string
}
