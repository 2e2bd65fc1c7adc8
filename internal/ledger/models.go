package ledger

import (
	"time"

	"github.com/abduss/memorial/internal/media"
)

// Entry records one upload accepted by the media store.
type Entry struct {
	ID        string     `json:"id"`
	Folder    string     `json:"folder"`
	Kind      media.Kind `json:"kind"`
	Format    string     `json:"format"`
	SizeBytes int64      `json:"size_bytes"`
	Tags      media.Tags `json:"tags,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
