package mediastore

import (
	"encoding/base64"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/abduss/memorial/internal/media"
)

// Object keys look like <kind>/<folder>/<rank>-<uuid>.<ext>. The rank inverts
// the creation time so ascending key order is newest first.
const rankWidth = 19

func rank(t time.Time) string {
	return fmt.Sprintf("%0*d", rankWidth, math.MaxInt64-t.UnixNano())
}

func rankTime(r string) (time.Time, bool) {
	if len(r) != rankWidth {
		return time.Time{}, false
	}
	n, err := strconv.ParseInt(r, 10, 64)
	if err != nil || n < 0 {
		return time.Time{}, false
	}
	return time.Unix(0, math.MaxInt64-n).UTC(), true
}

func listPrefix(kind media.Kind, folder string) string {
	return string(kind) + "/" + strings.Trim(folder, "/") + "/"
}

func objectKey(kind media.Kind, folder, name string) string {
	return listPrefix(kind, folder) + name
}

// entryName is the final key segment: <rank>-<uuid>.<ext>.
type entryName struct {
	rank string
	id   string
	ext  string
}

func (n entryName) String() string {
	s := n.rank + "-" + n.id
	if n.ext != "" {
		s += "." + n.ext
	}
	return s
}

// position identifies an asset within its folder, independent of kind and extension.
func (n entryName) position() string {
	return n.rank + "-" + n.id
}

func parseEntryName(name string) (entryName, bool) {
	if name == "" || strings.Contains(name, "/") {
		return entryName{}, false
	}
	base, ext := name, ""
	if i := strings.LastIndexByte(name, '.'); i > 0 {
		base, ext = name[:i], name[i+1:]
	}
	r, id, ok := strings.Cut(base, "-")
	if !ok || id == "" {
		return entryName{}, false
	}
	if _, ok := rankTime(r); !ok {
		return entryName{}, false
	}
	return entryName{rank: r, id: id, ext: ext}, true
}

func publicID(folder string, n entryName) string {
	return strings.Trim(folder, "/") + "/" + n.position()
}

// encodeCursor makes an opaque continuation token from the last listed entry.
func encodeCursor(n entryName) string {
	return base64.RawURLEncoding.EncodeToString([]byte(n.String()))
}

// decodeCursor reverses encodeCursor.
func decodeCursor(cursor string) (entryName, error) {
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return entryName{}, fmt.Errorf("%w: %v", media.ErrInvalidCursor, err)
	}
	n, ok := parseEntryName(string(raw))
	if !ok {
		return entryName{}, fmt.Errorf("%w: unrecognised position", media.ErrInvalidCursor)
	}
	return n, nil
}
