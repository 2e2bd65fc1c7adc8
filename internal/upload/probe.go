package upload

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"strings"
	"time"

	"github.com/abduss/memorial/internal/media"
	"github.com/gabriel-vasile/mimetype"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// headLimit bounds how much of a payload is buffered for probing. JPEG EXIF
// segments sit before the frame header and may be up to 64 KiB.
const headLimit = 256 * 1024

// Probe describes a payload after sniffing its leading bytes.
type Probe struct {
	Kind        media.Kind
	Format      string
	ContentType string
	Width       *int
	Height      *int
	CapturedAt  *time.Time
}

// Inspect sniffs r and returns what it found together with a reader that
// replays the whole payload from the start.
func Inspect(r io.Reader) (Probe, io.Reader, error) {
	head := make([]byte, headLimit)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return Probe{}, nil, fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]
	body := io.MultiReader(bytes.NewReader(head), r)

	mime := mimetype.Detect(head)
	contentType, _, _ := strings.Cut(mime.String(), ";")

	p := Probe{ContentType: contentType, Format: formatOf(mime)}
	switch {
	case strings.HasPrefix(contentType, "image/"):
		p.Kind = media.KindImage
	case strings.HasPrefix(contentType, "video/"):
		p.Kind = media.KindVideo
		return p, body, nil
	default:
		return Probe{}, nil, fmt.Errorf("%w: detected %s", ErrUnsupportedMedia, contentType)
	}

	if cfg, _, err := image.DecodeConfig(bytes.NewReader(head)); err == nil && cfg.Width > 0 && cfg.Height > 0 {
		w, h := cfg.Width, cfg.Height
		p.Width, p.Height = &w, &h
	}
	readExif(head, &p)

	return p, body, nil
}

func formatOf(mime *mimetype.MIME) string {
	format := strings.TrimPrefix(mime.Extension(), ".")
	if format == "" {
		_, sub, _ := strings.Cut(mime.String(), "/")
		sub, _, _ = strings.Cut(sub, ";")
		format = sub
	}
	format = strings.ToLower(format)
	if format == "jpeg" {
		format = "jpg"
	}
	return format
}

// readExif fills the capture time and corrects dimensions for rotated photos.
func readExif(head []byte, p *Probe) {
	x, err := exif.Decode(bytes.NewReader(head))
	if err != nil {
		return
	}
	if dt, err := x.DateTime(); err == nil {
		ts := dt.UTC()
		p.CapturedAt = &ts
	}
	if p.Width == nil || p.Height == nil {
		return
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return
	}
	// Orientations 5-8 are transposed: stored width is displayed height.
	if o, err := tag.Int(0); err == nil && o >= 5 && o <= 8 {
		p.Width, p.Height = p.Height, p.Width
	}
}
