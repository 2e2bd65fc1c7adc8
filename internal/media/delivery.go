package media

import "strings"

const (
	transformVideo = "q_auto"
	transformHEIC  = "f_jpg,q_auto"
	transformImage = "f_auto,q_auto"
)

// Delivery builds fully-qualified URLs on the transformation edge in front of the store.
type Delivery struct {
	base string
}

// NewDelivery returns a builder rooted at base, e.g. "https://media.example.org".
func NewDelivery(base string) Delivery {
	return Delivery{base: strings.TrimRight(base, "/")}
}

// Transformed returns the browser-ready URL for an asset: automatic quality for
// video, HEIC coerced to jpg, automatic format and quality for other images.
func (d Delivery) Transformed(kind Kind, id, format string) string {
	if kind == KindVideo {
		return d.build(KindVideo, transformVideo, id, format)
	}
	if strings.EqualFold(format, "heic") {
		return d.build(KindImage, transformHEIC, id, "jpg")
	}
	return d.build(KindImage, transformImage, id, format)
}

// Plain returns the untransformed URL for an asset.
func (d Delivery) Plain(kind Kind, id, format string) string {
	return d.build(kind, "", id, format)
}

func (d Delivery) build(kind Kind, transform, id, format string) string {
	var b strings.Builder
	b.WriteString(d.base)
	b.WriteByte('/')
	b.WriteString(string(kind))
	b.WriteString("/upload/")
	if transform != "" {
		b.WriteString(transform)
		b.WriteByte('/')
	}
	b.WriteString(strings.TrimLeft(id, "/"))
	if format != "" {
		b.WriteByte('.')
		b.WriteString(format)
	}
	return b.String()
}
