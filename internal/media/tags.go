package media

import (
	"net/url"
	"sort"
	"strings"
)

// Tag keys that mark an asset as a visitor tribute.
const (
	TagName  = "name"
	TagStory = "story"
)

// Tags holds free-text key/value annotations attached at upload time.
type Tags map[string]string

// Get returns the trimmed value for key.
func (t Tags) Get(key string) string {
	return strings.TrimSpace(t[key])
}

// IsTribute reports whether the asset was submitted by a visitor.
func (t Tags) IsTribute() bool {
	return t.Get(TagName) != "" || t.Get(TagStory) != ""
}

// EncodeTags flattens tags into the single string the store keeps with an object.
// Keys and values are query-escaped so '|' and '=' in user text survive.
func EncodeTags(t Tags) string {
	if len(t) == 0 {
		return ""
	}
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, url.QueryEscape(k)+"="+url.QueryEscape(t[k]))
	}
	return strings.Join(parts, "|")
}

// DecodeTags reverses EncodeTags. Malformed entries are skipped.
func DecodeTags(raw string) Tags {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	tags := Tags{}
	for _, entry := range strings.Split(raw, "|") {
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		key, err := url.QueryUnescape(k)
		if err != nil || strings.TrimSpace(key) == "" {
			continue
		}
		val, err := url.QueryUnescape(v)
		if err != nil {
			continue
		}
		tags[key] = val
	}
	if len(tags) == 0 {
		return nil
	}
	return tags
}

// ParseContext reads the visitor-facing `key=value|key=value` form verbatim.
// Values keep any '=' after the first; entries without a key are skipped.
func ParseContext(raw string) Tags {
	tags := Tags{}
	for _, entry := range strings.Split(raw, "|") {
		k, v, ok := strings.Cut(entry, "=")
		key := strings.ToLower(strings.TrimSpace(k))
		if !ok || key == "" {
			continue
		}
		tags[key] = strings.TrimSpace(v)
	}
	return tags
}
