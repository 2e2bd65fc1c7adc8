package media

import "sort"

// minDimension is the smallest width or height, exclusive, of a listable asset.
const minDimension = 10

// Merge tags every asset with the kind its query was dispatched for, concatenates
// the pages in order and sorts by creation time, newest first. Equal timestamps
// keep their concatenation order.
func Merge(pages []RawPage) []Asset {
	n := 0
	for _, p := range pages {
		n += len(p.Assets)
	}
	merged := make([]Asset, 0, n)
	for _, p := range pages {
		for _, a := range p.Assets {
			a.Kind = p.Kind
			merged = append(merged, a)
		}
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})
	return merged
}

// Usable reports whether an asset is worth showing: non-empty, and not a
// sliver when it has dimensions.
func Usable(a Asset) bool {
	if a.SizeBytes <= 0 {
		return false
	}
	if a.Width != nil && *a.Width <= minDimension {
		return false
	}
	if a.Height != nil && *a.Height <= minDimension {
		return false
	}
	return true
}

// FirstCursor returns the first non-empty continuation token, in page order.
func FirstCursor(pages []RawPage) string {
	for _, p := range pages {
		if p.NextCursor != "" {
			return p.NextCursor
		}
	}
	return ""
}

// Aggregate merges kind-scoped pages into the gallery envelope: sorted newest
// first, degenerate assets dropped, delivery URLs rewritten for browsers.
func Aggregate(pages []RawPage, d Delivery) Page {
	merged := Merge(pages)
	items := make([]Asset, 0, len(merged))
	for _, a := range merged {
		if !Usable(a) {
			continue
		}
		a.DeliveryURL = d.Transformed(a.Kind, a.ID, a.Format)
		items = append(items, a)
	}
	return Page{
		Total:  len(items),
		Cursor: FirstCursor(pages),
		Items:  items,
	}
}

// Collect merges kind-scoped pages without filtering, pointing each asset at
// its untransformed URL. With visitorsOnly set, only tributes are kept.
func Collect(pages []RawPage, d Delivery, visitorsOnly bool) Page {
	merged := Merge(pages)
	items := make([]Asset, 0, len(merged))
	for _, a := range merged {
		if visitorsOnly && !a.Tags.IsTribute() {
			continue
		}
		a.DeliveryURL = d.Plain(a.Kind, a.ID, a.Format)
		items = append(items, a)
	}
	return Page{
		Total:  len(items),
		Cursor: FirstCursor(pages),
		Items:  items,
	}
}
