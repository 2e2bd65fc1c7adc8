package media

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBase = "https://media.example.org"

func at(hhmm string) time.Time {
	ts, err := time.Parse("15:04", hhmm)
	if err != nil {
		panic(err)
	}
	return ts
}

func dim(v int) *int { return &v }

func TestAggregateOrdersByTimestampAcrossKinds(t *testing.T) {
	pages := []RawPage{
		{Kind: KindImage, Assets: []Asset{
			{ID: "gallery/a", Format: "jpg", CreatedAt: at("10:00"), SizeBytes: 10},
			{ID: "gallery/b", Format: "jpg", CreatedAt: at("11:00"), SizeBytes: 10},
		}},
		{Kind: KindVideo, Assets: []Asset{
			{ID: "gallery/v", Format: "mp4", CreatedAt: at("10:30"), SizeBytes: 10},
		}},
	}

	page := Aggregate(pages, NewDelivery(testBase))

	require.Len(t, page.Items, 3)
	assert.Equal(t, "gallery/b", page.Items[0].ID)
	assert.Equal(t, "gallery/v", page.Items[1].ID)
	assert.Equal(t, KindVideo, page.Items[1].Kind)
	assert.Equal(t, "gallery/a", page.Items[2].ID)
	assert.Equal(t, 3, page.Total)
}

func TestAggregateSortIsNonIncreasingAndStable(t *testing.T) {
	same := at("09:00")
	pages := []RawPage{
		{Kind: KindImage, Assets: []Asset{
			{ID: "first", Format: "png", CreatedAt: same, SizeBytes: 1},
			{ID: "older", Format: "png", CreatedAt: at("08:00"), SizeBytes: 1},
		}},
		{Kind: KindVideo, Assets: []Asset{
			{ID: "second", Format: "mp4", CreatedAt: same, SizeBytes: 1},
			{ID: "newest", Format: "mp4", CreatedAt: at("12:00"), SizeBytes: 1},
		}},
	}

	page := Aggregate(pages, NewDelivery(testBase))

	ids := make([]string, 0, len(page.Items))
	for i, a := range page.Items {
		ids = append(ids, a.ID)
		if i > 0 {
			assert.False(t, a.CreatedAt.After(page.Items[i-1].CreatedAt), "items must be newest first")
		}
	}
	assert.Equal(t, []string{"newest", "first", "second", "older"}, ids)
}

func TestAggregateDropsDegenerateAssets(t *testing.T) {
	pages := []RawPage{{Kind: KindImage, Assets: []Asset{
		{ID: "empty", Format: "jpg", CreatedAt: at("10:00"), SizeBytes: 0},
		{ID: "narrow", Format: "jpg", CreatedAt: at("10:01"), SizeBytes: 5, Width: dim(10), Height: dim(400)},
		{ID: "short", Format: "jpg", CreatedAt: at("10:02"), SizeBytes: 5, Width: dim(400), Height: dim(3)},
		{ID: "ok", Format: "jpg", CreatedAt: at("10:03"), SizeBytes: 5, Width: dim(11), Height: dim(11)},
		{ID: "undimensioned", Format: "jpg", CreatedAt: at("10:04"), SizeBytes: 5},
	}}}

	page := Aggregate(pages, NewDelivery(testBase))

	require.Len(t, page.Items, 2)
	assert.Equal(t, "undimensioned", page.Items[0].ID)
	assert.Equal(t, "ok", page.Items[1].ID)
	assert.Equal(t, 2, page.Total)
	for _, a := range page.Items {
		assert.Positive(t, a.SizeBytes)
	}
}

func TestAggregateRewritesDeliveryURLs(t *testing.T) {
	pages := []RawPage{
		{Kind: KindImage, Assets: []Asset{
			{ID: "gallery/photo", Format: "HEIC", CreatedAt: at("10:00"), SizeBytes: 1},
			{ID: "gallery/pic", Format: "png", CreatedAt: at("09:00"), SizeBytes: 1},
		}},
		{Kind: KindVideo, Assets: []Asset{
			// the store's own kind is ignored in favour of the queried one
			{ID: "gallery/clip", Kind: KindImage, Format: "mov", CreatedAt: at("08:00"), SizeBytes: 1},
		}},
	}

	page := Aggregate(pages, NewDelivery(testBase))
	require.Len(t, page.Items, 3)

	heic := page.Items[0].DeliveryURL
	assert.Equal(t, testBase+"/image/upload/f_jpg,q_auto/gallery/photo.jpg", heic)
	assert.True(t, strings.HasSuffix(heic, ".jpg"))

	assert.Equal(t, testBase+"/image/upload/f_auto,q_auto/gallery/pic.png", page.Items[1].DeliveryURL)

	video := page.Items[2]
	assert.Equal(t, KindVideo, video.Kind)
	assert.Equal(t, testBase+"/video/upload/q_auto/gallery/clip.mov", video.DeliveryURL)
	assert.NotContains(t, video.DeliveryURL, "/image/")
}

func TestAggregatePassesFirstNonEmptyCursor(t *testing.T) {
	cases := []struct {
		name  string
		pages []RawPage
		want  string
	}{
		{"image cursor only", []RawPage{{Kind: KindImage, NextCursor: "A"}, {Kind: KindVideo}}, "A"},
		{"video cursor only", []RawPage{{Kind: KindImage}, {Kind: KindVideo, NextCursor: "B"}}, "B"},
		{"image wins", []RawPage{{Kind: KindImage, NextCursor: "A"}, {Kind: KindVideo, NextCursor: "B"}}, "A"},
		{"none", []RawPage{{Kind: KindImage}, {Kind: KindVideo}}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page := Aggregate(tc.pages, NewDelivery(testBase))
			assert.Equal(t, tc.want, page.Cursor)
			assert.NotNil(t, page.Items)
		})
	}
}

func TestCollectKeepsEverythingWithPlainURLs(t *testing.T) {
	pages := []RawPage{
		{Kind: KindImage, Assets: []Asset{
			{ID: "stories/placeholder", Format: "png", CreatedAt: at("10:00"), SizeBytes: 68, Width: dim(1), Height: dim(1),
				Tags: Tags{TagName: "Ann", TagStory: "Walks by the river"}},
			{ID: "stories/untagged", Format: "jpg", CreatedAt: at("11:00"), SizeBytes: 0},
		}},
		{Kind: KindVideo, Assets: []Asset{
			{ID: "stories/clip", Format: "mp4", CreatedAt: at("10:30"), SizeBytes: 9, Tags: Tags{TagStory: "Fetch!"}},
		}},
	}

	all := Collect(pages, NewDelivery(testBase), false)
	require.Len(t, all.Items, 3)
	assert.Equal(t, "stories/untagged", all.Items[0].ID)
	assert.Equal(t, testBase+"/video/upload/stories/clip.mp4", all.Items[1].DeliveryURL)
	assert.Equal(t, testBase+"/image/upload/stories/placeholder.png", all.Items[2].DeliveryURL)

	visitors := Collect(pages, NewDelivery(testBase), true)
	require.Len(t, visitors.Items, 2)
	assert.Equal(t, "stories/clip", visitors.Items[0].ID)
	assert.Equal(t, "stories/placeholder", visitors.Items[1].ID)
	assert.Equal(t, 2, visitors.Total)
}
