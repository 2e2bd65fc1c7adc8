package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeTagsSurvivesDelimitersInUserText(t *testing.T) {
	in := Tags{TagName: "Ann | Bo", TagStory: "a=b, ünïcode & more"}

	raw := EncodeTags(in)

	assert.Equal(t, "name=Ann+%7C+Bo|story=a%3Db%2C+%C3%BCn%C3%AFcode+%26+more", raw)
	assert.Equal(t, in, DecodeTags(raw))
}

func TestEncodeTagsEmpty(t *testing.T) {
	assert.Equal(t, "", EncodeTags(nil))
	assert.Nil(t, DecodeTags(""))
}

func TestDecodeTagsSkipsMalformedEntries(t *testing.T) {
	tags := DecodeTags("name=Ann|garbage|=orphan|story=%zz|mood=happy")

	assert.Equal(t, Tags{TagName: "Ann", "mood": "happy"}, tags)
}

func TestParseContextLegacyForm(t *testing.T) {
	tags := ParseContext("name=Ann| Story =We met at 5=ish|nonsense|=x")

	assert.Equal(t, Tags{TagName: "Ann", TagStory: "We met at 5=ish"}, tags)
}

func TestIsTribute(t *testing.T) {
	assert.True(t, Tags{TagName: "Ann"}.IsTribute())
	assert.True(t, Tags{TagStory: "hello"}.IsTribute())
	assert.False(t, Tags{TagName: "   ", TagStory: ""}.IsTribute())
	assert.False(t, Tags(nil).IsTribute())
}
