package upload

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"testing"

	"github.com/abduss/memorial/internal/media"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.NRGBA{R: 200, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func mp4Header() []byte {
	box := []byte{0x00, 0x00, 0x00, 0x18}
	box = append(box, []byte("ftypisom")...)
	box = append(box, 0x00, 0x00, 0x02, 0x00)
	box = append(box, []byte("isomiso2")...)
	return append(box, make([]byte, 64)...)
}

func TestInspectPNG(t *testing.T) {
	payload := encodePNG(t, 40, 30)

	p, body, err := Inspect(bytes.NewReader(payload))
	require.NoError(t, err)

	assert.Equal(t, media.KindImage, p.Kind)
	assert.Equal(t, "png", p.Format)
	assert.Equal(t, "image/png", p.ContentType)
	require.NotNil(t, p.Width)
	require.NotNil(t, p.Height)
	assert.Equal(t, 40, *p.Width)
	assert.Equal(t, 30, *p.Height)
	assert.Nil(t, p.CapturedAt)

	replayed, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, payload, replayed)
}

func TestInspectNormalisesJPEG(t *testing.T) {
	p, _, err := Inspect(bytes.NewReader(encodeJPEG(t, 16, 12)))
	require.NoError(t, err)

	assert.Equal(t, media.KindImage, p.Kind)
	assert.Equal(t, "jpg", p.Format)
	require.NotNil(t, p.Width)
	assert.Equal(t, 16, *p.Width)
}

func TestInspectVideo(t *testing.T) {
	p, _, err := Inspect(bytes.NewReader(mp4Header()))
	require.NoError(t, err)

	assert.Equal(t, media.KindVideo, p.Kind)
	assert.Equal(t, "mp4", p.Format)
	assert.Nil(t, p.Width)
}

func TestInspectRejectsText(t *testing.T) {
	_, _, err := Inspect(bytes.NewReader([]byte("hello world")))
	assert.ErrorIs(t, err, ErrUnsupportedMedia)
}

func TestInspectReplaysLargePayload(t *testing.T) {
	payload := append(encodePNG(t, 20, 20), bytes.Repeat([]byte{0}, headLimit*2)...)

	_, body, err := Inspect(bytes.NewReader(payload))
	require.NoError(t, err)

	replayed, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, len(payload), len(replayed))
}

func TestPlaceholderIsAnImage(t *testing.T) {
	p, _, err := Inspect(bytes.NewReader(placeholder()))
	require.NoError(t, err)
	assert.Equal(t, media.KindImage, p.Kind)
	assert.Equal(t, "png", p.Format)
}
