package media

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(store Lister) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r.Group("/v1"), NewService(store, testMediaConfig()))
	return r
}

func TestListGalleryReturnsEnvelope(t *testing.T) {
	store := &fakeStore{pages: map[Kind]RawPage{
		KindImage: {Assets: []Asset{{ID: "gallery/a", Format: "heic", CreatedAt: at("10:00"), SizeBytes: 5}}, NextCursor: "A"},
	}}
	r := newTestRouter(store)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/media?cursor=prev", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var page Page
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &page))
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, "A", page.Cursor)
	require.Len(t, page.Items, 1)
	assert.Equal(t, testBase+"/image/upload/f_jpg,q_auto/gallery/a.jpg", page.Items[0].DeliveryURL)
	assert.Equal(t, "prev", store.queries[0].Cursor)
}

func TestListGalleryOmitsAbsentCursor(t *testing.T) {
	r := newTestRouter(&fakeStore{})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/media", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.NotContains(t, body, "cursor")
	assert.Equal(t, []any{}, body["items"])
}

func TestListGalleryRejectsUnknownKind(t *testing.T) {
	r := newTestRouter(&fakeStore{})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/media?kind=audio", nil))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestListGalleryStoreFailureIs500(t *testing.T) {
	store := &fakeStore{errs: map[Kind]error{KindImage: errors.New("invalid credentials")}}
	r := newTestRouter(store)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/media", nil))

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "invalid credentials", body["error"])
}

func TestListGalleryBadCursorIs400(t *testing.T) {
	store := &fakeStore{errs: map[Kind]error{
		KindImage: fmt.Errorf("%w: not base64", ErrInvalidCursor),
		KindVideo: fmt.Errorf("%w: not base64", ErrInvalidCursor),
	}}
	r := newTestRouter(store)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/media?cursor=garbage", nil))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestListTributesVisitorsOnly(t *testing.T) {
	store := &fakeStore{pages: map[Kind]RawPage{
		KindImage: {Assets: []Asset{
			{ID: "stories/a", Format: "png", CreatedAt: at("10:00"), SizeBytes: 5, Tags: Tags{TagName: "Ann"}},
			{ID: "stories/b", Format: "png", CreatedAt: at("11:00"), SizeBytes: 5},
		}},
	}}
	r := newTestRouter(store)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/tributes?visitors=true", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var page Page
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Ann", page.Items[0].Tags.Get(TagName))
}
