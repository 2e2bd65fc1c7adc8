package mediastore

import (
	"context"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/abduss/memorial/internal/media"
	"github.com/abduss/memorial/internal/metrics"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// User metadata keys kept with every object.
const (
	metaFormat     = "format"
	metaCreatedAt  = "created-at"
	metaWidth      = "width"
	metaHeight     = "height"
	metaCapturedAt = "captured-at"
	metaContext    = "context"

	amzMetaPrefix = "x-amz-meta-"
)

type objectClient interface {
	ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// Object is a payload to be stored.
type Object struct {
	Folder      string
	Kind        media.Kind
	Format      string
	ContentType string
	Size        int64
	Body        io.Reader
	Width       *int
	Height      *int
	CapturedAt  *time.Time
	Tags        media.Tags
}

// Stored describes an object after the store accepted it.
type Stored struct {
	ID        string
	Kind      media.Kind
	Format    string
	CreatedAt time.Time
	SizeBytes int64
}

// MinIOStore keeps media in one bucket, one prefix per kind and folder.
type MinIOStore struct {
	client objectClient
	bucket string
	now    func() time.Time
}

// NewMinIOStore constructs a store over client. *minio.Client satisfies objectClient.
func NewMinIOStore(client objectClient, bucket string) *MinIOStore {
	return &MinIOStore{client: client, bucket: bucket, now: time.Now}
}

// List returns up to q.Limit assets of q.Kind in q.Folder, newest first,
// resuming strictly after q.Cursor when set.
func (s *MinIOStore) List(ctx context.Context, q media.Query) (page media.RawPage, err error) {
	started := time.Now()
	defer func() { metrics.ObserveStoreCall("list", started, err) }()

	if q.Kind == "" {
		return media.RawPage{}, ErrKindRequired
	}
	limit := q.Limit
	if limit <= 0 {
		limit = 500
	}

	prefix := listPrefix(q.Kind, q.Folder)
	opts := minio.ListObjectsOptions{
		Prefix:       prefix,
		Recursive:    true,
		WithMetadata: true,
		MaxKeys:      limit + 1,
	}
	if q.Cursor != "" {
		after, err := decodeCursor(q.Cursor)
		if err != nil {
			return media.RawPage{}, err
		}
		opts.StartAfter = prefix + after.String()
	}

	listCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	page = media.RawPage{Kind: q.Kind}
	var last entryName
	for obj := range s.client.ListObjects(listCtx, s.bucket, opts) {
		if obj.Err != nil {
			return media.RawPage{}, wrap("list", obj.Err)
		}
		name, ok := parseEntryName(strings.TrimPrefix(obj.Key, prefix))
		if !ok {
			continue
		}
		if len(page.Assets) == limit {
			page.NextCursor = encodeCursor(last)
			break
		}

		if len(obj.UserMetadata) == 0 {
			stat, err := s.client.StatObject(ctx, s.bucket, obj.Key, minio.StatObjectOptions{})
			if err != nil {
				return media.RawPage{}, wrap("stat", err)
			}
			obj.UserMetadata = stat.UserMetadata
		}

		page.Assets = append(page.Assets, toAsset(q.Kind, q.Folder, name, obj))
		last = name
	}
	return page, nil
}

// Put stores obj under a fresh identifier and returns what was kept.
func (s *MinIOStore) Put(ctx context.Context, obj Object) (stored Stored, err error) {
	started := time.Now()
	defer func() { metrics.ObserveStoreCall("put", started, err) }()

	if obj.Kind == "" {
		return Stored{}, ErrKindRequired
	}

	created := s.now().UTC()
	name := entryName{rank: rank(created), id: uuid.NewString(), ext: strings.ToLower(obj.Format)}
	key := objectKey(obj.Kind, obj.Folder, name.String())

	meta := map[string]string{
		metaFormat:    obj.Format,
		metaCreatedAt: created.Format(time.RFC3339Nano),
	}
	if obj.Width != nil {
		meta[metaWidth] = strconv.Itoa(*obj.Width)
	}
	if obj.Height != nil {
		meta[metaHeight] = strconv.Itoa(*obj.Height)
	}
	if obj.CapturedAt != nil {
		meta[metaCapturedAt] = obj.CapturedAt.UTC().Format(time.RFC3339)
	}
	if encoded := media.EncodeTags(obj.Tags); encoded != "" {
		meta[metaContext] = encoded
	}

	contentType := obj.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	info, err := s.client.PutObject(ctx, s.bucket, key, obj.Body, obj.Size, minio.PutObjectOptions{
		ContentType:  contentType,
		UserMetadata: meta,
	})
	if err != nil {
		return Stored{}, wrap("put", err)
	}

	size := info.Size
	if size <= 0 {
		size = obj.Size
	}
	return Stored{
		ID:        publicID(obj.Folder, name),
		Kind:      obj.Kind,
		Format:    obj.Format,
		CreatedAt: created,
		SizeBytes: size,
	}, nil
}

func toAsset(kind media.Kind, folder string, name entryName, obj minio.ObjectInfo) media.Asset {
	meta := normalizeMetadata(obj.UserMetadata)

	asset := media.Asset{
		ID:        publicID(folder, name),
		Kind:      kind,
		Format:    meta[metaFormat],
		SizeBytes: obj.Size,
		Width:     positiveInt(meta[metaWidth]),
		Height:    positiveInt(meta[metaHeight]),
		Tags:      media.DecodeTags(meta[metaContext]),
	}
	if asset.Format == "" {
		asset.Format = name.ext
	}

	asset.CreatedAt = createdAt(meta[metaCreatedAt], name, obj.LastModified)

	if raw := meta[metaCapturedAt]; raw != "" {
		if ts, err := time.Parse(time.RFC3339, raw); err == nil {
			asset.CapturedAt = &ts
		}
	}
	return asset
}

// createdAt prefers the recorded upload time, then the time encoded in the key.
func createdAt(recorded string, name entryName, lastModified time.Time) time.Time {
	if ts, err := time.Parse(time.RFC3339Nano, recorded); err == nil {
		return ts
	}
	if ts, ok := rankTime(name.rank); ok {
		return ts
	}
	return lastModified
}

// normalizeMetadata lowercases keys and strips the S3 user-metadata prefix,
// which listings keep and stat calls drop.
func normalizeMetadata(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		key := strings.ToLower(k)
		key = strings.TrimPrefix(key, amzMetaPrefix)
		out[key] = v
	}
	return out
}

func positiveInt(raw string) *int {
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return nil
	}
	return &n
}
