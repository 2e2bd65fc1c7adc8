package upload

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/abduss/memorial/internal/config"
	"github.com/abduss/memorial/internal/ledger"
	"github.com/abduss/memorial/internal/logger"
	"github.com/abduss/memorial/internal/media"
	"github.com/abduss/memorial/internal/mediastore"
	"github.com/abduss/memorial/internal/metrics"
	"go.uber.org/zap"
)

// maxTagBytes keeps encoded tags inside the 2 KiB S3 user-metadata allowance,
// leaving room for the other keys.
const maxTagBytes = 1536

type objectStore interface {
	Put(ctx context.Context, obj mediastore.Object) (mediastore.Stored, error)
}

// Recorder keeps a durable trail of uploads. It is optional.
type Recorder interface {
	Record(ctx context.Context, entry ledger.Entry) error
}

// Service stores visitor and operator uploads.
type Service struct {
	store    objectStore
	delivery media.Delivery
	recorder Recorder
	cfg      config.MediaConfig
}

// NewService constructs an upload service. recorder may be nil.
func NewService(store objectStore, delivery media.Delivery, cfg config.MediaConfig, recorder Recorder) *Service {
	return &Service{
		store:    store,
		delivery: delivery,
		recorder: recorder,
		cfg:      cfg,
	}
}

// Upload stores a visitor file in the tribute folder.
func (s *Service) Upload(ctx context.Context, fileHeader *multipart.FileHeader, tags media.Tags) (Result, error) {
	return s.uploadFile(ctx, s.cfg.TributeFolder, fileHeader, tags)
}

// Publish stores an operator file in the gallery folder.
func (s *Service) Publish(ctx context.Context, fileHeader *multipart.FileHeader, tags media.Tags) (Result, error) {
	return s.uploadFile(ctx, s.cfg.GalleryFolder, fileHeader, tags)
}

// Submit stores a tribute. Without a file a placeholder image carries the tags.
func (s *Service) Submit(ctx context.Context, tribute Tribute, fileHeader *multipart.FileHeader) (TributeResult, error) {
	name := strings.TrimSpace(tribute.Name)
	story := strings.TrimSpace(tribute.Story)
	if name == "" || story == "" {
		return TributeResult{}, ErrMissingTributeFields
	}
	tags := media.Tags{media.TagName: name, media.TagStory: story}

	var (
		res Result
		err error
	)
	if fileHeader != nil {
		res, err = s.uploadFile(ctx, s.cfg.TributeFolder, fileHeader, tags)
	} else {
		img := placeholder()
		res, err = s.Store(ctx, s.cfg.TributeFolder, bytes.NewReader(img), int64(len(img)), tags)
	}
	if err != nil {
		return TributeResult{}, err
	}
	return TributeResult{URL: res.URL, ID: res.ID, Name: name, Story: story}, nil
}

func (s *Service) uploadFile(ctx context.Context, folder string, fileHeader *multipart.FileHeader, tags media.Tags) (Result, error) {
	if fileHeader == nil {
		return Result{}, ErrMissingFile
	}
	if fileHeader.Size > s.cfg.MaxUploadBytes {
		return Result{}, ErrFileTooLarge
	}

	file, err := fileHeader.Open()
	if err != nil {
		return Result{}, fmt.Errorf("open upload file: %w", err)
	}
	defer file.Close()

	return s.Store(ctx, folder, file, fileHeader.Size, tags)
}

// Store probes r, writes it to folder and returns where it can be fetched.
// size may be -1 when unknown.
func (s *Service) Store(ctx context.Context, folder string, r io.Reader, size int64, tags media.Tags) (Result, error) {
	if size > s.cfg.MaxUploadBytes {
		return Result{}, ErrFileTooLarge
	}
	if len(media.EncodeTags(tags)) > maxTagBytes {
		return Result{}, ErrTagsTooLarge
	}

	probe, body, err := Inspect(r)
	if err != nil {
		return Result{}, err
	}
	if size < 0 {
		// Unknown length: cap what the store may read.
		body = io.LimitReader(body, s.cfg.MaxUploadBytes)
	}

	stored, err := s.store.Put(ctx, mediastore.Object{
		Folder:      folder,
		Kind:        probe.Kind,
		Format:      probe.Format,
		ContentType: probe.ContentType,
		Size:        size,
		Body:        body,
		Width:       probe.Width,
		Height:      probe.Height,
		CapturedAt:  probe.CapturedAt,
		Tags:        tags,
	})
	if err != nil {
		return Result{}, err
	}
	metrics.Uploads.WithLabelValues(string(stored.Kind), folder).Inc()

	if s.recorder != nil {
		entry := ledger.Entry{
			ID:        stored.ID,
			Folder:    folder,
			Kind:      stored.Kind,
			Format:    stored.Format,
			SizeBytes: stored.SizeBytes,
			Tags:      tags,
			CreatedAt: stored.CreatedAt,
		}
		if err := s.recorder.Record(ctx, entry); err != nil {
			logger.L().Warn("record upload", zap.String("id", stored.ID), zap.Error(err))
		}
	}

	return Result{
		URL: s.delivery.Plain(stored.Kind, stored.ID, stored.Format),
		ID:  stored.ID,
	}, nil
}
