package media

import (
	"context"

	"github.com/abduss/memorial/internal/config"
)

// Service answers gallery and tribute listings.
type Service struct {
	fetcher  *Fetcher
	delivery Delivery
	cfg      config.MediaConfig
}

// NewService constructs a listing service.
func NewService(store Lister, cfg config.MediaConfig) *Service {
	return &Service{
		fetcher:  NewFetcher(store),
		delivery: NewDelivery(cfg.DeliveryBaseURL),
		cfg:      cfg,
	}
}

// Delivery exposes the URL builder shared with uploads.
func (s *Service) Delivery() Delivery {
	return s.delivery
}

// Gallery lists operator media, newest first, ready for display.
func (s *Service) Gallery(ctx context.Context, cursor string, kind Kind) (Page, error) {
	pages, err := s.fetcher.Fetch(ctx, s.cfg.GalleryFolder, kind, cursor, s.cfg.GalleryPageSize)
	if err != nil {
		return Page{}, err
	}
	return Aggregate(pages, s.delivery), nil
}

// Tributes lists the tribute folder across both kinds with tags attached.
func (s *Service) Tributes(ctx context.Context, cursor string, visitorsOnly bool) (Page, error) {
	pages, err := s.fetcher.Fetch(ctx, s.cfg.TributeFolder, "", cursor, s.cfg.TributePageSize)
	if err != nil {
		return Page{}, err
	}
	return Collect(pages, s.delivery, visitorsOnly), nil
}
