package media

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Lister is the store's kind-scoped, newest-first list call.
type Lister interface {
	List(ctx context.Context, q Query) (RawPage, error)
}

// Fetcher retrieves raw pages from the store, one query per kind.
type Fetcher struct {
	store Lister
}

// NewFetcher constructs a Fetcher over store.
func NewFetcher(store Lister) *Fetcher {
	return &Fetcher{store: store}
}

// Fetch lists folder for kind, or for every kind concurrently when kind is empty.
// The cursor is forwarded untouched to each query. Pages come back in Kinds order;
// the first failure cancels the remaining queries and is returned alone.
func (f *Fetcher) Fetch(ctx context.Context, folder string, kind Kind, cursor string, limit int) ([]RawPage, error) {
	kinds := Kinds
	if kind != "" {
		kinds = []Kind{kind}
	}

	pages := make([]RawPage, len(kinds))
	g, gctx := errgroup.WithContext(ctx)
	for i, k := range kinds {
		i, k := i, k
		g.Go(func() error {
			page, err := f.store.List(gctx, Query{
				Folder: folder,
				Kind:   k,
				Cursor: cursor,
				Limit:  limit,
			})
			if err != nil {
				return err
			}
			page.Kind = k
			pages[i] = page
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pages, nil
}
