package main

import (
	"github.com/abduss/memorial/internal/config"
	"github.com/abduss/memorial/internal/media"
	"github.com/abduss/memorial/internal/mediastore"
	"github.com/abduss/memorial/internal/storage"
	"github.com/spf13/cobra"
)

func newListCommand(load func() (config.Config, error)) *cobra.Command {
	var (
		folder string
		kind   string
		cursor string
		limit  int
		raw    bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a folder newest first, as the API would serve it",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			k, err := media.ParseKind(kind)
			if err != nil {
				return err
			}
			if folder == "" {
				folder = cfg.Media.GalleryFolder
			}
			if limit <= 0 {
				limit = cfg.Media.GalleryPageSize
			}

			client, err := storage.NewMinIOClient(cfg.MinIO)
			if err != nil {
				return err
			}
			store := mediastore.NewMinIOStore(client, cfg.MinIO.Bucket)

			pages, err := media.NewFetcher(store).Fetch(cmd.Context(), folder, k, cursor, limit)
			if err != nil {
				return err
			}

			delivery := media.NewDelivery(cfg.Media.DeliveryBaseURL)
			page := media.Aggregate(pages, delivery)
			if raw {
				page = media.Collect(pages, delivery, false)
			}
			return printJSON(cmd.OutOrStdout(), page)
		},
	}

	cmd.Flags().StringVar(&folder, "folder", "", "Folder to list (defaults to the gallery folder)")
	cmd.Flags().StringVar(&kind, "kind", "", "Restrict to image or video")
	cmd.Flags().StringVar(&cursor, "cursor", "", "Continue after a previous page")
	cmd.Flags().IntVar(&limit, "limit", 0, "Entries per kind (defaults to the gallery page size)")
	cmd.Flags().BoolVar(&raw, "raw", false, "Skip filtering and emit untransformed URLs")
	return cmd
}
