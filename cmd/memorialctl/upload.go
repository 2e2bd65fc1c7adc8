package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/abduss/memorial/internal/config"
	"github.com/abduss/memorial/internal/ledger"
	"github.com/abduss/memorial/internal/media"
	"github.com/abduss/memorial/internal/mediastore"
	"github.com/abduss/memorial/internal/storage"
	"github.com/abduss/memorial/internal/upload"
	"github.com/spf13/cobra"
)

func newUploadCommand(load func() (config.Config, error)) *cobra.Command {
	var (
		folder  string
		tagArgs []string
	)

	cmd := &cobra.Command{
		Use:   "upload <path>",
		Short: "Upload an image or video into a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			tags, err := parseTags(tagArgs)
			if err != nil {
				return err
			}
			if folder == "" {
				folder = cfg.Media.TributeFolder
			}

			file, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer file.Close()
			info, err := file.Stat()
			if err != nil {
				return err
			}

			client, err := storage.NewMinIOClient(cfg.MinIO)
			if err != nil {
				return err
			}

			var recorder upload.Recorder
			if cfg.Ledger.Enabled {
				pool, err := storage.NewPostgresPool(cmd.Context(), cfg.Ledger.Postgres)
				if err != nil {
					return err
				}
				defer pool.Close()
				recorder = ledger.NewRepository(pool)
			}

			store := mediastore.NewMinIOStore(client, cfg.MinIO.Bucket)
			service := upload.NewService(store, media.NewDelivery(cfg.Media.DeliveryBaseURL), cfg.Media, recorder)

			res, err := service.Store(cmd.Context(), folder, file, info.Size(), tags)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().StringVar(&folder, "folder", "", "Destination folder (defaults to the tribute folder)")
	cmd.Flags().StringArrayVar(&tagArgs, "tag", nil, "Tag as key=value; repeatable")
	return cmd
}

func parseTags(args []string) (media.Tags, error) {
	if len(args) == 0 {
		return nil, nil
	}
	tags := media.Tags{}
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		k = strings.ToLower(strings.TrimSpace(k))
		if !ok || k == "" {
			return nil, fmt.Errorf("tag %q: want key=value", arg)
		}
		tags[k] = strings.TrimSpace(v)
	}
	return tags, nil
}
