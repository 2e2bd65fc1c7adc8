package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/abduss/memorial/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Flag keys that may override the environment. Each is also read from a
// config file passed with --config.
const (
	keyEndpoint    = "minio-endpoint"
	keyBucket      = "minio-bucket"
	keyAccessKey   = "minio-access-key"
	keySecretKey   = "minio-secret-key"
	keyDeliveryURL = "delivery-base-url"
	keyJWTSecret   = "jwt-secret"
)

func newRootCommand() *cobra.Command {
	v := viper.New()
	var configFile string

	rootCmd := &cobra.Command{
		Use:           "memorialctl",
		Short:         "Operate a memorial media deployment",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configFile == "" {
				return nil
			}
			v.SetConfigFile(configFile)
			if err := v.ReadInConfig(); err != nil {
				return fmt.Errorf("read config %s: %w", configFile, err)
			}
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "Optional config file (yaml, json or toml) overriding the environment")
	flags.String(keyEndpoint, "", "MinIO endpoint (overrides MINIO_ENDPOINT)")
	flags.String(keyBucket, "", "MinIO bucket (overrides MINIO_BUCKET)")
	flags.String(keyAccessKey, "", "MinIO access key (overrides MINIO_ROOT_USER)")
	flags.String(keySecretKey, "", "MinIO secret key (overrides MINIO_ROOT_PASSWORD)")
	flags.String(keyDeliveryURL, "", "Delivery base URL (overrides MEMORIAL_DELIVERY_BASE_URL)")
	flags.String(keyJWTSecret, "", "Token signing secret (overrides MEMORIAL_JWT_SECRET)")
	for _, key := range []string{keyEndpoint, keyBucket, keyAccessKey, keySecretKey, keyDeliveryURL, keyJWTSecret} {
		_ = v.BindPFlag(key, flags.Lookup(key))
	}

	load := func() (config.Config, error) {
		return loadConfig(v)
	}

	rootCmd.AddCommand(
		newListCommand(load),
		newUploadCommand(load),
		newHashPasswordCommand(load),
		newTokenCommand(load),
	)
	return rootCmd
}

// loadConfig reads the environment and applies any flag or file overrides.
func loadConfig(v *viper.Viper) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}

	if v.IsSet(keyEndpoint) {
		cfg.MinIO.Endpoint = v.GetString(keyEndpoint)
	}
	if v.IsSet(keyBucket) {
		cfg.MinIO.Bucket = v.GetString(keyBucket)
	}
	if v.IsSet(keyAccessKey) {
		cfg.MinIO.AccessKeyID = v.GetString(keyAccessKey)
	}
	if v.IsSet(keySecretKey) {
		cfg.MinIO.SecretAccessKey = v.GetString(keySecretKey)
	}
	if v.IsSet(keyJWTSecret) {
		cfg.Auth.AccessTokenSecret = v.GetString(keyJWTSecret)
	}
	if v.IsSet(keyDeliveryURL) {
		cfg.Media.DeliveryBaseURL = strings.TrimRight(v.GetString(keyDeliveryURL), "/")
		if err := cfg.Media.Validate(); err != nil {
			return config.Config{}, err
		}
	}
	return cfg, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
