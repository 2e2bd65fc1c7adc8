package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/abduss/memorial/internal/auth"
	"github.com/abduss/memorial/internal/config"
	"github.com/spf13/cobra"
)

func newHashPasswordCommand(load func() (config.Config, error)) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "hash-password",
		Short: "Print a bcrypt hash for MEMORIAL_OPERATOR_PASSWORD_HASH",
		Long:  "Hashes --password, or the first line of stdin when the flag is omitted.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if password == "" {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return errors.New("no password given")
				}
				password = strings.TrimRight(line, "\r\n")
			}

			hash, err := auth.HashPassword(password, cfg.Auth.BcryptCost)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "Password to hash (read from stdin when empty)")
	return cmd
}

func newTokenCommand(load func() (config.Config, error)) *cobra.Command {
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an operator access token from the configured secret",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if ttl > 0 {
				cfg.Auth.AccessTokenTTL = ttl
			}

			token, err := auth.NewService(cfg.Auth).IssueToken()
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"access_token": token.AccessToken,
				"expires_at":   token.ExpiresAt.Unix(),
			})
		},
	}

	cmd.Flags().DurationVar(&ttl, "ttl", 0, "Token lifetime (defaults to MEMORIAL_AUTH_ACCESS_TOKEN_TTL)")
	return cmd
}
