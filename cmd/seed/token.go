package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"shop-backend/internal/config"
	"shop-backend/pkg/jwt"
)

// token in access token để gọi admin API khi chưa có auth service
func newTokenCmd() *cobra.Command {
	var (
		userID string
		email  string
		role   string
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print a signed access token for local testing",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			id := uuid.New()
			if userID != "" {
				if id, err = uuid.Parse(userID); err != nil {
					return fmt.Errorf("invalid --user-id: %w", err)
				}
			}
			if ttl <= 0 {
				ttl = time.Duration(cfg.JWT.AccessTokenExpiry) * time.Minute
			}

			token, err := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Issuer, ttl).
				GenerateAccessToken(id, email, role)
			if err != nil {
				return fmt.Errorf("sign token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user-id", "", "user UUID (random if empty)")
	cmd.Flags().StringVar(&email, "email", "admin@shop.local", "email claim")
	cmd.Flags().StringVar(&role, "role", jwt.RoleAdmin, "role claim (admin|customer)")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (default JWT_ACCESS_EXPIRY)")
	return cmd
}
