package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/knowledge-base/internal/app"
	"github.com/heartmarshall/knowledge-base/internal/auth"
	"github.com/heartmarshall/knowledge-base/internal/config"
	"github.com/heartmarshall/knowledge-base/internal/domain"
)

var (
	seedDomain string
	tokenUser  string
)

var seedUsersCmd = &cobra.Command{
	Use:   "seed-users",
	Short: "Create one admin, editor and viewer user and print their tokens",
	Long: `Create an ADMIN, an EDITOR and a VIEWER user with emails
<role>@<domain>. Users that already exist are reused, so the command is
safe to run repeatedly. A fresh access token is printed for each.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStorage(cmd.Context(), func(cfg *config.Config, store *app.Storage, _ *slog.Logger) error {
			users, err := seedUsers(cmd.Context(), store.Users, seedDomain, time.Now().UTC())
			if err != nil {
				return failure("Cannot seed users", err)
			}

			jwt := newJWTManager(cfg)
			for _, u := range users {
				token, err := jwt.GenerateAccessToken(u.ID, u.Role.String())
				if err != nil {
					return failure("Cannot issue token", err)
				}
				success("%-6s %s  %s", u.Role, u.ID, u.Email)
				faint.Fprintf(out, "  %s\n", token) //nolint:errcheck
			}
			return nil
		})
	},
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an access token for an existing user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(tokenUser)
		if err != nil {
			return failure("Invalid --user", err, "pass the user id printed by kbctl seed-users")
		}

		return withStorage(cmd.Context(), func(cfg *config.Config, store *app.Storage, _ *slog.Logger) error {
			u, err := store.Users.Get(cmd.Context(), id)
			if err != nil {
				return failure("Cannot load user", err)
			}

			token, err := newJWTManager(cfg).GenerateAccessToken(u.ID, u.Role.String())
			if err != nil {
				return failure("Cannot issue token", err)
			}
			fmt.Fprintln(out, token)
			return nil
		})
	},
}

func init() {
	seedUsersCmd.Flags().StringVar(&seedDomain, "domain", "kb.local", "email domain for seeded users")
	tokenCmd.Flags().StringVar(&tokenUser, "user", "", "user id")
	_ = tokenCmd.MarkFlagRequired("user")
}

func newJWTManager(cfg *config.Config) *auth.JWTManager {
	return auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
}

// seedUsers makes sure one user per role exists, matching on email.
func seedUsers(ctx context.Context, users app.UserStore, emailDomain string, now time.Time) ([]domain.User, error) {
	existing, err := users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	byEmail := make(map[string]domain.User, len(existing))
	for _, u := range existing {
		byEmail[strings.ToLower(u.Email)] = u
	}

	roles := []domain.UserRole{domain.UserRoleAdmin, domain.UserRoleEditor, domain.UserRoleViewer}
	seeded := make([]domain.User, 0, len(roles))
	for _, role := range roles {
		name := strings.ToLower(role.String())
		email := name + "@" + emailDomain

		if u, ok := byEmail[email]; ok {
			seeded = append(seeded, u)
			continue
		}

		u := domain.User{
			ID:        uuid.New(),
			Name:      name,
			Email:     email,
			Role:      role,
			CreatedAt: now,
		}
		if err := users.Upsert(ctx, &u); err != nil {
			return nil, fmt.Errorf("create %s: %w", email, err)
		}
		seeded = append(seeded, u)
	}
	return seeded, nil
}
