package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/janhq/jan-translator/internal/domain/apperr"
	domainauth "github.com/janhq/jan-translator/internal/domain/auth"
	"github.com/janhq/jan-translator/internal/domain/backend"
	"github.com/janhq/jan-translator/internal/domain/setting"
	"github.com/janhq/jan-translator/internal/infrastructure/auth"
	"github.com/janhq/jan-translator/internal/infrastructure/repository/sandbox"
	"github.com/janhq/jan-translator/internal/interfaces/httpserver"
	"github.com/janhq/jan-translator/internal/utils/redact"
)

var sandboxCmd = &cobra.Command{
	Use:   "sandbox",
	Short: "Run a local in-memory translation backend",
	Long: `Serve the translation REST API from memory on SANDBOX_HTTP_PORT. The
sandbox echoes translations as "[Language] text" and applies the dictionary,
so the client can be exercised without an OpenAI account. All data is lost
when it stops.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := app.cfg
		if cmd.Flags().Changed("port") {
			cfg.SandboxHTTPPort, _ = cmd.Flags().GetInt("port")
		}
		seed, _ := cmd.Flags().GetString("seed")
		apiKey, _ := cmd.Flags().GetString("seed-api-key")

		validator, err := auth.NewValidator(cfg, app.log)
		if err != nil {
			return err
		}
		level, err := redact.ParseLevel(cfg.LogContent)
		if err != nil {
			return err
		}
		service := backend.NewService(sandbox.NewInMemoryRepository(), validator, nil, app.log).
			WithRedactor(redact.New(level, cfg.ServiceName))
		server := httpserver.New(cfg, app.log, service, validator)

		g, ctx := errgroup.WithContext(cmd.Context())
		g.Go(func() error {
			return server.Run(ctx)
		})
		if seed != "" {
			g.Go(func() error {
				return seedAccount(ctx, service, seed, apiKey)
			})
		}
		printStatus(cmd, "Sandbox listening on %s", cfg.SandboxAddr())
		return g.Wait()
	},
}

// seedAccount registers user:password and stores apiKey for it.
func seedAccount(ctx context.Context, service *backend.Service, seed, apiKey string) error {
	username, password, ok := strings.Cut(seed, ":")
	if !ok || username == "" || password == "" {
		return apperr.Validation("--seed must be username:password")
	}
	user, err := service.Register(ctx, domainauth.Registration{Username: username, Password: password})
	if err != nil {
		return err
	}
	if apiKey == "" {
		return nil
	}
	_, err = service.UpsertSetting(ctx, user.ID, setting.KeyOpenAIAPIKey, &apiKey)
	return err
}

func init() {
	sandboxCmd.Flags().Int("port", 8000, "Listen port (overrides SANDBOX_HTTP_PORT)")
	sandboxCmd.Flags().String("seed", "", "Create an account, as username:password")
	sandboxCmd.Flags().String("seed-api-key", "sandbox-key", "API key stored for the seeded account")
}
