//go:build wireinject

package main

import (
	"github.com/google/wire"
	"github.com/rs/zerolog"

	"github.com/janhq/jan-translator/internal/config"
)

var clientSet = wire.NewSet(
	provideAPIClient,
	provideTokenStore,
	provideSession,
	provideAccounts,
	providePanels,
)

// BuildApplication assembles the command container with Wire.
func BuildApplication(cfg *config.Config, log zerolog.Logger) (*App, error) {
	wire.Build(
		clientSet,
		NewApp,
	)
	return nil, nil
}
