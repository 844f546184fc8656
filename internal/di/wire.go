//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"github.com/google/wire"

	"taskboard/internal/config"
)

// InitializeAPIServer creates a fully wired GraphQL server.
func InitializeAPIServer(ctx context.Context, cfg *config.Config) (*APIServer, func(), error) {
	wire.Build(ServerSet)
	return nil, nil, nil
}

// InitializeWebClient creates a fully wired browser front end.
func InitializeWebClient(ctx context.Context, cfg *config.Config) (*WebClient, func(), error) {
	wire.Build(
		ClientSet,
		ProvideDashboard,
		ProvideWebServer,
		wire.Struct(new(WebClient), "*"),
	)
	return nil, nil, nil
}

// InitializeTerminal creates the dependencies of the terminal commands.
func InitializeTerminal(ctx context.Context, cfg *config.Config) (*Terminal, func(), error) {
	wire.Build(
		ClientSet,
		wire.Struct(new(Terminal), "*"),
	)
	return nil, nil, nil
}
