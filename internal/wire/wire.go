//go:build wireinject
// +build wireinject

package wire

import (
	"context"

	"github.com/google/wire"

	"github.com/Deepak7704/100xSWE/internal/app"
	"github.com/Deepak7704/100xSWE/internal/pipeline"
	"github.com/Deepak7704/100xSWE/internal/sandbox"
	"github.com/Deepak7704/100xSWE/internal/server"
)

func InitializeApp(ctx context.Context) (*app.App, func(), error) {
	wire.Build(
		AppSet,
		sandbox.NewRunner,
		pipeline.NewProcessor,
		server.NewServer,
	)
	return &app.App{}, nil, nil
}
