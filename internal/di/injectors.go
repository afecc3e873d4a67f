//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"treport/internal"
	"treport/internal/providers"
	"treport/internal/services"
	"treport/internal/storage"
	"treport/internal/structures"
	"treport/internal/trello"
)

func InitApp(flags *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		storage.NewZstdCompressor,
		storage.NewBoardCache,
		storage.NewReportWriter,
		trello.NewClient,
		trello.NewBoardFactory,
		services.NewRecipientService,
		services.NewReportService,
		internal.NewApp,
	)

	return nil, nil
}
