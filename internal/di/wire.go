//go:build wireinject
// +build wireinject

package di

import (
	"DealSense/pkg/config"
	"DealSense/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideCacheService,
		ProvideKafkaProducer,
		ProvideKafkaConsumer,

		// Repositories
		ProvideHistoryStore,
		ProvideAlertStore,
		ProvideAlertPublisher,

		// Engine services
		ProvideSuccessModel,
		ProvideScorer,

		// Use cases
		ProvideIntelligenceUseCase,
		ProvideDealReportUseCase,
		ProvideRecommendUseCase,
		ProvidePricesHandler,

		// HTTP surface and app
		ProvideHTTPHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
