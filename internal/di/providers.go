package di

import (
	"context"
	"fmt"
	"time"

	domrepo "DealSense/internal/domain/repository"
	domsvc "DealSense/internal/domain/service"
	"DealSense/internal/handler/api"
	internalrepo "DealSense/internal/repository"
	svcmetrics "DealSense/internal/service/metrics"
	"DealSense/internal/services/analytics"
	"DealSense/internal/services/recommend"
	"DealSense/internal/usecase"
	pkgcache "DealSense/pkg/cache"
	pkgch "DealSense/pkg/clickhouse"
	"DealSense/pkg/config"
	xhttp "DealSense/pkg/http"
	pkgkafka "DealSense/pkg/kafka"
	applogger "DealSense/pkg/logger"
	pkgmetrics "DealSense/pkg/metrics"
	"DealSense/pkg/server"
)

// ProvideLogger creates the process logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	level := "info"
	format := "json"
	if cfg.Environment == "development" {
		level = "debug"
		format = "console"
	}
	return applogger.New(&applogger.Config{Level: level, Format: format, Output: "stdout"})
}

// ProvideClickHouseClient connects to ClickHouse and ensures the schema.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	client, err := pkgch.NewClient(
		pkgch.WithAddress(cfg.ClickHouse.Host, cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithPool(10, 5, 5*time.Minute),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.InitSchema(ctx, internalrepo.Schema(cfg.ClickHouse.Database)); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}
	return client, nil
}

// ProvideCacheService returns Redis when enabled, an in-process map
// otherwise. Alert history survives restarts only with Redis.
func ProvideCacheService(cfg *config.Config) (pkgcache.Service, error) {
	if !cfg.Redis.Enabled {
		return pkgcache.NewMemoryCache(), nil
	}
	svc, err := pkgcache.NewRedisCache(
		pkgcache.WithRedisAddress(cfg.Redis.Host, cfg.Redis.Port),
		pkgcache.WithRedisPassword(cfg.Redis.Password),
		pkgcache.WithRedisDB(cfg.Redis.DB),
		pkgcache.WithRedisPrefix(cfg.Redis.Prefix),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return svc, nil
}

// ProvideHistoryStore creates the ClickHouse-backed history store.
func ProvideHistoryStore(ch *pkgch.Client, l *applogger.Logger) domrepo.HistoryStore {
	store := internalrepo.NewCHHistoryStore(ch)
	store.SetLogger(l)
	return store
}

// ProvideAlertStore keeps alert history in the cache layer.
func ProvideAlertStore(cache pkgcache.Service) domrepo.AlertStore {
	return internalrepo.NewRedisAlertStore(cache)
}

// ProvideKafkaProducer creates the alert producer.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatching(cfg.Kafka.Producer.BatchSize, cfg.Kafka.Producer.Linger),
		pkgkafka.WithDelivery(cfg.Kafka.Producer.MaxAttempts, cfg.Kafka.Producer.WriteTimeout),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideAlertPublisher publishes classified alerts.
func ProvideAlertPublisher(producer *pkgkafka.Producer, cfg *config.Config) domrepo.AlertPublisher {
	return internalrepo.NewKafkaAlertPublisher(producer, cfg.Kafka.AlertsTopic)
}

// ProvideKafkaConsumer creates the price-feed consumer.
func ProvideKafkaConsumer(cfg *config.Config) (*pkgkafka.Consumer, error) {
	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerBufferSize(cfg.Kafka.Consumer.BufferSize),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
		pkgkafka.WithConsumerDLQ(cfg.Kafka.Consumer.DLQTopic),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	return consumer, nil
}

// ProvideMetrics creates the Prometheus recorder and registers the
// engine-level collectors.
func ProvideMetrics() domrepo.Metrics {
	svcmetrics.Register()
	return pkgmetrics.NewRecorder()
}

// ProvideSuccessModel wires the external predictive service, or nil when
// it is disabled. The classifier works from the score alone without it.
func ProvideSuccessModel(cfg *config.Config) domsvc.SuccessModel {
	if !cfg.ModelService.Enabled {
		return nil
	}
	return analytics.NewHTTPSuccessModel(cfg)
}

// ProvideScorer picks the recommendation strategy from config.
func ProvideScorer(cfg *config.Config) domsvc.RecommendationScorer {
	if cfg.Recommend.Strategy == "model" {
		return recommend.NewTrainedModelScorer(cfg)
	}
	return recommend.NewHeuristicScorer(recommend.Weights{
		Category: cfg.Recommend.CategoryWeight,
		Brand:    cfg.Recommend.BrandWeight,
		Keyword:  cfg.Recommend.KeywordWeight,
	})
}

// ProvideIntelligenceUseCase builds the engine orchestrator.
func ProvideIntelligenceUseCase(
	store domrepo.HistoryStore,
	alerts domrepo.AlertStore,
	pub domrepo.AlertPublisher,
	model domsvc.SuccessModel,
	metrics domrepo.Metrics,
	cfg *config.Config,
	l *applogger.Logger,
) *usecase.IntelligenceUseCase {
	return usecase.NewIntelligenceUseCase(store, alerts, pub, model, metrics, cfg, l)
}

// ProvideDealReportUseCase builds the aggregate-report fan-out.
func ProvideDealReportUseCase(intel *usecase.IntelligenceUseCase) *usecase.DealReportUseCase {
	return usecase.NewDealReportUseCase(intel)
}

// ProvideRecommendUseCase builds the recommender.
func ProvideRecommendUseCase(
	store domrepo.HistoryStore,
	scorer domsvc.RecommendationScorer,
	cfg *config.Config,
	l *applogger.Logger,
) *usecase.RecommendUseCase {
	return usecase.NewRecommendUseCase(store, scorer, cfg, l)
}

// ProvidePricesHandler registers the ingest handler for the price topic.
func ProvidePricesHandler(store domrepo.HistoryStore, metrics domrepo.Metrics, cfg *config.Config) *usecase.KafkaPricesHandler {
	return usecase.NewKafkaPricesHandler(cfg.Kafka.PricesTopic, store, metrics)
}

// ProvideHTTPHandler builds the API surface.
func ProvideHTTPHandler(
	l *applogger.Logger,
	intel *usecase.IntelligenceUseCase,
	report *usecase.DealReportUseCase,
	rec *usecase.RecommendUseCase,
	store domrepo.HistoryStore,
) xhttp.Handler {
	return api.NewIntelligenceEchoHandler(l, intel, report, rec, store)
}

// ProvideApp assembles the application.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	consumer *pkgkafka.Consumer,
	ph *usecase.KafkaPricesHandler,
	chClient *pkgch.Client,
	cacheSvc pkgcache.Service,
	publisher domrepo.AlertPublisher,
	handler xhttp.Handler,
) *server.App {
	return server.New(cfg, l, consumer, ph, chClient, cacheSvc, publisher, handler)
}
