package di

import (
	"time"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/syncapply/syncapply/internal/adapters/gmailapi"
	"github.com/syncapply/syncapply/internal/auth"
	"github.com/syncapply/syncapply/internal/config"
	"github.com/syncapply/syncapply/internal/core"
	"github.com/syncapply/syncapply/internal/extract"
	"github.com/syncapply/syncapply/internal/factory"
	"github.com/syncapply/syncapply/internal/httpserver"
	"github.com/syncapply/syncapply/internal/logging"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewLLMFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewStoreFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewSinkFactory); err != nil {
		return nil, err
	}

	// Register LLM client
	if err := container.Provide(func(f *factory.LLMFactory) (core.LLMClient, error) {
		return f.CreateLLMClient()
	}); err != nil {
		return nil, err
	}

	// Register application repository
	if err := container.Provide(func(f *factory.StoreFactory) (core.ApplicationRepository, error) {
		return f.CreateRepository()
	}); err != nil {
		return nil, err
	}

	// Register debug sink
	if err := container.Provide(func(f *factory.SinkFactory) (core.EmailSink, error) {
		return f.CreateSink()
	}); err != nil {
		return nil, err
	}

	// Register classifier with its call timeout
	if err := container.Provide(func(cfg *config.Config, llm core.LLMClient, logger *zap.Logger) (*core.Classifier, error) {
		timeout, err := cfg.GetDuration("llm.timeout")
		if err != nil {
			timeout = 30 * time.Second
		}
		return core.NewClassifier(llm, timeout, logger), nil
	}); err != nil {
		return nil, err
	}

	// Register email formatter
	if err := container.Provide(func() core.EmailFormatter {
		return extract.Format
	}); err != nil {
		return nil, err
	}

	// Register tracker service
	if err := container.Provide(core.NewTrackerService); err != nil {
		return nil, err
	}

	// Register Gmail source factory
	if err := container.Provide(func(logger *zap.Logger) core.MailSourceFactory {
		return gmailapi.NewSourceFactory(logger)
	}); err != nil {
		return nil, err
	}

	// Register token verifier
	if err := container.Provide(func(logger *zap.Logger) auth.TokenVerifier {
		return auth.NewGoogleVerifier(logger)
	}); err != nil {
		return nil, err
	}

	// Register HTTP handlers
	if err := container.Provide(func(
		sources core.MailSourceFactory,
		tracker *core.TrackerService,
		cfg *config.Config,
		logger *zap.Logger,
	) *httpserver.Handlers {
		return httpserver.NewHandlers(sources, tracker, cfg.GetGmail(), logger)
	}); err != nil {
		return nil, err
	}

	// Register HTTP server
	if err := container.Provide(func(
		cfg *config.Config,
		verifier auth.TokenVerifier,
		handlers *httpserver.Handlers,
		logger *zap.Logger,
	) *httpserver.Server {
		return httpserver.NewServer(
			cfg.GetString("server.listen_address"),
			cfg.GetStringSlice("server.cors_origins"),
			verifier,
			handlers,
			logger,
		)
	}); err != nil {
		return nil, err
	}

	return container, nil
}
