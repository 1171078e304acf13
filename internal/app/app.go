package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DRSN-tech/credit-simulator/internal/amortization"
	config "github.com/DRSN-tech/credit-simulator/internal/cfg"
	v1Http "github.com/DRSN-tech/credit-simulator/internal/delivery/v1/http"
	"github.com/DRSN-tech/credit-simulator/internal/infrastructure"
	"github.com/DRSN-tech/credit-simulator/internal/infrastructure/kafka"
	minioInfra "github.com/DRSN-tech/credit-simulator/internal/infrastructure/minio"
	"github.com/DRSN-tech/credit-simulator/internal/infrastructure/outbox"
	s3Repo "github.com/DRSN-tech/credit-simulator/internal/repository/minio"
	"github.com/DRSN-tech/credit-simulator/internal/repository/pgdb"
	pgdbConv "github.com/DRSN-tech/credit-simulator/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/credit-simulator/internal/repository/redis"
	redisConv "github.com/DRSN-tech/credit-simulator/internal/repository/redis/converter"
	"github.com/DRSN-tech/credit-simulator/internal/usecase"
	"github.com/DRSN-tech/credit-simulator/pkg/clients"
	"github.com/DRSN-tech/credit-simulator/pkg/closer"
	"github.com/DRSN-tech/credit-simulator/pkg/e"
	"github.com/DRSN-tech/credit-simulator/pkg/logger"
	"github.com/DRSN-tech/credit-simulator/pkg/postgres"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

const (
	ensureTopicTimeout  = 10 * time.Second
	ensureBucketTimeout = 10 * time.Second
	pingTimeout         = 5 * time.Second
)

// App держит собранные зависимости сервиса и управляет их жизненным циклом.
type App struct {
	cfg     *config.Config
	logger  logger.Logger
	closer  *closer.Closer
	httpSrv *v1Http.Server
	worker  *kafka.OutboxWorker
}

// NewApp подключает хранилища и собирает граф зависимостей.
// Всё, что успело открыться до ошибки, закрывается.
func NewApp(cfg *config.Config, logger logger.Logger) (app *App, err error) {
	cl := closer.NewCloser(0, logger)
	defer func() {
		if err != nil {
			if closeErr := cl.Close(context.Background()); closeErr != nil {
				logger.Warnf("cleanup after failed init: %v", closeErr)
			}
		}
	}()

	db, err := initPGDB(logger, cfg)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	cl.AddNamed("postgres", db.Close)

	redisClient := clients.NewRedisClient(cfg.Redis)
	cl.AddNamed("redis", redisClient.Close)

	redisCtx, redisCancel := context.WithTimeout(context.Background(), pingTimeout)
	defer redisCancel()
	if err = redisClient.Ping(redisCtx); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	productRepo := pgdb.NewProductRepo(db.Pool, pgdbConv.NewProductConverterImpl())
	outboxRepo := pgdb.NewOutboxEventRepo(db.Pool, pgdbConv.NewOutboxEventConverterImpl(), cfg.Publish.OutboxProcessingTimeout)
	cacheRepo := redis.NewCacheRepo(redisClient, redisConv.NewCatalogConverterImpl(), cfg.Redis, logger)

	producer := kafka.NewProducer(logger, cfg.Kafka)
	cl.AddNamed("kafka producer", producer.Close)

	topicCtx, topicCancel := context.WithTimeout(context.Background(), ensureTopicTimeout)
	defer topicCancel()
	if err := producer.EnsureTopic(topicCtx); err != nil {
		// Топик может создать брокер (auto.create.topics.enable), поэтому не падаем.
		logger.Warnf("failed to ensure kafka topic %s: %v", cfg.Kafka.Topic, err)
	}

	var (
		publishers []usecase.ResultPublisher
		worker     *kafka.OutboxWorker
	)

	switch cfg.Publish.Mode {
	case config.PublishDirect:
		publishers = append(publishers, kafka.NewSimulationPublisher(producer))
	case config.PublishOutbox:
		publishers = append(publishers, outbox.NewPublisher(db.Pool, outboxRepo))
		worker = kafka.NewOutboxWorker(outboxRepo, logger, producer, db.Dsn, cfg.Publish)
		cl.AddNamed("outbox worker", worker.Stop)
	default:
		return nil, e.Wrap(string(cfg.Publish.Mode), e.ErrUnknownPublishMode)
	}

	if cfg.Minio.Enabled {
		archivePublisher, err := initArchive(logger, cfg.Minio)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		publishers = append(publishers, archivePublisher)
	}

	simulationUC := usecase.NewSimulationUC(
		productRepo,
		cacheRepo,
		amortization.NewCalculator(),
		infrastructure.NewFanoutPublisher(publishers...),
		logger,
		cfg.Publish.Timeout,
	)
	cl.AddNamed("pending publishes", simulationUC.WaitForPublishes)

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, logger)
	router.Init(simulationUC)

	httpSrv := v1Http.NewServer(r, cfg.Http, logger)
	cl.AddNamed("http server", httpSrv.Stop)

	return &App{
		cfg:     cfg,
		logger:  logger,
		closer:  cl,
		httpSrv: httpSrv,
		worker:  worker,
	}, nil
}

// Run запускает HTTP-сервер и outbox-воркер, затем ждёт сигнала или фатальной ошибки сервера.
// Ресурсы закрываются в обратном порядке: сервер, фоновые публикации, воркер, producer, Redis, Postgres.
func (a *App) Run() error {
	if err := a.httpSrv.Listen(); err != nil {
		a.logger.Errorf(err, "failed to bind HTTP port %s", a.cfg.Http.Port)
		if closeErr := a.closer.Close(context.Background()); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
		return e.Wrap(whereami.WhereAmI(), err)
	}

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	if a.worker != nil {
		a.worker.Start(workerCtx)
		a.logger.Infof("outbox worker started")
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.httpSrv.Serve(); err != nil {
			errCh <- err
		}
	}()

	// === Ожидание сигнала или ошибки ===
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case sig := <-shutdown:
		a.logger.Infof("Received %s, stopping gracefully...", sig)
	}

	// === Graceful shutdown ===
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Errorf(err, "shutdown finished with errors")
		appErr = errors.Join(appErr, err)
	}

	a.logger.Infof("Application shutdown complete")
	return appErr
}

func initPGDB(logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	db, err := postgres.Connect(ctx, cfg.Db)
	if err != nil {
		logger.Errorf(err, "failed to connect to database %s:%s", cfg.Db.Host, cfg.Db.Port)
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(logger); err != nil {
		logger.Errorf(err, "failed to run migrations from %s", cfg.Db.MigrationsPath)
		_ = db.Close(context.Background())
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}

func initArchive(logger logger.Logger, cfg *config.MinIOCfg) (*minioInfra.ArchivePublisher, error) {
	minioClient, err := clients.NewMinIOClient(cfg)
	if err != nil {
		logger.Errorf(err, "failed to initialize minio client")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), ensureBucketTimeout)
	defer cancel()
	if err := clients.EnsureBucket(ctx, minioClient, cfg.BucketName); err != nil {
		logger.Errorf(err, "failed to initialize MinIO bucket")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	archiveRepo := s3Repo.NewArchiveRepo(minioClient, cfg)
	return minioInfra.NewArchivePublisher(archiveRepo, logger), nil
}
