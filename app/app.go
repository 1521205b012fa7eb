package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nats-io/nats.go/jetstream"

	"clubhub/internal/apperrors"
	"clubhub/internal/auth"
	"clubhub/internal/cache"
	"clubhub/internal/config"
	"clubhub/internal/database"
	"clubhub/internal/events"
	"clubhub/internal/handler"
	"clubhub/internal/logger"
	"clubhub/internal/media"
	"clubhub/internal/natsjetstream"
	"clubhub/internal/repository"
	"clubhub/internal/service"
	"clubhub/internal/ws"
)

type App struct {
	cfg        *config.Config
	logger     *logger.Logger
	db         *database.DynamoDBClient
	redis      *cache.RedisClient
	natsClient *natsjetstream.Client
	mediaStore media.Store

	hub             *ws.Hub
	eventPublisher  *events.EventPublisher
	eventSubscriber *events.EventSubscriber

	httpServer *http.Server

	cleanup []func() error
}

func New(ctx context.Context, cfg *config.Config) (*App, *apperrors.AppError) {
	app := &App{
		cfg:     cfg,
		cleanup: make([]func() error, 0),
	}

	app.initLogger()

	if err := app.initDatabase(ctx); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternalServer, "failed to init database")
	}

	if err := app.initRedis(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternalServer, "failed to init redis client")
	}

	if err := app.initNATS(ctx); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternalServer, "failed to init nats client")
	}

	if err := app.initMediaStore(ctx); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternalServer, "failed to init media store")
	}

	if err := app.initHTTP(ctx); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternalServer, "failed to init http server")
	}

	return app, nil
}

func (a *App) initLogger() {
	a.logger = logger.ForEnvironment(a.cfg.Server.Environment, a.cfg.Server.LogLevel, "clubhub")
}

func (a *App) initDatabase(ctx context.Context) error {
	db, err := database.NewDynamoDBClient(ctx, a.cfg)
	if err != nil {
		return err
	}

	a.db = db
	return nil
}

func (a *App) initRedis() error {
	redisClient, err := cache.NewRedisClient(a.cfg.Redis)
	if err != nil {
		return err
	}

	a.redis = redisClient
	a.cleanup = append(a.cleanup, redisClient.Close)

	return nil
}

func (a *App) initNATS(ctx context.Context) error {
	natsClient, err := natsjetstream.NewClient(&natsjetstream.Config{
		URL:           a.cfg.NATS.URL,
		MaxReconnect:  a.cfg.NATS.MaxReconnect,
		ReconnectWait: time.Duration(a.cfg.NATS.ReconnectWaitSeconds) * time.Second,
		Timeout:       time.Duration(a.cfg.NATS.TimeoutSeconds) * time.Second,
	})
	if err != nil {
		return err
	}

	a.natsClient = natsClient

	stream := jetstream.StreamConfig{
		Name:     events.LeaderboardEventsStream,
		Subjects: []string{events.LeaderboardEventsWildcard},
	}

	if _, streamErr := a.natsClient.JetStream().CreateOrUpdateStream(ctx, stream); streamErr != nil {
		a.logger.Error("Failed to create stream",
			"error", streamErr,
			"stream", stream.Name,
		)
		return streamErr
	}
	a.logger.Info("Stream ready", "stream", stream.Name)

	a.cleanup = append(a.cleanup, natsClient.Close)

	return nil
}

func (a *App) initMediaStore(ctx context.Context) error {
	store, err := media.NewS3Store(ctx, a.cfg)
	if err != nil {
		return err
	}

	a.mediaStore = store
	return nil
}

func (a *App) initHTTP(ctx context.Context) error {
	memberRepo := repository.NewMemberRepository(a.db)
	scoreRepo := repository.NewScoreRepository(a.db)
	timeAttackRepo := repository.NewTimeAttackRepository(a.db)
	sessionRepo := repository.NewSessionRepository(a.db)
	announcementRepo := repository.NewAnnouncementRepository(a.db)
	noteRepo := repository.NewNoteRepository(a.db)
	liveRepo := repository.NewLiveRepository(a.redis, a.logger)

	a.eventPublisher = events.NewEventPublisher(a.natsClient, a.logger)

	rosterService := service.NewRosterService(memberRepo, a.logger)
	leaderboardService := service.NewLeaderboardService(memberRepo, scoreRepo, timeAttackRepo, a.logger)
	submissionService := service.NewSubmissionService(
		memberRepo,
		scoreRepo,
		timeAttackRepo,
		a.mediaStore,
		a.eventPublisher,
		a.cfg.Media.MaxUploadSize,
		a.logger,
	)
	announcementService := service.NewAnnouncementService(
		announcementRepo,
		noteRepo,
		a.mediaStore,
		a.cfg.Media.MaxUploadSize,
		a.logger,
	)
	sessionService := service.NewSessionService(sessionRepo, leaderboardService, a.logger)

	a.hub = ws.NewHub(a.logger)
	go a.hub.Run()

	a.eventSubscriber = events.NewEventSubscriber(a.natsClient, liveRepo, a.hub, a.logger)
	if err := a.eventSubscriber.Start(ctx); err != nil {
		return err
	}
	a.cleanup = append(a.cleanup, func() error {
		a.eventSubscriber.Stop()
		return nil
	})

	authenticator := auth.NewAuthenticator(a.cfg.Auth)

	if a.cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery(), a.requestLogger())
	engine.MaxMultipartMemory = a.cfg.Media.MaxUploadSize

	handler.SetupRoutes(
		engine,
		authenticator,
		handler.NewAuthHandler(authenticator, a.logger),
		handler.NewPublicHandler(
			rosterService,
			leaderboardService,
			submissionService,
			announcementService,
			sessionService,
			a.cfg.Media.MaxUploadSize,
			a.logger,
		),
		handler.NewAdminHandler(
			rosterService,
			leaderboardService,
			submissionService,
			announcementService,
			sessionService,
			a.mediaStore,
			a.cfg.Media.MaxUploadSize,
			a.logger,
		),
		handler.NewWSHandler(a.hub, a.logger),
	)

	a.httpServer = &http.Server{
		Addr:    fmt.Sprintf(":%d", a.cfg.Server.HTTPPort),
		Handler: engine,
	}

	return nil
}

func (a *App) Start() {
	go func() {
		a.logger.Info("HTTP server listening", "port", a.cfg.Server.HTTPPort)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.logger.Fatal("Failed to serve", "error", err)
		}
	}()

	a.logger.Info("Application started successfully")
}

func (a *App) Stop() {
	a.logger.Info("Stopping application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if a.httpServer != nil {
		if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("HTTP shutdown error", "error", err)
		}
	}

	for _, cleanup := range a.cleanup {
		if err := cleanup(); err != nil {
			a.logger.Error("Cleanup error", "error", err)
		}
	}

	a.logger.Info("Application stopped")
}

func (a *App) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		a.logger.Info("Request handled",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}
