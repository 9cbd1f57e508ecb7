// internal/app/server.go
package app

import (
	"context"
	"fmt"
	"log"

	"tedtam-service/internal/config"
	"tedtam-service/internal/db"
	"tedtam-service/internal/feed"
	assistantHandler "tedtam-service/internal/handlers/assistant"
	authHandler "tedtam-service/internal/handlers/auth"
	customerHandler "tedtam-service/internal/handlers/customer"
	insightsHandler "tedtam-service/internal/handlers/insights"
	wsHandler "tedtam-service/internal/handlers/websocket"
	"tedtam-service/internal/middleware"
	"tedtam-service/internal/pkg/jwt"
	"tedtam-service/internal/repository/postgres"
	assistantUsecase "tedtam-service/internal/service/assistant"
	authUsecase "tedtam-service/internal/service/auth"
	customerUsecase "tedtam-service/internal/service/customer"
	"tedtam-service/internal/service/mirror"
	"tedtam-service/internal/websocket"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger

	cancel context.CancelFunc
}

func NewServer() *Server {
	cfg := config.Load()
	engine := gin.New()
	return &Server{cfg: cfg, engine: engine}
}

func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	// ----- Logger -----
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()
	s.logger = logger

	// ----- PostgreSQL -----
	pool, err := db.ConnectDB(ctx, s.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	// ----- Redis -----
	redisClient, err := db.NewRedisClient(db.RedisConfig{
		Addr:     s.cfg.RedisAddr,
		Password: s.cfg.RedisPass,
		DB:       0,
		PoolSize: 10,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Println("[REDIS] connected")

	// ----- JWT Manager -----
	jwtManager, err := jwt.NewManager(s.cfg.JWT)
	if err != nil {
		return fmt.Errorf("failed to build JWT manager: %w", err)
	}

	// ----- Repositories -----
	customerRepo := postgres.NewCustomerRepository(pool)
	agentRepo := postgres.NewAgentRepository(pool)

	// ----- Change feed -----
	publisher := feed.NewPublisher(redisClient, logger)
	subscription := feed.Subscribe(ctx, redisClient, logger)

	// ----- WebSocket Hub -----
	hub := websocket.NewHub(logger)
	go hub.Run(ctx)

	// ----- Case mirror -----
	caseMirror := mirror.New(customerRepo, logger)
	caseMirror.Refresh(ctx, s.cfg.MirrorOwnerID)

	watcher := mirror.NewWatcher(subscription.Events(), caseMirror, hub, s.cfg.MirrorOwnerID, logger)
	go watcher.Run(ctx)

	// ----- Services -----
	authService := authUsecase.NewAuthService(agentRepo, jwtManager, logger)
	customerService := customerUsecase.NewCustomerService(customerRepo, publisher, logger)
	responder := assistantUsecase.NewResponder(caseMirror)

	// ----- Handlers -----
	authHandlerInst := authHandler.NewAuthHandler(authService, logger)
	customerHandlerInst := customerHandler.NewCustomerHandler(customerService, logger)
	insightsHandlerInst := insightsHandler.NewInsightsHandler(caseMirror, logger)
	assistantHandlerInst := assistantHandler.NewAssistantHandler(responder)
	wsHandlerInst := wsHandler.NewWebSocketHandler(hub, logger)

	// ----- Middlewares -----
	authMiddleware := middleware.NewAuthMiddleware(authService)

	s.engine.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		middleware.CORSMiddleware(),
	)

	// ----- Router -----
	handlers := &Handlers{
		AuthHandler:      authHandlerInst,
		CustomerHandler:  customerHandlerInst,
		InsightsHandler:  insightsHandlerInst,
		AssistantHandler: assistantHandlerInst,
		WSHandler:        wsHandlerInst,
		AuthMiddleware:   authMiddleware,
	}
	SetupRouter(s.engine, logger, handlers)

	logger.Info("server starting", zap.String("addr", s.cfg.HTTPAddr))
	return s.engine.Run(s.cfg.HTTPAddr)
}

// Stop cancels the background workers (hub, feed subscriber, watcher).
func (s *Server) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
}
