// internal/app/server.go
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/swayamn72/Aegis2.0/internal/config"
	"github.com/swayamn72/Aegis2.0/internal/db"
	adminHandler "github.com/swayamn72/Aegis2.0/internal/handlers/admin"
	authHandler "github.com/swayamn72/Aegis2.0/internal/handlers/auth"
	"github.com/swayamn72/Aegis2.0/internal/middleware"
	"github.com/swayamn72/Aegis2.0/internal/pkg/password"
	"github.com/swayamn72/Aegis2.0/internal/pkg/token"
	"github.com/swayamn72/Aegis2.0/internal/repository/postgres"
	adminsvc "github.com/swayamn72/Aegis2.0/internal/service/admin"
	auditsvc "github.com/swayamn72/Aegis2.0/internal/service/audit"
	authsvc "github.com/swayamn72/Aegis2.0/internal/service/auth"
	"github.com/swayamn72/Aegis2.0/internal/service/email"
	orgsvc "github.com/swayamn72/Aegis2.0/internal/service/organization"
	playersvc "github.com/swayamn72/Aegis2.0/internal/service/player"
	ratelimitsvc "github.com/swayamn72/Aegis2.0/internal/service/ratelimit"
	sessionsvc "github.com/swayamn72/Aegis2.0/internal/service/session"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
	http   *http.Server

	pool  *pgxpool.Pool
	redis *redis.Client
}

func NewServer(cfg config.AppConfig, logger *zap.Logger) *Server {
	return &Server{
		cfg:    cfg,
		engine: gin.New(),
		logger: logger,
	}
}

func (s *Server) Start() error {
	ctx := context.Background()

	if s.cfg.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must be set")
	}

	// ----- PostgreSQL -----
	pool, err := db.ConnectDB(ctx, s.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	s.pool = pool

	if err := db.Migrate(ctx, pool); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// ----- Redis -----
	redisClient, err := db.NewRedisClient(db.RedisConfig{
		Addr:     s.cfg.RedisAddr,
		Password: s.cfg.RedisPass,
		DB:       s.cfg.RedisDB,
		PoolSize: 10,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	s.redis = redisClient
	s.logger.Info("redis connected", zap.String("addr", s.cfg.RedisAddr))

	// ----- Core building blocks -----
	hasher := password.NewHasher()
	codec := token.NewCodec([]byte(s.cfg.JWTSecret), s.cfg.JWTIssuer, s.cfg.AccessTTL)

	// ----- Email -----
	sender := email.NewSender(
		s.cfg.SMTPHost,
		s.cfg.SMTPPort,
		s.cfg.SMTPUser,
		s.cfg.SMTPPass,
		s.cfg.SMTPFromName,
		s.cfg.SMTPSecure,
	)
	mailer := email.NewMailer(sender, s.logger, s.cfg.BaseURL)

	// ----- Repositories -----
	dbWrapper := postgres.NewDB(pool)
	playerRepo := postgres.NewPlayerRepository(pool)
	adminRepo := postgres.NewAdminRepository(pool)
	orgRepo := postgres.NewOrganizationRepository(pool)
	sessionRepo := postgres.NewSessionRepository(pool)
	rateLimitRepo := postgres.NewRateLimitRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)

	// ----- Services -----
	playerService := playersvc.NewService(playerRepo, hasher, s.logger)
	adminService := adminsvc.NewService(adminRepo, hasher, s.logger)
	orgService := orgsvc.NewService(orgRepo, hasher, s.logger)
	auditService := auditsvc.NewService(auditRepo, s.logger)
	limiter := ratelimitsvc.NewLimiter(dbWrapper, rateLimitRepo, s.logger)
	sessionStore := sessionsvc.NewStore(sessionRepo, sessionsvc.NewCache(redisClient), s.logger)

	orchestrator := authsvc.NewOrchestrator(
		playerService,
		adminService,
		orgService,
		sessionStore,
		limiter,
		codec,
		auditService,
		mailer,
		authsvc.Policies{
			Login:    s.cfg.LoginLimit,
			Register: s.cfg.RegisterLimit,
		},
		s.logger,
	)

	// ----- Handlers -----
	authHandlerInst := authHandler.NewAuthHandler(orchestrator, s.logger)
	adminHandlerInst := adminHandler.NewAdminHandler(orgService, auditService, s.logger)

	// ----- Middlewares -----
	authMiddleware := middleware.NewAuthMiddleware(orchestrator, adminService, orgService)

	s.engine.Use(
		middleware.RecoveryMiddleware(s.logger),
		middleware.RequestIDMiddleware(),
		middleware.LoggingMiddleware(s.logger),
		middleware.CORSMiddleware(s.cfg.AllowedOrigins),
	)

	// ----- Router -----
	SetupRouter(s.engine, &Handlers{
		AuthHandler:    authHandlerInst,
		AdminHandler:   adminHandlerInst,
		AuthMiddleware: authMiddleware,
	})

	// ----- Start HTTP -----
	s.http = &http.Server{
		Addr:              s.cfg.HTTPAddr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("server running", zap.String("addr", s.cfg.HTTPAddr))
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and releases the connection pools.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	if s.http != nil {
		err = s.http.Shutdown(ctx)
	}
	if s.redis != nil {
		s.redis.Close()
	}
	if s.pool != nil {
		s.pool.Close()
	}
	return err
}
