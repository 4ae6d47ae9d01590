package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/avercheq/taskhive/internal/application/address"
	"github.com/avercheq/taskhive/internal/application/admin"
	"github.com/avercheq/taskhive/internal/application/auth"
	"github.com/avercheq/taskhive/internal/application/todo"
	"github.com/avercheq/taskhive/internal/application/user"
	"github.com/avercheq/taskhive/internal/config"
	"github.com/avercheq/taskhive/internal/domain"
	"github.com/avercheq/taskhive/internal/infrastructure/db/postgres"
	"github.com/avercheq/taskhive/internal/infrastructure/redis"
	"github.com/avercheq/taskhive/internal/infrastructure/security"
	"github.com/avercheq/taskhive/internal/logger"
	http_handlers "github.com/avercheq/taskhive/internal/transport/http/handlers"
	"github.com/avercheq/taskhive/internal/transport/http/middleware"
	"github.com/avercheq/taskhive/internal/transport/http/response"
	"github.com/avercheq/taskhive/internal/transport/http/router"
)

/*
========================
 Public entry (prod)
========================
*/

func NewServer() (*http.Server, func(), error) {
	return newServer(defaultDeps())
}

// NewServerWithDeps allows injecting dependencies for testing
func NewServerWithDeps(deps Deps) (*http.Server, func(), error) {
	return newServer(deps)
}

/*
========================
 Dependency injection
========================
*/

type Deps struct {
	LoadConfig func() (*config.Config, error)

	NewDB func(addr string) (DBCloser, error)

	NewRedis func(addr, password string, db int) RedisClient

	NewRouter func(router.Deps) (http.Handler, error)
}

type DBCloser interface {
	Close() error
}

type RedisClient interface {
	Ping(ctx context.Context) error
	Close() error
}

/*
========================
 Core bootstrap logic
========================
*/

func newServer(deps Deps) (*http.Server, func(), error) {
	// 0) config
	cfg, err := deps.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	// 1) db
	db, err := deps.NewDB(cfg.DBAddr)
	if err != nil {
		return nil, nil, err
	}

	cleanupFns := []func(){
		func() { _ = db.Close() },
	}

	sqlDB, ok := db.(*sql.DB)
	if !ok {
		runCleanup(cleanupFns)
		return nil, nil, errors.New("bootstrap: NewDB did not return *sql.DB")
	}

	// 2) repos
	userRepo := postgres.NewUserRepo(sqlDB)
	todoRepo := postgres.NewTodoRepo(sqlDB)
	addressRepo := postgres.NewAddressRepo(sqlDB)

	// 3) redis (best-effort; only throttling depends on it)
	var redisCli RedisClient
	if deps.NewRedis != nil && cfg.RedisAddr != "" {
		c := deps.NewRedis(cfg.RedisAddr, "", 0)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := c.Ping(ctx); err != nil {
			logger.Logger.Warn().Err(err).Msg("redis unavailable; rate limiting disabled")
			_ = c.Close()
		} else {
			logger.Logger.Info().Msg("redis connected")
			redisCli = c
			cleanupFns = append(cleanupFns, func() { _ = c.Close() })
		}
	}

	// 4) security
	hasher := security.NewBcryptHasher(cfg.BcryptCost)
	signer, err := security.NewJWTSigner(cfg.JWTSecret, cfg.JWTAlgorithm, cfg.AccessTokenTTL)
	if err != nil {
		runCleanup(cleanupFns)
		return nil, nil, err
	}

	// 5) services
	authSvc := auth.NewService(userRepo, hasher, signer)
	userSvc := user.NewService(userRepo, todoRepo, addressRepo, hasher)
	todoSvc := todo.NewService(todoRepo, userRepo)
	addressSvc := address.NewService(addressRepo)
	adminSvc := admin.NewService(todoRepo)

	// 6) handlers + middleware
	authH := http_handlers.NewAuthHandler(authSvc)
	userH := http_handlers.NewUserHandler(userSvc)
	todoH := http_handlers.NewTodoHandler(todoSvc)
	addressH := http_handlers.NewAddressHandler(addressSvc)
	adminH := http_handlers.NewAdminHandler(adminSvc)
	healthH := http_handlers.NewHealthHandler(sqlDB)

	authMW := middleware.Auth(signer, response.WriteError)
	adminMW := middleware.RequireRole(domain.RoleAdmin, response.WriteError)

	// rate limit (fail-open)
	var rateMW func(http.Handler) http.Handler
	if redisCli != nil {
		limiter := redis.NewFixedWindowLimiter(redisCli.(*redis.Client))
		rateMW = middleware.RateLimitFixedWindow(
			limiter,
			middleware.FixedWindowConfig{
				RouteKey: "auth",
				Limit:    cfg.AuthRateLimit,
				Window:   cfg.AuthRateWindow,
			},
			response.WriteError,
		)
	}

	// 7) router
	mux, err := deps.NewRouter(router.Deps{
		Health:  healthH,
		Auth:    authH,
		User:    userH,
		Todo:    todoH,
		Address: addressH,
		Admin:   adminH,
		AuthMW:  authMW,
		AdminMW: adminMW,
		RateMW:  rateMW,
	})
	if err != nil {
		runCleanup(cleanupFns)
		return nil, nil, err
	}

	// 8) server
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	cleanup := func() {
		runCleanup(cleanupFns)
	}

	return srv, cleanup, nil
}

/*
========================
 Default deps (prod)
========================
*/

func defaultDeps() Deps {
	return Deps{
		LoadConfig: config.Load,
		NewDB: func(addr string) (DBCloser, error) {
			return config.NewDB(addr)
		},
		NewRedis: func(addr, password string, db int) RedisClient {
			return redis.New(addr, password, db)
		},
		NewRouter: func(d router.Deps) (http.Handler, error) {
			return router.New(d)
		},
	}
}

/*
========================
 helpers
========================
*/

func runCleanup(fns []func()) {
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}
