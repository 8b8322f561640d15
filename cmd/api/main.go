package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"

	"github.com/bookburst/bookburst/service-api-go-stdlib/internal/book"
	bookrepo "github.com/bookburst/bookburst/service-api-go-stdlib/internal/book/repo"
	"github.com/bookburst/bookburst/service-api-go-stdlib/internal/explore"
	"github.com/bookburst/bookburst/service-api-go-stdlib/internal/router"
	"github.com/bookburst/bookburst/service-api-go-stdlib/internal/search"
	"github.com/bookburst/bookburst/service-api-go-stdlib/internal/session"
	sessionrepo "github.com/bookburst/bookburst/service-api-go-stdlib/internal/session/repo"
	"github.com/bookburst/bookburst/service-api-go-stdlib/internal/user"
	userrepo "github.com/bookburst/bookburst/service-api-go-stdlib/internal/user/repo"
	"github.com/bookburst/bookburst/service-api-go-stdlib/pkg/database"
	"github.com/bookburst/bookburst/service-api-go-stdlib/pkg/utilities"
)

func main() {
	// load .env file if present so os.Getenv picks values from it
	// this is best-effort: if no .env exists, continue (use defaults or real env)
	_ = godotenv.Load()

	// init logger
	lg, err := utilities.InitLogger(utilities.LoggerConfigFromEnv())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer lg.Sync()

	sugar := lg.Sugar()
	sugar.Info("starting bookburst service-api")

	// store selection: postgres when DATABASE_URL is set, in-memory otherwise
	var (
		users    userrepo.Repository
		books    bookrepo.Repository
		sessions sessionrepo.Repository
	)
	dbCfg := database.ConfigFromEnv()
	if dbCfg.DSN != "" {
		sqlDB, err := database.Connect(dbCfg)
		if err != nil {
			sugar.Fatalf("db connect: %v", err)
		}
		defer sqlDB.Close()

		sqlxDB := sqlx.NewDb(sqlDB, "postgres")

		ur := userrepo.NewPostgresRepo(sqlxDB)
		br := bookrepo.NewPostgresRepo(sqlxDB)
		sr := sessionrepo.NewPostgresRepo(sqlxDB)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		for _, ensure := range []func(context.Context) error{ur.EnsureTable, br.EnsureTable, sr.EnsureTable} {
			if err := ensure(ctx); err != nil {
				cancel()
				sugar.Fatalf("ensure table: %v", err)
			}
		}
		cancel()
		users, books, sessions = ur, br, sr
		sugar.Info("using postgres store")
	} else {
		users, books, sessions = userrepo.NewMemoryRepo(), bookrepo.NewMemoryRepo(), sessionrepo.NewMemoryRepo()
		sugar.Warn("DATABASE_URL not set; using in-memory store, state is lost on restart")
	}

	// session manager: stateless signed tokens when SESSION_SECRET is set
	var sessionMgr session.Manager
	if secret := os.Getenv("SESSION_SECRET"); secret != "" {
		sessionMgr = session.NewJWTManager([]byte(secret))
		sugar.Info("using stateless signed session tokens")
	} else {
		sessionMgr = session.NewStoreManager(sessions)
	}

	// search provider: external catalog when configured, fixture otherwise
	var provider search.Provider = search.NewCatalogProvider()
	if base := os.Getenv("GOOGLE_BOOKS_URL"); base != "" {
		provider = search.NewGoogleBooksProvider(base)
		sugar.Infow("using external search provider", "url", base)
	}

	userSvc := user.NewService(users, nil)
	bookSvc := book.NewService(books)
	exploreSvc := explore.NewService(bookSvc, userSvc)

	// graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = "0.0.0.0:8431"
	}

	handler := router.RegisterRoutes(sugar, router.Deps{
		Users:    userSvc,
		Sessions: sessionMgr,
		Books:    bookSvc,
		Search:   provider,
		Explore:  exploreSvc,
	})
	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// run server in background
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalf("http server failed: %v", err)
		}
	}()

	sugar.Infow("service is running", "addr", addr)

	<-ctx.Done()

	sugar.Info("shutting down")

	// give a short grace period for cleanup
	doneCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(doneCtx); err != nil {
		sugar.Warnf("http server shutdown failed: %v", err)
	}

	sugar.Info("goodbye")
}
