// README: Entry point; loads config, wires clients and services, starts HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"tripkit/internal/ai"
	"tripkit/internal/config"
	httptransport "tripkit/internal/http"
	"tripkit/internal/infra"
	"tripkit/internal/kakao"
	"tripkit/internal/modules/plan"
	"tripkit/internal/route"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatalf("postgres init: %v", err)
	}
	defer dbPool.Close()

	redisClient := infra.NewRedis(cfg.Redis.Addr)

	gemini, err := ai.NewClient(ctx, cfg.AI.GeminiKey)
	if err != nil {
		log.Fatalf("gemini init: %v", err)
	}
	defer gemini.Close()

	kakaoClient := kakao.NewCachedClient(
		kakao.NewClient(cfg.Kakao.RESTKey),
		redisClient,
		cfg.Redis.CacheTTL,
	)

	routeSvc, err := route.NewService(cfg.Maps.APIKey)
	if err != nil {
		log.Fatalf("maps init: %v", err)
	}

	planSvc := plan.NewService(gemini, kakaoClient, routeSvc)
	planStore := plan.NewStore(dbPool)

	server := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: httptransport.NewRouter(planSvc, planStore, kakaoClient),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Printf("listening on %s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
