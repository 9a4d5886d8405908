package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/Max1335/property-insights-hub/internal/config"
	"github.com/Max1335/property-insights-hub/internal/database"
	"github.com/Max1335/property-insights-hub/internal/handler"
	"github.com/Max1335/property-insights-hub/internal/queue"
	"github.com/Max1335/property-insights-hub/internal/repository"
	"github.com/Max1335/property-insights-hub/internal/router"
	"github.com/Max1335/property-insights-hub/internal/search"
)

func main() {
	// A .env file is optional; real deployments set the variables directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// nil when Redis is unreachable; everything downstream degrades.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable: cache, rate limiting and shared comparison sets disabled")
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	props := repository.NewPropertyRepo(db)
	favorites := repository.NewFavoriteRepo(db)
	views := repository.NewViewRepo(db)
	changes := repository.NewChangeRepo(db)
	comparisons := repository.NewComparisonRepo(db)
	searches := repository.NewSavedSearchRepo(db)
	stats := repository.NewStatsRepo(db)

	runner := search.NewRunner(props, time.Duration(cfg.SearchTimeoutSec)*time.Second)

	// View and price-change events arrive over RabbitMQ; the consumer
	// reconnects on its own if the broker drops.
	queue.NewConsumer(views, changes, props).Start()

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens), cfg.JWTSecret)
	router.RegisterPublic(e, handler.NewPublicHandler(props, changes, users, runner), handler.NewAnalyticsHandler(stats), cfg.JWTSecret, rdb)
	router.RegisterUser(e, handler.NewUserHandler(favorites, views, searches, props), handler.NewCompareHandler(props, comparisons, rdb), cfg.JWTSecret)
	router.RegisterRealtor(e, handler.NewRealtorHandler(props), cfg.JWTSecret)
	router.RegisterAdmin(e, handler.NewAdminHandler(props, users, tokens, stats), cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
