package main

import (
	"log"

	redisv9 "github.com/redis/go-redis/v9"

	"record_backend/internal/app/router"
	"record_backend/internal/config"
	"record_backend/internal/feature/events/hub"
	eventshandler "record_backend/internal/feature/events/transport/handler"
	recordsadapters "record_backend/internal/feature/records/adapters"
	recordshandler "record_backend/internal/feature/records/transport/handler"
	recordsusecase "record_backend/internal/feature/records/usecase"
	"record_backend/internal/platform/cache"
	platformdb "record_backend/internal/platform/db"
	platformhandler "record_backend/internal/platform/http/handler"
	platformredis "record_backend/internal/platform/redis"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal(err)
	}

	// db
	db := platformdb.OpenDB(cfg.Database)

	// Redis (optional; the service runs without a cache)
	var rdb *redisv9.Client
	if cfg.Redis.Addr != "" {
		if tmp, err := platformredis.NewRedisClient(cfg.Redis); err != nil {
			log.Println("[WARN] Redis unavailable. Running without cache.")
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					log.Println("[ERROR] Failed to close Redis client:", err)
				}
			}()
		}
	}

	// Repository, wrapped with the Redis cache
	recordRepo := recordsadapters.NewRecordGorm(db)
	cachedRepo := cache.NewCachingRecordRepository(rdb, cfg.CacheTTL, recordRepo, "records")

	// Broadcaster
	eventHub := hub.New(cfg.EventBuffer)

	// Usecase
	recordUC := recordsusecase.NewRecordUsecase(cachedRepo, eventHub)

	// Handler
	recordH := recordshandler.NewRecordHandler(recordUC)
	eventsH := eventshandler.NewEventsHandler(eventHub)
	healthH := platformhandler.NewHealthHandler(db)

	r := router.NewRouter(recordH, eventsH, healthH)

	if err := r.Run(cfg.ServerAddr); err != nil {
		log.Fatal(err)
	}
}
