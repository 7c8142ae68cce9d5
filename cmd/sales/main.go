package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"salesdash/internal/handler"
	"salesdash/internal/ingest"
	"salesdash/internal/middleware"
	"salesdash/internal/query"
	"salesdash/internal/repository/postgres"
	"salesdash/internal/source"
	"salesdash/pkg/cache"
	"salesdash/pkg/config"
	"salesdash/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New("sales-service")

	if err := cfg.ValidateCore(); err != nil {
		log.Fatal("Invalid configuration", map[string]interface{}{"error": err.Error()})
	}

	log.Info("Starting Sales Query Service", map[string]interface{}{
		"port":   cfg.Server.Port,
		"source": cfg.Data.Source,
	})

	var recordSource query.RecordSource
	ready := func() error { return nil }

	switch cfg.Data.Source {
	case config.SourcePostgres:
		db, err := sqlx.Connect("postgres", cfg.Database.URL)
		if err != nil {
			log.Fatal("Failed to connect to database", map[string]interface{}{"error": err.Error()})
		}
		defer db.Close()

		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

		repo := postgres.NewSalesRepository(db)
		recordSource = repo
		ready = func() error { return repo.Ping(context.Background()) }

		log.Info("Database connected", nil)

	case config.SourceSnapshot:
		records, err := ingest.ReadFile(cfg.Data.DatasetPath)
		if err != nil {
			log.Fatal("Failed to load dataset", map[string]interface{}{
				"error": err.Error(),
				"path":  cfg.Data.DatasetPath,
			})
		}
		snap := source.NewSnapshot()
		snap.Replace(records)
		recordSource = snap

		log.Info("Snapshot loaded", map[string]interface{}{"records": snap.Len()})
	}

	var metaCache handler.MetadataCache
	var redisCache *cache.RedisCache
	if cfg.Redis.Enabled {
		var err error
		redisCache, err = cache.NewRedisCache(cfg.Redis.URL, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal("Failed to connect to Redis", map[string]interface{}{"error": err.Error()})
		}
		defer redisCache.Close()
		metaCache = redisCache

		log.Info("Redis connected", nil)
	}

	engine := query.NewEngine(recordSource, log)
	salesHandler := handler.NewSalesHandler(engine, metaCache, cfg.Redis.MetaTTL, log)

	r := mux.NewRouter()
	r.Use(middleware.CORS)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.Recovery)
	r.Use(middleware.CorrelationID)
	r.Use(middleware.NewLoggingMiddleware(log).Log)
	if redisCache != nil {
		r.Use(middleware.NewRateLimiter(redisCache.Client(), 150, time.Minute).Limit)
	}

	r.HandleFunc("/health", healthCheck).Methods("GET")
	r.HandleFunc("/ready", readyCheck(ready)).Methods("GET")

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/sales", salesHandler.GetSales).Methods("GET")
	api.HandleFunc("/sales/meta", salesHandler.GetMetadata).Methods("GET")

	srv := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("Listening", map[string]interface{}{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed", map[string]interface{}{"error": err.Error()})
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down", nil)
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Shutdown failed", map[string]interface{}{"error": err.Error()})
	}
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func readyCheck(ready func() error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := ready(); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"status": "unavailable"})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
	}
}
