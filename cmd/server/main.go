package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/cache"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/config"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/core/lock"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/core/oracle"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/documents"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/handler"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/repository"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/transport"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/workers"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/pkg/gcs"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/pkg/logger"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/pkg/redis"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Server wires together the repository manager, cache, workers and HTTP
// routes behind a single process, mirroring the teacher's Server/NewServer
// shape.
type Server struct {
	cfg       *config.Config
	router    *mux.Router
	cron      *cron.Cron
	repos     repository.RepositoryManager
	gcsClient *gcs.Client
}

func newServer(cfg *config.Config) (*Server, error) {
	repos, err := repository.NewRepositoryManager()
	if err != nil {
		return nil, fmt.Errorf("repository manager: %w", err)
	}

	redisSvc, err := redis.NewService(&redis.Config{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		return nil, fmt.Errorf("redis service: %w", err)
	}

	sessionCache := cache.New(redisSvc)
	lockManager := lock.NewManager(redisSvc)

	var oracleClient oracle.Client
	if cfg.OracleBaseURL != "" {
		httpOracle := oracle.NewHTTPClient(cfg.OracleBaseURL)
		oracleClient = oracle.NewResilientClient(httpOracle, cfg.OracleRateLimit, cfg.OracleBurst)
	}

	var docService *documents.Service
	var gcsClient *gcs.Client
	if cfg.GCSBucket != "" {
		var err error
		gcsClient, err = gcs.NewClient(context.Background(), cfg.GCSBucket)
		if err != nil {
			logger.Base().Warn("gcs client unavailable, ROI reports disabled", zap.Error(err))
			gcsClient = nil
		} else {
			docService = documents.NewService(gcsClient)
		}
	}

	var telegramClient *transport.TelegramClient
	if cfg.TelegramBotToken != "" {
		telegramClient = transport.NewTelegramClient(fmt.Sprintf("%s/bot%s", cfg.TelegramAPIBaseURL, cfg.TelegramBotToken))
	}

	var gatewaySender *transport.GatewaySender
	switch {
	case cfg.TwilioAccountSID != "":
		gatewaySender = transport.NewTwilioGatewaySender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber)
	case cfg.GatewayBaseURL != "":
		gatewaySender = transport.NewBespokeGatewaySender(cfg.GatewayBaseURL)
	}
	dispatcher := transport.NewDispatcher(telegramClient, gatewaySender)

	matchNotifier := workers.NewMatchNotifier(repos, dispatcher, docService)
	ghostWorker := workers.NewGhostProtocolWorker(repos, dispatcher)
	digestWorker := workers.NewDailyDigestWorker(repos, dispatcher)

	c := cron.New()
	if err := ghostWorker.Register(c); err != nil {
		return nil, fmt.Errorf("register ghost protocol worker: %w", err)
	}
	if err := digestWorker.Register(c); err != nil {
		return nil, fmt.Errorf("register daily digest worker: %w", err)
	}

	hm := handler.NewHandlerManager(repos, sessionCache, lockManager, oracleClient, dispatcher, matchNotifier, []byte(cfg.ServiceSigningKey))

	r := mux.NewRouter()
	hm.SetupAllRoutes(r)
	r.Handle("/metrics", promhttp.Handler())
	r.HandleFunc("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return &Server{cfg: cfg, router: r, cron: c, repos: repos, gcsClient: gcsClient}, nil
}

func (s *Server) start() *http.Server {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", s.cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.cron.Start()
	go func() {
		logger.Base().Info("starting cqc server", zap.String("addr", srv.Addr), zap.String("instance_id", s.cfg.InstanceID))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Base().Error("server stopped unexpectedly", zap.Error(err))
		}
	}()
	return srv
}

func (s *Server) shutdown(ctx context.Context, srv *http.Server) {
	cronCtx := s.cron.Stop()
	<-cronCtx.Done()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Base().Error("graceful shutdown failed", zap.Error(err))
	}
	if err := s.repos.Close(); err != nil {
		logger.Base().Error("failed to close repository manager", zap.Error(err))
	}
	if s.gcsClient != nil {
		if err := s.gcsClient.Close(); err != nil {
			logger.Base().Error("failed to close gcs client", zap.Error(err))
		}
	}
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("info: .env file not found or skipped: %v", err)
	}

	if _, err := logger.Init(os.Getenv("LOG_ENV")); err != nil {
		log.Printf("warning: failed to initialize zap logger, falling back to std log: %v", err)
	}

	cfg := config.LoadFromEnv()

	server, err := newServer(cfg)
	if err != nil {
		log.Fatalf("failed to initialize server: %v", err)
	}

	httpServer := server.start()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Base().Info("shutdown signal received, draining")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	server.shutdown(ctx, httpServer)
	logger.Sync()
}
