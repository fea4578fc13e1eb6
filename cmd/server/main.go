package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	"appointment-booking-api/internal/booking"
	pb "appointment-booking-api/internal/bookingpb"
	"appointment-booking-api/internal/config"
	gweb "appointment-booking-api/internal/grpcweb"
	"appointment-booking-api/internal/handler"
	"appointment-booking-api/internal/logger"
	"appointment-booking-api/internal/middleware"
	"appointment-booking-api/internal/notify"
	"appointment-booking-api/internal/store"
)

// how long a delivered-notification key is remembered
const dedupTTL = 24 * time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	policy, err := cfg.Policy()
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	// database
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("db: %w", err)
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("db ping: %w", err)
	}
	log.Info("connected to postgres")

	// run migrations
	if migration, err := os.ReadFile("db/migrations/001_init.sql"); err != nil {
		log.Warn("migration file not found, skipping", zap.Error(err))
	} else if _, err := pool.Exec(ctx, string(migration)); err != nil {
		log.Warn("migration failed", zap.Error(err))
	} else {
		log.Info("migration applied")
	}

	st := store.New(pool, cfg.DBLockTimeout)

	// notifications
	redisOpt := asynq.RedisClientOpt{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB}
	var dispatcher notify.Dispatcher = notify.NewLogDispatcher(log)
	if cfg.NotifyEnabled {
		client := asynq.NewClient(redisOpt)
		defer client.Close()
		dispatcher = notify.NewAsynqDispatcher(client)
		log.Info("notifications enqueued to redis", zap.String("addr", cfg.RedisAddr))
	}
	if cfg.NotifyEnabled && cfg.NotifyWorkerEnabled {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
		defer rdb.Close()
		worker := notify.NewWorker(st, notify.NewRedisDeduper(rdb, dedupTTL), loc, log.Named("notify"))
		qsrv, err := worker.Start(redisOpt, cfg.NotifyConcurrency)
		if err != nil {
			return err
		}
		defer qsrv.Shutdown()
	}

	svc := booking.NewService(st, cfg.Retry(), policy, dispatcher, log.Named("booking"))
	h := handler.New(st, svc, cfg.JWTSecret, log.Named("handler"))

	// grpc server
	rl := middleware.NewRateLimiter(ctx, 5, 10)
	srv := grpc.NewServer(
		grpc.ForceServerCodec(pb.Codec{}),
		grpc.ChainUnaryInterceptor(
			middleware.Logging(log.Named("rpc")),
			middleware.RateLimit(rl),
			middleware.Auth(cfg.JWTSecret),
		),
	)
	pb.RegisterBookingServiceServer(srv, h)

	lis, err := net.Listen("tcp", ":"+cfg.Port)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	errc := make(chan error, 2)
	go func() {
		log.Info("grpc listening", zap.String("port", cfg.Port))
		errc <- srv.Serve(lis)
	}()

	// grpc-web bridge -> forwards browser requests to grpc on localhost
	bridge, err := gweb.New("localhost:"+cfg.Port, log.Named("grpcweb"))
	if err != nil {
		return fmt.Errorf("bridge: %w", err)
	}
	defer bridge.Close()

	httpSrv := &http.Server{
		Addr:              ":" + cfg.WebPort,
		Handler:           bridge.Handler(cfg.CORSOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info("grpc-web listening", zap.String("port", cfg.WebPort))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	// graceful shutdown
	select {
	case <-ctx.Done():
		log.Info("shutting down")
	case err := <-errc:
		log.Error("listener failed", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http shutdown", zap.Error(err))
	}
	srv.GracefulStop()
	return nil
}
