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

	"github.com/joho/godotenv"
	"github.com/seatwise/seatwise/internal/api"
	"github.com/seatwise/seatwise/internal/cache"
	"github.com/seatwise/seatwise/internal/events"
	"github.com/seatwise/seatwise/internal/ports"
	"github.com/seatwise/seatwise/internal/repository"
	"github.com/seatwise/seatwise/internal/service"
	"github.com/seatwise/seatwise/internal/token"
	"github.com/seatwise/seatwise/internal/utils"
	"github.com/seatwise/seatwise/pkg/config"
	"github.com/seatwise/seatwise/pkg/health"
	"github.com/seatwise/seatwise/pkg/logger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type App struct {
	config   *config.Config
	logger   *zap.Logger
	server   *http.Server
	client   *mongo.Client
	cache    *cache.RedisCache
	producer *events.Producer
}

func NewApp(cfg *config.Config, log *zap.Logger) *App {
	return &App{
		config: cfg,
		logger: log,
	}
}

func (a *App) Initialize(ctx context.Context) error {
	if err := a.setupDatabase(ctx); err != nil {
		return fmt.Errorf("database setup failed: %w", err)
	}

	if err := a.setupServer(ctx); err != nil {
		return fmt.Errorf("server setup failed: %w", err)
	}

	return nil
}

func (a *App) setupDatabase(ctx context.Context) error {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(a.config.Mongo.URI))
	if err != nil {
		return fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return fmt.Errorf("failed to ping mongo: %w", err)
	}

	a.client = client
	return nil
}

type Services struct {
	Auth    ports.AuthService
	Flights ports.FlightService
	Booking ports.BookingService
	Tokens  ports.TokenManager
}

func (a *App) setupServices(ctx context.Context) (Services, error) {
	db := a.client.Database(a.config.Mongo.Database)

	userRepo := repository.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		return Services{}, err
	}
	flightRepo := repository.NewFlightRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	var flightCache ports.FlightCache
	if a.config.Redis.Enabled() {
		a.cache = cache.NewRedisCache(
			a.config.Redis.Addr,
			a.config.Redis.Password,
			a.config.Redis.DB,
			a.config.Redis.FlightsTTL,
		)
		flightCache = a.cache
	}

	var bookingOpts []service.BookingServiceOption
	if a.config.Kafka.Enabled() {
		a.producer = events.NewProducer(a.config.Kafka.Brokers)
		bookingOpts = append(bookingOpts, service.WithEventProducer(a.producer, a.config.Kafka.BookingTopic))
	}

	tokens := token.NewManager(a.config.Auth.JWTSecret, a.config.Auth.TokenTTL)
	locks := service.NewFlightLocks()

	return Services{
		Auth:    service.NewAuthService(userRepo, tokens, a.logger),
		Flights: service.NewFlightService(flightRepo, flightCache, locks, a.logger),
		Booking: service.NewBookingService(bookingRepo, flightRepo, userRepo, locks, a.logger, bookingOpts...),
		Tokens:  tokens,
	}, nil
}

func (a *App) setupServer(ctx context.Context) error {
	services, err := a.setupServices(ctx)
	if err != nil {
		return err
	}

	a.server = &http.Server{
		Addr:         a.config.Server.Address,
		Handler:      a.setupRouter(services),
		WriteTimeout: a.config.Server.WriteTimeout,
		ReadTimeout:  a.config.Server.ReadTimeout,
		IdleTimeout:  a.config.Server.IdleTimeout,
	}

	return nil
}

func (a *App) setupRouter(s Services) http.Handler {
	router := http.NewServeMux()
	jsonOnly := func(h http.HandlerFunc) http.HandlerFunc {
		return utils.AllowedContentTypes(h, "application/json")
	}

	router.HandleFunc("/health", health.HealthGet())

	// identity
	router.HandleFunc("/register", utils.AllowedMethods(jsonOnly(api.Register(s.Auth, a.logger)), "POST"))
	router.HandleFunc("/login", utils.AllowedMethods(jsonOnly(api.Login(s.Auth, a.logger)), "POST"))
	router.HandleFunc("/approve-operator", utils.AllowedMethods(
		api.RequireAuth(s.Tokens, api.RequireAdmin(jsonOnly(api.ApproveOperator(s.Auth, a.logger)))), "POST"))
	router.HandleFunc("/reject-operator", utils.AllowedMethods(
		api.RequireAuth(s.Tokens, api.RequireAdmin(jsonOnly(api.RejectOperator(s.Auth, a.logger)))), "POST"))
	router.HandleFunc("/fetch-user/{id}", utils.AllowedMethods(
		api.RequireAuth(s.Tokens, api.FetchUser(s.Auth, a.logger)), "GET"))
	router.HandleFunc("/fetch-users", utils.AllowedMethods(
		api.RequireAuth(s.Tokens, api.RequireAdmin(api.FetchUsers(s.Auth, a.logger))), "GET"))

	// flight catalog
	router.HandleFunc("/add-flight", utils.AllowedMethods(
		api.RequireAuth(s.Tokens, api.RequireApprovedOperator(jsonOnly(api.AddFlight(s.Flights, a.logger)))), "POST"))
	router.HandleFunc("/update-flight", utils.AllowedMethods(
		api.RequireAuth(s.Tokens, api.RequireApprovedOperator(jsonOnly(api.UpdateFlight(s.Flights, a.logger)))), "PUT"))
	router.HandleFunc("/fetch-flights", utils.AllowedMethods(api.FetchFlights(s.Flights, a.logger), "GET"))
	router.HandleFunc("/fetch-flight/{id}", utils.AllowedMethods(api.FetchFlight(s.Flights, a.logger), "GET"))

	// bookings
	router.HandleFunc("/book-ticket", utils.AllowedMethods(
		api.RequireAuth(s.Tokens, jsonOnly(api.BookTicket(s.Booking, a.logger))), "POST"))
	router.HandleFunc("/cancel-ticket/{id}", utils.AllowedMethods(
		api.RequireAuth(s.Tokens, api.CancelTicket(s.Booking, a.logger)), "PUT"))
	router.HandleFunc("/fetch-bookings", utils.AllowedMethods(
		api.RequireAuth(s.Tokens, api.RequireAdmin(api.FetchBookings(s.Booking, a.logger))), "GET"))

	return router
}

func (a *App) Run(ctx context.Context) error {
	serverErrors := make(chan error, 1)

	go func() {
		a.logger.Info("starting server", zap.String("address", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-shutdown:
		a.logger.Info("starting graceful shutdown")
		return a.Shutdown(ctx)
	case <-ctx.Done():
		return a.Shutdown(ctx)
	}
}

func (a *App) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Warn("closing kafka producer", zap.Error(err))
		}
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Warn("closing redis client", zap.Error(err))
		}
	}
	if a.client != nil {
		if err := a.client.Disconnect(shutdownCtx); err != nil {
			return fmt.Errorf("mongo disconnect failed: %w", err)
		}
	}

	return nil
}

func main() {
	_ = godotenv.Load()

	ctx := context.Background()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl, err := logger.New()
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zl.Sync()

	app := NewApp(cfg, zl)
	if err := app.Initialize(ctx); err != nil {
		zl.Fatal("failed to initialize application", zap.Error(err))
	}

	if err := app.Run(ctx); err != nil {
		zl.Fatal("application error", zap.Error(err))
	}
}
