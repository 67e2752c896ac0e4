package main

import (
	"context"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/rescueops/admin-console/application/accounts"
	"github.com/rescueops/admin-console/application/editor"
	"github.com/rescueops/admin-console/application/events"
	"github.com/rescueops/admin-console/application/help"
	localeapp "github.com/rescueops/admin-console/application/locale"
	"github.com/rescueops/admin-console/application/mapview"
	"github.com/rescueops/admin-console/application/missing"
	"github.com/rescueops/admin-console/application/session"
	"github.com/rescueops/admin-console/cmd/config"
	redisclient "github.com/rescueops/admin-console/cmd/redis"
	_ "github.com/rescueops/admin-console/docs"
	identityRepo "github.com/rescueops/admin-console/repository/identity"
	prefsRepo "github.com/rescueops/admin-console/repository/prefs"
	storeRepo "github.com/rescueops/admin-console/repository/store"
	"github.com/rescueops/admin-console/thirdparty/rabbitmq"
	"github.com/rescueops/admin-console/transport"
	"github.com/rescueops/admin-console/utils/logger"
	"go.uber.org/zap"
)

// @title RESCUE ADMIN CONSOLE API
// @version 1.0
// @description Administrative console for the search-and-rescue coordination platform
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables
	cfg := config.Load()

	// Initialize global logger
	if err := logger.Init(cfg.Environment); err != nil {
		// fallback to standard log if zap init fails
		panic(err)
	}
	defer logger.Close()

	logger.Info("Starting console", zap.String("env", cfg.Environment))

	// Connect to the remote store
	db, err := sqlx.Connect("mysql", cfg.GetDSN())
	if err != nil {
		logger.Fatal("err connect store", zap.Error(err))
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// Initialize Redis for persisted console preferences
	if err := redisclient.New(cfg); err != nil {
		logger.Fatal("err connect redis", zap.Error(err))
	}
	defer func() {
		_ = redisclient.Close()
	}()

	// Change-feed publisher/consumer are optional; the console works
	// without a broker, other instances just refresh later.
	var publisher editor.ChangePublisher
	if cfg.Rabbit.Enabled {
		pub, err := rabbitmq.NewPublisher(cfg.Rabbit.Host, cfg.Rabbit.Port, cfg.Rabbit.User, cfg.Rabbit.Password)
		if err != nil {
			logger.Fatal("err connect rabbitmq publisher", zap.Error(err))
		}
		defer pub.Close()
		publisher = pub

		consumer, err := rabbitmq.NewConsumer(cfg.Rabbit.Host, cfg.Rabbit.Port, cfg.Rabbit.User, cfg.Rabbit.Password,
			"http://localhost:"+cfg.Server.Port, cfg.Auth.InternalAPIKey)
		if err != nil {
			logger.Fatal("err connect rabbitmq consumer", zap.Error(err))
		}
		defer consumer.Close()
		if err := consumer.Start(context.Background()); err != nil {
			logger.Fatal("err start rabbitmq consumer", zap.Error(err))
		}
	}

	// Initialize repositories
	store := storeRepo.NewStore(db)
	issuer := identityRepo.NewIssuer(db)
	prefs := prefsRepo.NewRepository()

	// Initialize application layers: one controller per screen
	rh := &transport.RestHandler{
		Accounts: accounts.New(store, issuer, publisher),
		Events:   events.New(store, publisher),
		Missing:  missing.New(store, publisher),
		Help:     help.New(store, publisher),
		Map:      mapview.New(store),
		Locale:   localeapp.NewManager(prefs, cfg.Console.DefaultLocale),
	}
	sessionApp := session.NewSessionApp(cfg)

	httpTransport := transport.NewTransport(rh, sessionApp, cfg.Auth.InternalAPIKey)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpTransport,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	logger.Info("HTTP server running", zap.String("port", cfg.Server.Port))
	err = server.ListenAndServe()
	if err != nil {
		logger.Fatal("failed server", zap.Error(err))
	}
}
