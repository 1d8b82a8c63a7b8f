package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	echoapi "github.com/littleheartschool/backend/apps/api/echo"
	"github.com/littleheartschool/backend/core"
	"github.com/littleheartschool/backend/core/admission"
	"github.com/littleheartschool/backend/core/content"
	assetsvc "github.com/littleheartschool/backend/services/assets"
	emailsvc "github.com/littleheartschool/backend/services/email"
	logsvc "github.com/littleheartschool/backend/services/logger"
	"github.com/littleheartschool/backend/storage/database"
	sqlxrepos "github.com/littleheartschool/backend/storage/database/sqlx"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf, err := core.NewConfig()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	notifier := core.LogNotifier{Log: logger}

	// set up DB
	db, err := setUpDB(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err = db.Close(); err != nil {
			logger.Error("failed to close database", err)
		}
	}()

	appRepo := sqlxrepos.NewApplicationRepository(db)
	contentRepo := sqlxrepos.NewContentRepository(db)

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	var assets content.AssetHost
	if conf.Assets.CloudName != "" {
		assets = assetsvc.NewCloudinaryHost(conf, logger)
	} else {
		assets = assetsvc.NewDummyHost()
	}

	admissionSvc := admission.NewService(appRepo, logger, notifier, conf)
	collector := admission.NewCollector(admissionSvc, mailSvc, notifier, conf)
	contentSvc := content.NewService(contentRepo, assets, logger, notifier)

	limiter := echoapi.NewRedisLimiter(redis.NewClient(&redis.Options{Addr: conf.Redis.Address}))

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:         conf,
			Logger:       logger,
			AdmissionSvc: admissionSvc,
			Collector:    collector,
			ContentSvc:   contentSvc,
			Limiter:      limiter,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func setUpDB(conf *core.Config) (*sqlx.DB, error) {
	if err := database.CreateIfNotExist(conf); err != nil {
		return nil, err
	}

	db, err := database.Open(conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(db.DB); err != nil {
		return nil, err
	}
	return db, nil
}
