package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberLogger "github.com/gofiber/fiber/v2/middleware/logger"
	apmfiber "go.elastic.co/apm/module/apmfiber/v2"

	"hotspotbill-backend/config"
	"hotspotbill-backend/db"
	"hotspotbill-backend/http/controllers"
	"hotspotbill-backend/http/middleware"
	"hotspotbill-backend/http/routes"
	"hotspotbill-backend/logger"
	"hotspotbill-backend/providers/credentials"
	"hotspotbill-backend/providers/payment"
	"hotspotbill-backend/providers/router"
	"hotspotbill-backend/providers/snmp"
	"hotspotbill-backend/repository"
	"hotspotbill-backend/session"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.InitLogger(); err != nil {
		log.Fatalf("Could not initialize logger: %v", err)
	}

	os.Setenv("ELASTIC_APM_SERVER_URL", cfg.ElasticAPMServerURL)
	os.Setenv("ELASTIC_APM_SERVICE_NAME", cfg.ElasticAPMServiceName)
	os.Setenv("ELASTIC_APM_ENVIRONMENT", cfg.ElasticAPMEnvironment)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(cors.New())

	app.Use(apmfiber.Middleware())

	app.Use(fiberLogger.New(fiberLogger.Config{
		Format:     "${ip} - - [${time}] \"${method} ${path} ${protocol}\" ${status} ${latency}\n",
		TimeFormat: "02/Jan/2024:15:04:05 -0700",
	}))

	if err := db.ConnectDatabase(cfg); err != nil {
		logger.Logger.WithError(err).Fatal("Database connection failed")
	}

	sessionRepo := repository.NewGuestSessionRepository(db.DB)
	attemptRepo := repository.NewPaymentAttemptRepository(db.DB)
	accessClient := router.NewClient(cfg.RouterHost, cfg.RouterPort, cfg.RouterUser, cfg.RouterPassword)
	paymentClient := payment.NewClient(cfg)
	credSource := credentials.NewTokenGenerator(cfg.CredentialLength)
	profiles := session.NewProfileDurations(time.Duration(cfg.DefaultAccessSeconds) * time.Second)

	lifecycle := session.NewController(sessionRepo, attemptRepo, accessClient, paymentClient, credSource, profiles, logger.Logger)
	controllers.SetLifecycle(lifecycle)
	controllers.SetJWTSecret(cfg.JwtSecretKey)
	controllers.SetRouterHealthConfig(snmp.Config{
		Target:    cfg.SNMPTarget,
		Port:      uint16(cfg.SNMPPort),
		Version:   cfg.SNMPVersion,
		Community: cfg.SNMPCommunity,
	})

	sweeper := session.NewSweeper(
		sessionRepo,
		accessClient,
		time.Duration(cfg.SweepIntervalSeconds)*time.Second,
		time.Duration(cfg.PendingTTLSeconds)*time.Second,
		logger.Logger,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sweeper.Run(ctx)

	routes.PortalRoutes(app)
	routes.PaymentRoutes(app)
	routes.AdminRoutes(app)
	routes.AuthRoutes(app)

	logger.Logger.Infof("Server is running on %s", cfg.ListenAddr)
	go func() {
		if err := app.Listen(cfg.ListenAddr); err != nil {
			logger.Logger.WithError(err).Fatal("Server failed to start")
		}
	}()

	waitForShutdown()
	cancel()
	if err := app.Shutdown(); err != nil {
		logger.Logger.WithError(err).Error("Server shutdown failed")
	}
}

func waitForShutdown() {
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)
	<-signalChan
	logger.Logger.Info("Shutting down server...")
}
