package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amiralda/kolaboStudiosWebApp-sub000/config"
	"github.com/amiralda/kolaboStudiosWebApp-sub000/controllers"
	"github.com/amiralda/kolaboStudiosWebApp-sub000/database"
	"github.com/amiralda/kolaboStudiosWebApp-sub000/logger"
	"github.com/amiralda/kolaboStudiosWebApp-sub000/middleware"
	"github.com/amiralda/kolaboStudiosWebApp-sub000/models"
	aws_pkg "github.com/amiralda/kolaboStudiosWebApp-sub000/pkg/aws"
	"github.com/amiralda/kolaboStudiosWebApp-sub000/ratelimit"
	"github.com/amiralda/kolaboStudiosWebApp-sub000/repository"
	"github.com/amiralda/kolaboStudiosWebApp-sub000/routes"
	"github.com/amiralda/kolaboStudiosWebApp-sub000/sender"
	"github.com/amiralda/kolaboStudiosWebApp-sub000/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// .env is optional, system env wins
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Initialize("development")
		logger.Log.Fatal("Failed to load configuration", zap.Error(err))
	}

	ctx := context.Background()

	// AWS is optional in local development. Everything that depends on it
	// degrades gracefully when the config cannot be loaded.
	var (
		s3Store   *aws_pkg.S3Store
		snsClient *aws_pkg.SNSClient
	)
	awsCfg, awsErr := aws_pkg.LoadAWSConfig(ctx)
	if awsErr == nil {
		s3Store = aws_pkg.NewS3Store(awsCfg, cfg.MediaBucket)
		snsClient = aws_pkg.NewSNSClient(awsCfg)
	}

	// Ship logs to CloudWatch in production when AWS is reachable.
	if cfg.Environment == "production" && awsErr == nil {
		if cw, err := aws_pkg.NewCloudWatchLogsClient(ctx, "studio-backend"); err == nil && cw.IsEnabled() {
			logger.InitializeWithWriter(cfg.Environment, cw)
		} else {
			logger.Initialize(cfg.Environment)
		}
	} else {
		logger.Initialize(cfg.Environment)
	}
	log := logger.Log
	defer log.Sync()
	zap.ReplaceGlobals(log)

	if awsErr != nil {
		log.Warn("AWS config unavailable, S3/SNS/SQS features disabled", zap.Error(awsErr))
	}

	db, err := database.ConnectPostgres(cfg, log,
		&models.Payment{},
		&models.RetouchOrder{},
		&models.Gallery{},
		&models.GalleryImage{},
		&models.BlogPost{},
		&models.ContactMessage{},
		&models.Booking{},
	)
	if err != nil {
		log.Fatal("Failed to connect to postgres", zap.Error(err))
	}
	defer database.Close()

	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Warn("Redis unavailable, gallery and blog caching disabled", zap.Error(err))
		redisClient = nil
	}

	var email sender.EmailSender
	if cfg.SMTPHost != "" {
		smtp, err := sender.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
		if err != nil {
			log.Fatal("Invalid SMTP configuration", zap.Error(err))
		}
		email = smtp
	} else {
		log.Warn("SMTP not configured, emails will only be logged")
		email = sender.NewLogSender(log)
	}

	// One shared fixed-window limiter backs the payment and contact
	// throttles; the sweep keeps the key map from growing unbounded.
	limiter := ratelimit.New()
	limiter.StartSweep(10 * time.Minute)
	defer limiter.Close()

	pricing := services.DefaultPricingConfig()
	validator := services.NewRequestValidator(pricing)
	stripeSvc := services.NewStripeService(cfg.StripeSecretKey, cfg.StripeWebhookKey)

	paymentRepo := repository.NewGormPaymentRepo(db)
	galleryRepo := repository.NewGormGalleryRepo(db)
	blogRepo := repository.NewGormBlogRepo(db)
	contactRepo := repository.NewGormContactRepo(db)
	bookingRepo := repository.NewGormBookingRepo(db)
	retouchRepo := repository.NewGormRetouchRepo(db)

	paymentSvc := services.NewPaymentService(pricing, validator, limiter, stripeSvc, paymentRepo, log)
	gallerySvc := services.NewGalleryService(galleryRepo, redisClient, log)
	blogSvc := services.NewBlogService(blogRepo, log)
	contactSvc := services.NewContactService(contactRepo, validator, limiter, email, cfg.StudioEmail, log)
	bookingSvc := services.NewBookingService(bookingRepo, validator, paymentSvc, pricing, email, log)

	var store services.ObjectStore
	if s3Store != nil {
		store = s3Store
	}
	var events services.SNSPublisher
	if snsClient != nil {
		events = snsClient
	}
	retouchSvc := services.NewRetouchService(retouchRepo, store, email, events, cfg.RetouchSNSTopicARN, pricing, log)

	// Retouch workers report finished jobs over SQS.
	consumerCtx, stopConsumer := context.WithCancel(ctx)
	defer stopConsumer()
	if awsErr == nil && cfg.RetouchDoneQueueURL != "" {
		consumer := aws_pkg.NewSQSConsumer(awsCfg, cfg.RetouchDoneQueueURL)
		go func() {
			if err := consumer.StartPolling(consumerCtx, retouchSvc.HandleCompletionMessage); err != nil && consumerCtx.Err() == nil {
				log.Error("SQS consumer stopped", zap.Error(err))
			}
		}()
	}

	// A nil *SNSClient must not end up inside the interface value.
	var paymentEvents controllers.EventPublisher
	if snsClient != nil {
		paymentEvents = snsClient
	}
	paymentCtrl := controllers.NewPaymentController(
		paymentSvc, stripeSvc, paymentRepo, paymentEvents, email, cfg.PaymentSNSTopicARN, log)
	galleryCtrl := controllers.NewGalleryController(gallerySvc, store)
	blogCtrl := controllers.NewBlogController(blogSvc)
	contactCtrl := controllers.NewContactController(contactSvc)
	bookingCtrl := controllers.NewBookingController(bookingSvc)
	retouchCtrl := controllers.NewRetouchController(retouchSvc, paymentRepo)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.RateLimitMiddleware())

	routes.RegisterRoutes(r, cfg.AdminAPIKey, paymentCtrl, galleryCtrl, blogCtrl, contactCtrl, bookingCtrl, retouchCtrl)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Info("Studio backend starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down...")

	stopConsumer()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close redis", zap.Error(err))
		}
	}

	log.Info("Studio backend stopped")
}
