package main

import (
	"context"
	"fmt"
	"log"
	"medibook-service/internal/app/config"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/app/delivery/http/controllers"
	"medibook-service/internal/app/delivery/http/middlewares"
	"medibook-service/internal/app/delivery/http/routers"
	"medibook-service/internal/app/drivers/database"
	"medibook-service/internal/app/drivers/logger"
	"medibook-service/internal/app/drivers/messaging"
	"medibook-service/internal/app/drivers/storage"
	"medibook-service/internal/app/services/core/appointments"
	"medibook-service/internal/app/services/core/clinics"
	"medibook-service/internal/app/services/core/doctors"
	"medibook-service/internal/app/services/core/notifications"
	"medibook-service/internal/app/services/core/patients"
	"medibook-service/internal/app/services/core/payments"
	"medibook-service/internal/app/services/core/schedules"
	"medibook-service/internal/app/services/shared/jwtmanager"
	"medibook-service/internal/app/services/shared/locker"
	"medibook-service/internal/app/services/shared/notificationqueue"
	"medibook-service/internal/app/services/shared/payment_gateway"
	"medibook-service/internal/app/services/shared/redis"
	minioStorage "medibook-service/internal/app/services/shared/storage"
	"medibook-service/internal/app/services/shared/transactor"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	db := database.NewDatabase(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig)
	minioClient := storage.NewMinio(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := &config.Bootstrap{
		Router:         chiRouter,
		DB:             db,
		Redis:          redisClient,
		Logger:         zapLogger,
		RabbitMQ:       rabbitMQ,
		Minio:          minioClient,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}
	if err := bootstrapingTheApp(bootstrap); err != nil {
		log.Fatalf("Failed to bootstrap the app: %v", err)
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", internalConfig.App.Port),
		Handler:           chiRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zapLogger.Info("Server started", zap.String("addr", server.Addr))
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	zapLogger.Info("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to release resources: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap) error {
	log := bootstrap.Logger
	cfg := bootstrap.InternalConfig

	// Shared
	gormTransactor := transactor.NewGormTransactor(bootstrap.DB)
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockService := locker.NewLockService(redisRepository, log)

	jwtManager, err := jwtmanager.NewJWTManager(cfg)
	if err != nil {
		return err
	}

	vnpayService, err := payment_gateway.NewVNPayService(cfg, log)
	if err != nil {
		return err
	}

	// Repositories
	appointmentRepository := appointments.NewAppointmentPostgresRepository(bootstrap.DB, log)
	scheduleRepository := schedules.NewSchedulePostgresRepository(bootstrap.DB, log)
	doctorRepository := doctors.NewDoctorCachedRepository(
		doctors.NewDoctorPostgresRepository(bootstrap.DB, log),
		redisRepository,
		time.Duration(cfg.Cache.DoctorTTLInSeconds)*time.Second,
		log,
	)
	patientRepository := patients.NewPatientPostgresRepository(bootstrap.DB, log)
	clinicRepository := clinics.NewClinicPostgresRepository(bootstrap.DB, log)
	specialtyRepository := clinics.NewSpecialtyPostgresRepository(bootstrap.DB, log)
	paymentRepository := payments.NewPaymentPostgresRepository(bootstrap.DB, log)
	notificationRepository := notifications.NewNotificationPostgresRepository(bootstrap.DB, log)

	// Notifications
	notificationUsecase := notifications.NewNotificationUsecase(notificationRepository, log)

	var (
		publisher          contracts.NotificationPublisher
		notificationWorker *notifications.Worker
	)
	if bootstrap.RabbitMQ != nil {
		queue, err := notificationqueue.NewService(
			bootstrap.RabbitMQ,
			log,
			cfg.Notification.QueueName,
			cfg.Notification.ConsumerTag,
			cfg.Notification.PrefetchCount,
		)
		if err != nil {
			return err
		}
		publisher = queue
		notificationWorker = notifications.NewWorker(log, queue, notificationUsecase)
	} else {
		log.Info("RabbitMQ disabled, notifications are stored inline")
		publisher = notifications.NewInlinePublisher(notificationUsecase)
	}
	dispatcher := notifications.NewDispatcher(publisher, patientRepository, doctorRepository, log)

	// Receipts
	var receiptArchiver contracts.ReceiptArchiver
	if bootstrap.Minio != nil {
		receiptArchiver = payments.NewReceiptArchiver(
			minioStorage.NewMinioStorage(bootstrap.Minio, bootstrap.DriverConfig.Minio.BucketName),
			log,
		)
	}

	// Usecases
	appointmentUsecase := appointments.NewAppointmentUsecase(
		gormTransactor,
		appointmentRepository,
		scheduleRepository,
		doctorRepository,
		clinicRepository,
		paymentRepository,
		lockService,
		dispatcher,
		cfg,
		log,
	)
	paymentUsecase := payments.NewPaymentUsecase(
		gormTransactor,
		paymentRepository,
		appointmentRepository,
		doctorRepository,
		appointmentUsecase,
		vnpayService,
		receiptArchiver,
		dispatcher,
		cfg,
		log,
	)
	doctorUsecase := doctors.NewDoctorUsecase(doctorRepository, log)
	clinicUsecase := clinics.NewClinicUsecase(clinicRepository, specialtyRepository, log)

	// Workers
	workerCtx := context.Background()
	expiryWorker := payments.NewExpiryWorker(log, cfg, lockService, paymentUsecase)
	expiryWorker.Start(workerCtx)
	if notificationWorker != nil {
		notificationWorker.Start(workerCtx)
	}
	bootstrap.WorkerStop = func() {
		expiryWorker.Stop()
		if notificationWorker != nil {
			notificationWorker.Stop()
		}
	}

	// Delivery
	routers.SetupRoutes(
		bootstrap.Router,
		cfg,
		middlewares.NewMiddlewares(log, jwtManager, cfg),
		controllers.NewAppointmentController(log, appointmentUsecase),
		controllers.NewPaymentController(log, paymentUsecase, cfg.App.FrontendBaseURL),
		controllers.NewDoctorController(log, doctorUsecase),
		controllers.NewClinicController(log, clinicUsecase),
		controllers.NewNotificationController(log, notificationUsecase),
	)

	return nil
}
