package config

import (
	"os"
	"time"

	"github.com/Denyusha/Food-Donation-updated/internal/api/handlers"
	"github.com/Denyusha/Food-Donation-updated/internal/api/routes"
	"github.com/Denyusha/Food-Donation-updated/internal/middleware"
	"github.com/Denyusha/Food-Donation-updated/internal/utils"
	"github.com/Denyusha/Food-Donation-updated/internal/utils/push"
	"github.com/Denyusha/Food-Donation-updated/internal/utils/storage"
	"github.com/Denyusha/Food-Donation-updated/pkg/badge"
	"github.com/Denyusha/Food-Donation-updated/pkg/donation"
	"github.com/Denyusha/Food-Donation-updated/pkg/jwt"
	"github.com/Denyusha/Food-Donation-updated/pkg/matching"
	"github.com/Denyusha/Food-Donation-updated/pkg/notification"
	"github.com/Denyusha/Food-Donation-updated/pkg/user"
	"github.com/Denyusha/Food-Donation-updated/pkg/volunteer"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Jakarta",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	redisPush := push.NewRedisPush()

	// Repository
	userRepository := user.NewUserRepository(db)
	donationRepository := donation.NewDonationRepository(db)
	notificationRepository := notification.NewNotificationRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	notificationService := notification.NewNotificationService(notificationRepository, redisPush)
	badgeService := badge.NewBadgeService(donationRepository, userRepository)
	donationService := donation.NewDonationService(
		donationRepository,
		userRepository,
		badgeService,
		notificationService,
		s3,
	)
	matchingService := matching.NewMatchingService(donationRepository)
	volunteerService := volunteer.NewVolunteerService(
		donationRepository,
		userRepository,
		notificationService,
	)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	donationHandler := handlers.NewDonationHandler(donationService, validator)
	matchingHandler := handlers.NewMatchingHandler(matchingService, validator)
	volunteerHandler := handlers.NewVolunteerHandler(volunteerService, validator)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	adminHandler := handlers.NewAdminHandler(donationService, userService, notificationService, validator)

	// routes
	routesConfig := routes.Config{
		App:                 app,
		UserHandler:         userHandler,
		DonationHandler:     donationHandler,
		MatchingHandler:     matchingHandler,
		VolunteerHandler:    volunteerHandler,
		NotificationHandler: notificationHandler,
		AdminHandler:        adminHandler,
		Middleware:          middlewares,
		JWTService:          jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
