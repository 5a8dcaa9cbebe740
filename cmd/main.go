package main

import (
	"log"

	"backend/config"
	"backend/controllers"
	"backend/middlewares"
	"backend/repository"
	"backend/routes"
	"backend/services"
	"backend/utils"
)

func main() {
	config.InitDB()
	config.InitRedis()
	utils.InitSES()

	users := repository.NewUserRepository(config.DB)
	streaks := repository.NewStreakRepository(config.DB)
	devices := repository.NewDeviceRepository(config.DB)

	kv := services.NewRedisKV(config.Redis)
	sessions := services.NewSessionStore(kv)
	resets := services.NewResetTokenStore(kv)
	usernames := services.NewUsernameGenerator(users)

	push, err := services.NewPushService(devices)
	if err != nil {
		log.Fatalf("push service init failed: %v", err)
	}
	storage, err := services.NewStorageService()
	if err != nil {
		log.Fatalf("storage service init failed: %v", err)
	}

	auth := services.NewAuthService(users, streaks, devices, sessions, usernames,
		push, storage, services.NewGoogleVerifier(), resets, utils.SendResetEmail)
	userSvc := services.NewUserService(users, streaks, devices, sessions, storage, push)
	tracker := services.NewActivityTracker(streaks, users, push)

	r := routes.SetupRouter(routes.Controllers{
		Auth:          controllers.NewAuthController(auth),
		Users:         controllers.NewUserController(userSvc),
		Devices:       controllers.NewDeviceController(push),
		Notifications: controllers.NewNotificationController(userSvc),
		Activity:      controllers.NewActivityController(tracker),
	}, middlewares.AuthMiddleware(sessions, users))

	if err := r.Run(":8080"); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
