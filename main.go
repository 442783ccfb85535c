package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"patient-followup/database"
	"patient-followup/logger"
	"patient-followup/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
)

func main() {
	app := fiber.New(fiber.Config{
		ReadBufferSize:  32768, // 32KB read buffer
		WriteBufferSize: 32768, // 32KB write buffer
		ReadTimeout:     time.Second * 30,
		WriteTimeout:    time.Second * 30,
		BodyLimit:       10 * 1024 * 1024, // 10MB body limit
	})
	env := godotenv.Load()
	if env != nil {
		logger.Error("Error loading .env file", env)
		fmt.Println("Error loading .env file", env)
	}

	// Initialize database with consolidated db.go
	db, err := database.InitDB()
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     os.Getenv("FRONTEND_URL"),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	listener, dispatcher := routes.SetupRoutes(app, db)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go listener.Run(ctx)
	go dispatcher.Run(ctx)

	appHost := os.Getenv("APP_HOST")
	appPort := os.Getenv("APP_PORT")
	logger.Success("Server is running on ip: " + appHost + " port: " + appPort +
		"\n\t\t\t\t\t\t******************************************************************************************\n")

	go func() {
		if err := app.Listen(appHost + ":" + appPort); err != nil {
			logger.Fatal("Server stopped: " + err.Error())
		}
	}()

	// Wait for interrupt, then stop the background loops and drain the server.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")
	cancel()
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("Server shutdown failed", err)
	}
	logger.Info("Server stopped")
}
