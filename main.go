package main

import (
	"go.uber.org/zap"

	"github.com/yalex-kim/timing-trainer/internal/config"
	"github.com/yalex-kim/timing-trainer/internal/database"
	logger "github.com/yalex-kim/timing-trainer/internal/logging"
	"github.com/yalex-kim/timing-trainer/internal/models"
	"github.com/yalex-kim/timing-trainer/internal/router"
	"github.com/yalex-kim/timing-trainer/internal/services"
)

func main() {
	// Initialize Logger
	log, err := logger.Init(".")
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	// Initialize Configuration
	if err := config.Init(".", log); err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Initialize Database
	database.Init(log)

	// Load the battery definition at startup
	battery, err := models.LoadBattery(config.Conf.Training.BatteryPath)
	if err != nil {
		log.Fatal("Failed to load battery definition", zap.Error(err))
	}

	// Start the reminder scheduler
	emailService := services.NewEmailService(log)
	scheduler := services.NewScheduler(log, emailService)
	scheduler.Start()

	// Setup router, passing the logger to it
	r := router.Setup(log, battery)

	// Start the Gin server
	port := ":" + config.Conf.Server.Port
	log.Info("Server listening on http://localhost" + port)
	if err := r.Run(port); err != nil {
		log.Fatal("Failed to run Gin server", zap.Error(err))
	}
}
