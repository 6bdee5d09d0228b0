package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yalex-kim/timing-trainer/internal/config"
	logging "github.com/yalex-kim/timing-trainer/internal/logging"
	"github.com/yalex-kim/timing-trainer/internal/models"
)

var DB *gorm.DB

func Init(log *zap.Logger) {
	var err error
	dbConf := config.Conf.Database
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		dbConf.Host, dbConf.User, dbConf.Password, dbConf.DBName, dbConf.Port)

	// Route GORM's logging through zap, warnings and up only.
	gormLogger := logging.NewGormZapLogger(log).LogMode(logger.Warn)

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})

	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	log.Info("Database connection established successfully.")
	runMigrations(log)
}

func runMigrations(log *zap.Logger) {
	// GORM's AutoMigrate will create tables, columns, and foreign keys.
	// It will NOT create custom indexes, so we handle that separately.
	err := DB.AutoMigrate(
		&models.User{},
		&models.TrainingSession{},
		&models.BeatRecord{},
		&models.SessionResultRecord{},
		&models.AssessmentReport{},
	)
	if err != nil {
		log.Fatal("Failed to run database migrations", zap.Error(err))
	}
	log.Info("Database migrations completed successfully.")

	// Beat lookups during report building scan a whole session in
	// input order.
	beatsIndex := `CREATE INDEX IF NOT EXISTS idx_beats_session ON beat_records (session_id, beat_number);`
	if err := DB.Exec(beatsIndex).Error; err != nil {
		log.Fatal("Failed to create custom index on beat_records", zap.Error(err))
	}

	sessionsIndex := `CREATE INDEX IF NOT EXISTS idx_sessions_user_complete ON training_sessions (user_id, is_complete, created_at DESC);`
	if err := DB.Exec(sessionsIndex).Error; err != nil {
		log.Fatal("Failed to create custom index on training_sessions", zap.Error(err))
	}
	log.Info("Custom indexes ensured successfully.")
}
