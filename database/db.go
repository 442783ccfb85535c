package database

import (
	"fmt"
	"os"

	"patient-followup/logger"
	"patient-followup/models/encounter"
	"patient-followup/models/log"
	"patient-followup/models/patient"
	"patient-followup/models/protocol"
	"patient-followup/models/schedule"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB initializes the database connection with auto migration and indexing
func InitDB() (*gorm.DB, error) {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logger.Error("Error loading .env file", err)
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	database := os.Getenv("DB_DATABASE")
	user := os.Getenv("DB_USERNAME")
	password := os.Getenv("DB_PASSWORD")
	sslmode := os.Getenv("DB_SSLMODE") // Optional: "disable", "require", etc.

	if sslmode == "" {
		sslmode = "disable"
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, database, sslmode)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return nil, err
	}
	logger.Success("Successfully connected to the database")

	if err := autoMigrate(); err != nil {
		logger.Error("Failed to run migrations", err)
		return nil, err
	}
	logger.Success("All migrations completed successfully")

	if err := createForeignKeyConstraints(); err != nil {
		logger.Error("Failed to create foreign key constraints", err)
		return nil, err
	}
	logger.Success("All foreign key constraints created successfully")

	if err := createIndexes(); err != nil {
		logger.Error("Failed to create indexes", err)
		return nil, err
	}
	logger.Success("All indexes created successfully")

	return DB, nil
}

// autoMigrate runs auto migration for all models, staged so referenced tables
// exist before their dependents
func autoMigrate() error {
	// Stage 1: foundation models
	stage1Models := []interface{}{
		&patient.Patient{},
		&protocol.Protocol{},
	}

	for _, model := range stage1Models {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 2: models referencing stage 1
	stage2Models := []interface{}{
		&protocol.Event{},
		&encounter.Encounter{},
	}

	for _, model := range stage2Models {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 3: scheduling and logging tables
	remainingModels := []interface{}{
		&schedule.CurrentScheduleItem{},
		&schedule.EventResponse{},
		&schedule.DispatchEvent{},
		&log.Log{},
	}

	for _, model := range remainingModels {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	return nil
}

// createIndexes creates additional indexes for better performance
func createIndexes() error {
	// The dispatch path is one query per minute against this index; it is the
	// one lookup that must stay fast.
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_current_schedule_items_bucket_key ON current_schedule_items(bucket_key)").Error; err != nil {
		return fmt.Errorf("failed to create schedule item bucket_key index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_current_schedule_items_event_time ON current_schedule_items(event_time)").Error; err != nil {
		return fmt.Errorf("failed to create schedule item event_time index: %w", err)
	}

	// Event indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_events_protocol_id ON events(protocol_id)").Error; err != nil {
		return fmt.Errorf("failed to create event protocol_id index: %w", err)
	}

	// Encounter indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_encounters_patient_id ON encounters(patient_id)").Error; err != nil {
		return fmt.Errorf("failed to create encounter patient_id index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_encounters_protocol_id ON encounters(protocol_id)").Error; err != nil {
		return fmt.Errorf("failed to create encounter protocol_id index: %w", err)
	}

	// Event response indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_event_responses_phone_number ON event_responses(phone_number)").Error; err != nil {
		return fmt.Errorf("failed to create event response phone_number index: %w", err)
	}

	// Patient indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_patients_phone_number ON patients(phone_number)").Error; err != nil {
		return fmt.Errorf("failed to create patient phone_number index: %w", err)
	}

	// Log indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_logs_created_at ON logs(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create log created_at index: %w", err)
	}

	return nil
}

// createForeignKeyConstraints creates foreign key constraints after auto migration
func createForeignKeyConstraints() error {
	constraints := []struct {
		name string
		sql  string
	}{
		{
			name: "fk_events_protocol",
			sql: `ALTER TABLE events ADD CONSTRAINT fk_events_protocol
				  FOREIGN KEY (protocol_id) REFERENCES protocols(id)
				  ON UPDATE CASCADE ON DELETE CASCADE`,
		},
		{
			name: "fk_encounters_protocol",
			sql: `ALTER TABLE encounters ADD CONSTRAINT fk_encounters_protocol
				  FOREIGN KEY (protocol_id) REFERENCES protocols(id)
				  ON UPDATE CASCADE ON DELETE RESTRICT`,
		},
		{
			name: "fk_encounters_patient",
			sql: `ALTER TABLE encounters ADD CONSTRAINT fk_encounters_patient
				  FOREIGN KEY (patient_id) REFERENCES patients(id)
				  ON UPDATE CASCADE ON DELETE RESTRICT`,
		},
	}

	for _, constraint := range constraints {
		var exists bool
		checkSQL := `
			SELECT EXISTS (
				SELECT 1 FROM information_schema.table_constraints
				WHERE constraint_name = $1
			)
		`

		err := DB.Raw(checkSQL, constraint.name).Scan(&exists).Error
		if err != nil {
			logger.Warning(fmt.Sprintf("Failed to check constraint existence: %s - Error: %v", constraint.name, err))
			continue
		}

		if !exists {
			if err := DB.Exec(constraint.sql).Error; err != nil {
				logger.Warning(fmt.Sprintf("Failed to create constraint: %s - Error: %v", constraint.name, err))
			} else {
				logger.Success(fmt.Sprintf("Successfully created constraint: %s", constraint.name))
			}
		} else {
			logger.Debug(fmt.Sprintf("Constraint already exists: %s", constraint.name))
		}
	}

	return nil
}

// RunMigrations connects and migrates; used by the migrate tool.
func RunMigrations() error {
	_, err := InitDB()
	return err
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}
