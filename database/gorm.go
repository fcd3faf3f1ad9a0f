package database

import (
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq"
	"github.com/sahilchouksey/academia-api/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type GORMStore struct {
	db *gorm.DB
}

// StartGORM initializes a GORM connection to PostgreSQL
func StartGORM() (*GORMStore, error) {
	getEnv, err := config.Get()
	if err != nil {
		return nil, err
	}

	return Open(getEnv.DSN(), getEnv.DB_DRIVER, getEnv.GO_ENV == "production")
}

// Open connects to the database behind dsn. driver selects the database/sql driver
// used underneath GORM: "pq" for lib/pq, anything else for pgx.
func Open(dsn, driver string, production bool) (*GORMStore, error) {
	// Configure GORM logger
	gormLogger := logger.Default.LogMode(logger.Info)
	if production {
		gormLogger = logger.Default.LogMode(logger.Error)
	}

	pgConfig := postgres.Config{DSN: dsn}
	if driver == "pq" {
		pgConfig.DriverName = "postgres"
	}

	db, err := gorm.Open(postgres.New(pgConfig), &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: false,
		PrepareStmt:            true,
	})
	if err != nil {
		log.Println("Unable to connect to PostgreSQL with GORM:", err)
		return nil, err
	}

	// Get underlying *sql.DB to configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Printf("Successfully connected to PostgreSQL Database with GORM (driver=%s).", driverLabel(driver))

	return &GORMStore{db: db}, nil
}

func driverLabel(driver string) string {
	if driver == "pq" {
		return "lib/pq"
	}
	return "pgx"
}

// Init runs the AutoMigrate to create/update tables, indexes and constraints
func (s *GORMStore) Init() error {
	log.Println("Running GORM AutoMigrate for all models...")

	if err := s.db.AutoMigrate(Models...); err != nil {
		log.Println("Error running AutoMigrate:", err)
		return err
	}

	mappings, err := BuildMappings(Models...)
	if err != nil {
		return fmt.Errorf("failed to build schema mappings: %w", err)
	}
	for _, m := range mappings {
		for _, fk := range m.ForeignKeys {
			log.Printf("Relationship %s.%s -> %s(%s) ON DELETE %s", m.Table, fk.Column, fk.ReferencesTable, fk.ReferencesColumn, fk.OnDelete)
		}
	}

	log.Println("GORM AutoMigrate completed successfully!")
	return nil
}

// Close closes the database connection
func (s *GORMStore) Close() error {
	log.Println("Closing GORM PostgreSQL connection...")
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// GetDB returns the GORM DB instance for use in services/handlers
func (s *GORMStore) GetDB() interface{} {
	return s.db
}

// DB returns the typed GORM handle
func (s *GORMStore) DB() *gorm.DB {
	return s.db
}

// HealthCheck verifies the database connection is alive
func (s *GORMStore) HealthCheck() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
