package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/facet-unt/departamentos-api/config"
	"github.com/facet-unt/departamentos-api/model"
	"github.com/facet-unt/departamentos-api/utils/logger"
)

// Storage is the lifecycle surface the server and CLI need from a database.
type Storage interface {
	Init() error
	Close() error
	HealthCheck() error
	DB() *gorm.DB
}

type GORMStore struct {
	db  *gorm.DB
	log *zap.Logger
}

// PostgresDSN builds the keyword/value connection string for dbname.
func PostgresDSN(env *config.EnviornmentVariable, dbname string) string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		env.DB_HOST,
		env.DB_USER_NAME,
		env.DB_PASSWORD,
		dbname,
		env.DB_PORT,
		env.DB_SSL_MODE,
	)
}

func dialector(env *config.EnviornmentVariable) gorm.Dialector {
	if env.DB_DRIVER == "sqlite" {
		return sqlite.Open(env.SQLITE_PATH + "?_foreign_keys=1")
	}
	return postgres.Open(PostgresDSN(env, env.DB_NAME))
}

// StartGORM opens the database selected by DB_DRIVER
func StartGORM(env *config.EnviornmentVariable, l *zap.Logger) (*GORMStore, error) {
	gormLogger := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.GormLevel(env.GO_ENV),
			IgnoreRecordNotFoundError: true,
			Colorful:                  !env.IsProduction(),
		},
	)

	db, err := gorm.Open(dialector(env), &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
		PrepareStmt:    env.DB_DRIVER == "postgres",
	})
	if err != nil {
		l.Error("unable to open database", zap.String("driver", env.DB_DRIVER), zap.Error(err))
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	if env.DB_DRIVER == "sqlite" {
		// SQLite serialises writers; one connection avoids "database is locked".
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	l.Info("connected to database", zap.String("driver", env.DB_DRIVER))
	return &GORMStore{db: db, log: l}, nil
}

// NewGORMStore wraps an already open connection.
func NewGORMStore(db *gorm.DB, l *zap.Logger) *GORMStore {
	return &GORMStore{db: db, log: l}
}

// Init runs AutoMigrate for every model
func (s *GORMStore) Init() error {
	s.log.Info("running AutoMigrate")

	if err := s.db.AutoMigrate(model.All()...); err != nil {
		s.log.Error("AutoMigrate failed", zap.Error(err))
		return err
	}

	s.log.Info("AutoMigrate completed")
	return nil
}

// Close closes the database connection
func (s *GORMStore) Close() error {
	s.log.Info("closing database connection")
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// DB returns the GORM handle for services and handlers
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
