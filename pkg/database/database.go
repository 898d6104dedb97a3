package database

import (
	"fmt"
	"log"

	"trivia_backend/internal/config"
	"trivia_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	return db, nil
}

// Migrate creates the trivia schema. The unique index on
// (user_id, group_id, attempt_number) is the backstop for concurrent joins.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Event{},
		&model.Section{},
		&model.Group{},
		&model.Question{},
		&model.AnswerOption{},
		&model.User{},
		&model.Attempt{},
		&model.Result{},
	)
}
