package config

import (
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	model "github.com/taskboard/taskboard/internal/models"
)

func New(dsn string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Workspace{},
		&model.WorkspaceMember{},
		&model.Project{},
		&model.Column{},
		&model.Tag{},
		&model.Task{},
		&model.Comment{},
		&model.ActivityLog{},
	); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	return db
}
