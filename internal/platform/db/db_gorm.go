package db

import (
	"fmt"
	"log"
	"time"

	gpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	authadapters "workspace_backend/internal/feature/auth/adapters"
	authentity "workspace_backend/internal/feature/auth/domain/entity"
	cliententity "workspace_backend/internal/feature/clients/domain/entity"
	fileentity "workspace_backend/internal/feature/files/domain/entity"
	inventity "workspace_backend/internal/feature/invitation/domain/entity"
	projectentity "workspace_backend/internal/feature/projects/domain/entity"
	wsentity "workspace_backend/internal/feature/workspace/domain/entity"
	"workspace_backend/internal/platform/config"
)

// OpenDB connects to Postgres, retrying for up to a minute so the server
// survives a database that is still starting. TranslateError is enabled so
// unique constraint violations surface as gorm.ErrDuplicatedKey.
func OpenDB(cfg *config.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)

	var (
		db  *gorm.DB
		err error
	)

	deadline := time.Now().Add(60 * time.Second)
	for {
		db, err = gorm.Open(gpostgres.Open(dsn), &gorm.Config{TranslateError: true})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			log.Fatalf("DB connect failed after 60s: %v", err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}

	if cfg.RunMigrations {
		if err := db.AutoMigrate(
			&authentity.User{},
			&authadapters.SessionModel{},
			&wsentity.Company{},
			&wsentity.Membership{},
			&inventity.Invitation{},
			&cliententity.Client{},
			&projectentity.Project{},
			&fileentity.File{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}
