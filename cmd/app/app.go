package app

import (
	"log"

	"eduplatform/internal/config"
	"eduplatform/internal/database"
	"eduplatform/internal/mailer"
	"eduplatform/internal/repository"
	"eduplatform/internal/service"
	"eduplatform/internal/storage"
)

func App(cfg *config.Config) (*database.DB, *repository.Repository, *service.Service) {
	// connection DB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}

	// connection MinIO
	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		log.Fatalf("Не удалось инициализировать MinIO: %v", err)
	}

	// outgoing mail: without SMTP settings notifications are only logged
	var mail mailer.Mailer
	if cfg.SMTP.Enabled {
		mail = mailer.NewSMTPMailer(cfg.SMTP)
	} else {
		mail = mailer.NewNoopMailer()
	}

	// enabling dependencies
	repo := repository.NewRepository(db.DB)

	services := service.NewService(repo, cfg, minioClient, mail)

	return db, repo, services
}
