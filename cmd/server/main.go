package main

import (
	"context"
	"log"
	"log/slog"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"workspace_backend/internal/app/di"
	"workspace_backend/internal/app/router"
	authadapters "workspace_backend/internal/feature/auth/adapters"
	authhandler "workspace_backend/internal/feature/auth/transport/handler"
	authusecase "workspace_backend/internal/feature/auth/usecase"
	clientadapters "workspace_backend/internal/feature/clients/adapters"
	clienthandler "workspace_backend/internal/feature/clients/transport/handler"
	clientusecase "workspace_backend/internal/feature/clients/usecase"
	fileadapters "workspace_backend/internal/feature/files/adapters"
	filehandler "workspace_backend/internal/feature/files/transport/handler"
	fileusecase "workspace_backend/internal/feature/files/usecase"
	invadapters "workspace_backend/internal/feature/invitation/adapters"
	invhandler "workspace_backend/internal/feature/invitation/transport/handler"
	invusecase "workspace_backend/internal/feature/invitation/usecase"
	projectadapters "workspace_backend/internal/feature/projects/adapters"
	projecthandler "workspace_backend/internal/feature/projects/transport/handler"
	projectusecase "workspace_backend/internal/feature/projects/usecase"
	wsadapters "workspace_backend/internal/feature/workspace/adapters"
	wshandler "workspace_backend/internal/feature/workspace/transport/handler"
	wsusecase "workspace_backend/internal/feature/workspace/usecase"
	"workspace_backend/internal/platform/config"
	"workspace_backend/internal/platform/db"
	jwtmw "workspace_backend/internal/platform/jwt"
	"workspace_backend/internal/platform/mail"
	platformredis "workspace_backend/internal/platform/redis"
	"workspace_backend/internal/platform/token"
	"workspace_backend/internal/shared/ratelimiter"

	"github.com/google/uuid"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.JWTSecret == "" {
		slog.Warn("JWT_SECRET is not set. Set a strong secret in production.")
	}

	gormDB := db.OpenDB(cfg)

	var rdb *redisv9.Client
	if cfg.RedisHost == "" {
		slog.Info("Redis not configured. Sessions stay in the database, caching is off.")
	} else if tmp, err := platformredis.NewRedisClient(cfg); err != nil {
		slog.Warn("Redis unavailable. Sessions stay in the database, caching is off.")
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close Redis client", "error", err)
			}
		}()
	}

	// Repository
	userRepo := authadapters.NewUserRepository(gormDB)
	userDir := authadapters.NewUserDirectory(gormDB)
	sessionRepo := di.NewSessionRepository(rdb, gormDB)
	companyRepo := di.NewCompanyRepository(rdb, gormDB, 5*time.Minute)
	membershipRepo := wsadapters.NewMembershipRepository(gormDB)
	invitationRepo := invadapters.NewInvitationRepository(gormDB)
	clientRepo := clientadapters.NewClientRepository(gormDB)
	projectRepo := projectadapters.NewProjectRepository(gormDB)
	fileRepo := fileadapters.NewFileRepository(gormDB)

	storage, err := fileadapters.NewS3Storage(context.Background(), cfg)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	// Shared collaborators
	issuer := token.NewIssuer(
		token.WithTTL(token.KindPasswordReset, cfg.PasswordResetTTL),
		token.WithTTL(token.KindInvitation, cfg.InvitationTTL),
	)
	jwtGen := jwtmw.NewGenerator(cfg.JWTSecret, cfg.JWTExpiration)
	mailLimiter := ratelimiter.NewRateLimiter(cfg.MailRateLimit, time.Minute)
	mailer := mail.NewLogDispatcher(cfg.AppBaseURL, mailLimiter)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, sessionRepo, issuer, jwtGen, mailer,
		authusecase.WithSessionTTL(cfg.SessionTTL),
		authusecase.WithMaxSessions(cfg.MaxSessionsPerUser),
	)
	workspaceUC := wsusecase.NewWorkspaceUsecase(companyRepo, membershipRepo)
	invitationUC := invusecase.NewInvitationUsecase(invitationRepo, workspaceUC, membershipRepo, userDir, issuer, mailer)
	clientUC := clientusecase.NewClientUsecase(clientRepo, workspaceUC)
	projectUC := projectusecase.NewProjectUsecase(projectRepo, workspaceUC)
	fileUC := fileusecase.NewFileUsecase(fileRepo, storage, workspaceUC, uuid.NewString)

	// Handler
	r := router.NewRouter(router.Handlers{
		Auth:       authhandler.NewAuthHandler(authUC),
		Workspace:  wshandler.NewWorkspaceHandler(workspaceUC),
		Invitation: invhandler.NewInvitationHandler(invitationUC),
		Client:     clienthandler.NewClientHandler(clientUC),
		Project:    projecthandler.NewProjectHandler(projectUC),
		File:       filehandler.NewFileHandler(fileUC),
	})

	go reapInvitations(invitationUC, cfg.ReapInterval, cfg.InvitationRetention)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}

// reapInvitations periodically deletes pending invitations that expired
// longer ago than the retention window. Terminal rows are kept as history.
func reapInvitations(uc *invusecase.InvitationUsecase, interval, retention time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		n, err := uc.ReapExpired(context.Background(), retention)
		if err != nil {
			slog.Error("invitation reap failed", "error", err)
			continue
		}
		if n > 0 {
			slog.Info("reaped expired invitations", "count", n)
		}
	}
}
