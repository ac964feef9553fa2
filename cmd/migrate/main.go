package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/trackr/api/internal/auth"
	"github.com/trackr/api/internal/models"
	"github.com/trackr/api/internal/repository"
	"github.com/trackr/api/internal/services"
	"github.com/trackr/api/pkg/config"
	"github.com/trackr/api/pkg/database"
	"github.com/trackr/api/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	cfg := config.MustLoad()
	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat, cfg.LogFile)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := database.OpenPostgres(ctx, cfg.DatabaseURL, true)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := repository.Migrate(db.WithContext(ctx)); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}

	if cfg.BootstrapAdminEmail != "" {
		if err := seedAdmin(ctx, db, cfg); err != nil {
			log.Fatal("seeding admin failed", zap.Error(err))
		}
	}

	fmt.Fprintln(os.Stdout, "migrations completed")
}

// seedAdmin creates the bootstrap admin unless a user with that email exists.
func seedAdmin(ctx context.Context, db *gorm.DB, cfg *config.Config) error {
	admin := models.RoleAdmin
	system := &models.User{Role: &admin}
	tokens := auth.NewTokenService([]byte(cfg.JWTSecret), cfg.JWTTTL)
	authSvc := services.NewAuthService(repository.NewUserRepository(db), tokens)

	name := "Administrator"
	u, err := authSvc.Register(ctx, system, &services.RegisterInput{
		Name:     &name,
		Email:    cfg.BootstrapAdminEmail,
		Password: cfg.BootstrapAdminPassword,
		Role:     &admin,
	})
	if errors.Is(err, services.ErrEmailTaken) {
		logger.L().Info("bootstrap admin already present")
		return nil
	}
	if err != nil {
		return err
	}
	logger.L().Info("bootstrap admin created", zap.String("user_id", u.ID.String()))
	return nil
}
