package main

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"reclamation/internal/config"
	"reclamation/internal/database"
	"reclamation/internal/domain"
	"reclamation/internal/pkg/logger"
	"reclamation/internal/repository"
)

var bancs = []domain.Banc{
	{CIN: "08123456", Name: "Ahmed", FullName: "Ahmed Ben Ali"},
	{CIN: "09234567", Name: "Fatma", FullName: "Fatma Trabelsi"},
	{CIN: "07345678", Name: "Mohamed", FullName: "Mohamed Gharbi"},
	{CIN: "11456789", Name: "Salma", FullName: "Salma Jaziri"},
	{CIN: "12567890", Name: "Youssef", FullName: "Youssef Hammami"},
}

var regions = []string{"Tunis", "Sfax", "Sousse", "Bizerte", "Gabes"}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	zlog := logger.Must(cfg.AppEnv, cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = zlog.Sync() }()

	db, err := database.Connect(cfg.DatabaseURL, zlog)
	if err != nil {
		zlog.Fatal("database connection failed", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		zlog.Fatal("migration failed", zap.Error(err))
	}

	ctx := context.Background()

	inserted, err := repository.NewBancRepository(db).Seed(ctx, bancs)
	if err != nil {
		zlog.Fatal("seeding bancs failed", zap.Error(err))
	}
	zlog.Info("bancs seeded", zap.Int64("inserted", inserted), zap.Int("total", len(bancs)))

	regionRepo := repository.NewRegionRepository(db)
	existing, err := regionRepo.List(ctx)
	if err != nil {
		zlog.Fatal("listing regions failed", zap.Error(err))
	}
	known := make(map[string]bool, len(existing))
	for _, r := range existing {
		known[r.Name] = true
	}
	start := time.Date(time.Now().Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	for _, name := range regions {
		if known[name] {
			continue
		}
		if err := regionRepo.Create(ctx, &domain.Region{Name: name, DateDebut: start}); err != nil {
			zlog.Fatal("creating region failed", zap.String("name", name), zap.Error(err))
		}
		zlog.Info("region created", zap.String("name", name))
	}

	email := getenv("SEED_ADMIN_EMAIL", "admin@reclamation.local")
	password := getenv("SEED_ADMIN_PASSWORD", "admin123")
	users := repository.NewUserRepository(db)

	_, err = users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		zlog.Info("admin already present", zap.String("email", email))
		return
	case !errors.Is(err, repository.ErrNotFound):
		zlog.Fatal("looking up admin failed", zap.Error(err))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		zlog.Fatal("hashing admin password failed", zap.Error(err))
	}
	admin := &domain.User{
		Name:          "Administrator",
		FullName:      "Platform Administrator",
		Email:         email,
		PhoneNumber:   "21600000000",
		PasswordHash:  string(hash),
		Role:          domain.RoleAdmin,
		EmailVerified: true,
	}
	if err := users.Create(ctx, admin); err != nil {
		zlog.Fatal("creating admin failed", zap.Error(err))
	}
	zlog.Info("admin created", zap.String("email", email))
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
