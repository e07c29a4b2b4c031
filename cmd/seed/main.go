package main

import (
	"context"
	"errors"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"officetrack/internal/config"
	"officetrack/internal/db"
	"officetrack/internal/model"
	"officetrack/internal/repository"
	"officetrack/pkg/logger"
)

type seedUser struct {
	Name     string
	Email    string
	Password string
	Role     string
	Whatsapp string
}

var seedUsers = []seedUser{
	{Name: "Admin", Email: "admin@office.local", Password: "admin123", Role: model.RoleAdmin},
	{Name: "Asha Patil", Email: "asha@office.local", Password: "employee123", Role: model.RoleEmployee},
	{Name: "Rohan Deshmukh", Email: "rohan@office.local", Password: "employee123", Role: model.RoleEmployee},
	{Name: "Sneha Kulkarni", Email: "sneha@office.local", Password: "employee123", Role: model.RoleEmployee},
}

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	log := logger.Get()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database init")
	}
	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatal().Err(err).Msg("auto-migrate")
	}

	userRepo := repository.NewUserRepository(gormDB)

	created, skipped := 0, 0
	for _, su := range seedUsers {
		if _, err := userRepo.FindByEmail(ctx, su.Email); err == nil {
			log.Info().Str("email", su.Email).Msg("already exists, skipping")
			skipped++
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatal().Err(err).Str("email", su.Email).Msg("lookup user")
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(su.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal().Err(err).Msg("hash password")
		}

		user := &model.User{
			Name:         su.Name,
			Email:        su.Email,
			PasswordHash: string(hashed),
			Role:         su.Role,
			Whatsapp:     su.Whatsapp,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatal().Err(err).Str("email", su.Email).Msg("create user")
		}
		log.Info().Str("email", su.Email).Str("role", su.Role).Msg("created")
		created++
	}

	log.Info().Int("created", created).Int("skipped", skipped).Msg("seed complete")
}
