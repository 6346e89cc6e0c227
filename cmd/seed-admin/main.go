package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"finsim.backend/internal/config"
	"finsim.backend/internal/domain/entities"
	domainerrors "finsim.backend/internal/domain/errors"
	domainrepo "finsim.backend/internal/domain/repositories"
	"finsim.backend/internal/infrastructure/repositories"
	"finsim.backend/pkg/crypto"
)

var openSeedAdminDB = func(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{DSN: dsn, PreferSimpleProtocol: true}), &gorm.Config{PrepareStmt: false})
}

var openSeedAdminSQLDB = func(db *gorm.DB) (io.Closer, error) {
	return db.DB()
}

type seedAdminInput struct {
	Email    string
	Password string
	FullName string
}

type seedAdminDeps struct {
	loadEnv func() error
	loadCfg func() *config.Config
	getenv  func(string) string
	prepare func(cfg *config.Config) (domainrepo.AdminRepository, io.Closer, error)
	out     io.Writer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func defaultSeedAdminDeps() seedAdminDeps {
	return seedAdminDeps{
		loadEnv: func() error { return godotenv.Load() },
		loadCfg: config.Load,
		getenv:  os.Getenv,
		prepare: func(cfg *config.Config) (domainrepo.AdminRepository, io.Closer, error) {
			db, err := openSeedAdminDB(cfg.Database.URL())
			if err != nil {
				return nil, nil, fmt.Errorf("failed to connect db: %w", err)
			}

			sqlDB, err := openSeedAdminSQLDB(db)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to init sql db: %w", err)
			}

			return repositories.NewAdminRepository(db), sqlDB, nil
		},
		out: os.Stdout,
	}
}

func readSeedAdminInput(getenv func(string) string) (seedAdminInput, error) {
	input := seedAdminInput{
		Email:    getenv("SEED_ADMIN_EMAIL"),
		Password: getenv("SEED_ADMIN_PASSWORD"),
		FullName: getenv("SEED_ADMIN_NAME"),
	}
	if input.Email == "" {
		return input, fmt.Errorf("SEED_ADMIN_EMAIL is required")
	}
	if len(input.Password) < 8 {
		return input, fmt.Errorf("SEED_ADMIN_PASSWORD must be at least 8 characters")
	}
	if input.FullName == "" {
		input.FullName = "Super Admin"
	}
	return input, nil
}

func runSeedAdmin(deps seedAdminDeps) error {
	if deps.loadEnv == nil {
		deps.loadEnv = func() error { return godotenv.Load() }
	}
	if deps.loadCfg == nil {
		deps.loadCfg = config.Load
	}
	if deps.getenv == nil {
		deps.getenv = os.Getenv
	}
	if deps.prepare == nil {
		def := defaultSeedAdminDeps()
		deps.prepare = def.prepare
	}
	if deps.out == nil {
		deps.out = os.Stdout
	}

	if err := deps.loadEnv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	input, err := readSeedAdminInput(deps.getenv)
	if err != nil {
		return err
	}

	cfg := deps.loadCfg()
	adminRepo, closer, err := deps.prepare(cfg)
	if err != nil {
		return err
	}
	if closer == nil {
		closer = nopCloser{}
	}
	defer closer.Close()

	ctx := context.Background()

	existing, err := adminRepo.GetByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return fmt.Errorf("failed to look up admin %s: %w", input.Email, err)
	}
	if existing != nil {
		_, _ = fmt.Fprintf(deps.out, "Admin %s already exists (role=%s), nothing to do\n", existing.Email, existing.Role)
		return nil
	}

	hash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &entities.Admin{
		ID:           uuid.New(),
		Email:        input.Email,
		FullName:     input.FullName,
		PasswordHash: hash,
		Role:         entities.AdminRoleSuperAdmin,
	}
	if err := adminRepo.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed creating superadmin: %w", err)
	}

	_, _ = fmt.Fprintln(deps.out, "Created bootstrap superadmin")
	_, _ = fmt.Fprintf(deps.out, "admin_id=%s\n", admin.ID.String())
	_, _ = fmt.Fprintf(deps.out, "email=%s\n", admin.Email)
	return nil
}

func main() {
	if err := runSeedAdmin(defaultSeedAdminDeps()); err != nil {
		log.Fatal(err)
	}
}
