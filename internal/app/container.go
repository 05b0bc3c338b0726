package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"go.uber.org/zap"

	"freelance-match/internal/config"
	"freelance-match/internal/database"
	"freelance-match/internal/database/migration"
	dbpostgres "freelance-match/internal/database/postgres"
	"freelance-match/internal/domain/notification"
	"freelance-match/internal/domain/user"
	"freelance-match/internal/infrastructure/authapi"
	"freelance-match/internal/infrastructure/filestore"
	"freelance-match/internal/infrastructure/kv"
	"freelance-match/internal/infrastructure/persistence/memory"
	pgpersistence "freelance-match/internal/infrastructure/persistence/postgres"
	applog "freelance-match/internal/logger"
	"freelance-match/internal/pkg/jwt"
	"freelance-match/internal/repository"
	"freelance-match/internal/usecase"
	ucauth "freelance-match/internal/usecase/auth"
	"freelance-match/migrations"
)

type Container struct {
	Config config.Config
	Logger *zap.Logger

	DB    database.DB
	Redis *kv.Redis
	Store kv.Store

	Repo   repository.MarketplaceRepository
	Inbox  *notification.Center
	JWT    jwt.Service
	Remote *authapi.Client

	Session     *usecase.Session
	Marketplace *usecase.Marketplace
	Avatars     *usecase.Avatars

	// UploadDir is empty when avatars are stored by the remote backend.
	UploadDir string
}

func NewContainer(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Container, error) {
	logger = applog.OrNop(logger)
	c := &Container{Config: cfg, Logger: logger}

	if err := c.initStore(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}

	c.Repo = repository.NewKVMarketplaceRepository(c.Store, cfg.Store.Namespace, logger.Named("repository"))
	c.Inbox = notification.NewCenter()
	c.JWT = jwt.NewHMACService(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiresIn)

	var authenticator usecase.Authenticator
	var uploader usecase.AvatarUploader
	if cfg.Auth.APIURL != "" {
		c.Remote = authapi.NewClient(cfg.Auth.APIURL, cfg.Auth.Timeout, logger.Named("authapi"))
		authenticator = c.Remote
		uploader = c.Remote
		logger.Info("using remote auth backend", zap.String("url", cfg.Auth.APIURL))
	} else {
		users, err := c.userRepository(ctx)
		if err != nil {
			_ = c.Close()
			return nil, err
		}
		authenticator = ucauth.NewService(users, 0)
		local := filestore.NewLocal(cfg.Upload.Dir)
		uploader = local
		c.UploadDir = local.Dir()
	}

	c.Session = usecase.NewSessionUsecase(authenticator, c.Repo, c.JWT, c.Inbox, logger.Named("session"))
	c.Marketplace = usecase.NewMarketplaceUsecase(c.Repo, c.Inbox, usecase.MarketplaceOptions{
		SeedFreelancers: cfg.Store.SeedFreelancers,
	}, logger.Named("marketplace"))
	c.Avatars = usecase.NewAvatarUsecase(uploader, cfg.Upload.PublicBaseURL, logger.Named("avatars"))

	return c, nil
}

func (c *Container) initStore(ctx context.Context) error {
	switch c.Config.Store.Driver {
	case config.StoreDriverRedis:
		r, err := kv.NewRedis(ctx, c.Config.Redis, c.Logger.Named("redis"))
		if err != nil {
			return err
		}
		c.Redis = r
		c.Store = r
	case config.StoreDriverPostgres:
		db, err := c.database(ctx)
		if err != nil {
			return err
		}
		c.Store = pgpersistence.NewKVStore(db)
	default:
		c.Store = kv.NewMemory()
	}
	c.Logger.Info("session store ready", zap.String("driver", c.Config.Store.Driver))
	return nil
}

// userRepository keeps users in Postgres when a database is configured and
// in memory otherwise.
func (c *Container) userRepository(ctx context.Context) (user.Repository, error) {
	if !c.Config.Database.Configured() {
		c.Logger.Warn("no database configured, registered users are kept in memory")
		return memory.NewUserRepository(), nil
	}
	db, err := c.database(ctx)
	if err != nil {
		return nil, err
	}
	return pgpersistence.NewUserRepository(db), nil
}

// database connects once and applies pending migrations.
func (c *Container) database(ctx context.Context) (database.DB, error) {
	if c.DB != nil {
		return c.DB, nil
	}

	connCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := dbpostgres.Connect(connCtx, c.Config.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	c.DB = pool

	if err := Migrate(ctx, pool, c.Config.Database.MigrationsDir, c.Logger); err != nil {
		return nil, err
	}
	return pool, nil
}

func (c *Container) HealthChecks() map[string]func(context.Context) error {
	checks := make(map[string]func(context.Context) error)
	if c.DB != nil {
		checks["database"] = c.DB.Ping
	}
	if c.Redis != nil {
		checks["redis"] = c.Redis.Ping
	}
	return checks
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Redis != nil {
		errs = append(errs, c.Redis.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}

// Migrate applies migrations from dir when it exists on disk, else the
// embedded set.
func Migrate(ctx context.Context, db database.DB, dir string, logger *zap.Logger) error {
	runner := migration.Runner{FS: migrationsFS(dir), Logger: logger.Named("migration")}
	if err := runner.Run(ctx, db.SQLDB()); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

func migrationsFS(dir string) fs.FS {
	if dir != "" {
		if st, err := os.Stat(dir); err == nil && st.IsDir() {
			return os.DirFS(dir)
		}
	}
	return migrations.FS
}
