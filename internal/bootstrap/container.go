package bootstrap

import (
	"context"

	"github.com/helioworks/artvault/internal/config"
	"github.com/helioworks/artvault/internal/infra/blob"
	"github.com/helioworks/artvault/internal/infra/cache"
	"github.com/helioworks/artvault/internal/infra/db"
	"github.com/helioworks/artvault/internal/infra/logger"
	"github.com/helioworks/artvault/internal/modules/handler"
	"github.com/helioworks/artvault/internal/modules/model"
	"github.com/helioworks/artvault/internal/modules/repo"
	"github.com/helioworks/artvault/internal/modules/service"
	"github.com/helioworks/artvault/internal/pkg/match"
	"github.com/helioworks/artvault/internal/pkg/media"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func BuildContainer() *do.Injector {
	inj := do.New()

	// config
	do.Provide(inj, func(i *do.Injector) (*config.Config, error) {
		return config.Load()
	})

	// logger
	do.Provide(inj, func(i *do.Injector) (*zap.Logger, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return logger.New(cfg.Log.Level)
	})

	// DB
	do.Provide(inj, func(i *do.Injector) (*gorm.DB, error) {
		cfg := do.MustInvoke[*config.Config](i)
		d, err := db.New(cfg)
		if err != nil {
			return nil, err
		}
		// [optional] auto migrate
		if cfg.Database.AutoMigrate {
			_ = d.AutoMigrate(
				&model.Asset{},
				&model.Tag{},
				&model.AssetTag{},
				&model.Project{},
				&model.ProjectAsset{},
				&model.UnityRoute{},
				&model.RouteHistory{},
				&model.StyleMigration{},
			)
		}
		return d, nil
	})

	// Redis
	do.Provide(inj, func(i *do.Injector) (*redis.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return cache.New(cfg), nil
	})

	// RabbitMQ Connection (optional; events are skipped without a broker)
	do.Provide(inj, func(i *do.Injector) (*amqp.Connection, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if cfg.RabbitMQ.URL == "" {
			return nil, nil
		}
		return amqp.Dial(cfg.RabbitMQ.URL)
	})

	// S3 (optional; archive mirroring is skipped without a bucket)
	do.Provide(inj, func(i *do.Injector) (*blob.S3Deps, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if !cfg.Blob.Enabled {
			return nil, nil
		}
		return blob.NewS3(context.Background(), cfg)
	})

	// media tooling
	do.Provide(inj, func(i *do.Injector) (media.Hasher, error) {
		return media.SHA256Hasher{}, nil
	})
	do.Provide(inj, func(i *do.Injector) (media.Extractor, error) {
		return media.FileExtractor{}, nil
	})

	// Repo
	do.Provide(inj, func(i *do.Injector) (repo.AssetRepo, error) {
		return repo.NewAssetRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.TagRepo, error) {
		return repo.NewTagRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.ProjectRepo, error) {
		return repo.NewProjectRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.RouteRepo, error) {
		return repo.NewRouteRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.StyleRepo, error) {
		return repo.NewStyleRepo(do.MustInvoke[*gorm.DB](i)), nil
	})

	// Service
	do.Provide(inj, func(i *do.Injector) (service.AssetService, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return service.NewAssetService(
			do.MustInvoke[repo.AssetRepo](i),
			do.MustInvoke[media.Hasher](i),
			do.MustInvoke[media.Extractor](i),
			do.MustInvoke[*zap.Logger](i),
			do.MustInvoke[*redis.Client](i),
			do.MustInvoke[*amqp.Connection](i),
			do.MustInvoke[*blob.S3Deps](i),
			cfg.RabbitMQ.Queue,
			cfg.Ingest.Workers,
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.TagService, error) {
		return service.NewTagService(
			do.MustInvoke[repo.TagRepo](i),
			do.MustInvoke[repo.AssetRepo](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.ProjectService, error) {
		return service.NewProjectService(
			do.MustInvoke[repo.ProjectRepo](i),
			do.MustInvoke[repo.AssetRepo](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.RouteService, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return service.NewRouteService(
			do.MustInvoke[repo.RouteRepo](i),
			do.MustInvoke[repo.AssetRepo](i),
			do.MustInvoke[repo.ProjectRepo](i),
			do.MustInvoke[*zap.Logger](i),
			do.MustInvoke[*amqp.Connection](i),
			cfg.RabbitMQ.Queue,
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.StyleService, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return service.NewStyleService(
			do.MustInvoke[repo.StyleRepo](i),
			do.MustInvoke[repo.AssetRepo](i),
			do.MustInvoke[repo.TagRepo](i),
			do.MustInvoke[service.AssetService](i),
			do.MustInvoke[*zap.Logger](i),
			match.Options{
				MaxDistance: cfg.Matcher.MaxDistance,
				Suffixes:    cfg.Matcher.Suffixes,
			},
			cfg.Matcher.OriginTag,
		), nil
	})

	// Handler
	do.Provide(inj, func(i *do.Injector) (*handler.AssetHandler, error) {
		return handler.NewAssetHandler(do.MustInvoke[service.AssetService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.TagHandler, error) {
		return handler.NewTagHandler(do.MustInvoke[service.TagService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.ProjectHandler, error) {
		return handler.NewProjectHandler(do.MustInvoke[service.ProjectService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.RouteHandler, error) {
		return handler.NewRouteHandler(do.MustInvoke[service.RouteService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.StyleHandler, error) {
		return handler.NewStyleHandler(do.MustInvoke[service.StyleService](i)), nil
	})

	return inj
}
