package bootstrap

import (
	"context"
	"log/slog"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"feedbackdesk/internal/bootstrap/config"
	"feedbackdesk/internal/bootstrap/database"
	"feedbackdesk/internal/bootstrap/logging"
	"feedbackdesk/internal/infrastructure/blobref"
	"feedbackdesk/internal/infrastructure/kv"
	"feedbackdesk/internal/ports"
	"feedbackdesk/internal/usecase/feedback"
	"feedbackdesk/internal/usecase/fieldconfig"
)

var Module = fx.Options(
	fx.Provide(provideConfig),
	fx.Provide(provideDatabase),
	fx.Provide(
		fx.Annotate(
			kv.NewSQLiteStore,
			fx.As(new(ports.StateStore)),
		),
	),
	fx.Provide(blobref.NewRegistry),
	fx.Provide(provideFeedbackService),
	fx.Provide(provideFieldService),
	fx.Provide(provideApp),
	fx.Invoke(registerHydrate),
)

type configParams struct {
	fx.In

	Ctx        context.Context
	ConfigFile string `name:"configFile"`
}

func provideConfig(p configParams) (config.Config, error) {
	ctx := logging.WithComponent(p.Ctx, "bootstrap.fx")
	return config.Load(ctx, p.ConfigFile)
}

func provideDatabase(lc fx.Lifecycle, ctx context.Context, cfg config.Config) (*gorm.DB, error) {
	logCtx := logging.WithComponent(ctx, "bootstrap.fx")

	db, err := database.Open(logCtx, cfg.Database)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})

	return db, nil
}

func provideFeedbackService(store ports.StateStore, cfg config.Config) *feedback.Service {
	return feedback.NewService(store, feedback.Options{
		StoreKey:      cfg.Store.Key,
		AdminPassword: cfg.Admin.Password,
	})
}

func provideFieldService(store ports.StateStore, cfg config.Config) *fieldconfig.Service {
	return fieldconfig.NewService(store, cfg.Store.FieldsKey)
}

func provideApp(
	cfg config.Config,
	db *gorm.DB,
	feedbackSvc *feedback.Service,
	fieldSvc *fieldconfig.Service,
	blobs *blobref.Registry,
) *App {
	return &App{
		Config:   cfg,
		DB:       db,
		Feedback: feedbackSvc,
		Fields:   fieldSvc,
		Blobs:    blobs,
	}
}

// registerHydrate migrates the state table and loads persisted state before
// any command runs.
func registerHydrate(lc fx.Lifecycle, ctx context.Context, app *App) {
	lc.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			logCtx := logging.WithAttrs(ctx, slog.String("component", "bootstrap.fx"))
			if err := app.InitSchema(startCtx); err != nil {
				return err
			}
			if err := app.Hydrate(logCtx); err != nil {
				return err
			}
			logging.Debug(logCtx, "application state ready")
			return nil
		},
	})
}
