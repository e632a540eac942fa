package bootstrap

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"feedbackdesk/internal/bootstrap/config"
	"feedbackdesk/internal/bootstrap/logging"
	"feedbackdesk/internal/errs"
	"feedbackdesk/internal/infrastructure/blobref"
	"feedbackdesk/internal/infrastructure/persistence/sqlite/model"
	"feedbackdesk/internal/usecase/feedback"
	"feedbackdesk/internal/usecase/fieldconfig"
)

type App struct {
	Config   config.Config
	DB       *gorm.DB
	Feedback *feedback.Service
	Fields   *fieldconfig.Service
	Blobs    *blobref.Registry
}

func (a *App) InitSchema(ctx context.Context) error {
	if ctx == nil {
		return errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return errs.Wrap(err, "check context")
	}

	logCtx := logging.WithComponent(ctx, "bootstrap.app")
	logging.Debug(logCtx, "start schema migration")

	if err := a.DB.WithContext(ctx).AutoMigrate(&model.StateKV{}); err != nil {
		return errs.Wrap(err, "auto migrate schema")
	}

	logging.Debug(logCtx, "schema migration completed")
	return nil
}

// Hydrate loads the persisted feedback state and custom field set.
func (a *App) Hydrate(ctx context.Context) error {
	if err := a.Feedback.Hydrate(ctx); err != nil {
		return errs.Wrap(err, "hydrate feedback state")
	}
	if err := a.Fields.Hydrate(ctx); err != nil {
		return errs.Wrap(err, "hydrate custom fields")
	}
	return nil
}
