// Package gateway is the read facade between the store and the public
// surface. Render logic never sees a raw store error: misses, timeouts and
// malformed rows all normalize to "absent", and the worst a visitor gets is
// the generic invitation.
package gateway

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/itzbandhan/sallukobirthday/internal/models"
	"github.com/itzbandhan/sallukobirthday/internal/store"
)

const defaultTimeout = 3 * time.Second

type Gateway struct {
	store   store.Store
	timeout time.Duration
	logger  *zap.Logger
}

func New(st store.Store, timeout time.Duration, logger *zap.Logger) *Gateway {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gateway{store: st, timeout: timeout, logger: logger}
}

// Settings returns the global settings, or a zero value when the singleton
// is missing or the store fails. The resolver's fallbacks cover the zero
// value, so callers never branch on errors.
func (g *Gateway) Settings(ctx context.Context) *models.Settings {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	settings, err := g.store.Settings(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			g.logger.Warn("settings fetch failed", zap.Error(err))
		}
		return &models.Settings{}
	}
	return settings
}

// RecipientBySlug returns the active recipient for slug, or nil on a miss,
// a deactivated record, or any store failure. Personalization failures are
// silent to the visitor.
func (g *Gateway) RecipientBySlug(ctx context.Context, slug string) *models.Recipient {
	if slug == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	recipient, err := g.store.RecipientBySlug(ctx, slug)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			g.logger.Warn("recipient fetch failed",
				zap.String("slug", slug),
				zap.Error(err),
			)
		}
		return nil
	}
	if !recipient.IsActive {
		return nil
	}
	return recipient
}
