package store

import (
	"context"
	"errors"

	"github.com/itzbandhan/sallukobirthday/internal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrSlugTaken = errors.New("slug already in use")
)

// Store persists the settings singleton and recipient records. Reads used
// by the public surface go through the gateway, which normalizes errors;
// the admin API consumes the errors directly.
type Store interface {
	Settings(ctx context.Context) (*models.Settings, error)
	SaveSettings(ctx context.Context, s *models.Settings) error

	RecipientBySlug(ctx context.Context, slug string) (*models.Recipient, error)
	RecipientByID(ctx context.Context, id string) (*models.Recipient, error)
	ListRecipients(ctx context.Context) ([]*models.Recipient, error)
	SaveRecipient(ctx context.Context, r *models.Recipient) error
	DeleteRecipient(ctx context.Context, id string) error

	Close() error
}
