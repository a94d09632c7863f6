package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itzbandhan/sallukobirthday/internal/models"
)

func newTestRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	s, err := NewRedisStore(&redis.Options{
		Addr:     "localhost:6379",
		Password: "",
		DB:       0,
	})
	if err != nil {
		t.Skipf("redis unavailable: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRedisStoreSettingsRoundTrip(t *testing.T) {
	s := newTestRedisStore(t)
	ctx := context.Background()

	settings := &models.Settings{
		Title:     "Salluko's Birthday Bash",
		DateText:  "Saturday, March 14",
		Emoji:     "🎂",
		UpdatedAt: time.Now(),
	}
	require.NoError(t, s.SaveSettings(ctx, settings))

	got, err := s.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, settings.Title, got.Title)
	assert.Equal(t, settings.Emoji, got.Emoji)
}

func TestRedisStoreRecipientLifecycle(t *testing.T) {
	s := newTestRedisStore(t)
	ctx := context.Background()

	recipient := &models.Recipient{
		ID:           "test-id-redis",
		Slug:         "test-slug-redis",
		InviteType:   models.InviteCouple,
		NamePartner1: "Priya",
		NamePartner2: "Arjun",
		IsActive:     true,
		CreatedAt:    time.Now(),
	}
	require.NoError(t, s.SaveRecipient(ctx, recipient))
	defer s.DeleteRecipient(ctx, recipient.ID)

	got, err := s.RecipientBySlug(ctx, "test-slug-redis")
	require.NoError(t, err)
	assert.Equal(t, recipient.ID, got.ID)
	assert.Equal(t, models.InviteCouple, got.InviteType)

	err = s.SaveRecipient(ctx, &models.Recipient{ID: "other-id", Slug: "test-slug-redis"})
	assert.ErrorIs(t, err, ErrSlugTaken)

	// Rename releases the old slug.
	recipient.Slug = "test-slug-redis-2"
	require.NoError(t, s.SaveRecipient(ctx, recipient))

	_, err = s.RecipientBySlug(ctx, "test-slug-redis")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.DeleteRecipient(ctx, recipient.ID))

	_, err = s.RecipientByID(ctx, recipient.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStoreConcurrentSavesKeepSlugUnique(t *testing.T) {
	s := newTestRedisStore(t)
	ctx := context.Background()

	const contenders = 8
	slug := "test-slug-contended"

	errs := make(chan error, contenders)
	for i := 0; i < contenders; i++ {
		id := fmt.Sprintf("test-contender-%d", i)
		t.Cleanup(func() { s.DeleteRecipient(ctx, id) })
		go func() {
			errs <- s.SaveRecipient(ctx, &models.Recipient{
				ID:         id,
				Slug:       slug,
				InviteType: models.InviteSingle,
				IsActive:   true,
			})
		}()
	}

	var won, lost int
	for i := 0; i < contenders; i++ {
		switch err := <-errs; {
		case err == nil:
			won++
		case errors.Is(err, ErrSlugTaken):
			lost++
		default:
			t.Fatalf("unexpected save error: %v", err)
		}
	}

	assert.Equal(t, 1, won, "exactly one contender may claim the slug")
	assert.Equal(t, contenders-1, lost)

	winner, err := s.RecipientBySlug(ctx, slug)
	require.NoError(t, err)

	// Losers must leave no half-written records behind.
	list, err := s.ListRecipients(ctx)
	require.NoError(t, err)
	for _, r := range list {
		if r.Slug == slug {
			assert.Equal(t, winner.ID, r.ID)
		}
	}
}
