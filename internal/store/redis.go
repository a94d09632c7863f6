package store

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/itzbandhan/sallukobirthday/internal/models"
)

var _ Store = (*RedisStore)(nil)

const (
	settingsKey     = "invitation:settings"
	slugIndexKey    = "invitation:slugs"      // hash slug -> recipient ID
	recipientSetKey = "invitation:recipients" // set of recipient IDs
)

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(options *redis.Options) (*RedisStore, error) {
	client := redis.NewClient(options)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisStore{client: client}, nil
}

func (r *RedisStore) Settings(ctx context.Context) (*models.Settings, error) {
	data, err := r.client.Get(ctx, settingsKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var settings models.Settings
	if err := decode(data, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *RedisStore) SaveSettings(ctx context.Context, settings *models.Settings) error {
	data, err := encode(settings)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, settingsKey, data, 0).Err()
}

func (r *RedisStore) RecipientBySlug(ctx context.Context, slug string) (*models.Recipient, error) {
	id, err := r.client.HGet(ctx, slugIndexKey, slug).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return r.RecipientByID(ctx, id)
}

func (r *RedisStore) RecipientByID(ctx context.Context, id string) (*models.Recipient, error) {
	data, err := r.client.Get(ctx, recipientKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var recipient models.Recipient
	if err := decode(data, &recipient); err != nil {
		return nil, err
	}
	return &recipient, nil
}

func (r *RedisStore) ListRecipients(ctx context.Context) ([]*models.Recipient, error) {
	ids, err := r.client.SMembers(ctx, recipientSetKey).Result()
	if err != nil {
		return nil, err
	}

	out := make([]*models.Recipient, 0, len(ids))
	for _, id := range ids {
		recipient, err := r.RecipientByID(ctx, id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				// Index entry outlived its record; skip it.
				continue
			}
			return nil, err
		}
		out = append(out, recipient)
	}
	return out, nil
}

func (r *RedisStore) SaveRecipient(ctx context.Context, recipient *models.Recipient) error {
	data, err := encode(recipient)
	if err != nil {
		return err
	}

	key := recipientKey(recipient.ID)

	// The slug check and the index write must be one unit; watching the
	// index key aborts the transaction if a concurrent save touches it.
	txf := func(tx *redis.Tx) error {
		holder, err := tx.HGet(ctx, slugIndexKey, recipient.Slug).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if err == nil && holder != recipient.ID {
			return ErrSlugTaken
		}

		var staleSlug string
		if prevData, err := tx.Get(ctx, key).Bytes(); err == nil {
			var prev models.Recipient
			if err := decode(prevData, &prev); err == nil && prev.Slug != recipient.Slug {
				staleSlug = prev.Slug
			}
		} else if !errors.Is(err, redis.Nil) {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			pipe.HSet(ctx, slugIndexKey, recipient.Slug, recipient.ID)
			pipe.SAdd(ctx, recipientSetKey, recipient.ID)
			if staleSlug != "" {
				pipe.HDel(ctx, slugIndexKey, staleSlug)
			}
			return nil
		})
		return err
	}

	for i := 0; i < 3; i++ {
		err := r.client.Watch(ctx, txf, slugIndexKey, key)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}
	return redis.TxFailedErr
}

func (r *RedisStore) DeleteRecipient(ctx context.Context, id string) error {
	key := recipientKey(id)

	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return ErrNotFound
			}
			return err
		}

		var recipient models.Recipient
		if err := decode(data, &recipient); err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, key)
			pipe.HDel(ctx, slugIndexKey, recipient.Slug)
			pipe.SRem(ctx, recipientSetKey, id)
			return nil
		})
		return err
	}

	for i := 0; i < 3; i++ {
		err := r.client.Watch(ctx, txf, key)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}
	return redis.TxFailedErr
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}

// Helpers

func recipientKey(id string) string {
	return "invitation:recipient:" + id
}

func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decode(data []byte, v any) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}
