// Package redisstore keeps characters, campaigns and enemy templates as JSON
// documents in Redis. Field-level updates run as WATCH/MULTI optimistic
// transactions.
package redisstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/Ostwick/RPG-Imperium/internal/config"
	"github.com/Ostwick/RPG-Imperium/internal/storage"
)

// maxTxRetries bounds how often a contended optimistic update is retried.
const maxTxRetries = 16

// NewClient connects to the Redis server described by cfg.
//
// Postcondition: Returns a client that answered PING, or an error.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	return client, nil
}

// keys builds namespaced key names.
type keys struct {
	prefix string
}

func (k keys) character(id string) string      { return k.prefix + "character:" + id }
func (k keys) userCharacters(id string) string { return k.prefix + "user:" + id + ":characters" }
func (k keys) campaign(id string) string       { return k.prefix + "campaign:" + id }
func (k keys) template(id string) string       { return k.prefix + "template:" + id }
func (k keys) templates() string               { return k.prefix + "templates" }

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// getDoc fetches the raw document at key.
func getDoc(ctx context.Context, c getter, key string) ([]byte, error) {
	data, err := c.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%s: %w", key, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}
	return data, nil
}

// errSkip aborts an update without writing and without an error.
var errSkip = errors.New("skip write")

// update applies fn to the document at key inside a WATCH transaction and
// writes the result back. fn returning errSkip ends the update without a
// write. A transaction that loses a race is retried.
//
// Postcondition: Returns true iff the new document was written.
func update(ctx context.Context, client *redis.Client, key string, fn func([]byte) ([]byte, error)) (bool, error) {
	for range maxTxRetries {
		written := false
		err := client.Watch(ctx, func(tx *redis.Tx) error {
			data, err := getDoc(ctx, tx, key)
			if err != nil {
				return err
			}
			next, err := fn(data)
			if err != nil {
				return err
			}
			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, key, string(next), 0)
				return nil
			})
			if err == nil {
				written = true
			}
			return err
		}, key)
		switch {
		case err == nil:
			return written, nil
		case errors.Is(err, errSkip):
			return false, nil
		case errors.Is(err, redis.TxFailedErr):
			continue
		default:
			return false, err
		}
	}
	return false, fmt.Errorf("updating %s: too much contention", key)
}
