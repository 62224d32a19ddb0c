package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/go-settings/internal/codec"
	"github.com/MKhiriev/go-settings/internal/config"
	"github.com/MKhiriev/go-settings/internal/logger"
	"github.com/MKhiriev/go-settings/internal/settings"
	"github.com/MKhiriev/go-settings/models"
)

const flushScanCount = 100

// RedisHandler stores settings in Redis, one hash per scope:
//
//	<prefix>:global          namespace.property -> CBOR record
//	<prefix>:ctx:<context>   namespace.property -> CBOR record
//
// Hydration, write-through and staleness behave exactly like
// [DatabaseHandler]: a scope is loaded with one pipelined round trip on
// first touch and served from the embedded cache afterwards.
//
// RedisHandler is not safe for concurrent use.
type RedisHandler struct {
	client   redis.UniversalClient
	prefix   string
	cache    *settings.ArrayHandler
	hydrated *hydrationTracker
	now      func() time.Time
}

// NewRedisHandler returns a handler writing hashes under prefix.
func NewRedisHandler(client redis.UniversalClient, prefix string, opts ...HandlerOption) *RedisHandler {
	o := newHandlerOptions(opts)

	return &RedisHandler{
		client:   client,
		prefix:   prefix,
		cache:    settings.NewArrayHandler(),
		hydrated: newHydrationTracker(o.hydrationTTL),
		now:      o.now,
	}
}

// NewRedisClient connects to Redis and waits for it to answer a ping.
func NewRedisClient(ctx context.Context, cfg config.Redis, log *logger.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	backoff := retry.WithMaxRetries(cfg.ConnectRetries, retry.NewExponential(200*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := client.Ping(ctx).Err(); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "NewRedisClient").Str("address", cfg.Address).Msg("error connecting redis (ping)")
		_ = client.Close()
		return nil, fmt.Errorf("error connecting redis (ping): %w", err)
	}
	log.Info().Str("func", "NewRedisClient").Msg("connected to redis successfully")

	return client, nil
}

// Has implements [settings.Handler].
func (h *RedisHandler) Has(ctx context.Context, namespace, property string, scope models.Scope) (bool, error) {
	if err := h.hydrate(ctx, scope); err != nil {
		return false, err
	}

	return h.cache.Contains(namespace, property, scope), nil
}

// Get implements [settings.Handler].
func (h *RedisHandler) Get(ctx context.Context, namespace, property string, scope models.Scope) (any, error) {
	if err := h.hydrate(ctx, scope); err != nil {
		return nil, err
	}

	return h.cache.Value(namespace, property, scope)
}

// Set implements [settings.Handler]. Updates keep the created_at of the
// stored record.
func (h *RedisHandler) Set(ctx context.Context, namespace, property string, value any, scope models.Scope) error {
	log := logger.FromContext(ctx)

	sv, err := codec.Prepare(value)
	if err != nil {
		return err
	}

	if err = h.hydrate(ctx, scope); err != nil {
		return err
	}

	key := models.SettingKey{Namespace: namespace, Property: property}
	now := h.now()
	rec := models.SettingRecord{
		Namespace: namespace,
		Property:  property,
		Context:   scope.Context(),
		Value:     sv,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if h.cache.Contains(namespace, property, scope) {
		prev, err := h.client.HGet(ctx, h.hashKey(scope), key.String()).Bytes()
		switch {
		case err == nil:
			var old models.SettingRecord
			if cbor.Unmarshal(prev, &old) == nil {
				rec.CreatedAt = old.CreatedAt
			}
		case !errors.Is(err, redis.Nil):
			log.Err(err).Str("func", "*RedisHandler.Set").Str("key", key.String()).Msg("failed to read stored record")
			return storageError(ErrRedisCommand, err)
		}
	}

	payload, err := cbor.Marshal(rec)
	if err != nil {
		return storageError(ErrDecodingRecord, err)
	}

	if err = h.client.HSet(ctx, h.hashKey(scope), key.String(), payload).Err(); err != nil {
		log.Err(err).
			Str("func", "*RedisHandler.Set").
			Str("key", key.String()).
			Stringer("scope", scope).
			Msg("failed to store setting")
		return storageError(ErrRedisCommand, err)
	}

	h.cache.Store(namespace, property, scope, sv)
	return nil
}

// Forget implements [settings.Handler].
func (h *RedisHandler) Forget(ctx context.Context, namespace, property string, scope models.Scope) error {
	key := models.SettingKey{Namespace: namespace, Property: property}

	if err := h.client.HDel(ctx, h.hashKey(scope), key.String()).Err(); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*RedisHandler.Forget").
			Str("key", key.String()).
			Stringer("scope", scope).
			Msg("failed to delete setting")
		return storageError(ErrRedisCommand, err)
	}

	h.cache.Remove(namespace, property, scope)
	return nil
}

// Flush implements [settings.Handler]. It deletes every hash under the
// prefix.
func (h *RedisHandler) Flush(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := h.client.Scan(ctx, cursor, h.prefix+":*", flushScanCount).Result()
		if err != nil {
			return storageError(ErrRedisCommand, err)
		}

		if len(keys) > 0 {
			if err = h.client.Del(ctx, keys...).Err(); err != nil {
				return storageError(ErrRedisCommand, err)
			}
		}

		if next == 0 {
			break
		}
		cursor = next
	}

	h.cache.Reset()
	h.hydrated.Reset()
	return nil
}

func (h *RedisHandler) hydrate(ctx context.Context, scope models.Scope) error {
	scopes := h.hydrated.pending(scope)
	if len(scopes) == 0 {
		return nil
	}

	log := logger.FromContext(ctx)

	cmds := make([]*redis.MapStringStringCmd, len(scopes))
	_, err := h.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, s := range scopes {
			cmds[i] = pipe.HGetAll(ctx, h.hashKey(s))
		}
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*RedisHandler.hydrate").Stringer("scope", scope).Msg("failed to hydrate settings")
		return storageError(ErrRedisCommand, err)
	}

	records := make([]models.SettingRecord, 0, 32)
	for _, cmd := range cmds {
		for field, payload := range cmd.Val() {
			var rec models.SettingRecord
			if err = cbor.Unmarshal([]byte(payload), &rec); err != nil {
				log.Err(err).Str("func", "*RedisHandler.hydrate").Str("field", field).Msg("failed to decode record")
				return storageError(ErrDecodingRecord, err)
			}
			records = append(records, rec)
		}
	}

	for _, s := range scopes {
		h.cache.ResetScope(s)
	}
	for _, rec := range records {
		h.cache.Store(rec.Namespace, rec.Property, rec.Scope(), rec.Value)
	}
	h.hydrated.mark(scopes...)

	log.Debug().
		Stringer("scope", scope).
		Int("scopes", len(scopes)).
		Int("records", len(records)).
		Msg("settings hydrated from redis")
	return nil
}

func (h *RedisHandler) hashKey(scope models.Scope) string {
	if scope.IsGlobal() {
		return h.prefix + ":global"
	}
	return h.prefix + ":ctx:" + scope.Name()
}
