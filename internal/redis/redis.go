// Package redis holds the hot shared state that is not worth a table:
// pairing codes waiting to be claimed and the override notification
// channel the engine listens on.
package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/minbar-signage/minbar/internal/model"
)

var Rdb *redis.Client

const overridesChannel = "minbar:overrides"

func InitRedis(redisAddress string, redisUsername string, redisPassword string) {
	Rdb = redis.NewClient(&redis.Options{
		Addr:     redisAddress,
		Username: redisUsername,
		Password: redisPassword,
		DB:       0,
	})
}

func Set(ctx context.Context, key string, value interface{}, expiration time.Duration) {
	if err := Rdb.Set(ctx, key, value, expiration).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to write key to redis")
	}
}

func Get(ctx context.Context, key string) (string, error) {
	return Rdb.Get(ctx, key).Result()
}

// PublishOverride announces an override change to every listening
// engine instance.
func PublishOverride(ctx context.Context, ev model.OverrideEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	if err := Rdb.Publish(ctx, overridesChannel, payload).Err(); err != nil {
		log.Error().Err(err).Str("kind", ev.Kind).Msg("failed to publish override")
		return err
	}
	return nil
}

// SubscribeOverrides delivers override events to fn until ctx ends.
// The core reacts to these notifications instead of polling a flag.
func SubscribeOverrides(ctx context.Context, fn func(model.OverrideEvent)) {
	sub := Rdb.Subscribe(ctx, overridesChannel)
	go func() {
		defer sub.Close()
		for msg := range sub.Channel() {
			var ev model.OverrideEvent
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				log.Error().Err(err).Str("payload", msg.Payload).Msg("dropping malformed override event")
				continue
			}
			fn(ev)
		}
	}()
}
