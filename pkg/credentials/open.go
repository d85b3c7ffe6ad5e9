package credentials

import (
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-leave-gateway/pkg/config"
)

// Open builds the store selected by cfg.Driver. The redis client is only used
// by the redis driver and may be nil otherwise.
func Open(cfg config.CredentialsConfig, client *redis.Client, logger *zap.Logger) (Store, error) {
	switch cfg.Driver {
	case config.CredentialsFile:
		return NewFileStore(cfg.File, logger)
	case config.CredentialsRedis:
		if client == nil {
			return nil, fmt.Errorf("credentials driver %q requires a redis client", cfg.Driver)
		}
		return NewRedisStore(client, cfg.RedisPrefix), nil
	case config.CredentialsMemory, "":
		return NewMemoryStore(nil), nil
	default:
		return nil, fmt.Errorf("unknown credentials driver %q", cfg.Driver)
	}
}
