package snapshot

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"github.com/rotisserie/eris"
)

const DefaultRedisKey = "logevents:settings"

// RedisStorage keeps the snapshot as a JSON document under a single redis key. Useful when
// several processes of the same application share one configuration.
type RedisStorage struct {
	client redis.Cmdable
	key    string
}

var _ Storage = (*RedisStorage)(nil)

type RedisStorageOptions struct {
	Address  string
	Password string
	Key      string
}

func (opts *RedisStorageOptions) Validate() error {
	if opts.Address == "" {
		return eris.New("redis address cannot be empty")
	}
	return nil
}

// NewRedisStorage connects a new redis client with the given options.
func NewRedisStorage(opts RedisStorageOptions) (*RedisStorage, error) {
	if err := opts.Validate(); err != nil {
		return nil, eris.Wrap(err, "invalid options passed")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Address,
		Password: opts.Password,
		DB:       0,
	})
	return NewRedisStorageFromClient(client, opts.Key), nil
}

// NewRedisStorageFromClient wraps an existing client. An empty key uses DefaultRedisKey.
func NewRedisStorageFromClient(client redis.Cmdable, key string) *RedisStorage {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStorage{client: client, key: key}
}

func (r *RedisStorage) Load(ctx context.Context) (*Snapshot, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, eris.Wrapf(ErrSnapshotNotFound, "no settings under key %s", r.key)
		}
		return nil, eris.Wrapf(err, "failed to get key %s", r.key)
	}

	s, err := Decode(data)
	if err != nil {
		return nil, eris.Wrapf(err, "malformed settings under key %s", r.key)
	}
	return s, nil
}

func (r *RedisStorage) Store(ctx context.Context, s *Snapshot) error {
	data, err := Encode(s)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return eris.Wrapf(err, "failed to set key %s", r.key)
	}
	return nil
}
