package config

import (
	"context"
	"fmt"
	"time"

	"github.com/golang/glog"
	"github.com/redis/go-redis/v9"

	"github.com/AnatoleLucet/hooks/codec"
	"github.com/AnatoleLucet/hooks/store"
)

// Open connects to the configured backend. The returned function releases it,
// after flushing queued writes when write-behind is on.
func (c StoreConfig) Open(ctx context.Context) (store.Store, func() error, error) {
	s, closeFn, err := c.open(ctx)
	if err != nil {
		return nil, nil, err
	}
	glog.V(1).Infof("store: opened %s backend", c.Backend)

	remote := c.Backend == BackendPostgres || c.Backend == BackendRedis || c.Backend == BackendMongo
	if !c.WriteBehind || !remote {
		return s, closeFn, nil
	}

	wb := store.NewWriteBehind(s)
	return wb, func() error {
		err := wb.Close()
		if cerr := closeFn(); err == nil {
			err = cerr
		}
		return err
	}, nil
}

func (c StoreConfig) open(ctx context.Context) (store.Store, func() error, error) {
	nop := func() error { return nil }

	switch c.Backend {
	case BackendMemory:
		return store.NewMemory(), nop, nil

	case BackendFile:
		s, err := store.NewFile(c.Path, c.extension())
		if err != nil {
			return nil, nil, err
		}
		return s, nop, nil

	case BackendSQLite:
		s, err := store.OpenSQLite(c.Path, c.Prefix)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil

	case BackendPostgres:
		s, err := store.OpenPostgres(c.DSN, c.Prefix)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil

	case BackendRedis:
		client := redis.NewClient(&redis.Options{Addr: c.Addr})

		pingCtx, cancel := context.WithTimeout(ctx, c.timeout())
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("redis ping %s: %w", c.Addr, err)
		}

		return store.NewRedis(client, c.Prefix, c.Timeout), client.Close, nil

	case BackendMongo:
		coll := c.Prefix
		if coll == "" {
			coll = "kv"
		}

		s, client, err := store.ConnectMongo(ctx, c.DSN, c.Database, coll, c.Timeout)
		if err != nil {
			return nil, nil, err
		}
		return s, func() error {
			dctx, cancel := context.WithTimeout(context.Background(), c.timeout())
			defer cancel()
			return client.Disconnect(dctx)
		}, nil
	}

	return nil, nil, fmt.Errorf("%w: unknown store.backend %q", ErrInvalid, c.Backend)
}

// NewCodec returns the configured codec, JSON when unset.
func (c StoreConfig) NewCodec() (codec.Codec, error) {
	return codec.ByName(c.Codec)
}

func (c StoreConfig) timeout() time.Duration {
	if c.Timeout <= 0 {
		return 5 * time.Second
	}
	return c.Timeout
}

func (c StoreConfig) extension() string {
	switch c.Codec {
	case "yaml":
		return ".yaml"
	case "gob":
		return ".gob"
	default:
		return ".json"
	}
}
