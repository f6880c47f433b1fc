package store

import (
	"bytes"
	"context"
	stderrors "errors"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/matzehuels/flowboard/pkg/errors"
	"github.com/matzehuels/flowboard/pkg/graph"
)

// KeyPrefix namespaces process documents in Redis.
const KeyPrefix = "flowboard:process:"

// RedisStore keeps msgpack-encoded documents in Redis.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// RedisOptions configures [NewRedisStore].
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Prefix   string // defaults to KeyPrefix
}

// NewRedisStore connects to Redis and verifies the connection with PING.
func NewRedisStore(ctx context.Context, opts RedisOptions) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	ping := func() error { return client.Ping(ctx).Err() }
	if err := retry(ctx, ConnectAttempts, ConnectDelay, ping); err != nil {
		client.Close()
		return nil, persistenceError(err, "connect to redis at %s", opts.Addr)
	}
	return NewRedisStoreFromClient(client, opts.Prefix), nil
}

// NewRedisStoreFromClient wraps an existing client.
func NewRedisStoreFromClient(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = KeyPrefix
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(processID string) string {
	return s.prefix + processID
}

func (s *RedisStore) Save(ctx context.Context, doc graph.Document) (err error) {
	start := time.Now()
	defer func() { observeSave(ctx, "redis", doc.ProcessID, start, err) }()

	if err := errors.ValidateProcessID(doc.ProcessID); err != nil {
		return err
	}
	data, err := encodeMsgpack(stamp(doc))
	if err != nil {
		return persistenceError(err, "encode process %s", doc.ProcessID)
	}
	if err := s.client.Set(ctx, s.key(doc.ProcessID), data, 0).Err(); err != nil {
		return persistenceError(err, "save process %s", doc.ProcessID)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context, processID string) (doc graph.Document, err error) {
	start := time.Now()
	defer func() { observeLoad(ctx, "redis", processID, start, err) }()

	if err := errors.ValidateProcessID(processID); err != nil {
		return graph.Document{}, err
	}
	data, err := s.client.Get(ctx, s.key(processID)).Bytes()
	if err != nil {
		if stderrors.Is(err, redis.Nil) {
			return graph.Document{}, ErrNotFound
		}
		return graph.Document{}, persistenceError(err, "load process %s", processID)
	}
	if err := decodeMsgpack(data, &doc); err != nil {
		return graph.Document{}, persistenceError(err, "decode process %s", processID)
	}
	return doc, nil
}

func (s *RedisStore) Delete(ctx context.Context, processID string) error {
	if err := errors.ValidateProcessID(processID); err != nil {
		return err
	}
	n, err := s.client.Del(ctx, s.key(processID)).Result()
	if err != nil {
		return persistenceError(err, "delete process %s", processID)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// List scans the key prefix; it does not block the server like KEYS would.
func (s *RedisStore) List(ctx context.Context) ([]string, error) {
	ids := []string{}
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		ids = append(ids, strings.TrimPrefix(iter.Val(), s.prefix))
	}
	if err := iter.Err(); err != nil {
		return nil, persistenceError(err, "list processes")
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

// encodeMsgpack reuses the json tags so the Redis payload has the same field
// names as the file format.
func encodeMsgpack(doc graph.Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeMsgpack(data []byte, doc *graph.Document) error {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag("json")
	return dec.Decode(doc)
}

var _ Store = (*RedisStore)(nil)
