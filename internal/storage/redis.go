package storage

import (
	"fmt"
	"hash/fnv"
	"strconv"

	"github.com/go-redis/redis"
	"github.com/sirupsen/logrus"
)

const (
	SeenRunsKey = "SeenRuns"
)

var log = logrus.WithField("catalog", "store")

// RedisStore keeps seen runs in one redis set per task, so they survive
// restarts and are shared between terminals.
type RedisStore struct {
	addr string

	client *redis.Client
}

func NewRedisStore(addr string) (s *RedisStore, err error) {
	c := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	if _, err := c.Ping().Result(); err != nil {
		log.Errorf("connect to redis %v failed: %v", addr, err)
		_ = c.Close()
		return nil, fmt.Errorf("connect redis %s: %w", addr, err)
	}
	log.Infof("connect to redis %v successfully", addr)
	return &RedisStore{
		addr:   addr,
		client: c,
	}, nil
}

// NewStore returns a RedisStore when persistent is set and redis answers,
// otherwise a MemoryStore.
func NewStore(persistent bool, addr string) Store {
	if !persistent {
		return NewMemoryStore()
	}
	s, err := NewRedisStore(addr)
	if err != nil {
		log.Warnf("seen runs will not persist: %v", err)
		return NewMemoryStore()
	}
	return s
}

func taskKey(taskID string) string {
	h := fnv.New64()
	_, _ = h.Write([]byte(taskID))
	return KeyPrefix + SeenRunsKey + ":" + strconv.FormatUint(h.Sum64(), 16)
}

func (s *RedisStore) Visit(taskID, runKey string) {
	key := taskKey(taskID)
	if err := s.client.SAdd(key, runKey).Err(); err != nil {
		log.WithField("taskId", taskID).Warnf("mark run %s seen (key %s) failed: %v", runKey, key, err)
	}
}

func (s *RedisStore) IsVisited(taskID, runKey string) bool {
	key := taskKey(taskID)
	ok, err := s.client.SIsMember(key, runKey).Result()
	if err != nil {
		log.WithField("taskId", taskID).Warnf("query run %s (key %s) failed: %v", runKey, key, err)
		return false
	}
	return ok
}

func (s *RedisStore) Forget(taskID string) {
	if err := s.client.Del(taskKey(taskID)).Err(); err != nil {
		log.WithField("taskId", taskID).Warnf("forget seen runs failed: %v", err)
	}
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
