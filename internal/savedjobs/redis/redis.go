// Package redis backs saved-job membership with one Redis set per identity,
// plus a companion hash recording when each job was saved.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"facultyjobs/internal/savedjobs"
)

type Options struct {
	Addr     string
	Password string
	DB       int
}

type Store struct {
	client *redis.Client
}

var _ savedjobs.Store = (*Store)(nil)

func New(opts Options) *Store {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	return &Store{client: client}
}

func setKey(uid string) string {
	return fmt.Sprintf("user:%s:saved", uid)
}

func savedAtKey(uid string) string {
	return fmt.Sprintf("user:%s:savedat", uid)
}

func (s *Store) List(ctx context.Context, uid string) ([]string, error) {
	ids, err := s.client.SMembers(ctx, setKey(uid)).Result()
	if err != nil {
		return nil, fmt.Errorf("listing saved jobs: %w", err)
	}
	return ids, nil
}

func (s *Store) Add(ctx context.Context, uid, jobID string, savedAt time.Time) error {
	pipe := s.client.TxPipeline()
	pipe.SAdd(ctx, setKey(uid), jobID)
	pipe.HSet(ctx, savedAtKey(uid), jobID, savedAt.UTC().Format(time.RFC3339))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("saving job %s: %w", jobID, err)
	}
	return nil
}

func (s *Store) Remove(ctx context.Context, uid, jobID string) error {
	pipe := s.client.TxPipeline()
	pipe.SRem(ctx, setKey(uid), jobID)
	pipe.HDel(ctx, savedAtKey(uid), jobID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("removing saved job %s: %w", jobID, err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}
