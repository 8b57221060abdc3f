// Package redis — reply-индекс на Redis ZSET: по одному ключу на корень ветки,
// score — created_at в миллисекундах, member — id ответа.
//
// Все операции опираются на атомарность команд ZSET, поэтому параллельные
// Add/Remove по одному корню не требуют внешних блокировок.
package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/avdeevaa/go-dao-launchpad/discussions-service/internal/replyindex"
)

const defaultPrefix = "discussions:replies:"

type redisIndex struct {
	rdb    *redis.Client
	prefix string
}

// New создаёт клиент Redis из URL (например, redis://:pass@host:6379/0).
// Если prefix пустой — используется "discussions:replies:".
func New(redisURL, prefix string) (replyindex.Index, error) {
	if prefix == "" {
		prefix = defaultPrefix
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("replyindex/redis: parse url: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Fail-fast на старте.
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("replyindex/redis: ping: %w", err)
	}

	return &redisIndex{rdb: rdb, prefix: prefix}, nil
}

func (i *redisIndex) key(rootID string) string { return i.prefix + rootID }

// Add — ZADD NX: повторное добавление того же ответа не меняет score,
// поэтому ретраи создания сообщения безопасны.
func (i *redisIndex) Add(ctx context.Context, rootID, replyID string, score int64) error {
	return i.rdb.ZAddNX(ctx, i.key(rootID), redis.Z{
		Score:  float64(score),
		Member: replyID,
	}).Err()
}

func (i *redisIndex) Remove(ctx context.Context, rootID, replyID string) error {
	return i.rdb.ZRem(ctx, i.key(rootID), replyID).Err()
}

func (i *redisIndex) DeleteAll(ctx context.Context, rootID string) error {
	return i.rdb.Del(ctx, i.key(rootID)).Err()
}

func (i *redisIndex) Count(ctx context.Context, rootID string) (int64, error) {
	return i.rdb.ZCard(ctx, i.key(rootID)).Result()
}

// WindowOldestFirst — ZRANGE по рангам; Redis сортирует по score, а при
// равных score — лексикографически по member, что даёт детерминированный
// порядок для ответов, созданных в одну миллисекунду.
func (i *redisIndex) WindowOldestFirst(ctx context.Context, rootID string, start, count int64) ([]string, error) {
	if count <= 0 {
		return nil, nil
	}

	return i.rdb.ZRange(ctx, i.key(rootID), start, start+count-1).Result()
}

func (i *redisIndex) Close() error { return i.rdb.Close() }
