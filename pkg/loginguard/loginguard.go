package loginguard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrLocked 登录失败次数过多，账户暂时锁定
var ErrLocked = errors.New("too many failed login attempts")

// 失败计数 +1，首次写入时设置过期时间，返回当前计数
var recordFailureScript = redis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if tonumber(count) == 1 then
	redis.call('EXPIRE', KEYS[1], tonumber(ARGV[1]))
end
return count`)

// 返回当前失败次数，key 不存在时为 0
var currentFailuresScript = redis.NewScript(`
local current = redis.call('GET', KEYS[1])
if current == false then
	return 0
end
return tonumber(current)`)

var resetScript = redis.NewScript(`return redis.call('DEL', KEYS[1])`)

// Guard 基于Redis的登录失败计数器，按用户名计数
type Guard struct {
	client      redis.Scripter
	maxAttempts int
	keyPrefix   string
	ttl         time.Duration
}

// New 创建登录限制器
func New(client redis.Scripter, maxAttempts int, keyPrefix string, ttl time.Duration) *Guard {
	return &Guard{
		client:      client,
		maxAttempts: maxAttempts,
		keyPrefix:   keyPrefix,
		ttl:         ttl,
	}
}

func (g *Guard) key(username string) string {
	return g.keyPrefix + strings.ToLower(username)
}

// Check 用户名已锁定时返回 ErrLocked
func (g *Guard) Check(ctx context.Context, username string) error {
	result, err := currentFailuresScript.Run(ctx, g.client, []string{g.key(username)}).Int64()
	if err != nil {
		return fmt.Errorf("read login failures: %w", err)
	}
	if result >= int64(g.maxAttempts) {
		return ErrLocked
	}
	return nil
}

// RecordFailure 记录一次失败，返回窗口内累计失败次数
func (g *Guard) RecordFailure(ctx context.Context, username string) (int64, error) {
	count, err := recordFailureScript.Run(ctx, g.client, []string{g.key(username)}, int(g.ttl.Seconds())).Int64()
	if err != nil {
		return 0, fmt.Errorf("record login failure: %w", err)
	}
	return count, nil
}

// Reset 登录成功后清除计数
func (g *Guard) Reset(ctx context.Context, username string) error {
	if err := resetScript.Run(ctx, g.client, []string{g.key(username)}).Err(); err != nil {
		return fmt.Errorf("reset login failures: %w", err)
	}
	return nil
}

// MaxAttempts 获取最大失败次数
func (g *Guard) MaxAttempts() int {
	return g.maxAttempts
}
