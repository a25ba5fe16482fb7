package loginguard

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeScripter 在内存中模拟三个Lua脚本
type fakeScripter struct {
	counts map[string]int64
	ttls   map[string]interface{}

	// cached 为 false 时 EVALSHA 返回 NOSCRIPT，直到执行过一次 EVAL
	cached    bool
	evalCalls int
	err       error
}

func newFakeScripter() *fakeScripter {
	return &fakeScripter{
		counts: map[string]int64{},
		ttls:   map[string]interface{}{},
	}
}

func (f *fakeScripter) Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd {
	f.evalCalls++
	f.cached = true
	sum := sha1.Sum([]byte(script))
	return f.run(ctx, hex.EncodeToString(sum[:]), keys, args...)
}

func (f *fakeScripter) EvalSha(ctx context.Context, sha string, keys []string, args ...interface{}) *redis.Cmd {
	if !f.cached {
		return redis.NewCmdResult(nil, errors.New("NOSCRIPT No matching script. Please use EVAL."))
	}
	return f.run(ctx, sha, keys, args...)
}

func (f *fakeScripter) ScriptExists(ctx context.Context, hashes ...string) *redis.BoolSliceCmd {
	return redis.NewBoolSliceResult(make([]bool, len(hashes)), nil)
}

func (f *fakeScripter) ScriptLoad(ctx context.Context, script string) *redis.StringCmd {
	sum := sha1.Sum([]byte(script))
	return redis.NewStringResult(hex.EncodeToString(sum[:]), nil)
}

func (f *fakeScripter) run(_ context.Context, sha string, keys []string, args ...interface{}) *redis.Cmd {
	if f.err != nil {
		return redis.NewCmdResult(nil, f.err)
	}

	key := keys[0]
	switch sha {
	case recordFailureScript.Hash():
		f.counts[key]++
		if f.counts[key] == 1 {
			f.ttls[key] = args[0]
		}
		return redis.NewCmdResult(f.counts[key], nil)
	case currentFailuresScript.Hash():
		return redis.NewCmdResult(f.counts[key], nil)
	case resetScript.Hash():
		_, existed := f.counts[key]
		delete(f.counts, key)
		delete(f.ttls, key)
		if existed {
			return redis.NewCmdResult(int64(1), nil)
		}
		return redis.NewCmdResult(int64(0), nil)
	default:
		return redis.NewCmdResult(nil, fmt.Errorf("unknown script %s", sha))
	}
}

func TestGuard_LocksAfterMaxAttempts(t *testing.T) {
	ctx := context.Background()
	client := newFakeScripter()
	guard := New(client, 3, "login:", 15*time.Minute)

	for i := 1; i <= 3; i++ {
		require.NoError(t, guard.Check(ctx, "alice"))
		count, err := guard.RecordFailure(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, int64(i), count)
	}

	assert.ErrorIs(t, guard.Check(ctx, "alice"), ErrLocked)
	// 用户名不区分大小写
	assert.ErrorIs(t, guard.Check(ctx, "ALICE"), ErrLocked)
	assert.NoError(t, guard.Check(ctx, "bob"))

	assert.Equal(t, 900, client.ttls["login:alice"])
	assert.Equal(t, 3, guard.MaxAttempts())
}

func TestGuard_ResetClearsFailures(t *testing.T) {
	ctx := context.Background()
	guard := New(newFakeScripter(), 2, "login:", time.Minute)

	_, err := guard.RecordFailure(ctx, "alice")
	require.NoError(t, err)
	_, err = guard.RecordFailure(ctx, "alice")
	require.NoError(t, err)
	require.ErrorIs(t, guard.Check(ctx, "alice"), ErrLocked)

	require.NoError(t, guard.Reset(ctx, "alice"))
	assert.NoError(t, guard.Check(ctx, "alice"))
}

func TestGuard_FallsBackToEvalOnNoScript(t *testing.T) {
	ctx := context.Background()
	client := newFakeScripter()
	guard := New(client, 5, "login:", time.Minute)

	require.NoError(t, guard.Check(ctx, "alice"))
	assert.Equal(t, 1, client.evalCalls)

	// 脚本已缓存，后续走 EVALSHA
	require.NoError(t, guard.Check(ctx, "alice"))
	assert.Equal(t, 1, client.evalCalls)
}

func TestGuard_PropagatesRedisErrors(t *testing.T) {
	ctx := context.Background()
	client := newFakeScripter()
	client.cached = true
	client.err = errors.New("connection refused")
	guard := New(client, 5, "login:", time.Minute)

	err := guard.Check(ctx, "alice")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrLocked))

	_, err = guard.RecordFailure(ctx, "alice")
	assert.Error(t, err)

	assert.Error(t, guard.Reset(ctx, "alice"))
}
