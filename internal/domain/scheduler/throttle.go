package scheduler

import (
	"context"
	"strconv"
	"time"

	"github.com/dawerha/backend/internal/common"
	"github.com/dawerha/backend/pkg/xcontext"
	"github.com/dawerha/backend/pkg/xredis"
	"golang.org/x/time/rate"
)

// Throttle decides whether a tick may run now.
type Throttle interface {
	Allow(ctx context.Context, now time.Time) (bool, error)
}

// LocalThrottle lets at most one tick through per interval within this
// process.
type LocalThrottle struct {
	limiter *rate.Limiter
}

func NewLocalThrottle(interval time.Duration) *LocalThrottle {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}

	return &LocalThrottle{limiter: rate.NewLimiter(limit, 1)}
}

func (t *LocalThrottle) Allow(_ context.Context, now time.Time) (bool, error) {
	return t.limiter.AllowN(now, 1), nil
}

// RedisThrottle shares the tick budget between every process using the same
// key.
type RedisThrottle struct {
	redisClient xredis.Client
	key         string
	interval    time.Duration
}

func NewRedisThrottle(redisClient xredis.Client, key string, interval time.Duration) *RedisThrottle {
	return &RedisThrottle{
		redisClient: redisClient,
		key:         common.RedisKeySchedulerTick(key),
		interval:    interval,
	}
}

func (t *RedisThrottle) Allow(ctx context.Context, now time.Time) (bool, error) {
	if t.interval <= 0 {
		return true, nil
	}

	return t.redisClient.SetNX(ctx, t.key, strconv.FormatInt(now.UnixMilli(), 10), t.interval)
}

// Throttled runs the wrapped ticker only when the throttle allows it.
type Throttled struct {
	ticker   Ticker
	throttle Throttle
}

func NewThrottled(ticker Ticker, throttle Throttle) *Throttled {
	return &Throttled{ticker: ticker, throttle: throttle}
}

func (t *Throttled) Tick(ctx context.Context, now time.Time) (*TickReport, error) {
	ok, err := t.throttle.Allow(ctx, now)
	if err != nil {
		return nil, err
	}

	if !ok {
		xcontext.Logger(ctx).Debugf("Tick at %s throttled", now.Format(time.RFC3339))
		return &TickReport{At: now, Throttled: true}, nil
	}

	return t.ticker.Tick(ctx, now)
}
