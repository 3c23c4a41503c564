package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// ErrTooEarly means a completion arrived before the minimum dwell elapsed.
var ErrTooEarly = errors.New("minimum view time not elapsed")

// dwellCommands is the slice of the redis API the tracker issues.
// *redis.Client satisfies it.
type dwellCommands interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	GetDel(ctx context.Context, key string) *redis.StringCmd
}

// DwellTracker records when a user started viewing an ad and enforces the
// minimum dwell server-side. The client-side timer remains the primary UX
// control; this closes the gap for modified clients. Without Redis the check
// fails open, same stance as the rate limiter.
type DwellTracker struct {
	rdb      dwellCommands
	minDwell time.Duration
	now      func() time.Time
}

func NewDwellTracker(addr, password string, db int, minDwell time.Duration) *DwellTracker {
	t := &DwellTracker{minDwell: minDwell, now: time.Now}
	if addr == "" {
		return t
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		// keep the server available when redis is down
		return t
	}
	t.rdb = rdb
	return t
}

// MinDwell returns the configured minimum view time.
func (t *DwellTracker) MinDwell() time.Duration {
	return t.minDwell
}

// MarkViewing stamps the start of a view. The stamp outlives any plausible
// session by a wide margin and then expires on its own.
func (t *DwellTracker) MarkViewing(ctx context.Context, userID, adID int64) error {
	if t.rdb == nil {
		return nil
	}
	key := dwellKey(userID, adID)
	return t.rdb.Set(ctx, key, t.now().UnixMilli(), time.Hour).Err()
}

// CheckElapsed verifies the minimum dwell has passed since the matching
// MarkViewing. A missing stamp passes (fail-open); a fresh stamp younger than
// the minimum returns ErrTooEarly. The stamp is consumed either way so one
// view cannot cover two completions.
func (t *DwellTracker) CheckElapsed(ctx context.Context, userID, adID int64) error {
	if t.rdb == nil {
		return nil
	}
	key := dwellKey(userID, adID)

	val, err := t.rdb.GetDel(ctx, key).Result()
	if err != nil {
		// redis error or no stamp: fail open
		return nil
	}

	startedMilli, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return nil
	}

	if t.now().Sub(time.UnixMilli(startedMilli)) < t.minDwell {
		return ErrTooEarly
	}
	return nil
}

func dwellKey(userID, adID int64) string {
	return "dwell:" + strconv.FormatInt(userID, 10) + ":" + strconv.FormatInt(adID, 10)
}
