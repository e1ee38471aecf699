package api

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"slate-api/domain"
)

var lastTimestamp int64

// nextTimestamp returns a strictly increasing nanosecond timestamp even when
// the clock stalls or steps backwards.
func nextTimestamp() int64 {
	for {
		now := time.Now().UnixNano()
		last := atomic.LoadInt64(&lastTimestamp)
		if now <= last {
			now = last + 1
		}
		if atomic.CompareAndSwapInt64(&lastTimestamp, last, now) {
			return now
		}
	}
}

// finalizeCommands stamps each command with an idempotency key (generating
// one when the client sent none), mirrors it into the id, and assigns
// monotonically increasing timestamps. It returns the keys in batch order.
func finalizeCommands(cmds []domain.Command) []string {
	keys := make([]string, len(cmds))
	for i := range cmds {
		if cmds[i].IdempotencyKey == "" {
			cmds[i].IdempotencyKey = uuid.NewString()
		}
		cmds[i].ID = cmds[i].IdempotencyKey
		cmds[i].Timestamp = nextTimestamp()
		keys[i] = cmds[i].IdempotencyKey
	}
	return keys
}
