package api

import (
	"sync/atomic"
	"testing"
	"time"

	"slate-api/domain"
)

func TestNextTimestampStrictlyIncreases(t *testing.T) {
	t.Cleanup(func() {
		atomic.StoreInt64(&lastTimestamp, 0)
	})
	// Pin the counter ahead of the clock so consecutive calls exercise the
	// stall path.
	atomic.StoreInt64(&lastTimestamp, time.Now().Add(time.Second).UnixNano())

	first := nextTimestamp()
	second := nextTimestamp()
	if second-first != 1 {
		t.Fatalf("expected timestamps to increment by 1, got first=%d second=%d", first, second)
	}
}

func TestFinalizeCommandsAssignsKeysAndTimestamps(t *testing.T) {
	cmds := []domain.Command{
		{EntityType: domain.EntityTask, Type: domain.CommandCreate},
		{IdempotencyKey: "known", EntityType: domain.EntityTask, Type: domain.CommandUpdate},
	}

	keys := finalizeCommands(cmds)

	if len(keys) != len(cmds) {
		t.Fatalf("expected %d keys, got %d", len(cmds), len(keys))
	}
	if keys[0] == "" {
		t.Fatal("expected a generated key for the first command")
	}
	if keys[1] != "known" {
		t.Fatalf("expected existing key to be preserved, got %q", keys[1])
	}
	for i, cmd := range cmds {
		if cmd.ID != keys[i] {
			t.Fatalf("command %d: id %q does not mirror key %q", i, cmd.ID, keys[i])
		}
		if cmd.Timestamp == 0 {
			t.Fatalf("command %d: missing timestamp", i)
		}
	}
	if cmds[1].Timestamp <= cmds[0].Timestamp {
		t.Fatalf("expected increasing timestamps, got %d then %d", cmds[0].Timestamp, cmds[1].Timestamp)
	}
}
