package database

import (
	"fmt"
	"sync"
	"testing"
)

func TestAutoModCounterKey(t *testing.T) {
	key := AutoModCounterKey("spam filter", "guild-1")
	want := "automod:guild-1:spam filter"
	if key != want {
		t.Errorf("AutoModCounterKey = %q, want %q", key, want)
	}
}

func TestIncrementCounter(t *testing.T) {
	resetAnalyticsForTesting()

	IncrementCounter("test:counter")
	IncrementCounter("test:counter")
	IncrementCounter("test:other")

	if got := CounterValue("test:counter"); got != 2 {
		t.Errorf("CounterValue(test:counter) = %d, want 2", got)
	}
	if got := CounterValue("test:other"); got != 1 {
		t.Errorf("CounterValue(test:other) = %d, want 1", got)
	}
	if got := CounterValue("test:missing"); got != 0 {
		t.Errorf("CounterValue(test:missing) = %d, want 0", got)
	}
}

func TestCounterSnapshotIsACopy(t *testing.T) {
	resetAnalyticsForTesting()

	IncrementCounter("snap:a")
	snapshot := CounterSnapshot()
	snapshot["snap:a"] = 99

	if got := CounterValue("snap:a"); got != 1 {
		t.Errorf("mutating the snapshot changed the live counter: got %d, want 1", got)
	}
}

func TestTrackAutoModIncrementsCounter(t *testing.T) {
	resetAnalyticsForTesting()

	TrackAutoMod("caps filter", "user-1", "guild-1", "violation_detected")
	TrackAutoMod("caps filter", "user-2", "guild-1", "violation_detected")

	if got := CounterValue(AutoModCounterKey("caps filter", "guild-1")); got != 2 {
		t.Errorf("counter after two events = %d, want 2", got)
	}
}

func TestTrackEventAssignsIDAndTimestamp(t *testing.T) {
	resetAnalyticsForTesting()

	TrackAutoMod("spam filter", "user-1", "guild-1", "violation_detected")

	analytics.mu.Lock()
	defer analytics.mu.Unlock()

	if len(analytics.queue) != 1 {
		t.Fatalf("queue length = %d, want 1", len(analytics.queue))
	}
	event := analytics.queue[0]
	if event.ID == "" {
		t.Error("queued event has empty ID")
	}
	if event.Timestamp == 0 {
		t.Error("queued event has zero timestamp")
	}
	if event.Data["rule"] != "spam filter" {
		t.Errorf("event rule = %q, want %q", event.Data["rule"], "spam filter")
	}
}

func TestCountersConcurrentAccess(t *testing.T) {
	resetAnalyticsForTesting()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				IncrementCounter(fmt.Sprintf("concurrent:%d", n%2))
			}
		}(i)
	}
	wg.Wait()

	total := CounterValue("concurrent:0") + CounterValue("concurrent:1")
	if total != 1000 {
		t.Errorf("total increments = %d, want 1000", total)
	}
}

func TestFlushAnalyticsWithoutManager(t *testing.T) {
	resetAnalyticsForTesting()

	saved := GlobalAnalyticsDM
	GlobalAnalyticsDM = nil
	defer func() { GlobalAnalyticsDM = saved }()

	if err := FlushAnalytics(); err != ErrAnalyticsManagerNotInitialized {
		t.Errorf("FlushAnalytics without manager = %v, want ErrAnalyticsManagerNotInitialized", err)
	}
}
