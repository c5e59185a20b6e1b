package automod

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestRateStateConcurrentSameUser(t *testing.T) {
	state := NewRateState()

	// Racing messages from the same user must not lose updates
	const goroutines = 50
	var wg sync.WaitGroup
	wg.Add(goroutines)

	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			state.Bump("user-1", time.Minute, 1000)
		}()
	}
	wg.Wait()

	count, _ := state.Bump("user-1", time.Minute, 1000)
	if count != goroutines+1 {
		t.Errorf("count = %d, want %d", count, goroutines+1)
	}
}

func TestRateStateConcurrentDistinctUsers(t *testing.T) {
	state := NewRateState()

	const users = 100
	var wg sync.WaitGroup
	wg.Add(users)

	for i := 0; i < users; i++ {
		userID := fmt.Sprintf("user-%d", i)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				state.Bump(userID, time.Minute, 1000)
			}
		}()
	}
	wg.Wait()

	if got := state.Size(); got != users {
		t.Errorf("Size() = %d, want %d", got, users)
	}
}

func TestRateStateWindowExpiry(t *testing.T) {
	state := NewRateState()
	now := time.Now()
	setRateClock(state, &now)

	state.Bump("user-1", 10*time.Second, 5)
	state.Bump("user-1", 10*time.Second, 5)

	// Exactly at the window boundary the entry is still active
	now = now.Add(10 * time.Second)
	count, _ := state.Bump("user-1", 10*time.Second, 5)
	if count != 3 {
		t.Errorf("count at boundary = %d, want 3", count)
	}

	// Past the boundary the entry resets
	now = now.Add(10*time.Second + time.Millisecond)
	count, violated := state.Bump("user-1", 10*time.Second, 5)
	if count != 1 || violated {
		t.Errorf("after expiry got count=%d violated=%v, want 1 false", count, violated)
	}
}
