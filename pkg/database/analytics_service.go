// Package database provides the analytics service for dashboard counters.
package database

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/PancyStudios/PancyAdminGo/pkg/logger"
	"github.com/PancyStudios/PancyAdminGo/pkg/models"
	"github.com/google/uuid"
)

var ErrAnalyticsManagerNotInitialized = errors.New("analytics data manager not initialized")

// analyticsState holds the in-memory counters and the pending event batch
type analyticsState struct {
	counters map[string]int64
	queue    []*models.AnalyticsEvent
	mu       sync.Mutex
	ticker   *time.Ticker
	done     chan bool
	stopOnce sync.Once
}

var analytics = &analyticsState{
	counters: make(map[string]int64),
	done:     make(chan bool),
}

const analyticsFlushInterval = 30 * time.Second

// AutoModCounterKey builds the metric key for a rule/guild counter
func AutoModCounterKey(ruleName, guildID string) string {
	return fmt.Sprintf("automod:%s:%s", guildID, ruleName)
}

// TrackAutoMod registers an automod event: increments the in-memory counter for
// the rule/guild pair and queues the event for the next batch write.
// Eventual consistency is acceptable here; the dashboard reads aggregates.
func TrackAutoMod(ruleName, userID, guildID, event string) {
	TrackEvent(&models.AnalyticsEvent{
		Type:    "automod",
		Event:   event,
		GuildID: guildID,
		UserID:  userID,
		Data:    map[string]string{"rule": ruleName},
	})

	IncrementCounter(AutoModCounterKey(ruleName, guildID))
	logger.Automod(ruleName, userID, guildID, event)
}

// TrackEvent queues an analytics event for batch persistence
func TrackEvent(event *models.AnalyticsEvent) {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.Timestamp == 0 {
		event.Timestamp = time.Now().UnixMilli()
	}

	analytics.mu.Lock()
	analytics.queue = append(analytics.queue, event)
	analytics.mu.Unlock()
}

// IncrementCounter increments an in-memory metric counter
func IncrementCounter(key string) {
	analytics.mu.Lock()
	analytics.counters[key]++
	analytics.mu.Unlock()
}

// CounterValue returns the current value of an in-memory counter
func CounterValue(key string) int64 {
	analytics.mu.Lock()
	defer analytics.mu.Unlock()
	return analytics.counters[key]
}

// CounterSnapshot returns a copy of all in-memory counters
func CounterSnapshot() map[string]int64 {
	analytics.mu.Lock()
	defer analytics.mu.Unlock()

	snapshot := make(map[string]int64, len(analytics.counters))
	for k, v := range analytics.counters {
		snapshot[k] = v
	}
	return snapshot
}

// StartAnalyticsFlush starts a goroutine that flushes queued events every 30 seconds
func StartAnalyticsFlush() {
	analytics.ticker = time.NewTicker(analyticsFlushInterval)

	go func() {
		for {
			select {
			case <-analytics.done:
				return
			case <-analytics.ticker.C:
				if err := FlushAnalytics(); err != nil {
					logger.Error("Error en flush de analytics: "+err.Error(), "Analytics")
				}
			}
		}
	}()

	logger.System("Servicio de analytics iniciado (flush cada 30 segundos)", "Analytics")
}

// StopAnalyticsFlush stops the flush goroutine and writes any pending events
func StopAnalyticsFlush() {
	analytics.stopOnce.Do(func() {
		if analytics.ticker != nil {
			analytics.ticker.Stop()
		}
		close(analytics.done)
	})
	if err := FlushAnalytics(); err != nil {
		logger.Warn("Eventos de analytics pendientes no pudieron escribirse: "+err.Error(), "Analytics")
	}
}

// FlushAnalytics writes all queued events to the database
func FlushAnalytics() error {
	if GlobalAnalyticsDM == nil {
		return ErrAnalyticsManagerNotInitialized
	}

	analytics.mu.Lock()
	if len(analytics.queue) == 0 {
		analytics.mu.Unlock()
		return nil
	}
	batch := analytics.queue
	analytics.queue = nil
	analytics.mu.Unlock()

	dm := GlobalAnalyticsDM
	if !dm.dbInstance.Connected() || dm.collection == nil {
		// Put the batch back; the next flush retries
		analytics.mu.Lock()
		analytics.queue = append(batch, analytics.queue...)
		analytics.mu.Unlock()
		return ErrStoreUnavailable
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	docs := make([]interface{}, len(batch))
	for i, event := range batch {
		docs[i] = event
	}

	if _, err := dm.collection.InsertMany(ctx, docs); err != nil {
		return err
	}

	logger.Debug(fmt.Sprintf("Analytics: %d eventos escritos", len(batch)), "Analytics")
	return nil
}

// resetAnalyticsForTesting clears counters and queue.
// This function should only be called from test code.
func resetAnalyticsForTesting() {
	analytics.mu.Lock()
	defer analytics.mu.Unlock()
	analytics.counters = make(map[string]int64)
	analytics.queue = nil
}
