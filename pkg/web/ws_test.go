package web

import (
	"testing"

	"github.com/PancyStudios/PancyAdminGo/pkg/automod"
	"github.com/PancyStudios/PancyAdminGo/pkg/models"
	"github.com/gorilla/websocket"
)

func TestFeedBroadcastDelivers(t *testing.T) {
	f := &violationFeed{subscribers: make(map[*websocket.Conn]chan ViolationMessage)}

	conn := &websocket.Conn{}
	ch := f.add(conn)
	defer f.remove(conn)

	f.Broadcast(ViolationMessage{GuildID: "guild-1", RuleName: "spam filter"})

	select {
	case msg := <-ch:
		if msg.GuildID != "guild-1" || msg.RuleName != "spam filter" {
			t.Errorf("unexpected message: %+v", msg)
		}
	default:
		t.Fatal("no message delivered to subscriber")
	}
}

func TestFeedBroadcastSkipsSlowSubscriber(t *testing.T) {
	f := &violationFeed{subscribers: make(map[*websocket.Conn]chan ViolationMessage)}

	conn := &websocket.Conn{}
	ch := f.add(conn)
	defer f.remove(conn)

	// Fill the buffer and then some; Broadcast must never block
	for i := 0; i < 40; i++ {
		f.Broadcast(ViolationMessage{GuildID: "guild-1"})
	}

	if len(ch) != cap(ch) {
		t.Errorf("channel length = %d, want full buffer %d", len(ch), cap(ch))
	}
}

func TestFeedRemoveClosesChannel(t *testing.T) {
	f := &violationFeed{subscribers: make(map[*websocket.Conn]chan ViolationMessage)}

	conn := &websocket.Conn{}
	ch := f.add(conn)
	f.remove(conn)

	if _, open := <-ch; open {
		t.Error("channel still open after remove")
	}

	// Removing twice must not panic
	f.remove(conn)
}

func TestViolationHookFeedsBroadcast(t *testing.T) {
	saved := feed
	feed = &violationFeed{subscribers: make(map[*websocket.Conn]chan ViolationMessage)}
	defer func() { feed = saved }()

	conn := &websocket.Conn{}
	ch := feed.add(conn)
	defer feed.remove(conn)

	hook := ViolationHook()
	msg := &automod.Message{
		GuildID:   "guild-1",
		ChannelID: "chan-1",
		AuthorID:  "user-1",
		AuthorTag: "user#0001",
	}
	rule := &models.AutoModRule{Name: "caps filter", Type: models.RuleTypeCaps}
	violation := &automod.Violation{RuleID: "r1", Description: "Excessive caps: 90.0% (limit: 70%)"}

	hook(msg, rule, violation)

	select {
	case got := <-ch:
		if got.RuleType != "caps" {
			t.Errorf("RuleType = %q, want %q", got.RuleType, "caps")
		}
		if got.UserTag != "user#0001" {
			t.Errorf("UserTag = %q, want %q", got.UserTag, "user#0001")
		}
		if got.Timestamp == 0 {
			t.Error("Timestamp not set")
		}
	default:
		t.Fatal("hook did not broadcast")
	}
}
