// Package web - live violation feed over websocket.
// Panels subscribe to /api/ws/violations and receive every violation the
// moderation engine flags, as it happens.
package web

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/PancyStudios/PancyAdminGo/pkg/automod"
	"github.com/PancyStudios/PancyAdminGo/pkg/logger"
	"github.com/PancyStudios/PancyAdminGo/pkg/models"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// ViolationMessage is the JSON frame pushed to every feed subscriber
type ViolationMessage struct {
	GuildID     string `json:"guildId"`
	ChannelID   string `json:"channelId"`
	UserID      string `json:"userId"`
	UserTag     string `json:"userTag"`
	RuleName    string `json:"ruleName"`
	RuleType    string `json:"ruleType"`
	Description string `json:"description"`
	Timestamp   int64  `json:"timestamp"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// El middleware de hosts ya filtra los orígenes
	CheckOrigin: func(r *http.Request) bool { return true },
}

// violationFeed fans out violation messages to connected subscribers
type violationFeed struct {
	mu          sync.RWMutex
	subscribers map[*websocket.Conn]chan ViolationMessage
}

var feed = &violationFeed{
	subscribers: make(map[*websocket.Conn]chan ViolationMessage),
}

// Broadcast pushes a violation to every connected subscriber. Slow
// subscribers are skipped instead of blocking the engine.
func (f *violationFeed) Broadcast(msg ViolationMessage) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	for _, ch := range f.subscribers {
		select {
		case ch <- msg:
		default:
		}
	}
}

func (f *violationFeed) add(conn *websocket.Conn) chan ViolationMessage {
	ch := make(chan ViolationMessage, 16)
	f.mu.Lock()
	f.subscribers[conn] = ch
	count := len(f.subscribers)
	f.mu.Unlock()

	logger.Debug(fmt.Sprintf("Suscriptor conectado al feed de violaciones (%d activos)", count), "WebServer")
	return ch
}

func (f *violationFeed) remove(conn *websocket.Conn) {
	f.mu.Lock()
	if ch, ok := f.subscribers[conn]; ok {
		close(ch)
		delete(f.subscribers, conn)
	}
	count := len(f.subscribers)
	f.mu.Unlock()

	logger.Debug(fmt.Sprintf("Suscriptor desconectado del feed de violaciones (%d activos)", count), "WebServer")
}

// ViolationHook returns an engine hook that feeds the websocket broadcast.
// Wire it with engine.AddViolationHook at startup.
func ViolationHook() automod.ViolationHook {
	return func(msg *automod.Message, rule *models.AutoModRule, violation *automod.Violation) {
		feed.Broadcast(ViolationMessage{
			GuildID:     msg.GuildID,
			ChannelID:   msg.ChannelID,
			UserID:      msg.AuthorID,
			UserTag:     msg.AuthorTag,
			RuleName:    rule.Name,
			RuleType:    string(rule.Type),
			Description: violation.Description,
			Timestamp:   time.Now().UnixMilli(),
		})
	}
}

// violationsFeedHandler upgrades the connection and streams violations
func violationsFeedHandler(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Error(fmt.Sprintf("Error actualizando conexión websocket: %v", err), "WebServer")
		return
	}

	ch := feed.add(conn)

	// Drain reads so pings y closes se procesan
	go func() {
		defer feed.remove(conn)
		defer conn.Close()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	go func() {
		for msg := range ch {
			if err := conn.WriteJSON(msg); err != nil {
				conn.Close()
				return
			}
		}
	}()
}
