package database

import (
	"context"
	"errors"
	"time"

	"github.com/PancyStudios/PancyAdminGo/pkg/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrTicketManagerNotInitialized = errors.New("ticket data manager not initialized")

func getTicketManager() (*DataManager[models.Ticket], error) {
	if GlobalTicketDM == nil {
		return nil, ErrTicketManagerNotInitialized
	}
	return GlobalTicketDM, nil
}

// GetTicket returns a single ticket by id
func GetTicket(id string) (*models.Ticket, error) {
	dm, err := getTicketManager()
	if err != nil {
		return nil, err
	}
	return dm.Get(bson.M{"_id": id})
}

// GetTickets returns the tickets of a guild, newest first, filtered by status
// when status is non-empty
func GetTickets(guildID string, status models.TicketStatus, limit int64) ([]*models.Ticket, error) {
	dm, err := getTicketManager()
	if err != nil {
		return nil, err
	}

	if !dm.dbInstance.Connected() || dm.collection == nil {
		return nil, ErrStoreUnavailable
	}

	query := bson.M{"guildId": guildID}
	if status != "" {
		query["status"] = status
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := dm.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cursor.Close(ctx) }()

	var tickets []*models.Ticket
	for cursor.Next(ctx) {
		var ticket models.Ticket
		if err := cursor.Decode(&ticket); err != nil {
			continue
		}
		tickets = append(tickets, &ticket)
	}

	return tickets, cursor.Err()
}

// CountTicketsByStatus returns the number of tickets of a guild per status
func CountTicketsByStatus(guildID string) (map[models.TicketStatus]int64, error) {
	dm, err := getTicketManager()
	if err != nil {
		return nil, err
	}

	if !dm.dbInstance.Connected() || dm.collection == nil {
		return nil, ErrStoreUnavailable
	}

	counts := make(map[models.TicketStatus]int64)
	statuses := []models.TicketStatus{
		models.TicketStatusOpen,
		models.TicketStatusClaimed,
		models.TicketStatusClosed,
		models.TicketStatusResolved,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, status := range statuses {
		n, err := dm.collection.CountDocuments(ctx, bson.M{"guildId": guildID, "status": status})
		if err != nil {
			return nil, err
		}
		counts[status] = n
	}

	return counts, nil
}
