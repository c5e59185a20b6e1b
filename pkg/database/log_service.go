package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/PancyStudios/PancyAdminGo/pkg/logger"
	"github.com/PancyStudios/PancyAdminGo/pkg/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrLogManagerNotInitialized = errors.New("log data manager not initialized")

func getLogManager() (*DataManager[models.LogRecord], error) {
	if GlobalLogDM == nil {
		return nil, ErrLogManagerNotInitialized
	}
	return GlobalLogDM, nil
}

// AppendLog writes a log record. Failures are logged locally and never retried;
// the caller treats this as fire-and-forget.
func AppendLog(record *models.LogRecord) error {
	dm, err := getLogManager()
	if err != nil {
		return err
	}

	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.Timestamp == 0 {
		record.Timestamp = time.Now().UnixMilli()
	}

	if !dm.dbInstance.Connected() || dm.collection == nil {
		logger.Warn("DB offline. Encolando registro de log.", "LogService")
		dm.dbInstance.AddToWriteQueue(QueuedOperation{
			CollectionName: "logs",
			Query:          bson.M{"_id": record.ID},
			Operation:      "set",
			Data:           record,
		})
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err = dm.collection.InsertOne(ctx, record)
	if err != nil {
		logger.Error(fmt.Sprintf("Error escribiendo log: %v", err), "LogService")
	}
	return err
}

// GetRecentLogs returns the newest log records for a guild, filtered by type
// when logType is non-empty
func GetRecentLogs(guildID, logType string, limit int64) ([]*models.LogRecord, error) {
	dm, err := getLogManager()
	if err != nil {
		return nil, err
	}

	if !dm.dbInstance.Connected() || dm.collection == nil {
		return nil, ErrStoreUnavailable
	}

	query := bson.M{"guildId": guildID}
	if logType != "" {
		query["type"] = logType
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit)

	cursor, err := dm.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cursor.Close(ctx) }()

	var records []*models.LogRecord
	for cursor.Next(ctx) {
		var record models.LogRecord
		if err := cursor.Decode(&record); err != nil {
			continue
		}
		records = append(records, &record)
	}

	return records, cursor.Err()
}

// GetUserLogs returns the newest log records for a user in a guild, filtered
// by type when logType is non-empty
func GetUserLogs(guildID, userID, logType string, limit int64) ([]*models.LogRecord, error) {
	dm, err := getLogManager()
	if err != nil {
		return nil, err
	}

	if !dm.dbInstance.Connected() || dm.collection == nil {
		return nil, ErrStoreUnavailable
	}

	query := bson.M{"guildId": guildID, "userId": userID}
	if logType != "" {
		query["type"] = logType
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit)

	cursor, err := dm.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cursor.Close(ctx) }()

	var records []*models.LogRecord
	for cursor.Next(ctx) {
		var record models.LogRecord
		if err := cursor.Decode(&record); err != nil {
			continue
		}
		records = append(records, &record)
	}

	return records, cursor.Err()
}

// DeleteLog removes a log record by ID. Returns true when a record was deleted.
func DeleteLog(id string) (bool, error) {
	dm, err := getLogManager()
	if err != nil {
		return false, err
	}

	if !dm.dbInstance.Connected() || dm.collection == nil {
		return false, ErrStoreUnavailable
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := dm.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
