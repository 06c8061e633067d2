package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"l1board/config"
	"l1board/models"
)

type MongoDBService struct {
	client  *mongo.Client
	db      *mongo.Database
	enabled bool
}

const (
	CollectionAlertRules  = "alert_rules"
	CollectionAlertEvents = "alert_events"
)

func NewMongoDBService(cfg *config.Config) (*MongoDBService, error) {
	if !cfg.MongoDB.Enabled {
		log.Println("MongoDB is disabled in configuration")
		return &MongoDBService{enabled: false}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(cfg.MongoDB.URI)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	db := client.Database(cfg.MongoDB.Database)

	service := &MongoDBService{
		client:  client,
		db:      db,
		enabled: true,
	}

	if err := service.createIndexes(ctx); err != nil {
		log.Printf("Warning: Failed to create indexes: %v", err)
	}

	log.Printf("MongoDB connected successfully to database: %s", cfg.MongoDB.Database)
	return service, nil
}

func (m *MongoDBService) createIndexes(ctx context.Context) error {
	if !m.enabled {
		return nil
	}

	// Rules are looked up per address on every commit
	_, err := m.db.Collection(CollectionAlertRules).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "address", Value: 1}},
		Options: options.Index().SetName("address"),
	})
	if err != nil {
		return err
	}

	// Events are listed most-recent-first
	_, err = m.db.Collection(CollectionAlertEvents).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "timestamp", Value: -1}},
		Options: options.Index().SetName("timestamp_desc"),
	})
	return err
}

func (m *MongoDBService) Enabled() bool {
	return m != nil && m.enabled
}

func (m *MongoDBService) Close() error {
	if !m.Enabled() || m.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return m.client.Disconnect(ctx)
}

func (m *MongoDBService) InsertAlertRule(ctx context.Context, rule *models.AlertRule) error {
	if !m.Enabled() {
		return nil
	}
	_, err := m.db.Collection(CollectionAlertRules).InsertOne(ctx, rule)
	return err
}

func (m *MongoDBService) UpdateAlertRule(ctx context.Context, rule *models.AlertRule) error {
	if !m.Enabled() {
		return nil
	}
	_, err := m.db.Collection(CollectionAlertRules).ReplaceOne(
		ctx,
		bson.M{"_id": rule.ID},
		rule,
		options.Replace().SetUpsert(true),
	)
	return err
}

func (m *MongoDBService) DeleteAlertRule(ctx context.Context, ruleID string) error {
	if !m.Enabled() {
		return nil
	}
	_, err := m.db.Collection(CollectionAlertRules).DeleteOne(ctx, bson.M{"_id": ruleID})
	return err
}

func (m *MongoDBService) ListAlertRules(ctx context.Context) ([]*models.AlertRule, error) {
	if !m.Enabled() {
		return nil, nil
	}

	cursor, err := m.db.Collection(CollectionAlertRules).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rules []*models.AlertRule
	if err := cursor.All(ctx, &rules); err != nil {
		return nil, err
	}
	return rules, nil
}

func (m *MongoDBService) InsertAlertEvent(ctx context.Context, event *models.AlertEvent) error {
	if !m.Enabled() {
		return nil
	}
	_, err := m.db.Collection(CollectionAlertEvents).InsertOne(ctx, event)
	return err
}

func (m *MongoDBService) ListAlertEvents(ctx context.Context, limit int64) ([]*models.AlertEvent, error) {
	if !m.Enabled() {
		return nil, nil
	}
	if limit <= 0 {
		limit = 100
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit)

	cursor, err := m.db.Collection(CollectionAlertEvents).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []*models.AlertEvent
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}
