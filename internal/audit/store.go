// Package audit records per-request analysis metadata for monitoring.
// Only metadata is stored: document text and analysis text never leave
// the request scope.
package audit

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/ebookshotmart2708-a11y/GREENLOGISTICS-AI/internal/config"
	"github.com/ebookshotmart2708-a11y/GREENLOGISTICS-AI/internal/logger"
)

// Entry is one logged analysis request
type Entry struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RequestID  string             `bson:"request_id" json:"request_id"`
	Endpoint   string             `bson:"endpoint" json:"endpoint"`
	Mode       string             `bson:"mode,omitempty" json:"mode,omitempty"`
	Language   string             `bson:"language,omitempty" json:"language,omitempty"`
	CharCount  int                `bson:"char_count,omitempty" json:"char_count,omitempty"`
	StatusCode int                `bson:"status_code" json:"status_code"`
	ErrorType  string             `bson:"error_type,omitempty" json:"error_type,omitempty"`
	DurationMs int64              `bson:"duration_ms" json:"duration_ms"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
}

// Store writes audit entries to MongoDB. A nil *Store is valid and drops
// all writes, which is how the service runs when MONGODB_URI is unset.
type Store struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewStore connects to MongoDB when audit logging is configured. It
// returns (nil, nil) when it is not: audit logging is optional and its
// absence is not an error.
func NewStore(cfg config.AuditConfig) (*Store, error) {
	if !cfg.Enabled() {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(cfg.MongoURI).SetAppName(config.ServiceName)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, err
	}

	store := &Store{
		client:     client,
		collection: client.Database(cfg.DatabaseName).Collection(cfg.Collection),
	}

	if err := store.createIndexes(ctx); err != nil {
		// The store still works without indexes, just slower
		logger.Warn(ctx, "Failed to create audit indexes",
			"component", "AuditStore",
			"error", err,
		)
	}

	logger.Info(ctx, "Audit store connected",
		"component", "AuditStore",
		"database", cfg.DatabaseName,
		"collection", cfg.Collection,
	)

	return store, nil
}

// Record inserts one audit entry. Failures are logged and swallowed:
// auditing must never fail a request.
func (s *Store) Record(ctx context.Context, entry Entry) {
	if s == nil {
		return
	}

	entry.CreatedAt = time.Now().UTC()

	insertCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := s.collection.InsertOne(insertCtx, entry); err != nil {
		logger.Warn(ctx, "Failed to record audit entry",
			"component", "AuditStore",
			"request_id", entry.RequestID,
			"error", err,
		)
	}
}

// HealthCheck pings the underlying connection
func (s *Store) HealthCheck(ctx context.Context) error {
	if s == nil {
		return nil
	}

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	return s.client.Ping(pingCtx, readpref.Primary())
}

// Close disconnects from MongoDB
func (s *Store) Close() error {
	if s == nil || s.client == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.client.Disconnect(ctx)
}

// createIndexes creates the indexes used by monitoring queries
func (s *Store) createIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("created_at_desc"),
		},
		{
			Keys:    bson.D{{Key: "request_id", Value: 1}},
			Options: options.Index().SetName("request_id"),
		},
		{
			Keys:    bson.D{{Key: "mode", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("mode_created_at_desc"),
		},
	}

	_, err := s.collection.Indexes().CreateMany(ctx, indexes)
	return err
}
