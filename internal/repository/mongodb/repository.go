package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/stockdesk/internal/domain/models"
)

// Repository defines the interface for report snapshot storage.
type Repository interface {
	SaveSnapshot(ctx context.Context, snapshot models.ReportSnapshot) error
	LatestSnapshot(ctx context.Context, kind string) (*models.ReportSnapshot, error)
}

// MongoDBRepository implements the Repository interface for MongoDB.
type MongoDBRepository struct {
	client   *mongo.Client
	dbName   string
	collName string
}

// NewMongoDBRepository creates a new MongoDB repository.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client:   client,
		dbName:   dbName,
		collName: "report_snapshots",
	}, nil
}

// SaveSnapshot stores one captured report.
func (r *MongoDBRepository) SaveSnapshot(ctx context.Context, snapshot models.ReportSnapshot) error {
	collection := r.client.Database(r.dbName).Collection(r.collName)
	if _, err := collection.InsertOne(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to insert report snapshot: %w", err)
	}
	return nil
}

// LatestSnapshot returns the most recent snapshot of a report kind, or nil
// when none was captured yet.
func (r *MongoDBRepository) LatestSnapshot(ctx context.Context, kind string) (*models.ReportSnapshot, error) {
	collection := r.client.Database(r.dbName).Collection(r.collName)
	opts := options.FindOne().SetSort(bson.D{{Key: "captured_at", Value: -1}})

	var snapshot models.ReportSnapshot
	err := collection.FindOne(ctx, bson.M{"kind": kind}, opts).Decode(&snapshot)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load report snapshot %s: %w", kind, err)
	}
	return &snapshot, nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
