package authstore

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/notavoz/notavoz/domain/repositories"
)

// MongoStore keeps the authorized user set in MongoDB, for deployments
// that need the set to survive redeploys.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
	password   string
	logger     *zap.Logger
}

var _ repositories.Authorizer = (*MongoStore)(nil)

type authorizedUser struct {
	UserID       int64     `bson:"user_id"`
	AuthorizedAt time.Time `bson:"authorized_at"`
}

// NewMongoStore connects to MongoDB using MONGODB_URI and
// MONGODB_DATABASE from the environment.
func NewMongoStore(ctx context.Context, password string, logger *zap.Logger) (*MongoStore, error) {
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("MONGODB_DATABASE")
	if dbName == "" {
		dbName = "notavoz"
	}

	clientOptions := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(10).
		SetMinPoolSize(1).
		SetMaxConnIdleTime(30 * time.Minute).
		SetServerSelectionTimeout(5 * time.Second).
		SetConnectTimeout(10 * time.Second)

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	logger.Info("connected to mongodb", zap.String("database", dbName))

	return &MongoStore{
		client:     client,
		collection: client.Database(dbName).Collection("authorized_users"),
		password:   password,
		logger:     logger,
	}, nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// IsAuthorized reports whether userID already authenticated.
func (s *MongoStore) IsAuthorized(ctx context.Context, userID int64) (bool, error) {
	err := s.collection.FindOne(ctx, bson.M{"user_id": userID}).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, fmt.Errorf("lookup authorized user: %w", err)
	}
	return true, nil
}

// Authenticate compares password in constant time and, on success,
// upserts userID as authorized.
func (s *MongoStore) Authenticate(ctx context.Context, userID int64, password string) (bool, error) {
	provided := strings.TrimSpace(password)
	if subtle.ConstantTimeCompare([]byte(provided), []byte(s.password)) != 1 {
		return false, nil
	}

	_, err := s.collection.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$setOnInsert": authorizedUser{UserID: userID, AuthorizedAt: time.Now()}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return false, fmt.Errorf("save authorized user: %w", err)
	}
	return true, nil
}

// Revoke removes userID from the authorized set.
func (s *MongoStore) Revoke(ctx context.Context, userID int64) (bool, error) {
	result, err := s.collection.DeleteOne(ctx, bson.M{"user_id": userID})
	if err != nil {
		return false, fmt.Errorf("revoke authorized user: %w", err)
	}
	return result.DeletedCount > 0, nil
}
