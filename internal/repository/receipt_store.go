package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"barangayconnect/api/internal/models"
)

type ReceiptStore interface {
	Insert(ctx context.Context, receipt models.Receipt) error
	ListByUser(ctx context.Context, userID string, limit int64) ([]models.Receipt, error)
}

type mongoReceiptStore struct {
	coll *mongo.Collection
}

func NewReceiptStore(db *mongo.Database) ReceiptStore {
	return &mongoReceiptStore{coll: db.Collection("receipts")}
}

func (s *mongoReceiptStore) Insert(ctx context.Context, receipt models.Receipt) error {
	_, err := s.coll.InsertOne(ctx, receipt)
	return err
}

func (s *mongoReceiptStore) ListByUser(ctx context.Context, userID string, limit int64) ([]models.Receipt, error) {
	cursor, err := s.coll.Find(ctx, bson.M{"user_id": userID}, options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var receipts []models.Receipt
	if err := cursor.All(ctx, &receipts); err != nil {
		return nil, err
	}
	return receipts, nil
}
