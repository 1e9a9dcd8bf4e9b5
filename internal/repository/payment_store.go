package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"barangayconnect/api/internal/models"
)

var ErrPaymentNotFound = errors.New("payment not found")

type PaymentStore interface {
	Insert(ctx context.Context, payment models.Payment) error
	FindForUser(ctx context.Context, paymentID, userID string) (models.Payment, error)
	ListByUser(ctx context.Context, userID string, limit int64) ([]models.Payment, error)
	UpdateFields(ctx context.Context, paymentID string, fields bson.M) error
	SettleByTransaction(ctx context.Context, transactionID string, status models.PaymentStatus) (models.Payment, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status models.PaymentStatus) (int64, error)
	SumByStatus(ctx context.Context, status models.PaymentStatus) (float64, error)
}

type mongoPaymentStore struct {
	coll *mongo.Collection
}

func NewPaymentStore(db *mongo.Database) PaymentStore {
	return &mongoPaymentStore{coll: db.Collection("payments")}
}

func (s *mongoPaymentStore) Insert(ctx context.Context, payment models.Payment) error {
	_, err := s.coll.InsertOne(ctx, payment)
	return err
}

func (s *mongoPaymentStore) FindForUser(ctx context.Context, paymentID, userID string) (models.Payment, error) {
	var payment models.Payment
	err := s.coll.FindOne(ctx, bson.M{"payment_id": paymentID, "user_id": userID}).Decode(&payment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Payment{}, ErrPaymentNotFound
		}
		return models.Payment{}, err
	}
	return payment, nil
}

func (s *mongoPaymentStore) ListByUser(ctx context.Context, userID string, limit int64) ([]models.Payment, error) {
	cursor, err := s.coll.Find(ctx, bson.M{"user_id": userID}, options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var payments []models.Payment
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

func (s *mongoPaymentStore) UpdateFields(ctx context.Context, paymentID string, fields bson.M) error {
	fields["updated_at"] = time.Now().UTC()
	res, err := s.coll.UpdateOne(ctx, bson.M{"payment_id": paymentID}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

// SettleByTransaction flips the payment matching a provider transaction id to
// the given status and returns the updated document.
func (s *mongoPaymentStore) SettleByTransaction(ctx context.Context, transactionID string, status models.PaymentStatus) (models.Payment, error) {
	var payment models.Payment
	err := s.coll.FindOneAndUpdate(ctx,
		bson.M{"transaction_id": transactionID},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&payment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Payment{}, ErrPaymentNotFound
		}
		return models.Payment{}, err
	}
	return payment, nil
}

func (s *mongoPaymentStore) Count(ctx context.Context) (int64, error) {
	return s.coll.CountDocuments(ctx, bson.M{})
}

func (s *mongoPaymentStore) CountByStatus(ctx context.Context, status models.PaymentStatus) (int64, error) {
	return s.coll.CountDocuments(ctx, bson.M{"status": status})
}

func (s *mongoPaymentStore) SumByStatus(ctx context.Context, status models.PaymentStatus) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": status}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$amount"}}}},
	}

	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}
