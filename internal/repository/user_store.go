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

var ErrUserNotFound = errors.New("user not found")

// UserStore is the credential store boundary the authenticator depends on.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByID(ctx context.Context, userID string) (models.User, error)
	Insert(ctx context.Context, user models.User) error
	UpdateFields(ctx context.Context, userID string, fields bson.M) error
	List(ctx context.Context, limit int64) ([]models.User, error)
	Count(ctx context.Context) (int64, error)
}

type mongoUserStore struct {
	coll *mongo.Collection
}

func NewUserStore(db *mongo.Database) UserStore {
	coll := db.Collection("users")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Email uniqueness is enforced at the store as well as in the service.
	_, _ = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})

	return &mongoUserStore{coll: coll}
}

func (s *mongoUserStore) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := s.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (s *mongoUserStore) FindByID(ctx context.Context, userID string) (models.User, error) {
	var user models.User
	err := s.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (s *mongoUserStore) Insert(ctx context.Context, user models.User) error {
	_, err := s.coll.InsertOne(ctx, user)
	return err
}

func (s *mongoUserStore) UpdateFields(ctx context.Context, userID string, fields bson.M) error {
	fields["updated_at"] = time.Now().UTC()
	res, err := s.coll.UpdateOne(ctx, bson.M{"user_id": userID}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *mongoUserStore) List(ctx context.Context, limit int64) ([]models.User, error) {
	cursor, err := s.coll.Find(ctx, bson.M{}, options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *mongoUserStore) Count(ctx context.Context) (int64, error) {
	return s.coll.CountDocuments(ctx, bson.M{})
}
