package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"barangayconnect/api/internal/models"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionStore tracks issued session handles. Expired rows are not swept;
// they are rejected at read time by the authenticator's expiry comparison.
type SessionStore interface {
	FindByHandle(ctx context.Context, handle string) (models.Session, error)
	Insert(ctx context.Context, session models.Session) error
	DeleteByHandle(ctx context.Context, handle string) (int64, error)
}

type mongoSessionStore struct {
	coll *mongo.Collection
}

func NewSessionStore(db *mongo.Database) SessionStore {
	return &mongoSessionStore{coll: db.Collection("user_sessions")}
}

func (s *mongoSessionStore) FindByHandle(ctx context.Context, handle string) (models.Session, error) {
	var session models.Session
	err := s.coll.FindOne(ctx, bson.M{"session_token": handle}).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Session{}, ErrSessionNotFound
		}
		return models.Session{}, err
	}
	return session, nil
}

func (s *mongoSessionStore) Insert(ctx context.Context, session models.Session) error {
	_, err := s.coll.InsertOne(ctx, session)
	return err
}

func (s *mongoSessionStore) DeleteByHandle(ctx context.Context, handle string) (int64, error) {
	res, err := s.coll.DeleteOne(ctx, bson.M{"session_token": handle})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
