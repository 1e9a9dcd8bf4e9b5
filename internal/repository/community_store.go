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

var (
	ErrEventNotFound      = errors.New("event not found")
	ErrDiscussionNotFound = errors.New("discussion not found")
)

type AnnouncementStore interface {
	Insert(ctx context.Context, a models.Announcement) error
	List(ctx context.Context, limit int64) ([]models.Announcement, error)
}

type DocumentStore interface {
	Insert(ctx context.Context, d models.Document) error
	List(ctx context.Context, category string, limit int64) ([]models.Document, error)
}

type EventStore interface {
	Insert(ctx context.Context, e models.Event) error
	FindByID(ctx context.Context, eventID string) (models.Event, error)
	List(ctx context.Context, limit int64) ([]models.Event, error)
	AddAttendee(ctx context.Context, eventID, userID string) error
}

type DiscussionStore interface {
	Insert(ctx context.Context, d models.Discussion) error
	List(ctx context.Context, category string, limit int64) ([]models.Discussion, error)
	PushReply(ctx context.Context, discussionID string, reply models.Reply) error
}

type NotificationStore interface {
	Insert(ctx context.Context, n models.Notification) error
	ListByRecipient(ctx context.Context, userID string, limit int64) ([]models.Notification, error)
	MarkRead(ctx context.Context, notificationID, userID string) error
}

func listSorted[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, sort bson.D, limit int64) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, options.Find().SetSort(sort).SetLimit(limit))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []T
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

type mongoAnnouncementStore struct{ coll *mongo.Collection }

func NewAnnouncementStore(db *mongo.Database) AnnouncementStore {
	return &mongoAnnouncementStore{coll: db.Collection("announcements")}
}

func (s *mongoAnnouncementStore) Insert(ctx context.Context, a models.Announcement) error {
	_, err := s.coll.InsertOne(ctx, a)
	return err
}

func (s *mongoAnnouncementStore) List(ctx context.Context, limit int64) ([]models.Announcement, error) {
	return listSorted[models.Announcement](ctx, s.coll, bson.M{}, bson.D{{Key: "created_at", Value: -1}}, limit)
}

type mongoDocumentStore struct{ coll *mongo.Collection }

func NewDocumentStore(db *mongo.Database) DocumentStore {
	return &mongoDocumentStore{coll: db.Collection("documents")}
}

func (s *mongoDocumentStore) Insert(ctx context.Context, d models.Document) error {
	_, err := s.coll.InsertOne(ctx, d)
	return err
}

func (s *mongoDocumentStore) List(ctx context.Context, category string, limit int64) ([]models.Document, error) {
	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}
	return listSorted[models.Document](ctx, s.coll, filter, bson.D{{Key: "created_at", Value: -1}}, limit)
}

type mongoEventStore struct{ coll *mongo.Collection }

func NewEventStore(db *mongo.Database) EventStore {
	return &mongoEventStore{coll: db.Collection("events")}
}

func (s *mongoEventStore) Insert(ctx context.Context, e models.Event) error {
	_, err := s.coll.InsertOne(ctx, e)
	return err
}

func (s *mongoEventStore) FindByID(ctx context.Context, eventID string) (models.Event, error) {
	var event models.Event
	err := s.coll.FindOne(ctx, bson.M{"event_id": eventID}).Decode(&event)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Event{}, ErrEventNotFound
		}
		return models.Event{}, err
	}
	return event, nil
}

func (s *mongoEventStore) List(ctx context.Context, limit int64) ([]models.Event, error) {
	return listSorted[models.Event](ctx, s.coll, bson.M{}, bson.D{{Key: "event_date", Value: 1}}, limit)
}

func (s *mongoEventStore) AddAttendee(ctx context.Context, eventID, userID string) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"event_id": eventID},
		bson.M{"$push": bson.M{"attendees": userID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrEventNotFound
	}
	return nil
}

type mongoDiscussionStore struct{ coll *mongo.Collection }

func NewDiscussionStore(db *mongo.Database) DiscussionStore {
	return &mongoDiscussionStore{coll: db.Collection("discussions")}
}

func (s *mongoDiscussionStore) Insert(ctx context.Context, d models.Discussion) error {
	_, err := s.coll.InsertOne(ctx, d)
	return err
}

func (s *mongoDiscussionStore) List(ctx context.Context, category string, limit int64) ([]models.Discussion, error) {
	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}
	return listSorted[models.Discussion](ctx, s.coll, filter, bson.D{{Key: "created_at", Value: -1}}, limit)
}

func (s *mongoDiscussionStore) PushReply(ctx context.Context, discussionID string, reply models.Reply) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"discussion_id": discussionID},
		bson.M{
			"$push": bson.M{"replies": reply},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrDiscussionNotFound
	}
	return nil
}

type mongoNotificationStore struct{ coll *mongo.Collection }

func NewNotificationStore(db *mongo.Database) NotificationStore {
	return &mongoNotificationStore{coll: db.Collection("notifications")}
}

func (s *mongoNotificationStore) Insert(ctx context.Context, n models.Notification) error {
	_, err := s.coll.InsertOne(ctx, n)
	return err
}

func (s *mongoNotificationStore) ListByRecipient(ctx context.Context, userID string, limit int64) ([]models.Notification, error) {
	return listSorted[models.Notification](ctx, s.coll, bson.M{"recipient_id": userID}, bson.D{{Key: "created_at", Value: -1}}, limit)
}

func (s *mongoNotificationStore) MarkRead(ctx context.Context, notificationID, userID string) error {
	_, err := s.coll.UpdateOne(ctx,
		bson.M{"notification_id": notificationID, "recipient_id": userID},
		bson.M{"$set": bson.M{"read": true}})
	return err
}
