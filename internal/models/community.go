package models

import "time"

type Announcement struct {
	AnnouncementID string    `bson:"announcement_id" json:"announcement_id"`
	Title          string    `bson:"title" json:"title"`
	Content        string    `bson:"content" json:"content"`
	Priority       string    `bson:"priority" json:"priority"`
	Tags           []string  `bson:"tags" json:"tags"`
	AuthorID       string    `bson:"author_id" json:"author_id"`
	AuthorName     string    `bson:"author_name" json:"author_name"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updated_at"`
}

type Document struct {
	DocumentID  string    `bson:"document_id" json:"document_id"`
	Title       string    `bson:"title" json:"title"`
	Category    string    `bson:"category" json:"category"`
	FileURL     string    `bson:"file_url" json:"file_url"`
	FileName    string    `bson:"file_name" json:"file_name"`
	FileSize    int64     `bson:"file_size" json:"file_size"`
	Description *string   `bson:"description,omitempty" json:"description,omitempty"`
	UploadedBy  string    `bson:"uploaded_by" json:"uploaded_by"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

type Event struct {
	EventID      string    `bson:"event_id" json:"event_id"`
	Title        string    `bson:"title" json:"title"`
	Description  string    `bson:"description" json:"description"`
	EventDate    time.Time `bson:"event_date" json:"event_date"`
	Location     *string   `bson:"location,omitempty" json:"location,omitempty"`
	MaxAttendees *int      `bson:"max_attendees,omitempty" json:"max_attendees,omitempty"`
	Attendees    []string  `bson:"attendees" json:"attendees"`
	CreatedBy    string    `bson:"created_by" json:"created_by"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

type Reply struct {
	ReplyID   string    `bson:"reply_id" json:"reply_id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	UserName  string    `bson:"user_name" json:"user_name"`
	Content   string    `bson:"content" json:"content"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

type Discussion struct {
	DiscussionID string    `bson:"discussion_id" json:"discussion_id"`
	Title        string    `bson:"title" json:"title"`
	Content      string    `bson:"content" json:"content"`
	Category     string    `bson:"category" json:"category"`
	AuthorID     string    `bson:"author_id" json:"author_id"`
	AuthorName   string    `bson:"author_name" json:"author_name"`
	Replies      []Reply   `bson:"replies" json:"replies"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}

type NotificationType string

const (
	NotificationPaymentReminder NotificationType = "payment_reminder"
	NotificationPaymentSuccess  NotificationType = "payment_success"
	NotificationAnnouncement    NotificationType = "announcement"
	NotificationEvent           NotificationType = "event"
	NotificationDiscussion      NotificationType = "discussion"
	NotificationSystem          NotificationType = "system"
)

type Notification struct {
	NotificationID string           `bson:"notification_id" json:"notification_id"`
	Title          string           `bson:"title" json:"title"`
	Message        string           `bson:"message" json:"message"`
	Type           NotificationType `bson:"notification_type" json:"notification_type"`
	RecipientID    string           `bson:"recipient_id" json:"recipient_id"`
	Read           bool             `bson:"read" json:"read"`
	CreatedAt      time.Time        `bson:"created_at" json:"created_at"`
}
