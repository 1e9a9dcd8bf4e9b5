package models

import "time"

type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "pending"
	PaymentStatusProcessing PaymentStatus = "processing"
	PaymentStatusSuccessful PaymentStatus = "successful"
	PaymentStatusFailed     PaymentStatus = "failed"
	PaymentStatusCancelled  PaymentStatus = "cancelled"
)

type PaymentMethod string

const (
	PaymentMethodGCash  PaymentMethod = "gcash"
	PaymentMethodStripe PaymentMethod = "stripe"
	PaymentMethodPayPal PaymentMethod = "paypal"
)

type Payment struct {
	PaymentID     string            `bson:"payment_id" json:"payment_id"`
	UserID        string            `bson:"user_id" json:"user_id"`
	Amount        float64           `bson:"amount" json:"amount"`
	PaymentMethod PaymentMethod     `bson:"payment_method" json:"payment_method"`
	Status        PaymentStatus     `bson:"status" json:"status"`
	TransactionID *string           `bson:"transaction_id" json:"transaction_id"`
	Description   string            `bson:"description" json:"description"`
	Metadata      map[string]string `bson:"metadata" json:"metadata"`
	CreatedAt     time.Time         `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time         `bson:"updated_at" json:"updated_at"`
}

type Receipt struct {
	ReceiptID string    `bson:"receipt_id" json:"receipt_id"`
	PaymentID string    `bson:"payment_id" json:"payment_id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	FileURL   string    `bson:"file_url" json:"file_url"`
	FileName  string    `bson:"file_name" json:"file_name"`
	FileSize  int64     `bson:"file_size" json:"file_size"`
	Notes     *string   `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
