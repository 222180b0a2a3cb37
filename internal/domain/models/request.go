// internal/domain/models/request.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DownloadRequest records a download or trial request for a product,
// submitted either by an operator or through the public request endpoint.
type DownloadRequest struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	ProductID   *primitive.ObjectID `bson:"product_id,omitempty" json:"product_id,omitempty"`
	ProductName string              `bson:"product_name" json:"product_name"`
	Module      string              `bson:"module,omitempty" json:"module,omitempty"`

	// Requester identity.
	FullName string `bson:"full_name" json:"full_name"`
	Email    string `bson:"email" json:"email"`
	Phone    string `bson:"phone,omitempty" json:"phone,omitempty"`
	Company  string `bson:"company,omitempty" json:"company,omitempty"`

	Platform string `bson:"platform,omitempty" json:"platform,omitempty"`
	OTP      string `bson:"otp,omitempty" json:"-"` // one-time download password

	Status        string `bson:"status" json:"status"` // pending | completed | rejected
	DownloadCount int64  `bson:"download_count" json:"download_count"`

	// Client metadata captured at submission.
	ClientIP  string `bson:"client_ip,omitempty" json:"client_ip,omitempty"`
	UserAgent string `bson:"user_agent,omitempty" json:"user_agent,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Request status identifiers.
const (
	RequestPending   = "pending"
	RequestCompleted = "completed"
	RequestRejected  = "rejected"
)

// IsValidRequestStatus checks if a value is a valid request status.
func IsValidRequestStatus(value string) bool {
	switch value {
	case RequestPending, RequestCompleted, RequestRejected:
		return true
	}
	return false
}
