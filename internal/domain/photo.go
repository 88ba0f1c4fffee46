package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProgressPhoto stores metadata about a progress picture uploaded by a
// client. The actual file resides in S3; clients upload directly via a
// presigned URL and then confirm, which creates this record.
type ProgressPhoto struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClientID    primitive.ObjectID `bson:"clientId" json:"clientId"`
	S3ObjectKey string             `bson:"s3ObjectKey" json:"-"` // Internal; never exposed directly
	FileName    string             `bson:"fileName" json:"fileName"`
	ContentType string             `bson:"contentType" json:"contentType"` // e.g., "image/jpeg"
	Size        int64              `bson:"size" json:"size"`
	TakenAt     *time.Time         `bson:"takenAt,omitempty" json:"takenAt,omitempty"` // Optional, client-reported
	UploadedAt  time.Time          `bson:"uploadedAt" json:"uploadedAt"`
}
