package service

import (
	"context"
	"errors"
	"fmt"
	"path" // For constructing object keys
	"strings"
	"time"

	"fitflow/schedule-app/internal/domain"
	"fitflow/schedule-app/internal/repository"
	"fitflow/schedule-app/internal/storage"

	"github.com/google/uuid" // For generating unique identifiers for S3 keys
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrPhotoNotFound     = errors.New("photo not found")
	ErrPhotoAccessDenied = errors.New("photo does not belong to this client")
	ErrInvalidImageType  = errors.New("invalid or missing image content type")
	ErrUploadURLError    = errors.New("failed to generate upload URL")
	ErrDownloadURLError  = errors.New("failed to generate download URL")
)

// PhotoUploadURLResponse carries the presigned URL and the object key the
// client must report back on confirm.
type PhotoUploadURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
}

// PhotoDetails combines photo metadata with a temporary download URL.
type PhotoDetails struct {
	domain.ProgressPhoto
	DownloadURL string `json:"downloadUrl"`
}

// MediaService handles client progress photos: the file goes straight to
// S3 via presigned URLs; only metadata passes through this service.
type MediaService interface {
	RequestPhotoUploadURL(ctx context.Context, clientID primitive.ObjectID, contentType string) (*PhotoUploadURLResponse, error)
	ConfirmPhotoUpload(ctx context.Context, clientID primitive.ObjectID, objectKey, fileName string, fileSize int64, contentType string, takenAt *time.Time) (*domain.ProgressPhoto, error)
	GetMyPhotos(ctx context.Context, clientID primitive.ObjectID) ([]PhotoDetails, error)
}

// mediaService implements the MediaService interface.
type mediaService struct {
	photoRepo   repository.PhotoRepository
	fileStorage storage.FileStorage
}

// NewMediaService creates a new instance of mediaService.
func NewMediaService(photoRepo repository.PhotoRepository, fileStorage storage.FileStorage) MediaService {
	return &mediaService{
		photoRepo:   photoRepo,
		fileStorage: fileStorage,
	}
}

// RequestPhotoUploadURL generates a presigned PUT URL for a progress photo.
func (s *mediaService) RequestPhotoUploadURL(ctx context.Context, clientID primitive.ObjectID, contentType string) (*PhotoUploadURLResponse, error) {
	if clientID == primitive.NilObjectID {
		return nil, errors.New("client ID is required")
	}
	if contentType == "" || !strings.HasPrefix(strings.ToLower(contentType), "image/") {
		return nil, ErrInvalidImageType
	}

	// Unique object key per upload: photos/<client>/<uuid>.<ext>
	uniqueID := uuid.NewString()
	fileExtension := ""
	parts := strings.Split(contentType, "/")
	if len(parts) == 2 {
		fileExtension = parts[1]
	}
	objectKey := path.Join("photos", clientID.Hex(), fmt.Sprintf("%s.%s", uniqueID, fileExtension))

	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, ErrUploadURLError
	}

	return &PhotoUploadURLResponse{
		UploadURL: uploadURL,
		ObjectKey: objectKey,
	}, nil
}

// ConfirmPhotoUpload records the metadata after the client has PUT the file
// to S3 with the presigned URL.
func (s *mediaService) ConfirmPhotoUpload(ctx context.Context, clientID primitive.ObjectID, objectKey, fileName string, fileSize int64, contentType string, takenAt *time.Time) (*domain.ProgressPhoto, error) {
	if clientID == primitive.NilObjectID || objectKey == "" {
		return nil, errors.New("client ID and object key are required")
	}
	// Clients can only confirm keys under their own prefix.
	if !strings.HasPrefix(objectKey, path.Join("photos", clientID.Hex())+"/") {
		return nil, ErrPhotoAccessDenied
	}

	photo := &domain.ProgressPhoto{
		ClientID:    clientID,
		S3ObjectKey: objectKey,
		FileName:    fileName,
		ContentType: contentType,
		Size:        fileSize,
		TakenAt:     takenAt,
	}
	photoID, err := s.photoRepo.Create(ctx, photo)
	if err != nil {
		return nil, err
	}
	photo.ID = photoID
	return photo, nil
}

// GetMyPhotos lists the client's photos with temporary download URLs.
func (s *mediaService) GetMyPhotos(ctx context.Context, clientID primitive.ObjectID) ([]PhotoDetails, error) {
	photos, err := s.photoRepo.GetByClientID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	details := make([]PhotoDetails, 0, len(photos))
	for _, p := range photos {
		url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, p.S3ObjectKey, storage.DefaultPresignedURLExpiry)
		if err != nil {
			return nil, ErrDownloadURLError
		}
		details = append(details, PhotoDetails{ProgressPhoto: p, DownloadURL: url})
	}
	return details, nil
}
