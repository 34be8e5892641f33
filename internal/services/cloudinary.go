package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// uploadFolder is where all blog images land on Cloudinary.
const uploadFolder = "blog-uploads"

// allowedFormats is the fixed allow-list of raster image formats. Anything
// else is rejected by Cloudinary and surfaces as an upload error.
var allowedFormats = api.CldAPIArray{"jpg", "jpeg", "png", "webp", "gif"}

// Uploader accepts a file stream and returns a durable reference to it.
type Uploader interface {
	UploadImage(ctx context.Context, fileHeader *multipart.FileHeader) (string, error)
}

type CloudinaryService struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryService(cloudName, apiKey, apiSecret string) (*CloudinaryService, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}

	return &CloudinaryService{cld: cld}, nil
}

// UploadImage uploads a multipart file to Cloudinary and returns its secure
// URL. Format validation is delegated to Cloudinary via the allow-list.
func (s *CloudinaryService) UploadImage(ctx context.Context, fileHeader *multipart.FileHeader) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	uploadResult, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:         uploadFolder,
		PublicID:       uuid.NewString(),
		AllowedFormats: allowedFormats,
		ResourceType:   "image",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to Cloudinary: %w", err)
	}

	return uploadResult.SecureURL, nil
}
