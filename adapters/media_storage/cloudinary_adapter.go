package media_storage

import (
	"context"
	"fmt"
	"log"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/haanhpham/autopress/internal/application/service"
	"github.com/haanhpham/autopress/internal/config"
)

type cloudinaryAdapter struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryAdapter(cfg config.Config) (service.ImageProvider, error) {

	if cfg.Cloudinary.CloudName == "" {
		return nil, fmt.Errorf("cloudinary cloud_name has not config")
	}

	cld, err := cloudinary.NewFromParams(
		cfg.Cloudinary.CloudName,
		cfg.Cloudinary.ApiKey,
		cfg.Cloudinary.ApiSecret,
	)
	if err != nil {
		return nil, fmt.Errorf("cannot init cloudinary: %w", err)
	}

	log.Println("connect Cloudinary successfully.")
	return &cloudinaryAdapter{cld: cld}, nil
}

// Attach fetches the source image by URL into Cloudinary and returns the
// delivery URL used as the featured image.
func (a *cloudinaryAdapter) Attach(ctx context.Context, srcURL string, publicID string) (string, error) {
	uploadParams := uploader.UploadParams{
		PublicID: publicID,
		Folder:   "autopress/featured",
	}
	result, err := a.cld.Upload.Upload(ctx, srcURL, uploadParams)
	if err != nil {
		return "", fmt.Errorf("failed to upload cloudinary: %w", err)
	}
	return result.SecureURL, nil
}
