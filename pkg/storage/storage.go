// Package storage keeps product and slider images on the image host.
package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"kickstreet/pkg/utils"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
)

var ErrUpload = errors.New("image upload failed")

const (
	FolderProducts = "kickstreet_products"
	FolderSliders  = "kickstreet_sliders"
)

// ImageStore is implemented by CloudinaryStore.
type ImageStore interface {
	// Upload accepts a data URI, a remote URL or a reader and returns the public https URL.
	Upload(ctx context.Context, file any, folder string) (string, error)
	// DeleteByURL removes the asset a URL returned by Upload points at.
	DeleteByURL(ctx context.Context, imageURL string) error
}

type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
	log *zap.Logger
}

func NewCloudinaryStore(cfg utils.CloudinaryConfig, log *zap.Logger) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true

	return &CloudinaryStore{
		cld: cld,
		log: log.With(zap.String("component", "storage")),
	}, nil
}

func (s *CloudinaryStore) Upload(ctx context.Context, file any, folder string) (string, error) {
	if folder == "" {
		folder = FolderProducts
	}

	result, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{Folder: folder})
	if err != nil {
		s.log.Error("Failed to upload image", zap.Error(err), zap.String("folder", folder))
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}
	if result.Error.Message != "" {
		s.log.Error("Image host rejected upload", zap.String("error", result.Error.Message))
		return "", fmt.Errorf("%w: %s", ErrUpload, result.Error.Message)
	}

	s.log.Info("Image uploaded", zap.String("public_id", result.PublicID))
	return result.SecureURL, nil
}

func (s *CloudinaryStore) DeleteByURL(ctx context.Context, imageURL string) error {
	publicID, err := PublicIDFromURL(imageURL)
	if err != nil {
		return err
	}

	result, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("destroy %s: %w", publicID, err)
	}
	if result.Error.Message != "" {
		return fmt.Errorf("destroy %s: %s", publicID, result.Error.Message)
	}

	s.log.Info("Image deleted", zap.String("public_id", publicID), zap.String("result", result.Result))
	return nil
}

// PublicIDFromURL derives "folder/name" from a delivery URL such as
// https://res.cloudinary.com/demo/image/upload/v1712/kickstreet_products/shoe.jpg.
func PublicIDFromURL(imageURL string) (string, error) {
	u, err := url.Parse(imageURL)
	if err != nil {
		return "", fmt.Errorf("parse image url: %w", err)
	}

	dir, file := path.Split(strings.TrimSuffix(u.Path, "/"))
	name := strings.TrimSuffix(file, path.Ext(file))
	folder := path.Base(strings.TrimSuffix(dir, "/"))

	if name == "" || folder == "" || folder == "/" || folder == "." {
		return "", fmt.Errorf("no public id in %q", imageURL)
	}
	return folder + "/" + name, nil
}
