package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"net/http"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/google/uuid"

	"go-location-share/internal/model"
	"go-location-share/internal/storage"
	"go-location-share/internal/util"
	"go-location-share/pkg/apierror"
)

const UploadURLPrefix = "/uploads/"

type mediaStore interface {
	WriteFile(name string, data []byte) error
	ReadFile(name string) ([]byte, error)
}

type MediaLimits struct {
	MaxBytes  int64
	MaxWidth  int
	MaxHeight int
}

type MediaService struct {
	store  mediaStore
	limits MediaLimits
}

func NewMediaService(store mediaStore, limits MediaLimits) (*MediaService, error) {
	if store == nil {
		return nil, errors.New("media store is required")
	}
	if limits.MaxBytes <= 0 || limits.MaxWidth <= 0 || limits.MaxHeight <= 0 {
		return nil, errors.New("media limits must be positive")
	}

	return &MediaService{store: store, limits: limits}, nil
}

func (s *MediaService) Limits() MediaLimits {
	return s.limits
}

// Store validates an uploaded image and writes it under a generated name.
// The size ceiling is enforced before any decoder sees the bytes, and the
// stored extension comes from the sniffed format only.
func (s *MediaService) Store(ctx context.Context, r io.Reader) (model.StoredMedia, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.limits.MaxBytes+1))
	if err != nil {
		if isPayloadTooLarge(err) {
			return model.StoredMedia{}, apierror.PayloadTooLarge("upload exceeds the maximum size")
		}
		return model.StoredMedia{}, apierror.BadRequest("could not read upload", "")
	}

	if int64(len(data)) > s.limits.MaxBytes {
		return model.StoredMedia{}, apierror.PayloadTooLarge("upload exceeds the maximum size")
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return model.StoredMedia{}, apierror.UnsupportedMediaType("upload is not a supported image")
	}

	ext, ok := util.ExtensionForFormat(format)
	if !ok {
		return model.StoredMedia{}, apierror.UnsupportedMediaType("upload is not a supported image")
	}

	if cfg.Width > s.limits.MaxWidth || cfg.Height > s.limits.MaxHeight {
		return model.StoredMedia{}, apierror.BadRequest("image dimensions exceed the maximum",
			fmt.Sprintf("max %dx%d", s.limits.MaxWidth, s.limits.MaxHeight))
	}

	if _, _, err := image.Decode(bytes.NewReader(data)); err != nil {
		return model.StoredMedia{}, apierror.UnsupportedMediaType("upload is not a supported image")
	}

	if err := ctx.Err(); err != nil {
		return model.StoredMedia{}, fmt.Errorf("upload cancelled: %w", err)
	}

	name := uuid.NewString() + "." + ext
	if err := s.store.WriteFile(name, data); err != nil {
		slog.Error("media write failed", "name", name, "error", err)
		return model.StoredMedia{}, apierror.Internal("could not store upload")
	}

	slog.Info("media stored", "name", name, "format", format, "size", len(data), "width", cfg.Width, "height", cfg.Height)

	return model.StoredMedia{
		Name:   name,
		Format: format,
		Size:   int64(len(data)),
		Width:  cfg.Width,
		Height: cfg.Height,
		URL:    UploadURLPrefix + name,
	}, nil
}

// Retrieve validates name before touching the filesystem.
func (s *MediaService) Retrieve(_ context.Context, name string) (model.MediaObject, error) {
	if err := storage.ValidateName(name); err != nil {
		return model.MediaObject{}, err
	}

	data, err := s.store.ReadFile(name)
	if err != nil {
		if errors.Is(err, model.ErrMediaNotFound) {
			return model.MediaObject{}, apierror.NotFound("media not found", "")
		}

		var apiErr *apierror.APIError
		if errors.As(err, &apiErr) {
			return model.MediaObject{}, apiErr
		}

		slog.Error("media read failed", "name", name, "error", err)
		return model.MediaObject{}, apierror.Internal("could not read media")
	}

	return model.MediaObject{
		Name:        name,
		ContentType: util.ContentTypeForName(name),
		Data:        data,
	}, nil
}

func isPayloadTooLarge(err error) bool {
	var maxBytesErr *http.MaxBytesError
	return errors.As(err, &maxBytesErr)
}
