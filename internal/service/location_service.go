package service

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"go-location-share/internal/model"
	"go-location-share/internal/storage"
	"go-location-share/pkg/apierror"
)

type locationStore interface {
	Create(ctx context.Context, loc model.Location) (model.Location, error)
	List(ctx context.Context) ([]model.Location, error)
	FindByID(ctx context.Context, id uuid.UUID) (model.Location, error)
	Update(ctx context.Context, id uuid.UUID, req model.UpdateLocationRequest) (model.Location, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type LocationService struct {
	store locationStore
}

func NewLocationService(store locationStore) *LocationService {
	return &LocationService{store: store}
}

func (s *LocationService) Create(ctx context.Context, req model.CreateLocationRequest) (model.Location, error) {
	loc := model.Location{
		ID:          uuid.New(),
		X:           req.X,
		Y:           req.Y,
		City:        strings.TrimSpace(req.City),
		Country:     strings.TrimSpace(req.Country),
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		ImageURL:    normalizeOptional(req.ImageURL),
	}

	if err := validateCoordinates(loc.X, loc.Y); err != nil {
		return model.Location{}, err
	}
	if err := requireText(map[string]string{"city": loc.City, "country": loc.Country, "title": loc.Title}); err != nil {
		return model.Location{}, err
	}
	if err := validateImageURL(loc.ImageURL); err != nil {
		return model.Location{}, err
	}

	return s.store.Create(ctx, loc)
}

func (s *LocationService) List(ctx context.Context) ([]model.Location, error) {
	return s.store.List(ctx)
}

func (s *LocationService) Get(ctx context.Context, id uuid.UUID) (model.Location, error) {
	return s.store.FindByID(ctx, id)
}

func (s *LocationService) Update(ctx context.Context, id uuid.UUID, req model.UpdateLocationRequest) (model.Location, error) {
	x, y := 0.0, 0.0
	if req.X != nil {
		x = *req.X
	}
	if req.Y != nil {
		y = *req.Y
	}
	if err := validateCoordinates(x, y); err != nil {
		return model.Location{}, err
	}

	fields := map[string]string{}
	for name, value := range map[string]**string{"city": &req.City, "country": &req.Country, "title": &req.Title} {
		if *value == nil {
			continue
		}
		trimmed := strings.TrimSpace(**value)
		*value = &trimmed
		fields[name] = trimmed
	}
	if err := requireText(fields); err != nil {
		return model.Location{}, err
	}

	req.ImageURL = normalizeOptional(req.ImageURL)
	if err := validateImageURL(req.ImageURL); err != nil {
		return model.Location{}, err
	}

	return s.store.Update(ctx, id, req)
}

func (s *LocationService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.store.Delete(ctx, id)
}

func validateCoordinates(x float64, y float64) error {
	if math.IsNaN(x) || math.IsInf(x, 0) || x < -180 || x > 180 {
		return apierror.BadRequest("x must be a longitude between -180 and 180", "x")
	}
	if math.IsNaN(y) || math.IsInf(y, 0) || y < -90 || y > 90 {
		return apierror.BadRequest("y must be a latitude between -90 and 90", "y")
	}
	return nil
}

func requireText(fields map[string]string) error {
	for _, name := range []string{"title", "city", "country"} {
		value, present := fields[name]
		if present && value == "" {
			return apierror.BadRequest(fmt.Sprintf("%s is required", name), name)
		}
	}
	return nil
}

func normalizeOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	return &trimmed
}

// validateImageURL accepts an empty value, a reference returned by the upload
// endpoint, or an absolute http(s) URL.
func validateImageURL(value *string) error {
	if value == nil || *value == "" {
		return nil
	}

	if name, ok := strings.CutPrefix(*value, UploadURLPrefix); ok {
		if err := storage.ValidateName(name); err != nil {
			return apierror.BadRequest("image_url is not a valid upload reference", "image_url")
		}
		return nil
	}

	parsed, err := url.Parse(*value)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return apierror.BadRequest("image_url must be an upload reference or an http(s) URL", "image_url")
	}
	return nil
}
