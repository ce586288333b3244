package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"go-location-share/internal/model"
)

type MockLocationRepository struct {
	mock.Mock
}

func (m *MockLocationRepository) Create(ctx context.Context, loc model.Location) (model.Location, error) {
	args := m.Called(ctx, loc)
	return args.Get(0).(model.Location), args.Error(1)
}

func (m *MockLocationRepository) List(ctx context.Context) ([]model.Location, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Location), args.Error(1)
}

func (m *MockLocationRepository) FindByID(ctx context.Context, id uuid.UUID) (model.Location, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Location), args.Error(1)
}

func (m *MockLocationRepository) Update(ctx context.Context, id uuid.UUID, req model.UpdateLocationRequest) (model.Location, error) {
	args := m.Called(ctx, id, req)
	return args.Get(0).(model.Location), args.Error(1)
}

func (m *MockLocationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) Log(ctx context.Context, entry model.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditRepository) Recent(ctx context.Context, action string, limit int) ([]model.AuditEntry, error) {
	args := m.Called(ctx, action, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AuditEntry), args.Error(1)
}
