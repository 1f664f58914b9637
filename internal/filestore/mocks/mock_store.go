package mocks

import (
	"context"
	"time"

	"github.com/matematicocardenas25-crypto/generador-documentos-cientificos/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Write(ctx context.Context, data []byte, format model.Format, now time.Time) (*model.GeneratedFile, error) {
	args := m.Called(ctx, data, format, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GeneratedFile), args.Error(1)
}

func (m *MockStore) Read(ctx context.Context, filename string) ([]byte, *model.GeneratedFile, error) {
	args := m.Called(ctx, filename)
	if args.Get(1) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]byte), args.Get(1).(*model.GeneratedFile), args.Error(2)
}

func (m *MockStore) Delete(ctx context.Context, filename string) error {
	args := m.Called(ctx, filename)
	return args.Error(0)
}

func (m *MockStore) Sweep(ctx context.Context, maxAge time.Duration) ([]string, error) {
	args := m.Called(ctx, maxAge)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockStore) List(ctx context.Context) ([]model.GeneratedFile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.GeneratedFile), args.Error(1)
}
