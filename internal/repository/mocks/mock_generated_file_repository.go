package mocks

import (
	"context"

	"github.com/matematicocardenas25-crypto/generador-documentos-cientificos/internal/model"
	"github.com/matematicocardenas25-crypto/generador-documentos-cientificos/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockGeneratedFileRepository struct {
	mock.Mock
}

func (m *MockGeneratedFileRepository) Create(ctx context.Context, f *model.GeneratedFile) (*model.GeneratedFile, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GeneratedFile), args.Error(1)
}

func (m *MockGeneratedFileRepository) FindByFilename(ctx context.Context, filename string) (*model.GeneratedFile, error) {
	args := m.Called(ctx, filename)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GeneratedFile), args.Error(1)
}

func (m *MockGeneratedFileRepository) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.GeneratedFile], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.GeneratedFile]), args.Error(1)
}

func (m *MockGeneratedFileRepository) Delete(ctx context.Context, filenames ...string) error {
	args := m.Called(ctx, filenames)
	return args.Error(0)
}
