package mocks

import (
	"context"
	"time"

	"github.com/matematicocardenas25-crypto/generador-documentos-cientificos/internal/model"
	"github.com/matematicocardenas25-crypto/generador-documentos-cientificos/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) GenerateWord(ctx context.Context, req model.GenerationRequest) (*model.GeneratedFile, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GeneratedFile), args.Error(1)
}

func (m *MockDocumentService) GenerateLatex(ctx context.Context, req model.GenerationRequest) (*service.LatexResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LatexResult), args.Error(1)
}

func (m *MockDocumentService) Download(ctx context.Context, filename string) (*service.DownloadResult, error) {
	args := m.Called(ctx, filename)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DownloadResult), args.Error(1)
}

func (m *MockDocumentService) Delete(ctx context.Context, filename string) error {
	args := m.Called(ctx, filename)
	return args.Error(0)
}

func (m *MockDocumentService) Cleanup(ctx context.Context, maxAge time.Duration) (int, error) {
	args := m.Called(ctx, maxAge)
	return args.Int(0), args.Error(1)
}

func (m *MockDocumentService) List(ctx context.Context, limit, offset int) (*service.FileListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.FileListResult), args.Error(1)
}
