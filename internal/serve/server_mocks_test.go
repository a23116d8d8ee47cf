package serve

import (
	"context"
	"errors"

	"github.com/react-three/create/internal/project"
	"github.com/stretchr/testify/mock"
)

// Mock implementations for testing the server
type mockExchanger struct {
	mock.Mock
}

func (m *mockExchanger) Exchange(ctx context.Context, code string) (string, error) {
	args := m.Called(ctx, code)
	return args.String(0), args.Error(1)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, name string, files project.FileMap, token string) (string, error) {
	args := m.Called(ctx, name, files, token)
	return args.String(0), args.Error(1)
}

type staticFetcher map[string][]byte

func (f staticFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if data, ok := f[url]; ok {
		return data, nil
	}
	return nil, errors.New("not found")
}
