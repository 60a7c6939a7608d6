package http_test

import (
	"context"

	"sarawak-tourism/internal/itinerary/domain/model"
	"sarawak-tourism/internal/itinerary/usecase"

	"github.com/stretchr/testify/mock"
)

type mockItineraryUsecase struct {
	mock.Mock
}

func (m *mockItineraryUsecase) Generate(ctx context.Context, req *usecase.GenerateRequest, identity string) (*model.Itinerary, error) {
	args := m.Called(ctx, req, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Itinerary), args.Error(1)
}

func (m *mockItineraryUsecase) CheckLimit(ctx context.Context, identity string) (*model.LimitStatus, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LimitStatus), args.Error(1)
}

func (m *mockItineraryUsecase) ListForUser(ctx context.Context, userID string) ([]*model.Itinerary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Itinerary), args.Error(1)
}
