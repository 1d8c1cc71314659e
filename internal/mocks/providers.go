package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/zatekoja/tourism-directory/backend/internal/domain/entities"
	"github.com/zatekoja/tourism-directory/backend/internal/domain/providers"
)

// PlaceSearchProvider is a mock of providers.PlaceSearchProvider
type PlaceSearchProvider struct {
	mock.Mock
}

// NewPlaceSearchProvider creates a mock that asserts its expectations on cleanup
func NewPlaceSearchProvider(t TestingT) *PlaceSearchProvider {
	m := &PlaceSearchProvider{}
	register(&m.Mock, t)
	return m
}

func (m *PlaceSearchProvider) Index(ctx context.Context, place *entities.Place) error {
	return m.Called(ctx, place).Error(0)
}

func (m *PlaceSearchProvider) Delete(ctx context.Context, placeID string) error {
	return m.Called(ctx, placeID).Error(0)
}

func (m *PlaceSearchProvider) Search(ctx context.Context, query providers.PlaceSearchQuery) ([]string, int, error) {
	args := m.Called(ctx, query)
	ids, _ := args.Get(0).([]string)
	return ids, args.Int(1), args.Error(2)
}

// CompletionProvider is a mock of providers.CompletionProvider
type CompletionProvider struct {
	mock.Mock
}

// NewCompletionProvider creates a mock that asserts its expectations on cleanup
func NewCompletionProvider(t TestingT) *CompletionProvider {
	m := &CompletionProvider{}
	register(&m.Mock, t)
	return m
}

func (m *CompletionProvider) Complete(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// EventBus is a mock of providers.EventBus
type EventBus struct {
	mock.Mock
}

// NewEventBus creates a mock that asserts its expectations on cleanup
func NewEventBus(t TestingT) *EventBus {
	m := &EventBus{}
	register(&m.Mock, t)
	return m
}

func (m *EventBus) Publish(ctx context.Context, channel string, event *entities.DirectoryEvent) error {
	return m.Called(ctx, channel, event).Error(0)
}

func (m *EventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.DirectoryEvent, error) {
	args := m.Called(ctx, channel)
	ch, _ := args.Get(0).(chan *entities.DirectoryEvent)
	return ch, args.Error(1)
}

func (m *EventBus) Unsubscribe(ctx context.Context, channel string) error {
	return m.Called(ctx, channel).Error(0)
}

func (m *EventBus) Close() error {
	return m.Called().Error(0)
}
