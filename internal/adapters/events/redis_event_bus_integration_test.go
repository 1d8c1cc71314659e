//go:build integration

package events_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/tourism-directory/backend/internal/adapters/cache"
	"github.com/zatekoja/tourism-directory/backend/internal/adapters/events"
	"github.com/zatekoja/tourism-directory/backend/internal/application/services"
	"github.com/zatekoja/tourism-directory/backend/internal/domain/entities"
	"github.com/zatekoja/tourism-directory/backend/internal/domain/providers"
	"github.com/zatekoja/tourism-directory/backend/internal/testinfra"
)

func waitForEvent(t *testing.T, ch <-chan *entities.DirectoryEvent) *entities.DirectoryEvent {
	t.Helper()
	select {
	case event, ok := <-ch:
		require.True(t, ok, "subscription closed before an event arrived")
		return event
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for directory event")
		return nil
	}
}

func TestRedisEventBus_FanOutIntegration(t *testing.T) {
	client := testinfra.StartRedis(t)

	bus := events.NewRedisEventBus(client)
	t.Cleanup(func() { _ = bus.Close() })

	ctx1, cancel1 := context.WithCancel(context.Background())
	ctx2, cancel2 := context.WithCancel(context.Background())
	defer cancel1()
	defer cancel2()

	sub1, err := bus.Subscribe(ctx1, providers.EventChannelDirectoryUpdates)
	require.NoError(t, err)
	sub2, err := bus.Subscribe(ctx2, providers.EventChannelDirectoryUpdates)
	require.NoError(t, err)
	time.Sleep(100 * time.Millisecond)

	event := entities.NewDirectoryEvent(entities.ResourcePlace, "place-1", entities.DirectoryEventUpdated)
	require.NoError(t, bus.Publish(context.Background(), providers.EventChannelDirectoryUpdates, event))

	got1 := waitForEvent(t, sub1)
	got2 := waitForEvent(t, sub2)
	assert.Equal(t, event.ID, got1.ID)
	assert.Equal(t, event.ID, got2.ID)
	assert.Equal(t, entities.ResourcePlace, got1.Resource)

	cancel1()
	require.Eventually(t, func() bool {
		_, open := <-sub1
		return !open
	}, 2*time.Second, 20*time.Millisecond)
}

func TestRedisEventBus_UnsubscribeClosesListenersIntegration(t *testing.T) {
	client := testinfra.StartRedis(t)

	bus := events.NewRedisEventBus(client)
	t.Cleanup(func() { _ = bus.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub1, err := bus.Subscribe(ctx, providers.EventChannelDirectoryUpdates)
	require.NoError(t, err)
	sub2, err := bus.Subscribe(ctx, providers.EventChannelDirectoryUpdates)
	require.NoError(t, err)

	require.NoError(t, bus.Unsubscribe(context.Background(), providers.EventChannelDirectoryUpdates))

	for _, sub := range []<-chan *entities.DirectoryEvent{sub1, sub2} {
		_, open := <-sub
		assert.False(t, open)
	}

	// A fresh subscription opens a new redis subscription
	sub3, err := bus.Subscribe(ctx, providers.EventChannelDirectoryUpdates)
	require.NoError(t, err)
	event := entities.NewDirectoryEvent(entities.ResourceReview, "review-1", entities.DirectoryEventCreated)
	require.NoError(t, bus.Publish(context.Background(), providers.EventChannelDirectoryUpdates, event))
	assert.Equal(t, event.ID, waitForEvent(t, sub3).ID)
}

func TestCacheInvalidation_DropsCachedResponsesIntegration(t *testing.T) {
	client := testinfra.StartRedis(t)
	ctx := context.Background()

	store := cache.NewRedisAdapter(client)
	bus := events.NewRedisEventBus(client)
	t.Cleanup(func() { _ = bus.Close() })

	invalidation := services.NewCacheInvalidationService(store, bus)
	require.NoError(t, invalidation.Start())
	t.Cleanup(invalidation.Stop)
	time.Sleep(100 * time.Millisecond)

	locationsKey := services.ResponseCachePrefix + "/locations:abc"
	categoriesKey := services.ResponseCachePrefix + "/categories:abc"
	require.NoError(t, store.Set(ctx, locationsKey, []byte(`{"success":true}`), 60))
	require.NoError(t, store.Set(ctx, categoriesKey, []byte(`{"success":true}`), 60))

	event := entities.NewDirectoryEvent(entities.ResourceLocation, "7", entities.DirectoryEventDeleted)
	require.NoError(t, bus.Publish(ctx, providers.EventChannelDirectoryUpdates, event))

	require.Eventually(t, func() bool {
		exists, err := store.Exists(ctx, locationsKey)
		return err == nil && !exists
	}, 5*time.Second, 50*time.Millisecond)

	exists, err := store.Exists(ctx, categoriesKey)
	require.NoError(t, err)
	assert.True(t, exists)
}
