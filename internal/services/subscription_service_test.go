package services

import (
	"context"
	"testing"

	"vidtube/internal/events"
	"vidtube/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newSubscriptionServiceForTest(subs *mockSubscriptionRepo, users *mockUserRepo) SubscriptionService {
	return NewSubscriptionService(subs, users, events.NewBus(zap.NewNop()), zap.NewNop())
}

func TestSubscribeToSelf(t *testing.T) {
	svc := newSubscriptionServiceForTest(new(mockSubscriptionRepo), new(mockUserRepo))

	_, err := svc.Subscribe(context.Background(), 1, 1)
	assert.True(t, IsConflictError(err))
}

func TestSubscribeTwice(t *testing.T) {
	subs := new(mockSubscriptionRepo)
	users := new(mockUserRepo)
	svc := newSubscriptionServiceForTest(subs, users)

	users.On("Exists", mock.Anything, int64(2)).Return(true, nil)
	subs.On("Insert", mock.Anything, int64(1), int64(2)).
		Return(&models.Subscription{ID: 5, SubscriberID: 1, ChannelID: 2}, true, nil).Once()

	sub, err := svc.Subscribe(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), sub.ID)

	subs.On("Insert", mock.Anything, int64(1), int64(2)).Return(nil, false, nil).Once()

	_, err = svc.Subscribe(context.Background(), 1, 2)
	assert.True(t, IsConflictError(err))
}

func TestSubscribeUnknownChannel(t *testing.T) {
	subs := new(mockSubscriptionRepo)
	users := new(mockUserRepo)
	svc := newSubscriptionServiceForTest(subs, users)

	users.On("Exists", mock.Anything, int64(99)).Return(false, nil)

	_, err := svc.Subscribe(context.Background(), 1, 99)
	assert.True(t, IsNotFoundError(err))
}

func TestUnsubscribeWithoutSubscription(t *testing.T) {
	subs := new(mockSubscriptionRepo)
	users := new(mockUserRepo)
	svc := newSubscriptionServiceForTest(subs, users)

	users.On("Exists", mock.Anything, int64(2)).Return(true, nil)
	subs.On("Delete", mock.Anything, int64(1), int64(2)).Return(false, nil)

	err := svc.Unsubscribe(context.Background(), 1, 2)
	assert.True(t, IsNotFoundError(err))
}
