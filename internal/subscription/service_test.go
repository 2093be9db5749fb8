// Copyright (c) 2026 Vidtube. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package subscription_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vidtube/internal/platform/apperr"
	"github.com/taibuivan/vidtube/internal/platform/pipeline"
	"github.com/taibuivan/vidtube/internal/platform/toggle"
	"github.com/taibuivan/vidtube/internal/subscription"
	"github.com/taibuivan/vidtube/pkg/pagination"
)

const (
	viewerID  = "0191d5a0-0000-7000-8000-000000000001"
	channelID = "0191d5a0-0000-7000-8000-000000000002"
	missingID = "0191d5a0-0000-7000-8000-0000000000ff"
)

// # Fakes

type memoryRepository struct {
	mu    sync.Mutex
	pairs map[string]*subscription.Subscription
}

func (repository *memoryRepository) Toggle(_ context.Context, subscriberID, channelID string) (toggle.Result[*subscription.Subscription], error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	key := subscriberID + "|" + channelID
	if existing, ok := repository.pairs[key]; ok {
		delete(repository.pairs, key)
		return toggle.Result[*subscription.Subscription]{State: toggle.Deactivated, Record: existing}, nil
	}
	created := &subscription.Subscription{ID: "s-" + key, SubscriberID: subscriberID, ChannelID: channelID}
	repository.pairs[key] = created
	return toggle.Result[*subscription.Subscription]{State: toggle.Activated, Record: created}, nil
}

func (repository *memoryRepository) Subscribers(_ context.Context, channelID string, _ subscription.Sort, params pagination.Params) (*pipeline.Page[subscription.Subscriber], error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	page := &pipeline.Page[subscription.Subscriber]{Label: "subscribers"}
	for key, s := range repository.pairs {
		if strings.HasSuffix(key, "|"+channelID) {
			item := subscription.Subscriber{SubscriptionID: s.ID}
			item.Subscriber.ID = s.SubscriberID
			page.Items = append(page.Items, item)
		}
	}
	page.Meta = pagination.NewMeta(params, len(page.Items))
	return page, nil
}

func (repository *memoryRepository) Channels(_ context.Context, _ string, _ subscription.Sort, params pagination.Params) (*pipeline.Page[subscription.Channel], error) {
	return &pipeline.Page[subscription.Channel]{Label: "channels", Meta: pagination.NewMeta(params, 0)}, nil
}

type knownUsers map[string]bool

func (users knownUsers) Exists(_ context.Context, id string) error {
	if !users[id] {
		return apperr.NotFound("User")
	}
	return nil
}

func newService() (*subscription.Service, *memoryRepository) {
	repository := &memoryRepository{pairs: map[string]*subscription.Subscription{}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return subscription.NewService(repository, knownUsers{viewerID: true, channelID: true}, logger), repository
}

/*
TestToggle_RoundTrip subscribes then unsubscribes, leaving no record behind.
*/
func TestToggle_RoundTrip(t *testing.T) {
	service, repository := newService()

	subscribed, err := service.Toggle(context.Background(), viewerID, channelID)
	require.NoError(t, err)
	assert.True(t, subscribed.Subscribed)

	page, err := service.Subscribers(context.Background(), channelID, subscription.Sort{}, pagination.New(1, 10))
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, viewerID, page.Items[0].Subscriber.ID)

	unsubscribed, err := service.Toggle(context.Background(), viewerID, channelID)
	require.NoError(t, err)
	assert.False(t, unsubscribed.Subscribed)
	assert.Equal(t, subscribed.Subscription.ID, unsubscribed.Subscription.ID)
	assert.Empty(t, repository.pairs)
}

/*
TestToggle_Rejected covers self-subscription and unknown channels.
*/
func TestToggle_Rejected(t *testing.T) {
	tests := []struct {
		name      string
		channelID string
		wantCode  string
		wantMsg   string
	}{
		{"self", viewerID, apperr.CodeValidation, "You cannot subscribe to your own channel"},
		{"self_uppercase", strings.ToUpper(viewerID), apperr.CodeValidation, "You cannot subscribe to your own channel"},
		{"unknown_channel", missingID, apperr.CodeNotFound, "Channel not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repository := newService()

			_, err := service.Toggle(context.Background(), viewerID, tt.channelID)

			require.True(t, apperr.HasCode(err, tt.wantCode), "got %v", err)
			assert.Equal(t, tt.wantMsg, apperr.As(err).Message)
			assert.Empty(t, repository.pairs)
		})
	}
}

/*
TestLists_UnknownUser returns NOT_FOUND for either side.
*/
func TestLists_UnknownUser(t *testing.T) {
	service, _ := newService()

	_, err := service.Subscribers(context.Background(), missingID, subscription.Sort{}, pagination.New(1, 10))
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	_, err = service.Channels(context.Background(), missingID, subscription.Sort{}, pagination.New(1, 10))
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}
