// Copyright (c) 2026 Vidtube. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package subscription

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/vidtube/internal/platform/database/schema"
	"github.com/taibuivan/vidtube/internal/platform/pipeline"
	"github.com/taibuivan/vidtube/internal/platform/postgres"
	"github.com/taibuivan/vidtube/internal/platform/toggle"
	"github.com/taibuivan/vidtube/pkg/pagination"
	"github.com/taibuivan/vidtube/pkg/uuid"
)

type repository struct {
	db postgres.DBTX
}

// NewRepository constructs a PostgreSQL backed subscription store.
func NewRepository(db postgres.DBTX) Repository {
	return &repository{db: db}
}

var table = schema.SocialSubscription

func scanSubscription(row pgx.Row) (*Subscription, error) {
	s := &Subscription{}
	if err := row.Scan(&s.ID, &s.SubscriberID, &s.ChannelID, &s.CreatedAt); err != nil {
		return nil, err
	}
	return s, nil
}

func (repository *repository) Toggle(context context.Context, subscriberID, channelID string) (toggle.Result[*Subscription], error) {
	pair := &toggle.Pair[*Subscription]{
		DB:       repository.db,
		Table:    table.Table,
		IDColumn: table.ID,
		NewID:    uuid.New,
		Keys: []toggle.Key{
			{Column: table.SubscriberID, Value: subscriberID},
			{Column: table.ChannelID, Value: channelID},
		},
		Returning: []string{table.ID, table.SubscriberID, table.ChannelID, table.CreatedAt},
		Scan:      scanSubscription,
	}

	return toggle.Toggle(context, "toggle subscription", pair)
}

// memberSpec lists subscriptions matched on one side and flattens the account on the other.
func memberSpec(matchColumn, matchValue, userColumn string, sort Sort) pipeline.Spec {
	account := schema.UserAccount

	return pipeline.Spec{
		Table: table.Table,
		Alias: "s",
		Match: []pipeline.Eq{{Column: "s." + matchColumn, Value: matchValue}},
		Joins: []pipeline.Join{
			pipeline.One(account.Table, "u", "u."+account.ID+" = s."+userColumn,
				pipeline.ColAs("u."+account.ID, "user_id"),
				pipeline.ColAs("u."+account.Username, "user_username"),
				pipeline.ColAs("u."+account.FullName, "user_fullname"),
				pipeline.ColAs("u."+account.AvatarURL, "user_avatar"),
			),
			pipeline.Count(table.Table, "f", "f."+table.ChannelID+" = s."+userColumn, "subscriberscount"),
		},
		Project: []pipeline.Column{
			pipeline.Col("s." + table.ID),
			pipeline.Col("s." + table.CreatedAt),
		},
		Sortable: map[string]string{
			"createdAt": "s." + table.CreatedAt,
			"username":  "u." + account.Username,
		},
		DefaultSort: "createdAt",
		SortBy:      sort.By,
		SortType:    sort.Type,
	}
}

func (repository *repository) Subscribers(context context.Context, channelID string, sort Sort, params pagination.Params) (*pipeline.Page[Subscriber], error) {
	composed, err := pipeline.Compose(memberSpec(table.ChannelID, channelID, table.SubscriberID, sort))
	if err != nil {
		return nil, err
	}

	return pipeline.Paginate(context, repository.db, composed, params, "subscribers", func(row pgx.Row) (Subscriber, error) {
		var s Subscriber
		err := row.Scan(
			&s.SubscriptionID, &s.SubscribedAt,
			&s.Subscriber.ID, &s.Subscriber.Username, &s.Subscriber.FullName, &s.Subscriber.AvatarURL,
			&s.SubscribersCount,
		)
		return s, err
	})
}

func (repository *repository) Channels(context context.Context, subscriberID string, sort Sort, params pagination.Params) (*pipeline.Page[Channel], error) {
	composed, err := pipeline.Compose(memberSpec(table.SubscriberID, subscriberID, table.ChannelID, sort))
	if err != nil {
		return nil, err
	}

	return pipeline.Paginate(context, repository.db, composed, params, "channels", func(row pgx.Row) (Channel, error) {
		var c Channel
		err := row.Scan(
			&c.SubscriptionID, &c.SubscribedAt,
			&c.Channel.ID, &c.Channel.Username, &c.Channel.FullName, &c.Channel.AvatarURL,
			&c.SubscribersCount,
		)
		return c, err
	})
}
