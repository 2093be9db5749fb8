// Copyright (c) 2026 Vidtube. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides shared, immutable values for the whole platform:
server timings, rate limits, auth cookie names, header names and the Redis
key taxonomy.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "vidtube-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	DefaultReadTimeout       = 5 * time.Minute
	DefaultWriteTimeout      = 5 * time.Minute
	DefaultIdleTimeout       = 120 * time.Second
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout bounds ordinary JSON requests.
	GlobalRequestTimeout = 30 * time.Second

	// UploadRequestTimeout bounds multipart routes that push files to the media store.
	UploadRequestTimeout = 5 * time.Minute

	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	DefaultRateLimitRPS      = 100.0
	DefaultRateLimitBurst    = 150
	RateLimitCleanupInterval = 1 * time.Minute
	RateLimitClientTTL       = 3 * time.Minute
)

// # Authentication

const (
	// AuthIssuer is the 'iss' claim of every token we sign.
	AuthIssuer = "vidtube.app"

	AccessTokenCookieName  = "accessToken"
	RefreshTokenCookieName = "refreshToken"
	RefreshTokenCookiePath = "/api/v1/users"

	// TokenTypeAccess and TokenTypeRefresh tell the two JWT kinds apart.
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
	HeaderAuthorization = "Authorization"
)

// # JSON Field Identifiers

const (
	FieldCode    = "code"
	FieldMessage = "message"
	FieldStatus  = "status"
	FieldChecks  = "checks"
)

// # Database Schemas

const (
	SchemaUsers  = "users"
	SchemaMedia  = "media"
	SchemaSocial = "social"
)

// # Redis Prefixes

const (
	// RedisPrefixVideoView keys a (video, viewer) pair already counted as a view.
	RedisPrefixVideoView = "video:view:"
)
