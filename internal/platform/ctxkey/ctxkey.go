// Copyright (c) 2026 Vidtube. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxkey holds the typed keys for per-request context values.
// The unexported key type keeps them from colliding with other packages.
package ctxkey

type key string

const (
	// KeyRequestID stores the X-Request-ID correlation value.
	KeyRequestID key = "request_id"

	// KeyUser stores the verified access-token claims ([sec.AuthClaims]).
	KeyUser key = "user"

	// KeyLogger stores the request-scoped [*log/slog.Logger].
	KeyLogger key = "logger"

	// KeyClientIP stores the resolved client address.
	KeyClientIP key = "client_ip"
)
