// Copyright (c) 2026 Vidtube. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"net/http"
	"strings"

	"github.com/taibuivan/vidtube/internal/platform/apperr"
	"github.com/taibuivan/vidtube/internal/platform/constants"
	"github.com/taibuivan/vidtube/internal/platform/ctxutil"
	"github.com/taibuivan/vidtube/internal/platform/respond"
	"github.com/taibuivan/vidtube/internal/platform/sec"
)

// TokenVerifier verifies access tokens. [*sec.TokenService] satisfies it.
type TokenVerifier interface {
	VerifyAccessToken(token string) (*sec.AuthClaims, error)
}

// Authenticate resolves the caller from the access token.
//
// # Flow
//  1. Read the token from the accessToken cookie, else from "Authorization: Bearer".
//  2. No token: the request proceeds anonymously.
//  3. Invalid bearer token: 401. An invalid cookie is ignored so an expired
//     session can still reach the refresh endpoint.
//  4. Valid token: claims are stored in the context for [RequireAuth] and handlers.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			token, fromCookie, err := extractToken(request)
			if err != nil {
				respond.Error(writer, request, err)
				return
			}

			if token == "" {
				next.ServeHTTP(writer, request)
				return
			}

			claims, err := verifier.VerifyAccessToken(token)
			if err != nil && fromCookie {
				next.ServeHTTP(writer, request)
				return
			}
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired access token"))
				return
			}

			ctx := ctxutil.WithAuthUser(request.Context(), claims)
			ctx = ctxutil.WithLogger(ctx, ctxutil.GetLogger(ctx).With("user_id", claims.UserID))
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth rejects anonymous requests with 401. Mount it after [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetAuthUser(request.Context()) == nil {
			respond.Error(writer, request, apperr.Unauthorized("Unauthorized request"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

func extractToken(request *http.Request) (token string, fromCookie bool, err error) {
	if cookie, err := request.Cookie(constants.AccessTokenCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, true, nil
	}

	header := request.Header.Get(constants.HeaderAuthorization)
	if header == "" {
		return "", false, nil
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(token) == "" {
		return "", false, apperr.Unauthorized("Invalid authorization format")
	}

	return strings.TrimSpace(token), false, nil
}
