// Copyright (c) 2026 Vidtube. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request extracts route parameters, bodies and identity from HTTP
requests with consistent error kinds.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/taibuivan/vidtube/internal/platform/apperr"
	"github.com/taibuivan/vidtube/internal/platform/ctxutil"
	"github.com/taibuivan/vidtube/internal/platform/sec"
	"github.com/taibuivan/vidtube/internal/platform/validate"
)

// maxJSONBody caps JSON request bodies.
const maxJSONBody = 1 << 20

/*
DecodeJSON reads the request body into target.

Returns:
  - error: validate.ErrInvalidJSON if the body is missing or malformed
*/
func DecodeJSON(writer http.ResponseWriter, request *http.Request, target any) error {
	request.Body = http.MaxBytesReader(writer, request.Body, maxJSONBody)
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

// Param retrieves a named URL parameter.
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
ID retrieves a URL parameter that must be a UUID.

Returns:
  - string: canonical (lower-case) UUID
  - error: VALIDATION_ERROR naming the parameter
*/
func ID(request *http.Request, name string) (string, error) {
	raw := strings.TrimSpace(chi.URLParam(request, name))
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return "", validate.RequiredError(name, "Must be a valid id")
	}
	return parsed.String(), nil
}

// Query returns a trimmed query-string value.
func Query(request *http.Request, name string) string {
	return strings.TrimSpace(request.URL.Query().Get(name))
}

// QueryID returns an optional query-string UUID. Absent means "".
func QueryID(request *http.Request, name string) (string, error) {
	raw := Query(request, name)
	if raw == "" {
		return "", nil
	}
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return "", validate.RequiredError(name, "Must be a valid id")
	}
	return parsed.String(), nil
}

// Claims returns the caller's claims, or nil when anonymous.
func Claims(request *http.Request) *sec.AuthClaims {
	return ctxutil.GetAuthUser(request.Context())
}

// RequiredClaims returns the caller's claims or UNAUTHORIZED.
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {
	claims := ctxutil.GetAuthUser(request.Context())
	if claims == nil {
		return nil, apperr.Unauthorized("Unauthorized request")
	}
	return claims, nil
}

// RequiredUserID returns the caller's user id or UNAUTHORIZED.
func RequiredUserID(request *http.Request) (string, error) {
	claims, err := RequiredClaims(request)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}
