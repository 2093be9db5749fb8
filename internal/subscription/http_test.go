// Copyright (c) 2026 Vidtube. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package subscription_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/vidtube/internal/platform/ctxutil"
	"github.com/taibuivan/vidtube/internal/platform/sec"
	"github.com/taibuivan/vidtube/internal/subscription"
)

func signedIn(request *http.Request, userID string) *http.Request {
	return request.WithContext(ctxutil.WithAuthUser(request.Context(), &sec.AuthClaims{UserID: userID}))
}

/*
TestHandler_Routes checks status codes for each subscription route.
*/
func TestHandler_Routes(t *testing.T) {
	service, _ := newService()
	router := subscription.NewHandler(service).Routes()

	tests := []struct {
		name       string
		request    *http.Request
		wantStatus int
	}{
		{"toggle_anonymous", httptest.NewRequest(http.MethodPost, "/c/"+channelID, nil), http.StatusUnauthorized},
		{"toggle_self", signedIn(httptest.NewRequest(http.MethodPost, "/c/"+viewerID, nil), viewerID), http.StatusBadRequest},
		{"toggle", signedIn(httptest.NewRequest(http.MethodPost, "/c/"+channelID, nil), viewerID), http.StatusOK},
		{"subscribers", httptest.NewRequest(http.MethodGet, "/c/"+channelID, nil), http.StatusOK},
		{"subscribers_missing", httptest.NewRequest(http.MethodGet, "/c/"+missingID, nil), http.StatusNotFound},
		{"channels", httptest.NewRequest(http.MethodGet, "/u/"+viewerID, nil), http.StatusOK},
		{"channels_bad_id", httptest.NewRequest(http.MethodGet, "/u/nope", nil), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, tt.request)
			assert.Equal(t, tt.wantStatus, recorder.Code, recorder.Body.String())
		})
	}
}
