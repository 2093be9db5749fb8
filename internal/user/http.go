// Copyright (c) 2026 Vidtube. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package user

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/vidtube/internal/platform/constants"
	"github.com/taibuivan/vidtube/internal/platform/media"
	"github.com/taibuivan/vidtube/internal/platform/middleware"
	requestutil "github.com/taibuivan/vidtube/internal/platform/request"
	"github.com/taibuivan/vidtube/internal/platform/respond"
	"github.com/taibuivan/vidtube/pkg/pagination"
)

// # Handler Implementation

// Handler implements the account and session endpoints.
type Handler struct {
	service *Service
	uploads media.Limits
	ttl     TokenTTL
}

// NewHandler constructs a new user [Handler].
func NewHandler(service *Service, uploads media.Limits, ttl TokenTTL) *Handler {
	return &Handler{service: service, uploads: uploads, ttl: ttl}
}

// Routes returns a [chi.Router] for /users.
//
// # Endpoints
//   - POST /register, /login, /refresh-token : public
//   - GET  /c/{username}                     : public, viewer-aware when signed in
//   - everything else                        : signed in
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/refresh-token", handler.refresh)
	router.Get("/c/{username}", handler.channel)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)

		protected.Post("/logout", handler.logout)
		protected.Post("/change-password", handler.changePassword)
		protected.Get("/current-user", handler.currentUser)
		protected.Patch("/update-account", handler.updateAccount)
		protected.Patch("/avatar", handler.updateAvatar)
		protected.Patch("/cover-image", handler.updateCoverImage)
		protected.Get("/history", handler.watchHistory)
	})

	return router
}

// # Sessions

// register handles POST /users/register (multipart).
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	if err := media.ParseForm(writer, request, handler.uploads); err != nil {
		respond.Error(writer, request, err)
		return
	}

	avatarPath, err := media.FormFile(request, FieldAvatar, handler.uploads, media.KindImage, true)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer media.Discard(avatarPath)

	coverPath, err := media.FormFile(request, FieldCoverImage, handler.uploads, media.KindImage, false)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer media.Discard(coverPath)

	user, err := handler.service.Register(request.Context(), RegisterInput{
		FullName:       request.FormValue("fullName"),
		Email:          request.FormValue("email"),
		Username:       request.FormValue("username"),
		Password:       request.FormValue("password"),
		AvatarPath:     avatarPath,
		CoverImagePath: coverPath,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user, "User registered successfully")
}

type loginRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// login handles POST /users/login.
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.service.Login(request.Context(), LoginInput(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setSessionCookies(writer, session)
	respond.OK(writer, session, "User logged in successfully")
}

// logout handles POST /users/logout.
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Logout(request.Context(), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	clearSessionCookies(writer)
	respond.OK(writer, struct{}{}, "User logged out successfully")
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// refresh handles POST /users/refresh-token. The token comes from the cookie or the body.
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	token := ""
	if cookie, err := request.Cookie(constants.RefreshTokenCookieName); err == nil {
		token = cookie.Value
	}
	if token == "" && request.ContentLength != 0 {
		var input refreshRequest
		if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
			respond.Error(writer, request, err)
			return
		}
		token = input.RefreshToken
	}

	session, err := handler.service.Refresh(request.Context(), token)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setSessionCookies(writer, session)
	respond.OK(writer, Session{AccessToken: session.AccessToken, RefreshToken: session.RefreshToken}, "Access token refreshed successfully")
}

// # Account

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// changePassword handles POST /users/change-password.
func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input changePasswordRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.ChangePassword(request.Context(), userID, input.OldPassword, input.NewPassword); err != nil {
		respond.Error(writer, request, err)
		return
	}

	clearSessionCookies(writer)
	respond.OK(writer, struct{}{}, "Password changed successfully")
}

// currentUser handles GET /users/current-user.
func (handler *Handler) currentUser(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.Current(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user, "Current user fetched successfully")
}

type updateAccountRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// updateAccount handles PATCH /users/update-account.
func (handler *Handler) updateAccount(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateAccountRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.UpdateAccount(request.Context(), userID, input.FullName, input.Email)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user, "Account details updated successfully")
}

// updateAvatar handles PATCH /users/avatar (multipart).
func (handler *Handler) updateAvatar(writer http.ResponseWriter, request *http.Request) {
	handler.replaceImage(writer, request, FieldAvatar, handler.service.UpdateAvatar, "Avatar updated successfully")
}

// updateCoverImage handles PATCH /users/cover-image (multipart).
func (handler *Handler) updateCoverImage(writer http.ResponseWriter, request *http.Request) {
	handler.replaceImage(writer, request, FieldCoverImage, handler.service.UpdateCoverImage, "Cover image updated successfully")
}

func (handler *Handler) replaceImage(
	writer http.ResponseWriter,
	request *http.Request,
	field string,
	update func(context context.Context, userID, localPath string) (*User, error),
	message string,
) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := media.ParseForm(writer, request, handler.uploads); err != nil {
		respond.Error(writer, request, err)
		return
	}

	path, err := media.FormFile(request, field, handler.uploads, media.KindImage, true)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer media.Discard(path)

	user, err := update(request.Context(), userID, path)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user, message)
}

// # Channel & History

// channel handles GET /users/c/{username}.
func (handler *Handler) channel(writer http.ResponseWriter, request *http.Request) {
	viewerID := ""
	if claims := requestutil.Claims(request); claims != nil {
		viewerID = claims.UserID
	}

	channel, err := handler.service.Channel(request.Context(), requestutil.Param(request, "username"), viewerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, channel, "Channel profile fetched successfully")
}

// watchHistory handles GET /users/history.
func (handler *Handler) watchHistory(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page, err := handler.service.WatchHistory(request.Context(), userID, pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, page, "Watch history fetched successfully")
}

// # Cookies

func (handler *Handler) setSessionCookies(writer http.ResponseWriter, session *Session) {
	http.SetCookie(writer, sessionCookie(constants.AccessTokenCookieName, session.AccessToken, "/", handler.ttl.Access))
	http.SetCookie(writer, sessionCookie(constants.RefreshTokenCookieName, session.RefreshToken, constants.RefreshTokenCookiePath, handler.ttl.Refresh))
}

func clearSessionCookies(writer http.ResponseWriter) {
	http.SetCookie(writer, sessionCookie(constants.AccessTokenCookieName, "", "/", -1))
	http.SetCookie(writer, sessionCookie(constants.RefreshTokenCookieName, "", constants.RefreshTokenCookiePath, -1))
}

func sessionCookie(name, value, path string, maxAge time.Duration) *http.Cookie {
	cookie := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
	if maxAge < 0 {
		cookie.MaxAge = -1
	} else {
		cookie.MaxAge = int(maxAge.Seconds())
	}
	return cookie
}
