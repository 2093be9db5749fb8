// Copyright (c) 2026 Vidtube. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec isolates security-sensitive code (password hashing, RS256 token
// signing, refresh token fingerprints) from the domain packages.
package sec

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/taibuivan/vidtube/internal/platform/constants"
)

// ErrWrongTokenType is returned when a refresh token is presented as an access token or vice versa.
var ErrWrongTokenType = errors.New("auth: wrong token type")

// AuthClaims is the payload of both access and refresh tokens.
//
// Access tokens carry the profile claims so [middleware.Authenticate] can build
// the caller identity without a database round trip. Refresh tokens carry only
// the subject and a unique jti.
type AuthClaims struct {
	jwt.RegisteredClaims

	UserID    string `json:"uid"`
	Username  string `json:"unm,omitempty"`
	Email     string `json:"eml,omitempty"`
	FullName  string `json:"fnm,omitempty"`
	TokenType string `json:"typ"`
}

// Identity is the subset of a user needed to mint an access token.
type Identity struct {
	UserID   string
	Username string
	Email    string
	FullName string
}

// TokenService signs and verifies RS256 tokens.
type TokenService struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	issuer     string
}

// NewTokenService reads PEM encoded RSA keys from disk.
func NewTokenService(privateKeyPath, publicKeyPath, issuer string) (*TokenService, error) {
	privateKeyData, err := os.ReadFile(privateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("auth: failed to read private key from %s: %w", privateKeyPath, err)
	}

	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(privateKeyData)
	if err != nil {
		return nil, fmt.Errorf("auth: failed to parse private key: %w", err)
	}

	publicKeyData, err := os.ReadFile(publicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("auth: failed to read public key from %s: %w", publicKeyPath, err)
	}

	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(publicKeyData)
	if err != nil {
		return nil, fmt.Errorf("auth: failed to parse public key: %w", err)
	}

	return &TokenService{privateKey: privateKey, publicKey: publicKey, issuer: issuer}, nil
}

// NewTokenServiceFromKey builds a service around an in-memory key pair.
func NewTokenServiceFromKey(privateKey *rsa.PrivateKey, issuer string) *TokenService {
	return &TokenService{privateKey: privateKey, publicKey: &privateKey.PublicKey, issuer: issuer}
}

// GenerateAccessToken signs a short-lived access token for identity.
func (service *TokenService) GenerateAccessToken(identity Identity, timeToLive time.Duration) (string, error) {
	return service.sign(AuthClaims{
		RegisteredClaims: service.registered(identity.UserID, timeToLive),
		UserID:           identity.UserID,
		Username:         identity.Username,
		Email:            identity.Email,
		FullName:         identity.FullName,
		TokenType:        constants.TokenTypeAccess,
	})
}

// GenerateRefreshToken signs a long-lived refresh token. Every call yields a
// distinct token because the jti is random.
func (service *TokenService) GenerateRefreshToken(userID string, timeToLive time.Duration) (string, error) {
	return service.sign(AuthClaims{
		RegisteredClaims: service.registered(userID, timeToLive),
		UserID:           userID,
		TokenType:        constants.TokenTypeRefresh,
	})
}

// VerifyAccessToken verifies signature, expiry and that the token is an access token.
func (service *TokenService) VerifyAccessToken(tokenString string) (*AuthClaims, error) {
	return service.verify(tokenString, constants.TokenTypeAccess)
}

// VerifyRefreshToken verifies signature, expiry and that the token is a refresh token.
func (service *TokenService) VerifyRefreshToken(tokenString string) (*AuthClaims, error) {
	return service.verify(tokenString, constants.TokenTypeRefresh)
}

func (service *TokenService) registered(subject string, timeToLive time.Duration) jwt.RegisteredClaims {
	now := time.Now()
	return jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   subject,
		Issuer:    service.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(timeToLive)),
	}
}

func (service *TokenService) sign(claims AuthClaims) (string, error) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(service.privateKey)
	if err != nil {
		return "", fmt.Errorf("auth: failed to sign token: %w", err)
	}
	return signed, nil
}

func (service *TokenService) verify(tokenString, tokenType string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
		}
		return service.publicKey, nil
	}, jwt.WithIssuer(service.issuer))
	if err != nil {
		return nil, fmt.Errorf("auth: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, errors.New("auth: invalid token claims")
	}

	if claims.TokenType != tokenType {
		return nil, ErrWrongTokenType
	}

	return claims, nil
}
