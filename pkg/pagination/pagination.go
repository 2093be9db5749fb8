// Copyright (c) 2026 Vidtube. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination parses page/limit query parameters and computes page metadata.
package pagination

import (
	"math"
	"net/http"
	"strconv"
	"strings"
)

const (
	// DefaultLimit is the page size when none (or an unusable one) is given.
	DefaultLimit = 10
	// MaxLimit caps page size.
	MaxLimit = 100
	// DefaultPage is the first page (1-indexed).
	DefaultPage = 1
	// MaxPage keeps (page-1)*limit within int for every allowed limit.
	MaxPage = math.MaxInt / MaxLimit
)

// Params holds a clamped page and limit.
type Params struct {
	Page  int
	Limit int
}

// New clamps raw values into a usable [Params].
//
// # Clamping
//
// Non-positive pages become [DefaultPage] and pages above [MaxPage] are
// capped. Non-positive limits become [DefaultLimit]; limits above [MaxLimit]
// are capped at [MaxLimit].
func New(page, limit int) Params {
	switch {
	case page < 1:
		page = DefaultPage
	case page > MaxPage:
		page = MaxPage
	}
	switch {
	case limit < 1:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}
	return Params{Page: page, Limit: limit}
}

// Offset returns the SQL OFFSET for the page.
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Meta is the pagination metadata of a list response.
type Meta struct {
	Total       int  `json:"total"`
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	TotalPages  int  `json:"totalPages"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

// NewMeta computes TotalPages = ceil(total/limit) and the navigation flags.
func NewMeta(params Params, total int) Meta {
	totalPages := 0
	if params.Limit > 0 {
		totalPages = (total + params.Limit - 1) / params.Limit
	}

	return Meta{
		Total:       total,
		Page:        params.Page,
		Limit:       params.Limit,
		TotalPages:  totalPages,
		HasNextPage: params.Page < totalPages,
		HasPrevPage: params.Page > 1,
	}
}

// FromRequest parses "page" and "limit" from the query string.
// Non-numeric values fall back to the defaults, then [New] clamps.
func FromRequest(r *http.Request) Params {
	query := r.URL.Query()
	return New(parseInt(query.Get("page"), DefaultPage), parseInt(query.Get("limit"), DefaultLimit))
}

func parseInt(raw string, fallback int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return n
}
