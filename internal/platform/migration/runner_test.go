// Copyright (c) 2026 Vidtube. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToPgx5URL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"postgres://u:p@db:5432/vidtube", "pgx5://u:p@db:5432/vidtube"},
		{"postgresql://u@db/vidtube?sslmode=disable", "pgx5://u@db/vidtube?sslmode=disable"},
		{"pgx5://db/vidtube", "pgx5://db/vidtube"},
		{"host=db dbname=vidtube", "host=db dbname=vidtube"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, toPgx5URL(tt.in))
	}
}
