package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampPageSize(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"zero falls back to default", 0, 50},
		{"negative falls back to default", -5, 50},
		{"small value passes through", 1, 1},
		{"default passes through", 50, 50},
		{"max passes through", 100, 100},
		{"look-ahead row beyond max allowed", 101, 101},
		{"excess clamped to look-ahead bound", 500, 101},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, clampPageSize(tt.limit))
		})
	}
}
