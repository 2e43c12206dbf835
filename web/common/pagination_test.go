package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name    string
		total   int64
		limit   int
		offset  int
		hasMore bool
	}{
		{"middle page", 12, 5, 5, true},
		{"last partial page", 12, 5, 10, false},
		{"exact boundary", 10, 5, 5, false},
		{"empty result", 0, 50, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.total, tt.limit, tt.offset)
			assert.Equal(t, tt.hasMore, p.HasMore)
			assert.Equal(t, tt.total, p.Total)
		})
	}
}
