package domain_test

import (
	"testing"

	"github.com/cardwall/backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestParseColumn(t *testing.T) {
	tests := []struct {
		in    string
		want  domain.Column
		valid bool
	}{
		{"todo", domain.ColumnTodo, true},
		{"in-progress", domain.ColumnInProgress, true},
		{"done", domain.ColumnDone, true},
		{"TODO", "", false},
		{"backlog", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := domain.ParseColumn(tt.in)
		assert.Equal(t, tt.valid, ok, "ParseColumn(%q)", tt.in)
		assert.Equal(t, tt.want, got, "ParseColumn(%q)", tt.in)
	}
}
