package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Pagination
		want Pagination
	}{
		{"defaults", Pagination{}, Pagination{Limit: DefaultLimit}},
		{"negative", Pagination{Limit: -1, Offset: -10}, Pagination{Limit: DefaultLimit, Offset: 0}},
		{"capped", Pagination{Limit: 10_000}, Pagination{Limit: MaxLimit}},
		{"passthrough", Pagination{Limit: 25, Offset: 75}, Pagination{Limit: 25, Offset: 75}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}

func TestParseSort(t *testing.T) {
	allowed := []string{"action_date", "created_at"}
	def := Sort{Column: "action_date", Descending: true}

	tests := []struct {
		name   string
		column string
		order  string
		want   Sort
	}{
		{"empty falls back", "", "", def},
		{"whitelisted column", "created_at", "asc", Sort{Column: "created_at"}},
		{"unknown column keeps default", "amount", "asc", Sort{Column: "action_date"}},
		{"injection attempt keeps default", "1; drop table x", "", def},
		{"order case insensitive", "ACTION_DATE", "DESC", def},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSort(tt.column, tt.order, allowed, def))
		})
	}
}

func TestOrderClause(t *testing.T) {
	assert.Equal(t, "action_date desc", Sort{Column: "action_date", Descending: true}.OrderClause())
	assert.Equal(t, "created_at asc", Sort{Column: "created_at"}.OrderClause())
}
