package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/parts-be/internal/core/ports"
)

func TestBuildListQuery(t *testing.T) {
	tests := []struct {
		name     string
		params   ports.ListParams
		wantSQL  string
		wantArgs []interface{}
	}{
		{
			name:     "first_page_by_name",
			params:   ports.ListParams{SortBy: "name", SortOrder: "asc", Page: 1, PageSize: 20},
			wantSQL:  "SELECT " + partColumns + " FROM parts ORDER BY name ASC, id ASC LIMIT 20 OFFSET 0",
			wantArgs: nil,
		},
		{
			name:     "search_and_descending_price",
			params:   ports.ListParams{Search: "pad", SortBy: "price", SortOrder: "desc", Page: 3, PageSize: 10},
			wantSQL:  "SELECT " + partColumns + " FROM parts WHERE name ILIKE $1 ORDER BY price DESC, id ASC LIMIT 10 OFFSET 20",
			wantArgs: []interface{}{"%pad%"},
		},
		{
			name:     "unknown_sort_column_falls_back_to_name",
			params:   ports.ListParams{SortBy: "name; DROP TABLE parts", Page: 1, PageSize: 5},
			wantSQL:  "SELECT " + partColumns + " FROM parts ORDER BY name ASC, id ASC LIMIT 5 OFFSET 0",
			wantArgs: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := buildListQuery(tt.params).ToSql()
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, sql)
			if tt.wantArgs == nil {
				assert.Empty(t, args)
			} else {
				assert.Equal(t, tt.wantArgs, args)
			}
		})
	}
}

func TestBuildCountQuery(t *testing.T) {
	sql, args, err := buildCountQuery(ports.ListParams{}).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT COUNT(*) FROM parts", sql)
	assert.Empty(t, args)

	sql, args, err = buildCountQuery(ports.ListParams{Search: "bolt"}).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT COUNT(*) FROM parts WHERE name ILIKE $1", sql)
	assert.Equal(t, []interface{}{"%bolt%"}, args)
}

func TestBuildStatsQuery(t *testing.T) {
	sql, args, err := buildStatsQuery(10).ToSql()
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT COUNT(*), COALESCE(SUM(quantity), 0), COUNT(*) FILTER (WHERE quantity < $1), COALESCE(SUM(price * quantity), 0) FROM parts",
		sql)
	assert.Equal(t, []interface{}{10}, args)
}
