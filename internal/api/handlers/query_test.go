package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/streamhive/streamhive/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseListQuery(t *testing.T) {
	allowed := map[string]bool{"created_at": true, "views": true}

	tests := []struct {
		name        string
		url         string
		wantPage    int
		wantLimit   int
		wantSortBy  string
		wantSortAsc bool
		wantErr     string
	}{
		{
			name:       "defaults",
			url:        "/videos",
			wantPage:   1,
			wantLimit:  10,
			wantSortBy: "created_at",
		},
		{
			name:        "explicit paging and sort",
			url:         "/videos?page=3&limit=25&sortBy=views&sortType=asc",
			wantPage:    3,
			wantLimit:   25,
			wantSortBy:  "views",
			wantSortAsc: true,
		},
		{
			name:       "limit capped",
			url:        "/videos?limit=5000",
			wantPage:   1,
			wantLimit:  100,
			wantSortBy: "created_at",
		},
		{
			name:       "descending is the default direction",
			url:        "/videos?sortType=desc",
			wantPage:   1,
			wantLimit:  10,
			wantSortBy: "created_at",
		},
		{
			name:    "zero page rejected",
			url:     "/videos?page=0",
			wantErr: "page must be a positive integer",
		},
		{
			name:    "negative page rejected",
			url:     "/videos?page=-2",
			wantErr: "page must be a positive integer",
		},
		{
			name:    "non-numeric page rejected",
			url:     "/videos?page=abc",
			wantErr: "page must be a positive integer",
		},
		{
			name:    "zero limit rejected",
			url:     "/videos?limit=0",
			wantErr: "limit must be a positive integer",
		},
		{
			name:    "non-numeric limit rejected",
			url:     "/videos?limit=ten",
			wantErr: "limit must be a positive integer",
		},
		{
			name:    "sort field outside allow-list rejected",
			url:     "/videos?sortBy=password_hash",
			wantErr: "Invalid sortBy field",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)
			q, err := parseListQuery(r, allowed, "created_at")

			if tt.wantErr != "" {
				require.Error(t, err)
				appErr, ok := domain.AsAppError(err)
				require.True(t, ok)
				assert.Equal(t, 400, appErr.Status)
				assert.Equal(t, tt.wantErr, appErr.Message)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, q.Page)
			assert.Equal(t, tt.wantLimit, q.Limit)
			assert.Equal(t, tt.wantSortBy, q.SortBy)
			assert.Equal(t, tt.wantSortAsc, q.SortAsc)
		})
	}
}
