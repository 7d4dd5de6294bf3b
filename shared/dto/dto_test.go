package dto_test

import (
	"hotel/shared/constant"
	"hotel/shared/dto"
	"net/http"
	"net/url"
	"testing"
)

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		queryParams    map[string]string
		defaultRequest bool
		expected       dto.QueryParams
	}{
		{
			name: "with all valid parameters",
			queryParams: map[string]string{
				"page":     "2",
				"limit":    "20",
				"sort_by":  "check_in_date",
				"sort_dir": "ASC",
			},
			defaultRequest: false,
			expected: dto.QueryParams{
				Page:    2,
				Limit:   20,
				SortBy:  "check_in_date",
				SortDir: "ASC",
			},
		},
		{
			name:           "with default request enabled and no parameters",
			queryParams:    map[string]string{},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:    constant.DefaultValuePage,
				Limit:   constant.DefaultValueLimit,
				SortBy:  "",
				SortDir: "",
			},
		},
		{
			name:           "with default request disabled and no parameters",
			queryParams:    map[string]string{},
			defaultRequest: false,
			expected: dto.QueryParams{
				Page:    0,
				Limit:   0,
				SortBy:  "",
				SortDir: "",
			},
		},
		{
			name: "with invalid page parameter",
			queryParams: map[string]string{
				"page": "invalid",
			},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:    constant.DefaultValuePage, // Should use default
				Limit:   constant.DefaultValueLimit,
				SortBy:  "",
				SortDir: "",
			},
		},
		{
			name: "with negative page parameter",
			queryParams: map[string]string{
				"page": "-1",
			},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:    constant.DefaultValuePage, // Should use default
				Limit:   constant.DefaultValueLimit,
				SortBy:  "",
				SortDir: "",
			},
		},
		{
			name: "with zero page parameter",
			queryParams: map[string]string{
				"page": "0",
			},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:    constant.DefaultValuePage, // Should use default
				Limit:   constant.DefaultValueLimit,
				SortBy:  "",
				SortDir: "",
			},
		},
		{
			name: "with invalid limit parameter",
			queryParams: map[string]string{
				"limit": "invalid",
			},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:    constant.DefaultValuePage,
				Limit:   constant.DefaultValueLimit, // Should use default
				SortBy:  "",
				SortDir: "",
			},
		},
		{
			name: "with negative limit parameter",
			queryParams: map[string]string{
				"limit": "-10",
			},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:    constant.DefaultValuePage,
				Limit:   constant.DefaultValueLimit, // Should use default
				SortBy:  "",
				SortDir: "",
			},
		},
		{
			name: "with partial parameters and defaults enabled",
			queryParams: map[string]string{
				"page":    "3",
				"sort_by": "room_id",
			},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:    3,
				Limit:   constant.DefaultValueLimit, // Should use default
				SortBy:  "room_id",
				SortDir: "", // Empty when not provided
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Create a URL with query parameters
			baseURL := "http://example.com/test"
			u, err := url.Parse(baseURL)
			if err != nil {
				t.Fatalf("failed to parse URL: %v", err)
			}

			// Add query parameters
			query := u.Query()
			for key, value := range tt.queryParams {
				query.Set(key, value)
			}
			u.RawQuery = query.Encode()

			// Create HTTP request
			req, err := http.NewRequest("GET", u.String(), nil)
			if err != nil {
				t.Fatalf("failed to create request: %v", err)
			}

			// Test the method
			queryParams := &dto.QueryParams{}
			queryParams.FromRequest(req, tt.defaultRequest)

			// Verify results
			if queryParams.Page != tt.expected.Page {
				t.Errorf("expected Page to be %d, got %d", tt.expected.Page, queryParams.Page)
			}
			if queryParams.Limit != tt.expected.Limit {
				t.Errorf("expected Limit to be %d, got %d", tt.expected.Limit, queryParams.Limit)
			}
			if queryParams.SortBy != tt.expected.SortBy {
				t.Errorf("expected SortBy to be %s, got %s", tt.expected.SortBy, queryParams.SortBy)
			}
			if queryParams.SortDir != tt.expected.SortDir {
				t.Errorf("expected SortDir to be %s, got %s", tt.expected.SortDir, queryParams.SortDir)
			}
		})
	}
}

func TestQueryParams_LimitCapped(t *testing.T) {
	req, _ := http.NewRequest(http.MethodGet, "/v1/bookings?limit=5000&page=3", nil)

	params := dto.QueryParams{}
	params.FromRequest(req, true)

	if params.Limit != constant.MaxValueLimit {
		t.Errorf("expected limit %d, got %d", constant.MaxValueLimit, params.Limit)
	}

	if params.Offset() != 2*constant.MaxValueLimit {
		t.Errorf("expected offset %d, got %d", 2*constant.MaxValueLimit, params.Offset())
	}
}

func TestQueryParams_Offset(t *testing.T) {
	tests := []struct {
		params dto.QueryParams
		want   int
	}{
		{params: dto.QueryParams{}, want: 0},
		{params: dto.QueryParams{Page: 1, Limit: 10}, want: 0},
		{params: dto.QueryParams{Page: 3, Limit: 10}, want: 20},
		{params: dto.QueryParams{Page: 3}, want: 0},
	}

	for _, tt := range tests {
		if got := tt.params.Offset(); got != tt.want {
			t.Errorf("Offset() of %+v = %d, want %d", tt.params, got, tt.want)
		}
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		group     dto.FilterGroup
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "empty group",
			group:     dto.FilterGroup{},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
		{
			name: "single equality",
			group: dto.FilterGroup{
				Operator: dto.FilterGroupOperatorAnd,
				Filters: []any{
					dto.Filter{Field: "room_id", Value: int64(7), Operator: dto.FilterOperatorEq, Table: "bookings"},
				},
			},
			wantWhere: "(bookings.room_id = :room_id)",
			wantArgs:  map[string]any{"room_id": int64(7)},
		},
		{
			name: "date range with named args",
			group: dto.FilterGroup{
				Operator: dto.FilterGroupOperatorAnd,
				Filters: []any{
					dto.Filter{Field: "room_id", Value: int64(7), Operator: dto.FilterOperatorEq},
					dto.Filter{ArgName: "requested_out", Field: "check_in_date", Value: "2024-03-08", Operator: dto.FilterOperatorLessEq},
					dto.Filter{ArgName: "requested_in", Field: "check_out_date", Value: "2024-03-05", Operator: dto.FilterOperatorGreaterEq},
				},
			},
			wantWhere: "(room_id = :room_id AND check_in_date <= :requested_out AND check_out_date >= :requested_in)",
			wantArgs: map[string]any{
				"room_id":       int64(7),
				"requested_out": "2024-03-08",
				"requested_in":  "2024-03-05",
			},
		},
		{
			name: "nested or group",
			group: dto.FilterGroup{
				Operator: dto.FilterGroupOperatorAnd,
				Filters: []any{
					dto.Filter{Field: "room_id", Value: int64(1), Operator: dto.FilterOperatorEq},
					dto.FilterGroup{
						Operator: dto.FilterGroupOperatorOr,
						Filters: []any{
							dto.Filter{Field: "guest_id", Value: int64(2), Operator: dto.FilterOperatorEq},
							dto.Filter{Field: "total_cost", Operator: dto.FilterIsNull},
						},
					},
				},
			},
			wantWhere: "(room_id = :room_id AND (guest_id = :guest_id OR total_cost IS NULL))",
			wantArgs:  map[string]any{"room_id": int64(1), "guest_id": int64(2)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.group.GetWhereClause()

			if where != tt.wantWhere {
				t.Errorf("expected where %q, got %q", tt.wantWhere, where)
			}

			if len(args) != len(tt.wantArgs) {
				t.Fatalf("expected %d args, got %d", len(tt.wantArgs), len(args))
			}

			for key, want := range tt.wantArgs {
				if args[key] != want {
					t.Errorf("expected arg %s to be %v, got %v", key, want, args[key])
				}
			}
		})
	}
}
