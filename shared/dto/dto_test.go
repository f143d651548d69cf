package dto_test

import (
	"hotel/shared/constant"
	"hotel/shared/dto"
	"hotel/shared/model"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	modifiedAt := time.Date(2025, 6, 2, 14, 0, 0, 0, time.UTC)

	metadata := &dto.Metadata{}
	metadata.FromModel(model.Metadata{
		CreatedAt:  createdAt,
		ModifiedAt: modifiedAt,
		CreatedBy:  constant.ContextSystem,
		ModifiedBy: "staff-1",
	})

	if want := createdAt.Format(constant.DateFormat); metadata.CreatedAt != want {
		t.Errorf("expected CreatedAt %s, got %s", want, metadata.CreatedAt)
	}

	if want := modifiedAt.Format(constant.DateFormat); metadata.ModifiedAt != want {
		t.Errorf("expected ModifiedAt %s, got %s", want, metadata.ModifiedAt)
	}

	if metadata.CreatedBy != constant.ContextSystem || metadata.ModifiedBy != "staff-1" {
		t.Errorf("unexpected audit users %s/%s", metadata.CreatedBy, metadata.ModifiedBy)
	}
}

func TestQueryParams_FromRequest(t *testing.T) {
	defaults := dto.QueryParams{
		Page:    constant.DefaultValuePage,
		Limit:   constant.DefaultValueLimit,
		SortBy:  constant.DefaultValueSortBy,
		SortDir: constant.DefaultValueSortDir,
	}

	tests := []struct {
		name     string
		query    string
		paginate bool
		expected dto.QueryParams
	}{
		{
			name:     "every parameter",
			query:    "page=2&limit=20&sort_by=check_in_date&sort_dir=asc",
			expected: dto.QueryParams{Page: 2, Limit: 20, SortBy: "check_in_date", SortDir: dto.SortDirAsc},
		},
		{
			name:     "nothing without pagination",
			query:    "",
			expected: dto.QueryParams{},
		},
		{
			name:     "nothing with pagination",
			query:    "",
			paginate: true,
			expected: defaults,
		},
		{
			name:     "malformed values fall back",
			query:    "page=abc&limit=-5&sort_dir=sideways",
			paginate: true,
			expected: defaults,
		},
		{
			name:     "limit is capped",
			query:    "limit=5000",
			expected: dto.QueryParams{Limit: dto.MaxLimit},
		},
		{
			name:     "partial with pagination",
			query:    "page=3&sort_by=total_amount",
			paginate: true,
			expected: dto.QueryParams{Page: 3, Limit: constant.DefaultValueLimit, SortBy: "total_amount", SortDir: constant.DefaultValueSortDir},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/v1/bookings?"+tt.query, nil)

			params := dto.QueryParams{}
			params.FromRequest(req, tt.paginate)

			if params != tt.expected {
				t.Errorf("expected %+v, got %+v", tt.expected, params)
			}
		})
	}
}

func TestQueryParams_Offset(t *testing.T) {
	tests := []struct {
		params dto.QueryParams
		want   int
	}{
		{params: dto.QueryParams{}, want: 0},
		{params: dto.QueryParams{Page: 1, Limit: 10}, want: 0},
		{params: dto.QueryParams{Page: 3, Limit: 25}, want: 50},
		{params: dto.QueryParams{Page: 4}, want: 0},
	}

	for _, tt := range tests {
		if got := tt.params.Offset(); got != tt.want {
			t.Errorf("%+v: expected offset %d, got %d", tt.params, tt.want, got)
		}
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	tests := []struct {
		name          string
		group         dto.FilterGroup
		expectedWhere string
		expectedArgs  map[string]any
	}{
		{
			name: "half open overlap",
			group: dto.And(
				dto.Filter{Field: "check_in_date", Operator: dto.FilterOperatorLess, Value: "2025-06-12", Table: "reservations"},
				dto.Filter{Field: "check_out_date", Operator: dto.FilterOperatorGreater, Value: "2025-06-10", Table: "reservations"},
			),
			expectedWhere: "(reservations.check_in_date < :check_in_date AND reservations.check_out_date > :check_out_date)",
			expectedArgs:  map[string]any{"check_in_date": "2025-06-12", "check_out_date": "2025-06-10"},
		},
		{
			name: "same column bounded twice",
			group: dto.And(
				dto.Filter{Field: "check_in_date", Operator: dto.FilterOperatorGreaterEq, Value: "2025-06-01"},
				dto.Filter{Field: "check_in_date", Operator: dto.FilterOperatorLessEq, Value: "2025-06-30"},
			),
			expectedWhere: "(check_in_date >= :check_in_date AND check_in_date <= :check_in_date_2)",
			expectedArgs:  map[string]any{"check_in_date": "2025-06-01", "check_in_date_2": "2025-06-30"},
		},
		{
			name:          "in operator expands slice",
			group:         dto.And(dto.Filter{Field: "status", Operator: dto.FilterOperatorIn, Value: []string{"pending", "confirmed"}}),
			expectedWhere: "(status IN (:status_0, :status_1))",
			expectedArgs:  map[string]any{"status_0": "pending", "status_1": "confirmed"},
		},
		{
			name:          "empty in matches nothing",
			group:         dto.And(dto.Filter{Field: "status", Operator: dto.FilterOperatorIn, Value: []string{}}),
			expectedWhere: "(FALSE)",
			expectedArgs:  map[string]any{},
		},
		{
			name:          "like escapes wildcards",
			group:         dto.And(dto.Filter{Field: "email", Operator: dto.FilterOperatorLike, Value: "100%_off"}),
			expectedWhere: "(LOWER(email) LIKE LOWER(:email))",
			expectedArgs:  map[string]any{"email": `%100\%\_off%`},
		},
		{
			name: "nested or group",
			group: dto.And(
				dto.Eq("reservations", "room_type", "deluxe"),
				dto.FilterGroup{
					Operator: dto.FilterGroupOperatorOr,
					Filters: []any{
						dto.Eq("reservations", "status", "pending"),
						dto.Filter{ArgName: "confirmed", Field: "status", Operator: dto.FilterOperatorEq, Value: "confirmed", Table: "reservations"},
					},
				},
			),
			expectedWhere: "(reservations.room_type = :room_type AND (reservations.status = :status OR reservations.status = :confirmed))",
			expectedArgs:  map[string]any{"room_type": "deluxe", "status": "pending", "confirmed": "confirmed"},
		},
		{
			name:          "unknown operators are dropped",
			group:         dto.And(dto.Filter{Field: "status", Operator: "regex", Value: ".*"}),
			expectedWhere: "",
			expectedArgs:  map[string]any{},
		},
		{
			name:          "empty group",
			group:         dto.FilterGroup{},
			expectedWhere: "",
			expectedArgs:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.group.GetWhereClause()

			if where != tt.expectedWhere {
				t.Errorf("expected where %q, got %q", tt.expectedWhere, where)
			}

			if !reflect.DeepEqual(args, tt.expectedArgs) {
				t.Errorf("expected args %v, got %v", tt.expectedArgs, args)
			}
		})
	}
}
