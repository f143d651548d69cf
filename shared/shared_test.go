package shared_test

import (
	"context"
	"errors"
	"hotel/shared"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	"hotel/shared/dto"
	"strings"
	"testing"
	"time"

	"go.uber.org/mock/gomock"
)

func TestConvertStringToBool(t *testing.T) {
	tests := []struct {
		input string
		want  *bool
	}{
		{input: "", want: nil},
		{input: "true", want: ptr(true)},
		{input: "FALSE", want: ptr(false)},
		{input: "1", want: ptr(true)},
		{input: "f", want: ptr(false)},
		{input: "archived", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := shared.ConvertStringToBool(tt.input)

			switch {
			case tt.want == nil && got != nil:
				t.Errorf("expected nil, got %v", *got)
			case tt.want != nil && (got == nil || *got != *tt.want):
				t.Errorf("expected %v, got %v", *tt.want, got)
			}
		})
	}
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		total, limit, want int
	}{
		{total: 0, limit: 10, want: 1},
		{total: 42, limit: 0, want: 1},
		{total: 10, limit: 10, want: 1},
		{total: 11, limit: 10, want: 2},
		{total: 95, limit: 20, want: 5},
	}

	for _, tt := range tests {
		if got := shared.CalculateTotalPage(tt.total, tt.limit); got != tt.want {
			t.Errorf("CalculateTotalPage(%d, %d) = %d, want %d", tt.total, tt.limit, got, tt.want)
		}
	}
}

type updateGuest struct {
	FirstName  string  `db:"first_name"`
	Phone      *string `db:"phone"`
	Active     *bool   `db:"active"`
	GuestCount int     `db:"guest_count,omitempty"`
	Notes      string  `db:"-"`
	Internal   string
}

func TestTransformFields(t *testing.T) {
	before := time.Now()

	fields := shared.TransformFields(updateGuest{
		FirstName:  "Ada",
		Active:     ptr(false),
		GuestCount: 3,
		Notes:      "late arrival",
		Internal:   "ignored",
	}, "staff-1")

	if fields["first_name"] != "Ada" {
		t.Errorf("expected first_name Ada, got %v", fields["first_name"])
	}

	if active, ok := fields["active"].(*bool); !ok || *active {
		t.Errorf("expected a false *bool for active, got %v", fields["active"])
	}

	if fields["guest_count"] != 3 {
		t.Errorf("expected guest_count 3 with options stripped from the tag, got %v", fields["guest_count"])
	}

	for _, column := range []string{"phone", "-", "Notes", "Internal"} {
		if _, ok := fields[column]; ok {
			t.Errorf("unexpected column %s", column)
		}
	}

	if fields[constant.FieldModifiedBy] != "staff-1" {
		t.Errorf("expected modified_by staff-1, got %v", fields[constant.FieldModifiedBy])
	}

	if modifiedAt, ok := fields[constant.FieldModifiedAt].(time.Time); !ok || modifiedAt.Before(before.Add(-time.Second)) {
		t.Errorf("expected a fresh modified_at, got %v", fields[constant.FieldModifiedAt])
	}

	if got := shared.TransformFields(&updateGuest{FirstName: "Grace"}, "staff-2"); got["first_name"] != "Grace" {
		t.Errorf("expected pointers to be dereferenced, got %v", got)
	}

	if got := shared.TransformFields(updateGuest{}, "staff-3"); len(got) != 2 {
		t.Errorf("expected only audit columns for an empty request, got %v", got)
	}
}

func TestFilterByID(t *testing.T) {
	filter := shared.FilterByID("res-42", "id", "reservations")
	where, args := filter.GetWhereClause()

	if where != "(reservations.id = :id)" {
		t.Errorf("unexpected where %q", where)
	}

	if args["id"] != "res-42" {
		t.Errorf("unexpected args %v", args)
	}
}

func TestBuildCacheKey(t *testing.T) {
	if got := shared.BuildCacheKey("booking:get", "abc"); got != "booking:get:abc" {
		t.Errorf("expected booking:get:abc, got %s", got)
	}

	if got := shared.BuildCacheKey("room:gets"); got != "room:gets" {
		t.Errorf("expected room:gets, got %s", got)
	}
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10}
	pending := shared.FilterByID("pending", "status", "reservations")
	confirmed := shared.FilterByID("confirmed", "status", "reservations")

	first := shared.BuildCacheKeyWithQuery("booking:gets", params, pending)
	second := shared.BuildCacheKeyWithQuery("booking:gets", params, pending)
	other := shared.BuildCacheKeyWithQuery("booking:gets", params, confirmed)
	nextPage := shared.BuildCacheKeyWithQuery("booking:gets", dto.QueryParams{Page: 2, Limit: 10}, pending)

	if first != second {
		t.Errorf("expected identical queries to share a key, got %s and %s", first, second)
	}

	if first == other || first == nextPage {
		t.Error("expected different filters or pages to produce different keys")
	}

	if !strings.HasPrefix(first, "booking:gets:") {
		t.Errorf("expected key to keep its prefix, got %s", first)
	}
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	mockCache.EXPECT().Clear(gomock.Any(), "booking:gets:*").Return(nil)
	shared.InvalidateCaches(context.Background(), mockCache, "booking:gets")

	mockCache.EXPECT().Clear(gomock.Any(), "booking:count:*").Return(errors.New("redis down"))
	shared.InvalidateCaches(context.Background(), mockCache, "booking:count")
}

func ptr[T any](v T) *T {
	return &v
}
