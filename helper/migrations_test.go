package helper_test

import (
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReservationsMigration_Constraints(t *testing.T) {
	raw, err := os.ReadFile("../migrations/postgres/000004_create_reservations_table.up.sql")
	require.NoError(t, err)

	ddl := regexp.MustCompile(`\s+`).ReplaceAllString(string(raw), " ")

	tests := []struct {
		name string
		want string
	}{
		{name: "stay ends after it starts", want: "CHECK (check_out_date > check_in_date)"},
		{name: "nights bounded and derived from dates", want: "CHECK (nights BETWEEN 1 AND 30 AND nights = check_out_date - check_in_date)"},
		{name: "amounts never negative", want: "CHECK (nightly_rate >= 0 AND subtotal >= 0 AND taxes >= 0)"},
		{name: "total is subtotal plus taxes", want: "CHECK (total_amount = subtotal + taxes)"},
		{name: "guest count positive", want: "CHECK (guest_count > 0)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, strings.Contains(ddl, tt.want), "missing %q", tt.want)
		})
	}
}
