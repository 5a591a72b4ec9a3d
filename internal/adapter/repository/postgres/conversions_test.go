package postgres

import (
	"math/big"
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

func TestNumericToDecimal(t *testing.T) {
	tests := []struct {
		name string
		in   pgtype.Numeric
		want decimal.Decimal
	}{
		{
			name: "plain value",
			in:   pgtype.Numeric{Int: big.NewInt(12345), Exp: -2, Valid: true},
			want: decimal.RequireFromString("123.45"),
		},
		{
			name: "invalid",
			in:   pgtype.Numeric{},
			want: decimal.Zero,
		},
		{
			name: "nan",
			in:   pgtype.Numeric{NaN: true, Valid: true},
			want: decimal.Zero,
		},
		{
			name: "valid but nil int",
			in:   pgtype.Numeric{Valid: true},
			want: decimal.Zero,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := numericToDecimal(tt.in)
			if !got.Equal(tt.want) {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestDecimalToNumericRoundTrip(t *testing.T) {
	orig := decimal.RequireFromString("987.654")
	got := numericToDecimal(decimalToNumeric(orig))
	if !got.Equal(orig) {
		t.Errorf("expected %s, got %s", orig, got)
	}
}
