package metrics

import (
	"errors"
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestPricePerArea(t *testing.T) {
	t.Run("divides price by area", func(t *testing.T) {
		got, err := PricePerArea(8_500_000, 130)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !almostEqual(got, 65384.615384, 0.001) {
			t.Errorf("expected ~65384.615, got %v", got)
		}
	})

	t.Run("rejects zero area", func(t *testing.T) {
		if _, err := PricePerArea(1_000_000, 0); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("rejects negative area", func(t *testing.T) {
		if _, err := PricePerArea(1_000_000, -50); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestPriceDelta(t *testing.T) {
	tests := []struct {
		name          string
		oldPrice      float64
		newPrice      float64
		wantDelta     float64
		wantDirection string
	}{
		{"increase", 3_000_000, 3_250_000, 250_000, DirectionIncrease},
		{"decrease", 3_250_000, 3_000_000, -250_000, DirectionDecrease},
		{"unchanged", 1_850_000, 1_850_000, 0, DirectionUnchanged},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			delta, dir := PriceDelta(tt.oldPrice, tt.newPrice)
			if delta != tt.wantDelta {
				t.Errorf("delta: expected %v, got %v", tt.wantDelta, delta)
			}
			if dir != tt.wantDirection {
				t.Errorf("direction: expected %s, got %s", tt.wantDirection, dir)
			}
		})
	}
}

func TestMonthlyPayment(t *testing.T) {
	t.Run("amortized loan", func(t *testing.T) {
		// 4,000,000 at 12% over 20 years.
		got, err := MonthlyPayment(4_000_000, 12, 20)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !almostEqual(got, 44043.49, 1) {
			t.Errorf("expected ~44043.49, got %v", got)
		}
	})

	t.Run("zero rate splits principal evenly", func(t *testing.T) {
		got, err := MonthlyPayment(4_000_000, 0, 20)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !almostEqual(got, 4_000_000.0/240, 1e-9) {
			t.Errorf("expected %v, got %v", 4_000_000.0/240, got)
		}
	})

	t.Run("invalid inputs", func(t *testing.T) {
		cases := []struct {
			name      string
			principal float64
			rate      float64
			years     int
		}{
			{"zero principal", 0, 12, 20},
			{"negative principal", -1, 12, 20},
			{"negative rate", 4_000_000, -1, 20},
			{"zero term", 4_000_000, 12, 0},
			{"negative term", 4_000_000, 12, -5},
		}
		for _, tt := range cases {
			if _, err := MonthlyPayment(tt.principal, tt.rate, tt.years); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("%s: expected ErrInvalidInput, got %v", tt.name, err)
			}
		}
	})
}

func TestSummarize(t *testing.T) {
	t.Run("aggregates totals", func(t *testing.T) {
		s, err := Summarize(4_000_000, 12, 20)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.Principal != 4_000_000 {
			t.Errorf("principal: expected 4000000, got %v", s.Principal)
		}
		if !almostEqual(s.TotalPaid, s.MonthlyPayment*240, 0.01) {
			t.Errorf("total paid %v does not equal monthly %v * 240", s.TotalPaid, s.MonthlyPayment)
		}
		if !almostEqual(s.TotalInterest, s.TotalPaid-s.Principal, 0.01) {
			t.Errorf("interest %v does not equal total %v - principal", s.TotalInterest, s.TotalPaid)
		}
		if s.TotalInterest <= 0 {
			t.Errorf("interest on a positive-rate loan must be positive, got %v", s.TotalInterest)
		}
	})

	t.Run("propagates invalid input", func(t *testing.T) {
		if _, err := Summarize(0, 12, 20); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})
}
