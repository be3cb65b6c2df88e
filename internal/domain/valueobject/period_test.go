package valueobject

import (
	"testing"
	"time"

	"github.com/agency-ops/backend/internal/domain/entity"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func TestPeriod_Bounds(t *testing.T) {
	cases := []struct {
		period Period
		start  time.Time
		end    time.Time
	}{
		{Period{2025, 1}, date(2025, time.January, 1), date(2025, time.March, 31)},
		{Period{2025, 2}, date(2025, time.April, 1), date(2025, time.June, 30)},
		{Period{2025, 3}, date(2025, time.July, 1), date(2025, time.September, 30)},
		{Period{2025, 4}, date(2025, time.October, 1), date(2025, time.December, 31)},
		{Period{2024, 1}, date(2024, time.January, 1), date(2024, time.March, 31)},
	}

	for _, c := range cases {
		t.Run(c.period.Label(), func(t *testing.T) {
			if !c.period.Start().Equal(c.start) {
				t.Errorf("expected start %v, got %v", c.start, c.period.Start())
			}
			if !c.period.End().Equal(c.end) {
				t.Errorf("expected end %v, got %v", c.end, c.period.End())
			}
		})
	}
}

func TestPeriod_ContainsIsInclusive(t *testing.T) {
	q1 := Period{Year: 2025, Quarter: 1}

	t.Run("first day of quarter is included", func(t *testing.T) {
		if !q1.Contains(date(2025, time.January, 1)) {
			t.Error("expected Jan 1 to be inside Q1")
		}
	})

	t.Run("last day of quarter is included", func(t *testing.T) {
		if !q1.Contains(date(2025, time.March, 31)) {
			t.Error("expected Mar 31 to be inside Q1")
		}
	})

	t.Run("day after quarter is excluded", func(t *testing.T) {
		if q1.Contains(date(2025, time.April, 1)) {
			t.Error("expected Apr 1 to be outside Q1")
		}
	})

	t.Run("day before quarter is excluded", func(t *testing.T) {
		if q1.Contains(date(2024, time.December, 31)) {
			t.Error("expected Dec 31 of prior year to be outside Q1")
		}
	})
}

func TestPeriod_NavigationWrapsYears(t *testing.T) {
	t.Run("previous from Q1 wraps to Q4 of prior year", func(t *testing.T) {
		prev := Period{Year: 2025, Quarter: 1}.Previous()
		if prev.Year != 2024 || prev.Quarter != 4 {
			t.Errorf("expected Q4 2024, got Q%d %d", prev.Quarter, prev.Year)
		}
	})

	t.Run("next from Q4 wraps to Q1 of next year", func(t *testing.T) {
		next := Period{Year: 2025, Quarter: 4}.Next()
		if next.Year != 2026 || next.Quarter != 1 {
			t.Errorf("expected Q1 2026, got Q%d %d", next.Quarter, next.Year)
		}
	})

	t.Run("mid-year navigation stays in year", func(t *testing.T) {
		p := Period{Year: 2025, Quarter: 2}
		if p.Next() != (Period{Year: 2025, Quarter: 3}) {
			t.Errorf("expected Q3 2025, got %v", p.Next())
		}
		if p.Previous() != (Period{Year: 2025, Quarter: 1}) {
			t.Errorf("expected Q1 2025, got %v", p.Previous())
		}
	})
}

func TestNewPeriod_RejectsInvalidQuarter(t *testing.T) {
	for _, q := range []int{0, 5, -1} {
		if _, err := NewPeriod(2025, q); err == nil {
			t.Errorf("expected error for quarter %d", q)
		}
	}
	if _, err := NewPeriod(2025, 3); err != nil {
		t.Errorf("unexpected error for quarter 3: %v", err)
	}
}

func TestPeriodOf(t *testing.T) {
	cases := []struct {
		date    time.Time
		quarter int
	}{
		{date(2025, time.January, 15), 1},
		{date(2025, time.March, 31), 1},
		{date(2025, time.April, 1), 2},
		{date(2025, time.December, 31), 4},
	}
	for _, c := range cases {
		if got := PeriodOf(c.date); got.Quarter != c.quarter || got.Year != 2025 {
			t.Errorf("PeriodOf(%v): expected Q%d 2025, got %v", c.date, c.quarter, got)
		}
	}
}

func TestBasisDate(t *testing.T) {
	invoiceDate := datePtr(2025, time.February, 10)
	bookedDate := datePtr(2025, time.April, 2)

	t.Run("invoice basis uses invoice date", func(t *testing.T) {
		doc := &entity.FinancialDocument{InvoiceDate: invoiceDate, BookedDate: bookedDate}
		if got := BasisDate(doc, BasisInvoice); got == nil || !got.Equal(*invoiceDate) {
			t.Errorf("expected invoice date, got %v", got)
		}
	})

	t.Run("booked basis prefers booked date", func(t *testing.T) {
		doc := &entity.FinancialDocument{InvoiceDate: invoiceDate, BookedDate: bookedDate}
		if got := BasisDate(doc, BasisBooked); got == nil || !got.Equal(*bookedDate) {
			t.Errorf("expected booked date, got %v", got)
		}
	})

	t.Run("booked basis falls back to invoice date", func(t *testing.T) {
		doc := &entity.FinancialDocument{InvoiceDate: invoiceDate}
		if got := BasisDate(doc, BasisBooked); got == nil || !got.Equal(*invoiceDate) {
			t.Errorf("expected fallback to invoice date, got %v", got)
		}
	})

	t.Run("document without dates has no basis date", func(t *testing.T) {
		if got := BasisDate(&entity.FinancialDocument{}, BasisBooked); got != nil {
			t.Errorf("expected nil, got %v", got)
		}
	})
}

func TestFilterToPeriod_ExcludesDatelessDocuments(t *testing.T) {
	q1 := Period{Year: 2025, Quarter: 1}
	docs := []*entity.FinancialDocument{
		{InvoiceNumber: "in", InvoiceDate: datePtr(2025, time.February, 1)},
		{InvoiceNumber: "out", InvoiceDate: datePtr(2025, time.May, 1)},
		{InvoiceNumber: "dateless"},
	}

	filtered := FilterToPeriod(docs, q1, BasisInvoice)
	if len(filtered) != 1 {
		t.Fatalf("expected 1 document, got %d", len(filtered))
	}
	if filtered[0].InvoiceNumber != "in" {
		t.Errorf("expected document 'in', got %q", filtered[0].InvoiceNumber)
	}
}
