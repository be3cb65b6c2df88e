package valueobject

import (
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/agency-ops/backend/internal/domain/entity"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func approvedDoc(kind entity.DocumentKind, invoiceDate *time.Time, excl, tax string) *entity.FinancialDocument {
	return &entity.FinancialDocument{
		Kind:          kind,
		Status:        entity.DocumentStatusApproved,
		InvoiceDate:   invoiceDate,
		AmountExclVAT: decPtr(excl),
		VATTotal:      decPtr(tax),
	}
}

func TestDeriveVATLine(t *testing.T) {
	t.Run("121.00 at 21 percent splits into 100.00 base and 21.00 tax", func(t *testing.T) {
		line := DeriveVATLine(dec("121.00"), dec("21"))
		if !line.Base.Equal(dec("100.00")) {
			t.Errorf("expected base 100.00, got %s", line.Base)
		}
		if !line.Tax.Equal(dec("21.00")) {
			t.Errorf("expected tax 21.00, got %s", line.Tax)
		}
	})

	t.Run("base plus tax reconstructs the total", func(t *testing.T) {
		totals := []string{"121.00", "99.99", "1210.55", "0.01", "84.70"}
		rates := []string{"21", "9", "0"}
		for _, total := range totals {
			for _, rate := range rates {
				line := DeriveVATLine(dec(total), dec(rate))
				if !line.Base.Add(line.Tax).Equal(dec(total)) {
					t.Errorf("total %s rate %s: base %s + tax %s != total",
						total, rate, line.Base, line.Tax)
				}
			}
		}
	})

	t.Run("zero rate yields zero tax", func(t *testing.T) {
		line := DeriveVATLine(dec("50.00"), decimal.Zero)
		if !line.Tax.IsZero() {
			t.Errorf("expected zero tax, got %s", line.Tax)
		}
		if !line.Base.Equal(dec("50.00")) {
			t.Errorf("expected base 50.00, got %s", line.Base)
		}
	})
}

func TestSummarizeVAT_QuarterScenario(t *testing.T) {
	// Q1 2025: one sales invoice (1000 excl / 210 VAT), one purchase
	// invoice (400 excl / 84 VAT).
	q1 := Period{Year: 2025, Quarter: 1}
	docs := []*entity.FinancialDocument{
		approvedDoc(entity.DocumentKindSalesInvoice, datePtr(2025, time.February, 10), "1000.00", "210.00"),
		approvedDoc(entity.DocumentKindPurchaseInvoice, datePtr(2025, time.March, 1), "400.00", "84.00"),
	}

	check := func(t *testing.T, summary VATSummary) {
		t.Helper()
		if !summary.Revenue.Equal(dec("1000.00")) {
			t.Errorf("expected revenue 1000.00, got %s", summary.Revenue)
		}
		if !summary.VATCollected.Equal(dec("210.00")) {
			t.Errorf("expected collected 210.00, got %s", summary.VATCollected)
		}
		if !summary.Expenses.Equal(dec("400.00")) {
			t.Errorf("expected expenses 400.00, got %s", summary.Expenses)
		}
		if !summary.VATPaid.Equal(dec("84.00")) {
			t.Errorf("expected paid 84.00, got %s", summary.VATPaid)
		}
		if !summary.NetDue.Equal(dec("126.00")) {
			t.Errorf("expected net due 126.00, got %s", summary.NetDue)
		}
	}

	t.Run("invoice basis", func(t *testing.T) {
		check(t, SummarizeVAT(docs, q1, BasisInvoice))
	})

	t.Run("booked basis falls back to invoice dates", func(t *testing.T) {
		// Neither document has a booked date, so the result is identical.
		check(t, SummarizeVAT(docs, q1, BasisBooked))
	})
}

func TestSummarizeVAT_BankStatementsContributeNothing(t *testing.T) {
	q1 := Period{Year: 2025, Quarter: 1}
	docs := []*entity.FinancialDocument{
		approvedDoc(entity.DocumentKindBankStatement, datePtr(2025, time.January, 5), "999.00", "99.00"),
	}

	summary := SummarizeVAT(docs, q1, BasisInvoice)
	if !summary.Revenue.IsZero() || !summary.Expenses.IsZero() || !summary.NetDue.IsZero() {
		t.Errorf("expected all-zero summary for bank statements, got %+v", summary)
	}
}

func TestSummarizeVAT_EmptyQuarterIsAllZero(t *testing.T) {
	q3 := Period{Year: 2025, Quarter: 3}
	docs := []*entity.FinancialDocument{
		approvedDoc(entity.DocumentKindSalesInvoice, datePtr(2025, time.February, 10), "1000.00", "210.00"),
	}

	summary := SummarizeVAT(docs, q3, BasisInvoice)
	if !summary.Revenue.IsZero() || !summary.VATCollected.IsZero() ||
		!summary.Expenses.IsZero() || !summary.VATPaid.IsZero() || !summary.NetDue.IsZero() {
		t.Errorf("expected all-zero summary for empty quarter, got %+v", summary)
	}
}

func TestSummarizeVAT_OrderInvariance(t *testing.T) {
	q1 := Period{Year: 2025, Quarter: 1}
	docs := []*entity.FinancialDocument{
		approvedDoc(entity.DocumentKindSalesInvoice, datePtr(2025, time.January, 3), "100.10", "21.02"),
		approvedDoc(entity.DocumentKindSalesInvoice, datePtr(2025, time.February, 14), "250.55", "52.62"),
		approvedDoc(entity.DocumentKindPurchaseInvoice, datePtr(2025, time.March, 20), "80.00", "16.80"),
		approvedDoc(entity.DocumentKindReceipt, datePtr(2025, time.March, 21), "12.34", "1.11"),
		approvedDoc(entity.DocumentKindBankStatement, datePtr(2025, time.January, 31), "0", "0"),
	}

	want := SummarizeVAT(docs, q1, BasisInvoice)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := make([]*entity.FinancialDocument, len(docs))
		copy(shuffled, docs)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		got := SummarizeVAT(shuffled, q1, BasisInvoice)
		if !got.NetDue.Equal(want.NetDue) || !got.Revenue.Equal(want.Revenue) {
			t.Fatalf("permutation %d changed the summary: want %+v, got %+v", i, want, got)
		}
	}
}

func TestBreakdownByRate(t *testing.T) {
	q1 := Period{Year: 2025, Quarter: 1}

	t.Run("groups entries by rate across documents", func(t *testing.T) {
		docs := []*entity.FinancialDocument{
			{
				Kind:        entity.DocumentKindSalesInvoice,
				InvoiceDate: datePtr(2025, time.January, 10),
				VATBreakdown: []entity.VATLine{
					{Rate: dec("21"), Base: dec("100.00"), Tax: dec("21.00")},
				},
			},
			{
				Kind:        entity.DocumentKindPurchaseInvoice,
				InvoiceDate: datePtr(2025, time.February, 5),
				// Historical multi-rate breakdown.
				VATBreakdown: []entity.VATLine{
					{Rate: dec("21"), Base: dec("50.00"), Tax: dec("10.50")},
					{Rate: dec("9"), Base: dec("200.00"), Tax: dec("18.00")},
				},
			},
		}

		lines := BreakdownByRate(docs, q1, BasisInvoice)
		if len(lines) != 2 {
			t.Fatalf("expected 2 rate lines, got %d", len(lines))
		}

		// Sorted ascending by rate.
		if !lines[0].Rate.Equal(dec("9")) || !lines[1].Rate.Equal(dec("21")) {
			t.Fatalf("expected rates [9, 21], got [%s, %s]", lines[0].Rate, lines[1].Rate)
		}

		if !lines[1].Base.Equal(dec("150.00")) || !lines[1].Tax.Equal(dec("31.50")) {
			t.Errorf("21%% line: expected base 150.00 / tax 31.50, got %s / %s",
				lines[1].Base, lines[1].Tax)
		}
		if !lines[0].Base.Equal(dec("200.00")) || !lines[0].Tax.Equal(dec("18.00")) {
			t.Errorf("9%% line: expected base 200.00 / tax 18.00, got %s / %s",
				lines[0].Base, lines[0].Tax)
		}
	})

	t.Run("percentages sum to about 100", func(t *testing.T) {
		docs := []*entity.FinancialDocument{
			{
				Kind:        entity.DocumentKindSalesInvoice,
				InvoiceDate: datePtr(2025, time.January, 10),
				VATBreakdown: []entity.VATLine{
					{Rate: dec("21"), Base: dec("100.00"), Tax: dec("21.00")},
					{Rate: dec("9"), Base: dec("100.00"), Tax: dec("9.00")},
					{Rate: dec("0"), Base: dec("100.00"), Tax: dec("0.00")},
				},
			},
		}

		lines := BreakdownByRate(docs, q1, BasisInvoice)
		total := decimal.Zero
		for _, line := range lines {
			total = total.Add(line.SharePercent)
		}

		// Whole-percent rounding can drift by one point.
		diff := total.Sub(dec("100")).Abs()
		if diff.GreaterThan(dec("1")) {
			t.Errorf("expected shares to sum to ~100, got %s", total)
		}
	})

	t.Run("empty when total tax is zero", func(t *testing.T) {
		docs := []*entity.FinancialDocument{
			{
				Kind:        entity.DocumentKindSalesInvoice,
				InvoiceDate: datePtr(2025, time.January, 10),
				VATBreakdown: []entity.VATLine{
					{Rate: dec("0"), Base: dec("500.00"), Tax: dec("0.00")},
				},
			},
		}

		if lines := BreakdownByRate(docs, q1, BasisInvoice); len(lines) != 0 {
			t.Errorf("expected empty breakdown when total tax is zero, got %d lines", len(lines))
		}
	})

	t.Run("empty when no documents fall in the period", func(t *testing.T) {
		if lines := BreakdownByRate(nil, q1, BasisInvoice); len(lines) != 0 {
			t.Errorf("expected empty breakdown, got %d lines", len(lines))
		}
	})
}
