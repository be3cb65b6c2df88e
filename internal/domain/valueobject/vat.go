package valueobject

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/agency-ops/backend/internal/domain/entity"
)

// VATSummary is the net VAT position for one period. It is recomputed fresh
// from the approved document set on every request and never persisted.
type VATSummary struct {
	Revenue      decimal.Decimal // excl-VAT revenue from sales invoices
	VATCollected decimal.Decimal // VAT charged on sales invoices
	Expenses     decimal.Decimal // excl-VAT costs from purchase invoices and receipts
	VATPaid      decimal.Decimal // VAT paid on purchase invoices and receipts
	NetDue       decimal.Decimal // collected - paid; positive is payable, negative a reclaim
}

// RateLine is one row of the VAT-by-rate breakdown: all bases and tax summed
// across every breakdown entry carrying this rate, plus the rate's share of
// the period's total tax.
type RateLine struct {
	Rate         decimal.Decimal
	Base         decimal.Decimal
	Tax          decimal.Decimal
	SharePercent decimal.Decimal
}

// DeriveVATLine computes a single-rate VAT breakdown line from a VAT-inclusive
// total: base = total / (1 + rate/100), tax = total - base, both rounded
// half-up to 2 decimals. This is the write-path derivation used when a
// document is approved with a flat rate.
func DeriveVATLine(totalInclVAT, rate decimal.Decimal) entity.VATLine {
	divisor := decimal.NewFromInt(1).Add(rate.Div(decimal.NewFromInt(100)))
	base := totalInclVAT.Div(divisor).Round(2)
	tax := totalInclVAT.Sub(base).Round(2)

	return entity.VATLine{Rate: rate, Base: base, Tax: tax}
}

// SummarizeVAT filters the documents to the period under the given basis and
// sums the document-level totals into a VATSummary. Sales invoices contribute
// to revenue and VAT collected; purchase invoices and receipts to expenses and
// VAT paid; bank statements contribute to neither.
func SummarizeVAT(docs []*entity.FinancialDocument, period Period, basis AccountingBasis) VATSummary {
	summary := VATSummary{
		Revenue:      decimal.Zero,
		VATCollected: decimal.Zero,
		Expenses:     decimal.Zero,
		VATPaid:      decimal.Zero,
		NetDue:       decimal.Zero,
	}

	for _, doc := range FilterToPeriod(docs, period, basis) {
		excl := decimal.Zero
		if doc.AmountExclVAT != nil {
			excl = *doc.AmountExclVAT
		}
		tax := decimal.Zero
		if doc.VATTotal != nil {
			tax = *doc.VATTotal
		}

		switch doc.Kind {
		case entity.DocumentKindSalesInvoice:
			summary.Revenue = summary.Revenue.Add(excl)
			summary.VATCollected = summary.VATCollected.Add(tax)
		case entity.DocumentKindPurchaseInvoice, entity.DocumentKindReceipt:
			summary.Expenses = summary.Expenses.Add(excl)
			summary.VATPaid = summary.VATPaid.Add(tax)
		}
	}

	summary.NetDue = summary.VATCollected.Sub(summary.VATPaid)
	return summary
}

// BreakdownByRate groups every VAT breakdown entry of the period-filtered
// documents by rate and sums base and tax per rate, rounding each sum to 2
// decimals. Lines are sorted ascending by rate. Each line's share is the
// rate's tax as a whole percentage of the period's total tax; when total tax
// is zero the breakdown is empty.
func BreakdownByRate(docs []*entity.FinancialDocument, period Period, basis AccountingBasis) []RateLine {
	type bucket struct {
		base decimal.Decimal
		tax  decimal.Decimal
	}
	buckets := make(map[string]*bucket)
	rates := make(map[string]decimal.Decimal)

	for _, doc := range FilterToPeriod(docs, period, basis) {
		for _, line := range doc.VATBreakdown {
			key := line.Rate.String()
			b, ok := buckets[key]
			if !ok {
				b = &bucket{base: decimal.Zero, tax: decimal.Zero}
				buckets[key] = b
				rates[key] = line.Rate
			}
			b.base = b.base.Add(line.Base)
			b.tax = b.tax.Add(line.Tax)
		}
	}

	totalTax := decimal.Zero
	for _, b := range buckets {
		totalTax = totalTax.Add(b.tax)
	}
	if totalTax.IsZero() {
		return nil
	}

	lines := make([]RateLine, 0, len(buckets))
	hundred := decimal.NewFromInt(100)
	for key, b := range buckets {
		lines = append(lines, RateLine{
			Rate:         rates[key],
			Base:         b.base.Round(2),
			Tax:          b.tax.Round(2),
			SharePercent: b.tax.Div(totalTax).Mul(hundred).Round(0),
		})
	}

	sort.Slice(lines, func(i, j int) bool {
		return lines[i].Rate.LessThan(lines[j].Rate)
	})

	return lines
}
