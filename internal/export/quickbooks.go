package export

import (
	"fmt"
	"strings"

	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/domain/billing"
	"github.com/shopspring/decimal"
)

const (
	quickBooksDateLayout = "01/02/2006"

	TaxCodeTaxable    = "TAX"
	TaxCodeNonTaxable = "NON"
)

// QuickBooksOptions carries account level settings of the invoice import
type QuickBooksOptions struct {
	// InvoicePrefix starts every invoice number, as in US-202404
	InvoicePrefix string
}

// QuickBooksRow is one line of a QuickBooks invoice import
type QuickBooksRow struct {
	InvoiceNo       string `csv:"InvoiceNo"`
	Customer        string `csv:"Customer"`
	InvoiceDate     string `csv:"InvoiceDate"`
	DueDate         string `csv:"DueDate"`
	ItemDescription string `csv:"ItemDescription"`
	ItemQuantity    string `csv:"ItemQuantity"`
	ItemRate        string `csv:"ItemRate"`
	ItemAmount      string `csv:"ItemAmount"`
	TaxCode         string `csv:"TaxCode"`
	Memo            string `csv:"Memo"`
}

// InvoiceNumber is deterministic per client and month
func InvoiceNumber(prefix string, p *billing.BillingPreview) string {
	if prefix == "" {
		return fmt.Sprintf("%04d%02d", p.Year, p.Month)
	}
	return fmt.Sprintf("%s-%04d%02d", prefix, p.Year, p.Month)
}

// QuickBooksCSV renders the included lines net of tax plus one sales tax row
func QuickBooksCSV(p *billing.BillingPreview, opts QuickBooksOptions) (*File, error) {
	m := p.BillingMonth()
	header := QuickBooksRow{
		InvoiceNo:   InvoiceNumber(opts.InvoicePrefix, p),
		Customer:    p.ClientName,
		InvoiceDate: m.FirstDay().Format(quickBooksDateLayout),
		DueDate:     m.LastDay().Format(quickBooksDateLayout),
	}
	defaultMemo := "Service for " + m.String()

	included := p.IncludedLines()
	rows := make([]*QuickBooksRow, 0, len(included)+1)
	for _, l := range included {
		row := header
		row.ItemDescription = describe(l)
		row.ItemQuantity = l.Quantity.String()
		row.ItemRate = money(itemRate(l))
		row.ItemAmount = money(l.NetAmount)
		row.TaxCode = TaxCodeNonTaxable
		if l.LineTax.IsPositive() {
			row.TaxCode = TaxCodeTaxable
		}
		row.Memo = defaultMemo
		if l.OverrideNotes != nil && strings.TrimSpace(*l.OverrideNotes) != "" {
			row.Memo = *l.OverrideNotes
		}
		rows = append(rows, &row)
	}

	tax := header
	tax.ItemDescription = "Sales Tax (" + percent(p.TaxRate) + ")"
	tax.ItemQuantity = "1"
	tax.ItemRate = money(p.TaxAmount)
	tax.ItemAmount = money(p.TaxAmount)
	tax.TaxCode = TaxCodeNonTaxable
	tax.Memo = defaultMemo
	rows = append(rows, &tax)

	content, err := marshal(rows)
	if err != nil {
		return nil, err
	}
	return newFile(filename(p, "QB_invoice"), content), nil
}

// itemRate spreads the net amount over the quantity
func itemRate(l *billing.BillingLineItem) decimal.Decimal {
	if l.Quantity.IsZero() {
		return l.NetAmount
	}
	return l.NetAmount.DivRound(l.Quantity, billing.CurrencyPrecision)
}

// describe builds the invoice text from location, category, pro-ration and notes
func describe(l *billing.BillingLineItem) string {
	if l.Kind == billing.LineItemKindService {
		parts := []string{l.LocationName}
		if l.Description != "" {
			parts = append(parts, l.Description)
		}
		desc := strings.Join(parts, " - ")
		if l.PerformedDate != nil {
			desc += " (" + l.PerformedDate.Format(quickBooksDateLayout) + ")"
		}
		return desc
	}

	parts := []string{l.LocationName}
	if l.Category != "" {
		parts = append(parts, l.Category)
	}
	desc := strings.Join(parts, " - ")
	if l.IsProRated {
		desc += fmt.Sprintf(" (pro-rated %d of %d service days", l.ActiveDays, l.ScheduledDays)
		if l.PauseWindow != nil {
			desc += fmt.Sprintf(", paused days %d-%d", l.PauseWindow.StartDay, l.PauseWindow.EndDay)
		}
		desc += ")"
	}
	if l.OverrideNotes != nil && strings.TrimSpace(*l.OverrideNotes) != "" {
		desc += " - " + strings.TrimSpace(*l.OverrideNotes)
	}
	return desc
}
