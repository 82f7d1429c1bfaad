package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/domain/billing"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/domain/facility"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testPreview() *billing.BillingPreview {
	performed := time.Date(2024, 4, 18, 0, 0, 0, 0, time.UTC)
	return &billing.BillingPreview{
		ClientID:   "client_1",
		ClientName: `Acme, "West" Campus`,
		CompanyID:  "comp_1",
		Year:       2024,
		Month:      4,
		Currency:   "USD",
		TaxRate:    dec("0.0825"),
		LineItems: []*billing.BillingLineItem{
			{
				Kind:              billing.LineItemKindFacility,
				FacilityProfileID: "fac_a",
				LocationName:      "Building A",
				Category:          "Office",
				Status:            "ACTIVE",
				Frequency:         5,
				DaysOfWeek:        types.DaysOfWeek{types.WeekdayMonday, types.WeekdayFriday},
				TaxBehavior:       types.TaxBehaviorTaxable,
				EffectiveRate:     dec("1000"),
				Quantity:          dec("1"),
				ScheduledDays:     22,
				ActiveDays:        14,
				PauseWindow:       &facility.PauseWindow{StartDay: 10, EndDay: 20},
				Amount:            dec("636.36"),
				LineTax:           dec("52.50"),
				LineTotal:         dec("688.86"),
				NetAmount:         dec("636.36"),
				IncludedInTotal:   true,
				IsOverridden:      true,
				IsProRated:        true,
				OverrideNotes:     lo.ToPtr("Closed for renovation,\nsee ticket"),
			},
			{
				Kind:              billing.LineItemKindFacility,
				FacilityProfileID: "fac_b",
				LocationName:      "Building B",
				Category:          "Retail",
				Status:            "CLOSED",
				TaxBehavior:       types.TaxBehaviorTaxable,
				EffectiveRate:     dec("500"),
				Quantity:          dec("1"),
				Amount:            decimal.Zero,
				LineTax:           decimal.Zero,
				LineTotal:         decimal.Zero,
				NetAmount:         decimal.Zero,
			},
			{
				Kind:              billing.LineItemKindService,
				ServiceLineItemID: "sli_1",
				LocationName:      billing.AdHocLocationName,
				Category:          "Service",
				Description:       "Window cleaning",
				Status:            "COMPLETED",
				TaxBehavior:       types.TaxBehaviorExempt,
				EffectiveRate:     dec("75"),
				Quantity:          dec("2"),
				Amount:            dec("150"),
				LineTax:           decimal.Zero,
				LineTotal:         dec("150"),
				NetAmount:         dec("150"),
				IncludedInTotal:   true,
				PerformedDate:     &performed,
			},
		},
		Subtotal:           dec("786.36"),
		TaxAmount:          dec("52.50"),
		Total:              dec("838.86"),
		PreviousMonthTotal: lo.ToPtr(dec("1082.50")),
		DeltaAmount:        lo.ToPtr(dec("-243.64")),
	}
}

func readCSV(t *testing.T, content []byte) [][]string {
	t.Helper()
	records, err := csv.NewReader(bytes.NewReader(content)).ReadAll()
	require.NoError(t, err)
	return records
}

func TestGenericCSV(t *testing.T) {
	file, err := GenericCSV(testPreview())
	require.NoError(t, err)

	assert.Equal(t, "Acme_West_Campus_billing_2024_04.csv", file.Filename)
	assert.Equal(t, ContentTypeCSV, file.ContentType)

	records := readCSV(t, file.Content)
	require.Len(t, records, 1+3+5)
	assert.Equal(t, []string{
		"Location", "Category", "Status", "Frequency", "Days Of Week", "Scheduled Days",
		"Active Days", "Pause Window", "Effective Rate", "Billed Amount", "Tax Behavior",
		"Tax", "Total", "Included", "Overridden", "Pro Rated", "Notes",
	}, records[0])

	first := records[1]
	assert.Equal(t, "Building A", first[0])
	assert.Equal(t, "MON FRI", first[4])
	assert.Equal(t, "22", first[5])
	assert.Equal(t, "14", first[6])
	assert.Equal(t, "10-20", first[7])
	assert.Equal(t, "1000.00", first[8])
	assert.Equal(t, "636.36", first[9])
	assert.Equal(t, "52.50", first[11])
	assert.Equal(t, "688.86", first[12])
	assert.Equal(t, []string{"Yes", "Yes", "Yes"}, first[13:16])
	assert.Equal(t, "Closed for renovation,\nsee ticket", first[16])

	closed := records[2]
	assert.Equal(t, "No", closed[13])
	assert.Equal(t, "0.00", closed[12])

	service := records[3]
	assert.Equal(t, billing.AdHocLocationName, service[0])
	assert.Equal(t, "", service[3])
	assert.Equal(t, "Window cleaning", service[16])

	summary := records[4:]
	assert.Equal(t, []string{"Subtotal", "786.36"}, []string{summary[0][0], summary[0][12]})
	assert.Equal(t, []string{"Tax (8.25%)", "52.50"}, []string{summary[1][0], summary[1][12]})
	assert.Equal(t, []string{"Total", "838.86"}, []string{summary[2][0], summary[2][12]})
	assert.Equal(t, []string{"Previous Month Total", "1082.50"}, []string{summary[3][0], summary[3][12]})
	assert.Equal(t, []string{"Delta", "-243.64"}, []string{summary[4][0], summary[4][12]})
}

func TestGenericCSV_NullPreviousMonthIsBlank(t *testing.T) {
	p := testPreview()
	p.PreviousMonthTotal = nil
	p.DeltaAmount = nil

	file, err := GenericCSV(p)
	require.NoError(t, err)

	records := readCSV(t, file.Content)
	last := records[len(records)-2:]
	assert.Equal(t, "", last[0][12])
	assert.Equal(t, "", last[1][12])
}

func TestGenericCSV_QuotesSpecialCharacters(t *testing.T) {
	p := testPreview()
	p.LineItems[0].LocationName = `Lobby "North", 2nd floor`

	file, err := GenericCSV(p)
	require.NoError(t, err)

	assert.Contains(t, string(file.Content), `"Lobby ""North"", 2nd floor"`)
	assert.Contains(t, string(file.Content), "\"Closed for renovation,\nsee ticket\"")
}

func TestQuickBooksCSV(t *testing.T) {
	file, err := QuickBooksCSV(testPreview(), QuickBooksOptions{InvoicePrefix: "US"})
	require.NoError(t, err)

	assert.Equal(t, "Acme_West_Campus_QB_invoice_2024_04.csv", file.Filename)

	records := readCSV(t, file.Content)
	require.Len(t, records, 1+2+1, "closed line is left out, tax row is added")
	assert.Equal(t, []string{
		"InvoiceNo", "Customer", "InvoiceDate", "DueDate", "ItemDescription",
		"ItemQuantity", "ItemRate", "ItemAmount", "TaxCode", "Memo",
	}, records[0])

	for _, r := range records[1:] {
		assert.Equal(t, "US-202404", r[0])
		assert.Equal(t, `Acme, "West" Campus`, r[1])
		assert.Equal(t, "04/01/2024", r[2])
		assert.Equal(t, "04/30/2024", r[3])
	}

	facilityRow := records[1]
	assert.Equal(t, "Building A - Office (pro-rated 14 of 22 service days, paused days 10-20) - Closed for renovation,\nsee ticket", facilityRow[4])
	assert.Equal(t, "1", facilityRow[5])
	assert.Equal(t, "636.36", facilityRow[6])
	assert.Equal(t, "636.36", facilityRow[7])
	assert.Equal(t, TaxCodeTaxable, facilityRow[8])
	assert.Equal(t, "Closed for renovation,\nsee ticket", facilityRow[9])

	serviceRow := records[2]
	assert.Equal(t, "Ad-hoc services - Window cleaning (04/18/2024)", serviceRow[4])
	assert.Equal(t, "2", serviceRow[5])
	assert.Equal(t, "75.00", serviceRow[6])
	assert.Equal(t, "150.00", serviceRow[7])
	assert.Equal(t, TaxCodeNonTaxable, serviceRow[8])
	assert.Equal(t, "Service for April 2024", serviceRow[9])

	taxRow := records[3]
	assert.Equal(t, "Sales Tax (8.25%)", taxRow[4])
	assert.Equal(t, "52.50", taxRow[7])
	assert.Equal(t, TaxCodeNonTaxable, taxRow[8])
}

func TestInvoiceNumber(t *testing.T) {
	p := &billing.BillingPreview{Year: 2023, Month: 1}
	assert.Equal(t, "US-202301", InvoiceNumber("US", p))
	assert.Equal(t, "202301", InvoiceNumber("", p))
}

func TestSafeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "Acme", "Acme"},
		{"spaces", "Acme Corp", "Acme_Corp"},
		{"path separators", "../etc/passwd", "etc_passwd"},
		{"non ascii", "Café", "Caf"},
		{"empty", "   ", "client"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, safeFilename(tt.input))
		})
	}
}
