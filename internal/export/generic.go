package export

import (
	"strconv"

	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/domain/billing"
	"github.com/samber/lo"
)

// GenericRow is one line of the generic export. Summary rows reuse the
// Location column as their label and Total as their value.
type GenericRow struct {
	Location      string `csv:"Location"`
	Category      string `csv:"Category"`
	Status        string `csv:"Status"`
	Frequency     string `csv:"Frequency"`
	DaysOfWeek    string `csv:"Days Of Week"`
	ScheduledDays string `csv:"Scheduled Days"`
	ActiveDays    string `csv:"Active Days"`
	PauseWindow   string `csv:"Pause Window"`
	EffectiveRate string `csv:"Effective Rate"`
	BilledAmount  string `csv:"Billed Amount"`
	TaxBehavior   string `csv:"Tax Behavior"`
	Tax           string `csv:"Tax"`
	Total         string `csv:"Total"`
	Included      string `csv:"Included"`
	Overridden    string `csv:"Overridden"`
	ProRated      string `csv:"Pro Rated"`
	Notes         string `csv:"Notes"`
}

// GenericCSV renders every line of the preview, included or not, followed by
// the summary rows
func GenericCSV(p *billing.BillingPreview) (*File, error) {
	rows := make([]*GenericRow, 0, len(p.LineItems)+5)
	for _, l := range p.LineItems {
		rows = append(rows, genericLine(l))
	}
	rows = append(rows, genericSummary(p)...)

	content, err := marshal(rows)
	if err != nil {
		return nil, err
	}
	return newFile(filename(p, "billing"), content), nil
}

func genericLine(l *billing.BillingLineItem) *GenericRow {
	row := &GenericRow{
		Location:      l.LocationName,
		Category:      l.Category,
		Status:        l.Status,
		EffectiveRate: money(l.EffectiveRate),
		BilledAmount:  money(l.Amount),
		TaxBehavior:   string(l.TaxBehavior),
		Tax:           money(l.LineTax),
		Total:         money(l.LineTotal),
		Included:      yesNo(l.IncludedInTotal),
		Overridden:    yesNo(l.IsOverridden),
		ProRated:      yesNo(l.IsProRated),
		Notes:         lo.FromPtr(l.OverrideNotes),
	}

	if l.Kind == billing.LineItemKindFacility {
		row.Frequency = strconv.Itoa(l.Frequency)
		row.DaysOfWeek = l.DaysOfWeek.String()
		row.ScheduledDays = strconv.Itoa(l.ScheduledDays)
		row.ActiveDays = strconv.Itoa(l.ActiveDays)
		if l.PauseWindow != nil {
			row.PauseWindow = strconv.Itoa(l.PauseWindow.StartDay) + "-" + strconv.Itoa(l.PauseWindow.EndDay)
		}
	} else {
		row.Notes = l.Description
	}
	return row
}

func genericSummary(p *billing.BillingPreview) []*GenericRow {
	previous, delta := "", ""
	if p.PreviousMonthTotal != nil {
		previous = money(*p.PreviousMonthTotal)
	}
	if p.DeltaAmount != nil {
		delta = money(*p.DeltaAmount)
	}

	return []*GenericRow{
		{Location: "Subtotal", Total: money(p.Subtotal)},
		{Location: "Tax (" + percent(p.TaxRate) + ")", Total: money(p.TaxAmount)},
		{Location: "Total", Total: money(p.Total)},
		{Location: "Previous Month Total", Total: previous},
		{Location: "Delta", Total: delta},
	}
}
