// Package export renders billing previews as downloadable CSV files.
package export

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"

	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/domain/billing"
	ierr "github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/errors"
	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

// ContentTypeCSV is the media type of every export
const ContentTypeCSV = "text/csv"

// File is a rendered export ready to be served as an attachment
type File struct {
	Filename    string
	ContentType string
	Content     []byte
}

// marshal writes rows with a header line. Fields containing commas, quotes or
// newlines are wrapped in double quotes with inner quotes doubled.
func marshal(rows any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gocsv.Marshal(rows, &buf); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to render CSV").
			Mark(ierr.ErrSystem)
	}
	return buf.Bytes(), nil
}

func newFile(name string, content []byte) *File {
	return &File{
		Filename:    name,
		ContentType: ContentTypeCSV,
		Content:     content,
	}
}

// money formats an amount with two decimals
func money(d decimal.Decimal) string {
	return d.StringFixed(billing.CurrencyPrecision)
}

// percent renders a fractional rate such as 0.0825 as 8.25%
func percent(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).String() + "%"
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// safeFilename keeps letters, digits, dash, dot and underscore from a client
// name and collapses the rest into single underscores
func safeFilename(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			return r
		case r == '-' || r == '_' || r == '.':
			return r
		default:
			return '_'
		}
	}, strings.TrimSpace(name))
	for strings.Contains(cleaned, "__") {
		cleaned = strings.ReplaceAll(cleaned, "__", "_")
	}
	cleaned = strings.Trim(cleaned, "._")
	if cleaned == "" {
		return "client"
	}
	return cleaned
}

func filename(p *billing.BillingPreview, kind string) string {
	return fmt.Sprintf("%s_%s_%04d_%02d.csv", safeFilename(p.ClientName), kind, p.Year, p.Month)
}
