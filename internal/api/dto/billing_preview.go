package dto

import (
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/types"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/validator"
)

// BillingPreviewRequest selects the month of a billing preview or export
type BillingPreviewRequest struct {
	// year is the four digit calendar year
	Year int `form:"year" json:"year" validate:"omitempty,max=9999"`

	// month is 1 for January through 12 for December
	Month int `form:"month" json:"month"`
}

func (r *BillingPreviewRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	_, err := types.NewBillingMonth(r.Year, r.Month)
	return err
}
