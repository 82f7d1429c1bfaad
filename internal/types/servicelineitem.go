package types

import (
	"slices"

	ierr "github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/errors"
)

// ServiceLineItemStatus tracks an ad-hoc charge from scheduling to invoicing
type ServiceLineItemStatus string

const (
	ServiceLineItemStatusPending   ServiceLineItemStatus = "PENDING"
	ServiceLineItemStatusCompleted ServiceLineItemStatus = "COMPLETED"
	ServiceLineItemStatusApproved  ServiceLineItemStatus = "APPROVED"
	ServiceLineItemStatusInvoiced  ServiceLineItemStatus = "INVOICED"
	ServiceLineItemStatusVoid      ServiceLineItemStatus = "VOID"
	ServiceLineItemStatusCancelled ServiceLineItemStatus = "CANCELLED"
)

func (s ServiceLineItemStatus) String() string {
	return string(s)
}

func (s ServiceLineItemStatus) Validate() error {
	allowedValues := []ServiceLineItemStatus{
		ServiceLineItemStatusPending,
		ServiceLineItemStatusCompleted,
		ServiceLineItemStatusApproved,
		ServiceLineItemStatusInvoiced,
		ServiceLineItemStatusVoid,
		ServiceLineItemStatusCancelled,
	}
	if !slices.Contains(allowedValues, s) {
		return ierr.NewError("invalid service line item status").
			WithHintf("Service line item status must be one of %v", allowedValues).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// IsBillable reports whether the charge should appear on an invoice
func (s ServiceLineItemStatus) IsBillable() bool {
	return s != ServiceLineItemStatusVoid && s != ServiceLineItemStatusCancelled
}
