package types

import (
	"context"

	ierr "github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/errors"
)

// ContextKey is a type for the keys of values stored in the context
type ContextKey string

const (
	CtxRequestID ContextKey = "ctx_request_id"
	CtxCompanyID ContextKey = "ctx_company_id"
	CtxUserID    ContextKey = "ctx_user_id"

	// DefaultUserID fills audit columns when no X-User-ID is sent
	DefaultUserID = "00000000-0000-0000-0000-000000000000"

	HeaderRequestID = "X-Request-ID"
	HeaderCompanyID = "X-Company-ID"
	HeaderUserID    = "X-User-ID"
)

func GetUserID(ctx context.Context) string {
	if userID, ok := ctx.Value(CtxUserID).(string); ok {
		return userID
	}
	return ""
}

func GetCompanyID(ctx context.Context) string {
	if companyID, ok := ctx.Value(CtxCompanyID).(string); ok {
		return companyID
	}
	return ""
}

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(CtxRequestID).(string); ok {
		return requestID
	}
	return ""
}

// SetCompanyID sets the company ID in the context
func SetCompanyID(ctx context.Context, companyID string) context.Context {
	return context.WithValue(ctx, CtxCompanyID, companyID)
}

// SetUserID sets the user ID in the context
func SetUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, CtxUserID, userID)
}

// ValidateCompanyContext fails when no company was attached to ctx
func ValidateCompanyContext(ctx context.Context) error {
	if ctx == nil || GetCompanyID(ctx) == "" {
		return ierr.NewError("no company context found in context").
			WithHintf("%s header is required", HeaderCompanyID).
			Mark(ierr.ErrValidation)
	}
	return nil
}
