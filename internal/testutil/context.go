package testutil

import (
	"context"

	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/types"
)

// TestCompanyID is the tenant every test context belongs to
const TestCompanyID = "comp_test"

func SetupContext() context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, types.CtxCompanyID, TestCompanyID)
	ctx = context.WithValue(ctx, types.CtxUserID, types.DefaultUserID)
	ctx = context.WithValue(ctx, types.CtxRequestID, types.GenerateUUID())
	return ctx
}
