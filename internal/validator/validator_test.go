package validator

import (
	"testing"

	ierr "github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/errors"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scheduleRequest struct {
	Days   types.DaysOfWeek `validate:"omitempty,dive,weekday"`
	Months []int            `validate:"dive,calendar_month"`
}

func TestValidateRequest(t *testing.T) {
	NewValidator()

	tests := []struct {
		name    string
		req     scheduleRequest
		wantErr bool
		hint    string
	}{
		{name: "valid", req: scheduleRequest{Days: types.DaysOfWeek{"MON", "FRI"}, Months: []int{1, 12}}},
		{name: "empty", req: scheduleRequest{}},
		{name: "unknown weekday", req: scheduleRequest{Days: types.DaysOfWeek{"MON", "FUNDAY"}}, wantErr: true, hint: "Invalid value for Days[1]"},
		{name: "lowercase weekday", req: scheduleRequest{Days: types.DaysOfWeek{"mon"}}, wantErr: true},
		{name: "month 13", req: scheduleRequest{Months: []int{13}}, wantErr: true, hint: "Invalid value for Months[0]"},
		{name: "month 0", req: scheduleRequest{Months: []int{0}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequest(&tt.req)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, ierr.IsValidation(err))
			if tt.hint != "" {
				assert.Equal(t, tt.hint, ierr.GetHint(err))
			}
		})
	}
}
