package service

import (
	"errors"
	"fmt"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"

	"github.com/mmynk/dahira/internal/ledger"
	"github.com/mmynk/dahira/internal/storage"
	"github.com/mmynk/dahira/pkg/api"
)

func TestToConnectError(t *testing.T) {
	tests := []struct {
		err  error
		want connect.Code
	}{
		{fmt.Errorf("%w: amount", ledger.ErrValidation), connect.CodeInvalidArgument},
		{fmt.Errorf("member x: %w", storage.ErrNotFound), connect.CodeNotFound},
		{ledger.ErrNotFound, connect.CodeNotFound},
		{storage.ErrDuplicate, connect.CodeAlreadyExists},
		{ledger.ErrNotAdult, connect.CodeFailedPrecondition},
		{ledger.ErrEventCompleted, connect.CodeFailedPrecondition},
		{ledger.ErrCodesNotSet, connect.CodeFailedPrecondition},
		{ledger.ErrInvalidCode, connect.CodePermissionDenied},
		{errors.New("disk full"), connect.CodeInternal},
		{connect.NewError(connect.CodeUnavailable, errors.New("busy")), connect.CodeUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, connect.CodeOf(toConnectError(tt.err)))
		})
	}
}

func TestValidateRequest(t *testing.T) {
	err := validateRequest(&api.RecordPaymentRequest{MemberID: "m1", Amount: -5})
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
	assert.Contains(t, err.Error(), "eventId is required")
	assert.Contains(t, err.Error(), "amount must be greater than 0")

	assert.NoError(t, validateRequest(&api.RecordPaymentRequest{MemberID: "m1", EventID: "e1", Amount: 1}))
}
