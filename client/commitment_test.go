package client

import (
	"testing"

	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
)

func TestCommitmentSatisfied(t *testing.T) {
	tests := []struct {
		name     string
		observed rpc.ConfirmationStatusType
		target   rpc.CommitmentType
		want     bool
	}{
		{"processed meets processed", rpc.ConfirmationStatusProcessed, rpc.CommitmentProcessed, true},
		{"confirmed meets confirmed", rpc.ConfirmationStatusConfirmed, rpc.CommitmentConfirmed, true},
		{"finalized meets finalized", rpc.ConfirmationStatusFinalized, rpc.CommitmentFinalized, true},
		{"confirmed exceeds processed", rpc.ConfirmationStatusConfirmed, rpc.CommitmentProcessed, true},
		{"finalized exceeds confirmed", rpc.ConfirmationStatusFinalized, rpc.CommitmentConfirmed, true},
		{"processed below confirmed", rpc.ConfirmationStatusProcessed, rpc.CommitmentConfirmed, false},
		{"processed below finalized", rpc.ConfirmationStatusProcessed, rpc.CommitmentFinalized, false},
		{"confirmed below finalized", rpc.ConfirmationStatusConfirmed, rpc.CommitmentFinalized, false},
		{"unknown status never satisfies", rpc.ConfirmationStatusType("recent"), rpc.CommitmentProcessed, false},
		{"empty status never satisfies", rpc.ConfirmationStatusType(""), rpc.CommitmentProcessed, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CommitmentSatisfied(tt.observed, tt.target))
		})
	}
}
