package client

import "github.com/gagliardetto/solana-go/rpc"

// Commitment levels form a total order: Processed < Confirmed < Finalized.
// Confirmation statuses reported by the network carry the same three values
// and share the ranking, so a target commitment and an observed status can
// be compared directly.

func commitmentRank(c rpc.CommitmentType) int {
	switch c {
	case rpc.CommitmentProcessed:
		return 0
	case rpc.CommitmentConfirmed:
		return 1
	case rpc.CommitmentFinalized:
		return 2
	default:
		return -1
	}
}

func statusRank(s rpc.ConfirmationStatusType) int {
	switch s {
	case rpc.ConfirmationStatusProcessed:
		return 0
	case rpc.ConfirmationStatusConfirmed:
		return 1
	case rpc.ConfirmationStatusFinalized:
		return 2
	default:
		return -1
	}
}

// CommitmentSatisfied reports whether an observed confirmation status meets
// the target commitment. A status exactly equal to the target counts as
// satisfied.
func CommitmentSatisfied(observed rpc.ConfirmationStatusType, target rpc.CommitmentType) bool {
	return statusRank(observed) >= commitmentRank(target)
}
