// client/errors.go
package client

import (
	"errors"

	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
)

var (
	// ErrTransactionExpired means a height-bounded confirmation exhausted its
	// block height ceiling. The blockhash embedded in the transaction can
	// provably never be accepted again, so retrying the wait is pointless.
	ErrTransactionExpired = errors.New("transaction expired: block height exceeded")

	// ErrConfirmationTimeout means a wall-clock-bounded confirmation gave up
	// waiting. Unlike ErrTransactionExpired this is not conclusive: the
	// transaction may still land, and callers may re-check its status later.
	ErrConfirmationTimeout = errors.New("transaction confirmation timeout")

	// ErrTransactionUncompiled is returned when an operation needs a compiled
	// transaction message but the recent blockhash was never set.
	ErrTransactionUncompiled = errors.New("transaction has no recent blockhash")
)

// AsRPCError unwraps err to the JSON-RPC error object returned by the node,
// if there is one. Request-level errors carry a code, message and optional
// data payload that callers may want to inspect.
func AsRPCError(err error) (*jsonrpc.RPCError, bool) {
	var rpcErr *jsonrpc.RPCError
	if errors.As(err, &rpcErr) {
		return rpcErr, true
	}
	return nil, false
}
