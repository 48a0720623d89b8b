package pool

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
)

var (
	// ErrNoNodes means the pool was constructed without any endpoint URLs.
	ErrNoNodes = errors.New("no RPC node URLs provided")

	// ErrNoHealthyNodes means every endpoint is currently marked unhealthy.
	ErrNoHealthyNodes = errors.New("no healthy RPC nodes available")
)

// Error wraps a request failure with the endpoint and RPC method it came
// from. It unwraps to the underlying error, so errors.Is and errors.As see
// through it.
type Error struct {
	Err     error
	NodeURL string
	Method  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("rpc %s at %s: %v", e.Method, e.NodeURL, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// isRetryable reports whether the failure is transient enough that the same
// request may succeed against another node. A JSON-RPC error object is the
// node's actual answer and is never retried; only transport-level failures
// are.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	var rpcErr *jsonrpc.RPCError
	if errors.As(err, &rpcErr) {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "no such host") ||
		strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "too many requests") ||
		strings.Contains(msg, "unexpected eof")
}

// isCritical reports whether the failure makes the endpoint useless until an
// operator intervenes, for example bad credentials. Such nodes are taken out
// of rotation rather than retried.
func isCritical(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unauthorized") ||
		strings.Contains(msg, "forbidden") ||
		strings.Contains(msg, "api key")
}
