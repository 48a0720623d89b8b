package client

import (
	"time"

	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/solana-client/blockhash"
)

const (
	// DefaultPollInterval is the pause between signature status polls.
	DefaultPollInterval = 500 * time.Millisecond
	// DefaultConfirmationTimeout bounds a confirmation wait that has no block
	// height ceiling.
	DefaultConfirmationTimeout = 30 * time.Second
)

// TxOpts controls a single transaction submission.
//
// The zero value submits with preflight checks at the client's default
// commitment and waits for confirmation.
type TxOpts struct {
	// SkipPreflight disables the node-side simulation run before the
	// transaction is accepted into the mempool.
	SkipPreflight bool
	// SkipConfirmation returns right after dispatch instead of waiting for
	// the transaction to reach the preflight commitment.
	SkipConfirmation bool
	// PreflightCommitment is the commitment used for preflight and as the
	// confirmation target. Empty means the client default.
	PreflightCommitment rpc.CommitmentType
	// LastValidBlockHeight bounds the confirmation wait. When nil the height
	// recorded while fetching the blockhash is used; if the blockhash was
	// supplied by the caller there is no bound and confirmation falls back
	// to a wall-clock timeout.
	LastValidBlockHeight *uint64
}

// ConfirmOpts controls a confirmation wait. It is consumed by a single call
// and never retained.
type ConfirmOpts struct {
	// Commitment the transaction must reach. Empty means the client default.
	Commitment rpc.CommitmentType
	// LastValidBlockHeight selects height-bounded waiting: polling continues
	// while the chain height stays at or below it. Nil selects wall-clock
	// waiting bounded by Timeout.
	LastValidBlockHeight *uint64
	// PollInterval between status queries. Zero means the client's
	// WithPollInterval setting, or DefaultPollInterval.
	PollInterval time.Duration
	// Timeout for wall-clock waiting. Zero means the client's
	// WithConfirmTimeout setting, or DefaultConfirmationTimeout. Ignored in
	// height-bounded mode.
	Timeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithTransport replaces the transport built from the endpoint URL, e.g.
// with a pool.Pool spanning several nodes.
func WithTransport(t Transport) Option {
	return func(c *Client) {
		c.transport = t
	}
}

// WithCommitment sets the client's default commitment level.
func WithCommitment(commitment rpc.CommitmentType) Option {
	return func(c *Client) {
		c.commitment = commitment
	}
}

// WithBlockhashCache enables blockhash caching for SendTransaction. Without
// a cache every submission fetches a fresh blockhash from the network.
func WithBlockhashCache(cache *blockhash.Cache) Option {
	return func(c *Client) {
		c.cache = cache
	}
}

// WithPollInterval sets the client-wide pause between signature status
// polls, used when a ConfirmOpts does not carry its own.
func WithPollInterval(d time.Duration) Option {
	return func(c *Client) {
		c.pollInterval = d
	}
}

// WithConfirmTimeout sets the client-wide wall-clock bound on confirmation
// waits that have no block height ceiling.
func WithConfirmTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.confirmTimeout = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithMetrics attaches prometheus instrumentation.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}
