// client/client.go
package client

import (
	"context"
	"time"

	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/solana-client/blockhash"
)

// Client talks to a Solana node over its request/response RPC interface.
// It is safe for concurrent use; the blockhash cache is the only shared
// mutable state and guards itself.
type Client struct {
	transport  Transport
	commitment rpc.CommitmentType
	cache      *blockhash.Cache
	logger     *zap.Logger
	metrics    *Metrics

	pollInterval   time.Duration
	confirmTimeout time.Duration

	now   func() time.Time
	sleep func(context.Context, time.Duration) error
}

// New builds a client for the node at endpoint. The default commitment is
// Finalized and blockhash caching is off unless WithBlockhashCache is given.
func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		commitment: rpc.CommitmentFinalized,
		logger:     zap.NewNop(),
		now:        time.Now,
		sleep:      sleepCtx,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.transport == nil {
		c.transport = rpc.New(endpoint)
	}
	c.logger = c.logger.Named("solana-client")
	return c
}

// Commitment returns the client's default commitment level.
func (c *Client) Commitment() rpc.CommitmentType {
	return c.commitment
}

// resolveCommitment substitutes the client default for an unset level.
func (c *Client) resolveCommitment(commitment rpc.CommitmentType) rpc.CommitmentType {
	if commitment == "" {
		return c.commitment
	}
	return commitment
}
