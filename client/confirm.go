// client/confirm.go
package client

import (
	"context"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"
)

// ConfirmTransaction waits until sig reaches the client's default commitment
// or the default wall-clock timeout elapses. See ConfirmTransactionWithOpts.
func (c *Client) ConfirmTransaction(ctx context.Context, sig solana.Signature) (*rpc.SignatureStatusesResult, error) {
	return c.ConfirmTransactionWithOpts(ctx, sig, ConfirmOpts{})
}

// ConfirmTransactionWithOpts polls the signature status until the
// transaction reaches opts.Commitment, returning the final observed status.
// A status at exactly the target commitment counts as reached.
//
// The wait is bounded one of two ways. With opts.LastValidBlockHeight set,
// polling continues while the chain's block height stays at or below the
// ceiling; exhaustion returns ErrTransactionExpired, which is conclusive
// because the transaction's blockhash can never be accepted afterwards.
// Without a ceiling the wait is bounded by opts.Timeout and exhaustion
// returns ErrConfirmationTimeout, which only means the status is unknown.
//
// A request-level error from any poll aborts the wait immediately. An error
// recorded on the status itself does not: the transaction did reach the
// commitment, and the caller inspects the returned status for its outcome.
func (c *Client) ConfirmTransactionWithOpts(ctx context.Context, sig solana.Signature, opts ConfirmOpts) (*rpc.SignatureStatusesResult, error) {
	commitment := c.resolveCommitment(opts.Commitment)
	interval := opts.PollInterval
	if interval <= 0 {
		interval = c.pollInterval
	}
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = c.confirmTimeout
	}
	if timeout <= 0 {
		timeout = DefaultConfirmationTimeout
	}

	start := c.now()
	logger := c.logger.With(
		zap.String("signature", sig.String()),
		zap.String("commitment", string(commitment)),
	)

	// Both modes run the same loop; only the continuation predicate and the
	// exhaustion error differ.
	var shouldContinue func(context.Context) (bool, error)
	var exhausted error
	var exhaustedOutcome string
	if opts.LastValidBlockHeight != nil {
		lastValid := *opts.LastValidBlockHeight
		shouldContinue = func(ctx context.Context) (bool, error) {
			height, err := c.transport.GetBlockHeight(ctx, commitment)
			if err != nil {
				return false, err
			}
			return height <= lastValid, nil
		}
		exhausted = ErrTransactionExpired
		exhaustedOutcome = "expired"
	} else {
		deadline := start.Add(timeout)
		shouldContinue = func(context.Context) (bool, error) {
			return c.now().Before(deadline), nil
		}
		exhausted = ErrConfirmationTimeout
		exhaustedOutcome = "timeout"
	}

	for {
		if err := ctx.Err(); err != nil {
			c.metrics.trackConfirmation("canceled", start)
			return nil, err
		}

		cont, err := shouldContinue(ctx)
		if err != nil {
			c.metrics.trackConfirmation("error", start)
			logger.Error("Confirmation aborted", zap.Error(err))
			return nil, err
		}
		if !cont {
			c.metrics.trackConfirmation(exhaustedOutcome, start)
			logger.Warn("Confirmation exhausted", zap.Error(exhausted))
			return nil, exhausted
		}

		c.metrics.trackStatusPoll()
		resp, err := c.transport.GetSignatureStatuses(ctx, false, sig)
		if err != nil {
			c.metrics.trackConfirmation("error", start)
			logger.Error("GetSignatureStatuses error", zap.Error(err))
			return nil, err
		}
		if len(resp.Value) > 0 && resp.Value[0] != nil {
			status := resp.Value[0]
			if CommitmentSatisfied(status.ConfirmationStatus, commitment) {
				c.metrics.trackConfirmation("confirmed", start)
				logger.Debug("Transaction confirmed",
					zap.String("status", string(status.ConfirmationStatus)),
					zap.Uint64("slot", status.Slot))
				return status, nil
			}
		}

		if err := c.sleep(ctx, interval); err != nil {
			c.metrics.trackConfirmation("canceled", start)
			return nil, err
		}
	}
}

// sleepCtx pauses for d or until ctx is cancelled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
