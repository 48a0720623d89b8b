// client/send.go
package client

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"
)

// SendTransaction signs tx, submits it and waits until it reaches the
// client's default commitment. See SendTransactionWithOpts.
func (c *Client) SendTransaction(ctx context.Context, tx *solana.Transaction, signers ...solana.PrivateKey) (solana.Signature, error) {
	return c.SendTransactionWithOpts(ctx, tx, signers, TxOpts{})
}

// SendTransactionWithOpts attaches a recent blockhash to tx, signs it with
// the given keys, serializes it and dispatches it exactly once.
//
// Blockhash selection: a non-zero recent blockhash already present on the
// message is used verbatim and no height bound is recorded. Otherwise the
// blockhash comes from the cache when one is configured, falling back to a
// network fetch at finalized commitment, which also records the height
// ceiling used to bound confirmation.
//
// When a cache is configured it is repopulated with a fresh unused blockhash
// after the dispatch attempt, whether or not the submission succeeded. The
// signature is returned even when waiting for confirmation fails, so callers
// can keep tracking the transaction themselves.
func (c *Client) SendTransactionWithOpts(ctx context.Context, tx *solana.Transaction, signers []solana.PrivateKey, opts TxOpts) (solana.Signature, error) {
	if tx.Message.RecentBlockhash == (solana.Hash{}) {
		hash, lastValid, err := c.pickBlockhash(ctx)
		if err != nil {
			return solana.Signature{}, err
		}
		tx.Message.RecentBlockhash = hash
		if opts.LastValidBlockHeight == nil {
			opts.LastValidBlockHeight = lastValid
		}
	}

	if err := signTransaction(tx, signers); err != nil {
		c.logger.Error("Transaction signing failed", zap.Error(err))
		return solana.Signature{}, fmt.Errorf("sign transaction: %w", err)
	}

	raw, err := tx.MarshalBinary()
	if err != nil {
		return solana.Signature{}, fmt.Errorf("serialize transaction: %w", err)
	}

	sig, sendErr := c.SendRawTransactionWithOpts(ctx, raw, opts)

	if c.cache != nil {
		c.refreshBlockhashCache(ctx)
	}
	return sig, sendErr
}

// SendRawTransaction submits already-serialized wire bytes and waits until
// the transaction reaches the client's default commitment.
func (c *Client) SendRawTransaction(ctx context.Context, raw []byte) (solana.Signature, error) {
	return c.SendRawTransactionWithOpts(ctx, raw, TxOpts{})
}

// SendRawTransactionWithOpts submits already-serialized wire bytes as a
// single request. A transport error propagates unchanged; this layer never
// resubmits. Unless opts.SkipConfirmation is set, the call then waits for
// the transaction to reach opts.PreflightCommitment, bounded by
// opts.LastValidBlockHeight when known and by the wall-clock timeout
// otherwise.
func (c *Client) SendRawTransactionWithOpts(ctx context.Context, raw []byte, opts TxOpts) (solana.Signature, error) {
	preflight := c.resolveCommitment(opts.PreflightCommitment)

	sig, err := c.transport.SendRawTransactionWithOpts(ctx, raw, rpc.TransactionOpts{
		SkipPreflight:       opts.SkipPreflight,
		PreflightCommitment: preflight,
	})
	if err != nil {
		c.metrics.trackSubmission("failed")
		c.logger.Error("SendRawTransaction error", zap.Error(err))
		return solana.Signature{}, err
	}
	c.metrics.trackSubmission("sent")
	c.logger.Info("Transaction sent", zap.String("signature", sig.String()))

	if opts.SkipConfirmation {
		return sig, nil
	}

	_, err = c.ConfirmTransactionWithOpts(ctx, sig, ConfirmOpts{
		Commitment:           preflight,
		LastValidBlockHeight: opts.LastValidBlockHeight,
	})
	if err != nil {
		return sig, err
	}
	return sig, nil
}

// pickBlockhash chooses the recency token for a submission: the cache when
// enabled and warm, the network otherwise. The height ceiling is only known
// for network fetches. A fallback fetch does not populate the cache; the
// cache is refreshed after dispatch instead.
func (c *Client) pickBlockhash(ctx context.Context) (solana.Hash, *uint64, error) {
	if c.cache != nil {
		if hash, err := c.cache.Get(); err == nil {
			c.metrics.trackCacheHit()
			return hash, nil, nil
		}
		c.metrics.trackCacheMiss()
		c.logger.Debug("Blockhash cache miss, fetching from network")
	}

	result, err := c.transport.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		c.logger.Error("GetLatestBlockhash error", zap.Error(err))
		return solana.Hash{}, nil, err
	}
	lastValid := result.Value.LastValidBlockHeight
	return result.Value.Blockhash, &lastValid, nil
}

// refreshBlockhashCache stores a fresh unused blockhash so later submissions
// can skip the network fetch. Failures only cost the next caller a fetch and
// never override the submission result.
func (c *Client) refreshBlockhashCache(ctx context.Context) {
	result, err := c.transport.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		c.logger.Warn("Blockhash cache refresh failed", zap.Error(err))
		return
	}
	c.cache.Set(result.Value.Blockhash, false)
}

func signTransaction(tx *solana.Transaction, signers []solana.PrivateKey) error {
	_, err := tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		for _, signer := range signers {
			if signer.PublicKey().Equals(key) {
				privateCopy := signer
				return &privateCopy
			}
		}
		return nil
	})
	return err
}
