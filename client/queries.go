// client/queries.go
package client

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"
)

// SimulationResult is the outcome of a transaction simulation run.
type SimulationResult struct {
	Err           interface{}
	Logs          []string
	UnitsConsumed uint64
}

// Health returns the node's health status string.
func (c *Client) Health(ctx context.Context) (string, error) {
	status, err := c.transport.GetHealth(ctx)
	if err != nil {
		c.logger.Error("GetHealth error", zap.Error(err))
		return "", err
	}
	return status, nil
}

// IsConnected reports whether the node answers health checks.
func (c *Client) IsConnected(ctx context.Context) bool {
	status, err := c.transport.GetHealth(ctx)
	return err == nil && status == rpc.HealthOk
}

// GetBalance returns the lamport balance of an account.
func (c *Client) GetBalance(ctx context.Context, account solana.PublicKey, commitment rpc.CommitmentType) (uint64, error) {
	result, err := c.transport.GetBalance(ctx, account, c.resolveCommitment(commitment))
	if err != nil {
		c.logger.Error("GetBalance error", zap.Error(err))
		return 0, err
	}
	return result.Value, nil
}

// GetAccountInfo returns the account's data and metadata.
func (c *Client) GetAccountInfo(ctx context.Context, account solana.PublicKey) (*rpc.GetAccountInfoResult, error) {
	result, err := c.transport.GetAccountInfo(ctx, account)
	if err != nil {
		c.logger.Debug("GetAccountInfo error",
			zap.String("account", account.String()),
			zap.Error(err))
		return nil, err
	}
	return result, nil
}

// GetAccountInfoWithOpts is GetAccountInfo with encoding, commitment and
// data-slice control.
func (c *Client) GetAccountInfoWithOpts(ctx context.Context, account solana.PublicKey, opts *rpc.GetAccountInfoOpts) (*rpc.GetAccountInfoResult, error) {
	result, err := c.transport.GetAccountInfoWithOpts(ctx, account, opts)
	if err != nil {
		c.logger.Debug("GetAccountInfoWithOpts error",
			zap.String("account", account.String()),
			zap.Error(err))
		return nil, err
	}
	return result, nil
}

// GetLatestBlockhash returns the most recent blockhash together with the
// last block height at which it will still be accepted.
func (c *Client) GetLatestBlockhash(ctx context.Context, commitment rpc.CommitmentType) (*rpc.GetLatestBlockhashResult, error) {
	result, err := c.transport.GetLatestBlockhash(ctx, c.resolveCommitment(commitment))
	if err != nil {
		c.logger.Error("GetLatestBlockhash error", zap.Error(err))
		return nil, err
	}
	return result, nil
}

// GetBlockHeight returns the current block height.
func (c *Client) GetBlockHeight(ctx context.Context, commitment rpc.CommitmentType) (uint64, error) {
	height, err := c.transport.GetBlockHeight(ctx, c.resolveCommitment(commitment))
	if err != nil {
		c.logger.Error("GetBlockHeight error", zap.Error(err))
		return 0, err
	}
	return height, nil
}

// GetSlot returns the current slot.
func (c *Client) GetSlot(ctx context.Context, commitment rpc.CommitmentType) (uint64, error) {
	slot, err := c.transport.GetSlot(ctx, c.resolveCommitment(commitment))
	if err != nil {
		c.logger.Error("GetSlot error", zap.Error(err))
		return 0, err
	}
	return slot, nil
}

// GetEpochInfo returns epoch progress details.
func (c *Client) GetEpochInfo(ctx context.Context, commitment rpc.CommitmentType) (*rpc.GetEpochInfoResult, error) {
	result, err := c.transport.GetEpochInfo(ctx, c.resolveCommitment(commitment))
	if err != nil {
		c.logger.Error("GetEpochInfo error", zap.Error(err))
		return nil, err
	}
	return result, nil
}

// GetVersion returns the software version of the node.
func (c *Client) GetVersion(ctx context.Context) (*rpc.GetVersionResult, error) {
	result, err := c.transport.GetVersion(ctx)
	if err != nil {
		c.logger.Error("GetVersion error", zap.Error(err))
		return nil, err
	}
	return result, nil
}

// GetGenesisHash returns the genesis hash of the cluster.
func (c *Client) GetGenesisHash(ctx context.Context) (solana.Hash, error) {
	hash, err := c.transport.GetGenesisHash(ctx)
	if err != nil {
		c.logger.Error("GetGenesisHash error", zap.Error(err))
		return solana.Hash{}, err
	}
	return hash, nil
}

// GetSignatureStatuses returns the processing status of the given
// signatures, one slot-qualified status or nil per input.
func (c *Client) GetSignatureStatuses(ctx context.Context, signatures ...solana.Signature) (*rpc.GetSignatureStatusesResult, error) {
	result, err := c.transport.GetSignatureStatuses(ctx, false, signatures...)
	if err != nil {
		c.logger.Error("GetSignatureStatuses error", zap.Error(err))
		return nil, err
	}
	return result, nil
}

// GetSignatureStatusesWithHistory additionally searches the node's ledger
// history for signatures no longer in the recent status cache.
func (c *Client) GetSignatureStatusesWithHistory(ctx context.Context, signatures ...solana.Signature) (*rpc.GetSignatureStatusesResult, error) {
	result, err := c.transport.GetSignatureStatuses(ctx, true, signatures...)
	if err != nil {
		c.logger.Error("GetSignatureStatuses error", zap.Error(err))
		return nil, err
	}
	return result, nil
}

// GetTransaction returns the details of a confirmed transaction.
func (c *Client) GetTransaction(ctx context.Context, signature solana.Signature, opts *rpc.GetTransactionOpts) (*rpc.GetTransactionResult, error) {
	result, err := c.transport.GetTransaction(ctx, signature, opts)
	if err != nil {
		c.logger.Debug("GetTransaction error",
			zap.String("signature", signature.String()),
			zap.Error(err))
		return nil, err
	}
	return result, nil
}

// GetTransactionCount returns the number of transactions in the ledger.
func (c *Client) GetTransactionCount(ctx context.Context, commitment rpc.CommitmentType) (uint64, error) {
	count, err := c.transport.GetTransactionCount(ctx, c.resolveCommitment(commitment))
	if err != nil {
		c.logger.Error("GetTransactionCount error", zap.Error(err))
		return 0, err
	}
	return count, nil
}

// GetTokenAccountBalance returns the token balance of an SPL token account.
func (c *Client) GetTokenAccountBalance(ctx context.Context, account solana.PublicKey, commitment rpc.CommitmentType) (*rpc.GetTokenAccountBalanceResult, error) {
	result, err := c.transport.GetTokenAccountBalance(ctx, account, c.resolveCommitment(commitment))
	if err != nil {
		c.logger.Error("GetTokenAccountBalance error", zap.Error(err))
		return nil, err
	}
	return result, nil
}

// GetMinimumBalanceForRentExemption returns the lamports an account of the
// given size must hold to be rent exempt.
func (c *Client) GetMinimumBalanceForRentExemption(ctx context.Context, dataSize uint64, commitment rpc.CommitmentType) (uint64, error) {
	lamports, err := c.transport.GetMinimumBalanceForRentExemption(ctx, dataSize, c.resolveCommitment(commitment))
	if err != nil {
		c.logger.Error("GetMinimumBalanceForRentExemption error", zap.Error(err))
		return 0, err
	}
	return lamports, nil
}

// RequestAirdrop asks the cluster to credit lamports to an account. Only
// test clusters honor this.
func (c *Client) RequestAirdrop(ctx context.Context, account solana.PublicKey, lamports uint64, commitment rpc.CommitmentType) (solana.Signature, error) {
	sig, err := c.transport.RequestAirdrop(ctx, account, lamports, c.resolveCommitment(commitment))
	if err != nil {
		c.logger.Error("RequestAirdrop error", zap.Error(err))
		return solana.Signature{}, err
	}
	return sig, nil
}

// SimulateTransaction runs the transaction against the node's current bank
// without submitting it.
func (c *Client) SimulateTransaction(ctx context.Context, tx *solana.Transaction) (*SimulationResult, error) {
	result, err := c.transport.SimulateTransaction(ctx, tx)
	if err != nil {
		c.logger.Error("SimulateTransaction error", zap.Error(err))
		return nil, err
	}
	units := uint64(0)
	if result.Value.UnitsConsumed != nil {
		units = *result.Value.UnitsConsumed
	}
	return &SimulationResult{
		Err:           result.Value.Err,
		Logs:          result.Value.Logs,
		UnitsConsumed: units,
	}, nil
}

// EstimateFee returns the network fee for the transaction's message. The
// message must already carry a recent blockhash; otherwise the fee depends
// on a blockhash the node would pick arbitrarily.
func (c *Client) EstimateFee(ctx context.Context, tx *solana.Transaction, commitment rpc.CommitmentType) (uint64, error) {
	if tx.Message.RecentBlockhash == (solana.Hash{}) {
		return 0, ErrTransactionUncompiled
	}
	raw, err := tx.Message.MarshalBinary()
	if err != nil {
		return 0, fmt.Errorf("serialize message: %w", err)
	}
	result, err := c.transport.GetFeeForMessage(ctx, base64.StdEncoding.EncodeToString(raw), c.resolveCommitment(commitment))
	if err != nil {
		c.logger.Error("GetFeeForMessage error", zap.Error(err))
		return 0, err
	}
	if result.Value == nil {
		return 0, fmt.Errorf("fee unavailable: node does not know the message blockhash")
	}
	return *result.Value, nil
}
