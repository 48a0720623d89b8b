package pool

import (
	"context"

	"github.com/gagliardetto/solana-go"
	solanarpc "github.com/gagliardetto/solana-go/rpc"

	"github.com/rovshanmuradov/solana-client/client"
)

// The pool stands in for a single solana-go client.
var _ client.Transport = (*Pool)(nil)

func (p *Pool) GetAccountInfo(ctx context.Context, account solana.PublicKey) (*solanarpc.GetAccountInfoResult, error) {
	var result *solanarpc.GetAccountInfoResult
	err := p.execute(ctx, "getAccountInfo", func(ctx context.Context, cl *solanarpc.Client) error {
		var err error
		result, err = cl.GetAccountInfo(ctx, account)
		return err
	})
	return result, err
}

func (p *Pool) GetAccountInfoWithOpts(ctx context.Context, account solana.PublicKey, opts *solanarpc.GetAccountInfoOpts) (*solanarpc.GetAccountInfoResult, error) {
	var result *solanarpc.GetAccountInfoResult
	err := p.execute(ctx, "getAccountInfo", func(ctx context.Context, cl *solanarpc.Client) error {
		var err error
		result, err = cl.GetAccountInfoWithOpts(ctx, account, opts)
		return err
	})
	return result, err
}

func (p *Pool) GetBalance(ctx context.Context, account solana.PublicKey, commitment solanarpc.CommitmentType) (*solanarpc.GetBalanceResult, error) {
	var result *solanarpc.GetBalanceResult
	err := p.execute(ctx, "getBalance", func(ctx context.Context, cl *solanarpc.Client) error {
		var err error
		result, err = cl.GetBalance(ctx, account, commitment)
		return err
	})
	return result, err
}

func (p *Pool) GetBlockHeight(ctx context.Context, commitment solanarpc.CommitmentType) (uint64, error) {
	var height uint64
	err := p.execute(ctx, "getBlockHeight", func(ctx context.Context, cl *solanarpc.Client) error {
		var err error
		height, err = cl.GetBlockHeight(ctx, commitment)
		return err
	})
	return height, err
}

func (p *Pool) GetEpochInfo(ctx context.Context, commitment solanarpc.CommitmentType) (*solanarpc.GetEpochInfoResult, error) {
	var result *solanarpc.GetEpochInfoResult
	err := p.execute(ctx, "getEpochInfo", func(ctx context.Context, cl *solanarpc.Client) error {
		var err error
		result, err = cl.GetEpochInfo(ctx, commitment)
		return err
	})
	return result, err
}

func (p *Pool) GetFeeForMessage(ctx context.Context, message string, commitment solanarpc.CommitmentType) (*solanarpc.GetFeeForMessageResult, error) {
	var result *solanarpc.GetFeeForMessageResult
	err := p.execute(ctx, "getFeeForMessage", func(ctx context.Context, cl *solanarpc.Client) error {
		var err error
		result, err = cl.GetFeeForMessage(ctx, message, commitment)
		return err
	})
	return result, err
}

func (p *Pool) GetGenesisHash(ctx context.Context) (solana.Hash, error) {
	var hash solana.Hash
	err := p.execute(ctx, "getGenesisHash", func(ctx context.Context, cl *solanarpc.Client) error {
		var err error
		hash, err = cl.GetGenesisHash(ctx)
		return err
	})
	return hash, err
}

func (p *Pool) GetHealth(ctx context.Context) (string, error) {
	var status string
	err := p.execute(ctx, "getHealth", func(ctx context.Context, cl *solanarpc.Client) error {
		var err error
		status, err = cl.GetHealth(ctx)
		return err
	})
	return status, err
}

func (p *Pool) GetLatestBlockhash(ctx context.Context, commitment solanarpc.CommitmentType) (*solanarpc.GetLatestBlockhashResult, error) {
	var result *solanarpc.GetLatestBlockhashResult
	err := p.execute(ctx, "getLatestBlockhash", func(ctx context.Context, cl *solanarpc.Client) error {
		var err error
		result, err = cl.GetLatestBlockhash(ctx, commitment)
		return err
	})
	return result, err
}

func (p *Pool) GetMinimumBalanceForRentExemption(ctx context.Context, dataSize uint64, commitment solanarpc.CommitmentType) (uint64, error) {
	var lamports uint64
	err := p.execute(ctx, "getMinimumBalanceForRentExemption", func(ctx context.Context, cl *solanarpc.Client) error {
		var err error
		lamports, err = cl.GetMinimumBalanceForRentExemption(ctx, dataSize, commitment)
		return err
	})
	return lamports, err
}

func (p *Pool) GetSignatureStatuses(ctx context.Context, searchTransactionHistory bool, signatures ...solana.Signature) (*solanarpc.GetSignatureStatusesResult, error) {
	var result *solanarpc.GetSignatureStatusesResult
	err := p.execute(ctx, "getSignatureStatuses", func(ctx context.Context, cl *solanarpc.Client) error {
		var err error
		result, err = cl.GetSignatureStatuses(ctx, searchTransactionHistory, signatures...)
		return err
	})
	return result, err
}

func (p *Pool) GetSlot(ctx context.Context, commitment solanarpc.CommitmentType) (uint64, error) {
	var slot uint64
	err := p.execute(ctx, "getSlot", func(ctx context.Context, cl *solanarpc.Client) error {
		var err error
		slot, err = cl.GetSlot(ctx, commitment)
		return err
	})
	return slot, err
}

func (p *Pool) GetTokenAccountBalance(ctx context.Context, account solana.PublicKey, commitment solanarpc.CommitmentType) (*solanarpc.GetTokenAccountBalanceResult, error) {
	var result *solanarpc.GetTokenAccountBalanceResult
	err := p.execute(ctx, "getTokenAccountBalance", func(ctx context.Context, cl *solanarpc.Client) error {
		var err error
		result, err = cl.GetTokenAccountBalance(ctx, account, commitment)
		return err
	})
	return result, err
}

func (p *Pool) GetTransaction(ctx context.Context, signature solana.Signature, opts *solanarpc.GetTransactionOpts) (*solanarpc.GetTransactionResult, error) {
	var result *solanarpc.GetTransactionResult
	err := p.execute(ctx, "getTransaction", func(ctx context.Context, cl *solanarpc.Client) error {
		var err error
		result, err = cl.GetTransaction(ctx, signature, opts)
		return err
	})
	return result, err
}

func (p *Pool) GetTransactionCount(ctx context.Context, commitment solanarpc.CommitmentType) (uint64, error) {
	var count uint64
	err := p.execute(ctx, "getTransactionCount", func(ctx context.Context, cl *solanarpc.Client) error {
		var err error
		count, err = cl.GetTransactionCount(ctx, commitment)
		return err
	})
	return count, err
}

func (p *Pool) GetVersion(ctx context.Context) (*solanarpc.GetVersionResult, error) {
	var result *solanarpc.GetVersionResult
	err := p.execute(ctx, "getVersion", func(ctx context.Context, cl *solanarpc.Client) error {
		var err error
		result, err = cl.GetVersion(ctx)
		return err
	})
	return result, err
}

func (p *Pool) RequestAirdrop(ctx context.Context, account solana.PublicKey, lamports uint64, commitment solanarpc.CommitmentType) (solana.Signature, error) {
	var sig solana.Signature
	err := p.execute(ctx, "requestAirdrop", func(ctx context.Context, cl *solanarpc.Client) error {
		var err error
		sig, err = cl.RequestAirdrop(ctx, account, lamports, commitment)
		return err
	})
	return sig, err
}

// SendRawTransactionWithOpts dispatches through a single node with no
// retries: replaying a send could land the transaction twice when the first
// attempt reached the cluster despite the error.
func (p *Pool) SendRawTransactionWithOpts(ctx context.Context, rawTx []byte, opts solanarpc.TransactionOpts) (solana.Signature, error) {
	var sig solana.Signature
	err := p.executeOnce(ctx, "sendTransaction", func(ctx context.Context, cl *solanarpc.Client) error {
		var err error
		sig, err = cl.SendRawTransactionWithOpts(ctx, rawTx, opts)
		return err
	})
	return sig, err
}

func (p *Pool) SimulateTransaction(ctx context.Context, tx *solana.Transaction) (*solanarpc.SimulateTransactionResponse, error) {
	var result *solanarpc.SimulateTransactionResponse
	err := p.execute(ctx, "simulateTransaction", func(ctx context.Context, cl *solanarpc.Client) error {
		var err error
		result, err = cl.SimulateTransaction(ctx, tx)
		return err
	})
	return result, err
}
