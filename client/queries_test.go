package client

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetBalanceCommitmentDefaulting(t *testing.T) {
	stub := &stubTransport{balance: 5_000_000_000}
	c, _ := newTestClient(t, stub, WithCommitment(rpc.CommitmentConfirmed))
	account := solana.NewWallet().PublicKey()

	got, err := c.GetBalance(context.Background(), account, "")
	require.NoError(t, err)
	assert.Equal(t, uint64(5_000_000_000), got)

	_, err = c.GetBalance(context.Background(), account, rpc.CommitmentProcessed)
	require.NoError(t, err)

	require.Len(t, stub.balanceCommitments, 2)
	assert.Equal(t, rpc.CommitmentConfirmed, stub.balanceCommitments[0])
	assert.Equal(t, rpc.CommitmentProcessed, stub.balanceCommitments[1])
}

func TestIsConnected(t *testing.T) {
	c, _ := newTestClient(t, &stubTransport{health: rpc.HealthOk})
	assert.True(t, c.IsConnected(context.Background()))

	c, _ = newTestClient(t, &stubTransport{healthErr: errors.New("connection refused")})
	assert.False(t, c.IsConnected(context.Background()))
}

func TestEstimateFeeRequiresBlockhash(t *testing.T) {
	stub := &stubTransport{}
	c, _ := newTestClient(t, stub)

	payer := testPayer(t)
	tx := testTransaction(t, payer, solana.Hash{})

	_, err := c.EstimateFee(context.Background(), tx, "")
	require.ErrorIs(t, err, ErrTransactionUncompiled)
	assert.Equal(t, 0, stub.feeCalls)
}

func TestEstimateFee(t *testing.T) {
	stub := &stubTransport{feeValue: uint64Ptr(5000)}
	c, _ := newTestClient(t, stub)

	payer := testPayer(t)
	tx := testTransaction(t, payer, solana.Hash{9})

	fee, err := c.EstimateFee(context.Background(), tx, "")
	require.NoError(t, err)
	assert.Equal(t, uint64(5000), fee)

	// The node receives the compiled message in base64.
	raw, err := base64.StdEncoding.DecodeString(stub.feeMessage)
	require.NoError(t, err)
	assert.NotEmpty(t, raw)
}

func TestEstimateFeeUnknownBlockhash(t *testing.T) {
	// A null fee means the node does not recognize the message blockhash.
	stub := &stubTransport{}
	c, _ := newTestClient(t, stub)

	payer := testPayer(t)
	tx := testTransaction(t, payer, solana.Hash{9})

	_, err := c.EstimateFee(context.Background(), tx, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fee unavailable")
}

func TestSimulateTransactionMapsResult(t *testing.T) {
	stub := &stubTransport{
		simulation: &rpc.SimulateTransactionResponse{
			Value: &rpc.SimulateTransactionResult{
				Logs:          []string{"Program 11111111111111111111111111111111 invoke [1]"},
				UnitsConsumed: uint64Ptr(150),
			},
		},
	}
	c, _ := newTestClient(t, stub)

	payer := testPayer(t)
	tx := testTransaction(t, payer, solana.Hash{9})

	result, err := c.SimulateTransaction(context.Background(), tx)
	require.NoError(t, err)
	assert.Nil(t, result.Err)
	assert.Len(t, result.Logs, 1)
	assert.Equal(t, uint64(150), result.UnitsConsumed)
}
