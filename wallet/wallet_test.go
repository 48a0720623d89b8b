package wallet

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromBase58(t *testing.T) {
	key, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)

	w, err := New(key.String())
	require.NoError(t, err)
	assert.Equal(t, key.PublicKey(), w.PublicKey)
	assert.Equal(t, key.PublicKey().String(), w.String())
}

func TestNewRejectsInvalidKeys(t *testing.T) {
	_, err := New("not-base58-!!!")
	require.Error(t, err)

	_, err = New(base58.Encode([]byte{1, 2, 3}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "64 bytes")
}

func TestLoad(t *testing.T) {
	first, err := NewRandom()
	require.NoError(t, err)
	second, err := NewRandom()
	require.NoError(t, err)

	content := fmt.Sprintf(`
wallets:
  - name: main
    private_key: %s
  - name: fees
    private_key: %s
  - name: broken
    private_key: tooshort
  - name: ""
    private_key: %s
`, first.PrivateKey.String(), second.PrivateKey.String(), first.PrivateKey.String())

	path := filepath.Join(t.TempDir(), "wallets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	wallets, err := Load(path)
	require.NoError(t, err)
	require.Len(t, wallets, 2)
	assert.Equal(t, first.PublicKey, wallets["main"].PublicKey)
	assert.Equal(t, second.PublicKey, wallets["fees"].PublicKey)
}

func TestLoadRequiresValidWallets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallets.yaml")
	require.NoError(t, os.WriteFile(path, []byte("wallets: []\n"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
}

func TestSignTransaction(t *testing.T) {
	w, err := NewRandom()
	require.NoError(t, err)
	recipient, err := NewRandom()
	require.NoError(t, err)

	tx, err := solana.NewTransaction(
		[]solana.Instruction{w.TransferInstruction(recipient.PublicKey, 1_000_000)},
		solana.Hash{1},
		solana.TransactionPayer(w.PublicKey),
	)
	require.NoError(t, err)

	require.NoError(t, w.SignTransaction(tx))
	require.Len(t, tx.Signatures, 1)
	assert.NoError(t, tx.VerifySignatures())
}

func TestTransferInstruction(t *testing.T) {
	w, err := NewRandom()
	require.NoError(t, err)
	recipient, err := NewRandom()
	require.NoError(t, err)

	instr := w.TransferInstruction(recipient.PublicKey, 42)
	assert.Equal(t, solana.SystemProgramID, instr.ProgramID())

	accounts := instr.Accounts()
	require.Len(t, accounts, 2)
	assert.Equal(t, w.PublicKey, accounts[0].PublicKey)
	assert.True(t, accounts[0].IsSigner)
	assert.True(t, accounts[0].IsWritable)
	assert.Equal(t, recipient.PublicKey, accounts[1].PublicKey)
	assert.False(t, accounts[1].IsSigner)

	data, err := instr.Data()
	require.NoError(t, err)
	require.Len(t, data, 12)
	assert.Equal(t, uint32(2), binary.LittleEndian.Uint32(data[0:4]))
	assert.Equal(t, uint64(42), binary.LittleEndian.Uint64(data[4:12]))
}
