// ==================================
// File: wallet/wallet.go
// ==================================
package wallet

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
	"gopkg.in/yaml.v3"
)

// Wallet is a Solana keypair used to sign transactions.
type Wallet struct {
	PrivateKey solana.PrivateKey
	PublicKey  solana.PublicKey
}

// New builds a wallet from a base58-encoded 64-byte private key.
func New(privateKeyBase58 string) (*Wallet, error) {
	privateKeyBytes, err := base58.Decode(privateKeyBase58)
	if err != nil {
		return nil, fmt.Errorf("failed to decode private key: %w", err)
	}
	if len(privateKeyBytes) != 64 {
		return nil, fmt.Errorf("invalid private key length: expected 64 bytes, got %d", len(privateKeyBytes))
	}
	privateKey := solana.PrivateKey(privateKeyBytes)
	return &Wallet{
		PrivateKey: privateKey,
		PublicKey:  privateKey.PublicKey(),
	}, nil
}

// NewRandom generates a fresh keypair.
func NewRandom() (*Wallet, error) {
	privateKey, err := solana.NewRandomPrivateKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}
	return &Wallet{
		PrivateKey: privateKey,
		PublicKey:  privateKey.PublicKey(),
	}, nil
}

// walletsFile is the on-disk layout of a wallets YAML file.
type walletsFile struct {
	Wallets []struct {
		Name       string `yaml:"name"`
		PrivateKey string `yaml:"private_key"`
	} `yaml:"wallets"`
}

// Load reads named wallets from a YAML file. Entries with a missing name or
// an undecodable key are skipped; at least one wallet must survive.
func Load(path string) (map[string]*Wallet, error) {
	cleanPath := filepath.Clean(path)

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var file walletsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	wallets := make(map[string]*Wallet)
	for _, entry := range file.Wallets {
		if entry.Name == "" || entry.PrivateKey == "" {
			continue
		}
		w, err := New(entry.PrivateKey)
		if err != nil {
			continue
		}
		wallets[entry.Name] = w
	}

	if len(wallets) == 0 {
		return nil, fmt.Errorf("no valid wallets loaded")
	}
	return wallets, nil
}

// SignTransaction signs tx with the wallet's private key.
func (w *Wallet) SignTransaction(tx *solana.Transaction) error {
	_, err := tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(w.PublicKey) {
			return &w.PrivateKey
		}
		return nil
	})
	return err
}

// TransferInstruction builds a system program transfer of lamports from the
// wallet to the given account. Transfer is instruction index 2; the payload
// is the index then the amount, both little-endian.
func (w *Wallet) TransferInstruction(to solana.PublicKey, lamports uint64) solana.Instruction {
	data := make([]byte, 12)
	binary.LittleEndian.PutUint32(data[0:4], 2)
	binary.LittleEndian.PutUint64(data[4:12], lamports)

	return solana.NewInstruction(
		solana.SystemProgramID,
		[]*solana.AccountMeta{
			solana.Meta(w.PublicKey).WRITE().SIGNER(),
			solana.Meta(to).WRITE(),
		},
		data,
	)
}

// String returns the wallet's public key.
func (w *Wallet) String() string {
	return w.PublicKey.String()
}
