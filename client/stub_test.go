package client

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// stubTransport cans responses for the Transport methods the tests drive.
// Sequenced fields hand out one element per call, the last one repeating.
type stubTransport struct {
	mu sync.Mutex

	blockhashes    []*rpc.GetLatestBlockhashResult
	blockhashErr   error
	blockhashCalls int

	heights     []uint64
	heightErr   error
	heightCalls int

	statuses    []*rpc.SignatureStatusesResult
	statusErr   error
	statusErrAt int // 1-based call number from which statusErr applies; 0 means from the first
	statusCalls int

	sendSig   solana.Signature
	sendErr   error
	sendCalls int
	sentRaw   [][]byte
	sentOpts  []rpc.TransactionOpts

	balance            uint64
	balanceCommitments []rpc.CommitmentType

	health    string
	healthErr error

	feeValue   *uint64
	feeErr     error
	feeCalls   int
	feeMessage string

	simulation *rpc.SimulateTransactionResponse
	airdropSig solana.Signature
	version    *rpc.GetVersionResult
	epochInfo  *rpc.GetEpochInfoResult
}

var _ Transport = (*stubTransport)(nil)

func (s *stubTransport) GetLatestBlockhash(ctx context.Context, commitment rpc.CommitmentType) (*rpc.GetLatestBlockhashResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blockhashCalls++
	if s.blockhashErr != nil {
		return nil, s.blockhashErr
	}
	if len(s.blockhashes) == 0 {
		return &rpc.GetLatestBlockhashResult{Value: &rpc.LatestBlockhashResult{}}, nil
	}
	i := s.blockhashCalls - 1
	if i >= len(s.blockhashes) {
		i = len(s.blockhashes) - 1
	}
	return s.blockhashes[i], nil
}

func (s *stubTransport) GetBlockHeight(ctx context.Context, commitment rpc.CommitmentType) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.heightCalls++
	if s.heightErr != nil {
		return 0, s.heightErr
	}
	if len(s.heights) == 0 {
		return 0, nil
	}
	i := s.heightCalls - 1
	if i >= len(s.heights) {
		i = len(s.heights) - 1
	}
	return s.heights[i], nil
}

func (s *stubTransport) GetSignatureStatuses(ctx context.Context, searchHistory bool, sigs ...solana.Signature) (*rpc.GetSignatureStatusesResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statusCalls++
	if s.statusErr != nil && s.statusCalls >= s.statusErrAt {
		return nil, s.statusErr
	}
	var status *rpc.SignatureStatusesResult
	if len(s.statuses) > 0 {
		i := s.statusCalls - 1
		if i >= len(s.statuses) {
			i = len(s.statuses) - 1
		}
		status = s.statuses[i]
	}
	return &rpc.GetSignatureStatusesResult{Value: []*rpc.SignatureStatusesResult{status}}, nil
}

func (s *stubTransport) SendRawTransactionWithOpts(ctx context.Context, raw []byte, opts rpc.TransactionOpts) (solana.Signature, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sendCalls++
	s.sentRaw = append(s.sentRaw, raw)
	s.sentOpts = append(s.sentOpts, opts)
	if s.sendErr != nil {
		return solana.Signature{}, s.sendErr
	}
	return s.sendSig, nil
}

func (s *stubTransport) GetBalance(ctx context.Context, account solana.PublicKey, commitment rpc.CommitmentType) (*rpc.GetBalanceResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balanceCommitments = append(s.balanceCommitments, commitment)
	return &rpc.GetBalanceResult{Value: s.balance}, nil
}

func (s *stubTransport) GetHealth(ctx context.Context) (string, error) {
	if s.healthErr != nil {
		return "", s.healthErr
	}
	return s.health, nil
}

func (s *stubTransport) GetFeeForMessage(ctx context.Context, message string, commitment rpc.CommitmentType) (*rpc.GetFeeForMessageResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.feeCalls++
	s.feeMessage = message
	if s.feeErr != nil {
		return nil, s.feeErr
	}
	return &rpc.GetFeeForMessageResult{Value: s.feeValue}, nil
}

func (s *stubTransport) SimulateTransaction(ctx context.Context, tx *solana.Transaction) (*rpc.SimulateTransactionResponse, error) {
	return s.simulation, nil
}

func (s *stubTransport) RequestAirdrop(ctx context.Context, account solana.PublicKey, lamports uint64, commitment rpc.CommitmentType) (solana.Signature, error) {
	return s.airdropSig, nil
}

func (s *stubTransport) GetVersion(ctx context.Context) (*rpc.GetVersionResult, error) {
	return s.version, nil
}

func (s *stubTransport) GetEpochInfo(ctx context.Context, commitment rpc.CommitmentType) (*rpc.GetEpochInfoResult, error) {
	return s.epochInfo, nil
}

func (s *stubTransport) GetAccountInfo(ctx context.Context, account solana.PublicKey) (*rpc.GetAccountInfoResult, error) {
	return &rpc.GetAccountInfoResult{}, nil
}

func (s *stubTransport) GetAccountInfoWithOpts(ctx context.Context, account solana.PublicKey, opts *rpc.GetAccountInfoOpts) (*rpc.GetAccountInfoResult, error) {
	return &rpc.GetAccountInfoResult{}, nil
}

func (s *stubTransport) GetGenesisHash(ctx context.Context) (solana.Hash, error) {
	return solana.Hash{}, nil
}

func (s *stubTransport) GetMinimumBalanceForRentExemption(ctx context.Context, dataSize uint64, commitment rpc.CommitmentType) (uint64, error) {
	return 0, nil
}

func (s *stubTransport) GetSlot(ctx context.Context, commitment rpc.CommitmentType) (uint64, error) {
	return 0, nil
}

func (s *stubTransport) GetTokenAccountBalance(ctx context.Context, account solana.PublicKey, commitment rpc.CommitmentType) (*rpc.GetTokenAccountBalanceResult, error) {
	return &rpc.GetTokenAccountBalanceResult{}, nil
}

func (s *stubTransport) GetTransaction(ctx context.Context, signature solana.Signature, opts *rpc.GetTransactionOpts) (*rpc.GetTransactionResult, error) {
	return &rpc.GetTransactionResult{}, nil
}

func (s *stubTransport) GetTransactionCount(ctx context.Context, commitment rpc.CommitmentType) (uint64, error) {
	return 0, nil
}

// fakeClock drives the confirmation loop deterministically: the client's
// sleep advances it instead of blocking.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (f *fakeClock) now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fakeClock) advance(d time.Duration) {
	f.mu.Lock()
	f.t = f.t.Add(d)
	f.mu.Unlock()
}

func newTestClient(t *testing.T, transport Transport, opts ...Option) (*Client, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Unix(1700000000, 0)}
	c := New("", append([]Option{WithTransport(transport)}, opts...)...)
	c.now = clock.now
	c.sleep = func(_ context.Context, d time.Duration) error {
		clock.advance(d)
		return nil
	}
	return c, clock
}

func blockhashResult(hash solana.Hash, lastValid uint64) *rpc.GetLatestBlockhashResult {
	return &rpc.GetLatestBlockhashResult{
		Value: &rpc.LatestBlockhashResult{
			Blockhash:            hash,
			LastValidBlockHeight: lastValid,
		},
	}
}

func statusAt(level rpc.ConfirmationStatusType) *rpc.SignatureStatusesResult {
	return &rpc.SignatureStatusesResult{
		Slot:               42,
		ConfirmationStatus: level,
	}
}

func uint64Ptr(v uint64) *uint64 {
	return &v
}
