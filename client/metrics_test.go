package client

import (
	"context"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rovshanmuradov/solana-client/blockhash"
)

func TestNilMetricsRecordNothing(t *testing.T) {
	var m *Metrics
	m.trackSubmission("sent")
	m.trackConfirmation("confirmed", time.Now())
	m.trackStatusPoll()
	m.trackCacheHit()
	m.trackCacheMiss()
}

func TestMetricsTrackSubmissionFlow(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	cache := blockhash.NewCache(time.Minute, 10)
	stub := &stubTransport{
		blockhashes: []*rpc.GetLatestBlockhashResult{
			blockhashResult(solana.Hash{1}, 500),
			blockhashResult(solana.Hash{2}, 600),
		},
		heights: []uint64{100},
		statuses: []*rpc.SignatureStatusesResult{
			nil,
			statusAt(rpc.ConfirmationStatusFinalized),
		},
	}
	c, _ := newTestClient(t, stub, WithBlockhashCache(cache), WithMetrics(m))

	payer := testPayer(t)
	tx := testTransaction(t, payer, solana.Hash{})

	_, err := c.SendTransaction(context.Background(), tx, payer)
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheMisses))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.cacheHits))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.submissions.WithLabelValues("sent")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.statusPolls))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.confirmations.WithLabelValues("confirmed")))

	// The refresh left a cached blockhash, so the next send is a hit.
	tx = testTransaction(t, payer, solana.Hash{})
	_, err = c.SendTransaction(context.Background(), tx, payer)
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheHits))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.submissions.WithLabelValues("sent")))
}

func TestMetricsTrackExhaustedConfirmation(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	stub := &stubTransport{heights: []uint64{101}}
	c, _ := newTestClient(t, stub, WithMetrics(m))

	_, err := c.ConfirmTransactionWithOpts(context.Background(), solana.Signature{1}, ConfirmOpts{
		LastValidBlockHeight: uint64Ptr(100),
	})
	require.ErrorIs(t, err, ErrTransactionExpired)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.confirmations.WithLabelValues("expired")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.statusPolls))
}
