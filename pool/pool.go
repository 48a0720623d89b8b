// Package pool spreads RPC traffic across several Solana nodes. It
// implements the client's Transport surface, so a Pool drops in where a
// single solana-go client would go: reads rotate round-robin over healthy
// endpoints and retry transient failures, while transaction submission is
// dispatched exactly once.
package pool

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	solanarpc "github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultHealthCheckInterval is the pause between background sweeps that
	// re-probe every endpoint.
	DefaultHealthCheckInterval = 30 * time.Second
	// DefaultRequestTimeout bounds a single request against one node.
	DefaultRequestTimeout = 10 * time.Second
	// DefaultMaxRetries is how many times a failed read is retried against
	// the rotation, after the first attempt.
	DefaultMaxRetries = 3

	healthProbeTimeout = 5 * time.Second
	defaultRetryDelay  = 500 * time.Millisecond
	maxRetryDelay      = 5 * time.Second
)

// Pool is a set of RPC endpoints behind a single Transport. All methods are
// safe for concurrent use.
type Pool struct {
	nodes  []*node
	logger *zap.Logger

	requestTimeout      time.Duration
	healthCheckInterval time.Duration
	maxRetries          int
	retryDelay          time.Duration

	mu   sync.Mutex
	next int

	cancel context.CancelFunc
	done   chan struct{}
}

// Option configures a Pool.
type Option func(*Pool)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Pool) {
		p.logger = logger
	}
}

// WithRequestTimeout bounds each request against a single node.
func WithRequestTimeout(d time.Duration) Option {
	return func(p *Pool) {
		p.requestTimeout = d
	}
}

// WithMaxRetries sets how many more nodes a failed read is tried against.
func WithMaxRetries(n int) Option {
	return func(p *Pool) {
		p.maxRetries = n
	}
}

// WithHealthCheckInterval sets the background probe cadence. Zero or
// negative disables the background sweep; nodes then only leave rotation on
// critical errors and return via Connect.
func WithHealthCheckInterval(d time.Duration) Option {
	return func(p *Pool) {
		p.healthCheckInterval = d
	}
}

// New builds a pool over the given endpoint URLs. Every node starts out
// healthy; call Connect to verify them eagerly. Close stops the background
// health sweep.
func New(urls []string, opts ...Option) (*Pool, error) {
	if len(urls) == 0 {
		return nil, ErrNoNodes
	}

	p := &Pool{
		logger:              zap.NewNop(),
		requestTimeout:      DefaultRequestTimeout,
		healthCheckInterval: DefaultHealthCheckInterval,
		maxRetries:          DefaultMaxRetries,
		retryDelay:          defaultRetryDelay,
		done:                make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.Named("rpc-pool")

	p.nodes = make([]*node, 0, len(urls))
	for _, url := range urls {
		p.nodes = append(p.nodes, newNode(url))
	}

	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	if p.healthCheckInterval > 0 {
		go p.healthLoop(ctx)
	} else {
		close(p.done)
	}
	return p, nil
}

// Connect probes every endpoint concurrently and takes the failing ones out
// of rotation. It returns ErrNoHealthyNodes when nothing answered.
func (p *Pool) Connect(ctx context.Context) error {
	g, gCtx := errgroup.WithContext(ctx)
	for _, n := range p.nodes {
		n := n
		g.Go(func() error {
			healthy := p.probe(gCtx, n)
			if err := gCtx.Err(); err != nil {
				return err
			}
			n.setHealthy(healthy)
			if !healthy {
				p.logger.Warn("Node failed startup probe", zap.String("url", n.url))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if !p.hasHealthyNodes() {
		return ErrNoHealthyNodes
	}
	p.logger.Info("RPC pool connected",
		zap.Int("nodes", len(p.nodes)),
		zap.Int("healthy", p.healthyCount()))
	return nil
}

// Close stops the background health sweep. Requests in flight finish
// normally.
func (p *Pool) Close() {
	p.cancel()
	<-p.done
}

// Stats snapshots every endpoint's health flag and request counters.
func (p *Pool) Stats() []NodeStats {
	stats := make([]NodeStats, 0, len(p.nodes))
	for _, n := range p.nodes {
		stats = append(stats, n.stats())
	}
	return stats
}

func (p *Pool) healthLoop(ctx context.Context) {
	defer close(p.done)
	ticker := time.NewTicker(p.healthCheckInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.sweep(ctx)
		}
	}
}

// sweep re-probes every node, so endpoints that recovered return to
// rotation without operator action.
func (p *Pool) sweep(ctx context.Context) {
	var wg sync.WaitGroup
	for _, n := range p.nodes {
		wg.Add(1)
		go func(n *node) {
			defer wg.Done()
			healthy := p.probe(ctx, n)
			if healthy != n.isHealthy() {
				if healthy {
					p.logger.Info("Node returned to rotation", zap.String("url", n.url))
				} else {
					p.logger.Warn("Node dropped from rotation", zap.String("url", n.url))
				}
			}
			n.setHealthy(healthy)
		}(n)
	}
	wg.Wait()
}

func (p *Pool) probe(ctx context.Context, n *node) bool {
	probeCtx, cancel := context.WithTimeout(ctx, healthProbeTimeout)
	defer cancel()
	status, err := n.client.GetHealth(probeCtx)
	return err == nil && status == solanarpc.HealthOk
}

// nextHealthyNode picks the next node in rotation, skipping unhealthy ones.
func (p *Pool) nextHealthyNode() (*node, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := 0; i < len(p.nodes); i++ {
		idx := (p.next + i) % len(p.nodes)
		n := p.nodes[idx]
		if n.isHealthy() {
			p.next = (idx + 1) % len(p.nodes)
			return n, nil
		}
	}
	return nil, ErrNoHealthyNodes
}

func (p *Pool) hasHealthyNodes() bool {
	for _, n := range p.nodes {
		if n.isHealthy() {
			return true
		}
	}
	return false
}

func (p *Pool) healthyCount() int {
	count := 0
	for _, n := range p.nodes {
		if n.isHealthy() {
			count++
		}
	}
	return count
}

// execute runs op against the rotation, moving to the next node with
// exponential backoff on transient failures. A JSON-RPC answer from a node,
// even an error, ends the attempt loop immediately.
func (p *Pool) execute(ctx context.Context, method string, op func(context.Context, *solanarpc.Client) error) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = p.retryDelay
	bo.MaxInterval = maxRetryDelay
	bo.MaxElapsedTime = 0

	var lastErr error
	attempt := func() error {
		n, err := p.nextHealthyNode()
		if err != nil {
			if lastErr != nil {
				return backoff.Permanent(fmt.Errorf("%w (last failure: %w)", err, lastErr))
			}
			return backoff.Permanent(err)
		}

		callCtx, cancel := context.WithTimeout(ctx, p.requestTimeout)
		defer cancel()

		start := time.Now()
		err = op(callCtx, n.client)
		n.observe(err == nil, time.Since(start))
		if err == nil {
			return nil
		}

		wrapped := &Error{Err: err, NodeURL: n.url, Method: method}
		switch {
		case isCritical(err):
			n.setHealthy(false)
			p.logger.Warn("Node removed from rotation",
				zap.String("url", n.url),
				zap.String("method", method),
				zap.Error(err))
			lastErr = wrapped
			return wrapped
		case isRetryable(err):
			p.logger.Debug("Transient RPC failure, rotating",
				zap.String("url", n.url),
				zap.String("method", method),
				zap.Error(err))
			lastErr = wrapped
			return wrapped
		default:
			return backoff.Permanent(wrapped)
		}
	}

	return backoff.Retry(attempt, backoff.WithContext(backoff.WithMaxRetries(bo, uint64(p.maxRetries)), ctx))
}

// executeOnce runs op against a single node with no retry, for requests
// that must not be replayed.
func (p *Pool) executeOnce(ctx context.Context, method string, op func(context.Context, *solanarpc.Client) error) error {
	n, err := p.nextHealthyNode()
	if err != nil {
		return err
	}

	callCtx, cancel := context.WithTimeout(ctx, p.requestTimeout)
	defer cancel()

	start := time.Now()
	err = op(callCtx, n.client)
	n.observe(err == nil, time.Since(start))
	if err != nil {
		return &Error{Err: err, NodeURL: n.url, Method: method}
	}
	return nil
}
