package pool

import (
	"sync"
	"time"

	solanarpc "github.com/gagliardetto/solana-go/rpc"
)

// node is one RPC endpoint in the pool together with its health flag and
// request counters.
type node struct {
	client *solanarpc.Client
	url    string

	mu        sync.RWMutex
	healthy   bool
	successes uint64
	failures  uint64
	latency   time.Duration
}

func newNode(url string) *node {
	return &node{
		client:  solanarpc.New(url),
		url:     url,
		healthy: true,
	}
}

func (n *node) isHealthy() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.healthy
}

func (n *node) setHealthy(state bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.healthy = state
}

// observe folds one request outcome into the node's counters. Latency is a
// running average weighted toward recent requests.
func (n *node) observe(success bool, latency time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if success {
		n.successes++
	} else {
		n.failures++
	}
	if n.latency == 0 {
		n.latency = latency
	} else {
		n.latency = (n.latency + latency) / 2
	}
}

// NodeStats is a point-in-time snapshot of one endpoint's counters.
type NodeStats struct {
	URL        string
	Healthy    bool
	Successes  uint64
	Failures   uint64
	AvgLatency time.Duration
}

func (n *node) stats() NodeStats {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return NodeStats{
		URL:        n.url,
		Healthy:    n.healthy,
		Successes:  n.successes,
		Failures:   n.failures,
		AvgLatency: n.latency,
	}
}
