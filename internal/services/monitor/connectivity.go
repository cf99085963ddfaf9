package monitor

import (
	"context"
	"net"
	"sync/atomic"
	"time"

	"github.com/LeonardoBeccarini/printer_monitor/pkg/log"
)

// Prober checks reachability of a TCP endpoint in the background so that
// IsConnected never blocks the sampling loop.
type Prober struct {
	addr      string
	every     time.Duration
	timeout   time.Duration
	dial      func(ctx context.Context, network, addr string) (net.Conn, error)
	connected atomic.Bool
	logger    log.Logger
}

func NewProber(addr string, every time.Duration, logger log.Logger) *Prober {
	if every <= 0 {
		every = 30 * time.Second
	}
	d := &net.Dialer{}
	return &Prober{
		addr:    addr,
		every:   every,
		timeout: 5 * time.Second,
		dial:    d.DialContext,
		logger:  logger,
	}
}

func (p *Prober) IsConnected() bool {
	return p.connected.Load()
}

// Run probes immediately and then every interval until ctx is done.
func (p *Prober) Run(ctx context.Context) {
	ticker := time.NewTicker(p.every)
	defer ticker.Stop()
	for {
		p.probe(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (p *Prober) probe(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	conn, err := p.dial(ctx, "tcp", p.addr)
	ok := err == nil
	if ok {
		_ = conn.Close()
	}
	if prev := p.connected.Swap(ok); prev != ok {
		if ok {
			p.logger.Infof("connectivity to %s restored", p.addr)
		} else {
			p.logger.Warnf("connectivity to %s lost: %v", p.addr, err)
		}
	}
}
