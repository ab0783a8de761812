package store

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// writeTimeout bounds a single background write.
const writeTimeout = 5 * time.Second

// Persister writes state in the background. Callers never wait for an
// acknowledgment or for the store: a failed write is logged and dropped,
// never retried. Saves to the same key that pile up while the writer is busy
// collapse into the latest value; keys are written in the order they were
// first saved.
type Persister struct {
	store Store
	log   *zap.Logger

	mu      sync.Mutex
	closed  bool
	pending map[string]string
	order   []string
	wake    chan struct{}
	done    chan struct{}
}

// NewPersister starts the single background writer.
func NewPersister(s Store, log *zap.Logger) *Persister {
	p := &Persister{
		store:   s,
		log:     log,
		pending: make(map[string]string),
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go p.run()
	return p
}

// Save encodes v now and queues it for writing under key. It never blocks on I/O.
func (p *Persister) Save(key string, v any) {
	value, err := Encode(v)
	if err != nil {
		p.log.Warn("state encode failed", zap.String("key", key), zap.Error(err))
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		p.log.Warn("state write after close dropped", zap.String("key", key))
		return
	}
	if _, queued := p.pending[key]; !queued {
		p.order = append(p.order, key)
	}
	p.pending[key] = value
	select {
	case p.wake <- struct{}{}:
	default:
	}
}

// Close stops accepting writes and waits for queued ones to finish.
func (p *Persister) Close() {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.wake)
	}
	p.mu.Unlock()
	<-p.done
}

func (p *Persister) run() {
	defer close(p.done)
	for range p.wake {
		p.flush()
	}
	p.flush()
}

// flush takes everything pending and writes it outside the lock.
func (p *Persister) flush() {
	p.mu.Lock()
	pending, order := p.pending, p.order
	p.pending, p.order = make(map[string]string, len(pending)), nil
	p.mu.Unlock()

	for _, key := range order {
		value := pending[key]
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		if err := p.store.Set(ctx, key, value); err != nil {
			p.log.Warn("state write failed", zap.String("key", key), zap.Error(err))
		} else {
			p.log.Debug("state written", zap.String("key", key), zap.Int("bytes", len(value)))
		}
		cancel()
	}
}
