package stores

import (
	"context"
	"log"
	"sync"
	"time"

	"guardian-vault-api/internal/model"
)

// State is the lifecycle state of the store stream.
type State int

const (
	// StateNotStarted means no subscriber or reload has activated the
	// stream yet; no pipeline run has happened.
	StateNotStarted State = iota
	// StateActive means at least one cycle has been dispatched.
	StateActive
)

func (s State) String() string {
	if s == StateActive {
		return "active"
	}
	return "not_started"
}

// StoreStream combines the account stream and the reload trigger into the
// externally consumed sequence of store set results. It is lazily started,
// multicast, and caches the latest successful set for replay.
//
// Each subscribe and each reload dispatches exactly one cycle against the
// account recorded at dispatch time. Overlapping cycles are not serialized:
// whichever completes last wins. Cycles are never cancelled once started.
type StoreStream struct {
	loader   *Loader
	notifier Notifier

	mu      sync.Mutex
	state   State
	account *model.Account
	last    *model.StoreSet // latest successful set, replayed to new subscribers
	hardErr error           // set when a cycle fails before any set ever loaded
	subs    []chan Result
	waiters []chan Result
	cycles  uint64
}

// NewStoreStream creates a cold stream. No cycle runs until the first
// Subscribe or ForceReload.
func NewStoreStream(loader *Loader, notifier Notifier) *StoreStream {
	return &StoreStream{loader: loader, notifier: notifier}
}

// SetAccount records the latest selected account without triggering a load.
// The value is visible to every later cycle and reader.
func (s *StoreStream) SetAccount(account model.Account) {
	s.mu.Lock()
	s.account = &account
	s.mu.Unlock()
}

// CurrentAccount returns the most recently recorded account, if any.
func (s *StoreStream) CurrentAccount() (model.Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.account == nil {
		return model.Account{}, false
	}
	return *s.account, true
}

// Subscribe records the account, activates the stream, dispatches one cycle
// and returns a channel observing all future results. The latest cached set
// is replayed first. The channel is buffered; results a slow subscriber
// cannot keep up with are dropped.
func (s *StoreStream) Subscribe(account model.Account) <-chan Result {
	ch := make(chan Result, 16)

	s.mu.Lock()
	s.account = &account
	s.state = StateActive
	s.subs = append(s.subs, ch)
	if s.last != nil {
		ch <- Result{Stores: s.last}
	}
	s.mu.Unlock()

	go s.runCycle()
	return ch
}

// Unsubscribe removes and closes a subscriber channel.
func (s *StoreStream) Unsubscribe(ch <-chan Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sub := range s.subs {
		if sub == ch {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			close(sub)
			return
		}
	}
}

// TriggerReload dispatches one cycle against the current account. Triggers
// are not coalesced: each one produces an independent run. A cold stream
// ignores the trigger.
func (s *StoreStream) TriggerReload() {
	s.mu.Lock()
	if s.state != StateActive {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	go s.runCycle()
}

// ForceReload dispatches one cycle and blocks until the next completed
// result, success or the empty marker. A cached value never satisfies it.
func (s *StoreStream) ForceReload(ctx context.Context) (Result, error) {
	waiter := make(chan Result, 1)

	s.mu.Lock()
	s.state = StateActive
	s.waiters = append(s.waiters, waiter)
	s.mu.Unlock()

	go s.runCycle()

	select {
	case res := <-waiter:
		return res, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// Latest returns the most recent successful store set, if one exists.
func (s *StoreStream) Latest() (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return Result{}, false
	}
	return Result{Stores: s.last}, true
}

// State returns the stream lifecycle state.
func (s *StoreStream) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// HardError returns the error state set when a cycle failed before any set
// ever loaded. Cleared by the next successful cycle.
func (s *StoreStream) HardError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hardErr
}

// Cycles returns the number of completed cycles, failures included.
func (s *StoreStream) Cycles() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cycles
}

// runCycle executes one pipeline run to completion and publishes the result.
// Failures never escape: the cycle resolves to the empty marker and the
// stream stays subscribable.
func (s *StoreStream) runCycle() {
	// No cancellation: a dispatched cycle always runs to completion.
	ctx := context.Background()

	s.mu.Lock()
	account := s.account
	s.mu.Unlock()

	if account == nil {
		discovered, err := s.loader.DiscoverAccount(ctx)
		if err != nil {
			s.finishFailure(err)
			return
		}
		if discovered == nil {
			// No account resolves: quiet no-op, not an error.
			log.Printf("[StoreStream] No account available, cycle resolved empty")
			s.finish(Result{})
			return
		}
		s.mu.Lock()
		s.account = discovered
		s.mu.Unlock()
		account = discovered
	}

	set, err := s.loader.LoadCycle(ctx, *account)
	if err != nil {
		s.finishFailure(err)
		return
	}

	s.mu.Lock()
	s.last = set
	s.hardErr = nil
	s.mu.Unlock()

	s.finish(Result{Stores: set})
}

// finishFailure downgrades a cycle error: with a prior non-empty set it
// becomes a transient notification and the stale set stays visible; without
// one it escalates to the hard error state. Either way the cycle resolves to
// the empty marker and telemetry gets the error.
func (s *StoreStream) finishFailure(err error) {
	s.mu.Lock()
	hadStores := s.last != nil && len(s.last.Stores) > 0
	if !hadStores {
		s.hardErr = err
	}
	s.mu.Unlock()

	log.Printf("[StoreStream] Cycle failed (prior set: %v): %v", hadStores, err)
	if s.notifier != nil {
		s.notifier.ReportError("store load cycle", err)
		if hadStores {
			s.notifier.Notify(Notification{
				Title: "Couldn't refresh your inventory",
				Body:  err.Error(),
				At:    time.Now().UTC(),
			})
		}
	}

	s.finish(Result{})
}

// finish fans the result out to subscribers and resolves pending ForceReload
// waiters.
func (s *StoreStream) finish(res Result) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cycles++

	// Waiter channels are buffered with capacity one and consumed by exactly
	// one ForceReload call, so sends cannot block. Subscriber sends drop when
	// the buffer is full. Holding the lock keeps Unsubscribe from closing a
	// channel mid-send.
	for _, w := range s.waiters {
		w <- res
	}
	s.waiters = nil
	for _, ch := range s.subs {
		select {
		case ch <- res:
		default:
		}
	}
}
