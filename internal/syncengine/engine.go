// Package syncengine drains the pending-mutation queue against the remote
// service. A pass walks a snapshot of the queue in insertion order, replays
// each item, and either removes it (success) or bumps its attempt counter,
// abandoning it after the third failed attempt. Passes are single-flight: a
// trigger arriving mid-pass is dropped, not queued.
package syncengine

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/christianbiango/team-up/internal/bus"
	"github.com/christianbiango/team-up/internal/connectivity"
	"github.com/christianbiango/team-up/internal/notify"
	"github.com/christianbiango/team-up/internal/remote"
	"github.com/christianbiango/team-up/pkg/types"
)

// maxAttempts is the per-item retry ceiling. The counter is bumped before
// the check, so every item is tried exactly this many times.
const maxAttempts = 3

// DefaultInterval is the periodic sync cadence used when the configuration
// does not override it.
const DefaultInterval = 30 * time.Second

// ErrSyncInProgress is returned by SyncNow when a pass is already running.
var ErrSyncInProgress = errors.New("sync already in progress")

// Result summarizes one sync pass.
type Result struct {
	// Synced counts items replayed and removed from the queue.
	Synced int

	// Retried counts items that failed and remain queued.
	Retried int

	// Abandoned counts items dropped after exhausting their attempts,
	// plus malformed items dropped outright.
	Abandoned int

	// Remaining is the queue length after the pass.
	Remaining int
}

// Engine replays queued mutations. Construct with New and wire the triggers
// with Start; SyncNow also works standalone.
type Engine struct {
	store    types.Store
	remote   remote.Client
	signal   *connectivity.Signal
	bus      *bus.Bus
	notifier notify.Notifier
	log      zerolog.Logger

	interval time.Duration

	passMu sync.Mutex

	startMu sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	subs    []interface{ Unsubscribe() }
}

// New creates an Engine with explicitly injected dependencies. A zero
// interval falls back to DefaultInterval.
func New(store types.Store, client remote.Client, signal *connectivity.Signal,
	eventBus *bus.Bus, notifier notify.Notifier, log zerolog.Logger,
	interval time.Duration) *Engine {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Engine{
		store:    store,
		remote:   client,
		signal:   signal,
		bus:      eventBus,
		notifier: notifier,
		log:      log,
		interval: interval,
	}
}

// Start wires the three automatic triggers: the offline-to-online
// transition, the periodic ticker, and the sync-requested bus signal.
// Stop undoes all of it.
func (e *Engine) Start() {
	e.startMu.Lock()
	defer e.startMu.Unlock()
	if e.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	e.done = make(chan struct{})

	connSub := e.signal.Subscribe(func(online bool) {
		if !online {
			return
		}
		e.notifier.Notify(notify.SeverityInfo, "Connection restored. Syncing pending changes.")
		go e.trigger(ctx, "reconnect")
	})
	busSub := e.bus.Subscribe(bus.SyncRequested, func() {
		go e.trigger(ctx, "requested")
	})
	e.subs = []interface{ Unsubscribe() }{connSub, busSub}

	go func() {
		defer close(e.done)
		ticker := time.NewTicker(e.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				e.trigger(ctx, "periodic")
			}
		}
	}()
}

// Stop releases the subscriptions and stops the ticker. Idempotent.
func (e *Engine) Stop() {
	e.startMu.Lock()
	defer e.startMu.Unlock()
	if e.cancel == nil {
		return
	}
	e.cancel()
	for _, sub := range e.subs {
		sub.Unsubscribe()
	}
	e.subs = nil
	e.cancel = nil
	<-e.done
}

// trigger runs a pass for an automatic trigger, swallowing the outcomes the
// triggers do not care about.
func (e *Engine) trigger(ctx context.Context, reason string) {
	_, err := e.SyncNow(ctx)
	if err != nil && !errors.Is(err, ErrSyncInProgress) {
		e.log.Warn().Err(err).Str("trigger", reason).Msg("sync pass failed")
	}
}

// SyncNow runs one sync pass. Offline, it returns immediately with an empty
// Result; while another pass runs, it returns ErrSyncInProgress.
func (e *Engine) SyncNow(ctx context.Context) (Result, error) {
	if !e.signal.IsOnline() {
		e.log.Debug().Msg("sync skipped while offline")
		return Result{}, nil
	}
	if !e.passMu.TryLock() {
		return Result{}, ErrSyncInProgress
	}
	defer e.passMu.Unlock()

	e.bus.Publish(bus.SyncStart)
	defer e.bus.Publish(bus.SyncEnd)

	items, err := e.store.Queue().List()
	if err != nil {
		return Result{}, err
	}

	var result Result
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			break
		}
		switch e.replay(ctx, item) {
		case replaySynced:
			result.Synced++
		case replayRetried:
			result.Retried++
		case replayAbandoned:
			result.Abandoned++
		}
	}

	remaining, err := e.store.Queue().Len()
	if err != nil {
		return result, err
	}
	result.Remaining = remaining

	if result.Synced > 0 || result.Retried > 0 || result.Abandoned > 0 {
		e.log.Info().
			Int("synced", result.Synced).
			Int("retried", result.Retried).
			Int("abandoned", result.Abandoned).
			Int("remaining", result.Remaining).
			Msg("sync pass complete")
	}
	return result, nil
}

type replayOutcome int

const (
	replaySynced replayOutcome = iota
	replayRetried
	replayAbandoned
)

// replay pushes one queue item to the remote service and settles its local
// state.
func (e *Engine) replay(ctx context.Context, item *types.QueueItem) replayOutcome {
	if err := item.Validate(); err != nil {
		// Malformed items can never succeed; drop them.
		e.log.Error().Err(err).Str("item", item.ID).Msg("dropping malformed queue item")
		if err := e.store.Queue().Dequeue(item.ID); err != nil {
			e.log.Error().Err(err).Str("item", item.ID).Msg("dequeue failed")
		}
		return replayAbandoned
	}

	if err := e.push(ctx, item); err != nil {
		return e.recordFailure(item, err)
	}

	if err := e.settle(item); err != nil {
		e.log.Error().Err(err).Str("item", item.ID).Msg("settling synced item failed")
		return replayRetried
	}
	if err := e.store.Queue().Dequeue(item.ID); err != nil {
		e.log.Error().Err(err).Str("item", item.ID).Msg("dequeue failed")
		return replayRetried
	}
	e.log.Debug().Str("item", item.ID).Msg("queue item synced")
	return replaySynced
}

// push performs the remote call a queue item stands for.
func (e *Engine) push(ctx context.Context, item *types.QueueItem) error {
	collection := collectionFor(item.Table)
	switch item.Action {
	case types.ActionCreate:
		return e.remote.Insert(ctx, collection, item.Record(), nil)
	case types.ActionUpdate:
		return e.remote.Update(ctx, collection, item.RecordID(), item.Record(), nil)
	case types.ActionDelete:
		return e.remote.Delete(ctx, collection, item.RecordID())
	}
	return types.ErrInvalidAction
}

// settle brings the local row in line with the now-confirmed remote state:
// creates and updates flip the offline marker off, deletes remove the row.
func (e *Engine) settle(item *types.QueueItem) error {
	switch item.Table {
	case types.TableEvents:
		if item.Action == types.ActionDelete {
			return e.store.Events().Delete(item.Event.ID)
		}
		event := item.Event.Clone()
		event.Meta.Confirm()
		return e.store.Events().Put(event)
	case types.TableParticipations:
		if item.Action == types.ActionDelete {
			return e.store.Participations().Delete(item.Participation.ID)
		}
		participation := item.Participation.Clone()
		participation.Meta.Confirm()
		return e.store.Participations().Put(participation)
	case types.TableProfiles:
		profile := item.Profile.Clone()
		profile.Meta.Confirm()
		return e.store.Profiles().Put(profile)
	}
	return types.ErrInvalidTable
}

// recordFailure bumps the attempt counter and abandons the item once the
// ceiling is reached. Abandoned records stay in the local store, still
// marked offline.
func (e *Engine) recordFailure(item *types.QueueItem, cause error) replayOutcome {
	attempts, err := e.store.Queue().BumpAttempts(item.ID)
	if err != nil {
		e.log.Error().Err(err).Str("item", item.ID).Msg("bumping attempts failed")
		return replayRetried
	}
	if attempts < maxAttempts {
		e.log.Warn().Err(cause).Str("item", item.ID).Int("attempts", attempts).
			Msg("queue item failed, will retry")
		return replayRetried
	}

	if err := e.store.Queue().Dequeue(item.ID); err != nil {
		e.log.Error().Err(err).Str("item", item.ID).Msg("dequeue failed")
		return replayRetried
	}
	e.log.Error().Err(cause).Str("item", item.ID).Int("attempts", attempts).
		Msg("queue item abandoned after repeated failures")
	e.notifier.Notify(notify.SeverityError,
		"Some offline changes could not be synced and were abandoned.")
	return replayAbandoned
}

// PendingCount returns the number of queued mutations, for status badges.
func (e *Engine) PendingCount() (int, error) {
	return e.store.Queue().Len()
}

// collectionFor maps a local table to its remote collection.
func collectionFor(table string) string {
	switch table {
	case types.TableEvents:
		return remote.CollectionEvents
	case types.TableParticipations:
		return remote.CollectionParticipants
	case types.TableProfiles:
		return remote.CollectionProfiles
	}
	return table
}
