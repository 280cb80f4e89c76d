// Package manager is the mutation façade used by application logic. It
// presents a uniform create/update/delete/join/leave API regardless of
// connectivity: every mutation first tries the remote service when the
// connectivity signal reports online, and falls back to a local write plus
// a queued sync item on any failure. The offline path is a fallback even
// while nominally online, not merely a pre-check of the flag.
package manager

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/christianbiango/team-up/internal/connectivity"
	"github.com/christianbiango/team-up/internal/notify"
	"github.com/christianbiango/team-up/internal/remote"
	"github.com/christianbiango/team-up/internal/sqlite"
	"github.com/christianbiango/team-up/pkg/types"
)

// Manager decides the online-vs-offline path per call. Remote errors never
// propagate past it; the only errors callers see come from the local store.
type Manager struct {
	store    types.Store
	remote   remote.Client
	signal   *connectivity.Signal
	notifier notify.Notifier
	log      zerolog.Logger

	// Injectable for tests.
	now   func() time.Time
	newID func() string
}

// New creates a Manager with explicitly injected dependencies.
func New(store types.Store, client remote.Client, signal *connectivity.Signal,
	notifier notify.Notifier, log zerolog.Logger) *Manager {
	return &Manager{
		store:    store,
		remote:   client,
		signal:   signal,
		notifier: notifier,
		log:      log,
		now:      time.Now,
		newID:    sqlite.NewRecordID,
	}
}

// nowMillis is the local mutation clock used for Meta timestamps.
func (m *Manager) nowMillis() int64 {
	return m.now().UnixMilli()
}
