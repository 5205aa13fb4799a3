package web

import (
	"log/slog"
	"sync"
	"time"
)

// sweepEvery bounds how often Get scans for idle workspaces.
const sweepEvery = time.Minute

// Registry maps visitor ids to workspaces. Idle workspaces are swept on
// access, at most once per sweepEvery.
type Registry struct {
	opts *Options

	mu        sync.Mutex
	items     map[string]*Workspace
	lastSweep time.Time
}

func NewRegistry(opts *Options) *Registry {
	return &Registry{opts: opts, items: map[string]*Workspace{}}
}

func (r *Registry) expired(ws *Workspace, now time.Time) bool {
	return now.Sub(ws.idleSince()) > r.opts.WorkspaceTTL
}

// Get returns the workspace of visitor id, creating it if needed. A
// workspace idle past the TTL is replaced even between sweeps.
func (r *Registry) Get(id string) *Workspace {
	now := r.opts.Now()

	r.mu.Lock()
	var gone []*Workspace
	if now.Sub(r.lastSweep) >= sweepEvery {
		for k, ws := range r.items {
			if r.expired(ws, now) {
				gone = append(gone, ws)
				delete(r.items, k)
			}
		}
		r.lastSweep = now
	}
	ws, ok := r.items[id]
	if ok && r.expired(ws, now) {
		gone = append(gone, ws)
		ok = false
	}
	if !ok {
		ws = newWorkspace(id, r.opts)
		r.items[id] = ws
	}
	ws.touch(now)
	r.mu.Unlock()

	for _, old := range gone {
		old.Close()
		r.opts.Logger.Debug("workspace expired", slog.String("visitor", old.ID))
	}
	return ws
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}
