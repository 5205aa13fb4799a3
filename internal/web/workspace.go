package web

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/MikeMC777/storefront/internal/api"
	"github.com/MikeMC777/storefront/internal/catalog"
	"github.com/MikeMC777/storefront/internal/order"
	"github.com/MikeMC777/storefront/internal/product"
	"github.com/MikeMC777/storefront/internal/session"
	"github.com/MikeMC777/storefront/internal/submission"
)

// Options configure the web front.
type Options struct {
	API    *api.Client
	Store  session.Store
	Logger *slog.Logger

	ProductRedirectDelay time.Duration
	OrderResetDelay      time.Duration
	// WorkspaceTTL is how long an idle visitor's state is kept.
	WorkspaceTTL time.Duration
	// SecureCookie marks the visitor cookie Secure. It is always set on
	// requests that arrive over TLS.
	SecureCookie bool
	Scheduler    submission.Scheduler
	Now          func() time.Time
}

// Workspace is the client-side state of one visitor: the views they have
// open and their credential scope.
type Workspace struct {
	ID string

	creds  *session.Context
	client *api.Client
	log    *slog.Logger
	opts   *Options

	Landing  *catalog.Landing
	Category *catalog.Coordinator
	Admin    *catalog.Coordinator
	Remover  *product.Remover
	Board    *order.Board

	mu         sync.Mutex
	placement  *order.Placement
	editor     *product.Editor
	editorDone bool
	seen       time.Time
}

func newWorkspace(id string, opts *Options) *Workspace {
	creds := session.NewContext(opts.Store, id)
	log := opts.Logger.With(slog.String("visitor", id))
	client := opts.API.WithCredentials(creds).WithLogger(log)

	ws := &Workspace{
		ID:       id,
		creds:    creds,
		client:   client,
		log:      log,
		opts:     opts,
		Landing:  catalog.NewLanding(client, log),
		Category: catalog.NewCoordinator(client, "category", log),
		Admin:    catalog.NewCoordinator(client, "admin", log),
		Board:    order.NewBoard(client, log),
	}
	ws.Remover = product.NewRemover(client, ws.Admin, log)
	return ws
}

// Placement returns the order form for product id, replacing (and
// closing) the one of a previously viewed product.
func (ws *Workspace) Placement(ctx context.Context, id string) (*order.Placement, error) {
	ws.mu.Lock()
	if ws.placement != nil && ws.placement.Product().ID == id {
		p := ws.placement
		ws.mu.Unlock()
		return p, nil
	}
	ws.mu.Unlock()

	p, err := ws.client.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	return ws.placementFor(order.ProductRef{ID: id, Name: p.Name}), nil
}

func (ws *Workspace) placementFor(ref order.ProductRef) *order.Placement {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	if ws.placement != nil {
		if ws.placement.Product() == ref {
			return ws.placement
		}
		ws.placement.Close()
	}
	ws.placement = order.NewPlacement(ws.client, ref, order.Options{
		ResetDelay: ws.opts.OrderResetDelay,
		Scheduler:  ws.opts.Scheduler,
		Logger:     ws.log,
	})
	return ws.placement
}

// Editor returns the open editor for id ("" for the add form). done is true
// once a successful save has waited out the redirect delay; the editor is
// then dropped.
func (ws *Workspace) Editor(id string) (ed *product.Editor, done bool) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	if ws.editor == nil || ws.editor.ID() != id {
		return nil, false
	}
	if ws.editorDone {
		ws.editor = nil
		ws.editorDone = false
		return nil, true
	}
	return ws.editor, false
}

// OpenEditor starts a fresh editor for id, closing any other one. It does
// not load the product.
func (ws *Workspace) OpenEditor(id string) *product.Editor {
	var ed *product.Editor
	opts := product.EditorOptions{
		RedirectDelay: ws.opts.ProductRedirectDelay,
		Scheduler:     ws.opts.Scheduler,
		Logger:        ws.log,
		OnDone: func() {
			ws.mu.Lock()
			defer ws.mu.Unlock()
			if ws.editor == ed {
				ws.editorDone = true
			}
		},
	}
	if id == "" {
		ed = product.NewCreator(ws.client, opts)
	} else {
		ed = product.NewEditor(ws.client, id, opts)
	}

	ws.mu.Lock()
	defer ws.mu.Unlock()
	if ws.editor != nil {
		ws.editor.Close()
	}
	ws.editor = ed
	ws.editorDone = false
	return ed
}

// DropEditor discards ed if it is still the open editor.
func (ws *Workspace) DropEditor(ed *product.Editor) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	if ws.editor != ed {
		return
	}
	ed.Close()
	ws.editor = nil
	ws.editorDone = false
}

// Close tears down every open view.
func (ws *Workspace) Close() {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	if ws.placement != nil {
		ws.placement.Close()
		ws.placement = nil
	}
	if ws.editor != nil {
		ws.editor.Close()
		ws.editor = nil
	}
}

func (ws *Workspace) touch(now time.Time) {
	ws.mu.Lock()
	ws.seen = now
	ws.mu.Unlock()
}

func (ws *Workspace) idleSince() time.Time {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return ws.seen
}
