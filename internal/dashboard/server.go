// Package dashboard serves a live spectator page for one match: a single
// page that renders the board and streams incremental updates over a
// websocket as the match runner produces new snapshots. It is grounded on
// the teacher's server.Server/root_view wiring, adapted from a grid-world
// value function display to a two-player board display.
package dashboard

import (
	"context"
	"html/template"
	"log"
	"net/http"

	"github.com/pyrat-engine/pyrat/internal/dashboard/boardview"
	"github.com/pyrat-engine/pyrat/internal/dashboard/fastview"

	"github.com/gorilla/mux"
)

// Dashboard serves the spectator page and its websocket feed for a single
// match. Snapshots pushed into Publish feed one update stream, and every
// websocket connection reads from that same stream: with several browsers
// connected, each update reaches only one of them.
type Dashboard struct {
	addr      string
	snapshots chan boardview.Snapshot
	root      *rootView
	tmpl      *template.Template
	server    *http.Server
}

// NewDashboard builds a Dashboard bound to addr (e.g. ":8089"). Publish must
// be called by the caller as the match progresses; Serve blocks until ctx
// is cancelled or the listener fails.
func NewDashboard(ctx context.Context, addr string) (*Dashboard, error) {
	snapshots := make(chan boardview.Snapshot, 8)
	root := newRootView(ctx, snapshots)

	tmpl := template.New("root")
	if _, err := root.Parse(tmpl); err != nil {
		return nil, err
	}

	d := &Dashboard{
		addr:      addr,
		snapshots: snapshots,
		root:      root,
		tmpl:      tmpl,
	}

	router := mux.NewRouter()
	router.HandleFunc("/", d.serveIndex).Methods(http.MethodGet)
	router.HandleFunc("/ws", d.serveWebsocket)
	d.server = &http.Server{Addr: addr, Handler: router}

	return d, nil
}

// Publish sends a snapshot to the dashboard. It drops the snapshot rather
// than blocking the match loop if no one is consuming fast enough; the
// board is eventually consistent once the next snapshot lands.
func (d *Dashboard) Publish(snap boardview.Snapshot) {
	select {
	case d.snapshots <- snap:
	default:
	}
}

// Serve starts the HTTP listener and blocks until ctx is cancelled.
func (d *Dashboard) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- d.server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		return d.server.Shutdown(context.Background())
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

func (d *Dashboard) serveIndex(w http.ResponseWriter, r *http.Request) {
	if err := d.tmpl.ExecuteTemplate(w, "pyratdashboard", nil); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (d *Dashboard) serveWebsocket(w http.ResponseWriter, r *http.Request) {
	client, err := fastview.NewClient[[]fastview.EleUpdate](d.root.Updates(), w, r)
	if err != nil {
		return
	}
	if err := client.Sync(); err != nil {
		log.Printf("dashboard: client disconnected: %v", err)
	}
}
