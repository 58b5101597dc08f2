package dashboard

import (
	"context"
	"html/template"
	"log"
	"time"

	"github.com/pyrat-engine/pyrat/internal/dashboard/boardview"
	"github.com/pyrat-engine/pyrat/internal/dashboard/fastview"

	channerics "github.com/niceyeti/channerics/channels"
)

// rootView is the spectator page's container: it wires the board snapshot
// stream into the board's view component and fans its ele-updates into one
// throttled channel for the websocket publisher.
type rootView struct {
	views   []fastview.ViewComponent
	updates <-chan []fastview.EleUpdate
}

func newRootView(ctx context.Context, snapshots <-chan boardview.Snapshot) *rootView {
	views, err := fastview.NewViewBuilder[boardview.Snapshot, boardview.Snapshot]().
		WithContext(ctx).
		WithModel(snapshots, func(s boardview.Snapshot) boardview.Snapshot { return s }).
		WithView(func(done <-chan struct{}, updates <-chan boardview.Snapshot) fastview.ViewComponent {
			return boardview.NewBoardGrid("board", done, updates)
		}).
		Build()
	if err != nil {
		// Only WithView/WithModel misuse can cause this, which would be a
		// programming error in this package, not a runtime condition.
		log.Fatal(err)
	}

	return &rootView{
		views:   views,
		updates: fanIn(ctx.Done(), views),
	}
}

func (rv *rootView) Updates() <-chan []fastview.EleUpdate {
	return rv.updates
}

// Parse builds the spectator page's template around the board view's own
// Parse call (which registers the func-map its markup uses), wrapping that
// markup with the websocket bootstrap script that applies incoming
// ele-updates.
func (rv *rootView) Parse(parent *template.Template) (name string, err error) {
	rt := parent.Funcs(template.FuncMap{})

	var bodySpec string
	for _, vc := range rv.views {
		tname, parseErr := vc.Parse(rt)
		if parseErr != nil {
			return "", parseErr
		}
		bodySpec += `{{ template "` + tname + `" . }}`
	}

	name = "pyratdashboard"
	_, err = rt.Parse(`
{{ define "` + name + `" }}
<!DOCTYPE html>
<html>
<head>
	<link rel="icon" href="data:,">
	<script>
		const ws = new WebSocket("ws://" + location.host + "/ws");
		ws.onerror = (e) => console.log("websocket error:", e);
		ws.onmessage = (event) => {
			const batches = JSON.parse(event.data);
			for (const update of batches) {
				const ele = document.getElementById(update.EleId);
				if (!ele) continue;
				for (const op of update.Ops) {
					if (op.Key === "textContent") {
						ele.textContent = op.Value;
					} else {
						ele.setAttribute(op.Key, op.Value);
					}
				}
			}
		};
	</script>
</head>
<body>` + bodySpec + `</body>
</html>
{{ end }}`)
	return
}

// fanIn merges every view's update stream into one and batches bursts
// within rate, overwriting redundant updates to the same element id so the
// socket only ever ships the latest value for each.
func fanIn(done <-chan struct{}, views []fastview.ViewComponent) <-chan []fastview.EleUpdate {
	inputs := make([]<-chan []fastview.EleUpdate, len(views))
	for i, v := range views {
		inputs[i] = v.Updates()
	}
	return batchify(done, channerics.Merge(done, inputs...), 20*time.Millisecond)
}

func batchify(
	done <-chan struct{},
	source <-chan []fastview.EleUpdate,
	rate time.Duration,
) <-chan []fastview.EleUpdate {
	output := make(chan []fastview.EleUpdate)

	go func() {
		defer close(output)
		data := map[string]fastview.EleUpdate{}
		last := time.Now()
		for updates := range channerics.OrDone(done, source) {
			for _, u := range updates {
				data[u.EleId] = u
			}
			if time.Since(last) > rate && len(updates) > 0 {
				select {
				case output <- valuesOf(data):
					data = map[string]fastview.EleUpdate{}
					last = time.Now()
				case <-done:
					return
				}
			}
		}
	}()

	return output
}

func valuesOf[K comparable, V any](m map[K]V) []V {
	out := make([]V, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	return out
}
