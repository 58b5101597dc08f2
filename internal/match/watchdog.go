package match

import (
	"context"

	channerics "github.com/niceyeti/channerics/channels"
)

// watchForCrash merges both AI processes' stdout-closed signals into one
// stream and logs whichever arrives first. It runs for the whole match
// independent of which turn phase is active, so a crash during, say, the
// inter-turn display delay (when neither link is actively awaiting a
// response) is still observed and logged promptly rather than silently
// surfacing as the next queryTurn's timeout. channerics.Merge is the right
// tool here — unlike session's command re-queue, there is no ordering
// requirement between the two processes' exit notifications; whichever
// dies first is the one worth logging first.
func (r *Runner) watchForCrash(ctx context.Context) {
	type exit struct {
		label string
		err   error
	}

	ratExit := make(chan exit, 1)
	pyExit := make(chan exit, 1)
	go func() { ratExit <- exit{"rat", <-r.rat.done} }()
	go func() { pyExit <- exit{"python", <-r.python.done} }()

	merged := channerics.Merge(ctx.Done(), ratExit, pyExit)
	go func() {
		for e := range channerics.OrDone(ctx.Done(), merged) {
			r.cfg.EventLog.Printf("%s: process stdout closed (err=%v)", e.label, e.err)
		}
	}()
}
