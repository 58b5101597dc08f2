package match

import (
	"context"
	"fmt"
	"time"

	"github.com/pyrat-engine/pyrat/internal/protocol"

	"golang.org/x/sync/errgroup"
)

// identity is what the handshake collects from one AI before pyratready.
type identity struct {
	name, author string
	options      []protocol.OptionSpec
}

// handshake performs spec §4.6 step 1 for both AIs in parallel, mirroring
// fastview/client.go's errgroup.WithContext join of independent concurrent
// operations: the whole handshake fails fast on either AI's error, and
// cancelling groupCtx cancels the other AI's wait.
func (r *Runner) handshake(ctx context.Context) (ratID, pyID identity, err error) {
	group, groupCtx := errgroup.WithContext(ctx)
	timeout := 3 * r.cfg.MoveTimeout

	group.Go(func() error {
		id, err := r.handshakeOne(groupCtx, r.ratLink, timeout)
		ratID = id
		return err
	})
	group.Go(func() error {
		id, err := r.handshakeOne(groupCtx, r.pythonLink, timeout)
		pyID = id
		return err
	})

	if err = group.Wait(); err != nil {
		return identity{}, identity{}, err
	}
	return ratID, pyID, nil
}

func (r *Runner) handshakeOne(ctx context.Context, l *aiLink, timeout time.Duration) (identity, error) {
	if err := l.send(protocol.Command{Kind: protocol.CmdPyrat}); err != nil {
		return identity{}, err
	}

	var id identity
	_, result := l.await(ctx, protocol.RespPyratReady, timeout, func(other protocol.Response) {
		switch other.Kind {
		case protocol.RespIDName:
			id.name = other.Name
		case protocol.RespIDAuthor:
			id.author = other.Name
		case protocol.RespOption:
			id.options = append(id.options, other.Option)
		}
	})
	switch result {
	case awaitOK:
		return id, nil
	case awaitTimeout:
		return identity{}, fmt.Errorf("match: %s: handshake timed out", l.label)
	default:
		return identity{}, fmt.Errorf("match: %s: process exited during handshake", l.label)
	}
}
