package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gridsnap/geom"
	"gridsnap/keys"
	"gridsnap/monitor"
	"gridsnap/placement"
	"gridsnap/selection"
	"gridsnap/session"
)

// ErrNoResult is returned when a key sequence leaves the selection open.
var ErrNoResult = errors.New("key sequence did not complete a selection")

// CancelledError reports a scripted session that ended without a placement.
type CancelledError struct {
	Reason selection.Reason
}

func (e *CancelledError) Error() string {
	return fmt.Sprintf("selection cancelled: %s", e.Reason)
}

// ResolveTimeout bounds a scripted session.
const ResolveTimeout = 5 * time.Second

// Resolve runs one session over snap with a scripted key sequence such as
// "q>s" and returns the final placement. The session opens on start, or on
// the primary monitor when start is empty.
func Resolve(ctx context.Context, snap session.Snapshot, start monitor.ID, seq string) (placement.Placement, error) {
	inputs := []session.Input{session.Activate{Monitor: start}}
	userCancel := false
	for _, tok := range keys.Tokenize(seq) {
		in, ok := keys.ClassifyToken(tok)
		if !ok {
			return placement.Placement{}, fmt.Errorf("unknown key %q", tok)
		}
		if in.Kind == keys.Cancel {
			userCancel = true
		}
		inputs = append(inputs, session.FromKeys(in))
	}
	// Closes a session the sequence left open; ignored otherwise.
	inputs = append(inputs, session.Cancel{})

	results := make(chan result, 1)
	hooks := session.Hooks{
		OnFinished: func(m monitor.ID, r geom.Rect) {
			select {
			case results <- result{placement: placement.Placement{Monitor: m, Rect: r}}:
			default:
			}
		},
		OnCancelled: func(reason selection.Reason) {
			select {
			case results <- result{reason: reason, cancelled: true}:
			default:
			}
		},
	}
	ctrl, err := session.NewController(snap, hooks, session.Options{Timeout: ResolveTimeout})
	if err != nil {
		return placement.Placement{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, ResolveTimeout)
	defer cancel()
	go func() { _ = ctrl.Run(ctx) }()
	defer func() {
		cancel()
		<-ctrl.Done()
	}()

	for _, in := range inputs {
		if err := ctrl.Post(in); err != nil {
			return placement.Placement{}, err
		}
	}

	select {
	case res := <-results:
		if !res.cancelled {
			return res.placement, nil
		}
		if res.reason == selection.ReasonCancelled && !userCancel {
			return placement.Placement{}, ErrNoResult
		}
		return placement.Placement{}, &CancelledError{Reason: res.reason}
	case <-ctx.Done():
		return placement.Placement{}, fmt.Errorf("resolve: %w", ctx.Err())
	}
}

type result struct {
	placement placement.Placement
	reason    selection.Reason
	cancelled bool
}
