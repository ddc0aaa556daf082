package poller

import (
	"context"
	"time"

	"github.com/jpillora/backoff"
)

const (
	// DefaultInterval is the reference polling cadence while viewing a room.
	DefaultInterval = 3 * time.Second
	// DefaultResolveDelay is how long a client lingers on round_complete
	// before triggering resolution, so both players see the filled round.
	DefaultResolveDelay = 2500 * time.Millisecond
)

// Watcher polls one room until the duel completes or the context is
// cancelled. Resolution is at-least-once: the peer may resolve first, in
// which case this watcher's own call is a no-op and the next fetch simply
// shows the advanced state. Fetch errors never abort the loop; they back
// off and retry, since stopping only stalls this client's view.
type Watcher struct {
	Client       *Client
	RoomID       string
	Interval     time.Duration
	ResolveDelay time.Duration

	// OnUpdate, when set, observes every fetched snapshot with its derived
	// phase.
	OnUpdate func(view RoomView, phase Phase)
}

func (w *Watcher) Run(ctx context.Context) error {
	interval := w.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	resolveDelay := w.ResolveDelay
	if resolveDelay <= 0 {
		resolveDelay = DefaultResolveDelay
	}
	retry := &backoff.Backoff{
		Min:    interval,
		Max:    30 * time.Second,
		Jitter: true,
	}

	for {
		view, err := w.Client.Room(ctx, w.RoomID)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if err := sleep(ctx, retry.Duration()); err != nil {
				return err
			}
			continue
		}
		retry.Reset()

		phase := w.publish(view)
		switch phase {
		case PhaseGameComplete:
			return nil
		case PhaseRoundComplete:
			if err := sleep(ctx, resolveDelay); err != nil {
				return err
			}
			resolved, err := w.Client.Resolve(ctx, w.RoomID)
			if err == nil {
				if w.publish(resolved) == PhaseGameComplete {
					return nil
				}
			}
			// Re-fetch immediately; the resolver may have advanced the round.
			continue
		}

		if err := sleep(ctx, interval); err != nil {
			return err
		}
	}
}

func (w *Watcher) publish(view RoomView) Phase {
	phase := DerivePhase(view)
	if w.OnUpdate != nil {
		w.OnUpdate(view, phase)
	}
	return phase
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
