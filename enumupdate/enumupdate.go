// Package enumupdate is the runtime side of generated update unions.
//
// Generated records implement Applier for their union type, so replicas of
// the same state can be kept in sync by shipping update values between them:
//
//	u := primary.ModifyValue("x")
//	replica.Apply(u)
package enumupdate

import "context"

// Applier applies update values of type U to itself.
type Applier[U any] interface {
	Apply(update U)
}

// ApplyAll applies updates to target in order.
func ApplyAll[U any](target Applier[U], updates ...U) {
	for _, u := range updates {
		target.Apply(u)
	}
}

// Follow applies every update received on updates to target until the
// channel is closed or ctx is done. It returns nil when the channel closes
// and ctx.Err() otherwise.
func Follow[U any](ctx context.Context, target Applier[U], updates <-chan U) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case u, ok := <-updates:
			if !ok {
				return nil
			}

			target.Apply(u)
		}
	}
}

// Func adapts a function to Applier.
type Func[U any] func(update U)

// Apply calls f(update).
func (f Func[U]) Apply(update U) {
	f(update)
}

// Log records updates it is asked to apply. It is not safe for concurrent use.
type Log[U any] struct {
	Updates []U
}

// Apply appends update to the log.
func (l *Log[U]) Apply(update U) {
	l.Updates = append(l.Updates, update)
}

// Replay applies the recorded updates to target.
func (l *Log[U]) Replay(target Applier[U]) {
	ApplyAll(target, l.Updates...)
}
