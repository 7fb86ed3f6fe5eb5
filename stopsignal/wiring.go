package stopsignal

// WiringLatch has the identical one-shot broadcast shape as Signal, fired
// once every task constructor has returned successfully. Kept as a
// distinct name from Signal so call sites read as "wiring done" rather
// than "stop requested", even though the underlying mechanics are shared.
type WiringLatch = Signal

// NewWiringLatch returns an unfired wiring latch.
func NewWiringLatch() *WiringLatch {
	return New()
}
