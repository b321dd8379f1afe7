package cube

// Timestamp is a wrapped tick counter: the monotonic heartbeat of the
// simulation. It is never derived from wall-clock time inside the core; the
// host advances it exactly once per tick.
type Timestamp int64

// Duration is a signed delta between two Timestamps, expressed in ticks.
type Duration int64

// Add returns the Timestamp offset by d ticks.
func (t Timestamp) Add(d Duration) Timestamp {
	return t + Timestamp(d)
}

// Sub returns the Duration between t and o (t - o).
func (t Timestamp) Sub(o Timestamp) Duration {
	return Duration(t - o)
}

// Since returns how many ticks have elapsed since o, as of t.
func (t Timestamp) Since(o Timestamp) Duration {
	return t.Sub(o)
}

// RandomSeed derives a deterministic PRNG seed from the Timestamp alone. It
// is deliberately a cheap, pure mix so call sites may derive fresh seeds for
// every position they touch in a tick without any shared state.
func (t Timestamp) RandomSeed() uint32 {
	x := uint64(t)
	x ^= x >> 33
	x *= 0xff51afd7ed558ccd
	x ^= x >> 33
	x *= 0xc4ceb9fe1a85ec53
	x ^= x >> 33
	return uint32(x)
}
