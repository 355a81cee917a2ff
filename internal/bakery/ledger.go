package bakery

// Ledger is the running score. It never drops below zero.
type Ledger struct {
	total int
}

// Add applies delta, clamping the total at zero, and returns the change that
// was actually applied.
func (l *Ledger) Add(delta int) int {
	before := l.total
	l.total = max(l.total+delta, 0)
	return l.total - before
}

// Total returns the current score.
func (l *Ledger) Total() int {
	return l.total
}

// serveDelta returns the score change for serving a croissant in state s.
func serveDelta(s State, kind Kind, burnPenalty, rawPenalty int) int {
	switch s {
	case StatePerfect:
		return kind.BaseScore()
	case StateBurn:
		return -burnPenalty
	default:
		return -rawPenalty
	}
}
