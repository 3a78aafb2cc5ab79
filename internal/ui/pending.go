package ui

// pendingCounter tracks in-flight backend requests. The loading overlay is
// shown while the count is positive, so overlapping requests keep it up
// until the last one completes. A bare boolean would blank the overlay as
// soon as the first of two overlapping requests finished.
type pendingCounter struct {
	count int
}

func (p *pendingCounter) begin() {
	p.count++
}

func (p *pendingCounter) done() {
	if p.count > 0 {
		p.count--
	}
}

func (p *pendingCounter) active() bool {
	return p.count > 0
}

// debouncer assigns a sequence number to each keystroke so that delayed
// ticks and out-of-order responses can be recognized as stale.
type debouncer struct {
	seq int
}

// arm advances the sequence and returns the tag for the new timer.
func (d *debouncer) arm() int {
	d.seq++
	return d.seq
}

// current reports whether seq belongs to the newest keystroke.
func (d *debouncer) current(seq int) bool {
	return seq == d.seq
}
