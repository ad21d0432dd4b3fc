package ina2xx

const averageDepth = 4

// movingAverage stores an estimated moving average of the last averageDepth
// values. The first value pre-fills it.
type movingAverage struct {
	mean   float64
	primed bool
}

func (m *movingAverage) add(n float64) {
	if !m.primed {
		m.mean = n
		m.primed = true
		return
	}
	m.mean += (n - m.mean) / averageDepth
}

func (m *movingAverage) reset() {
	m.mean = 0
	m.primed = false
}
