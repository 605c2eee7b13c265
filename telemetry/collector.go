package telemetry

// EventRecord summarizes one collision event.
type EventRecord struct {
	Event  int     `csv:"event"`
	Impact float64 `csv:"impact"`
	Npart  int     `csv:"npart"`
	Ncoll  int     `csv:"ncoll"`
	MeanKf float64 `csv:"kf_mean"`
}

// Collector accumulates per-event records and overlap factors for a run.
type Collector struct {
	records []EventRecord
	kf      []float64

	// Current event counters
	event  int
	impact float64
	ncoll  int
	kfSum  float64
	kfN    int
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// BeginEvent starts accumulation for the next event at the given impact
// parameter.
func (c *Collector) BeginEvent(impact float64) {
	c.event++
	c.impact = impact
	c.ncoll = 0
	c.kfSum = 0
	c.kfN = 0
}

// RecordPair records one sampled pair: its overlap factor and whether the
// pair collided.
func (c *Collector) RecordPair(kf float64, collided bool) {
	c.kf = append(c.kf, kf)
	c.kfSum += kf
	c.kfN++
	if collided {
		c.ncoll++
	}
}

// EndEvent closes the current event with its final participant count.
func (c *Collector) EndEvent(npart int) EventRecord {
	rec := EventRecord{
		Event:  c.event,
		Impact: c.impact,
		Npart:  npart,
		Ncoll:  c.ncoll,
	}
	if c.kfN > 0 {
		rec.MeanKf = c.kfSum / float64(c.kfN)
	}
	c.records = append(c.records, rec)
	return rec
}

// Events returns all closed event records.
func (c *Collector) Events() []EventRecord {
	return c.records
}

// Summary aggregates the run into a single stats record.
func (c *Collector) Summary() RunStats {
	s := RunStats{Events: len(c.records)}
	if s.Events == 0 {
		return s
	}
	var npart, ncoll int
	for _, r := range c.records {
		npart += r.Npart
		ncoll += r.Ncoll
	}
	s.MeanNpart = float64(npart) / float64(s.Events)
	s.MeanNcoll = float64(ncoll) / float64(s.Events)
	s.KfMean, s.KfP10, s.KfP50, s.KfP90 = ComputeOverlapStats(c.kf)
	return s
}
