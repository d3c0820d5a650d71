package game

import (
	"log/slog"

	"github.com/pthm-cable/raceway/telemetry"
)

// Reporter writes each finished race to an output manager exactly once.
// Interactive front-ends call Observe every frame.
type Reporter struct {
	g    *Game
	out  *telemetry.OutputManager
	last string // race ID most recently written
}

// NewReporter creates a reporter. out may be nil, in which case races are
// only logged.
func NewReporter(g *Game, out *telemetry.OutputManager) *Reporter {
	return &Reporter{g: g, out: out}
}

// Observe writes the race shown in snap once it has a winner and every
// autonomous car has finished. With force set, a race with a winner is written
// even while stragglers are still driving. It reports whether it wrote.
func (r *Reporter) Observe(snap Snapshot, force bool) bool {
	if snap.Phase != PhaseFinished || snap.RaceID == "" || snap.RaceID == r.last {
		return false
	}
	if !force {
		for _, c := range snap.Cars {
			if c.Autonomous && !c.Finished {
				return false
			}
		}
	}
	r.last = snap.RaceID

	report := r.g.Report()
	report.Summary.LogSummary()
	if err := writeReport(r.out, report, r.g.cfg.Telemetry.SnapshotOnFinish); err != nil {
		slog.Error("writing race report", "race_id", snap.RaceID, "error", err)
	}
	return true
}
