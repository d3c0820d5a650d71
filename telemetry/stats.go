package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// RaceResult is one car's outcome in one race.
type RaceResult struct {
	RaceID       string  `csv:"race_id"`
	CarID        int     `csv:"car"`
	Lane         int     `csv:"lane"`
	Autonomous   bool    `csv:"autonomous"`
	BaseSpeed    float64 `csv:"base_speed"`
	Finished     bool    `csv:"finished"`
	FinishOrder  int     `csv:"finish_order"`
	FinishTime   float64 `csv:"finish_time"` // seconds of race time
	FinalX       float64 `csv:"final_x"`
	Winner       bool    `csv:"winner"`
	ObstaclesHit int     `csv:"obstacles_hit"`
	Absorbed     int     `csv:"absorbed"`
	Pickups      int     `csv:"pickups"`
	Blocked      int     `csv:"blocked"`
}

// RaceSummary aggregates one race.
type RaceSummary struct {
	RaceID       string  `csv:"race_id"`
	Cars         int     `csv:"cars"`
	Finishers    int     `csv:"finishers"`
	WinnerID     int     `csv:"winner"` // -1 when nobody finished
	WinnerTime   float64 `csv:"winner_time"`
	MeanFinish   float64 `csv:"mean_finish"`
	StdFinish    float64 `csv:"std_finish"`
	MedianFinish float64 `csv:"median_finish"`
	Spread       float64 `csv:"spread"` // last finisher minus winner
	ObstaclesHit int     `csv:"obstacles_hit"`
	Absorbed     int     `csv:"absorbed"`
	Pickups      int     `csv:"pickups"`
	Blocked      int     `csv:"blocked"`
	LockHoldMean float64 `csv:"lock_hold_us_mean"`
	LockHoldP99  float64 `csv:"lock_hold_us_p99"`
}

// Summarize computes a race summary from per-car results and lock hold samples (µs).
func Summarize(raceID string, results []RaceResult, lockHold []float64) RaceSummary {
	s := RaceSummary{RaceID: raceID, Cars: len(results), WinnerID: -1}

	var times []float64
	for _, r := range results {
		if r.Finished {
			times = append(times, r.FinishTime)
		}
		if r.Winner {
			s.WinnerID = r.CarID
			s.WinnerTime = r.FinishTime
		}
		s.ObstaclesHit += r.ObstaclesHit
		s.Absorbed += r.Absorbed
		s.Pickups += r.Pickups
		s.Blocked += r.Blocked
	}
	s.Finishers = len(times)

	if len(times) > 0 {
		sort.Float64s(times)
		s.MeanFinish = stat.Mean(times, nil)
		s.MedianFinish = stat.Quantile(0.5, stat.Empirical, times, nil)
		s.Spread = times[len(times)-1] - times[0]
		if len(times) > 1 {
			s.StdFinish = stat.StdDev(times, nil)
		}
	}

	if len(lockHold) > 0 {
		sorted := make([]float64, len(lockHold))
		copy(sorted, lockHold)
		sort.Float64s(sorted)
		s.LockHoldMean = stat.Mean(sorted, nil)
		s.LockHoldP99 = stat.Quantile(0.99, stat.Empirical, sorted, nil)
	}

	return s
}

// LogSummary outputs the summary via slog.
func (s RaceSummary) LogSummary() {
	slog.Info("race_summary",
		"race_id", s.RaceID,
		"cars", s.Cars,
		"finishers", s.Finishers,
		"winner", s.WinnerID,
		"winner_time", s.WinnerTime,
		"mean_finish", s.MeanFinish,
		"std_finish", s.StdFinish,
		"median_finish", s.MedianFinish,
		"obstacles_hit", s.ObstaclesHit,
		"absorbed", s.Absorbed,
		"pickups", s.Pickups,
		"blocked", s.Blocked,
		"lock_hold_us_mean", s.LockHoldMean,
		"lock_hold_us_p99", s.LockHoldP99,
	)
}
