package telemetry

import (
	"math"
	"testing"
)

func TestSummarize(t *testing.T) {
	results := []RaceResult{
		{CarID: 0, Finished: true, FinishOrder: 2, FinishTime: 12, ObstaclesHit: 1},
		{CarID: 1, Finished: true, FinishOrder: 1, FinishTime: 10, Winner: true, Pickups: 2},
		{CarID: 2, Finished: true, FinishOrder: 3, FinishTime: 14, Absorbed: 1, ObstaclesHit: 1},
		{CarID: 3, Finished: false, Blocked: 4},
	}

	s := Summarize("r1", results, []float64{1, 2, 3})

	if s.Cars != 4 || s.Finishers != 3 {
		t.Errorf("cars=%d finishers=%d, want 4 and 3", s.Cars, s.Finishers)
	}
	if s.WinnerID != 1 || s.WinnerTime != 10 {
		t.Errorf("winner=%d time=%v, want 1 and 10", s.WinnerID, s.WinnerTime)
	}
	if math.Abs(s.MeanFinish-12) > 1e-9 {
		t.Errorf("MeanFinish = %v, want 12", s.MeanFinish)
	}
	if math.Abs(s.StdFinish-2) > 1e-9 {
		t.Errorf("StdFinish = %v, want 2", s.StdFinish)
	}
	if s.MedianFinish != 12 {
		t.Errorf("MedianFinish = %v, want 12", s.MedianFinish)
	}
	if s.Spread != 4 {
		t.Errorf("Spread = %v, want 4", s.Spread)
	}
	if s.ObstaclesHit != 2 || s.Absorbed != 1 || s.Pickups != 2 || s.Blocked != 4 {
		t.Errorf("totals = %+v", s)
	}
	if math.Abs(s.LockHoldMean-2) > 1e-9 {
		t.Errorf("LockHoldMean = %v, want 2", s.LockHoldMean)
	}
	if s.LockHoldP99 != 3 {
		t.Errorf("LockHoldP99 = %v, want 3", s.LockHoldP99)
	}
}

func TestSummarizeNoFinishers(t *testing.T) {
	s := Summarize("r2", []RaceResult{{CarID: 0}, {CarID: 1}}, nil)

	if s.WinnerID != -1 || s.Finishers != 0 {
		t.Errorf("winner=%d finishers=%d, want -1 and 0", s.WinnerID, s.Finishers)
	}
	if s.MeanFinish != 0 || s.StdFinish != 0 || s.LockHoldMean != 0 {
		t.Error("empty statistics should be zero")
	}
}

func TestSummarizeSingleFinisher(t *testing.T) {
	s := Summarize("r3", []RaceResult{{CarID: 0, Finished: true, FinishTime: 9, Winner: true}}, nil)

	if s.StdFinish != 0 || math.IsNaN(s.StdFinish) {
		t.Errorf("StdFinish = %v, want 0", s.StdFinish)
	}
	if s.MedianFinish != 9 {
		t.Errorf("MedianFinish = %v, want 9", s.MedianFinish)
	}
}
