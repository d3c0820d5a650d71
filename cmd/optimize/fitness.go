package main

import (
	"context"
	"math"
	"sync"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/raceway/config"
	"github.com/pthm-cable/raceway/game"
	"github.com/pthm-cable/raceway/telemetry"
)

// FitnessEvaluator runs headless races and computes fitness.
type FitnessEvaluator struct {
	params       *ParamVector
	seeds        []int64
	baseConfig   *config.Config
	stepInterval float64 // worker throttle used for evaluation races

	// Best run tracking
	mu            sync.Mutex
	bestFitness   float64
	bestSummaries []telemetry.RaceSummary
	lastWinShare  float64 // interactive car win share from the most recent Evaluate call
	lastSpread    float64 // mean relative finish spread from the most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, seeds []int64, baseCfg *config.Config, stepInterval float64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:       params,
		seeds:        seeds,
		baseConfig:   baseCfg,
		stepInterval: stepInterval,
		bestFitness:  math.Inf(1),
	}
}

// BestSummaries returns the race summaries from the best evaluation.
func (fe *FitnessEvaluator) BestSummaries() []telemetry.RaceSummary {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestSummaries
}

// LastStats returns the win share and spread from the most recent evaluation.
func (fe *FitnessEvaluator) LastStats() (winShare, spread float64) {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastWinShare, fe.lastSpread
}

// spreadWeight scales the closeness term against the fairness term.
const spreadWeight = 0.5

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	summary   telemetry.RaceSummary
	playerWon bool
	spread    float64 // (last finish - winner time) / winner time
	err       error
}

// Evaluate computes fitness for a parameter vector (lower = better).
//
// A fair race gives the interactive car a win share of 1/cars under the
// autopilot; a close race keeps finish times near the winner's. Fitness is
// the distance from the fair share plus the weighted mean relative spread.
// Failed races count as the worst outcome.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runRace(x, s)
		}(i, seed)
	}
	wg.Wait()

	var wins float64
	spreads := make([]float64, 0, len(results))
	summaries := make([]telemetry.RaceSummary, 0, len(results))
	for _, r := range results {
		if r.err != nil {
			return math.Inf(1)
		}
		if r.playerWon {
			wins++
		}
		spreads = append(spreads, r.spread)
		summaries = append(summaries, r.summary)
	}

	cars := float64(fe.baseConfig.Cars.Count)
	winShare := wins / float64(len(results))
	spread := stat.Mean(spreads, nil)
	fitness := math.Abs(winShare-1/cars) + spreadWeight*spread

	fe.mu.Lock()
	if fitness < fe.bestFitness {
		fe.bestFitness = fitness
		fe.bestSummaries = summaries
	}
	fe.lastWinShare = winShare
	fe.lastSpread = spread
	fe.mu.Unlock()

	return fitness
}

// runRace executes one headless race with the interactive car on autopilot.
func (fe *FitnessEvaluator) runRace(x []float64, seed int64) seedResult {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)
	cfg.Cars.Interactive = true
	cfg.Timing.StepInterval = fe.stepInterval
	cfg.ComputeDerived()

	g, err := game.NewGame(cfg, game.Options{Seed: seed})
	if err != nil {
		return seedResult{err: err}
	}
	defer g.Close()

	ctx, cancel := context.WithTimeout(context.Background(), raceTimeout(cfg))
	defer cancel()

	// An expired race returns ctx.Err and counts as failed
	report, err := g.RunRace(ctx, true)
	if err != nil {
		return seedResult{err: err}
	}

	res := seedResult{summary: report.Summary}
	for _, r := range report.Results {
		if r.Winner && !r.Autonomous {
			res.playerWon = true
		}
	}
	if report.Summary.WinnerTime > 0 {
		res.spread = report.Summary.Spread / report.Summary.WinnerTime
	}
	return res
}

const (
	timeoutSlack   = 4                // headroom over the unobstructed race time
	minRaceTimeout = 10 * time.Second // floor for very short tracks
)

// raceTimeout bounds one evaluation race by the time the slowest possible car
// needs to cover the track without obstruction. Workers move once per step
// interval, the autopilot once per frame.
func raceTimeout(cfg *config.Config) time.Duration {
	slowest := cfg.Cars.BaseSpeed - cfg.Cars.SpeedVariance
	if slowest <= 0 || cfg.Movement.JitterMin <= 0 || cfg.Movement.PlayerFactor <= 0 {
		return minRaceTimeout
	}

	length := cfg.Derived.TrackLength
	workerSteps := math.Ceil(length / (slowest * cfg.Movement.JitterMin))
	playerFrames := math.Ceil(length / (slowest * cfg.Movement.PlayerFactor))
	est := max(
		time.Duration(workerSteps)*cfg.Derived.StepInterval,
		time.Duration(playerFrames)*cfg.Derived.FrameInterval,
	)
	return max(timeoutSlack*est, minRaceTimeout)
}

// copyConfig returns an independent copy of the base config.
// Config holds only values, so a struct copy is deep.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}
