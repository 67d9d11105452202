package engine

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/stusiojan/CityWeaver/model"
	"github.com/stusiojan/CityWeaver/rules"
)

// Engine drives road-network generation: it owns the event queue and the
// accepted-segment list, and runs candidates through the active rule sets.
// A single generation run is synchronous and single-threaded; the queue
// and segment list must not be touched externally while it runs.
type Engine struct {
	terrain model.TerrainMap
	city    model.CityState
	cfg     rules.Config

	constraints *rules.ConstraintEvaluator
	goals       *rules.GoalEvaluator

	queue    roadQueue
	segments []model.RoadSegment
	seed     int64
	rng      *rand.Rand
}

// New validates the configuration, builds both active rule lists and
// seeds the goal-rule rng from cfg.Seed (or the clock when zero).
func New(city model.CityState, terrain model.TerrainMap, cfg rules.Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	seed := resolveSeed(cfg.Seed)
	e := &Engine{
		terrain: terrain,
		city:    city,
		cfg:     cfg,
		seed:    seed,
		rng:     rand.New(rand.NewSource(seed)),
	}
	if err := e.regenerateRules(); err != nil {
		return nil, err
	}
	e.city.NeedsRuleRegeneration = false
	return e, nil
}

// GenerateNetwork runs the event loop from a seed candidate until the
// queue drains or a configured ceiling stops it. Returns the accepted
// segments in commit order.
func (e *Engine) GenerateNetwork(seedAttrs model.RoadAttributes, seedQuery model.QueryAttributes) []model.RoadSegment {
	e.queue.push(roadQueueEntry{tick: 0, attrs: seedAttrs, query: seedQuery})

	for e.queue.Len() > 0 {
		entry := e.queue.pop()
		if e.cfg.MaxTick > 0 && entry.tick > e.cfg.MaxTick {
			slog.Info("generation stopped at max tick", "tick", entry.tick, "segments", len(e.segments))
			break
		}

		env := rules.Env{
			Location: entry.query.Start,
			Terrain:  e.terrain,
			City:     e.city,
			Segments: e.segments,
			Query:    entry.query,
			Config:   e.cfg,
			Rand:     e.rng,
		}

		adjusted, state := e.constraints.Evaluate(entry.query, env)
		if state == rules.Failed {
			continue
		}

		// Commit the popped entry's own attributes. Constraint adjustments
		// only steer goal generation, never the committed geometry.
		seg := model.RoadSegment{ID: uuid.NewString(), Attrs: entry.attrs, Tick: entry.tick}
		e.segments = append(e.segments, seg)
		env.Query = adjusted
		if e.cfg.MaxSegments > 0 && len(e.segments) >= e.cfg.MaxSegments {
			slog.Info("generation stopped at max segments", "segments", len(e.segments))
			break
		}

		for _, p := range e.goals.GenerateProposals(adjusted, seg.Attrs, env) {
			if p.Delay <= 0 {
				slog.Warn("dropping proposal with non-positive delay", "delay", p.Delay)
				continue
			}
			e.queue.push(roadQueueEntry{tick: entry.tick + p.Delay, attrs: p.Attrs, query: p.Query})
		}
	}

	out := make([]model.RoadSegment, len(e.segments))
	copy(out, e.segments)
	return out
}

// Reset clears the accepted segments and the queue and rewinds the
// goal-rule rng to its seed, so a rerun with unchanged inputs reproduces
// the same network. Terrain, city state, configuration and the active
// rule lists are retained.
func (e *Engine) Reset() {
	e.segments = nil
	e.queue = roadQueue{}
	e.rng = rand.New(rand.NewSource(e.seed))
}

// resolveSeed turns the configured seed into a concrete one, drawing
// from the clock when unset.
func resolveSeed(configured int64) int64 {
	if configured == 0 {
		return time.Now().UnixNano()
	}
	return configured
}

// UpdateCityState replaces the stored city state. The rule lists are
// rebuilt when the transition calls for it, and the regeneration request
// flag is cleared on the stored copy.
func (e *Engine) UpdateCityState(city model.CityState) error {
	regen := ruleRegenerationNeeded(e.city, city)
	e.city = city
	if regen {
		if err := e.regenerateRules(); err != nil {
			return err
		}
	}
	e.city.NeedsRuleRegeneration = false
	return nil
}

// UpdateTerrainMap replaces the terrain lookup and unconditionally
// rebuilds both rule lists.
func (e *Engine) UpdateTerrainMap(terrain model.TerrainMap) error {
	e.terrain = terrain
	return e.regenerateRules()
}

// UpdateConfiguration validates and installs a new configuration, then
// unconditionally rebuilds both rule lists. An invalid configuration
// leaves the engine untouched.
func (e *Engine) UpdateConfiguration(cfg rules.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.Seed != e.cfg.Seed {
		e.seed = resolveSeed(cfg.Seed)
		e.rng = rand.New(rand.NewSource(e.seed))
	}
	e.cfg = cfg
	return e.regenerateRules()
}

// Segments returns a copy of the accepted-segment list.
func (e *Engine) Segments() []model.RoadSegment {
	out := make([]model.RoadSegment, len(e.segments))
	copy(out, e.segments)
	return out
}

// QueueSize reports how many candidates are still waiting.
func (e *Engine) QueueSize() int {
	return e.queue.Len()
}

// ruleRegenerationNeeded decides whether a city-state transition requires
// new rule lists: either the simulation asked for it explicitly, or the
// city aged and the age-gated rules may have changed.
func ruleRegenerationNeeded(old, next model.CityState) bool {
	return next.NeedsRuleRegeneration || old.Age != next.Age
}

func (e *Engine) regenerateRules() error {
	constraints, err := rules.LocalConstraints(e.city, e.terrain, e.cfg)
	if err != nil {
		return fmt.Errorf("regenerate constraints: %w", err)
	}
	goals, err := rules.GlobalGoals(e.city, e.terrain, e.cfg)
	if err != nil {
		return fmt.Errorf("regenerate goals: %w", err)
	}
	if e.constraints == nil {
		e.constraints = rules.NewConstraintEvaluator(constraints)
		e.goals = rules.NewGoalEvaluator(goals)
	} else {
		e.constraints.UpdateRules(constraints)
		e.goals.UpdateRules(goals)
	}
	slog.Info("rule sets regenerated", "constraints", len(constraints), "goals", len(goals), "cityAge", e.city.Age)
	return nil
}
