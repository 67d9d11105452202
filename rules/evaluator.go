package rules

import (
	"log/slog"
	"sync"

	"github.com/expr-lang/expr/vm"

	"github.com/stusiojan/CityWeaver/model"
)

// ConstraintEvaluator runs an ordered constraint list against one
// candidate. Evaluation is a short-circuiting fold: the first failing rule
// ends the run, and each rule's adjusted query feeds the next rule.
type ConstraintEvaluator struct {
	mu    sync.RWMutex
	rules []*ConstraintRule
}

// NewConstraintEvaluator wraps an already-compiled rule list.
func NewConstraintEvaluator(rules []*ConstraintRule) *ConstraintEvaluator {
	e := &ConstraintEvaluator{}
	e.UpdateRules(rules)
	return e
}

// UpdateRules atomically replaces the active rule list, re-sorting by
// priority. The old rules stay active until the swap completes.
func (e *ConstraintEvaluator) UpdateRules(rules []*ConstraintRule) {
	sortConstraints(rules)
	e.mu.Lock()
	e.rules = rules
	e.mu.Unlock()
}

// Evaluate applies the active constraints in priority order. Rules whose
// appliesTo condition is false are skipped. Returns the final adjusted
// query and whether the candidate survived.
func (e *ConstraintEvaluator) Evaluate(q model.QueryAttributes, env Env) (model.QueryAttributes, ConstraintState) {
	e.mu.RLock()
	rules := e.rules
	e.mu.RUnlock()

	for _, r := range rules {
		if !applies(r.Name, r.program, env) {
			continue
		}
		res := r.Evaluate(q, env)
		if res.State == Failed {
			slog.Debug("constraint failed", "rule", r.Name, "reason", res.Reason)
			return res.Query, Failed
		}
		q = res.Query
		env.Query = q
	}
	return q, Succeeded
}

// GoalEvaluator accumulates proposals across an ordered goal list.
// Unlike constraints there is no short-circuit: every applicable goal
// contributes.
type GoalEvaluator struct {
	mu    sync.RWMutex
	rules []*GoalRule
}

// NewGoalEvaluator wraps an already-compiled rule list.
func NewGoalEvaluator(rules []*GoalRule) *GoalEvaluator {
	e := &GoalEvaluator{}
	e.UpdateRules(rules)
	return e
}

// UpdateRules atomically replaces the active rule list, re-sorting by
// priority.
func (e *GoalEvaluator) UpdateRules(rules []*GoalRule) {
	sortGoals(rules)
	e.mu.Lock()
	e.rules = rules
	e.mu.Unlock()
}

// GenerateProposals concatenates the output of every applicable goal rule
// in priority order.
func (e *GoalEvaluator) GenerateProposals(q model.QueryAttributes, attrs model.RoadAttributes, env Env) []model.RoadProposal {
	e.mu.RLock()
	rules := e.rules
	e.mu.RUnlock()

	var out []model.RoadProposal
	for _, r := range rules {
		if !applies(r.Name, r.program, env) {
			continue
		}
		out = append(out, r.Generate(q, attrs, env)...)
	}
	return out
}

// applies runs a compiled appliesTo condition. Condition errors skip the
// rule rather than abort the evaluation.
func applies(name string, program *vm.Program, env Env) bool {
	result, err := vm.Run(program, env)
	if err != nil {
		slog.Warn("rule condition error", "rule", name, "error", err)
		return false
	}
	match, ok := result.(bool)
	return ok && match
}
