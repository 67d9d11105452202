package rules

import (
	"github.com/expr-lang/expr/vm"

	"github.com/stusiojan/CityWeaver/model"
)

// ConstraintState is the outcome of a constraint evaluation.
type ConstraintState int

const (
	Succeeded ConstraintState = iota
	Failed
)

// ConstraintResult carries the outcome of one constraint rule: pass/fail,
// the (possibly adjusted) candidate to hand to the next rule, and a
// human-readable reason on failure.
type ConstraintResult struct {
	State  ConstraintState
	Query  model.QueryAttributes
	Reason string
}

func succeed(q model.QueryAttributes) ConstraintResult {
	return ConstraintResult{State: Succeeded, Query: q}
}

func fail(q model.QueryAttributes, reason string) ConstraintResult {
	return ConstraintResult{State: Failed, Query: q, Reason: reason}
}

// EvaluateFunc checks one candidate against one constraint.
type EvaluateFunc func(q model.QueryAttributes, env Env) ConstraintResult

// GenerateFunc emits follow-on proposals from an accepted segment.
type GenerateFunc func(q model.QueryAttributes, attrs model.RoadAttributes, env Env) []model.RoadProposal

// ConstraintRule is a gatekeeping predicate on road candidates.
// Lower Priority runs first. AppliesSrc is an expr condition over Env
// deciding whether the rule participates at all for a given context.
type ConstraintRule struct {
	Name       string
	Priority   int
	AppliesSrc string // expr source (preserved for inspection)
	program    *vm.Program
	Evaluate   EvaluateFunc
}

// GoalRule turns an accepted segment into zero or more new candidates.
// Goal rules may consume randomness through Env.Rand; constraint rules
// never do.
type GoalRule struct {
	Name       string
	Priority   int
	AppliesSrc string
	program    *vm.Program
	Generate   GenerateFunc
}
