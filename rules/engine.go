package rules

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Selection is the strategy pair chosen for one round. Empty fields mean no
// rule matched and the caller's default applies.
type Selection struct {
	Radar  string
	Attack string
}

// Engine runs compiled doctrine rules each round.
type Engine struct {
	mu    sync.RWMutex // Swap runs on the reload goroutine, Select on the read loop
	rules []*Rule
}

// NewEngine compiles all rule conditions into expr bytecode and sorts by priority.
func NewEngine(rules []*Rule) (*Engine, error) {
	compiled, err := compileRules(rules)
	if err != nil {
		return nil, err
	}
	return &Engine{rules: compiled}, nil
}

// Select evaluates rules in priority order and returns the first matching
// strategy for each category.
func (e *Engine) Select(env RoundEnv) Selection {
	e.mu.RLock()
	rules := e.rules
	e.mu.RUnlock()

	var sel Selection
	for _, r := range rules {
		slot := sel.slot(r.Category)
		if slot == nil || *slot != "" {
			continue
		}

		result, err := vm.Run(r.program, env)
		if err != nil {
			slog.Warn("rule condition error", "rule", r.Name, "error", err)
			continue
		}
		match, ok := result.(bool)
		if !ok || !match {
			continue
		}

		*slot = r.Strategy
		slog.Debug("rule fired", "rule", r.Name, "priority", r.Priority, "category", r.Category, "strategy", r.Strategy)
	}
	return sel
}

// Rules returns the active rule set in evaluation order.
func (e *Engine) Rules() []*Rule {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]*Rule(nil), e.rules...)
}

// Swap atomically replaces the rule set. Compiles first; if compilation
// fails the old rules remain active.
func (e *Engine) Swap(newRules []*Rule) error {
	compiled, err := compileRules(newRules)
	if err != nil {
		return err
	}
	names := make([]string, len(compiled))
	for i, r := range compiled {
		names[i] = r.Name
	}
	e.mu.Lock()
	e.rules = compiled
	e.mu.Unlock()
	slog.Info("rule set swapped", "count", len(compiled), "rules", names)
	return nil
}

func (s *Selection) slot(category string) *string {
	switch category {
	case CategoryRadar:
		return &s.Radar
	case CategoryAttack:
		return &s.Attack
	}
	return nil
}

func compileRules(rules []*Rule) ([]*Rule, error) {
	for _, r := range rules {
		if r.Category != CategoryRadar && r.Category != CategoryAttack {
			return nil, fmt.Errorf("rule %q: unknown category %q", r.Name, r.Category)
		}
		prog, err := expr.Compile(r.ConditionSrc, expr.Env(RoundEnv{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("compile rule %q: %w", r.Name, err)
		}
		r.program = prog
	}
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Priority > rules[j].Priority
	})
	return rules, nil
}
