package rules

import "github.com/expr-lang/expr/vm"

// Strategy categories. Each round the engine picks one strategy per category.
const (
	CategoryRadar  = "radar"
	CategoryAttack = "attack"
)

// Rule is a condition → strategy pair. The highest-priority rule whose
// condition holds decides the strategy for its category.
type Rule struct {
	Name         string      // human-readable identifier
	Priority     int         // higher = evaluated first
	Category     string      // CategoryRadar or CategoryAttack
	ConditionSrc string      // expr source (preserved for logging)
	Strategy     string      // strategy name chosen when the condition holds
	program      *vm.Program // compiled bytecode
}
