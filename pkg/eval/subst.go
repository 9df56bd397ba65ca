package eval

import (
	"fmt"
	"strings"

	"src.litecode.dev/pkg/eval/vals"
	"src.litecode.dev/pkg/expr"
)

// Substitution selects how variables in reassignment expressions are
// resolved.
type Substitution int

const (
	// ExactSubstitution resolves variables as whole identifier tokens.
	ExactSubstitution Substitution = iota
	// NaiveSubstitution replaces every textual occurrence of each variable
	// name with the text of its value before evaluating, in declaration
	// order. A variable named x turns max(1, 2) into ma5(1, 2) when x is 5.
	NaiveSubstitution
)

var substitutionNames = []string{"exact", "naive"}

func (s Substitution) String() string {
	if 0 <= int(s) && int(s) < len(substitutionNames) {
		return substitutionNames[s]
	}
	return fmt.Sprintf("Substitution(%d)", int(s))
}

// ParseSubstitution parses the name of a Substitution.
func ParseSubstitution(name string) (Substitution, error) {
	for i, s := range substitutionNames {
		if name == s {
			return Substitution(i), nil
		}
	}
	return 0, fmt.Errorf("unknown substitution %q, should be one of %s",
		name, strings.Join(substitutionNames, ", "))
}

// Evaluates an expression against env. Failures are always *expr.Error.
func evalExpr(text string, env *Env, s Substitution) (any, error) {
	if s == NaiveSubstitution {
		return expr.Evaluate(substitute(text, env), expr.NoVars)
	}
	return expr.Evaluate(text, env)
}

func substitute(text string, env *Env) string {
	for _, name := range env.order {
		text = strings.ReplaceAll(text, name, vals.ToString(env.values[name]))
	}
	return text
}
