package notes

import (
	"fmt"

	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"
)

// Filter is a compiled note predicate.
//
// Expressions see id, text, priority (its name) and createdAt, for example
//
//	priority == "important" && text contains "bank"
type Filter struct {
	source  string
	program *exprvm.Program
}

// CompileFilter compiles a boolean expression over a note.
func CompileFilter(source string) (*Filter, error) {
	program, err := exprlang.Compile(source,
		exprlang.Env(noteEnv(Note{})),
		exprlang.AsBool(),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid note filter %q: %w", source, err)
	}
	return &Filter{source: source, program: program}, nil
}

// Match reports whether n satisfies the filter.
func (f *Filter) Match(n Note) (bool, error) {
	out, err := exprlang.Run(f.program, noteEnv(n))
	if err != nil {
		return false, fmt.Errorf("failed to evaluate %q: %w", f.source, err)
	}
	matched, _ := out.(bool)
	return matched, nil
}

// Query returns the notes matching source, in collection order.
func Query(notes []Note, source string) ([]Note, error) {
	f, err := CompileFilter(source)
	if err != nil {
		return nil, err
	}

	out := []Note{}
	for _, n := range notes {
		ok, err := f.Match(n)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, n)
		}
	}
	return out, nil
}

func noteEnv(n Note) map[string]any {
	return map[string]any{
		"id":        n.ID,
		"text":      n.Text,
		"priority":  priorityName(n.Priority),
		"createdAt": n.CreatedAt,
	}
}

func priorityName(p Priority) string {
	if name, ok := priorityNames[p]; ok {
		return name
	}
	return ""
}
