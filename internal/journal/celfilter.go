package journal

import (
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/cel-go/cel"
)

// celFilter wraps a compiled CEL program and evaluates it per journal entry.
// When disabled, Eval always returns true.
type celFilter struct {
	prog    cel.Program
	enabled bool
}

func newCELFilter(expr string) (celFilter, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return celFilter{enabled: false}, nil
	}
	env, err := cel.NewEnv(
		cel.Variable("id", cel.StringType),
		// Decoded ID fields
		cel.Variable("ts", cel.IntType),
		cel.Variable("machine", cel.StringType),
		cel.Variable("pid", cel.IntType),
		cel.Variable("counter", cel.IntType),
		// Entry metadata
		cel.Variable("source", cel.StringType),
		cel.Variable("note", cel.StringType),
		// Current unix seconds for windowed filters
		cel.Variable("now", cel.IntType),
	)
	if err != nil {
		return celFilter{}, err
	}
	ast, iss := env.Parse(expr)
	if iss != nil && iss.Err() != nil {
		return celFilter{}, iss.Err()
	}
	checked, iss2 := env.Check(ast)
	if iss2 != nil && iss2.Err() != nil {
		return celFilter{}, iss2.Err()
	}
	prog, err := env.Program(checked)
	if err != nil {
		return celFilter{}, err
	}
	return celFilter{prog: prog, enabled: true}, nil
}

// Eval evaluates the compiled expression against an entry. When disabled,
// returns true; evaluation errors filter the entry out.
func (f celFilter) Eval(e Entry) bool {
	if !f.enabled {
		return true
	}
	out, _, err := f.prog.Eval(map[string]any{
		"id":      e.ID.String(),
		"ts":      e.ID.Time().Unix(),
		"machine": hex.EncodeToString(e.ID.Machine()),
		"pid":     int64(e.ID.Pid()),
		"counter": int64(e.ID.Counter()),
		"source":  e.Source,
		"note":    e.Note,
		"now":     time.Now().Unix(),
	})
	if err != nil {
		return false
	}
	b, ok := out.Value().(bool)
	return ok && b
}
