package host

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Filter is a compiled boolean expression over a target. The expression
// sees these variables:
//
//	target   expanded file name
//	pattern  the entry's file pattern
//	entry    index of the entry within its document
//	source   path of the document
//
// For example: target startsWith "fighter/mario/" && entry == 0
type Filter struct {
	prog *vm.Program
	src  string
}

// CompileFilter compiles src into a Filter. A blank src yields the nil
// Filter, which accepts everything.
func CompileFilter(src string) (*Filter, error) {
	if strings.TrimSpace(src) == "" {
		return nil, nil
	}

	prog, err := expr.Compile(src, expr.Env(filterEnv("", "", 0, "")), expr.AsBool())
	if err != nil {
		return nil, ErrFilter.Wrap(err)
	}

	return &Filter{prog: prog, src: src}, nil
}

func filterEnv(target, pattern string, entry int, source string) map[string]any {
	return map[string]any{
		"target":  target,
		"pattern": pattern,
		"entry":   entry,
		"source":  source,
	}
}

// Match reports whether the filter accepts a target. A nil Filter accepts
// everything.
func (f *Filter) Match(target, pattern string, entry int, source string) (bool, error) {
	if f == nil {
		return true, nil
	}

	out, err := expr.Run(f.prog, filterEnv(target, pattern, entry, source))
	if err != nil {
		return false, ErrFilter.Wrap(err)
	}

	ok, isBool := out.(bool)
	if !isBool {
		return false, ErrFilter.Wrap(fmt.Errorf("result %T is not bool", out))
	}

	return ok, nil
}

func (f *Filter) String() string {
	if f == nil {
		return ""
	}

	return f.src
}
