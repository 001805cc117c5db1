package lang

import (
	"log/slog"
	"maps"
	"slices"
	"strings"
)

// Targets returns the file names matched by e. A pattern without a
// placeholder names one file. A pattern "prefix{set}suffix" names one file
// per element of the set, in set order, with integers written in base 10
// and strings inserted verbatim.
func (e *Entry) Targets(sets map[string]Set) ([]string, error) {
	prefix, name, suffix, ok, err := splitTemplate(e.Pattern)
	if err != nil {
		return nil, err
	}

	if !ok {
		return []string{e.Pattern}, nil
	}

	set, found := sets[name]
	if !found {
		return nil, suggest(
			ErrTemplate.With(slog.String("pattern", e.Pattern), slog.String("set", name)),
			name, setNames(sets)...,
		).Wrap(errorf("no set named %q", name))
	}

	names := make([]string, 0, len(set))

	for _, v := range set {
		switch v.Kind {
		case KindInt, KindString:
			names = append(names, prefix+v.String()+suffix)
		default:
			return nil, ErrTemplate.With(
				slog.String("pattern", e.Pattern),
				slog.String("set", name),
			).Wrap(errorf("set elements must be int or string, found %s", v.Kind))
		}
	}

	return names, nil
}

// splitTemplate separates a pattern at its placeholder. It reports ok false
// for a pattern without one.
func splitTemplate(pattern string) (prefix, name, suffix string, ok bool, err error) {
	switch strings.Count(pattern, "{") {
	case 0:
		return "", "", "", false, nil
	case 1:
	default:
		return "", "", "", false, ErrTemplate.With(slog.String("pattern", pattern)).
			Wrap(errorf("only one placeholder is allowed"))
	}

	prefix, rest, _ := strings.Cut(pattern, "{")

	name, suffix, closed := strings.Cut(rest, "}")
	if !closed {
		return "", "", "", false, ErrTemplate.With(slog.String("pattern", pattern)).
			Wrap(errorf("placeholder is not closed"))
	}

	return prefix, name, suffix, true, nil
}

// validate checks every entry's pattern against the document's sets.
func (d *Document) validate() error {
	for _, e := range d.Entries {
		if _, err := e.Targets(d.Sets); err != nil {
			return err
		}
	}

	return nil
}

func setNames(sets map[string]Set) []string {
	return slices.Sorted(maps.Keys(sets))
}
