package host

import (
	"context"
	"iter"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ardnew/randl/hash40"
	"github.com/ardnew/randl/lang"
	"github.com/ardnew/randl/log"
	"github.com/ardnew/randl/param"
	"github.com/ardnew/randl/pkg"
)

// Route identifies one entry that targets a file.
type Route struct {
	Source *Source
	Target string
	Entry  int
}

// Registry maps file hashes to the entries that edit those files.
// It is safe for concurrent use.
type Registry struct {
	routes  map[hash40.Hash40][]Route
	applier *lang.Applier
	codec   param.Codec
	tracer  trace.Tracer
	logger  log.Logger
	mu      sync.Mutex // guards applier
}

// New builds a Registry from sources. Entries are routed in source order
// and, within a source, in document order.
func New(sources []Source, opts ...Option) (*Registry, error) {
	o := makeOptions(opts...)

	r := &Registry{
		routes:  make(map[hash40.Hash40][]Route),
		applier: lang.NewApplier(o.lang...),
		codec:   o.codec,
		tracer:  o.tracer.Tracer(tracerName),
		logger:  o.logger,
	}

	for i := range sources {
		src := &sources[i]

		for entry, target := range src.Doc.Targets() {
			ok, err := o.filter.Match(target, src.Doc.Entries[entry].Pattern, entry, src.Path)
			if err != nil {
				return nil, err
			}

			if !ok {
				continue
			}

			h := hash40.FromString(target)

			if rs := r.routes[h]; len(rs) > 0 {
				if last := rs[len(rs)-1]; last.Source == src && last.Entry == entry {
					continue
				}
			}

			r.routes[h] = append(r.routes[h], Route{Source: src, Target: target, Entry: entry})
		}
	}

	r.logger.Debug("registry built",
		slog.Int("sources", len(sources)),
		slog.Int("targets", len(r.routes)),
	)

	return r, nil
}

// Len returns the number of distinct file hashes with routes.
func (r *Registry) Len() int { return len(r.routes) }

// Routes returns the routes for the file hashed to h.
func (r *Registry) Routes(h hash40.Hash40) []Route { return r.routes[h] }

// All yields every file hash with its routes in ascending hash order.
func (r *Registry) All() iter.Seq2[hash40.Hash40, []Route] {
	return func(yield func(hash40.Hash40, []Route) bool) {
		for _, h := range slices.Sorted(maps.Keys(r.routes)) {
			if !yield(h, r.routes[h]) {
				return
			}
		}
	}
}

// Handle edits the file hashed to h. It reports false, and returns no data,
// when no entry targets the file. On error the file must be used as is.
func (r *Registry) Handle(ctx context.Context, h hash40.Hash40, data []byte) ([]byte, bool, error) {
	routes := r.routes[h]
	if len(routes) == 0 {
		return nil, false, nil
	}

	ctx, span := r.tracer.Start(ctx, "randl.handle", trace.WithAttributes(
		attribute.String("randl.hash40", h.String()),
		attribute.String("randl.target", routes[0].Target),
		attribute.Int("randl.routes", len(routes)),
	))
	defer span.End()

	out, err := r.handle(ctx, routes, data)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		r.logger.WarnContext(ctx, "file left unchanged",
			slog.String("target", routes[0].Target), slog.Any("error", err))

		return nil, true, err
	}

	return out, true, nil
}

func (r *Registry) handle(ctx context.Context, routes []Route, data []byte) ([]byte, error) {
	root, err := r.codec.Decode(data)
	if err != nil {
		return nil, pkg.ErrDecode.Wrap(err)
	}

	if err := r.apply(ctx, routes, root); err != nil {
		return nil, err
	}

	out, err := r.codec.Encode(root)
	if err != nil {
		return nil, pkg.ErrEncode.Wrap(err)
	}

	return out, nil
}

func (r *Registry) apply(ctx context.Context, routes []Route, root *param.Node) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, route := range routes {
		doc := route.Source.Doc

		if err := r.applier.Apply(ctx, doc.Entries[route.Entry], root, doc.Sets); err != nil {
			return ErrApply.Wrap(err)
		}

		r.logger.DebugContext(ctx, "entry applied",
			slog.String("target", route.Target),
			slog.String("source", route.Source.Path),
			slog.Int("entry", route.Entry),
		)
	}

	return nil
}
