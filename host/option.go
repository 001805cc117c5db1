package host

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/ardnew/randl/lang"
	"github.com/ardnew/randl/log"
	"github.com/ardnew/randl/param"
)

const tracerName = "github.com/ardnew/randl/host"

// Option configures loading and the [Registry].
type Option func(*options)

type options struct {
	logger log.Logger
	codec  param.Codec
	filter *Filter
	tracer trace.TracerProvider
	lang   []lang.Option
}

func makeOptions(opts ...Option) options {
	o := options{codec: param.YAML{}}

	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	if o.tracer == nil {
		o.tracer = otel.GetTracerProvider()
	}

	return o
}

// WithLogger sets the logger for load and apply diagnostics.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
		o.lang = append(o.lang, lang.WithLogger(logger))
	}
}

// WithCodec sets the codec used to decode and encode param files.
// The default is [param.YAML].
func WithCodec(codec param.Codec) Option {
	return func(o *options) { o.codec = codec }
}

// WithFilter restricts the registry to targets accepted by f.
func WithFilter(f *Filter) Option {
	return func(o *options) { o.filter = f }
}

// WithSeed pins the random source of the registry. A zero seed leaves the
// source randomly seeded.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		if seed != 0 {
			o.lang = append(o.lang, lang.WithSeed(seed))
		}
	}
}

// WithTracerProvider sets the provider of the tracer that records
// [Registry.Handle] spans. The default is the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) { o.tracer = tp }
}

// WithConfig applies the seed and filter of c.
func WithConfig(c Config) (Option, error) {
	f, err := CompileFilter(c.Filter)
	if err != nil {
		return nil, err
	}

	return func(o *options) {
		WithSeed(c.Seed)(o)

		if f != nil {
			o.filter = f
		}
	}, nil
}
