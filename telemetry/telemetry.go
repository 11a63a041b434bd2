// Package telemetry provides OpenTelemetry instrumentation around a token
// vocabulary: counters for growth and lookup traffic, and spans around
// snapshot persistence.
//
// Instrumentation is optional at every level. A nil tracer or meter simply
// disables that side, so the same wrapper works in fully instrumented
// services and in plain unit tests.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/nlpkit/lexicon/numbered"
	"github.com/nlpkit/lexicon/store"
	"github.com/nlpkit/lexicon/token"
)

// Options configures instrumentation. Both fields are optional; leaving one
// nil disables spans or metrics respectively.
type Options struct {
	// Tracer emits spans around snapshot save and load.
	Tracer trace.Tracer

	// Meter creates the vocabulary counters.
	Meter metric.Meter
}

// Vocabulary wraps a token manager with OTel metrics and spans.
//
// Metrics recorded:
//   - lexicon.entries: counter of newly interned entries
//   - lexicon.lookups: counter of read-only lookups, with a "hit" attribute
//   - lexicon.unknown: counter of lookups resolved by the miss policy
//
// Every instrument carries a "vocab" attribute with the wrapper's name, so
// several vocabularies can share one meter.
type Vocabulary struct {
	vocab *token.Manager
	attrs []attribute.KeyValue

	tracer  trace.Tracer
	entries metric.Int64Counter
	lookups metric.Int64Counter
	unknown metric.Int64Counter
}

// Instrument wraps the vocabulary with the given instrumentation.
func Instrument(name string, vocab *token.Manager, opts Options) (*Vocabulary, error) {
	v := &Vocabulary{
		vocab:  vocab,
		attrs:  []attribute.KeyValue{attribute.String("vocab", name)},
		tracer: opts.Tracer,
	}

	if opts.Meter == nil {
		return v, nil
	}

	var err error

	v.entries, err = opts.Meter.Int64Counter(
		"lexicon.entries",
		metric.WithDescription("Number of entries interned into the vocabulary"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create entries counter: %w", err)
	}

	v.lookups, err = opts.Meter.Int64Counter(
		"lexicon.lookups",
		metric.WithDescription("Number of read-only lookups against the vocabulary"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create lookups counter: %w", err)
	}

	v.unknown, err = opts.Meter.Int64Counter(
		"lexicon.unknown",
		metric.WithDescription("Number of lookups resolved by the miss policy"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create unknown counter: %w", err)
	}

	return v, nil
}

// Manager returns the wrapped token manager.
func (v *Vocabulary) Manager() *token.Manager { return v.vocab }

// Len returns the number of interned tokens.
func (v *Vocabulary) Len() int { return v.vocab.Len() }

// Values returns the interned tokens in id order.
func (v *Vocabulary) Values() []token.Token { return v.vocab.Values() }

// At returns the token with the given id.
func (v *Vocabulary) At(i numbered.ID) (token.Token, error) { return v.vocab.At(i) }

// GetOrCreate interns key and counts newly created entries.
func (v *Vocabulary) GetOrCreate(ctx context.Context, key string) (token.Token, error) {
	before := v.vocab.Len()
	tok, err := v.vocab.GetOrCreate(key)
	if err != nil {
		return tok, err
	}

	if v.entries != nil && v.vocab.Len() > before {
		v.entries.Add(ctx, 1, metric.WithAttributes(v.attrs...))
	}
	return tok, nil
}

// Get resolves key under the vocabulary's miss policy and counts the lookup.
// A lookup that the policy resolved (sentinel or template fallback) also
// increments the unknown counter.
func (v *Vocabulary) Get(ctx context.Context, key string) (token.Token, bool) {
	_, hit := v.vocab.GetOrNone(key)

	if v.lookups != nil {
		attrs := append([]attribute.KeyValue{attribute.Bool("hit", hit)}, v.attrs...)
		v.lookups.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
	if !hit && v.unknown != nil {
		v.unknown.Add(ctx, 1, metric.WithAttributes(v.attrs...))
	}

	return v.vocab.Get(key)
}

// SaveSnapshot captures the vocabulary and saves it, inside a span when a
// tracer is configured.
func (v *Vocabulary) SaveSnapshot(ctx context.Context, st store.Store, name string) error {
	if v.tracer != nil {
		var span trace.Span
		ctx, span = v.tracer.Start(ctx, "lexicon.snapshot.save", trace.WithAttributes(
			append([]attribute.KeyValue{
				attribute.String("snapshot.name", name),
				attribute.Int("vocab.size", v.vocab.Len()),
			}, v.attrs...)...,
		))
		defer span.End()

		if err := st.Save(ctx, store.Capture(name, v.vocab)); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}
		span.SetStatus(codes.Ok, "")
		return nil
	}

	return st.Save(ctx, store.Capture(name, v.vocab))
}

// LoadSnapshot loads a named snapshot, inside a span when a tracer is
// configured. The snapshot is returned for the caller to Restore with the
// appropriate options.
func (v *Vocabulary) LoadSnapshot(ctx context.Context, st store.Store, name string) (*store.Snapshot, error) {
	if v.tracer == nil {
		return st.Load(ctx, name)
	}

	ctx, span := v.tracer.Start(ctx, "lexicon.snapshot.load", trace.WithAttributes(
		append([]attribute.KeyValue{attribute.String("snapshot.name", name)}, v.attrs...)...,
	))
	defer span.End()

	snap, err := st.Load(ctx, name)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("snapshot.entries", len(snap.Entries)))
	span.SetStatus(codes.Ok, "")
	return snap, nil
}
