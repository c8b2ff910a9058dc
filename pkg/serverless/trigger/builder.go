// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package trigger

import (
	"time"

	"github.com/google/uuid"

	"github.com/DataDog/datadog-serverless-trigger/pkg/util/log"
)

// Builder turns an invocation payload into a trigger event. A Builder holds
// no per-invocation state and can be shared between goroutines.
type Builder struct {
	normalizer *Normalizer
	items      ItemDecoder
	now        func() time.Time
	newID      func() string
}

// Option configures a Builder.
type Option func(*Builder)

// WithItemDecoder sets the decoder used to hash DynamoDB items.
func WithItemDecoder(d ItemDecoder) Option {
	return func(b *Builder) {
		if d != nil {
			b.items = d
		}
	}
}

// WithClock sets the function returning the trigger start time.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) {
		b.now = now
	}
}

// WithIDGenerator sets the function generating ids for sources that carry
// none.
func WithIDGenerator(newID func() string) Option {
	return func(b *Builder) {
		b.newID = newID
	}
}

// NewBuilder returns a Builder attaching metadata through n. A nil n uses
// the default Normalizer.
func NewBuilder(n *Normalizer, opts ...Option) *Builder {
	if n == nil {
		n = NewNormalizer(false, DefaultMaxPayloadSize)
	}
	b := &Builder{
		normalizer: n,
		items:      nopItemDecoder{},
		now:        time.Now,
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Normalizer returns the Normalizer the Builder attaches metadata with, so
// other event producers can apply the same policy.
func (b *Builder) Normalizer() *Normalizer {
	return b.normalizer
}

// Build classifies raw, runs the matching extractor and fills the common
// trigger fields. An error means the payload did not hold what its
// classification implies; callers should drop the trigger rather than fail
// the invocation.
func (b *Builder) Build(raw []byte, ictx InvocationContext) (*Event, error) {
	payload := decodePayload(raw)
	st := Classify(payload, ictx)

	ex, err := lookupExtractor(st)
	if err != nil {
		return nil, err
	}

	e := &Event{
		Metadata: Metadata{Annotations: map[string]interface{}{}},
	}
	x := &extraction{
		payload:    payload,
		ictx:       ictx,
		normalizer: b.normalizer,
		items:      b.items,
		newID:      b.newID,
	}
	if err := ex(x, e); err != nil {
		return nil, err
	}
	if e.ID == "" {
		e.ID = b.newID()
	}

	e.Origin = OriginTrigger
	e.StartTime = b.now()
	e.Duration = 0
	e.ErrorCode = ErrorCodeOK
	e.Resource.Type = string(st)

	log.Debugf("Built %s trigger %s for %s", st, e.ID, ictx.FunctionName)
	return e, nil
}
