// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package trigger

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testStartTime = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

const generatedID = "generated-id"

func newTestBuilder(metadataOnly bool, opts ...Option) *Builder {
	opts = append([]Option{
		WithClock(func() time.Time { return testStartTime }),
		WithIDGenerator(func() string { return generatedID }),
	}, opts...)
	return NewBuilder(NewNormalizer(metadataOnly, 0), opts...)
}

func build(t *testing.T, payload string) *Event {
	t.Helper()
	e, err := newTestBuilder(false).Build([]byte(payload), testContext)
	require.NoError(t, err)
	return e
}

func TestBuildFillsCommonFields(t *testing.T) {
	e := build(t, `{"hello":"world"}`)

	assert.Equal(t, generatedID, e.ID)
	assert.Equal(t, OriginTrigger, e.Origin)
	assert.Equal(t, testStartTime, e.StartTime)
	assert.Equal(t, time.Duration(0), e.Duration)
	assert.Equal(t, ErrorCodeOK, e.ErrorCode)
	assert.Equal(t, "json", e.Resource.Type)
	assert.Equal(t, SourceJSON, e.SourceType())
}

func TestBuildJSON(t *testing.T) {
	e := build(t, `{"hello":"world"}`)

	assert.Equal(t, "trigger-my-function", e.Resource.Name)
	assert.Equal(t, "Event", e.Resource.Operation)
	assert.Equal(t, map[string]interface{}{"hello": "world"}, e.Metadata.Payload["data"])
	assert.Empty(t, e.Metadata.Annotations)
}

func TestBuildNullAndEmptyPayloads(t *testing.T) {
	for _, payload := range []string{``, `null`, `{}`} {
		e := build(t, payload)
		assert.Equal(t, SourceJSON, e.SourceType(), payload)
		assert.Equal(t, generatedID, e.ID, payload)
		assert.Equal(t, "trigger-my-function", e.Resource.Name, payload)
	}
}

func TestBuildTruncatesLargeRawPayload(t *testing.T) {
	e := build(t, `"`+strings.Repeat("a", 2000)+`"`)

	data, ok := e.Metadata.Payload["data"].(string)
	require.True(t, ok)
	assert.Equal(t, strings.Repeat("a", DefaultMaxPayloadSize)+TruncatedMarker, data)
}

func TestBuildKeepsNonJSONPayloadAsText(t *testing.T) {
	e := build(t, `not json`)

	assert.Equal(t, SourceJSON, e.SourceType())
	assert.Equal(t, "not json", e.Metadata.Payload["data"])
}

func TestBuildGeneratesIDWhenSourceHasNone(t *testing.T) {
	e := build(t, `{"Records":[{"eventSource":"aws:s3","s3":{"bucket":{"name":"bucket"}}}]}`)

	assert.Equal(t, generatedID, e.ID)
	assert.Equal(t, "bucket", e.Resource.Name)
}

func TestBuildShapeMismatchIsAnError(t *testing.T) {
	payload := `{"Records":[{"eventSource":"aws:s3","s3":"bucket"}]}`
	e, err := newTestBuilder(false).Build([]byte(payload), testContext)

	assert.Nil(t, e)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrShapeMismatch))
	assert.Contains(t, err.Error(), "s3")
}

func TestBuildUsesDefaults(t *testing.T) {
	b := NewBuilder(nil)
	require.NotNil(t, b.Normalizer())
	assert.Equal(t, DefaultMaxPayloadSize, b.Normalizer().MaxPayloadSize)
	assert.False(t, b.Normalizer().MetadataOnly)

	e, err := b.Build([]byte(`{}`), testContext)
	require.NoError(t, err)
	assert.NotEmpty(t, e.ID)
	assert.NotEqual(t, generatedID, e.ID)
	assert.False(t, e.StartTime.IsZero())
}

func TestBuildReturnsFreshEvents(t *testing.T) {
	b := newTestBuilder(false)
	first, err := b.Build([]byte(`{"a":1}`), testContext)
	require.NoError(t, err)
	second, err := b.Build([]byte(`{"a":2}`), testContext)
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.Equal(t, map[string]interface{}{"a": float64(1)}, first.Metadata.Payload["data"])
}

func TestNewEvent(t *testing.T) {
	e := NewEvent("fs", "file_system", testStartTime)

	assert.NotEmpty(t, e.ID)
	assert.Equal(t, "fs", e.Origin)
	assert.Equal(t, "file_system", e.Resource.Type)
	assert.Equal(t, testStartTime, e.StartTime)
	assert.NotNil(t, e.Metadata.Annotations)
	assert.NotNil(t, e.Metadata.Payload)
}
