// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package trigger

import "unicode/utf8"

const (
	// DefaultMaxPayloadSize is the default maximum length, in runes, of a
	// single payload string.
	DefaultMaxPayloadSize = 1024

	// TruncatedMarker is appended to payload strings cut at the maximum size.
	TruncatedMarker = "...(truncated)"
)

// Normalizer attaches metadata to events. Annotations are attached as-is.
// Payload entries are dropped in metadata-only mode, and payload strings
// longer than MaxPayloadSize are truncated, including strings nested in
// objects and lists.
type Normalizer struct {
	MetadataOnly   bool
	MaxPayloadSize int
}

// NewNormalizer returns a Normalizer. A non-positive maxPayloadSize selects
// DefaultMaxPayloadSize.
func NewNormalizer(metadataOnly bool, maxPayloadSize int) *Normalizer {
	if maxPayloadSize <= 0 {
		maxPayloadSize = DefaultMaxPayloadSize
	}
	return &Normalizer{
		MetadataOnly:   metadataOnly,
		MaxPayloadSize: maxPayloadSize,
	}
}

// AddToMetadata merges annotations and payload into the event metadata.
// Later keys overwrite earlier ones so annotation keys stay unique.
func (n *Normalizer) AddToMetadata(e *Event, annotations, payload map[string]interface{}) {
	if e.Metadata.Annotations == nil {
		e.Metadata.Annotations = make(map[string]interface{}, len(annotations))
	}
	for k, v := range annotations {
		e.Metadata.Annotations[k] = v
	}

	if n.MetadataOnly || len(payload) == 0 {
		return
	}
	if e.Metadata.Payload == nil {
		e.Metadata.Payload = make(map[string]interface{}, len(payload))
	}
	for k, v := range payload {
		e.Metadata.Payload[k] = n.truncateValue(v)
	}
}

// Truncate cuts s to MaxPayloadSize runes and appends TruncatedMarker when s
// is longer than that.
func (n *Normalizer) Truncate(s string) string {
	limit := n.MaxPayloadSize
	if limit <= 0 {
		limit = DefaultMaxPayloadSize
	}
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit]) + TruncatedMarker
}

// truncateValue applies Truncate to every string in a decoded JSON value.
// Objects and lists are copied, never modified in place.
func (n *Normalizer) truncateValue(v interface{}) interface{} {
	switch t := v.(type) {
	case string:
		return n.Truncate(t)
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, item := range t {
			out[k] = n.truncateValue(item)
		}
		return out
	case map[string]string:
		out := make(map[string]string, len(t))
		for k, item := range t {
			out[k] = n.Truncate(item)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, item := range t {
			out[i] = n.truncateValue(item)
		}
		return out
	default:
		return v
	}
}
