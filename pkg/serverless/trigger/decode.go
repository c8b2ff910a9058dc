// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package trigger

import (
	"bytes"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cast"

	"github.com/DataDog/datadog-serverless-trigger/pkg/util/log"
)

// json sorts map keys when encoding, which item hashing relies on.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// extraction is the input of one extractor call.
type extraction struct {
	payload    interface{}
	ictx       InvocationContext
	normalizer *Normalizer
	items      ItemDecoder
	newID      func() string
}

// object returns the decoded payload as a JSON object, or nil.
func (x *extraction) object() fields {
	return asFields(x.payload)
}

// records returns the decoded Records list, or nil.
func (x *extraction) records() []interface{} {
	return x.object().list("Records")
}

// firstRecord returns the first Records entry. It fails when the payload has
// no records, or when the first record is not an object carrying the entity
// object st is read from.
func (x *extraction) firstRecord(st SourceType, entity string) (fields, error) {
	records := x.records()
	if len(records) == 0 {
		return nil, shapeError(st, "no records")
	}
	first, ok := records[0].(map[string]interface{})
	if !ok {
		return nil, shapeError(st, "first record is not an object")
	}
	if entity != "" && fields(first).obj(entity) == nil {
		return nil, shapeError(st, "first record has no %s object", entity)
	}
	return first, nil
}

// fields reads values out of a decoded JSON object. Missing and mistyped
// values read as zero values, so a malformed field only loses itself.
type fields map[string]interface{}

func asFields(v interface{}) fields {
	m, _ := v.(map[string]interface{})
	return m
}

// value returns the value found by walking path through nested objects.
func (f fields) value(path ...string) interface{} {
	var v interface{} = map[string]interface{}(f)
	for _, key := range path {
		m, ok := v.(map[string]interface{})
		if !ok {
			return nil
		}
		v = m[key]
	}
	return v
}

func (f fields) obj(path ...string) fields {
	return asFields(f.value(path...))
}

func (f fields) str(path ...string) string {
	s, err := cast.ToStringE(f.value(path...))
	if err != nil {
		log.Tracef("Ignoring malformed trigger field %s: %v", strings.Join(path, "."), err)
		return ""
	}
	return s
}

func (f fields) integer(path ...string) int64 {
	v := f.value(path...)
	if v == nil {
		return 0
	}
	n, err := cast.ToInt64E(v)
	if err != nil {
		log.Tracef("Ignoring malformed trigger field %s: %v", strings.Join(path, "."), err)
		return 0
	}
	return n
}

func (f fields) list(path ...string) []interface{} {
	l, _ := f.value(path...).([]interface{})
	return l
}

// stringMap returns the object at path with its values converted to strings.
// Values that have no string form are dropped.
func (f fields) stringMap(path ...string) map[string]string {
	obj := f.obj(path...)
	if obj == nil {
		return nil
	}
	out := make(map[string]string, len(obj))
	for k, v := range obj {
		if s, err := cast.ToStringE(v); err == nil {
			out[k] = s
		}
	}
	return out
}

// decodePayload decodes the raw invocation payload into generic JSON
// values. Text that is not JSON is kept as a string.
func decodePayload(raw []byte) interface{} {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil
	}
	var payload interface{}
	if err := json.Unmarshal(trimmed, &payload); err != nil {
		log.Debugf("Invocation payload is not JSON, keeping it as text: %v", err)
		return string(raw)
	}
	return payload
}

// toJSONString serializes v, returning "" when it cannot be encoded.
func toJSONString(v interface{}) string {
	s, err := json.MarshalToString(v)
	if err != nil {
		log.Debugf("Unable to serialize trigger metadata: %v", err)
		return ""
	}
	return s
}

// arnSegment splits arn on sep and returns the segment at index i, counting
// from the end when i is negative. It returns "" when out of range.
func arnSegment(arn, sep string, i int) string {
	parts := strings.Split(arn, sep)
	if i < 0 {
		i += len(parts)
	}
	if i < 0 || i >= len(parts) {
		return ""
	}
	return parts[i]
}

// header returns the value of name in headers, trying the canonical and the
// lower-case spelling.
func header(headers map[string]string, name string) string {
	if v, ok := headers[name]; ok {
		return v
	}
	return headers[strings.ToLower(name)]
}
