// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package trigger

import (
	"strings"

	"github.com/spf13/cast"
)

// classificationRule derives a source type from a decoded payload object.
// A rule that returns ok stops the evaluation.
type classificationRule struct {
	name  string
	match func(p map[string]interface{}) (st SourceType, ok bool)
}

// classificationRules is evaluated top-down and the first match wins.
// Several rules can match the same payload, so the order is part of the
// behavior: an ALB request also carries httpMethod and must resolve to
// SourceElasticLoadBalancer before the API Gateway rule is reached.
var classificationRules = []classificationRule{
	{name: "records-EventSource", match: recordsEventSource("EventSource")},
	{name: "records-eventSource", match: recordsEventSource("eventSource")},
	{name: "eventbridge", match: func(p map[string]interface{}) (SourceType, bool) {
		return SourceEvents, has(p, "source") && has(p, "detail-type") && has(p, "detail")
	}},
	{name: "source", match: func(p map[string]interface{}) (SourceType, bool) {
		if has(p, "detail-type") {
			return "", false
		}
		source, err := cast.ToStringE(p["source"])
		if err != nil || source == "" {
			return "", false
		}
		return SourceType(afterLast(source, ".")), true
	}},
	{name: "elb", match: func(p map[string]interface{}) (SourceType, bool) {
		return SourceElasticLoadBalancer, has(object(p, "requestContext"), "elb")
	}},
	{name: "httpMethod", match: func(p map[string]interface{}) (SourceType, bool) {
		return SourceAPIGateway, has(p, "httpMethod")
	}},
	{name: "context-http-method", match: func(p map[string]interface{}) (SourceType, bool) {
		return SourceAPIGatewayNoProxy, has(object(p, "context"), "http-method")
	}},
	{name: "dynamodb", match: func(p map[string]interface{}) (SourceType, bool) {
		return SourceDynamoDB, has(p, "dynamodb")
	}},
	{name: "userPoolId", match: func(p map[string]interface{}) (SourceType, bool) {
		return SourceCognito, has(p, "userPoolId")
	}},
	{name: "http-api", match: func(p map[string]interface{}) (SourceType, bool) {
		rc := object(p, "requestContext")
		return SourceAPIGatewayHTTP2, has(rc, "apiId") && has(rc, "http")
	}},
	{name: "websocket", match: func(p map[string]interface{}) (SourceType, bool) {
		return SourceAPIGatewayWebsocket, has(object(p, "requestContext"), "apiId")
	}},
}

// Classify returns the source type of a decoded invocation payload. It is a
// pure function of its input: absent or mistyped fields are non-matches, and
// anything no rule recognizes, including nil and empty payloads, is
// SourceJSON. A rule deriving a type outside the enumeration also yields
// SourceJSON.
func Classify(payload interface{}, _ InvocationContext) SourceType {
	p, ok := payload.(map[string]interface{})
	if !ok || len(p) == 0 {
		return SourceJSON
	}
	for _, rule := range classificationRules {
		st, ok := rule.match(p)
		if !ok {
			continue
		}
		if !st.IsKnown() {
			return SourceJSON
		}
		return st
	}
	return SourceJSON
}

func recordsEventSource(key string) func(p map[string]interface{}) (SourceType, bool) {
	return func(p map[string]interface{}) (SourceType, bool) {
		records, err := cast.ToSliceE(p["Records"])
		if err != nil || len(records) == 0 {
			return "", false
		}
		first, ok := records[0].(map[string]interface{})
		if !ok {
			return "", false
		}
		source, err := cast.ToStringE(first[key])
		if err != nil || source == "" {
			return "", false
		}
		return SourceType(afterLast(source, ":")), true
	}
}

// has reports whether m holds a non-null value at key.
func has(m map[string]interface{}, key string) bool {
	if m == nil {
		return false
	}
	v, ok := m[key]
	return ok && v != nil
}

// object returns the JSON object at key, or nil.
func object(m map[string]interface{}, key string) map[string]interface{} {
	if m == nil {
		return nil
	}
	obj, _ := m[key].(map[string]interface{})
	return obj
}

// afterLast returns the part of s after the last sep, or s when sep is absent.
func afterLast(s, sep string) string {
	i := strings.LastIndex(s, sep)
	if i < 0 {
		return s
	}
	return s[i+len(sep):]
}
