// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

// Package trigger identifies what caused a serverless invocation. It
// classifies the raw invocation payload into one of a closed set of source
// types, extracts an id, a resource name and operation and metadata for that
// source, and returns a finished trigger Event.
package trigger

import (
	"time"

	"github.com/google/uuid"
)

// SourceType is the closed classification of what caused an invocation.
type SourceType string

// Source types, as sent in Resource.Type.
const (
	SourceJSON                SourceType = "json"
	SourceS3                  SourceType = "s3"
	SourceKinesis             SourceType = "kinesis"
	SourceEvents              SourceType = "events"
	SourceSNS                 SourceType = "sns"
	SourceSQS                 SourceType = "sqs"
	SourceAPIGateway          SourceType = "api_gateway"
	SourceAPIGatewayNoProxy   SourceType = "api_gateway_no_proxy"
	SourceAPIGatewayWebsocket SourceType = "api_gateway_websocket"
	SourceAPIGatewayHTTP2     SourceType = "api_gateway_http2"
	SourceDynamoDB            SourceType = "dynamodb"
	SourceElasticLoadBalancer SourceType = "elastic_load_balancer"
	SourceCognito             SourceType = "cognito"
)

// SourceTypes lists every SourceType. The registry must hold one extractor
// for each of them.
var SourceTypes = []SourceType{
	SourceJSON,
	SourceS3,
	SourceKinesis,
	SourceEvents,
	SourceSNS,
	SourceSQS,
	SourceAPIGateway,
	SourceAPIGatewayNoProxy,
	SourceAPIGatewayWebsocket,
	SourceAPIGatewayHTTP2,
	SourceDynamoDB,
	SourceElasticLoadBalancer,
	SourceCognito,
}

// IsKnown reports whether st belongs to the closed enumeration.
func (st SourceType) IsKnown() bool {
	for _, known := range SourceTypes {
		if st == known {
			return true
		}
	}
	return false
}

// ErrorCode is the outcome recorded on an event.
type ErrorCode int

const (
	// ErrorCodeOK is the only code set on triggers
	ErrorCodeOK ErrorCode = iota
	// ErrorCodeError marks an operation that completed with an error result
	ErrorCodeError
	// ErrorCodeException marks an operation that raised
	ErrorCodeException
)

// OriginTrigger is the origin of every event built by the Builder.
const OriginTrigger = "trigger"

// InvocationContext carries the invocation fields the extractors need.
type InvocationContext struct {
	FunctionName       string
	RequestID          string
	InvokedFunctionARN string
}

// Resource describes what the event touched.
type Resource struct {
	Type      string `json:"type"`
	Name      string `json:"name"`
	Operation string `json:"operation"`
}

// Metadata holds the two metadata channels of an event.
//
// Annotations are small searchable values and are never capped. Payload
// holds raw blobs and goes through the Normalizer size and redaction policy.
type Metadata struct {
	Annotations map[string]interface{} `json:"annotations"`
	Payload     map[string]interface{} `json:"payload,omitempty"`
}

// Event is a trace event. The Builder produces events with origin
// OriginTrigger; other instrumentation may produce its own with NewEvent.
type Event struct {
	ID        string        `json:"id"`
	Origin    string        `json:"origin"`
	StartTime time.Time     `json:"start_time"`
	Duration  time.Duration `json:"duration"`
	ErrorCode ErrorCode     `json:"error_code"`
	Resource  Resource      `json:"resource"`
	Metadata  Metadata      `json:"metadata"`
}

// SourceType returns the event resource type as a SourceType.
func (e *Event) SourceType() SourceType {
	return SourceType(e.Resource.Type)
}

// NewEvent returns a blank event with a generated id, the given origin and
// resource type, started at now.
func NewEvent(origin, resourceType string, now time.Time) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Origin:    origin,
		StartTime: now,
		ErrorCode: ErrorCodeOK,
		Resource:  Resource{Type: resourceType},
		Metadata: Metadata{
			Annotations: map[string]interface{}{},
			Payload:     map[string]interface{}{},
		},
	}
}
