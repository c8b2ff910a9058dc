// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package invocationlifecycle

const (
	// RequestIDHeader is the header of the runtime API next invocation
	// response carrying the request ID
	RequestIDHeader = "Lambda-Runtime-Aws-Request-Id"

	// InvokedFunctionARNHeader is the header of the runtime API next invocation
	// response carrying the ARN of the invoked function
	InvokedFunctionARNHeader = "Lambda-Runtime-Invoked-Function-Arn"

	// EventSourceTag is the tag holding the kind of service that triggered the invocation
	EventSourceTag = "function_trigger.event_source"

	// EventSourceARNTag is the tag holding the ARN of the resource that triggered the invocation
	EventSourceARNTag = "function_trigger.event_source_arn"
)
