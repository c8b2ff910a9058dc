// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package invocationlifecycle

import "github.com/DataDog/datadog-serverless-trigger/pkg/serverless/trigger"

// InvocationProcessor is the interface to implement to receive invocation lifecycle hooks
type InvocationProcessor interface {
	// OnInvokeStart is the hook triggered when an invocation has started
	OnInvokeStart(startDetails *InvocationStartDetails)
	// OnInvokeEnd is the hook triggered when an invocation has ended
	OnInvokeEnd(endDetails *InvocationEndDetails)
	// GetCurrentTrigger returns the trigger of the invocation in flight, if any
	GetCurrentTrigger() *trigger.Event
}

// Sink receives the finished trigger of every invocation.
type Sink interface {
	Send(e *trigger.Event)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(e *trigger.Event)

// Send calls f(e).
func (f SinkFunc) Send(e *trigger.Event) { f(e) }
