// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

// Package invocationlifecycle builds the trigger of each function invocation
// and hands it to a sink once the invocation ends. Failures to build a
// trigger are logged and counted, never surfaced to the invocation.
package invocationlifecycle

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/DataDog/datadog-serverless-trigger/pkg/serverless/aws"
	"github.com/DataDog/datadog-serverless-trigger/pkg/serverless/trigger"
	"github.com/DataDog/datadog-serverless-trigger/pkg/util/log"
)

// LifecycleProcessor is an InvocationProcessor that builds triggers.
type LifecycleProcessor struct {
	builder *trigger.Builder
	sink    Sink
	state   aws.InvocationState
	metrics *processorMetrics

	mu          sync.Mutex
	current     *trigger.Event
	requestTags map[string]string
}

var _ InvocationProcessor = (*LifecycleProcessor)(nil)

// NewLifecycleProcessor returns a processor building triggers with builder
// and sending them to sink. Counters are registered on reg when it is not nil.
func NewLifecycleProcessor(builder *trigger.Builder, sink Sink, reg prometheus.Registerer) *LifecycleProcessor {
	if builder == nil {
		builder = trigger.NewBuilder(nil)
	}
	return &LifecycleProcessor{
		builder: builder,
		sink:    sink,
		metrics: newProcessorMetrics(reg),
	}
}

// OnInvokeStart builds the trigger of the starting invocation.
func (lp *LifecycleProcessor) OnInvokeStart(startDetails *InvocationStartDetails) {
	arn := startDetails.InvokedFunctionARN
	if arn == "" {
		arn = startDetails.InvokeEventHeaders.Get(InvokedFunctionARNHeader)
	}
	if arn != "" {
		lp.state.SetARN(arn)
	}
	lp.state.SetRequestID(startDetails.InvokeEventHeaders.Get(RequestIDHeader))

	ictx := trigger.InvocationContext{
		FunctionName:       lp.state.FunctionName(),
		RequestID:          lp.state.RequestID(),
		InvokedFunctionARN: lp.state.ARN(),
	}

	lp.mu.Lock()
	defer lp.mu.Unlock()
	lp.current = nil
	lp.requestTags = nil

	e, err := lp.build(startDetails.InvokeEventRawPayload, ictx)
	if err != nil {
		lp.metrics.triggerFailed()
		log.Errorf("Unable to build the trigger of invocation %s: %v", ictx.RequestID, err)
		return
	}
	if !startDetails.StartTime.IsZero() {
		e.StartTime = startDetails.StartTime
	}
	lp.metrics.triggerBuilt(e.SourceType())
	lp.initFromTrigger(e, startDetails.InvokeEventRawPayload)
	lp.current = e
	log.Debugf("Built %s trigger %s for invocation %s", e.SourceType(), e.ID, ictx.RequestID)
}

// build runs the builder, turning a panic into an error.
func (lp *LifecycleProcessor) build(raw []byte, ictx trigger.InvocationContext) (e *trigger.Event, err error) {
	defer func() {
		if r := recover(); r != nil {
			e, err = nil, fmt.Errorf("panic while building trigger: %v", r)
		}
	}()
	return lp.builder.Build(raw, ictx)
}

// OnInvokeEnd fills the duration of the current trigger and sends it.
func (lp *LifecycleProcessor) OnInvokeEnd(endDetails *InvocationEndDetails) {
	lp.mu.Lock()
	e := lp.current
	lp.current = nil
	lp.mu.Unlock()

	if e == nil {
		log.Debugf("No trigger to send for invocation %s", endDetails.RequestID)
		return
	}
	if endDetails.EndTime.After(e.StartTime) {
		e.Duration = endDetails.EndTime.Sub(e.StartTime)
	}
	if lp.sink != nil {
		lp.sink.Send(e)
	}
}

// GetCurrentTrigger returns the trigger of the invocation in flight, or nil.
func (lp *LifecycleProcessor) GetCurrentTrigger() *trigger.Event {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	return lp.current
}

// GetTags returns a copy of the tags of the invocation in flight.
func (lp *LifecycleProcessor) GetTags() map[string]string {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	tags := make(map[string]string, len(lp.requestTags))
	for k, v := range lp.requestTags {
		tags[k] = v
	}
	return tags
}
