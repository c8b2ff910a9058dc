// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package invocationlifecycle

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/DataDog/datadog-serverless-trigger/pkg/serverless/trigger"
	"github.com/DataDog/datadog-serverless-trigger/pkg/util/log"
)

const (
	builtTotalName  = "serverless_trigger_built_total"
	errorsTotalName = "serverless_trigger_errors_total"
)

type processorMetrics struct {
	builtTotal  *prometheus.CounterVec
	errorsTotal prometheus.Counter
}

// newProcessorMetrics creates the processor counters and registers them on
// reg when it is not nil. Registration failures are logged.
func newProcessorMetrics(reg prometheus.Registerer) *processorMetrics {
	m := &processorMetrics{
		builtTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: builtTotalName,
			Help: "Total number of triggers built, by source type.",
		}, []string{"source_type"}),
		errorsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: errorsTotalName,
			Help: "Total number of invocations whose trigger could not be built.",
		}),
	}
	if reg != nil {
		m.register(reg, m.builtTotal, builtTotalName)
		m.register(reg, m.errorsTotal, errorsTotalName)
	}
	return m
}

func (m *processorMetrics) register(reg prometheus.Registerer, c prometheus.Collector, name string) {
	if err := reg.Register(c); err != nil {
		log.Warnf("Unable to register metric %s: %v", name, err)
	}
}

func (m *processorMetrics) triggerBuilt(st trigger.SourceType) {
	m.builtTotal.WithLabelValues(string(st)).Inc()
}

func (m *processorMetrics) triggerFailed() {
	m.errorsTotal.Inc()
}
