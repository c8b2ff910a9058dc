// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package trigger

// extractJSON handles direct invocations and every unrecognized payload.
func extractJSON(x *extraction, e *Event) error {
	e.ID = x.newID()
	e.Resource.Name = "trigger-" + x.ictx.FunctionName
	e.Resource.Operation = "Event"
	x.normalizer.AddToMetadata(e, nil, map[string]interface{}{
		"data": x.payload,
	})
	return nil
}
