// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package trigger

// extractCognito handles user pool triggers. Request and response differ per
// trigger source and are kept generic.
func extractCognito(x *extraction, e *Event) error {
	event := x.object()

	e.ID = x.newID()
	e.Resource.Name = event.str("userPoolId")
	e.Resource.Operation = event.str("triggerSource")
	x.normalizer.AddToMetadata(e, map[string]interface{}{
		"user_name": event.str("userName"),
		"region":    event.str("region"),
	}, map[string]interface{}{
		"caller_context": event.value("callerContext"),
		"request":        event.value("request"),
		"response":       event.value("response"),
	})
	return nil
}
