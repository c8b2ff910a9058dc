// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package trigger

import (
	"strings"
)

func extractKinesis(x *extraction, e *Event) error {
	record, err := x.firstRecord(SourceKinesis, "kinesis")
	if err != nil {
		return err
	}

	e.ID = record.str("eventID")
	e.Resource.Name = arnSegment(record.str("eventSourceARN"), "/", -1)
	e.Resource.Operation = strings.TrimPrefix(record.str("eventName"), "aws:kinesis:")
	x.normalizer.AddToMetadata(e, map[string]interface{}{
		"region":             record.str("awsRegion"),
		"invoke_identity":    record.str("invokeIdentityArn"),
		"sequence_number":    record.str("kinesis", "sequenceNumber"),
		"partition_key":      record.str("kinesis", "partitionKey"),
		"total_record_count": len(x.records()),
	}, nil)
	return nil
}
