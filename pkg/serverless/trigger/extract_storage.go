// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package trigger

func extractS3(x *extraction, e *Event) error {
	record, err := x.firstRecord(SourceS3, "s3")
	if err != nil {
		return err
	}
	obj := record.obj("s3", "object")

	e.ID = record.str("responseElements", "x-amz-request-id")
	e.Resource.Name = record.str("s3", "bucket", "name")
	e.Resource.Operation = record.str("eventName")
	x.normalizer.AddToMetadata(e, map[string]interface{}{
		"region":             record.str("awsRegion"),
		"request_parameters": toJSONString(record.value("requestParameters")),
		"user_identity":      toJSONString(record.value("userIdentity")),
		"object_key":         obj.str("key"),
		"object_size":        obj.integer("size"),
		"object_etag":        obj.str("eTag"),
		"object_sequencer":   obj.str("sequencer"),
	}, nil)
	return nil
}

// extractDynamoDB handles stream events, and single stream records passed
// directly as the payload.
func extractDynamoDB(x *extraction, e *Event) error {
	record, rawRecords := x.object(), []interface{}{x.payload}
	if !has(record, "dynamodb") {
		var err error
		if record, err = x.firstRecord(SourceDynamoDB, "dynamodb"); err != nil {
			return err
		}
		rawRecords = x.records()
	} else if record.obj("dynamodb") == nil {
		return shapeError(SourceDynamoDB, "dynamodb is not an object")
	}

	eventName := record.str("eventName")
	item := record.value("dynamodb", "NewImage")
	if eventName == "REMOVE" || item == nil {
		item = record.value("dynamodb", "Keys")
	}

	e.ID = record.str("eventID")
	e.Resource.Name = arnSegment(record.str("eventSourceARN"), "/", 1)
	e.Resource.Operation = eventName
	x.normalizer.AddToMetadata(e, map[string]interface{}{
		"region":             record.str("awsRegion"),
		"sequence_number":    record.str("dynamodb", "SequenceNumber"),
		"item_hash":          itemHash(x.items, itemJSON(item)),
		"total_record_count": len(rawRecords),
	}, map[string]interface{}{
		"records": toJSONString(rawRecords),
	})
	return nil
}

// itemJSON re-encodes a decoded attribute-value map for the ItemDecoder.
func itemJSON(item interface{}) []byte {
	if item == nil {
		return nil
	}
	b, err := json.Marshal(item)
	if err != nil {
		return nil
	}
	return b
}
