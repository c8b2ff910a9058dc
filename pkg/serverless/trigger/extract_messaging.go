// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package trigger

import (
	"github.com/samber/lo"
	"github.com/spf13/cast"

	"github.com/DataDog/datadog-serverless-trigger/pkg/util/log"
)

const (
	sqsOperation         = "ReceiveMessage"
	defaultEventsName    = "CloudWatch Events"
	snsNotificationType  = "Notification"
	stepsDictAnnotation  = "steps_dict"
	snsMessageAnnotation = "sns_message"
)

func extractSNS(x *extraction, e *Event) error {
	record, err := x.firstRecord(SourceSNS, "Sns")
	if err != nil {
		return err
	}
	sns := record.obj("Sns")

	e.ID = sns.str("MessageId")
	e.Resource.Name = arnSegment(record.str("EventSubscriptionArn"), ":", -2)
	e.Resource.Operation = sns.str("Type")
	x.normalizer.AddToMetadata(e, map[string]interface{}{
		"subject": sns.str("Subject"),
	}, map[string]interface{}{
		"message":            sns.str("Message"),
		"message_attributes": sns.value("MessageAttributes"),
	})
	return nil
}

func extractSQS(x *extraction, e *Event) error {
	first, err := x.firstRecord(SourceSQS, "")
	if err != nil {
		return err
	}
	records := lo.FilterMap(x.records(), func(r interface{}, _ int) (fields, bool) {
		record := asFields(r)
		return record, record != nil
	})
	n := x.normalizer

	annotations := map[string]interface{}{
		"record": lo.Map(records, func(r fields, _ int) map[string]interface{} {
			data := map[string]interface{}{
				"md5_of_message_body": r.str("md5OfBody"),
				"message_id":          r.str("messageId"),
			}
			if !n.MetadataOnly {
				data["message_body"] = n.Truncate(r.str("body"))
				data["message_attributes"] = n.truncateValue(r.value("messageAttributes"))
			}
			return data
		}),
		"total_record_count": len(x.records()),
	}
	if steps, ok := stepsDict(first.str("body")); ok {
		annotations[stepsDictAnnotation] = steps
	}
	for _, r := range records {
		if sns, ok := snsNotification(r.str("body"), n); ok {
			annotations[snsMessageAnnotation] = sns
			break
		}
	}

	e.ID = first.str("messageId")
	e.Resource.Name = arnSegment(first.str("eventSourceARN"), ":", -1)
	e.Resource.Operation = sqsOperation
	n.AddToMetadata(e, annotations, nil)
	return nil
}

// stepsDict returns the step functions state carried under input.Epsagon in
// a JSON message body.
func stepsDict(body string) (map[string]interface{}, bool) {
	var parsed map[string]interface{}
	if err := json.UnmarshalFromString(body, &parsed); err != nil {
		log.Debugf("SQS message body is not JSON, skipping step functions state: %v", err)
		return nil, false
	}
	steps := object(object(parsed, "input"), "Epsagon")
	if steps == nil {
		return nil, false
	}
	return steps, true
}

// snsNotification returns the SNS notification a message body carries when
// the queue is subscribed to a topic.
func snsNotification(body string, n *Normalizer) (map[string]interface{}, bool) {
	var parsed map[string]interface{}
	if err := json.UnmarshalFromString(body, &parsed); err != nil {
		return nil, false
	}
	msg := fields(parsed)
	if msg.str("Type") != snsNotificationType || msg.str("TopicArn") == "" {
		return nil, false
	}
	sns := map[string]interface{}{
		"message_id": msg.str("MessageId"),
		"topic_arn":  msg.str("TopicArn"),
	}
	if subject := msg.str("Subject"); subject != "" {
		sns["subject"] = subject
	}
	if !n.MetadataOnly {
		sns["message"] = n.Truncate(msg.str("Message"))
	}
	return sns, true
}

// extractEvents handles EventBridge and CloudWatch scheduled events.
func extractEvents(x *extraction, e *Event) error {
	event := x.object()

	detail := ""
	if event.value("detail") != nil {
		detail = toJSONString(event.value("detail"))
	}
	name := defaultEventsName
	if resources := event.list("resources"); len(resources) > 0 {
		name = arnSegment(cast.ToString(resources[0]), "/", -1)
	}

	e.ID = event.str("id")
	e.Resource.Name = name
	e.Resource.Operation = event.str("detail-type")
	x.normalizer.AddToMetadata(e, map[string]interface{}{
		"region":  event.str("region"),
		"detail":  detail,
		"account": event.str("account"),
	}, nil)
	return nil
}
