// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package invocationlifecycle

import (
	"github.com/aws/aws-lambda-go/events"
	jsoniter "github.com/json-iterator/go"

	"github.com/DataDog/datadog-serverless-trigger/pkg/serverless/trigger"
	"github.com/DataDog/datadog-serverless-trigger/pkg/util/log"
)

// eventSources maps trigger source types to the event source tag value.
// Generic JSON invocations carry no tag.
var eventSources = map[trigger.SourceType]string{
	trigger.SourceS3:                  "s3",
	trigger.SourceKinesis:             "kinesis",
	trigger.SourceEvents:              "cloudwatch-events",
	trigger.SourceSNS:                 "sns",
	trigger.SourceSQS:                 "sqs",
	trigger.SourceAPIGateway:          "api-gateway",
	trigger.SourceAPIGatewayNoProxy:   "api-gateway",
	trigger.SourceAPIGatewayWebsocket: "api-gateway",
	trigger.SourceAPIGatewayHTTP2:     "api-gateway",
	trigger.SourceDynamoDB:            "dynamodb",
	trigger.SourceElasticLoadBalancer: "application-load-balancer",
	trigger.SourceCognito:             "cognito",
}

func (lp *LifecycleProcessor) initFromTrigger(e *trigger.Event, raw []byte) {
	source, ok := eventSources[e.SourceType()]
	if !ok {
		return
	}
	lp.addTag(EventSourceTag, source)
	if arn := eventSourceARN(e.SourceType(), raw); arn != "" {
		lp.addTag(EventSourceARNTag, arn)
	}
}

// eventSourceARN returns the ARN of the resource that emitted raw. The tag is
// optional, so a payload the typed event cannot hold yields "".
func eventSourceARN(st trigger.SourceType, raw []byte) string {
	switch st {
	case trigger.SourceS3:
		var event events.S3Event
		if decodeEvent(st, raw, &event) && len(event.Records) > 0 {
			return event.Records[0].S3.Bucket.Arn
		}
	case trigger.SourceKinesis:
		var event events.KinesisEvent
		if decodeEvent(st, raw, &event) && len(event.Records) > 0 {
			return event.Records[0].EventSourceArn
		}
	case trigger.SourceDynamoDB:
		var event events.DynamoDBEvent
		if decodeEvent(st, raw, &event) && len(event.Records) > 0 {
			return event.Records[0].EventSourceArn
		}
	case trigger.SourceSNS:
		var event events.SNSEvent
		if decodeEvent(st, raw, &event) && len(event.Records) > 0 {
			return event.Records[0].SNS.TopicArn
		}
	case trigger.SourceSQS:
		var event events.SQSEvent
		if decodeEvent(st, raw, &event) && len(event.Records) > 0 {
			return event.Records[0].EventSourceARN
		}
	case trigger.SourceEvents:
		var event events.CloudWatchEvent
		if decodeEvent(st, raw, &event) && len(event.Resources) > 0 {
			return event.Resources[0]
		}
	case trigger.SourceElasticLoadBalancer:
		var event events.ALBTargetGroupRequest
		if decodeEvent(st, raw, &event) {
			return event.RequestContext.ELB.TargetGroupArn
		}
	}
	return ""
}

func decodeEvent(st trigger.SourceType, raw []byte, v interface{}) bool {
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(raw, v); err != nil {
		log.Debugf("Unable to decode %s event, skipping %s: %v", st, EventSourceARNTag, err)
		return false
	}
	return true
}

// addTag must be called while holding lp.mu.
func (lp *LifecycleProcessor) addTag(key, value string) {
	if lp.requestTags == nil {
		lp.requestTags = make(map[string]string)
	}
	lp.requestTags[key] = value
}
