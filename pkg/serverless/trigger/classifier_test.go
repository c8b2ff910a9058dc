// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package trigger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var testContext = InvocationContext{FunctionName: "my-function"}

func classifyString(payload string) SourceType {
	return Classify(decodePayload([]byte(payload)), testContext)
}

func TestClassifyKnownShapes(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		expected SourceType
	}{
		{"s3", `{"Records":[{"eventSource":"aws:s3"}]}`, SourceS3},
		{"kinesis", `{"Records":[{"eventSource":"aws:kinesis"}]}`, SourceKinesis},
		{"sqs", `{"Records":[{"eventSource":"aws:sqs"}]}`, SourceSQS},
		{"sns", `{"Records":[{"EventSource":"aws:sns"}]}`, SourceSNS},
		{"dynamodb stream", `{"Records":[{"eventSource":"aws:dynamodb"}]}`, SourceDynamoDB},
		{"eventbridge", `{"source":"aws.events","detail-type":"Scheduled Event","detail":{}}`, SourceEvents},
		{"source only", `{"source":"aws.events"}`, SourceEvents},
		{"elb", `{"requestContext":{"elb":{"targetGroupArn":"arn"}}}`, SourceElasticLoadBalancer},
		{"rest api", `{"httpMethod":"GET","requestContext":{"apiId":"abc"}}`, SourceAPIGateway},
		{"no proxy", `{"context":{"http-method":"GET"}}`, SourceAPIGatewayNoProxy},
		{"dynamodb record", `{"dynamodb":{"Keys":{}}}`, SourceDynamoDB},
		{"cognito", `{"userPoolId":"us-east-1_abc"}`, SourceCognito},
		{"http api", `{"requestContext":{"apiId":"abc","http":{"method":"GET"}}}`, SourceAPIGatewayHTTP2},
		{"websocket", `{"requestContext":{"apiId":"abc","eventType":"MESSAGE"}}`, SourceAPIGatewayWebsocket},
		{"plain object", `{"hello":"world"}`, SourceJSON},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, classifyString(tt.payload))
		})
	}
}

func TestClassifyLoadBalancerBeforeAPIGateway(t *testing.T) {
	payload := `{"httpMethod":"GET","path":"/","requestContext":{"elb":{"targetGroupArn":"arn"}}}`
	assert.Equal(t, SourceElasticLoadBalancer, classifyString(payload))
}

func TestClassifyRecordsEventSourceBeforeLowerCase(t *testing.T) {
	payload := `{"Records":[{"EventSource":"aws:sns","eventSource":"aws:sqs"}]}`
	assert.Equal(t, SourceSNS, classifyString(payload))
}

func TestClassifyEventBridgeBeforeSource(t *testing.T) {
	// source with detail-type but no detail matches neither events rule
	assert.Equal(t, SourceJSON, classifyString(`{"source":"aws.events","detail-type":"x"}`))
	assert.Equal(t, SourceEvents, classifyString(`{"source":"com.mycompany","detail-type":"x","detail":{}}`))
}

func TestClassifyFallback(t *testing.T) {
	for _, payload := range []string{
		``,
		`null`,
		`{}`,
		`[]`,
		`"just a string"`,
		`42`,
		`not json at all`,
		`{"Records":[]}`,
		`{"Records":"nope"}`,
		`{"Records":["nope"]}`,
		`{"Records":[{"eventSource":""}]}`,
		`{"requestContext":"elb"}`,
		`{"httpMethod":null}`,
		`{"context":{"method":"GET"}}`,
	} {
		assert.Equal(t, SourceJSON, classifyString(payload), payload)
	}
	assert.Equal(t, SourceJSON, Classify(nil, testContext))
}

func TestClassifyUnknownDerivedTypeFallsBack(t *testing.T) {
	assert.Equal(t, SourceJSON, classifyString(`{"Records":[{"eventSource":"aws:ses"}]}`))
	assert.Equal(t, SourceJSON, classifyString(`{"source":"serverless-plugin-warmup"}`))
	// the first matching rule decides even when its type is unknown
	assert.Equal(t, SourceJSON, classifyString(`{"source":"my.app","httpMethod":"GET"}`))
}

func TestClassifyIsDeterministic(t *testing.T) {
	payload := decodePayload([]byte(`{"httpMethod":"POST","requestContext":{"apiId":"a","http":{}}}`))
	first := Classify(payload, testContext)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Classify(payload, testContext))
	}
	assert.Equal(t, SourceAPIGateway, first)
}

func TestClassificationRulesOrder(t *testing.T) {
	names := make([]string, 0, len(classificationRules))
	for _, rule := range classificationRules {
		names = append(names, rule.name)
	}
	assert.Equal(t, []string{
		"records-EventSource",
		"records-eventSource",
		"eventbridge",
		"source",
		"elb",
		"httpMethod",
		"context-http-method",
		"dynamodb",
		"userPoolId",
		"http-api",
		"websocket",
	}, names)
}

func TestAfterLast(t *testing.T) {
	assert.Equal(t, "s3", afterLast("aws:s3", ":"))
	assert.Equal(t, "events", afterLast("aws.events", "."))
	assert.Equal(t, "plain", afterLast("plain", "."))
	assert.Equal(t, "", afterLast("trailing:", ":"))
}
