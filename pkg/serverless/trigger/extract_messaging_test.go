// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package trigger

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const snsEvent = `{
  "Records": [
    {
      "EventVersion": "1.0",
      "EventSubscriptionArn": "arn:aws:sns:us-east-2:123456789012:sns-lambda:21be56ed-a058-49f5-8c98-aedd2564c486",
      "EventSource": "aws:sns",
      "Sns": {
        "SignatureVersion": "1",
        "Timestamp": "2019-01-02T12:45:07.000Z",
        "Signature": "tcc6faL2yUC6dgZdmrwh1Y4cGa/ebXEkAi6RibDsvpi+tE/1+82j...65r==",
        "SigningCertUrl": "https://sns.us-east-2.amazonaws.com/SimpleNotificationService-ac565b8b1a6c5d002d285f9598aa1d9b.pem",
        "MessageId": "95df01b4-ee98-5cb9-9903-4c221d41eb5e",
        "Message": "Hello from SNS!",
        "MessageAttributes": {
          "Test": {"Type": "String", "Value": "TestString"}
        },
        "Type": "Notification",
        "UnsubscribeUrl": "https://sns.us-east-2.amazonaws.com/?Action=Unsubscribe",
        "TopicArn": "arn:aws:sns:us-east-2:123456789012:sns-lambda",
        "Subject": "TestInvoke"
      }
    }
  ]
}`

func TestBuildSNS(t *testing.T) {
	e := build(t, snsEvent)

	assert.Equal(t, SourceSNS, e.SourceType())
	assert.Equal(t, "95df01b4-ee98-5cb9-9903-4c221d41eb5e", e.ID)
	assert.Equal(t, "sns-lambda", e.Resource.Name)
	assert.Equal(t, "Notification", e.Resource.Operation)
	assert.Equal(t, map[string]interface{}{"subject": "TestInvoke"}, e.Metadata.Annotations)
	assert.Equal(t, "Hello from SNS!", e.Metadata.Payload["message"])
	assert.Equal(t, map[string]interface{}{
		"Test": map[string]interface{}{"Type": "String", "Value": "TestString"},
	}, e.Metadata.Payload["message_attributes"])
}

func sqsEvent(bodies ...string) string {
	records := ""
	for i, body := range bodies {
		if i > 0 {
			records += ","
		}
		id := string(rune('a' + i))
		records += `{
          "messageId": "message-` + id + `",
          "receiptHandle": "MessageReceiptHandle",
          "body": ` + body + `,
          "attributes": {"ApproximateReceiveCount": "1"},
          "messageAttributes": {"trace": {"stringValue": "abc", "dataType": "String"}},
          "md5OfBody": "md5-` + id + `",
          "eventSource": "aws:sqs",
          "eventSourceARN": "arn:aws:sqs:us-east-1:123456789012:MyQueue",
          "awsRegion": "us-east-1"
        }`
	}
	return `{"Records":[` + records + `]}`
}

func sqsRecords(t *testing.T, e *Event) []map[string]interface{} {
	t.Helper()
	records, ok := e.Metadata.Annotations["record"].([]map[string]interface{})
	require.True(t, ok)
	return records
}

func TestBuildSQS(t *testing.T) {
	e := build(t, sqsEvent(`"Hello from SQS!"`, `"second"`))

	assert.Equal(t, SourceSQS, e.SourceType())
	assert.Equal(t, "message-a", e.ID)
	assert.Equal(t, "MyQueue", e.Resource.Name)
	assert.Equal(t, "ReceiveMessage", e.Resource.Operation)
	assert.Equal(t, 2, e.Metadata.Annotations["total_record_count"])
	assert.NotContains(t, e.Metadata.Annotations, "steps_dict")
	assert.NotContains(t, e.Metadata.Annotations, "sns_message")
	assert.Empty(t, e.Metadata.Payload)

	records := sqsRecords(t, e)
	require.Len(t, records, 2)
	assert.Equal(t, "message-a", records[0]["message_id"])
	assert.Equal(t, "md5-a", records[0]["md5_of_message_body"])
	assert.Equal(t, "Hello from SQS!", records[0]["message_body"])
	assert.Contains(t, records[0], "message_attributes")
	assert.Equal(t, "second", records[1]["message_body"])
}

func TestBuildSQSMetadataOnly(t *testing.T) {
	e, err := newTestBuilder(true).Build([]byte(sqsEvent(`"secret"`)), testContext)
	require.NoError(t, err)

	records := sqsRecords(t, e)
	require.Len(t, records, 1)
	assert.Equal(t, map[string]interface{}{
		"message_id":          "message-a",
		"md5_of_message_body": "md5-a",
	}, records[0])
	assert.Empty(t, e.Metadata.Payload)
}

func TestBuildSQSStepsDict(t *testing.T) {
	e := build(t, sqsEvent(`"{\"input\":{\"Epsagon\":{\"x\":1}}}"`))
	assert.Equal(t, map[string]interface{}{"x": float64(1)}, e.Metadata.Annotations["steps_dict"])

	e = build(t, sqsEvent(`"{\"input\":{\"other\":true}}"`))
	assert.NotContains(t, e.Metadata.Annotations, "steps_dict")
}

func TestBuildSQSSNSNotification(t *testing.T) {
	notification := `"{\"Type\":\"Notification\",\"MessageId\":\"sns-1\",` +
		`\"TopicArn\":\"arn:aws:sns:us-east-1:123456789012:topic\",\"Subject\":\"hi\",\"Message\":\"payload\"}"`

	e := build(t, sqsEvent(`"plain"`, notification))
	assert.Equal(t, map[string]interface{}{
		"message_id": "sns-1",
		"topic_arn":  "arn:aws:sns:us-east-1:123456789012:topic",
		"subject":    "hi",
		"message":    "payload",
	}, e.Metadata.Annotations["sns_message"])

	e, err := newTestBuilder(true).Build([]byte(sqsEvent(notification)), testContext)
	require.NoError(t, err)
	assert.NotContains(t, e.Metadata.Annotations["sns_message"], "message")
}

func TestBuildSQSTruncatesMessageBodies(t *testing.T) {
	long := strings.Repeat("x", 2000)
	payload := withField(t, sqsEvent(`"`+long+`"`),
		`{"trace": {"stringValue": "abc", "dataType": "String"}}`,
		`{"trace": {"stringValue": "`+long+`", "dataType": "String"}}`)
	e := build(t, payload)

	records := sqsRecords(t, e)
	require.Len(t, records, 1)
	body, ok := records[0]["message_body"].(string)
	require.True(t, ok)
	assert.Equal(t, strings.Repeat("x", DefaultMaxPayloadSize)+TruncatedMarker, body)
	assert.Equal(t, map[string]interface{}{
		"trace": map[string]interface{}{
			"stringValue": strings.Repeat("x", DefaultMaxPayloadSize) + TruncatedMarker,
			"dataType":    "String",
		},
	}, records[0]["message_attributes"])
}

func TestBuildSQSTruncatesEmbeddedSNSMessage(t *testing.T) {
	notification := `"{\"Type\":\"Notification\",\"MessageId\":\"sns-1\",` +
		`\"TopicArn\":\"arn:aws:sns:us-east-1:123456789012:topic\",\"Message\":\"` + strings.Repeat("m", 2000) + `\"}"`
	e := build(t, sqsEvent(notification))

	sns, ok := e.Metadata.Annotations["sns_message"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, strings.Repeat("m", DefaultMaxPayloadSize)+TruncatedMarker, sns["message"])
}

func TestSNSNotificationRequiresTopic(t *testing.T) {
	_, ok := snsNotification(`{"Type":"Notification"}`, NewNormalizer(false, 0))
	assert.False(t, ok)
	_, ok = snsNotification(`{"Type":"SubscriptionConfirmation","TopicArn":"arn"}`, NewNormalizer(false, 0))
	assert.False(t, ok)
	_, ok = snsNotification(`not json`, NewNormalizer(false, 0))
	assert.False(t, ok)
}

const eventBridgeEvent = `{
  "version": "0",
  "id": "fe8d3c65-xmpl-c5c3-2c87-81584709a377",
  "detail-type": "Scheduled Event",
  "source": "aws.events",
  "account": "123456789012",
  "time": "2020-04-28T07:20:00Z",
  "region": "us-east-2",
  "resources": ["arn:aws:events:us-east-2:123456789012:rule/my-schedule"],
  "detail": {"key":"value"}
}`

func TestBuildEvents(t *testing.T) {
	e := build(t, eventBridgeEvent)

	assert.Equal(t, SourceEvents, e.SourceType())
	assert.Equal(t, "fe8d3c65-xmpl-c5c3-2c87-81584709a377", e.ID)
	assert.Equal(t, "my-schedule", e.Resource.Name)
	assert.Equal(t, "Scheduled Event", e.Resource.Operation)
	assert.Equal(t, map[string]interface{}{
		"region":  "us-east-2",
		"detail":  `{"key":"value"}`,
		"account": "123456789012",
	}, e.Metadata.Annotations)
}

func TestBuildEventsWithoutResources(t *testing.T) {
	e := build(t, `{"id":"1","source":"aws.events","detail-type":"Custom","detail":{}}`)

	assert.Equal(t, "CloudWatch Events", e.Resource.Name)
	assert.Equal(t, "Custom", e.Resource.Operation)
}
