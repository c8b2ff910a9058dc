// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

// Package itemdecoder decodes DynamoDB attribute-value encoded items with
// the AWS SDK, for hashing stream record images.
package itemdecoder

import (
	"fmt"

	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Decoder decodes items with dynamodbattribute.UnmarshalMap.
type Decoder struct{}

// New returns a Decoder.
func New() *Decoder {
	return &Decoder{}
}

// Available always returns true.
func (*Decoder) Available() bool {
	return true
}

// DecodeItem decodes the JSON form of a map of attribute values, as found in
// the Keys, NewImage and OldImage fields of a stream record.
func (*Decoder) DecodeItem(item []byte) (map[string]interface{}, error) {
	var attributes map[string]*dynamodb.AttributeValue
	if err := json.Unmarshal(item, &attributes); err != nil {
		return nil, fmt.Errorf("invalid attribute value map: %w", err)
	}
	decoded := map[string]interface{}{}
	if err := dynamodbattribute.UnmarshalMap(attributes, &decoded); err != nil {
		return nil, fmt.Errorf("unable to unmarshal attribute values: %w", err)
	}
	return decoded, nil
}
