// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package trigger

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrUnknownSourceType is returned when no extractor is registered for a
	// source type. Classify never yields such a type.
	ErrUnknownSourceType = errors.New("no extractor registered for source type")

	// ErrShapeMismatch is returned by an extractor when the payload does not
	// have the shape its source type implies.
	ErrShapeMismatch = errors.New("payload does not match the classified shape")
)

// extractor fills id, resource name and operation and metadata of e from
// the payload held by x.
type extractor func(x *extraction, e *Event) error

// extractors maps every SourceType to its extractor.
var extractors = map[SourceType]extractor{
	SourceJSON:                extractJSON,
	SourceS3:                  extractS3,
	SourceKinesis:             extractKinesis,
	SourceEvents:              extractEvents,
	SourceSNS:                 extractSNS,
	SourceSQS:                 extractSQS,
	SourceAPIGateway:          extractAPIGateway,
	SourceAPIGatewayNoProxy:   extractAPIGatewayNoProxy,
	SourceAPIGatewayWebsocket: extractAPIGatewayWebsocket,
	SourceAPIGatewayHTTP2:     extractAPIGatewayHTTP2,
	SourceDynamoDB:            extractDynamoDB,
	SourceElasticLoadBalancer: extractElasticLoadBalancer,
	SourceCognito:             extractCognito,
}

func init() {
	if err := checkRegistry(); err != nil {
		panic(err)
	}
}

// checkRegistry verifies the registry covers exactly the enumeration.
func checkRegistry() error {
	for _, st := range SourceTypes {
		if extractors[st] == nil {
			return fmt.Errorf("source type %q has no extractor", st)
		}
	}
	if len(extractors) != len(SourceTypes) {
		return fmt.Errorf("%d extractors registered for %d source types", len(extractors), len(SourceTypes))
	}
	return nil
}

func lookupExtractor(st SourceType) (extractor, error) {
	ex, ok := extractors[st]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownSourceType, "%q", st)
	}
	return ex, nil
}

// shapeError reports a payload that does not hold what st requires.
func shapeError(st SourceType, format string, args ...interface{}) error {
	return errors.Wrapf(ErrShapeMismatch, "%s: %s", st, fmt.Sprintf(format, args...))
}
