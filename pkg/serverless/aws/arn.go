// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

// Package aws keeps the identity of the function invocation in flight.
package aws

import (
	"os"
	"strings"
	"sync"
)

// functionNameEnvVar is set by the Lambda runtime in every execution environment.
const functionNameEnvVar = "AWS_LAMBDA_FUNCTION_NAME"

// InvocationState holds the ARN and request ID of the current invocation.
// Thread-safe.
type InvocationState struct {
	mu        sync.Mutex
	arn       string
	requestID string
}

// ARN returns the ARN of the current running function.
func (s *InvocationState) ARN() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.arn
}

// SetARN stores the given ARN lower-cased, without its version or alias.
func (s *InvocationState) SetARN(arn string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.arn = normalizeARN(arn)
}

// FunctionName returns the function name from the stored ARN, falling back
// to the runtime environment when no ARN was set.
func (s *InvocationState) FunctionName() string {
	if name := FunctionNameFromARN(s.ARN()); name != "" {
		return name
	}
	return os.Getenv(functionNameEnvVar)
}

// RequestID returns the currently running function request ID.
func (s *InvocationState) RequestID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requestID
}

// SetRequestID stores the currently running function request ID.
func (s *InvocationState) SetRequestID(reqID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requestID = reqID
}

// format: arn:aws:lambda:<region>:<account-id>:function:<function-name>[:<version>]
func normalizeARN(arn string) string {
	arn = strings.ToLower(arn)
	if parts := strings.Split(arn, ":"); len(parts) > 7 {
		arn = strings.Join(parts[:7], ":")
	}
	return arn
}

// FunctionNameFromARN returns the function name segment of a Lambda function
// ARN, or "" when arn is not one.
func FunctionNameFromARN(arn string) string {
	parts := strings.Split(arn, ":")
	if len(parts) < 7 || parts[5] != "function" {
		return ""
	}
	return strings.ToLower(parts[6])
}
