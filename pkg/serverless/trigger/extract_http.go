// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package trigger

import (
	"github.com/spf13/cast"
)

const defaultWebsocketEventType = "CONNECT"

// extractAPIGateway handles REST API proxy integrations.
func extractAPIGateway(x *extraction, e *Event) error {
	event := x.object()
	headers := event.stringMap("headers")

	name := header(headers, "Host")
	if name == "" {
		name = event.str("requestContext", "apiId")
	}

	e.ID = event.str("requestContext", "requestId")
	e.Resource.Name = name
	e.Resource.Operation = event.str("httpMethod")
	x.normalizer.AddToMetadata(e, map[string]interface{}{
		"stage":                   event.str("requestContext", "stage"),
		"query_string_parameters": toJSONString(event.value("queryStringParameters")),
		"path_parameters":         toJSONString(event.value("pathParameters")),
		"path":                    event.str("path"),
		"resource":                event.str("resource"),
	}, map[string]interface{}{
		"body":           event.str("body"),
		"headers":        headers,
		"requestContext": event.value("requestContext"),
	})
	return nil
}

// extractAPIGatewayHTTP2 handles HTTP API payload format 2.0.
func extractAPIGatewayHTTP2(x *extraction, e *Event) error {
	event := x.object()
	headers := event.stringMap("headers")
	requestContext := event.obj("requestContext")

	name := header(headers, "Host")
	if name == "" {
		name = requestContext.str("domainName")
	}

	e.ID = requestContext.str("requestId")
	e.Resource.Name = name
	e.Resource.Operation = requestContext.str("http", "method")
	x.normalizer.AddToMetadata(e, map[string]interface{}{
		"stage":                   requestContext.str("stage"),
		"query_string_parameters": toJSONString(event.value("queryStringParameters")),
		"path_parameters":         toJSONString(event.value("pathParameters")),
		"path":                    event.str("rawPath"),
		"api_id":                  requestContext.str("apiId"),
		"route_key":               event.str("routeKey"),
	}, map[string]interface{}{
		"body":           event.str("body"),
		"headers":        headers,
		"requestContext": event.value("requestContext"),
	})
	return nil
}

// extractAPIGatewayNoProxy handles the default mapping template payload of a
// REST API integration without proxy.
func extractAPIGatewayNoProxy(x *extraction, e *Event) error {
	event := x.object()
	headers := event.stringMap("params", "header")

	name := header(headers, "Host")
	if name == "" {
		name = event.str("context", "api-id")
	}

	e.ID = event.str("context", "request-id")
	e.Resource.Name = name
	e.Resource.Operation = event.str("context", "http-method")
	x.normalizer.AddToMetadata(e, map[string]interface{}{
		"stage":                   event.str("context", "stage"),
		"query_string_parameters": toJSONString(event.value("params", "querystring")),
		"path_parameters":         toJSONString(event.value("params", "path")),
		"path":                    event.str("context", "resource-path"),
	}, map[string]interface{}{
		"body":    toJSONString(event.value("body-json")),
		"headers": toJSONString(headers),
	})
	return nil
}

func extractAPIGatewayWebsocket(x *extraction, e *Event) error {
	event := x.object()
	requestContext := event.obj("requestContext")

	operation := requestContext.str("eventType")
	if operation == "" {
		operation = defaultWebsocketEventType
	}

	annotations := map[string]interface{}{
		"stage":             requestContext.str("stage"),
		"route_key":         requestContext.str("routeKey"),
		"connection_id":     requestContext.str("connectionId"),
		"message_direction": requestContext.str("messageDirection"),
	}
	if id := requestContext.value("messageId"); id != nil {
		annotations["message_id"] = id
	}

	e.ID = requestContext.str("requestId")
	e.Resource.Name = requestContext.str("domainName")
	e.Resource.Operation = operation
	x.normalizer.AddToMetadata(e, annotations, map[string]interface{}{
		"body": event.str("body"),
	})
	return nil
}

// extractElasticLoadBalancer handles ALB target group requests, with or
// without multi-value headers enabled.
func extractElasticLoadBalancer(x *extraction, e *Event) error {
	event := x.object()

	host := header(event.stringMap("headers"), "Host")
	if hosts := event.list("multiValueHeaders", "host"); host == "" && len(hosts) > 0 {
		host = cast.ToString(hosts[0])
	}
	headers := event.value("headers")
	if len(event.obj("headers")) == 0 && len(event.obj("multiValueHeaders")) > 0 {
		headers = event.value("multiValueHeaders")
	}
	query := event.value("queryStringParameters")
	if len(event.obj("queryStringParameters")) == 0 && len(event.obj("multiValueQueryStringParameters")) > 0 {
		query = event.value("multiValueQueryStringParameters")
	}

	e.ID = x.newID()
	e.Resource.Name = host
	e.Resource.Operation = event.str("httpMethod")
	x.normalizer.AddToMetadata(e, map[string]interface{}{
		"query_string_parameters": toJSONString(query),
		"target_group_arn":        event.str("requestContext", "elb", "targetGroupArn"),
		"path":                    event.str("path"),
	}, map[string]interface{}{
		"body":    event.str("body"),
		"headers": toJSONString(headers),
	})
	return nil
}
