// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package trigger

import (
	"crypto/md5"
	"encoding/hex"

	"github.com/pkg/errors"

	"github.com/DataDog/datadog-serverless-trigger/pkg/util/log"
)

// ItemDecoder decodes a DynamoDB attribute-value encoded item, such as the
// Keys or NewImage of a stream record, into plain values.
type ItemDecoder interface {
	// Available reports whether the decoder can be used.
	Available() bool
	// DecodeItem decodes the JSON encoding of an attribute-value map.
	DecodeItem(item []byte) (map[string]interface{}, error)
}

var errItemDecoderUnavailable = errors.New("item decoder unavailable")

// nopItemDecoder is the default decoder. Items decoded without a real
// decoder hash to "".
type nopItemDecoder struct{}

func (nopItemDecoder) Available() bool { return false }

func (nopItemDecoder) DecodeItem([]byte) (map[string]interface{}, error) {
	return nil, errItemDecoderUnavailable
}

// itemHash returns the md5 of the canonical JSON form of the decoded item.
// Map keys are sorted at every level so equal items hash equally whatever
// their key order. It returns "" when the item cannot be decoded.
func itemHash(d ItemDecoder, item []byte) string {
	if d == nil || !d.Available() || len(item) == 0 {
		return ""
	}
	decoded, err := d.DecodeItem(item)
	if err != nil {
		log.Debugf("Unable to decode DynamoDB item, skipping item hash: %v", err)
		return ""
	}
	canonical, err := json.Marshal(decoded)
	if err != nil {
		log.Debugf("Unable to serialize DynamoDB item, skipping item hash: %v", err)
		return ""
	}
	sum := md5.Sum(canonical)
	return hex.EncodeToString(sum[:])
}
