// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package log

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"regexp"
)

// replacer masks the part of a line matched by regex. A replacer with hints
// only runs on lines containing one of them.
type replacer struct {
	regex *regexp.Regexp
	hints []string
	repl  []byte
}

var blankRegex = regexp.MustCompile(`^\s*$`)
var singleLineReplacers, multiLineReplacers []replacer

func init() {
	hintedAPIKeyReplacer := replacer{
		// If hinted, mask the value regardless if it doesn't match 32-char hexadecimal string
		regex: regexp.MustCompile(`(api_?key=)\b[a-zA-Z0-9]+([a-zA-Z0-9]{5})\b`),
		hints: []string{"api_key", "apikey"},
		repl:  []byte(`$1***************************$2`),
	}
	apiKeyReplacer := replacer{
		regex: regexp.MustCompile(`\b[a-fA-F0-9]{27}([a-fA-F0-9]{5})\b`),
		repl:  []byte(`***************************$1`),
	}
	awsAccessKeyReplacer := replacer{
		regex: regexp.MustCompile(`\b(AKIA|ASIA)[A-Z0-9]{12}([A-Z0-9]{4})\b`),
		hints: []string{"AKIA", "ASIA"},
		repl:  []byte(`$1************$2`),
	}
	// URI Generic Syntax
	// https://tools.ietf.org/html/rfc3986
	uriPasswordReplacer := replacer{
		regex: regexp.MustCompile(`([A-Za-z][A-Za-z0-9+-.]+\:\/\/|\b)([^\:\s"]+)\:([^\s"]+)\@`),
		repl:  []byte(`$1$2:********@`),
	}
	bearerReplacer := replacer{
		regex: regexp.MustCompile(`(?i)(bearer\s+)[a-z0-9\-._~+/]+=*`),
		hints: []string{"earer", "EARER"},
		repl:  []byte(`$1********`),
	}
	passwordReplacer := replacer{
		regex: matchYAMLKeyPart(`(pass(word)?|pwd)`),
		hints: []string{"pass", "pwd"},
		repl:  []byte(`$1 ********`),
	}
	tokenReplacer := replacer{
		regex: matchYAMLKeyEnding(`token`),
		hints: []string{"token"},
		repl:  []byte(`$1 ********`),
	}
	certReplacer := replacer{
		regex: matchCert(),
		hints: []string{"BEGIN"},
		repl:  []byte(`********`),
	}
	singleLineReplacers = []replacer{hintedAPIKeyReplacer, apiKeyReplacer, awsAccessKeyReplacer, uriPasswordReplacer, bearerReplacer, passwordReplacer, tokenReplacer}
	multiLineReplacers = []replacer{certReplacer}
}

func matchYAMLKeyPart(part string) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(`(\s*(\w|_)*%s(\w|_)*\s*:).+`, part))
}

// matchYAMLKeyEnding returns a regexp matching a single YAML line with a key ending by the string passed as argument.
// The returned regexp catches only the key and not the value.
func matchYAMLKeyEnding(ending string) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(`(^\s*(\w|_)*%s\s*:).+`, ending))
}

func matchCert() *regexp.Regexp {
	// Backreferences are not available in go, so the BEGIN label is not
	// checked against the END label.
	return regexp.MustCompile(
		`-----BEGIN (?:.*)-----[A-Za-z0-9=\+\/\s]*-----END (?:.*)-----`,
	)
}

// CredentialsCleanerBytes scrubs credentials from slice of bytes
func CredentialsCleanerBytes(data []byte) ([]byte, error) {
	return credentialsCleaner(bytes.NewReader(data))
}

func credentialsCleaner(r io.Reader) ([]byte, error) {
	var cleaned []byte

	scanner := bufio.NewScanner(r)

	first := true
	for scanner.Scan() {
		b := scanner.Bytes()
		if !blankRegex.Match(b) {
			b = scrubCredentials(b, singleLineReplacers)
			if !first {
				cleaned = append(cleaned, byte('\n'))
			}

			cleaned = append(cleaned, b...)
			first = false
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return scrubCredentials(cleaned, multiLineReplacers), nil
}

// scrubCredentials applies replacers to data in order.
func scrubCredentials(data []byte, replacers []replacer) []byte {
	for _, r := range replacers {
		if len(r.hints) > 0 && !containsAny(data, r.hints) {
			continue
		}
		data = r.regex.ReplaceAll(data, r.repl)
	}
	return data
}

func containsAny(data []byte, hints []string) bool {
	for _, hint := range hints {
		if bytes.Contains(data, []byte(hint)) {
			return true
		}
	}
	return false
}
