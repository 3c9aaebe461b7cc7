// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package auth // import "blitznote.com/src/node.sigauth/signature.auth"

import (
	"net/http"
	"regexp"
	"strings"
)

// Names of parameters in the Authorization header, and what we expect of them.
const (
	ParamKeyID     = "keyID"
	ParamAlgorithm = "algorithm"
	ParamSignature = "signature"

	AlgorithmHMACSHA256 = "hmac-sha256"

	schemePrefix = "Signature "
)

// Matches one element 'key="value"'. The value is greedy up to the last quote.
var paramPattern = regexp.MustCompile(`^([^=]+)="(.+)"`)

// Request is the part of an incoming HTTP request that gets signed.
//
// Absent headers are represented by empty strings.
type Request struct {
	Method string
	Path   string

	Authorization string
	Host          string
	Date          string
}

// RequestFromHTTP extracts what is to be verified from a server-side request.
//
// Package net/http moves header "Host" into r.Host, therefore it is taken from there.
func RequestFromHTTP(r *http.Request) Request {
	return Request{
		Method:        r.Method,
		Path:          r.URL.Path,
		Authorization: r.Header.Get("Authorization"),
		Host:          r.Host,
		Date:          r.Header.Get("Date"),
	}
}

// Parameters are the key/value pairs of an Authorization header in scheme "Signature".
type Parameters map[string]string

// ParseParameters translates the value of header "Authorization" into its parameters.
//
// Returns false if the value is not of scheme "Signature".
// Elements that are not formatted like 'key="value"' are skipped,
// and on duplicate keys the last one wins.
// Whitespace is not stripped: in `a="1", b="2"` the second key is " b".
func ParseParameters(headerValue string) (Parameters, bool) {
	if !strings.HasPrefix(headerValue, schemePrefix) {
		return nil, false
	}

	p := make(Parameters)
	for _, element := range strings.Split(headerValue[len(schemePrefix):], ",") {
		m := paramPattern.FindStringSubmatch(element)
		if m == nil {
			continue
		}
		p[m[1]] = m[2]
	}
	return p, true
}

// SigningString returns the string that the signer must have used, which is:
//
//  (request-target) <lower-cased method> <path>
//  host: <Host>
//  date: <Date>
//
// Lines are separated by '\n' and there is no trailing newline.
func SigningString(r Request) string {
	var b strings.Builder
	b.Grow(len("(request-target) ") + len(r.Method) + 1 + len(r.Path) +
		len("\nhost: ") + len(r.Host) + len("\ndate: ") + len(r.Date))

	b.WriteString("(request-target) ")
	b.WriteString(strings.ToLower(r.Method))
	b.WriteByte(' ')
	b.WriteString(r.Path)
	b.WriteString("\nhost: ")
	b.WriteString(r.Host)
	b.WriteString("\ndate: ")
	b.WriteString(r.Date)
	return b.String()
}
