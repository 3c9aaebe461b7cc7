// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package auth

import (
	"errors"
)

// Reason tells why a request has been rejected.
//
// Results that have been accepted carry the empty Reason.
type Reason string

// Reasons for rejecting a request, one per failed check.
const (
	ReasonNotHTTPSignature     Reason = "not_http_signature"
	ReasonBadKeyID             Reason = "bad_keyid"
	ReasonBadAlgorithm         Reason = "bad_algorithm"
	ReasonStaleDate            Reason = "stale_date"
	ReasonNoSigningKey         Reason = "no_signing_key"
	ReasonBadSignatureEncoding Reason = "bad_signature_encoding"
	ReasonSignatureMismatch    Reason = "signature_mismatch"
)

// String implements the fmt.Stringer interface.
func (r Reason) String() string { return string(r) }

// Result is the outcome of one verification.
type Result struct {
	Accepted bool
	Reason   Reason // empty if accepted
}

// The Result of a request carrying a valid signature.
var accepted = Result{Accepted: true}

// Error implements the error interface for rejections,
// so a Result can be passed on where an error is expected.
func (r Result) Error() string {
	if r.Accepted {
		return ""
	}
	return "signature rejected: " + string(r.Reason)
}

// Err returns nil if the request has been accepted, else the Result itself.
func (r Result) Err() error {
	if r.Accepted {
		return nil
	}
	return r
}

func reject(reason Reason) Result {
	return Result{Reason: reason}
}

// errNoKeySource is logged when a Verifier has been assembled without KeySource.
var errNoKeySource = errors.New("no KeySource configured")
