// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package auth // import "blitznote.com/src/node.sigauth/signature.auth"

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"
)

// KeySource yields the shared secret of this host.
//
// Implemented by *nodeconfig.Config.
type KeySource interface {
	SigningKey() ([]byte, error)
}

// Verifier checks signatures on requests addressed to this host.
//
// Fields must not be changed once Verify has been called.
// After that a Verifier can be used by multiple goroutines.
type Verifier struct {
	Keys KeySource
	Log  *zap.Logger

	// Hostname returns the name of this host, which signers use as 'keyID'.
	Hostname func() (string, error)

	// How big a difference between 'now' and header "Date" do we tolerate?
	// In seconds. Zero disables this check.
	DateTolerance uint64
	Now           func() time.Time
}

// NewVerifier returns a Verifier which uses the host's name as reported by the kernel.
//
// 'log' is optional.
func NewVerifier(keys KeySource, log *zap.Logger) *Verifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &Verifier{
		Keys:     keys,
		Log:      log,
		Hostname: os.Hostname,
		Now:      time.Now,
	}
}

// Verify implements authorization scheme Signature:
// Knowledge of the shared secret is expressed by providing its "signature"
// over method, path, and headers "Host" and "Date".
//
// Any rejection is expressed in Result. An error is only returned
// if this host's name cannot be determined.
func (v *Verifier) Verify(r Request) (Result, error) {
	params, ok := ParseParameters(r.Authorization)
	if !ok {
		return v.rejected(ReasonNotHTTPSignature), nil
	}

	localName, err := v.Hostname()
	if err != nil {
		v.Log.Error("cannot determine the local hostname", zap.Error(err))
		return Result{}, err
	}
	keyID, present := params[ParamKeyID]
	if !present || keyID != localName {
		return v.rejected(ReasonBadKeyID,
			zap.String("keyID", keyID),
			zap.String("hostname", localName)), nil
	}

	if algorithm := params[ParamAlgorithm]; algorithm != AlgorithmHMACSHA256 {
		return v.rejected(ReasonBadAlgorithm, zap.String("algorithm", algorithm)), nil
	}

	if v.DateTolerance > 0 && !v.isRecent(r.Date) {
		return v.rejected(ReasonStaleDate, zap.String("date", r.Date)), nil
	}

	key, err := v.signingKey()
	if err != nil {
		// Fail closed, but this is our fault, not the client's.
		v.Log.Error("signing key is unavailable",
			zap.Stringer("reason", ReasonNoSigningKey),
			zap.Error(err))
		return reject(ReasonNoSigningKey), nil
	}

	encoded, present := params[ParamSignature]
	if !present {
		return v.rejected(ReasonBadSignatureEncoding), nil
	}
	supplied, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return v.rejected(ReasonBadSignatureEncoding,
			zap.String("signature", encoded),
			zap.Error(err)), nil
	}

	if !digestsEqual(Digest(key, SigningString(r)), supplied) {
		return v.rejected(ReasonSignatureMismatch,
			zap.String("keyID", keyID),
			zap.String("method", r.Method),
			zap.String("path", r.Path),
			zap.String("host", r.Host),
			zap.String("date", r.Date)), nil
	}

	return accepted, nil
}

func (v *Verifier) signingKey() ([]byte, error) {
	if v.Keys == nil {
		return nil, errNoKeySource
	}
	return v.Keys.SigningKey()
}

func (v *Verifier) rejected(reason Reason, fields ...zap.Field) Result {
	v.Log.Warn("signature rejected", append([]zap.Field{zap.Stringer("reason", reason)}, fields...)...)
	return reject(reason)
}

// isRecent returns true if 'date' is an HTTP date within tolerance of 'now'.
func (v *Verifier) isRecent(date string) bool {
	then, err := http.ParseTime(date)
	if err != nil {
		return false
	}
	return abs64(v.Now().Unix()-then.Unix()) <= v.DateTolerance
}

// Digest computes the HMAC-SHA256 of 'signingString'.
func Digest(key []byte, signingString string) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(signingString))
	return mac.Sum(nil)
}

// digestsEqual compares in time that depends on len(computed) only,
// even if 'supplied' has a different length.
func digestsEqual(computed, supplied []byte) bool {
	buf := make([]byte, len(computed))
	copy(buf, supplied)

	n := len(supplied) // capped, else int32 could wrap around
	if n > len(computed) {
		n = len(computed) + 1
	}
	sameLength := subtle.ConstantTimeEq(int32(n), int32(len(computed)))
	return subtle.ConstantTimeCompare(computed, buf)&sameLength == 1
}
