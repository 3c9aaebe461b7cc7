// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sigauth // import "blitznote.com/src/node.sigauth"

import (
	"errors"
	"net/http"

	auth "blitznote.com/src/node.sigauth/signature.auth"
)

var errNoVerifier = errors.New("a Verifier is required")

// NewHandler creates a new instance of the guarding handler,
// meant to be used in Go's own http server.
//
// 'next' is optional.
func NewHandler(verifier *auth.Verifier, next http.Handler) (*Handler, error) {
	if verifier == nil {
		return nil, errNoVerifier
	}

	h := Handler{
		Next:     next,
		Verifier: verifier,
	}
	if next == nil {
		h.Next = http.NotFoundHandler()
	}

	return &h, nil
}

// Handler implements http.Handler.
type Handler struct {
	Next     http.Handler
	Verifier *auth.Verifier

	Metrics *Metrics // optional
}

// ServeHTTP passes on requests with a valid signature to the next handler,
// and answers any others.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	httpCode, _ := h.authenticate(r)
	if httpCode >= 400 {
		if httpCode == http.StatusUnauthorized {
			w.Header().Set("WWW-Authenticate", "Signature")
		}
		// Details have been logged by the Verifier. The client gets none.
		http.Error(w, http.StatusText(httpCode), httpCode)
		return
	}

	h.Next.ServeHTTP(w, r)
}
