// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sigauth // import "blitznote.com/src/node.sigauth"

import (
	"net/http"
	"time"

	auth "blitznote.com/src/node.sigauth/signature.auth"
)

// Validates and verifies the authorization header.
func (h *Handler) authenticate(r *http.Request) (httpResponseCode int, err error) {
	start := time.Now()
	res, err := h.Verifier.Verify(auth.RequestFromHTTP(r))
	h.Metrics.observe(res, err, time.Since(start))

	switch {
	case err != nil:
		return http.StatusInternalServerError, err
	case !res.Accepted:
		return http.StatusUnauthorized, res
	}
	return http.StatusOK, nil
}
