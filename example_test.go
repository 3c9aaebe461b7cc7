// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sigauth_test

import (
	"net/http"

	"blitznote.com/src/node.sigauth"
	"blitznote.com/src/node.sigauth/nodeconfig"
	auth "blitznote.com/src/node.sigauth/signature.auth"
)

func Example() {
	var (
		scope = "/" // prefix to http.Request.URL.Path
		next  = http.FileServer(http.Dir("/var/lib/physaci/results"))
	)

	cfg, _ := nodeconfig.Load(nodeconfig.DefaultPath, nil)
	verifier := auth.NewVerifier(cfg, nil)
	handler, _ := sigauth.NewHandler(verifier, next)

	http.Handle(scope, handler)
	// http.ListenAndServe(":8000", nil)
}
