// Package sigauth guards HTTP handlers of a CI node,
// letting through only requests signed with the key the node shares
// with its server.
//
// The client is expected to authenticate requests
// by sending a header "Authorization" formatted like this:
//
//  Authorization: Signature keyID="(hostname of the node)",algorithm="hmac-sha256",
//      signature="(see package signature.auth)"
//
// Requests that fail verification get a plain 401 without further details.
// Why a request has been rejected is logged on the node instead.
//
// The shared key is read from the node's configuration file,
// see package nodeconfig:
//  cfg, err := nodeconfig.Load(nodeconfig.DefaultPath, logger)
//  verifier := auth.NewVerifier(cfg, logger)
//  h, err := sigauth.NewHandler(verifier, next)
package sigauth // import "blitznote.com/src/node.sigauth"
