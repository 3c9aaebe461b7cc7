// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package auth verifies authorization scheme Signature with a key shared
// between this host and whoever sends requests to it.
//
// The client is expected to authenticate requests
// by sending a header "Authorization" formatted like this:
//
//  Authorization: Signature keyID="(hostname of the receiver)",algorithm="hmac-sha256",
//      signature="(see below)"
//
// Any other parameters are ignored, as are elements not in the form key="value".
//
// The signature covers method, path, and headers "Host" and "Date"
// (each being empty if absent). This is how you generate it on the Linux shell:
//  secret="s3cr3t"
//  date="$(date --utc '+%a, %d %b %Y %H:%M:%S GMT')"
//
//  printf "(request-target) get /status\nhost: node1\ndate: ${date}" \
//  | openssl dgst -sha256 -hmac "${secret}" -binary \
//  | openssl enc -base64
//
// After that it's using, for example, 'curl' like this:
//  curl \
//    --header 'Authorization: Signature keyID="node1",algorithm="hmac-sha256",signature="…"' \
//    --header "Date: ${date}" \
//    http://node1/status
package auth // import "blitznote.com/src/node.sigauth/signature.auth"
