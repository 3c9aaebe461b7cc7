// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package auth // import "blitznote.com/src/node.sigauth/signature.auth"

// abs64 gives the distance of 'n' from zero, for clock skew in seconds.
// Works for math.MinInt64, which has no positive int64 counterpart.
func abs64(n int64) uint64 {
	sign := n >> 63 // all ones if negative
	return uint64((n ^ sign) - sign)
}
