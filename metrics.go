// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sigauth // import "blitznote.com/src/node.sigauth"

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	auth "blitznote.com/src/node.sigauth/signature.auth"
)

// Values of label "outcome".
const (
	outcomeAccepted = "accepted"
	outcomeRejected = "rejected"
	outcomeError    = "error"
)

// Metrics counts verifications by outcome and reason.
//
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	verifications *prometheus.CounterVec
	duration      prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with 'reg'.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		verifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sigauth_verifications_total",
				Help: "Total number of signature verifications by outcome and reason",
			},
			[]string{"outcome", "reason"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "sigauth_verification_duration_seconds",
				Help:    "Time spent verifying signatures",
				Buckets: []float64{.00001, .00005, .0001, .0005, .001, .005},
			},
		),
	}

	for _, c := range []prometheus.Collector{m.verifications, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observe(res auth.Result, err error, d time.Duration) {
	if m == nil {
		return
	}

	outcome := outcomeAccepted
	switch {
	case err != nil:
		outcome = outcomeError
	case !res.Accepted:
		outcome = outcomeRejected
	}
	m.verifications.WithLabelValues(outcome, string(res.Reason)).Inc()
	m.duration.Observe(d.Seconds())
}
