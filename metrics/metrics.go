// Package metrics exposes Prometheus counters and gauges for proof
// validation outcomes, adapted from the teacher's per-subsystem
// metrics collectors (metrics/eots_collectors.go): one counter vector
// keyed by InvalidReason rather than one gauge per concern.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the avaproof subsystem's Prometheus collectors.
type Metrics struct {
	ProofsVerifiedTotal          prometheus.Counter
	ProofsRejectedTotal          *prometheus.CounterVec
	StructuralVerificationsTotal prometheus.Counter
	ChainVerificationsTotal      prometheus.Counter
	LastAcceptedProofScore       prometheus.Gauge
}

var (
	registerOnce sync.Once
	instance     *Metrics
)

// New returns the process-wide Metrics instance, registering its
// collectors with the default Prometheus registry exactly once.
func New() *Metrics {
	registerOnce.Do(func() {
		instance = &Metrics{
			ProofsVerifiedTotal: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "avaproof_proofs_verified_total",
				Help: "Total number of proofs that passed verification.",
			}),
			ProofsRejectedTotal: prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Name: "avaproof_proofs_rejected_total",
					Help: "Total number of proofs rejected by verification, labeled by reason.",
				},
				[]string{"reason"},
			),
			StructuralVerificationsTotal: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "avaproof_structural_verifications_total",
				Help: "Total number of structural verifications performed.",
			}),
			ChainVerificationsTotal: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "avaproof_chain_verifications_total",
				Help: "Total number of chain verifications performed.",
			}),
			LastAcceptedProofScore: prometheus.NewGauge(prometheus.GaugeOpts{
				Name: "avaproof_last_accepted_proof_score",
				Help: "Score of the most recently accepted proof.",
			}),
		}

		prometheus.MustRegister(
			instance.ProofsVerifiedTotal,
			instance.ProofsRejectedTotal,
			instance.StructuralVerificationsTotal,
			instance.ChainVerificationsTotal,
			instance.LastAcceptedProofScore,
		)
	})

	return instance
}

// ObserveStructural records the outcome of one StructuralVerifier.Verify
// call. err should be the exact error Verify returned, or nil.
func (m *Metrics) ObserveStructural(score uint32, err error) {
	m.StructuralVerificationsTotal.Inc()
	m.observe(score, err)
}

// ObserveChain records the outcome of one ChainVerifier.Verify call.
func (m *Metrics) ObserveChain(score uint32, err error) {
	m.ChainVerificationsTotal.Inc()
	m.observe(score, err)
}

func (m *Metrics) observe(score uint32, err error) {
	if err == nil {
		m.ProofsVerifiedTotal.Inc()
		m.LastAcceptedProofScore.Set(float64(score))
		return
	}
	m.ProofsRejectedTotal.WithLabelValues(reasonLabel(err)).Inc()
}
