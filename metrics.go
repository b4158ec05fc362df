package integrity

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "integrity"

// Metrics counts codec activity. A nil *Metrics records nothing.
type Metrics struct {
	encoded       prometheus.Counter
	decoded       prometheus.Counter
	mismatches    prometheus.Counter
	payloadLength prometheus.Histogram
}

// NewMetrics creates the codec collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		encoded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "encoded_messages_total",
			Help:      "Number of messages encoded into payloads.",
		}),
		decoded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "decoded_messages_total",
			Help:      "Number of payloads decoded and verified.",
		}),
		mismatches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "mismatches_total",
			Help:      "Number of decoded payloads whose digest did not match.",
		}),
		payloadLength: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "payload_length",
			Help:      "Number of elements in encoded and decoded payloads.",
			Buckets:   prometheus.ExponentialBuckets(HashLength, 2, 8),
		}),
	}

	if reg != nil {
		for _, c := range []prometheus.Collector{m.encoded, m.decoded, m.mismatches, m.payloadLength} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

func (m *Metrics) observeEncode(length int) {
	if m == nil {
		return
	}
	m.encoded.Inc()
	m.payloadLength.Observe(float64(length))
}

func (m *Metrics) observeDecode(length int, match bool) {
	if m == nil {
		return
	}
	m.decoded.Inc()
	if !match {
		m.mismatches.Inc()
	}
	m.payloadLength.Observe(float64(length))
}
