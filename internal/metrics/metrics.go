// Package metrics exposes Prometheus counters for calculations and HTTP
// traffic. Collectors live in a private registry so tests can scrape it.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Registry = prometheus.NewRegistry()

	calcoli = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stipendionetto",
		Name:      "calcoli_totali",
		Help:      "Calcoli completati per tipo.",
	}, []string{"tipo"})

	rifiutati = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stipendionetto",
		Name:      "calcoli_rifiutati_totali",
		Help:      "Calcoli rifiutati per input non valido, per tipo e campo.",
	}, []string{"tipo", "campo"})

	durata = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "stipendionetto",
		Name:      "http_durata_secondi",
		Help:      "Durata delle richieste HTTP.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"metodo", "stato"})
)

func init() {
	Registry.MustRegister(
		calcoli, rifiutati, durata,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

func CalcoloEseguito(tipo string) { calcoli.WithLabelValues(tipo).Inc() }

func CalcoloRifiutato(tipo, campo string) { rifiutati.WithLabelValues(tipo, campo).Inc() }

// Handler serves the registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}

// Middleware records the latency of every request by method and status.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		durata.WithLabelValues(r.Method, strconv.Itoa(sw.status)).Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (s *statusWriter) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}
