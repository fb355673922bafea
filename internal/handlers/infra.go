package handlers

import (
	"fmt"
	"net/http"
	"time"

	"stipendionetto/internal/guide"
)

var startTime = time.Now()

// HealthHandler reports uptime, counters and the fiscal years available.
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	uptime := time.Since(startTime)

	anni := []int{}
	predefinito := 0
	if registro != nil {
		anni = registro.Anni()
		predefinito = registro.Predefinito()
	} else if t, err := tabelle(0); err == nil {
		anni = []int{t.Anno}
		predefinito = t.Anno
	}

	w.Header().Set("Cache-Control", "no-store")
	scriviJSON(w, http.StatusOK, map[string]interface{}{
		"status":            "ok",
		"uptime_seconds":    int(uptime.Seconds()),
		"uptime_human":      formatDuration(uptime),
		"calcoli":           GetCounter().CalcoliTotali,
		"anni_fiscali":      anni,
		"anno_predefinito":  predefinito,
		"calcolatori":       Tipi(),
		"guide_disponibili": len(guide.GetAll()),
	})
}

// StatsHandler returns the persistent calculation counters.
func StatsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-cache")
	scriviJSON(w, http.StatusOK, GetCounter())
}

func formatDuration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm %ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
