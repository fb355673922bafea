package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"stipendionetto/internal/report"
	sentryutil "stipendionetto/internal/sentry"
)

// ReportHandler computes ?tipo= from the JSON body and returns the summary
// as a PDF. ?mode=inline shows it in the browser.
func ReportHandler(w http.ResponseWriter, r *http.Request) {
	tipo := r.URL.Query().Get("tipo")
	data, err := leggiCorpo(w, r)
	if err != nil {
		scriviErrore(w, r, tipo, err)
		return
	}
	e, err := calcola(tipo, data)
	if err != nil {
		scriviErrore(w, r, tipo, err)
		return
	}

	now := time.Now()
	var buf bytes.Buffer
	if err := report.Scrivi(&buf, e.prospetto(), now); err != nil {
		sentryutil.CaptureError(err, map[string]string{"handler": "report", "phase": "pdf-output"})
		scriviJSON(w, http.StatusInternalServerError, map[string]string{"error": "Errore generazione PDF"})
		return
	}

	disposition := "attachment"
	if r.URL.Query().Get("mode") == "inline" {
		disposition = "inline"
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`%s; filename="%s-%s.pdf"`, disposition, tipo, now.Format("2006-01-02")))
	w.Header().Set("Cache-Control", "no-store")
	w.Write(buf.Bytes())
}
