package handlers

import (
	"bytes"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"stipendionetto/internal/config"
	sentryutil "stipendionetto/internal/sentry"

	"github.com/ledongthuc/pdf"
)

type bustaPagaResponse struct {
	LordoMensile float64 `json:"lordo_mensile"`
	Voce         string  `json:"voce,omitempty"`
	Trovato      bool    `json:"trovato"`
}

// Labels tried in order: the first match wins.
var vociLordo = []struct {
	nome string
	re   *regexp.Regexp
}{
	{"totale competenze", regexp.MustCompile(`(?i)totale\s+competenze[:\s€]*([0-9][0-9.,]*)`)},
	{"retribuzione lorda", regexp.MustCompile(`(?i)retribuzione\s+lorda[:\s€]*([0-9][0-9.,]*)`)},
	{"imponibile previdenziale", regexp.MustCompile(`(?i)imponibile\s+(?:previdenziale|inps)[:\s€]*([0-9][0-9.,]*)`)},
	{"lordo", regexp.MustCompile(`(?i)\blordo(?:\s+mensile)?[:\s€]*([0-9][0-9.,]*)`)},
}

// BustaPagaHandler reads an uploaded payslip PDF and looks for the monthly
// gross amount.
func BustaPagaHandler(w http.ResponseWriter, r *http.Request) {
	limit := int64(config.Cfg.MaxUploadMB) << 20
	if limit <= 0 {
		limit = 5 << 20
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	if err := r.ParseMultipartForm(limit); err != nil {
		scriviJSON(w, http.StatusBadRequest, map[string]string{"error": "File troppo grande o richiesta non valida"})
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		scriviJSON(w, http.StatusBadRequest, map[string]string{"error": "File non trovato"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		sentryutil.CaptureError(err, map[string]string{"handler": "busta-paga", "phase": "read"})
		scriviJSON(w, http.StatusInternalServerError, map[string]string{"error": "Errore lettura file"})
		return
	}

	if http.DetectContentType(data) != "application/pdf" {
		scriviJSON(w, http.StatusBadRequest, map[string]string{"error": "Formato non valido: solo PDF accettati"})
		return
	}

	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
	w.Header().Set("Pragma", "no-cache")

	text, err := testoPDF(data)
	if err != nil {
		sentryutil.CaptureError(err, map[string]string{"handler": "busta-paga", "phase": "pdf-parse"})
		scriviJSON(w, http.StatusOK, bustaPagaResponse{})
		return
	}

	lordo, voce := estraiLordo(text)
	scriviJSON(w, http.StatusOK, bustaPagaResponse{LordoMensile: lordo, Voce: voce, Trovato: lordo > 0})
}

func testoPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		p := reader.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString(" ")
	}
	return sb.String(), nil
}

// estraiLordo returns the first positive amount found after a known label.
func estraiLordo(text string) (float64, string) {
	for _, v := range vociLordo {
		m := v.re.FindStringSubmatch(text)
		if len(m) < 2 {
			continue
		}
		if val := parseImporto(m[1]); val > 0 {
			return val, v.nome
		}
	}
	return 0, ""
}

// parseImporto reads Italian-formatted amounts: 2.345,67 -> 2345.67.
func parseImporto(s string) float64 {
	s = strings.TrimRight(s, ".,")
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	} else if strings.Count(s, ".") > 1 || (strings.Contains(s, ".") && len(s)-strings.LastIndex(s, ".") == 4) {
		// only thousands separators: 2.345 or 1.234.567
		s = strings.ReplaceAll(s, ".", "")
	}
	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return val
}
