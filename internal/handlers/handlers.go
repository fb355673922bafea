package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"time"

	"stipendionetto/internal/fisco"
	"stipendionetto/internal/guide"
	"stipendionetto/internal/logger"
	"stipendionetto/internal/metrics"
	"stipendionetto/internal/middleware"
	"stipendionetto/internal/models"
	"stipendionetto/internal/report"
	"stipendionetto/internal/scenari"
	sentryutil "stipendionetto/internal/sentry"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

const maxBodyBytes = 64 << 10

var (
	registro *fisco.Registro

	errCorpoNonValido  = errors.New("corpo della richiesta non valido")
	errTipoSconosciuto = errors.New("tipo di calcolo sconosciuto")
)

// SetRegistro installs the fiscal tables used by every calculator.
func SetRegistro(r *fisco.Registro) { registro = r }

func tabelle(anno int) (*fisco.Tabelle, error) {
	if registro == nil {
		t := fisco.Predefinite()
		if anno == 0 || anno == t.Anno {
			return t, nil
		}
		return nil, fmt.Errorf("%w: %d", fisco.ErrAnnoNonSupportato, anno)
	}
	return registro.Tabelle(anno)
}

// esito is a completed calculation, ready for JSON or PDF output.
type esito struct {
	anno      int
	risultato interface{}
	prospetto func() report.Prospetto
}

type calcolatore struct {
	esegui     func(data []byte) (*esito, error)
	normalizza func(data []byte) (json.RawMessage, error)
}

func nuovoCalcolatore[P any, R any](
	calcola func(P, *fisco.Tabelle) (*R, error),
	stampa func(*R) report.Prospetto,
	anno func(P) int,
) calcolatore {
	decode := func(data []byte) (P, error) {
		var p P
		if err := json.Unmarshal(data, &p); err != nil {
			return p, fmt.Errorf("%w: %v", errCorpoNonValido, err)
		}
		return p, nil
	}
	return calcolatore{
		esegui: func(data []byte) (*esito, error) {
			p, err := decode(data)
			if err != nil {
				return nil, err
			}
			t, err := tabelle(anno(p))
			if err != nil {
				return nil, err
			}
			r, err := calcola(p, t)
			if err != nil {
				return nil, err
			}
			return &esito{
				anno:      t.Anno,
				risultato: r,
				prospetto: func() report.Prospetto { return stampa(r) },
			}, nil
		},
		normalizza: func(data []byte) (json.RawMessage, error) {
			p, err := decode(data)
			if err != nil {
				return nil, err
			}
			out, err := json.Marshal(p)
			return json.RawMessage(out), err
		},
	}
}

var calcolatori = map[string]calcolatore{
	"stipendio": nuovoCalcolatore(scenari.Stipendio, report.Stipendio,
		func(p models.ParametriStipendio) int { return p.Anno }),
	"ferie": nuovoCalcolatore(scenari.Ferie, report.Ferie,
		func(p models.ParametriFerie) int { return p.Anno }),
	"tredicesima": nuovoCalcolatore(scenari.Tredicesima, report.Tredicesima,
		func(p models.ParametriTredicesima) int { return p.Anno }),
	"straordinari": nuovoCalcolatore(scenari.Straordinari, report.Straordinari,
		func(p models.ParametriStraordinari) int { return p.Anno }),
	"pensione": nuovoCalcolatore(scenari.Pensione, report.Pensione,
		func(p models.ParametriPensione) int { return p.Anno }),
}

// Tipi lists the calculator names in alphabetical order.
func Tipi() []string {
	tipi := make([]string, 0, len(calcolatori))
	for k := range calcolatori {
		tipi = append(tipi, k)
	}
	sort.Strings(tipi)
	return tipi
}

func leggiCorpo(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errCorpoNonValido, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: vuoto", errCorpoNonValido)
	}
	return data, nil
}

func calcola(tipo string, data []byte) (*esito, error) {
	c, ok := calcolatori[tipo]
	if !ok {
		return nil, errTipoSconosciuto
	}
	start := time.Now()
	e, err := c.esegui(data)
	if err != nil {
		return nil, err
	}
	IncrementCounter(tipo)
	metrics.CalcoloEseguito(tipo)
	logger.Debug("calcolo eseguito", map[string]interface{}{
		"tipo": tipo, "anno": e.anno, "durata_us": time.Since(start).Microseconds(),
	})
	return e, nil
}

// CalcoloHandler serves POST /api/{tipo}: parameters in, result envelope out.
func CalcoloHandler(tipo string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
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

		w.Header().Set("Cache-Control", "no-store")
		if g := guide.GetByCalcolatore(tipo); g != nil {
			w.Header().Set("Link", `</guide/`+g.Slug+`>; rel="help"`)
		}
		scriviJSON(w, http.StatusOK, models.Calcolo{
			ID:          uuid.NewString(),
			Tipo:        tipo,
			AnnoFiscale: e.anno,
			Eseguito:    time.Now().UTC(),
			Risultato:   e.risultato,
		})
	}
}

// TabelleHandler returns the fiscal table for ?anno= (default year if absent).
func TabelleHandler(w http.ResponseWriter, r *http.Request) {
	anno := 0
	if v := r.URL.Query().Get("anno"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			scriviJSON(w, http.StatusBadRequest, models.ErroreCampo{Error: "Anno non valido", Campo: "anno"})
			return
		}
		anno = n
	}
	t, err := tabelle(anno)
	if err != nil {
		scriviErrore(w, r, "tabelle", err)
		return
	}
	w.Header().Set("Cache-Control", "public, max-age=3600")
	scriviJSON(w, http.StatusOK, t)
}

// scriviJSON encodes v before touching the status line, so an encoding
// failure becomes a 500 instead of an empty 200.
func scriviJSON(w http.ResponseWriter, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		logger.Error("encoding risposta", map[string]interface{}{"error": err.Error()})
		sentryutil.CaptureError(err, map[string]string{"phase": "json-encode"})
		status = http.StatusInternalServerError
		data = []byte(`{"error":"Errore interno del server"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(data, '\n'))
}

// scriviErrore maps calculator and request errors to HTTP responses.
func scriviErrore(w http.ResponseWriter, r *http.Request, tipo string, err error) {
	var ve *scenari.ValidationError
	switch {
	case errors.As(err, &ve):
		metrics.CalcoloRifiutato(tipo, ve.Campo)
		logger.Warn("input non valido", map[string]interface{}{
			"tipo": tipo, "campo": ve.Campo, "request_id": middleware.RequestID(r.Context()),
		})
		scriviJSON(w, http.StatusBadRequest, models.ErroreCampo{Error: ve.Messaggio, Campo: ve.Campo})
	case errors.Is(err, errCorpoNonValido):
		scriviJSON(w, http.StatusBadRequest, models.ErroreCampo{Error: "Richiesta non valida"})
	case errors.Is(err, fisco.ErrAnnoNonSupportato):
		scriviJSON(w, http.StatusBadRequest, models.ErroreCampo{Error: "Anno fiscale non supportato", Campo: "anno"})
	case errors.Is(err, errTipoSconosciuto):
		scriviJSON(w, http.StatusNotFound, models.ErroreCampo{Error: "Calcolatore non trovato", Campo: "tipo"})
	default:
		sentryutil.CaptureError(err, map[string]string{"handler": tipo})
		logger.Error("errore interno", map[string]interface{}{
			"tipo": tipo, "error": err.Error(), "request_id": middleware.RequestID(r.Context()),
		})
		scriviJSON(w, http.StatusInternalServerError, models.ErroreCampo{Error: "Errore interno del server"})
	}
}
