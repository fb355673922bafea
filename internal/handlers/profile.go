package handlers

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
)

// condivisione is the payload behind a share code: the calculator and its
// parameters, nothing else.
type condivisione struct {
	Tipo      string          `json:"t"`
	Parametri json.RawMessage `json:"p"`
}

const (
	codePrefix    = "SN-"
	maxCodeLength = 1024
)

var errCodiceNonValido = errors.New("codice non valido")

// Codifica builds a share code for tipo from raw JSON parameters. Unknown
// fields are dropped.
func Codifica(tipo string, parametri []byte) (string, error) {
	c, ok := calcolatori[tipo]
	if !ok {
		return "", errTipoSconosciuto
	}
	norm, err := c.normalizza(parametri)
	if err != nil {
		return "", err
	}
	data, err := json.Marshal(condivisione{Tipo: tipo, Parametri: norm})
	if err != nil {
		return "", err
	}
	return codePrefix + base64.RawURLEncoding.EncodeToString(data), nil
}

// Decodifica reverses Codifica.
func Decodifica(code string) (string, json.RawMessage, error) {
	if !strings.HasPrefix(code, codePrefix) || len(code) > maxCodeLength {
		return "", nil, errCodiceNonValido
	}
	data, err := base64.RawURLEncoding.DecodeString(strings.TrimPrefix(code, codePrefix))
	if err != nil {
		return "", nil, errCodiceNonValido
	}
	var c condivisione
	if err := json.Unmarshal(data, &c); err != nil {
		return "", nil, errCodiceNonValido
	}
	calc, ok := calcolatori[c.Tipo]
	if !ok {
		return "", nil, errCodiceNonValido
	}
	norm, err := calc.normalizza(c.Parametri)
	if err != nil {
		return "", nil, errCodiceNonValido
	}
	return c.Tipo, norm, nil
}

// CodificaHandler encodes {"tipo": ..., "parametri": {...}} into a share code.
func CodificaHandler(w http.ResponseWriter, r *http.Request) {
	data, err := leggiCorpo(w, r)
	if err != nil {
		scriviErrore(w, r, "codifica", err)
		return
	}
	var req struct {
		Tipo      string          `json:"tipo"`
		Parametri json.RawMessage `json:"parametri"`
	}
	if err := json.Unmarshal(data, &req); err != nil || len(req.Parametri) == 0 {
		scriviJSON(w, http.StatusBadRequest, map[string]string{"error": "Richiesta non valida"})
		return
	}

	code, err := Codifica(req.Tipo, req.Parametri)
	if err != nil {
		scriviErrore(w, r, "codifica", err)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	scriviJSON(w, http.StatusOK, map[string]string{"code": code})
}

// DecodificaHandler returns the calculator and parameters behind ?code=.
func DecodificaHandler(w http.ResponseWriter, r *http.Request) {
	tipo, parametri, err := Decodifica(r.URL.Query().Get("code"))
	if err != nil {
		scriviJSON(w, http.StatusBadRequest, map[string]string{"error": "Codice non valido"})
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	scriviJSON(w, http.StatusOK, map[string]interface{}{"tipo": tipo, "parametri": parametri})
}
