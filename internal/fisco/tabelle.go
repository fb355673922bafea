package fisco

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed tabelle/*.yaml
var tabelleIncluse embed.FS

var (
	ErrTabellaNonValida  = errors.New("tabella fiscale non valida")
	ErrAnnoNonSupportato = errors.New("anno fiscale non supportato")
)

// Scaglione is one IRPEF bracket. Limite is the upper bound of the bracket;
// zero marks the last, unbounded one.
type Scaglione struct {
	Limite   float64 `yaml:"limite" json:"limite,omitempty"`
	Aliquota float64 `yaml:"aliquota" json:"aliquota"`
}

func (s Scaglione) Illimitato() bool { return s.Limite <= 0 }

type IRPEF struct {
	Scaglioni []Scaglione `yaml:"scaglioni" json:"scaglioni"`
}

type AliquoteINPS struct {
	Ordinaria   float64 `yaml:"ordinaria" json:"ordinaria"`
	Forfettaria float64 `yaml:"forfettaria" json:"forfettaria"`
}

type Addizionali struct {
	Regionale float64 `yaml:"regionale" json:"regionale"`
	Comunale  float64 `yaml:"comunale" json:"comunale"`
}

type ParametriLavoro struct {
	SogliaPiena         float64 `yaml:"soglia_piena" json:"soglia_piena"`
	ImportoPieno        float64 `yaml:"importo_pieno" json:"importo_pieno"`
	SogliaIntermedia    float64 `yaml:"soglia_intermedia" json:"soglia_intermedia"`
	BaseIntermedia      float64 `yaml:"base_intermedia" json:"base_intermedia"`
	VariabileIntermedia float64 `yaml:"variabile_intermedia" json:"variabile_intermedia"`
	SogliaAzzeramento   float64 `yaml:"soglia_azzeramento" json:"soglia_azzeramento"`
}

type ParametriConiuge struct {
	SogliaPiena       float64 `yaml:"soglia_piena" json:"soglia_piena"`
	ImportoPieno      float64 `yaml:"importo_pieno" json:"importo_pieno"`
	SogliaIntermedia  float64 `yaml:"soglia_intermedia" json:"soglia_intermedia"`
	ImportoIntermedio float64 `yaml:"importo_intermedio" json:"importo_intermedio"`
	SogliaAzzeramento float64 `yaml:"soglia_azzeramento" json:"soglia_azzeramento"`
}

type ParametriFigli struct {
	ImportoBase           float64 `yaml:"importo_base" json:"importo_base"`
	MaggiorazioneUnder3   float64 `yaml:"maggiorazione_under3" json:"maggiorazione_under3"`
	MaggiorazioneDisabile float64 `yaml:"maggiorazione_disabile" json:"maggiorazione_disabile"`
	SogliaPiena           float64 `yaml:"soglia_piena" json:"soglia_piena"`
	SogliaAzzeramento     float64 `yaml:"soglia_azzeramento" json:"soglia_azzeramento"`
}

type ParametriAltriCarichi struct {
	Importo           float64 `yaml:"importo" json:"importo"`
	SogliaAzzeramento float64 `yaml:"soglia_azzeramento" json:"soglia_azzeramento"`
}

type Detrazioni struct {
	Lavoro       ParametriLavoro       `yaml:"lavoro" json:"lavoro"`
	Coniuge      ParametriConiuge      `yaml:"coniuge" json:"coniuge"`
	Figli        ParametriFigli        `yaml:"figli" json:"figli"`
	AltriCarichi ParametriAltriCarichi `yaml:"altri_carichi" json:"altri_carichi"`
}

// FasciaDetrazione grants Importo when the taxable amount is at most Limite.
type FasciaDetrazione struct {
	Limite  float64 `yaml:"limite" json:"limite"`
	Importo float64 `yaml:"importo" json:"importo"`
}

type RegoleTredicesima struct {
	AliquotaMedia float64            `yaml:"aliquota_media" json:"aliquota_media"`
	MesiTotali    float64            `yaml:"mesi_totali" json:"mesi_totali"`
	Detrazioni    []FasciaDetrazione `yaml:"detrazioni" json:"detrazioni"`
}

type RegoleFerie struct {
	MonteAnnuale    float64 `yaml:"monte_annuale" json:"monte_annuale"`
	GiorniSettimana int     `yaml:"giorni_settimana" json:"giorni_settimana"`
	OrePerGiorno    float64 `yaml:"ore_per_giorno" json:"ore_per_giorno"`
	GiorniPeriodo   float64 `yaml:"giorni_periodo" json:"giorni_periodo"`
}

type RegoleStraordinari struct {
	AliquotaMedia float64 `yaml:"aliquota_media" json:"aliquota_media"`
}

type RegolePensione struct {
	AliquotaContributiva float64 `yaml:"aliquota_contributiva" json:"aliquota_contributiva"`
	CoeffSostituzione    float64 `yaml:"coeff_sostituzione" json:"coeff_sostituzione"`
	AliquotaMedia        float64 `yaml:"aliquota_media" json:"aliquota_media"`
	Mensilita            float64 `yaml:"mensilita" json:"mensilita"`
}

// Tabelle holds every rate, threshold and fallback assumption used by the
// calculators for one fiscal year. Read-only once loaded.
type Tabelle struct {
	Anno         int                `yaml:"anno" json:"anno"`
	Descrizione  string             `yaml:"descrizione" json:"descrizione"`
	IRPEF        IRPEF              `yaml:"irpef" json:"irpef"`
	INPS         AliquoteINPS       `yaml:"inps" json:"inps"`
	Addizionali  Addizionali        `yaml:"addizionali" json:"addizionali"`
	Detrazioni   Detrazioni         `yaml:"detrazioni" json:"detrazioni"`
	Tredicesima  RegoleTredicesima  `yaml:"tredicesima" json:"tredicesima"`
	Ferie        RegoleFerie        `yaml:"ferie" json:"ferie"`
	Straordinari RegoleStraordinari `yaml:"straordinari" json:"straordinari"`
	Pensione     RegolePensione     `yaml:"pensione" json:"pensione"`
}

// ParseTabelle decodes and validates a YAML table. Unknown keys are rejected.
func ParseTabelle(data []byte) (*Tabelle, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var t Tabelle
	if err := dec.Decode(&t); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTabellaNonValida, err)
	}
	if err := t.Valida(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Valida checks the structural constraints of the table: brackets must
// partition [0, inf) with strictly increasing limits and rates.
func (t *Tabelle) Valida() error {
	invalid := func(format string, args ...interface{}) error {
		return fmt.Errorf("%w (anno %d): %s", ErrTabellaNonValida, t.Anno, fmt.Sprintf(format, args...))
	}

	if t.Anno <= 0 {
		return invalid("anno mancante")
	}

	sc := t.IRPEF.Scaglioni
	if len(sc) == 0 {
		return invalid("nessuno scaglione IRPEF")
	}
	prevLimite, prevAliquota := 0.0, -1.0
	for i, s := range sc {
		last := i == len(sc)-1
		if last && !s.Illimitato() {
			return invalid("l'ultimo scaglione deve essere illimitato")
		}
		if !last {
			if s.Illimitato() {
				return invalid("scaglione %d senza limite", i+1)
			}
			if s.Limite <= prevLimite {
				return invalid("limiti degli scaglioni non crescenti")
			}
			prevLimite = s.Limite
		}
		if s.Aliquota < 0 || s.Aliquota >= 1 {
			return invalid("aliquota %.4f fuori intervallo", s.Aliquota)
		}
		if s.Aliquota <= prevAliquota {
			return invalid("aliquote degli scaglioni non crescenti")
		}
		prevAliquota = s.Aliquota
	}

	for name, r := range map[string]float64{
		"inps.ordinaria":          t.INPS.Ordinaria,
		"inps.forfettaria":        t.INPS.Forfettaria,
		"addizionali.regionale":   t.Addizionali.Regionale,
		"addizionali.comunale":    t.Addizionali.Comunale,
		"tredicesima.aliquota":    t.Tredicesima.AliquotaMedia,
		"straordinari.aliquota":   t.Straordinari.AliquotaMedia,
		"pensione.aliquota_media": t.Pensione.AliquotaMedia,
	} {
		if r < 0 || r >= 1 {
			return invalid("%s fuori intervallo", name)
		}
	}

	l := t.Detrazioni.Lavoro
	if !(0 < l.SogliaPiena && l.SogliaPiena < l.SogliaIntermedia && l.SogliaIntermedia < l.SogliaAzzeramento) {
		return invalid("soglie detrazione lavoro non ordinate")
	}
	c := t.Detrazioni.Coniuge
	if !(0 < c.SogliaPiena && c.SogliaPiena < c.SogliaIntermedia && c.SogliaIntermedia < c.SogliaAzzeramento) {
		return invalid("soglie detrazione coniuge non ordinate")
	}
	f := t.Detrazioni.Figli
	if !(0 < f.SogliaPiena && f.SogliaPiena < f.SogliaAzzeramento) {
		return invalid("soglie detrazione figli non ordinate")
	}

	prev := 0.0
	for _, fd := range t.Tredicesima.Detrazioni {
		if fd.Limite <= prev || fd.Importo < 0 {
			return invalid("fasce detrazione tredicesima non valide")
		}
		prev = fd.Limite
	}

	if t.Ferie.OrePerGiorno <= 0 || t.Ferie.GiorniPeriodo <= 0 {
		return invalid("ore per giorno o giorni del periodo non validi")
	}
	if t.Tredicesima.MesiTotali <= 0 {
		return invalid("mesi totali tredicesima non validi")
	}
	if t.Pensione.Mensilita <= 0 {
		return invalid("mensilità pensione non valide")
	}
	return nil
}

// Registro indexes the loaded tables by fiscal year.
type Registro struct {
	tabelle     map[int]*Tabelle
	predefinito int
}

// CaricaRegistro loads the embedded tables, then any *.yaml in dir (which
// override embedded years). predefinito selects the year used when a request
// does not name one; 0 means the most recent year available.
func CaricaRegistro(dir string, predefinito int) (*Registro, error) {
	r := &Registro{tabelle: make(map[int]*Tabelle)}

	if err := r.caricaDa(tabelleIncluse, "tabelle"); err != nil {
		return nil, err
	}
	if dir != "" {
		if _, err := os.Stat(dir); err == nil {
			if err := r.caricaDa(os.DirFS(dir), "."); err != nil {
				return nil, err
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("lettura directory tabelle %s: %w", dir, err)
		}
	}

	if predefinito == 0 {
		for anno := range r.tabelle {
			if anno > predefinito {
				predefinito = anno
			}
		}
	}
	if _, ok := r.tabelle[predefinito]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrAnnoNonSupportato, predefinito)
	}
	r.predefinito = predefinito
	return r, nil
}

func (r *Registro) caricaDa(fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("lettura tabelle: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		data, err := fs.ReadFile(fsys, filepath.ToSlash(filepath.Join(dir, e.Name())))
		if err != nil {
			return fmt.Errorf("lettura %s: %w", e.Name(), err)
		}
		t, err := ParseTabelle(data)
		if err != nil {
			return fmt.Errorf("%s: %w", e.Name(), err)
		}
		r.tabelle[t.Anno] = t
	}
	return nil
}

// Tabelle returns the table for anno, or the default year when anno is 0.
func (r *Registro) Tabelle(anno int) (*Tabelle, error) {
	if anno == 0 {
		anno = r.predefinito
	}
	t, ok := r.tabelle[anno]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrAnnoNonSupportato, anno)
	}
	return t, nil
}

func (r *Registro) Predefinito() int { return r.predefinito }

// Anni lists the available fiscal years in ascending order.
func (r *Registro) Anni() []int {
	anni := make([]int, 0, len(r.tabelle))
	for anno := range r.tabelle {
		anni = append(anni, anno)
	}
	sort.Ints(anni)
	return anni
}

var (
	incluseOnce sync.Once
	incluse     *Registro
	incluseErr  error
)

// Predefinite returns the most recent embedded table. It panics if the
// embedded tables are broken, which is a build defect.
func Predefinite() *Tabelle {
	incluseOnce.Do(func() {
		incluse, incluseErr = CaricaRegistro("", 0)
	})
	if incluseErr != nil {
		panic(incluseErr)
	}
	t, _ := incluse.Tabelle(0)
	return t
}
