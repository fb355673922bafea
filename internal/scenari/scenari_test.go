package scenari

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"stipendionetto/internal/fisco"
	"stipendionetto/internal/models"
)

func vicino(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func tab() *fisco.Tabelle { return fisco.Predefinite() }

func TestStipendio_Base30000(t *testing.T) {
	r, err := Stipendio(models.ParametriStipendio{LordoMensile: 2500}, tab())
	if err != nil {
		t.Fatalf("errore inatteso: %v", err)
	}
	checks := []struct {
		nome      string
		got, want float64
	}{
		{"RAL", r.RAL, 30000},
		{"contributi", r.Contributi, 2757},
		{"imponibile", r.Imponibile, 27243},
		{"IRPEF lorda", r.IRPEFLorda, 6265.89},
		{"detrazione lavoro", r.DetrazioneLavoro, 1979.29},
		{"IRPEF netta", r.IRPEFNetta, 4286.60},
		{"addizionali", r.AddizionaleRegionale + r.AddizionaleComunale, 689.25},
		{"netto annuo", r.NettoAnnuo, 22267.16},
		{"netto mensile", r.NettoMensile, 1855.60},
	}
	for _, c := range checks {
		if !vicino(c.got, c.want, 0.01) {
			t.Errorf("%s: atteso %.2f, ottenuto %.4f", c.nome, c.want, c.got)
		}
	}
	if r.Mensilita != 12 {
		t.Errorf("senza tredicesima le mensilità devono essere 12, ottenute %d", r.Mensilita)
	}
}

func TestStipendio_Riconciliazione(t *testing.T) {
	casi := []models.ParametriStipendio{
		{LordoMensile: 900},
		{LordoMensile: 2500},
		{LordoMensile: 4200, SituazionePersonale: models.SituazionePersonale{Tredicesima: true, ConConiuge: true, NumeroFigli: 2, FigliUnder3: 1}},
		{LordoMensile: 9000, SituazionePersonale: models.SituazionePersonale{RegimeForfettario: true, AltriCarichi: true}},
		{LordoMensile: 3000, SituazionePersonale: models.SituazionePersonale{PartTime: true, PercentualePartTime: 60}},
	}
	for _, p := range casi {
		r, err := Stipendio(p, tab())
		if err != nil {
			t.Fatalf("errore inatteso per %+v: %v", p, err)
		}
		somma := r.Contributi + r.IRPEFNetta + r.AddizionaleRegionale + r.AddizionaleComunale + r.NettoAnnuo
		if !vicino(somma, r.RAL, 1e-6) {
			t.Errorf("lordo %.2f: componenti %.6f non riconciliano con RAL %.6f", p.LordoMensile, somma, r.RAL)
		}
		for nome, v := range map[string]float64{
			"contributi": r.Contributi, "imponibile": r.Imponibile, "irpef_netta": r.IRPEFNetta,
			"regionale": r.AddizionaleRegionale, "comunale": r.AddizionaleComunale,
		} {
			if v < 0 {
				t.Errorf("%s negativo: %.4f", nome, v)
			}
		}
	}
}

func TestStipendio_FamigliaConTredicesima(t *testing.T) {
	p := models.ParametriStipendio{
		LordoMensile: 2000,
		SituazionePersonale: models.SituazionePersonale{
			Tredicesima: true, ConConiuge: true, NumeroFigli: 2, FigliUnder3: 1,
		},
	}
	r, err := Stipendio(p, tab())
	if err != nil {
		t.Fatalf("errore inatteso: %v", err)
	}
	if r.Mensilita != 13 || !vicino(r.RAL, 26000, 1e-9) {
		t.Errorf("RAL con tredicesima: attesa 26000 su 13, ottenuta %.2f su %d", r.RAL, r.Mensilita)
	}
	if !vicino(r.DetrazioneFigli, 2100, 1e-9) {
		t.Errorf("detrazione figli: attesa 2100, ottenuta %.4f", r.DetrazioneFigli)
	}
	if !vicino(r.DetrazioneConiuge, 762.11, 0.01) {
		t.Errorf("detrazione coniuge: attesa 762.11, ottenuta %.4f", r.DetrazioneConiuge)
	}
	if !vicino(r.IRPEFNetta, 256.53, 0.01) {
		t.Errorf("IRPEF netta: attesa 256.53, ottenuta %.4f", r.IRPEFNetta)
	}
}

func TestStipendio_IRPEFNonNegativa(t *testing.T) {
	p := models.ParametriStipendio{
		LordoMensile:        700,
		SituazionePersonale: models.SituazionePersonale{ConConiuge: true, NumeroFigli: 4, FigliDisabili: 2},
	}
	r, err := Stipendio(p, tab())
	if err != nil {
		t.Fatalf("errore inatteso: %v", err)
	}
	if r.IRPEFNetta != 0 {
		t.Errorf("detrazioni superiori all'imposta: IRPEF netta attesa 0, ottenuta %.4f", r.IRPEFNetta)
	}
}

func TestStipendio_PartTimeSoloSeIndicato(t *testing.T) {
	pieno, _ := Stipendio(models.ParametriStipendio{
		LordoMensile:        2000,
		SituazionePersonale: models.SituazionePersonale{PercentualePartTime: 50},
	}, tab())
	if pieno.FattorePartTime != 1 || !vicino(pieno.RAL, 24000, 1e-9) {
		t.Errorf("percentuale ignorata senza part-time: fattore %.2f RAL %.2f", pieno.FattorePartTime, pieno.RAL)
	}

	pt, _ := Stipendio(models.ParametriStipendio{
		LordoMensile:        2000,
		SituazionePersonale: models.SituazionePersonale{PartTime: true, PercentualePartTime: 50},
	}, tab())
	if pt.FattorePartTime != 0.5 || !vicino(pt.RAL, 12000, 1e-9) {
		t.Errorf("part-time 50%%: fattore %.2f RAL %.2f", pt.FattorePartTime, pt.RAL)
	}

	vuoto, _ := Stipendio(models.ParametriStipendio{
		LordoMensile:        2000,
		SituazionePersonale: models.SituazionePersonale{PartTime: true},
	}, tab())
	if vuoto.FattorePartTime != 1 {
		t.Errorf("part-time senza percentuale deve valere 100%%, fattore %.2f", vuoto.FattorePartTime)
	}
}

func TestStipendio_FigliNormalizzati(t *testing.T) {
	a, _ := Stipendio(models.ParametriStipendio{
		LordoMensile:        2000,
		SituazionePersonale: models.SituazionePersonale{NumeroFigli: 1, FigliUnder3: 5, FigliDisabili: 3},
	}, tab())
	b, _ := Stipendio(models.ParametriStipendio{
		LordoMensile:        2000,
		SituazionePersonale: models.SituazionePersonale{NumeroFigli: 1, FigliUnder3: 1, FigliDisabili: 1},
	}, tab())
	if a.DetrazioneFigli != b.DetrazioneFigli {
		t.Errorf("conteggi eccedenti non normalizzati: %.2f vs %.2f", a.DetrazioneFigli, b.DetrazioneFigli)
	}
}

func TestCalcoli_Idempotenti(t *testing.T) {
	calcoli := map[string]func() (interface{}, error){
		"stipendio": func() (interface{}, error) {
			return Stipendio(models.ParametriStipendio{
				LordoMensile:        3100,
				SituazionePersonale: models.SituazionePersonale{Tredicesima: true, NumeroFigli: 1},
			}, tab())
		},
		"ferie": func() (interface{}, error) {
			return Ferie(models.ParametriFerie{AnnoRiferimento: 2025, GiorniLavorati: 200, GiorniGoduti: 3}, tab())
		},
		"tredicesima": func() (interface{}, error) {
			return Tredicesima(models.ParametriTredicesima{LordoMensile: 2200, MesiMaturati: 9, PartTime: true, PercentualePartTime: 75}, tab())
		},
		"straordinari": func() (interface{}, error) {
			return Straordinari(models.ParametriStraordinari{PagaOraria: 14, OreFasciaA: 6, MaggiorazioneA: 25, OreNotturne: 2, MaggiorazioneNotturna: 50}, tab())
		},
		"pensione": func() (interface{}, error) {
			return Pensione(models.ParametriPensione{EtaAttuale: 35, EtaUscita: 67, AnniContributi: 10, RALMedia: 32000}, tab())
		},
	}
	for nome, calcola := range calcoli {
		a, errA := calcola()
		b, errB := calcola()
		if errA != nil || errB != nil {
			t.Fatalf("%s: errore inatteso %v / %v", nome, errA, errB)
		}
		if !reflect.DeepEqual(a, b) {
			t.Errorf("%s: stesso input, risultati diversi", nome)
		}
	}
}

func TestCalcoli_ImportiFuoriScala(t *testing.T) {
	casi := []struct {
		nome  string
		campo string
		run   func() (interface{}, error)
	}{
		{"stipendio", "lordo_mensile", func() (interface{}, error) {
			return Stipendio(models.ParametriStipendio{LordoMensile: 1e308}, tab())
		}},
		{"ferie", "monte_annuale", func() (interface{}, error) {
			return Ferie(models.ParametriFerie{MonteAnnuale: 1e308, GiorniLavorati: 365}, tab())
		}},
		{"straordinari", "paga_oraria", func() (interface{}, error) {
			return Straordinari(models.ParametriStraordinari{PagaOraria: 1e300, OreFasciaA: 1e300}, tab())
		}},
		{"pensione", "ral_media", func() (interface{}, error) {
			return Pensione(models.ParametriPensione{EtaAttuale: 30, EtaUscita: 1e308, RALMedia: 1e308}, tab())
		}},
	}
	for _, c := range casi {
		_, err := c.run()
		var ve *ValidationError
		if !errors.As(err, &ve) || ve.Campo != c.campo {
			t.Errorf("%s: atteso errore su %s, ottenuto %v", c.nome, c.campo, err)
		}
	}
}

func TestStipendio_LordoNonValido(t *testing.T) {
	for _, lordo := range []float64{0, -100, math.NaN()} {
		r, err := Stipendio(models.ParametriStipendio{LordoMensile: lordo}, tab())
		if r != nil {
			t.Errorf("lordo %v: nessun risultato parziale atteso", lordo)
		}
		if !errors.Is(err, ErrInputNonValido) {
			t.Fatalf("lordo %v: atteso ErrInputNonValido, ottenuto %v", lordo, err)
		}
		var ve *ValidationError
		if !errors.As(err, &ve) || ve.Campo != "lordo_mensile" {
			t.Errorf("campo errato: %+v", ve)
		}
	}
}

func TestFerie_ProRata(t *testing.T) {
	r, err := Ferie(models.ParametriFerie{
		AnnoRiferimento: 2025, MonteAnnuale: 26, GiorniLavorati: 110, GiorniPeriodo: 182, GiorniGoduti: 5,
	}, tab())
	if err != nil {
		t.Fatalf("errore inatteso: %v", err)
	}
	if !vicino(r.GiorniMaturati, 15.714, 0.001) {
		t.Errorf("giorni maturati: attesi 15.714, ottenuti %.4f", r.GiorniMaturati)
	}
	if !vicino(r.GiorniResidui, 10.714, 0.001) {
		t.Errorf("giorni residui: attesi 10.714, ottenuti %.4f", r.GiorniResidui)
	}
	if !vicino(r.OreResidue, 85.71, 0.01) {
		t.Errorf("ore residue: attese 85.71, ottenute %.4f", r.OreResidue)
	}
	if r.AnnoRiferimento != 2025 || r.GiorniSettimana != 5 {
		t.Errorf("anno/giorni settimana inattesi: %d/%d", r.AnnoRiferimento, r.GiorniSettimana)
	}
}

func TestFerie_Limiti(t *testing.T) {
	r, _ := Ferie(models.ParametriFerie{GiorniLavorati: 500, GiorniPeriodo: 365, GiorniGoduti: 40}, tab())
	if r.QuotaPeriodo != 1 {
		t.Errorf("quota oltre il periodo deve essere 1, ottenuta %.4f", r.QuotaPeriodo)
	}
	if r.FerieAnnueEffettive != 26 {
		t.Errorf("monte predefinito atteso 26, ottenuto %.2f", r.FerieAnnueEffettive)
	}
	if r.GiorniResidui != 0 || r.OreResidue != 0 {
		t.Errorf("residuo negativo non azzerato: %.2f giorni, %.2f ore", r.GiorniResidui, r.OreResidue)
	}

	pt, _ := Ferie(models.ParametriFerie{MonteAnnuale: 26, PartTime: true, PercentualePartTime: 50, GiorniLavorati: 365, GiorniPeriodo: 365}, tab())
	if pt.GiorniMaturati != 13 {
		t.Errorf("part-time 50%%: attesi 13 giorni, ottenuti %.2f", pt.GiorniMaturati)
	}
}

func TestFerie_PeriodoPredefinito(t *testing.T) {
	r, err := Ferie(models.ParametriFerie{GiorniLavorati: 100}, tab())
	if err != nil {
		t.Fatalf("periodo omesso: errore inatteso %v", err)
	}
	if !vicino(r.QuotaPeriodo, 100.0/365, 1e-12) {
		t.Errorf("quota su 365 giorni attesa %.6f, ottenuta %.6f", 100.0/365, r.QuotaPeriodo)
	}
	if !vicino(r.GiorniMaturati, 26*100.0/365, 1e-9) {
		t.Errorf("giorni maturati inattesi: %.4f", r.GiorniMaturati)
	}
}

func TestFerie_NonValido(t *testing.T) {
	casi := []struct {
		p     models.ParametriFerie
		campo string
	}{
		{models.ParametriFerie{GiorniLavorati: 0, GiorniPeriodo: 365}, "giorni_lavorati"},
		{models.ParametriFerie{GiorniLavorati: 100, GiorniPeriodo: -30}, "giorni_periodo"},
	}
	for _, c := range casi {
		r, err := Ferie(c.p, tab())
		var ve *ValidationError
		if r != nil || !errors.As(err, &ve) || ve.Campo != c.campo {
			t.Errorf("%+v: atteso errore su %s, ottenuto %v", c.p, c.campo, err)
		}
	}
}

func TestTredicesima_MetaAnno(t *testing.T) {
	r, err := Tredicesima(models.ParametriTredicesima{LordoMensile: 2000, MesiMaturati: 6, MesiTotali: 12}, tab())
	if err != nil {
		t.Fatalf("errore inatteso: %v", err)
	}
	checks := []struct {
		nome      string
		got, want float64
	}{
		{"lordo", r.Lordo, 1000},
		{"contributi", r.Contributi, 91.90},
		{"imponibile", r.Imponibile, 908.10},
		{"detrazione", r.Detrazione, 50},
		{"IRPEF netta", r.IRPEFNetta, 158.86},
		{"netto", r.Netto, 749.24},
	}
	for _, c := range checks {
		if !vicino(c.got, c.want, 0.01) {
			t.Errorf("%s: atteso %.2f, ottenuto %.4f", c.nome, c.want, c.got)
		}
	}
	if r.Approssimazione == "" {
		t.Error("la stima ad aliquota media deve essere dichiarata")
	}
}

func TestTredicesima_FasceDetrazione(t *testing.T) {
	medio, _ := Tredicesima(models.ParametriTredicesima{LordoMensile: 2500, MesiMaturati: 12, MesiTotali: 12}, tab())
	if medio.Detrazione != 25 {
		t.Errorf("imponibile %.2f: detrazione attesa 25, ottenuta %.2f", medio.Imponibile, medio.Detrazione)
	}
	alto, _ := Tredicesima(models.ParametriTredicesima{LordoMensile: 5000, MesiMaturati: 12, MesiTotali: 12}, tab())
	if alto.Detrazione != 0 {
		t.Errorf("imponibile %.2f: detrazione attesa 0, ottenuta %.2f", alto.Imponibile, alto.Detrazione)
	}
	piccolo, _ := Tredicesima(models.ParametriTredicesima{LordoMensile: 100, MesiMaturati: 1, MesiTotali: 12}, tab())
	if piccolo.IRPEFNetta != 0 {
		t.Errorf("IRPEF netta deve essere azzerata, ottenuta %.4f", piccolo.IRPEFNetta)
	}
}

func TestTredicesima_MesiTotaliPredefiniti(t *testing.T) {
	omessi, err := Tredicesima(models.ParametriTredicesima{LordoMensile: 2000, MesiMaturati: 6}, tab())
	if err != nil {
		t.Fatalf("mesi totali omessi: errore inatteso %v", err)
	}
	espliciti, _ := Tredicesima(models.ParametriTredicesima{LordoMensile: 2000, MesiMaturati: 6, MesiTotali: 12}, tab())
	if !reflect.DeepEqual(omessi, espliciti) {
		t.Errorf("mesi totali omessi devono valere 12: %+v / %+v", omessi, espliciti)
	}
}

func TestTredicesima_NonValido(t *testing.T) {
	casi := []struct {
		p     models.ParametriTredicesima
		campo string
	}{
		{models.ParametriTredicesima{MesiMaturati: 6, MesiTotali: 12}, "lordo_mensile"},
		{models.ParametriTredicesima{LordoMensile: 2000, MesiTotali: 12}, "mesi_maturati"},
		{models.ParametriTredicesima{LordoMensile: 2000, MesiMaturati: 6, MesiTotali: -12}, "mesi_totali"},
	}
	for _, c := range casi {
		r, err := Tredicesima(c.p, tab())
		var ve *ValidationError
		if r != nil || !errors.As(err, &ve) || ve.Campo != c.campo {
			t.Errorf("%+v: atteso errore su %s, ottenuto %v", c.p, c.campo, err)
		}
	}
}

func TestStraordinari_FasciaUnica(t *testing.T) {
	r, err := Straordinari(models.ParametriStraordinari{
		PagaOraria: 15, OreFasciaA: 10, MaggiorazioneA: 25, AliquotaMedia: 23,
	}, tab())
	if err != nil {
		t.Fatalf("errore inatteso: %v", err)
	}
	if !vicino(r.Lordo, 187.5, 1e-9) {
		t.Errorf("lordo: atteso 187.50, ottenuto %.4f", r.Lordo)
	}
	if !vicino(r.Contributi, 17.23, 0.01) || !vicino(r.Imponibile, 170.27, 0.01) {
		t.Errorf("contributi/imponibile inattesi: %.4f / %.4f", r.Contributi, r.Imponibile)
	}
	if !vicino(r.Netto, 131.11, 0.01) {
		t.Errorf("netto: atteso 131.11, ottenuto %.4f", r.Netto)
	}
	if !vicino(r.NettoOrario, 13.11, 0.01) {
		t.Errorf("netto orario: atteso 13.11, ottenuto %.4f", r.NettoOrario)
	}
	if len(r.Fasce) != 3 || r.Fasce[0].Coefficiente != 1.25 {
		t.Errorf("fasce inattese: %+v", r.Fasce)
	}
}

func TestStraordinari_AliquotaPredefinita(t *testing.T) {
	a, _ := Straordinari(models.ParametriStraordinari{PagaOraria: 15, OreFasciaA: 10, MaggiorazioneA: 25}, tab())
	b, _ := Straordinari(models.ParametriStraordinari{PagaOraria: 15, OreFasciaA: 10, MaggiorazioneA: 25, AliquotaMedia: 23}, tab())
	if a.Netto != b.Netto {
		t.Errorf("aliquota predefinita diversa dal 23%%: %.4f vs %.4f", a.Netto, b.Netto)
	}
}

func TestStraordinari_TreFasce(t *testing.T) {
	r, _ := Straordinari(models.ParametriStraordinari{
		PagaOraria: 10,
		OreFasciaA: 4, MaggiorazioneA: 25,
		OreFasciaB: 2, MaggiorazioneB: 50,
		OreNotturne: 1, MaggiorazioneNotturna: 60,
	}, tab())
	if !vicino(r.Lordo, 50+30+16, 1e-9) || r.OreTotali != 7 {
		t.Errorf("lordo %.2f / ore %.2f inattesi", r.Lordo, r.OreTotali)
	}
}

func TestStraordinari_NonValido(t *testing.T) {
	if _, err := Straordinari(models.ParametriStraordinari{OreFasciaA: 10}, tab()); !errors.Is(err, ErrInputNonValido) {
		t.Errorf("paga oraria zero accettata: %v", err)
	}
	r, err := Straordinari(models.ParametriStraordinari{PagaOraria: 15}, tab())
	if r != nil || !errors.Is(err, ErrInputNonValido) {
		t.Errorf("zero ore accettate: %v", err)
	}
}

func TestPensione_Predefiniti(t *testing.T) {
	r, err := Pensione(models.ParametriPensione{EtaAttuale: 40, EtaUscita: 67, AnniContributi: 15, RALMedia: 30000}, tab())
	if err != nil {
		t.Fatalf("errore inatteso: %v", err)
	}
	if r.AnniFuturi != 27 || r.AnniContributiTotali != 42 {
		t.Errorf("anni inattesi: futuri %.1f totali %.1f", r.AnniFuturi, r.AnniContributiTotali)
	}
	if !vicino(r.Montante, 30000*0.33*42, 1e-6) {
		t.Errorf("montante: atteso %.2f, ottenuto %.2f", 30000*0.33*42, r.Montante)
	}
	if !vicino(r.LordaAnnua, 21000, 1e-6) || !vicino(r.NettaAnnua, 16170, 1e-6) {
		t.Errorf("pensione lorda/netta inattese: %.2f / %.2f", r.LordaAnnua, r.NettaAnnua)
	}
	if !vicino(r.NettaMensile, 16170.0/13, 1e-6) {
		t.Errorf("netta mensile: attesa %.2f, ottenuta %.2f", 16170.0/13, r.NettaMensile)
	}
}

func TestPensione_EtaFrazionaria(t *testing.T) {
	r, err := Pensione(models.ParametriPensione{EtaAttuale: 40.5, EtaUscita: 67, AnniContributi: 10, RALMedia: 30000}, tab())
	if err != nil {
		t.Fatalf("errore inatteso: %v", err)
	}
	if r.AnniFuturi != 26.5 || r.AnniContributiTotali != 36.5 {
		t.Errorf("anni inattesi: futuri %.1f totali %.1f", r.AnniFuturi, r.AnniContributiTotali)
	}
}

func TestPensione_Personalizzata(t *testing.T) {
	r, _ := Pensione(models.ParametriPensione{
		EtaAttuale: 50, EtaUscita: 60, RALMedia: 40000,
		AliquotaContributiva: 30, CoeffSostituzione: 60, AliquotaMedia: 25,
	}, tab())
	if !vicino(r.LordaAnnua, 24000, 1e-6) || !vicino(r.NettaAnnua, 18000, 1e-6) {
		t.Errorf("pensione personalizzata inattesa: %.2f / %.2f", r.LordaAnnua, r.NettaAnnua)
	}
	if !vicino(r.Montante, 40000*0.30*10, 1e-6) {
		t.Errorf("montante inatteso: %.2f", r.Montante)
	}
}

func TestPensione_NonValido(t *testing.T) {
	casi := []struct {
		p     models.ParametriPensione
		campo string
	}{
		{models.ParametriPensione{EtaAttuale: 0, EtaUscita: 67, RALMedia: 30000}, "eta_attuale"},
		{models.ParametriPensione{EtaAttuale: 67, EtaUscita: 67, RALMedia: 30000}, "eta_uscita"},
		{models.ParametriPensione{EtaAttuale: 40, EtaUscita: 67}, "ral_media"},
	}
	for _, c := range casi {
		r, err := Pensione(c.p, tab())
		var ve *ValidationError
		if r != nil || !errors.As(err, &ve) || ve.Campo != c.campo {
			t.Errorf("%+v: atteso errore su %s, ottenuto %v", c.p, c.campo, err)
		}
	}
}
