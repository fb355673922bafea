package models

import "time"

type SituazionePersonale struct {
	ConConiuge          bool    `json:"con_coniuge"`
	NumeroFigli         int     `json:"numero_figli"`
	FigliUnder3         int     `json:"figli_under3"`
	FigliDisabili       int     `json:"figli_disabili"`
	AltriCarichi        bool    `json:"altri_carichi"`
	RegimeForfettario   bool    `json:"regime_forfettario"`
	PartTime            bool    `json:"part_time"`
	PercentualePartTime float64 `json:"percentuale_part_time"`
	Tredicesima         bool    `json:"tredicesima"`
}

// Normalizza clamps the children counts: negatives become 0 and the
// under-3 and disabled counts never exceed the number of children.
func (s SituazionePersonale) Normalizza() SituazionePersonale {
	s.NumeroFigli = max(s.NumeroFigli, 0)
	s.FigliUnder3 = min(max(s.FigliUnder3, 0), s.NumeroFigli)
	s.FigliDisabili = min(max(s.FigliDisabili, 0), s.NumeroFigli)
	if s.PercentualePartTime < 0 {
		s.PercentualePartTime = 0
	}
	if s.PercentualePartTime > 100 {
		s.PercentualePartTime = 100
	}
	return s
}

type ParametriStipendio struct {
	Anno         int     `json:"anno,omitempty"`
	LordoMensile float64 `json:"lordo_mensile"`
	SituazionePersonale
}

type ParametriFerie struct {
	Anno                int     `json:"anno,omitempty"`
	AnnoRiferimento     int     `json:"anno_riferimento,omitempty"`
	MonteAnnuale        float64 `json:"monte_annuale"`
	PartTime            bool    `json:"part_time"`
	PercentualePartTime float64 `json:"percentuale_part_time"`
	GiorniSettimana     int     `json:"giorni_settimana"`
	GiorniLavorati      float64 `json:"giorni_lavorati"`
	GiorniPeriodo       float64 `json:"giorni_periodo"`
	GiorniGoduti        float64 `json:"giorni_goduti"`
}

type ParametriTredicesima struct {
	Anno                int     `json:"anno,omitempty"`
	LordoMensile        float64 `json:"lordo_mensile"`
	MesiMaturati        float64 `json:"mesi_maturati"`
	MesiTotali          float64 `json:"mesi_totali"`
	PartTime            bool    `json:"part_time"`
	PercentualePartTime float64 `json:"percentuale_part_time"`
	RegimeForfettario   bool    `json:"regime_forfettario"`
}

type ParametriStraordinari struct {
	Anno                  int     `json:"anno,omitempty"`
	PagaOraria            float64 `json:"paga_oraria"`
	OreFasciaA            float64 `json:"ore_fascia_a"`
	MaggiorazioneA        float64 `json:"maggiorazione_a"`
	OreFasciaB            float64 `json:"ore_fascia_b"`
	MaggiorazioneB        float64 `json:"maggiorazione_b"`
	OreNotturne           float64 `json:"ore_notturne"`
	MaggiorazioneNotturna float64 `json:"maggiorazione_notturna"`
	RegimeForfettario     bool    `json:"regime_forfettario"`
	AliquotaMedia         float64 `json:"aliquota_media"` // percentuale, 0 = predefinita
}

type ParametriPensione struct {
	Anno                 int     `json:"anno,omitempty"`
	EtaAttuale           float64 `json:"eta_attuale"`
	EtaUscita            float64 `json:"eta_uscita"`
	AnniContributi       float64 `json:"anni_contributi"`
	RALMedia             float64 `json:"ral_media"`
	AliquotaContributiva float64 `json:"aliquota_contributiva"` // percentuale
	CoeffSostituzione    float64 `json:"coeff_sostituzione"`    // percentuale
	AliquotaMedia        float64 `json:"aliquota_media"`        // percentuale
}

type RisultatoStipendio struct {
	AnnoFiscale          int     `json:"anno_fiscale"`
	Mensilita            int     `json:"mensilita"`
	FattorePartTime      float64 `json:"fattore_part_time"`
	RAL                  float64 `json:"ral"`
	AliquotaINPS         float64 `json:"aliquota_inps"`
	Contributi           float64 `json:"contributi"`
	Imponibile           float64 `json:"imponibile"`
	IRPEFLorda           float64 `json:"irpef_lorda"`
	AliquotaMarginale    float64 `json:"aliquota_marginale"`
	DetrazioneLavoro     float64 `json:"detrazione_lavoro"`
	DetrazioneConiuge    float64 `json:"detrazione_coniuge"`
	DetrazioneFigli      float64 `json:"detrazione_figli"`
	DetrazioneAltri      float64 `json:"detrazione_altri_carichi"`
	DetrazioniFamiliari  float64 `json:"detrazioni_familiari"`
	IRPEFNetta           float64 `json:"irpef_netta"`
	AddizionaleRegionale float64 `json:"addizionale_regionale"`
	AddizionaleComunale  float64 `json:"addizionale_comunale"`
	NettoAnnuo           float64 `json:"netto_annuo"`
	NettoMensile         float64 `json:"netto_mensile"`
	AliquotaEffettiva    float64 `json:"aliquota_effettiva"`
}

type RisultatoFerie struct {
	AnnoRiferimento     int     `json:"anno_riferimento"`
	GiorniSettimana     int     `json:"giorni_settimana"`
	FattorePartTime     float64 `json:"fattore_part_time"`
	FerieAnnueEffettive float64 `json:"ferie_annue_effettive"`
	QuotaPeriodo        float64 `json:"quota_periodo"`
	GiorniMaturati      float64 `json:"giorni_maturati"`
	GiorniGoduti        float64 `json:"giorni_goduti"`
	GiorniResidui       float64 `json:"giorni_residui"`
	OreMaturate         float64 `json:"ore_maturate"`
	OreResidue          float64 `json:"ore_residue"`
}

type RisultatoTredicesima struct {
	AnnoFiscale     int     `json:"anno_fiscale"`
	FattorePartTime float64 `json:"fattore_part_time"`
	QuotaMesi       float64 `json:"quota_mesi"`
	Lordo           float64 `json:"lordo"`
	Contributi      float64 `json:"contributi"`
	Imponibile      float64 `json:"imponibile"`
	AliquotaMedia   float64 `json:"aliquota_media"`
	IRPEFLorda      float64 `json:"irpef_lorda"`
	Detrazione      float64 `json:"detrazione"`
	IRPEFNetta      float64 `json:"irpef_netta"`
	Netto           float64 `json:"netto"`
	Approssimazione string  `json:"approssimazione"`
}

type FasciaStraordinari struct {
	Nome          string  `json:"nome"`
	Ore           float64 `json:"ore"`
	Maggiorazione float64 `json:"maggiorazione"`
	Coefficiente  float64 `json:"coefficiente"`
	Lordo         float64 `json:"lordo"`
}

type RisultatoStraordinari struct {
	AnnoFiscale     int                  `json:"anno_fiscale"`
	Fasce           []FasciaStraordinari `json:"fasce"`
	OreTotali       float64              `json:"ore_totali"`
	Lordo           float64              `json:"lordo"`
	Contributi      float64              `json:"contributi"`
	Imponibile      float64              `json:"imponibile"`
	AliquotaMedia   float64              `json:"aliquota_media"`
	IRPEF           float64              `json:"irpef"`
	Netto           float64              `json:"netto"`
	NettoOrario     float64              `json:"netto_orario"`
	Approssimazione string               `json:"approssimazione"`
}

type RisultatoPensione struct {
	AnnoFiscale          int     `json:"anno_fiscale"`
	AnniFuturi           float64 `json:"anni_futuri"`
	AnniContributiTotali float64 `json:"anni_contributi_totali"`
	AliquotaContributiva float64 `json:"aliquota_contributiva"`
	CoeffSostituzione    float64 `json:"coeff_sostituzione"`
	AliquotaMedia        float64 `json:"aliquota_media"`
	Montante             float64 `json:"montante"`
	LordaAnnua           float64 `json:"lorda_annua"`
	NettaAnnua           float64 `json:"netta_annua"`
	NettaMensile         float64 `json:"netta_mensile"`
	Approssimazione      string  `json:"approssimazione"`
}

// Calcolo is the envelope returned by the calculation endpoints.
type Calcolo struct {
	ID          string      `json:"id_calcolo"`
	Tipo        string      `json:"tipo"`
	AnnoFiscale int         `json:"anno_fiscale"`
	Eseguito    time.Time   `json:"eseguito"`
	Risultato   interface{} `json:"risultato"`
}

type ErroreCampo struct {
	Error string `json:"error"`
	Campo string `json:"campo,omitempty"`
}

type Statistiche struct {
	CalcoliTotali int64            `json:"calcoli_totali"`
	PerTipo       map[string]int64 `json:"per_tipo"`
}
