package scenari

import (
	"time"

	"stipendionetto/internal/fisco"
	"stipendionetto/internal/models"
)

// Ferie computes the vacation days accrued in the period and what remains
// after the days already taken.
func Ferie(p models.ParametriFerie, t *fisco.Tabelle) (*models.RisultatoFerie, error) {
	periodo := p.GiorniPeriodo
	if periodo == 0 {
		periodo = t.Ferie.GiorniPeriodo
	}
	if !positivo(p.GiorniLavorati) || !positivo(periodo) {
		campo := "giorni_lavorati"
		if positivo(p.GiorniLavorati) {
			campo = "giorni_periodo"
		}
		return nil, nonValido(campo, "Inserisci giorni lavorati e giorni di periodo validi.")
	}

	monte := p.MonteAnnuale
	if !positivo(monte) {
		monte = t.Ferie.MonteAnnuale
	}
	giorniSettimana := p.GiorniSettimana
	if giorniSettimana <= 0 {
		giorniSettimana = t.Ferie.GiorniSettimana
	}
	anno := p.AnnoRiferimento
	if anno <= 0 {
		anno = time.Now().Year()
	}

	fattore := fisco.FattorePartTime(p.PartTime, percentualePartTime(p.PartTime, p.PercentualePartTime))
	annue := monte * fattore
	quota := fisco.Quota(p.GiorniLavorati, periodo)
	maturati := annue * quota
	goduti := max(0, p.GiorniGoduti)
	residui := max(0, maturati-goduti)
	oreMaturate := maturati * t.Ferie.OrePerGiorno
	oreResidue := residui * t.Ferie.OrePerGiorno
	if !finiti(annue, maturati, residui, oreMaturate, oreResidue) {
		return nil, nonValido("monte_annuale", messaggioFuoriScala)
	}

	return &models.RisultatoFerie{
		AnnoRiferimento:     anno,
		GiorniSettimana:     giorniSettimana,
		FattorePartTime:     fattore,
		FerieAnnueEffettive: annue,
		QuotaPeriodo:        quota,
		GiorniMaturati:      maturati,
		GiorniGoduti:        goduti,
		GiorniResidui:       residui,
		OreMaturate:         oreMaturate,
		OreResidue:          oreResidue,
	}, nil
}
