package scenari

import (
	"stipendionetto/internal/fisco"
	"stipendionetto/internal/models"
)

// Stipendio computes the annual and monthly net salary from the monthly
// gross, applying the progressive brackets, deductions and surcharges.
func Stipendio(p models.ParametriStipendio, t *fisco.Tabelle) (*models.RisultatoStipendio, error) {
	if !positivo(p.LordoMensile) {
		return nil, nonValido("lordo_mensile", "Inserisci un lordo mensile valido.")
	}
	s := p.SituazionePersonale.Normalizza()

	mensilita := 12
	if s.Tredicesima {
		mensilita = 13
	}
	fattore := fisco.FattorePartTime(s.PartTime, percentualePartTime(s.PartTime, s.PercentualePartTime))
	ral := p.LordoMensile * fattore * float64(mensilita)

	contributi := fisco.Contributi(ral, s.RegimeForfettario, t.INPS)
	imponibile := max(0, ral-contributi)

	irpefLorda := fisco.IRPEFLorda(imponibile, t.IRPEF.Scaglioni)
	lavoro := fisco.DetrazioneLavoro(imponibile, t.Detrazioni.Lavoro)
	familiari := fisco.DetrazioniFamiliari(imponibile, fisco.CarichiFamiliari{
		ConConiuge:    s.ConConiuge,
		NumeroFigli:   s.NumeroFigli,
		FigliUnder3:   s.FigliUnder3,
		FigliDisabili: s.FigliDisabili,
		AltriCarichi:  s.AltriCarichi,
	}, t.Detrazioni)
	irpefNetta := max(0, irpefLorda-lavoro-familiari.Totale())

	regionale := imponibile * t.Addizionali.Regionale
	comunale := imponibile * t.Addizionali.Comunale
	netto := ral - contributi - irpefNetta - regionale - comunale
	if !finiti(ral, netto, (ral-netto)/ral) {
		return nil, nonValido("lordo_mensile", messaggioFuoriScala)
	}

	return &models.RisultatoStipendio{
		AnnoFiscale:          t.Anno,
		Mensilita:            mensilita,
		FattorePartTime:      fattore,
		RAL:                  ral,
		AliquotaINPS:         fisco.AliquotaINPS(s.RegimeForfettario, t.INPS),
		Contributi:           contributi,
		Imponibile:           imponibile,
		IRPEFLorda:           irpefLorda,
		AliquotaMarginale:    fisco.AliquotaMarginale(imponibile, t.IRPEF.Scaglioni),
		DetrazioneLavoro:     lavoro,
		DetrazioneConiuge:    familiari.Coniuge,
		DetrazioneFigli:      familiari.Figli,
		DetrazioneAltri:      familiari.AltriCarichi,
		DetrazioniFamiliari:  familiari.Totale(),
		IRPEFNetta:           irpefNetta,
		AddizionaleRegionale: regionale,
		AddizionaleComunale:  comunale,
		NettoAnnuo:           netto,
		NettoMensile:         netto / float64(mensilita),
		AliquotaEffettiva:    (ral - netto) / ral,
	}, nil
}

// percentualePartTime treats a missing percentage on a part-time contract
// as full time.
func percentualePartTime(partTime bool, perc float64) float64 {
	if partTime && !positivo(perc) {
		return 100
	}
	return perc
}
