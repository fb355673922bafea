package scenari

import (
	"stipendionetto/internal/fisco"
	"stipendionetto/internal/models"
)

const approssimazioneAliquotaMedia = "Imposta stimata con aliquota media fissa, senza scaglioni né conguaglio annuale."

// Tredicesima estimates the thirteenth-month payment accrued so far. Tax is
// a flat average rate, not the bracket schedule.
func Tredicesima(p models.ParametriTredicesima, t *fisco.Tabelle) (*models.RisultatoTredicesima, error) {
	if !positivo(p.LordoMensile) {
		return nil, nonValido("lordo_mensile", "Inserisci un lordo mensile di riferimento valido.")
	}
	mesiTotali := p.MesiTotali
	if mesiTotali == 0 {
		mesiTotali = t.Tredicesima.MesiTotali
	}
	if !positivo(p.MesiMaturati) || !positivo(mesiTotali) {
		campo := "mesi_maturati"
		if positivo(p.MesiMaturati) {
			campo = "mesi_totali"
		}
		return nil, nonValido(campo, "Inserisci mesi maturati e mesi totali validi.")
	}

	fattore := fisco.FattorePartTime(p.PartTime, percentualePartTime(p.PartTime, p.PercentualePartTime))
	quota := fisco.Quota(p.MesiMaturati, mesiTotali)
	lordo := p.LordoMensile * fattore * quota

	contributi := fisco.Contributi(lordo, p.RegimeForfettario, t.INPS)
	imponibile := max(0, lordo-contributi)
	aliquota := t.Tredicesima.AliquotaMedia
	irpefLorda := imponibile * aliquota
	detrazione := detrazioneTredicesima(imponibile, t.Tredicesima.Detrazioni)
	irpefNetta := max(0, irpefLorda-detrazione)
	netto := lordo - contributi - irpefNetta

	return &models.RisultatoTredicesima{
		AnnoFiscale:     t.Anno,
		FattorePartTime: fattore,
		QuotaMesi:       quota,
		Lordo:           lordo,
		Contributi:      contributi,
		Imponibile:      imponibile,
		AliquotaMedia:   aliquota,
		IRPEFLorda:      irpefLorda,
		Detrazione:      detrazione,
		IRPEFNetta:      irpefNetta,
		Netto:           netto,
		Approssimazione: approssimazioneAliquotaMedia,
	}, nil
}

// detrazioneTredicesima returns the amount of the first tier whose limit
// covers the taxable amount.
func detrazioneTredicesima(imponibile float64, fasce []fisco.FasciaDetrazione) float64 {
	for _, f := range fasce {
		if imponibile <= f.Limite {
			return f.Importo
		}
	}
	return 0
}
