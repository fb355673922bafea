package scenari

import (
	"stipendionetto/internal/fisco"
	"stipendionetto/internal/models"
)

const approssimazionePensione = "Stima con coefficiente di sostituzione fisso e aliquota media; il montante è solo indicativo."

// Pensione projects the contribution capital and the pension from the
// average final salary. Rates left at zero fall back to the table.
func Pensione(p models.ParametriPensione, t *fisco.Tabelle) (*models.RisultatoPensione, error) {
	if !positivo(p.EtaAttuale) || !(p.EtaUscita > p.EtaAttuale) {
		campo := "eta_uscita"
		if !positivo(p.EtaAttuale) {
			campo = "eta_attuale"
		}
		return nil, nonValido(campo, "Controlla età attuale e età di uscita (devono avere senso).")
	}
	if !positivo(p.RALMedia) {
		return nil, nonValido("ral_media", "Inserisci una retribuzione lorda annua media valida.")
	}

	contributiva := percentualeO(p.AliquotaContributiva, t.Pensione.AliquotaContributiva)
	sostituzione := percentualeO(p.CoeffSostituzione, t.Pensione.CoeffSostituzione)
	aliquota := percentualeO(p.AliquotaMedia, t.Pensione.AliquotaMedia)

	futuri := max(0, p.EtaUscita-p.EtaAttuale)
	totali := max(0, p.AnniContributi) + futuri

	lorda := p.RALMedia * sostituzione
	netta := lorda * (1 - aliquota)
	montante := p.RALMedia * contributiva * totali
	if !finiti(totali, lorda, netta, montante) {
		return nil, nonValido("ral_media", messaggioFuoriScala)
	}

	return &models.RisultatoPensione{
		AnnoFiscale:          t.Anno,
		AnniFuturi:           futuri,
		AnniContributiTotali: totali,
		AliquotaContributiva: contributiva,
		CoeffSostituzione:    sostituzione,
		AliquotaMedia:        aliquota,
		Montante:             montante,
		LordaAnnua:           lorda,
		NettaAnnua:           netta,
		NettaMensile:         netta / t.Pensione.Mensilita,
		Approssimazione:      approssimazionePensione,
	}, nil
}

// percentualeO converts a percentage to a fraction, or returns def when the
// percentage is not set.
func percentualeO(perc, def float64) float64 {
	if !positivo(perc) {
		return def
	}
	return min(perc, 100) / 100
}
