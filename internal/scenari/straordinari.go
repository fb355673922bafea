package scenari

import (
	"stipendionetto/internal/fisco"
	"stipendionetto/internal/models"
)

// Straordinari prices overtime hours across the three bands and estimates
// the net with the caller's average tax rate.
func Straordinari(p models.ParametriStraordinari, t *fisco.Tabelle) (*models.RisultatoStraordinari, error) {
	if !positivo(p.PagaOraria) {
		return nil, nonValido("paga_oraria", "Inserisci una paga oraria lorda valida.")
	}

	fasce := []models.FasciaStraordinari{
		fascia("fascia_a", p.OreFasciaA, p.MaggiorazioneA, p.PagaOraria),
		fascia("fascia_b", p.OreFasciaB, p.MaggiorazioneB, p.PagaOraria),
		fascia("notturno", p.OreNotturne, p.MaggiorazioneNotturna, p.PagaOraria),
	}
	var ore, lordo float64
	for _, f := range fasce {
		ore += f.Ore
		lordo += f.Lordo
	}
	if !positivo(ore) {
		return nil, nonValido("ore_fascia_a", "Inserisci almeno alcune ore di straordinario.")
	}

	aliquota := percentualeO(p.AliquotaMedia, t.Straordinari.AliquotaMedia)

	contributi := fisco.Contributi(lordo, p.RegimeForfettario, t.INPS)
	imponibile := max(0, lordo-contributi)
	irpef := imponibile * aliquota
	netto := lordo - contributi - irpef
	if !finiti(ore, lordo, netto, netto/ore) {
		return nil, nonValido("paga_oraria", messaggioFuoriScala)
	}

	return &models.RisultatoStraordinari{
		AnnoFiscale:     t.Anno,
		Fasce:           fasce,
		OreTotali:       ore,
		Lordo:           lordo,
		Contributi:      contributi,
		Imponibile:      imponibile,
		AliquotaMedia:   aliquota,
		IRPEF:           irpef,
		Netto:           netto,
		NettoOrario:     netto / ore,
		Approssimazione: approssimazioneAliquotaMedia,
	}, nil
}

func fascia(nome string, ore, maggiorazione, paga float64) models.FasciaStraordinari {
	ore = max(0, ore)
	maggiorazione = max(0, maggiorazione)
	return models.FasciaStraordinari{
		Nome:          nome,
		Ore:           ore,
		Maggiorazione: maggiorazione,
		Coefficiente:  fisco.Coefficiente(maggiorazione),
		Lordo:         fisco.LordoFascia(ore, paga, maggiorazione),
	}
}
