package report

import (
	"fmt"

	"stipendionetto/internal/models"
)

type Riga struct {
	Voce     string
	Valore   string
	Evidenza bool
}

type Sezione struct {
	Titolo string
	Righe  []Riga
}

// Prospetto is the printable summary of one calculation.
type Prospetto struct {
	Titolo      string
	AnnoFiscale int
	Sezioni     []Sezione
	Note        []string
}

const notaStima = "Stima orientativa basata su regole semplificate: non sostituisce la busta paga né il conguaglio fiscale."

func Stipendio(r *models.RisultatoStipendio) Prospetto {
	return Prospetto{
		Titolo:      "Stipendio netto",
		AnnoFiscale: r.AnnoFiscale,
		Sezioni: []Sezione{
			{Titolo: "Retribuzione", Righe: []Riga{
				{Voce: "RAL", Valore: Euro(r.RAL)},
				{Voce: "Mensilità", Valore: fmt.Sprintf("%d", r.Mensilita)},
				{Voce: "Fattore part-time", Valore: Percentuale(r.FattorePartTime)},
			}},
			{Titolo: "Contributi e imposte", Righe: []Riga{
				{Voce: "Contributi INPS (" + Percentuale(r.AliquotaINPS) + ")", Valore: Euro(r.Contributi)},
				{Voce: "Imponibile IRPEF", Valore: Euro(r.Imponibile)},
				{Voce: "IRPEF lorda", Valore: Euro(r.IRPEFLorda)},
				{Voce: "Aliquota marginale", Valore: Percentuale(r.AliquotaMarginale)},
				{Voce: "Detrazione lavoro dipendente", Valore: Euro(r.DetrazioneLavoro)},
				{Voce: "Detrazione coniuge", Valore: Euro(r.DetrazioneConiuge)},
				{Voce: "Detrazione figli", Valore: Euro(r.DetrazioneFigli)},
				{Voce: "Detrazione altri familiari", Valore: Euro(r.DetrazioneAltri)},
				{Voce: "IRPEF netta", Valore: Euro(r.IRPEFNetta)},
				{Voce: "Addizionale regionale", Valore: Euro(r.AddizionaleRegionale)},
				{Voce: "Addizionale comunale", Valore: Euro(r.AddizionaleComunale)},
			}},
			{Titolo: "Netto", Righe: []Riga{
				{Voce: "Netto annuo", Valore: Euro(r.NettoAnnuo), Evidenza: true},
				{Voce: "Netto mensile", Valore: Euro(r.NettoMensile), Evidenza: true},
				{Voce: "Aliquota effettiva", Valore: Percentuale(r.AliquotaEffettiva)},
			}},
		},
		Note: []string{notaStima},
	}
}

func Ferie(r *models.RisultatoFerie) Prospetto {
	return Prospetto{
		Titolo:      fmt.Sprintf("Ferie maturate %d", r.AnnoRiferimento),
		AnnoFiscale: r.AnnoRiferimento,
		Sezioni: []Sezione{
			{Titolo: "Maturazione", Righe: []Riga{
				{Voce: "Ferie annue effettive", Valore: Giorni(r.FerieAnnueEffettive) + " gg"},
				{Voce: "Quota del periodo", Valore: Percentuale(r.QuotaPeriodo)},
				{Voce: "Giorni maturati", Valore: Giorni(r.GiorniMaturati) + " gg"},
				{Voce: "Giorni già goduti", Valore: Giorni(r.GiorniGoduti) + " gg"},
			}},
			{Titolo: "Residuo", Righe: []Riga{
				{Voce: "Giorni residui", Valore: Giorni(r.GiorniResidui) + " gg", Evidenza: true},
				{Voce: "Ore residue", Valore: Giorni(r.OreResidue) + " h", Evidenza: true},
			}},
		},
		Note: []string{fmt.Sprintf("Settimana lavorativa di %d giorni.", r.GiorniSettimana)},
	}
}

func Tredicesima(r *models.RisultatoTredicesima) Prospetto {
	return Prospetto{
		Titolo:      "Tredicesima",
		AnnoFiscale: r.AnnoFiscale,
		Sezioni: []Sezione{
			{Titolo: "Maturazione", Righe: []Riga{
				{Voce: "Quota mesi", Valore: Percentuale(r.QuotaMesi)},
				{Voce: "Lordo", Valore: Euro(r.Lordo)},
				{Voce: "Contributi", Valore: Euro(r.Contributi)},
				{Voce: "Imponibile", Valore: Euro(r.Imponibile)},
			}},
			{Titolo: "Imposta", Righe: []Riga{
				{Voce: "IRPEF (" + Percentuale(r.AliquotaMedia) + ")", Valore: Euro(r.IRPEFLorda)},
				{Voce: "Detrazione", Valore: Euro(r.Detrazione)},
				{Voce: "IRPEF netta", Valore: Euro(r.IRPEFNetta)},
				{Voce: "Netto", Valore: Euro(r.Netto), Evidenza: true},
			}},
		},
		Note: []string{r.Approssimazione, notaStima},
	}
}

func Straordinari(r *models.RisultatoStraordinari) Prospetto {
	fasce := make([]Riga, 0, len(r.Fasce))
	for _, f := range r.Fasce {
		if f.Ore <= 0 {
			continue
		}
		fasce = append(fasce, Riga{
			Voce:   fmt.Sprintf("%s: %s h +%s", f.Nome, Giorni(f.Ore), Percentuale(f.Maggiorazione/100)),
			Valore: Euro(f.Lordo),
		})
	}
	return Prospetto{
		Titolo:      "Straordinari",
		AnnoFiscale: r.AnnoFiscale,
		Sezioni: []Sezione{
			{Titolo: "Fasce", Righe: fasce},
			{Titolo: "Netto", Righe: []Riga{
				{Voce: "Lordo", Valore: Euro(r.Lordo)},
				{Voce: "Contributi", Valore: Euro(r.Contributi)},
				{Voce: "IRPEF (" + Percentuale(r.AliquotaMedia) + ")", Valore: Euro(r.IRPEF)},
				{Voce: "Netto", Valore: Euro(r.Netto), Evidenza: true},
				{Voce: "Netto per ora", Valore: Euro(r.NettoOrario)},
			}},
		},
		Note: []string{r.Approssimazione, notaStima},
	}
}

func Pensione(r *models.RisultatoPensione) Prospetto {
	return Prospetto{
		Titolo:      "Pensione stimata",
		AnnoFiscale: r.AnnoFiscale,
		Sezioni: []Sezione{
			{Titolo: "Contribuzione", Righe: []Riga{
				{Voce: "Anni futuri", Valore: Giorni(r.AnniFuturi)},
				{Voce: "Anni di contributi totali", Valore: Giorni(r.AnniContributiTotali)},
				{Voce: "Aliquota contributiva", Valore: Percentuale(r.AliquotaContributiva)},
				{Voce: "Montante indicativo", Valore: Euro(r.Montante)},
			}},
			{Titolo: "Pensione", Righe: []Riga{
				{Voce: "Coefficiente di sostituzione", Valore: Percentuale(r.CoeffSostituzione)},
				{Voce: "Lorda annua", Valore: Euro(r.LordaAnnua)},
				{Voce: "Netta annua", Valore: Euro(r.NettaAnnua)},
				{Voce: "Netta mensile", Valore: Euro(r.NettaMensile), Evidenza: true},
			}},
		},
		Note: []string{r.Approssimazione, notaStima},
	}
}
