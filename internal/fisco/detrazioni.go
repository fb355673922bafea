package fisco

// CarichiFamiliari is the subset of the personal situation that drives the
// family deductions. Counts are expected already normalized.
type CarichiFamiliari struct {
	ConConiuge    bool
	NumeroFigli   int
	FigliUnder3   int
	FigliDisabili int
	AltriCarichi  bool
}

// DetrazioneLavoro is the employment deduction, piecewise linear in base.
func DetrazioneLavoro(base float64, p ParametriLavoro) float64 {
	switch {
	case base <= 0:
		return 0
	case base <= p.SogliaPiena:
		return p.ImportoPieno
	case base <= p.SogliaIntermedia:
		return p.BaseIntermedia + p.VariabileIntermedia*(p.SogliaIntermedia-base)/(p.SogliaIntermedia-p.SogliaPiena)
	case base <= p.SogliaAzzeramento:
		return p.BaseIntermedia * (p.SogliaAzzeramento - base) / (p.SogliaAzzeramento - p.SogliaIntermedia)
	default:
		return 0
	}
}

// DettaglioFamiliari breaks the family deduction into its terms.
type DettaglioFamiliari struct {
	Coniuge      float64 `json:"coniuge"`
	Figli        float64 `json:"figli"`
	AltriCarichi float64 `json:"altri_carichi"`
}

func (d DettaglioFamiliari) Totale() float64 {
	return d.Coniuge + d.Figli + d.AltriCarichi
}

// DetrazioniFamiliari computes the spouse, children and other-dependents
// deductions for a taxable base.
func DetrazioniFamiliari(base float64, c CarichiFamiliari, d Detrazioni) DettaglioFamiliari {
	var out DettaglioFamiliari
	if c.ConConiuge {
		out.Coniuge = DetrazioneConiuge(base, d.Coniuge)
	}
	out.Figli = DetrazioneFigli(base, c.NumeroFigli, c.FigliUnder3, c.FigliDisabili, d.Figli)
	if c.AltriCarichi && base <= d.AltriCarichi.SogliaAzzeramento {
		out.AltriCarichi = d.AltriCarichi.Importo
	}
	return out
}

func DetrazioneConiuge(base float64, p ParametriConiuge) float64 {
	if base > p.SogliaAzzeramento {
		return 0
	}
	switch {
	case base <= p.SogliaPiena:
		return p.ImportoPieno
	case base <= p.SogliaIntermedia:
		calo := p.ImportoPieno - p.ImportoIntermedio
		return p.ImportoPieno - (base-p.SogliaPiena)*calo/(p.SogliaIntermedia-p.SogliaPiena)
	default:
		v := p.ImportoIntermedio - (base-p.SogliaIntermedia)*p.ImportoIntermedio/(p.SogliaAzzeramento-p.SogliaIntermedia)
		return max(0, v)
	}
}

// DetrazioneFigli counts every child in exactly one class: under-3 first,
// then disabled among the rest, then ordinary.
func DetrazioneFigli(base float64, figli, under3, disabili int, p ParametriFigli) float64 {
	if figli <= 0 || base > p.SogliaAzzeramento {
		return 0
	}
	under3 = min(max(under3, 0), figli)
	disabili = min(max(disabili, 0), figli-under3)

	importo := float64(figli)*p.ImportoBase +
		float64(under3)*p.MaggiorazioneUnder3 +
		float64(disabili)*p.MaggiorazioneDisabile

	fattore := 1.0
	if base > p.SogliaPiena {
		fattore = max(0, 1-(base-p.SogliaPiena)/(p.SogliaAzzeramento-p.SogliaPiena))
	}
	return importo * fattore
}
