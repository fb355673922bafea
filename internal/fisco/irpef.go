package fisco

// IRPEFLorda applies the progressive brackets to a taxable base. Each
// bracket taxes only the slice of the base that falls inside it; the
// result is continuous and non-decreasing in base.
func IRPEFLorda(base float64, scaglioni []Scaglione) float64 {
	if base <= 0 {
		return 0
	}

	imposta := 0.0
	residuo := base
	precedente := 0.0
	for _, s := range scaglioni {
		if residuo <= 0 {
			break
		}
		fetta := residuo
		if !s.Illimitato() {
			fetta = min(residuo, s.Limite-precedente)
			precedente = s.Limite
		}
		if fetta > 0 {
			imposta += fetta * s.Aliquota
			residuo -= fetta
		}
	}
	return imposta
}

// AliquotaMarginale returns the rate of the bracket containing base.
func AliquotaMarginale(base float64, scaglioni []Scaglione) float64 {
	for _, s := range scaglioni {
		if s.Illimitato() || base <= s.Limite {
			return s.Aliquota
		}
	}
	return 0
}
