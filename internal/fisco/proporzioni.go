package fisco

// FattorePartTime is the part-time share in [0,1]; full-time contracts
// always count as 1 whatever the percentage says.
func FattorePartTime(partTime bool, percentuale float64) float64 {
	if !partTime {
		return 1
	}
	return clamp01(percentuale / 100)
}

// Quota is min(1, num/den) bounded to [0,1]; a non-positive den gives 0.
func Quota(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	return clamp01(num / den)
}

// LordoFascia prices the hours of one overtime band at the hourly rate
// raised by maggiorazione percent.
func LordoFascia(ore, pagaOraria, maggiorazione float64) float64 {
	if ore <= 0 || pagaOraria <= 0 {
		return 0
	}
	return ore * pagaOraria * Coefficiente(maggiorazione)
}

func Coefficiente(maggiorazione float64) float64 {
	return 1 + maggiorazione/100
}

func clamp01(v float64) float64 {
	return min(1, max(0, v))
}
