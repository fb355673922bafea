package fisco

// AliquotaINPS selects the employee contribution rate.
func AliquotaINPS(forfettario bool, a AliquoteINPS) float64 {
	if forfettario {
		return a.Forfettaria
	}
	return a.Ordinaria
}

// Contributi computes social-security contributions on a gross amount.
func Contributi(lordo float64, forfettario bool, a AliquoteINPS) float64 {
	if lordo <= 0 {
		return 0
	}
	return lordo * AliquotaINPS(forfettario, a)
}
