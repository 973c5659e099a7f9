package booking

// RankCandidates orders the candidate pool for evaluation: the default
// employee (when present in the pool) first, then the rest in the exact order
// the caller supplied. Pure function; never consults availability and never
// depends on map iteration order, so identical inputs always rank the same.
func RankCandidates(employeeIDs []string, defaultEmployeeID string) []string {
	if len(employeeIDs) == 0 {
		return nil
	}

	ranked := make([]string, 0, len(employeeIDs))
	if defaultEmployeeID != "" {
		for _, id := range employeeIDs {
			if id == defaultEmployeeID {
				ranked = append(ranked, id)
				break
			}
		}
	}
	for _, id := range employeeIDs {
		if id != defaultEmployeeID {
			ranked = append(ranked, id)
		}
	}
	return ranked
}
