package validator

import "btt/internal/domain"

// Policy decides how discrepancies are reported
type Policy struct {
	Reordered     domain.Severity // Severity of Reordered entries; off suppresses them
	DetectRenames bool            // Pair a Missing and an Extra at the same position into one Renamed entry
}

// DefaultPolicy fails on reordering and reports renames as Missing plus Extra
func DefaultPolicy() Policy {
	return Policy{
		Reordered:     domain.SeverityError,
		DetectRenames: false,
	}
}

func (p Policy) withDefaults() Policy {
	if p.Reordered == "" {
		p.Reordered = domain.SeverityError
	}
	return p
}
