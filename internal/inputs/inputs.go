// Package inputs defines the immutable assumption records consumed by the
// projection engine. Each sector is a distinct record type behind the
// ProjectInputs interface; adding a sector means adding a record, not
// branching on strings inside the engine.
package inputs

import (
	"fmt"

	"github.com/iwvelando/proforma-forecast/pkg/constants"
)

// Sector identifies which engine a set of assumptions belongs to.
type Sector string

const (
	// SectorSolar is a utility-scale solar generation project.
	SectorSolar Sector = constants.SectorSolar

	// SectorConsulting is a professional-services firm.
	SectorConsulting Sector = constants.SectorConsulting
)

// ProjectInputs is the sector-tagged union of assumption records. Records
// are value types; callers that want a variation copy the record and
// change the copy.
type ProjectInputs interface {
	// Sector returns the tag identifying the record's engine.
	Sector() Sector

	// Horizon returns the number of operating years to project.
	Horizon() int
}

// ParseSector converts a sector name into a Sector tag.
func ParseSector(name string) (Sector, error) {
	switch name {
	case constants.SectorSolar:
		return SectorSolar, nil
	case constants.SectorConsulting:
		return SectorConsulting, nil
	default:
		return "", fmt.Errorf("unknown sector %q", name)
	}
}

// Default returns the canonical example record for the given sector. The
// defaults are internally consistent and satisfy all documented field
// ranges; they exist for demonstration and smoke testing.
func Default(sector Sector) (ProjectInputs, error) {
	switch sector {
	case SectorSolar:
		return DefaultSolar(), nil
	case SectorConsulting:
		return DefaultConsulting(), nil
	default:
		return nil, fmt.Errorf("unknown sector %q", sector)
	}
}
