package projection

import (
	"fmt"

	"github.com/iwvelando/proforma-forecast/internal/inputs"
	"go.uber.org/zap"
)

// Builder unrolls assumption records into forecast schedules. It carries
// only a logger; building holds no state between runs.
type Builder struct {
	logger *zap.Logger
}

// NewBuilder creates a schedule builder with the given logger. If logger
// is nil, a no-op logger is used to prevent panics.
func NewBuilder(logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{logger: logger}
}

// BuildSchedule transforms one assumption record into its forecast
// schedule and financing structure. Computationally unusable inputs fail
// with *InvalidAssumptionError naming the offending field.
func (b *Builder) BuildSchedule(in inputs.ProjectInputs) (Schedule, FinancingStructure, error) {
	switch record := in.(type) {
	case inputs.SolarInputs:
		return b.buildSolar(record)
	case inputs.ConsultingInputs:
		return b.buildConsulting(record)
	default:
		return nil, FinancingStructure{}, fmt.Errorf("no projection engine for sector %q", in.Sector())
	}
}

// BuildSchedule is the package-level convenience form without logging.
func BuildSchedule(in inputs.ProjectInputs) (Schedule, FinancingStructure, error) {
	return NewBuilder(nil).BuildSchedule(in)
}
