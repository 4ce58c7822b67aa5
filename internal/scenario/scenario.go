// Package scenario re-runs the projection pipeline across a list of
// multiplier scenarios applied to one input field, producing an
// order-preserving comparison table. Scenarios are independent, so they
// are evaluated concurrently; a failure in one entry never aborts the
// rest of the batch.
package scenario

import (
	"sync"

	"github.com/iwvelando/proforma-forecast/internal/inputs"
	"github.com/iwvelando/proforma-forecast/internal/metrics"
	"github.com/iwvelando/proforma-forecast/internal/projection"
	"go.uber.org/zap"
)

// Scalable fields accepted by Run. Each names one numeric assumption the
// multiplier applies to.
const (
	FieldPPAPrice       = "ppaPrice"
	FieldMerchantPrice  = "merchantPrice"
	FieldCapacityFactor = "capacityFactor"
	FieldCapEx          = "capex"
	FieldUtilization    = "utilization"
	FieldBillingRate    = "billingRate"
)

// Result pairs one multiplier with its computed metrics. Err is set when
// the scenario failed to build or its IRR could not be solved; Summary is
// only meaningful when Err is nil.
type Result struct {
	Multiplier float64
	Summary    metrics.SummaryTotals
	EquityIRR  float64
	Err        error
}

// Set is an ordered sequence of results, one per configured multiplier,
// preserving input order.
type Set []Result

// Runner evaluates multiplier scenarios against a base input record.
type Runner struct {
	logger  *zap.Logger
	builder *projection.Builder
}

// NewRunner creates a scenario runner with the given logger. If logger is
// nil, a no-op logger is used to prevent panics.
func NewRunner(logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{logger: logger, builder: projection.NewBuilder(logger)}
}

// Run applies each multiplier to the named field of the base record and
// runs the full pipeline per scenario. Every scenario gets its own copy
// of the inputs; nothing is shared between evaluations.
func (r *Runner) Run(base inputs.ProjectInputs, field string, multipliers []float64) Set {
	results := make(Set, len(multipliers))

	var wg sync.WaitGroup
	for i, multiplier := range multipliers {
		wg.Add(1)
		go func(i int, multiplier float64) {
			defer wg.Done()
			results[i] = r.runOne(base, field, multiplier)
		}(i, multiplier)
	}
	wg.Wait()

	return results
}

// Run is the package-level convenience form without logging.
func Run(base inputs.ProjectInputs, field string, multipliers []float64) Set {
	return NewRunner(nil).Run(base, field, multipliers)
}

func (r *Runner) runOne(base inputs.ProjectInputs, field string, multiplier float64) Result {
	result := Result{Multiplier: multiplier}

	scaled, err := applyMultiplier(base, field, multiplier)
	if err != nil {
		result.Err = err
		return result
	}

	schedule, fin, err := r.builder.BuildSchedule(scaled)
	if err != nil {
		r.logger.Debug("scenario failed to build",
			zap.String("op", "scenario.runOne"),
			zap.String("field", field),
			zap.Float64("multiplier", multiplier),
			zap.Error(err),
		)
		result.Err = err
		return result
	}

	result.Summary = metrics.Summarize(schedule)
	rate, err := metrics.EquityIRR(schedule, fin)
	if err != nil {
		result.Err = err
		return result
	}
	result.EquityIRR = rate
	return result
}

// applyMultiplier returns a copy of the base record with the named field
// scaled. Records are value types, so the copy is free and the base is
// never touched.
func applyMultiplier(base inputs.ProjectInputs, field string, multiplier float64) (inputs.ProjectInputs, error) {
	switch record := base.(type) {
	case inputs.SolarInputs:
		return applySolarMultiplier(record, field, multiplier)
	case inputs.ConsultingInputs:
		return applyConsultingMultiplier(record, field, multiplier)
	default:
		return nil, &projection.InvalidAssumptionError{
			Field:  field,
			Reason: "no scenario support for sector " + string(base.Sector()),
		}
	}
}

func applySolarMultiplier(record inputs.SolarInputs, field string, multiplier float64) (inputs.ProjectInputs, error) {
	switch field {
	case FieldPPAPrice:
		record.PPAPrice *= multiplier
	case FieldMerchantPrice:
		record.MerchantPrice *= multiplier
	case FieldCapacityFactor:
		record.CapacityFactor *= multiplier
	case FieldCapEx:
		record.ModuleCostPerKW *= multiplier
		record.InverterCostPerKW *= multiplier
		record.BOSCostPerKW *= multiplier
		record.InterconnectCost *= multiplier
		record.LandCost *= multiplier
		record.DevelopmentCost *= multiplier
	default:
		return nil, &projection.InvalidAssumptionError{
			Field:  field,
			Reason: "not a scalable solar field",
		}
	}
	return record, nil
}

func applyConsultingMultiplier(record inputs.ConsultingInputs, field string, multiplier float64) (inputs.ProjectInputs, error) {
	switch field {
	case FieldUtilization:
		record.Partners.Utilization *= multiplier
		record.Managers.Utilization *= multiplier
		record.Analysts.Utilization *= multiplier
	case FieldBillingRate:
		record.Partners.BillingRate *= multiplier
		record.Managers.BillingRate *= multiplier
		record.Analysts.BillingRate *= multiplier
	default:
		return nil, &projection.InvalidAssumptionError{
			Field:  field,
			Reason: "not a scalable consulting field",
		}
	}
	return record, nil
}
