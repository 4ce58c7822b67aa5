// Package constants provides shared constants for the proforma-forecast application.
package constants

// Sector names accepted across the application.
const (
	SectorSolar      = "solar"
	SectorConsulting = "consulting"
)

// Unit conversion constants
const (
	// HoursPerYear is the number of hours in a (non-leap) year, used for
	// converting capacity to annual energy production.
	HoursPerYear = 8760.0

	// KWPerMW is the number of kilowatts in a megawatt
	KWPerMW = 1000.0

	// DaysPerYear is used for converting working-capital day counts to
	// annual balance fractions.
	DaysPerYear = 365.0

	// AnnualBillableHours is the standard available hours per staff member
	// per year (40 hours over 52 weeks).
	AnnualBillableHours = 2080.0
)

// Financial constants
const (
	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Forecast horizon defaults
const (
	// DefaultSolarHorizonYears is the default operating life analyzed for a
	// solar project.
	DefaultSolarHorizonYears = 25

	// DefaultConsultingHorizonYears is the default analysis period for a
	// professional-services firm.
	DefaultConsultingHorizonYears = 5
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default assumptions file name
	DefaultConfigFile = "assumptions.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (256 KB)
	DefaultMaxBodySizeBytes int64 = 256 * 1024
)
