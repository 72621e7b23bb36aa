// Package constants provides shared constants for the startup-forecast application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// TTMWindow is the number of trailing months summed for TTM revenue
	TTMWindow = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// MinAnnualInterestRate floors the effective credit interest rate
	MinAnnualInterestRate = 0.01
)

// Optimizer constants
const (
	// InfeasibleScore is the sentinel assigned to trials whose trajectory
	// violates the solvency constraint
	InfeasibleScore = -1.0e18

	// DefaultTrials is the default trial budget for a search
	DefaultTrials = 2000

	// DefaultKnots is the default number of control knots per lever
	DefaultKnots = 4

	// DefaultWorkers is the default number of concurrent trial evaluators
	DefaultWorkers = 4
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
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxRequestBytes is the default maximum request body size (256 KB)
	DefaultMaxRequestBytes int64 = 256 * 1024
)
