// Package config defines the data structures related to assumption files
// and includes functions for loading and checking them. A file declares
// one sector plus that sector's assumptions; omitted fields fall back to
// the sector's canonical defaults.
package config

import (
	"fmt"

	"github.com/iwvelando/proforma-forecast/internal/inputs"
	"github.com/iwvelando/proforma-forecast/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds one loaded assumptions file.
type Configuration struct {
	Sector     string
	Solar      inputs.SolarInputs
	Consulting inputs.ConsultingInputs
	Logging    LoggingConfig `yaml:"logging,omitempty"`
	Output     OutputConfig  `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// LoadConfiguration takes a file path as input and loads the
// YAML-formatted assumptions there. Fields absent from the file keep the
// sector defaults, so a file can override just the assumptions under
// study.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	configuration := Configuration{
		Solar:      inputs.DefaultSolar(),
		Consulting: inputs.DefaultConsulting(),
	}
	err := v.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// ProjectInputs returns the assumption record selected by the file's
// sector tag.
func (conf *Configuration) ProjectInputs() (inputs.ProjectInputs, error) {
	sector, err := inputs.ParseSector(conf.Sector)
	if err != nil {
		return nil, err
	}
	switch sector {
	case inputs.SectorSolar:
		return conf.Solar, nil
	case inputs.SectorConsulting:
		return conf.Consulting, nil
	}
	return nil, fmt.Errorf("unknown sector %q", conf.Sector)
}

// ValidateConfiguration performs range checking of the loaded assumptions
// and returns warnings. Warnings do not block a run; range enforcement is
// this layer's responsibility, never the engine's.
func (conf *Configuration) ValidateConfiguration() []string {
	sector, err := inputs.ParseSector(conf.Sector)
	if err != nil {
		return []string{err.Error()}
	}

	var warnings []string
	switch sector {
	case inputs.SectorSolar:
		s := conf.Solar
		warnings = validation.Collect(warnings,
			validation.CheckFraction("capacityFactor", s.CapacityFactor),
			validation.CheckFraction("performanceRatio", s.PerformanceRatio),
			validation.CheckFraction("degradation", s.Degradation),
			validation.CheckFraction("merchantShare", s.MerchantShare),
			validation.CheckFraction("debtFraction", s.DebtFraction),
			validation.CheckFraction("taxRate", s.TaxRate),
			validation.CheckFraction("itcFraction", s.ITCFraction),
			validation.CheckFraction("contingencyFraction", s.ContingencyFraction),
			validation.CheckNonNegative("ppaPrice", s.PPAPrice),
			validation.CheckNonNegative("merchantPrice", s.MerchantPrice),
			validation.CheckNonNegative("fixedOMPerKW", s.FixedOMPerKW),
			validation.CheckPositiveYears("horizonYears", s.HorizonYears),
		)
	case inputs.SectorConsulting:
		c := conf.Consulting
		warnings = validation.Collect(warnings,
			validation.CheckFraction("partners.utilization", c.Partners.Utilization),
			validation.CheckFraction("partners.realization", c.Partners.Realization),
			validation.CheckFraction("managers.utilization", c.Managers.Utilization),
			validation.CheckFraction("managers.realization", c.Managers.Realization),
			validation.CheckFraction("analysts.utilization", c.Analysts.Utilization),
			validation.CheckFraction("analysts.realization", c.Analysts.Realization),
			validation.CheckFraction("retainerFraction", c.RetainerFraction),
			validation.CheckFraction("projectFraction", c.ProjectFraction),
			validation.CheckFraction("taxRate", c.TaxRate),
			validation.CheckNonNegative("equityInvestment", c.EquityInvestment),
			validation.CheckPositiveYears("horizonYears", c.HorizonYears),
		)
		if sum := c.RetainerFraction + c.ProjectFraction; sum != 0 && (sum < 0.999 || sum > 1.001) {
			warnings = append(warnings, fmt.Sprintf("retainerFraction + projectFraction = %g, expected 1.0", sum))
		}
	}

	return warnings
}
