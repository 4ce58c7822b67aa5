package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/iwvelando/proforma-forecast/internal/inputs"
)

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "assumptions.yaml")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func TestLoadConfigurationSolarOverrides(t *testing.T) {
	path := writeTempConfig(t, `
sector: solar
solar:
  acCapacityMW: 50
  ppaPrice: 42.5
logging:
  level: debug
  format: console
output:
  format: csv
`)

	conf, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if conf.Sector != "solar" {
		t.Errorf("sector = %q, expected solar", conf.Sector)
	}
	if conf.Solar.ACCapacityMW != 50 {
		t.Errorf("acCapacityMW = %v, expected override 50", conf.Solar.ACCapacityMW)
	}
	if conf.Solar.PPAPrice != 42.5 {
		t.Errorf("ppaPrice = %v, expected override 42.5", conf.Solar.PPAPrice)
	}
	// Untouched fields keep sector defaults.
	if conf.Solar.DebtTenorYears != 18 {
		t.Errorf("debtTenorYears = %v, expected default 18", conf.Solar.DebtTenorYears)
	}
	if conf.Solar.HorizonYears != 25 {
		t.Errorf("horizonYears = %v, expected default 25", conf.Solar.HorizonYears)
	}
	if conf.Logging.Level != "debug" {
		t.Errorf("logging level = %q, expected debug", conf.Logging.Level)
	}
	if conf.Output.Format != "csv" {
		t.Errorf("output format = %q, expected csv", conf.Output.Format)
	}
}

func TestLoadConfigurationConsulting(t *testing.T) {
	path := writeTempConfig(t, `
sector: consulting
consulting:
  partners:
    headcount: 5
  taxRate: 0.21
`)

	conf, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if conf.Consulting.Partners.Headcount != 5 {
		t.Errorf("partners headcount = %d, expected override 5", conf.Consulting.Partners.Headcount)
	}
	if conf.Consulting.Partners.BillingRate != 350.0 {
		t.Errorf("partners billing rate = %v, expected default 350", conf.Consulting.Partners.BillingRate)
	}
	if conf.Consulting.TaxRate != 0.21 {
		t.Errorf("taxRate = %v, expected override 0.21", conf.Consulting.TaxRate)
	}
}

func TestLoadConfigurationMissingFile(t *testing.T) {
	if _, err := LoadConfiguration("/nonexistent/assumptions.yaml"); err == nil {
		t.Errorf("LoadConfiguration() expected error for missing file")
	}
}

func TestProjectInputs(t *testing.T) {
	conf := &Configuration{
		Sector:     "solar",
		Solar:      inputs.DefaultSolar(),
		Consulting: inputs.DefaultConsulting(),
	}

	record, err := conf.ProjectInputs()
	if err != nil {
		t.Fatalf("ProjectInputs() error = %v", err)
	}
	if record.Sector() != inputs.SectorSolar {
		t.Errorf("ProjectInputs().Sector() = %v, expected solar", record.Sector())
	}

	conf.Sector = "consulting"
	record, err = conf.ProjectInputs()
	if err != nil {
		t.Fatalf("ProjectInputs() error = %v", err)
	}
	if record.Sector() != inputs.SectorConsulting {
		t.Errorf("ProjectInputs().Sector() = %v, expected consulting", record.Sector())
	}

	conf.Sector = "hospitality"
	if _, err := conf.ProjectInputs(); err == nil {
		t.Errorf("ProjectInputs() expected error for unknown sector")
	}
}

func TestValidateConfigurationWarnings(t *testing.T) {
	conf := &Configuration{
		Sector:     "solar",
		Solar:      inputs.DefaultSolar(),
		Consulting: inputs.DefaultConsulting(),
	}

	if warnings := conf.ValidateConfiguration(); len(warnings) != 0 {
		t.Errorf("default solar produced warnings: %v", warnings)
	}

	conf.Solar.DebtFraction = 1.5
	conf.Solar.TaxRate = -0.2
	warnings := conf.ValidateConfiguration()
	if len(warnings) != 2 {
		t.Errorf("expected 2 warnings, got %v", warnings)
	}
}

func TestValidateConfigurationRevenueMix(t *testing.T) {
	conf := &Configuration{
		Sector:     "consulting",
		Consulting: inputs.DefaultConsulting(),
	}
	conf.Consulting.RetainerFraction = 0.7
	conf.Consulting.ProjectFraction = 0.7

	warnings := conf.ValidateConfiguration()
	if len(warnings) != 1 {
		t.Errorf("expected 1 warning for revenue mix, got %v", warnings)
	}
}
