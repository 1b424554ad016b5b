package bdd

import (
	"testing"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/armor-tracker/test/bdd/steps"
)

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

func InitializeScenario(sc *godog.ScenarioContext) {
	// Tracker steps first: the dataset and inventory givens are shared with the backup steps
	steps.InitializeTrackerScenario(sc)
	steps.InitializeBackupScenario(sc)
}
