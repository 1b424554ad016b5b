package steps

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/armor-tracker/internal/application/setup"
	"github.com/andrescamacho/armor-tracker/internal/domain/armor"
	"github.com/andrescamacho/armor-tracker/internal/domain/progress"
	"github.com/andrescamacho/armor-tracker/internal/domain/requirements"
	"github.com/andrescamacho/armor-tracker/internal/domain/shared"
	"github.com/andrescamacho/armor-tracker/internal/domain/storage"
	"github.com/andrescamacho/armor-tracker/test/helpers"
)

// sharedTracker is the tracker context of the running scenario. Backup steps
// read and replace its dataset and state.
var sharedTracker *trackerContext

type trackerContext struct {
	dataset   *armor.Dataset
	state     *progress.State
	store     *helpers.MemoryDocumentStore
	clock     *shared.MockClock
	remaining map[string]int
	summary   requirements.Summary
	upgraded  bool
	ready     []requirements.ReadyUpgrade
}

func (tc *trackerContext) reset() {
	tc.dataset = nil
	tc.state = nil
	tc.store = helpers.NewMemoryDocumentStore()
	tc.clock = shared.NewMockClock(helpers.FixedTime)
	tc.remaining = nil
	tc.summary = requirements.Summary{}
	tc.upgraded = false
	tc.ready = nil
	sharedTracker = tc
}

// Givens

func (tc *trackerContext) theSampleDataset() error {
	tc.dataset = helpers.SampleDataset()
	tc.state = progress.DefaultState(tc.dataset, tc.clock.Now())
	return nil
}

func (tc *trackerContext) pieceIsAtLevel(pieceID string, level int) error {
	if tc.state == nil {
		return fmt.Errorf("no state: start with the sample dataset")
	}
	tc.state.Levels[pieceID] = level
	return nil
}

func (tc *trackerContext) everyPieceIsAtLevel(level int) error {
	for _, id := range tc.dataset.PieceIDs() {
		tc.state.Levels[id] = level
	}
	return nil
}

func (tc *trackerContext) iHoldOf(qty int, materialID string) error {
	if tc.state == nil {
		return fmt.Errorf("no state: start with the sample dataset")
	}
	tc.state.Inventory[materialID] = qty
	return nil
}

func (tc *trackerContext) aStoredStateDocument(doc *godog.DocString) error {
	tc.store.Seed(storage.StateKey, doc.Content)
	return nil
}

// Actions

func (tc *trackerContext) iSumTheRemainingRequirements() error {
	tc.remaining = requirements.SumRemainingRequirements(tc.dataset, tc.state)
	tc.summary = requirements.Counts(tc.dataset, tc.state)
	return nil
}

func (tc *trackerContext) iQuickUpgradeToLevel(pieceID string, target int) error {
	tc.upgraded = requirements.QuickUpgrade(tc.dataset, tc.state, pieceID, target)
	return nil
}

func (tc *trackerContext) iListTheReadyUpgrades() error {
	tc.ready = requirements.ReadyUpgrades(tc.dataset, tc.state)
	return nil
}

func (tc *trackerContext) theStateIsLoaded() error {
	loader := setup.NewLoader(tc.store, nil, tc.clock, setup.LoaderOptions{})
	tc.state = loader.InitializeState(context.Background(), tc.dataset)
	return nil
}

// Assertions

func (tc *trackerContext) shouldHaveRemaining(materialID string, qty int) error {
	if got := tc.remaining[materialID]; got != qty {
		return fmt.Errorf("expected %d %s remaining but got %d", qty, materialID, got)
	}
	return nil
}

func (tc *trackerContext) levelsShouldBeCompleted(completed, total int) error {
	if tc.summary.CompletedLevels != completed || tc.summary.TotalLevels != total {
		return fmt.Errorf("expected %d of %d levels completed but got %d of %d",
			completed, total, tc.summary.CompletedLevels, tc.summary.TotalLevels)
	}
	return nil
}

func (tc *trackerContext) materialsShouldBeInDeficit(count int) error {
	if got := requirements.DeficitCount(tc.state, tc.remaining); got != count {
		return fmt.Errorf("expected %d materials in deficit but got %d", count, got)
	}
	return nil
}

func (tc *trackerContext) nothingShouldRemain() error {
	if len(tc.remaining) != 0 {
		return fmt.Errorf("expected nothing remaining but got %v", tc.remaining)
	}
	return nil
}

func (tc *trackerContext) theUpgradeShouldSucceed() error {
	if !tc.upgraded {
		return fmt.Errorf("expected the upgrade to succeed")
	}
	return nil
}

func (tc *trackerContext) theUpgradeShouldFail() error {
	if tc.upgraded {
		return fmt.Errorf("expected the upgrade to fail")
	}
	return nil
}

func (tc *trackerContext) pieceShouldBeAtLevel(pieceID string, level int) error {
	if got := tc.state.Level(pieceID); got != level {
		return fmt.Errorf("expected %s at level %d but got %d", pieceID, level, got)
	}
	return nil
}

func (tc *trackerContext) iShouldHoldOf(qty int, materialID string) error {
	if got := tc.state.Held(materialID); got != qty {
		return fmt.Errorf("expected to hold %d %s but got %d", qty, materialID, got)
	}
	return nil
}

func (tc *trackerContext) theStateShouldKeepTheOrphanedPiece(pieceID string) error {
	if _, ok := tc.state.Levels[pieceID]; !ok {
		return fmt.Errorf("expected orphaned piece %s to be kept", pieceID)
	}
	return nil
}

func (tc *trackerContext) theReadyUpgradesShouldBe(table *godog.Table) error {
	rows := table.Rows[1:]
	if len(rows) != len(tc.ready) {
		return fmt.Errorf("expected %d ready upgrades but got %d: %v", len(rows), len(tc.ready), tc.ready)
	}
	for i, row := range rows {
		level, err := strconv.Atoi(row.Cells[1].Value)
		if err != nil {
			return fmt.Errorf("invalid level %q in table", row.Cells[1].Value)
		}
		got := tc.ready[i]
		if got.PieceID != row.Cells[0].Value || got.Level != level {
			return fmt.Errorf("row %d: expected %s level %d but got %s level %d",
				i+1, row.Cells[0].Value, level, got.PieceID, got.Level)
		}
	}
	return nil
}

// InitializeTrackerScenario registers dataset, progress and aggregation steps
func InitializeTrackerScenario(sc *godog.ScenarioContext) {
	tc := &trackerContext{}

	sc.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	sc.Step(`^the sample dataset$`, tc.theSampleDataset)
	sc.Step(`^piece "([^"]*)" is at level (\d+)$`, tc.pieceIsAtLevel)
	sc.Step(`^every piece is at level (\d+)$`, tc.everyPieceIsAtLevel)
	sc.Step(`^I hold (\d+) of "([^"]*)"$`, tc.iHoldOf)
	sc.Step(`^a stored state document:$`, tc.aStoredStateDocument)

	sc.Step(`^I sum the remaining requirements$`, tc.iSumTheRemainingRequirements)
	sc.Step(`^I quick upgrade "([^"]*)" to level (\d+)$`, tc.iQuickUpgradeToLevel)
	sc.Step(`^I list the ready upgrades$`, tc.iListTheReadyUpgrades)
	sc.Step(`^the state is loaded$`, tc.theStateIsLoaded)

	sc.Step(`^"([^"]*)" should have (\d+) remaining$`, tc.shouldHaveRemaining)
	sc.Step(`^(\d+) of (\d+) levels should be completed$`, tc.levelsShouldBeCompleted)
	sc.Step(`^(\d+) materials? should be in deficit$`, tc.materialsShouldBeInDeficit)
	sc.Step(`^nothing should remain$`, tc.nothingShouldRemain)
	sc.Step(`^the upgrade should succeed$`, tc.theUpgradeShouldSucceed)
	sc.Step(`^the upgrade should fail$`, tc.theUpgradeShouldFail)
	sc.Step(`^piece "([^"]*)" should be at level (\d+)$`, tc.pieceShouldBeAtLevel)
	sc.Step(`^I should hold (\d+) of "([^"]*)"$`, tc.iShouldHoldOf)
	sc.Step(`^the state should keep the orphaned piece "([^"]*)"$`, tc.theStateShouldKeepTheOrphanedPiece)
	sc.Step(`^the ready upgrades should be:$`, tc.theReadyUpgradesShouldBe)
}
