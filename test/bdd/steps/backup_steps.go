package steps

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/armor-tracker/internal/application/progress/commands"
	"github.com/andrescamacho/armor-tracker/internal/application/session"
	"github.com/andrescamacho/armor-tracker/internal/domain/backup"
	"github.com/andrescamacho/armor-tracker/test/helpers"
)

type backupContext struct {
	tracker *trackerContext
	codec   *backup.Codec
	content string
	result  *backup.Result
	err     error
}

func (bc *backupContext) reset() {
	bc.tracker = sharedTracker
	bc.codec = backup.NewCodec(backup.Options{Clock: bc.tracker.clock})
	bc.content = ""
	bc.result = nil
	bc.err = nil
}

func (bc *backupContext) aBackupWithTheSampleDatasetAndState(state *godog.DocString) error {
	bc.content = fmt.Sprintf(`{"data": %s, "state": %s}`, helpers.SampleDatasetJSON, state.Content)
	return nil
}

func (bc *backupContext) theBackupContent(doc *godog.DocString) error {
	bc.content = doc.Content
	return nil
}

func (bc *backupContext) iImportTheBackup() error {
	bc.result, bc.err = bc.codec.ParseContent([]byte(bc.content))
	return nil
}

func (bc *backupContext) iImportTheBackupIntoTheSession() error {
	tc := bc.tracker
	sess := session.New(tc.dataset, tc.state, tc.store, tc.clock)
	file := &backup.File{
		Name:        "backup.json",
		Size:        int64(len(bc.content)),
		ContentType: "application/json",
		Reader:      strings.NewReader(bc.content),
	}

	_, bc.err = commands.NewImportBackupHandler(sess, bc.codec).Handle(context.Background(), &commands.ImportBackupCommand{File: file})
	tc.dataset, tc.state = sess.Dataset, sess.State
	return nil
}

func (bc *backupContext) theBackupShouldBeAccepted() error {
	if bc.err != nil {
		return fmt.Errorf("expected the backup to be accepted but got: %w", bc.err)
	}
	return nil
}

func (bc *backupContext) theBackupShouldBeRejectedWith(message string) error {
	var backupErr *backup.Error
	if !errors.As(bc.err, &backupErr) {
		return fmt.Errorf("expected a backup error %q but got: %v", message, bc.err)
	}
	if backupErr.Message != message {
		return fmt.Errorf("expected %q but got %q", message, backupErr.Message)
	}
	return nil
}

func (bc *backupContext) theImportedPieceShouldBeAtLevel(pieceID string, level int) error {
	if bc.result == nil {
		return fmt.Errorf("no backup was imported")
	}
	if got := bc.result.State.Levels[pieceID]; got != level {
		return fmt.Errorf("expected imported %s at level %d but got %d", pieceID, level, got)
	}
	return nil
}

func (bc *backupContext) theImportedInventoryOfShouldBe(materialID string, qty int) error {
	if bc.result == nil {
		return fmt.Errorf("no backup was imported")
	}
	if got := bc.result.State.Inventory[materialID]; got != qty {
		return fmt.Errorf("expected imported %s inventory %d but got %d", materialID, qty, got)
	}
	return nil
}

// InitializeBackupScenario registers backup import steps. It must be
// registered after InitializeTrackerScenario, whose context it shares.
func InitializeBackupScenario(sc *godog.ScenarioContext) {
	bc := &backupContext{}

	sc.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		bc.reset()
		return ctx, nil
	})

	sc.Step(`^a backup with the sample dataset and state:$`, bc.aBackupWithTheSampleDatasetAndState)
	sc.Step(`^the backup content:$`, bc.theBackupContent)
	sc.Step(`^I import the backup$`, bc.iImportTheBackup)
	sc.Step(`^I import the backup into the session$`, bc.iImportTheBackupIntoTheSession)
	sc.Step(`^the backup should be accepted$`, bc.theBackupShouldBeAccepted)
	sc.Step(`^the backup should be rejected with "([^"]*)"$`, bc.theBackupShouldBeRejectedWith)
	sc.Step(`^the imported piece "([^"]*)" should be at level (\d+)$`, bc.theImportedPieceShouldBeAtLevel)
	sc.Step(`^the imported inventory of "([^"]*)" should be (\d+)$`, bc.theImportedInventoryOfShouldBe)
}
