package main

import (
	"fmt"
	"os"

	"github.com/vsinha/polebom/pkg/application/services"
	"github.com/vsinha/polebom/pkg/application/wizard"
	"github.com/vsinha/polebom/pkg/domain/catalog"
	"github.com/vsinha/polebom/pkg/domain/entities"
	"github.com/vsinha/polebom/pkg/infrastructure/logging"
	fixtures "github.com/vsinha/polebom/pkg/infrastructure/testing"
)

func main() {
	logger := logging.NewDefaultLogger()
	defer logger.Sync()

	cat := catalog.Default()
	configurator := services.NewConfigurator(cat, services.WithLogger(logger))

	session, err := configurator.NewSession()
	if err != nil {
		fail(err)
	}
	defer configurator.CloseSession(session)

	fmt.Println("🏗️  Configuring an 11kV crossarm one step at a time...")

	// Walk the wizard the way a user would, watching the identifier fill in
	w := wizard.New(cat, entities.KindCrossarm)
	target := fixtures.HVTermPostTerm()
	for !w.Ready() {
		attr, _ := w.Current()
		if err := w.Select(target.Code(attr)); err != nil {
			fail(err)
		}
		fmt.Printf("  %-14s → %s\n", attr, w.BuildIdentifier())
	}

	if sizing, ok := configurator.ComputeBoltSizingPreview(w.Snapshot(), w.PoleWidth()); ok {
		fmt.Printf("  King bolt M16x%dmm on a %dmm pole\n", sizing.KingBoltSize, w.PoleWidth())
	}

	if _, err := configurator.FinalizeComponent(session, w.Kind(), w.Snapshot(), w.PoleWidth()); err != nil {
		fail(err)
	}

	// Remaining levels go straight in
	for _, req := range fixtures.BuildLevelsScenario()[1:] {
		if _, err := configurator.FinalizeComponent(session, req.Kind, req.Selections, req.PoleWidthMm); err != nil {
			fail(err)
		}
	}
	if _, err := configurator.FinalizeComponent(session, entities.KindPole, fixtures.BusckPole(), 0); err != nil {
		fail(err)
	}

	pickList, err := configurator.Aggregate(session)
	if err != nil {
		fail(err)
	}

	fmt.Printf("\n📋 Pick list for %d components:\n", pickList.ComponentCount)
	for _, group := range pickList.Groups {
		fmt.Printf("\n%s\n", group.Category)
		for _, item := range group.Items {
			fmt.Printf("  %4d × %-26s %s\n", item.Qty, item.ID, item.Name)
		}
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
