package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/vsinha/polebom/pkg/application/dto"
	"github.com/vsinha/polebom/pkg/application/services"
	"github.com/vsinha/polebom/pkg/application/wizard"
	"github.com/vsinha/polebom/pkg/domain/entities"
	"github.com/vsinha/polebom/pkg/interfaces/cli/output"
)

// ConfigureConfig holds configuration for the interactive configure command
type ConfigureConfig struct {
	CatalogFile string
	In          io.Reader
	Out         io.Writer
}

// ConfigureCommand runs an interactive session that steps through each
// component's attributes and accumulates finalized components
type ConfigureCommand struct {
	config       ConfigureConfig
	logger       *zap.Logger
	configurator *services.Configurator
	session      entities.SessionID
	wizard       *wizard.Wizard
	scanner      *bufio.Scanner
	out          io.Writer
	done         bool
}

// NewConfigureCommand creates a new configure command
func NewConfigureCommand(config ConfigureConfig, logger *zap.Logger) *ConfigureCommand {
	if config.In == nil {
		config.In = os.Stdin
	}
	if config.Out == nil {
		config.Out = os.Stdout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConfigureCommand{
		config:  config,
		logger:  logger,
		scanner: bufio.NewScanner(config.In),
		out:     config.Out,
	}
}

// Execute runs the interactive session until input ends or the user quits
func (c *ConfigureCommand) Execute(ctx context.Context) error {
	cat, err := loadCatalog(c.config.CatalogFile)
	if err != nil {
		return err
	}

	c.configurator = services.NewConfigurator(cat, services.WithLogger(c.logger))
	c.session, err = c.configurator.NewSession()
	if err != nil {
		return err
	}
	defer c.configurator.CloseSession(c.session)

	fmt.Fprintln(c.out, "=== Pole Configuration Session ===")
	fmt.Fprintln(c.out, "Type 'help' for available commands")
	fmt.Fprintln(c.out)

	for !c.done {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(c.out, c.prompt())
		if !c.scanner.Scan() {
			break
		}

		line := strings.TrimSpace(c.scanner.Text())
		if line == "" {
			continue
		}

		if err := c.processCommand(line); err != nil {
			fmt.Fprintf(c.out, "Error: %v\n", err)
		}
	}

	return c.scanner.Err()
}

func (c *ConfigureCommand) prompt() string {
	if c.wizard == nil {
		return "polebom> "
	}
	if attr, ok := c.wizard.Current(); ok {
		return fmt.Sprintf("%s %s> ", c.wizard.Kind(), attr)
	}
	return fmt.Sprintf("%s ready> ", c.wizard.Kind())
}

func (c *ConfigureCommand) processCommand(line string) error {
	parts := strings.Fields(line)
	command := parts[0]
	args := parts[1:]

	switch command {
	case "help", "h":
		c.printInteractiveHelp()
	case "new":
		return c.handleNew(args)
	case "select", "s":
		if len(args) != 1 {
			return fmt.Errorf("usage: select <code>")
		}
		return c.handleSelect(args[0])
	case "options", "o":
		return c.handleOptions()
	case "back", "b":
		return c.handleBack()
	case "width":
		return c.handleWidth(args)
	case "show":
		return c.handleShow()
	case "finish", "f":
		return c.handleFinish()
	case "list":
		return c.handleList()
	case "picklist", "aggregate":
		return c.handlePickList()
	case "reset":
		return c.handleReset()
	case "events":
		return c.handleShowEvents(args)
	case "quit", "q", "exit":
		fmt.Fprintln(c.out, "Goodbye!")
		c.done = true
	default:
		// a bare code answers the active step
		if c.wizard != nil && len(parts) == 1 {
			if _, ok := c.wizard.Current(); ok {
				return c.handleSelect(command)
			}
		}
		return fmt.Errorf("unknown command: %s (type 'help' for available commands)", command)
	}

	return nil
}

func (c *ConfigureCommand) requireWizard() error {
	if c.wizard == nil {
		return fmt.Errorf("no component in progress (use 'new crossarm' or 'new pole')")
	}
	return nil
}

func (c *ConfigureCommand) handleNew(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: new <crossarm|pole>")
	}
	kind, err := entities.ParseComponentKind(strings.ToLower(args[0]))
	if err != nil {
		return err
	}
	c.wizard = wizard.New(c.configurator.Catalog(), kind)
	return c.handleOptions()
}

func (c *ConfigureCommand) handleSelect(code string) error {
	if err := c.requireWizard(); err != nil {
		return err
	}
	if err := c.wizard.Select(code); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%s\n", c.wizard.BuildIdentifier())
	if c.wizard.Ready() {
		fmt.Fprintln(c.out, "All attributes selected. Use 'show' to preview or 'finish' to add the component.")
		return nil
	}
	return c.handleOptions()
}

func (c *ConfigureCommand) handleOptions() error {
	if err := c.requireWizard(); err != nil {
		return err
	}
	attr, ok := c.wizard.Current()
	if !ok {
		fmt.Fprintln(c.out, "No step pending.")
		return nil
	}
	fmt.Fprintf(c.out, "%s options:\n", attr)
	for _, code := range c.wizard.Options() {
		if label := c.wizard.Label(code); label != code {
			fmt.Fprintf(c.out, "  %-10s %s\n", code, label)
		} else {
			fmt.Fprintf(c.out, "  %s\n", code)
		}
	}
	return nil
}

func (c *ConfigureCommand) handleBack() error {
	if err := c.requireWizard(); err != nil {
		return err
	}
	if !c.wizard.Back() {
		return fmt.Errorf("already at the first step")
	}
	fmt.Fprintf(c.out, "%s\n", c.wizard.BuildIdentifier())
	return nil
}

func (c *ConfigureCommand) handleWidth(args []string) error {
	if err := c.requireWizard(); err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("usage: width <mm>")
	}
	mm, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid pole width: %s", args[0])
	}
	if err := c.wizard.SetPoleWidth(mm); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Pole width: %dmm\n", mm)
	return nil
}

func (c *ConfigureCommand) handleShow() error {
	if err := c.requireWizard(); err != nil {
		return err
	}
	kind := c.wizard.Kind()
	selections := c.wizard.Snapshot()

	fmt.Fprintf(c.out, "Build: %s\n", c.wizard.BuildIdentifier())
	if kind == entities.KindCrossarm {
		fmt.Fprintf(c.out, "Pole width: %dmm\n", c.wizard.PoleWidth())
		if sizing, ok := c.configurator.ComputeBoltSizingPreview(selections, c.wizard.PoleWidth()); ok {
			fmt.Fprintf(c.out, "King bolt: M16x%dmm  Spacer: %dmm  Long brace: %dmm  T bracket: %dmm\n",
				sizing.KingBoltSize, sizing.SpacerBoltSize, sizing.LongBraceBoltSize, sizing.TBracketBoltSize)
		}
	}

	items := c.configurator.PreviewLineItems(kind, selections, c.wizard.PoleWidth())
	for _, item := range items {
		fmt.Fprintf(c.out, "  %-28s %-52s %4d\n", item.ID, item.Name, item.Qty)
	}
	return nil
}

func (c *ConfigureCommand) handleFinish() error {
	if err := c.requireWizard(); err != nil {
		return err
	}
	component, err := c.configurator.FinalizeComponent(
		c.session,
		c.wizard.Kind(),
		c.wizard.Snapshot(),
		c.wizard.PoleWidth(),
	)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Added #%d %s (%d line items)\n",
		component.Sequence, component.BuildIdentifier, len(component.LineItems))

	// the next level starts from scratch with the same kind
	c.wizard.Reset()
	return nil
}

func (c *ConfigureCommand) handleList() error {
	components, err := c.configurator.Components(c.session)
	if err != nil {
		return err
	}
	if len(components) == 0 {
		fmt.Fprintln(c.out, "No components yet.")
		return nil
	}
	for _, comp := range components {
		fmt.Fprintf(c.out, "#%d %-8s %s\n", comp.Sequence, comp.KindName, comp.BuildIdentifier)
	}
	return nil
}

func (c *ConfigureCommand) handlePickList() error {
	components, err := c.configurator.Components(c.session)
	if err != nil {
		return err
	}
	pickList, err := c.configurator.Aggregate(c.session)
	if err != nil {
		return err
	}
	output.WriteText(c.out, &dto.BOMResult{
		SessionID:  c.session,
		Components: components,
		PickList:   pickList,
	}, 0)
	return nil
}

func (c *ConfigureCommand) handleReset() error {
	if err := c.configurator.Reset(c.session); err != nil {
		return err
	}
	if c.wizard != nil {
		c.wizard.Reset()
	}
	fmt.Fprintln(c.out, "Session cleared.")
	return nil
}

func (c *ConfigureCommand) handleShowEvents(args []string) error {
	limit := 10
	if len(args) > 0 {
		if l, err := strconv.Atoi(args[0]); err == nil {
			limit = l
		}
	}

	allEvents, err := c.configurator.Events().ReadEvents(string(c.session), 1)
	if err != nil {
		return fmt.Errorf("failed to read events: %w", err)
	}

	fmt.Fprintf(c.out, "=== Recent Events (last %d) ===\n", limit)
	start := len(allEvents) - limit
	if start < 0 {
		start = 0
	}
	for _, event := range allEvents[start:] {
		fmt.Fprintf(c.out, "[%s] #%d %s\n",
			event.Timestamp().Format("15:04:05"),
			event.Version(),
			event.Type())
	}
	return nil
}

func (c *ConfigureCommand) printInteractiveHelp() {
	fmt.Fprint(c.out, `Available commands:
  new <crossarm|pole>   Start configuring a component
  select <code> | <code>
                        Answer the current step
  options               List codes for the current step
  back                  Return to the previous step
  width <mm>            Set the pole width for crossarm sizing
  show                  Preview build identifier, sizing and parts
  finish                Add the component to the session
  list                  List finalized components
  picklist              Aggregate every component into a pick list
  reset                 Discard every finalized component
  events [n]            Show the last n session events
  quit                  Leave the session
`)
}
