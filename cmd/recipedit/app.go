package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hammamikhairi/recipedit/internal/command"
	"github.com/hammamikhairi/recipedit/internal/display"
	"github.com/hammamikhairi/recipedit/internal/document"
	"github.com/hammamikhairi/recipedit/internal/domain"
	"github.com/hammamikhairi/recipedit/internal/editor"
	"github.com/hammamikhairi/recipedit/internal/engine"
	"github.com/hammamikhairi/recipedit/internal/importer"
	"github.com/hammamikhairi/recipedit/internal/logger"
	"github.com/hammamikhairi/recipedit/internal/recipe"
	"github.com/hammamikhairi/recipedit/internal/validation"
)

// runREPL wires the interactive editor and blocks until the user quits.
func runREPL(ctx context.Context, env *runtimeEnv) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	log := env.log
	ui := display.NewUI()
	parser := command.NewKeywordParser(log)
	notifier := command.NewCLINotifier(log, ui.Printf)
	confirm := &lineConfirmer{input: ui.InputChan(), parser: parser, ui: ui}
	store := recipe.NewMemoryStore(log)
	eng := engine.New(store, confirm, log, engine.WithExportFormat(env.cfg.ExportFormat))
	reader := importer.NewReader(log)

	if dir := env.cfg.InboxDir; dir != "" {
		w := importer.NewWatcher(dir, reader, log)
		if err := w.Start(ctx); err != nil {
			log.Error("inbox disabled: %v", err)
		} else {
			defer w.Stop()
		}
	}

	app := &cliApp{
		engine:    eng,
		store:     store,
		parser:    parser,
		notifier:  notifier,
		reader:    reader,
		log:       log,
		ui:        ui,
		exportDir: env.cfg.ExportDir,
	}

	fmt.Println(display.RenderBanner())
	fmt.Println(display.BannerStyle.Render("  Type 'help' for commands, 'quit' to exit."))
	if env.cfg.InboxDir != "" {
		fmt.Println(display.BannerStyle.Render("  Watching " + env.cfg.InboxDir + " for recipe documents."))
	}
	fmt.Println()

	go func() {
		ui.WaitReady()
		app.run(ctx)
		ui.Quit()
	}()

	// Bubble Tea owns the terminal until quit.
	if err := ui.Run(); err != nil {
		log.Error("display: %v", err)
		return err
	}
	return nil
}

// lineConfirmer answers a confirmation with the next line typed into the
// REPL. Only an explicit yes confirms.
type lineConfirmer struct {
	input  <-chan string
	parser domain.CommandParser
	ui     *display.UI
}

func (c *lineConfirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	c.ui.PrintInfo(prompt + " (yes/no)")
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case line, ok := <-c.input:
		if !ok {
			return false, nil
		}
		cmd, err := c.parser.Parse(ctx, line)
		if err != nil {
			return false, err
		}
		return cmd.Type == domain.CommandConfirm, nil
	}
}

type cliApp struct {
	engine    *engine.Engine
	store     *recipe.MemoryStore
	parser    domain.CommandParser
	notifier  domain.Notifier
	reader    *importer.Reader
	log       *logger.Logger
	ui        *display.UI
	exportDir string
}

func (a *cliApp) run(ctx context.Context) {
	a.publishStatus()
	uiCh := a.ui.InputChan()

	for {
		select {
		case <-ctx.Done():
			return
		case res := <-a.reader.C():
			a.applyImport(res)
		case input, ok := <-uiCh:
			if !ok {
				return
			}
			input = strings.TrimSpace(input)
			if input == "" {
				continue
			}
			cmd, err := a.parser.Parse(ctx, input)
			if err != nil {
				a.log.Error("parsing input: %v", err)
				continue
			}
			a.log.Debug("command: %s %v %q", cmd.Type, cmd.Args, cmd.Text)
			if cmd.Type == domain.CommandQuit {
				a.ui.PrintInfo("Bye.")
				return
			}
			a.handle(ctx, cmd)
		}
		a.publishStatus()
	}
}

func (a *cliApp) publishStatus() {
	st := a.engine.Status()
	a.ui.SetStatus(display.Status{
		State:  st.State.String(),
		Name:   st.Name,
		Steps:  st.Steps,
		Errors: st.Errors,
	})
}

func (a *cliApp) handle(ctx context.Context, cmd *domain.Command) {
	switch cmd.Type {
	case domain.CommandHelp:
		a.showHelp()
	case domain.CommandList:
		a.showRecipes(ctx)
	case domain.CommandSearch:
		a.search(ctx, cmd.Text)
	case domain.CommandNew:
		a.report(a.engine.StartCreate(), "New recipe. Set a name with 'name ...' and add steps with 'step image' or 'step unscrew'.")
	case domain.CommandEdit:
		a.edit(ctx, cmd.Arg(0))
	case domain.CommandShow:
		a.showDraft()
	case domain.CommandSetName:
		a.report(a.engine.Form().SetName(cmd.Text), "")
		a.showFieldError("name")
	case domain.CommandSetDescription:
		a.report(a.engine.Form().SetDescription(cmd.Text), "")
	case domain.CommandAddStep:
		a.addStep(cmd.Arg(0))
	case domain.CommandDropStep:
		a.dropStep(cmd.Arg(0))
	case domain.CommandMoveStep:
		a.moveStep(cmd.Arg(0), cmd.Arg(1))
	case domain.CommandSetField:
		a.setField(cmd.Arg(0), cmd.Arg(1), cmd.Text)
	case domain.CommandSubmit:
		a.submit(ctx)
	case domain.CommandCancel:
		a.engine.Cancel()
		a.ui.PrintInfo("Draft discarded.")
	case domain.CommandRemove:
		a.remove(ctx, cmd.Arg(0))
	case domain.CommandExport:
		a.export(ctx, cmd.Arg(0), cmd.Arg(1))
	case domain.CommandImport:
		a.ui.PrintHint("Reading " + cmd.Text + "...")
		a.reader.Read(ctx, cmd.Text)
	case domain.CommandConfirm, domain.CommandDecline:
		a.ui.PrintHint("Nothing to confirm.")
	default:
		a.notifier.NotifyUrgent(ctx, fmt.Sprintf("Unknown command %q. Type 'help' for commands.", cmd.Text))
	}
}

// report prints err, or ok when err is nil and ok is not empty.
func (a *cliApp) report(err error, ok string) {
	switch {
	case errors.Is(err, domain.ErrFormClosed):
		a.ui.PrintUrgent("No recipe is open. Use 'new' or 'edit N' first.")
	case errors.Is(err, domain.ErrFormOpen):
		a.ui.PrintUrgent("A recipe is already open. 'submit' or 'cancel' it first.")
	case err != nil:
		a.ui.PrintUrgent(err.Error())
	case ok != "":
		a.ui.PrintInfo(ok)
	}
}

// ── Collection ───────────────────────────────────────────────────

func (a *cliApp) showRecipes(ctx context.Context) {
	recipes, err := a.engine.ListRecipes(ctx)
	if err != nil {
		a.ui.PrintUrgent(fmt.Sprintf("Error loading recipes: %v", err))
		return
	}
	if len(recipes) == 0 {
		a.ui.PrintHint("No recipes yet. Type 'new' to create one.")
		return
	}
	a.ui.PrintHeading("Recipes:")
	a.printSummaries(ctx, recipes)
}

func (a *cliApp) search(ctx context.Context, query string) {
	found, err := a.store.Search(ctx, query)
	if err != nil {
		a.ui.PrintUrgent(err.Error())
		return
	}
	if len(found) == 0 {
		a.ui.PrintHint(fmt.Sprintf("No recipe matches %q.", query))
		return
	}
	a.ui.PrintHeading(fmt.Sprintf("Matches for %q:", query))
	a.printSummaries(ctx, found)
}

// printSummaries numbers entries by their position in the full list so
// the numbers work with edit, remove and export.
func (a *cliApp) printSummaries(ctx context.Context, list []domain.RecipeSummary) {
	all, _ := a.engine.ListRecipes(ctx)
	for _, r := range list {
		n := 0
		for i, s := range all {
			if s.ID == r.ID {
				n = i + 1
			}
		}
		a.ui.PrintLine(fmt.Sprintf("[%d] %s", n, r.Name))
		a.ui.PrintHint(fmt.Sprintf("%s, id %d", pluralize(r.StepCount, "step"), r.ID))
	}
}

// recipeAt resolves a 1-based list position.
func (a *cliApp) recipeAt(ctx context.Context, arg string) (int64, bool) {
	n, err := strconv.Atoi(arg)
	recipes, lerr := a.engine.ListRecipes(ctx)
	if err != nil || lerr != nil || n < 1 || n > len(recipes) {
		a.ui.PrintUrgent(fmt.Sprintf("No recipe number %s. Type 'list' to see them.", arg))
		return 0, false
	}
	return recipes[n-1].ID, true
}

func (a *cliApp) edit(ctx context.Context, arg string) {
	id, ok := a.recipeAt(ctx, arg)
	if !ok {
		return
	}
	if err := a.engine.StartEdit(ctx, id); err != nil {
		a.report(err, "")
		return
	}
	a.ui.PrintInfo("Editing. Changes apply on 'submit'.")
	a.showDraft()
}

func (a *cliApp) remove(ctx context.Context, arg string) {
	id, ok := a.recipeAt(ctx, arg)
	if !ok {
		return
	}
	err := a.engine.Remove(ctx, id)
	switch {
	case errors.Is(err, domain.ErrDeclined):
		a.ui.PrintHint("Kept.")
	case err != nil:
		a.report(err, "")
	default:
		a.ui.PrintInfo("Recipe deleted.")
	}
}

func (a *cliApp) export(ctx context.Context, arg, formatArg string) {
	id, ok := a.recipeAt(ctx, arg)
	if !ok {
		return
	}
	var format document.Format
	if formatArg != "" {
		f, err := document.ParseFormat(formatArg)
		if err != nil {
			a.ui.PrintUrgent(err.Error())
			return
		}
		format = f
	}
	data, name, err := a.engine.Export(ctx, id, format)
	if err != nil {
		a.report(err, "")
		return
	}
	path, err := writeExport(a.exportDir, name, data)
	if err != nil {
		a.ui.PrintUrgent(err.Error())
		return
	}
	a.log.Info("exported recipe %d to %s", id, path)
	a.ui.PrintInfo("Exported to " + path)
}

// writeExport saves data as name inside dir, creating dir if needed.
func writeExport(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export dir: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// ── Draft ────────────────────────────────────────────────────────

func (a *cliApp) stepKey(arg string) (string, bool) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		a.ui.PrintUrgent(fmt.Sprintf("%q is not a step number.", arg))
		return "", false
	}
	key, err := a.engine.Form().KeyAt(n - 1)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.ui.PrintUrgent(fmt.Sprintf("No step %d.", n))
		} else {
			a.report(err, "")
		}
		return "", false
	}
	return key, true
}

func (a *cliApp) addStep(arg string) {
	t, ok := command.StepTypeArg(arg)
	if !ok {
		a.ui.PrintUrgent("Step type must be 'image' or 'unscrew'.")
		return
	}
	if _, err := a.engine.Form().AddStep(t); err != nil {
		a.report(err, "")
		return
	}
	a.ui.PrintInfo(fmt.Sprintf("Added step %d (%s).", len(a.engine.Form().Steps()), t))
}

func (a *cliApp) dropStep(arg string) {
	key, ok := a.stepKey(arg)
	if !ok {
		return
	}
	a.report(a.engine.Form().RemoveStep(key), "Step removed.")
}

func (a *cliApp) moveStep(fromArg, toArg string) {
	key, ok := a.stepKey(fromArg)
	if !ok {
		return
	}
	to, err := strconv.Atoi(toArg)
	if err != nil {
		a.ui.PrintUrgent(fmt.Sprintf("%q is not a step number.", toArg))
		return
	}
	a.report(a.engine.Form().MoveStep(key, to-1), "")
	a.showSteps()
}

func (a *cliApp) setField(stepArg, field, value string) {
	key, ok := a.stepKey(stepArg)
	if !ok {
		return
	}
	err := a.engine.Form().SetStepField(key, field, value)
	switch {
	case errors.Is(err, domain.ErrFieldHidden):
		a.ui.PrintUrgent(fmt.Sprintf("%s is not shown for this step's current selection.", field))
	case errors.Is(err, domain.ErrUnknownField):
		a.ui.PrintUrgent(fmt.Sprintf("Step %s has no field %q.", stepArg, field))
	default:
		a.report(err, "")
	}
	if err == nil {
		a.showStep(a.engine.Form().Steps(), indexOf(a.engine.Form().Steps(), key))
	}
}

func (a *cliApp) submit(ctx context.Context) {
	r, err := a.engine.Submit(ctx)
	if errors.Is(err, domain.ErrInvalidDraft) {
		a.ui.PrintUrgent("The recipe has errors:")
		for _, fe := range a.engine.Form().Errors() {
			a.ui.PrintUrgent("  " + fe.Error())
		}
		return
	}
	if err != nil {
		a.report(err, "")
		return
	}
	a.notifier.Notify(ctx, fmt.Sprintf("Saved %q with %s.", r.Name, pluralize(len(r.Steps), "step")))
}

func (a *cliApp) applyImport(res importer.Result) {
	if res.Err != nil {
		a.ui.PrintUrgent(fmt.Sprintf("Import failed: %v", res.Err))
		return
	}
	opened := false
	if !a.engine.Form().IsOpen() {
		if err := a.engine.StartCreate(); err != nil {
			a.report(err, "")
			return
		}
		opened = true
	}
	if err := a.engine.ImportDraft(res.Data, res.Format); err != nil {
		if opened {
			a.engine.Cancel()
		}
		a.ui.PrintUrgent(fmt.Sprintf("Import of %s rejected:", filepath.Base(res.Path)))
		var fe domain.FieldErrors
		if errors.As(err, &fe) {
			for _, e := range fe {
				a.ui.PrintUrgent("  " + e.Error())
			}
		} else {
			a.ui.PrintUrgent("  " + err.Error())
		}
		return
	}
	a.ui.PrintInfo(fmt.Sprintf("Imported %s into the draft.", filepath.Base(res.Path)))
	a.showDraft()
}

func (a *cliApp) showDraft() {
	f := a.engine.Form()
	if !f.IsOpen() {
		a.ui.PrintHint("No recipe is open.")
		return
	}
	d := f.Draft()
	name := d.Name
	if strings.TrimSpace(name) == "" {
		name = "(untitled)"
	}
	a.ui.PrintHeading(fmt.Sprintf("%s [%s]", name, f.State()))
	if d.Description != "" {
		a.ui.PrintHint(d.Description)
	}
	a.showFieldError("name")
	a.showFieldError("steps")
	a.showSteps()
}

func (a *cliApp) showSteps() {
	items := a.engine.Form().Steps()
	if len(items) == 0 {
		a.ui.PrintHint("No steps yet.")
		return
	}
	for i := range items {
		a.showStep(items, i)
	}
}

func (a *cliApp) showStep(items []editor.Item, i int) {
	if i < 0 || i >= len(items) {
		return
	}
	step := items[i].Step
	ed := editor.For(&step)
	var parts []string
	for _, f := range ed.Fields() {
		v := f.Value
		if v == "" {
			v = "-"
		}
		parts = append(parts, f.Name+"="+v)
	}
	a.ui.PrintLine(fmt.Sprintf("%d. %s  %s", i+1, ed.Type(), strings.Join(parts, " ")))
	errs := a.engine.Form().Errors()
	for _, f := range ed.Fields() {
		if msg, ok := errs.Get(validation.StepPath(i, f.Name)); ok {
			a.ui.PrintUrgent("   " + msg)
		}
	}
}

func (a *cliApp) showFieldError(path string) {
	if msg, ok := a.engine.Form().Errors().Get(path); ok {
		a.ui.PrintUrgent(msg)
	}
}

func (a *cliApp) showHelp() {
	a.ui.PrintHeading("Recipes:")
	a.ui.PrintLine("  list               Show all recipes")
	a.ui.PrintLine("  find TEXT          Search names and descriptions")
	a.ui.PrintLine("  new                Start a new recipe")
	a.ui.PrintLine("  edit N             Edit recipe N")
	a.ui.PrintLine("  remove N           Delete recipe N (asks first)")
	a.ui.PrintLine("  export N [yaml]    Write recipe N to the export directory")
	a.ui.Println("")
	a.ui.PrintHeading("Open recipe:")
	a.ui.PrintLine("  show               Show the draft and its errors")
	a.ui.PrintLine("  name TEXT          Set the name")
	a.ui.PrintLine("  desc TEXT          Set the description")
	a.ui.PrintLine("  step image|unscrew Add a step")
	a.ui.PrintLine("  drop N             Remove step N")
	a.ui.PrintLine("  move N M           Move step N to position M")
	a.ui.PrintLine("  set N FIELD VALUE  Set a step field (empty VALUE clears a coordinate)")
	a.ui.PrintLine("  import PATH        Replace the draft with a JSON or YAML document")
	a.ui.PrintLine("  submit / cancel    Save or discard the draft")
	a.ui.Println("")
	a.ui.PrintHint("Fields: includePointcloud, scope (FullBattery|Section), centerX, centerY,")
	a.ui.PrintHint("        mode (Automatic|Specific), coordinateX, coordinateY")
	a.ui.PrintLine("  help / quit")
}

// ── Helpers ──────────────────────────────────────────────────────

func indexOf(items []editor.Item, key string) int {
	for i, it := range items {
		if it.Key == key {
			return i
		}
	}
	return -1
}

func pluralize(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}
