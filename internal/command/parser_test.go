package command

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/hammamikhairi/recipedit/internal/domain"
	"github.com/hammamikhairi/recipedit/internal/logger"
)

func TestKeywordParser(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	parser := NewKeywordParser(log)
	ctx := context.Background()

	tests := []struct {
		input    string
		wantType domain.CommandType
		wantArgs []string
		wantText string
	}{
		{"list", domain.CommandList, nil, ""},
		{"LS", domain.CommandList, nil, ""},
		{"find cell", domain.CommandSearch, nil, "cell"},
		{"new", domain.CommandNew, nil, ""},
		{"edit 2", domain.CommandEdit, []string{"2"}, ""},
		{"show", domain.CommandShow, nil, ""},
		{"name Cell Swap", domain.CommandSetName, nil, "Cell Swap"},
		{"name", domain.CommandSetName, nil, ""},
		{"desc Replace a damaged cell", domain.CommandSetDescription, nil, "Replace a damaged cell"},
		{"step image", domain.CommandAddStep, []string{"image"}, ""},
		{"add Unscrewing", domain.CommandAddStep, []string{"Unscrewing"}, ""},
		{"drop 3", domain.CommandDropStep, []string{"3"}, ""},
		{"move 1 3", domain.CommandMoveStep, []string{"1", "3"}, ""},
		{"move 3 to 1", domain.CommandMoveStep, []string{"3", "1"}, ""},
		{"set 1 scope Section", domain.CommandSetField, []string{"1", "scope"}, "Section"},
		{"set 2 centerX 12.5", domain.CommandSetField, []string{"2", "centerX"}, "12.5"},
		{"set 2 centerX", domain.CommandSetField, []string{"2", "centerX"}, ""},
		{"submit", domain.CommandSubmit, nil, ""},
		{"cancel", domain.CommandCancel, nil, ""},
		{"remove 1", domain.CommandRemove, []string{"1"}, ""},
		{"export 1", domain.CommandExport, []string{"1"}, ""},
		{"export 1 YAML", domain.CommandExport, []string{"1", "YAML"}, ""},
		{"import ./inbox/cell swap.json", domain.CommandImport, nil, "./inbox/cell swap.json"},
		{"yes", domain.CommandConfirm, nil, ""},
		{"n", domain.CommandDecline, nil, ""},
		{"?", domain.CommandHelp, nil, ""},
		{"quit", domain.CommandQuit, nil, ""},
		{"", domain.CommandUnknown, nil, ""},
		{"make coffee", domain.CommandUnknown, nil, "make coffee"},
		{"edit two", domain.CommandUnknown, nil, "edit two"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			cmd, err := parser.Parse(ctx, tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cmd.Type != tt.wantType {
				t.Fatalf("Parse(%q) type = %s, want %s", tt.input, cmd.Type, tt.wantType)
			}
			if !reflect.DeepEqual(cmd.Args, tt.wantArgs) {
				t.Fatalf("Parse(%q) args = %v, want %v", tt.input, cmd.Args, tt.wantArgs)
			}
			if cmd.Text != tt.wantText {
				t.Fatalf("Parse(%q) text = %q, want %q", tt.input, cmd.Text, tt.wantText)
			}
		})
	}
}

func TestStepTypeArg(t *testing.T) {
	if st, ok := StepTypeArg("image"); !ok || st != domain.StepTakeImage {
		t.Fatalf("image -> %v %v", st, ok)
	}
	if st, ok := StepTypeArg("unscrewing"); !ok || st != domain.StepUnscrewing {
		t.Fatalf("unscrewing -> %v %v", st, ok)
	}
	if _, ok := StepTypeArg("drill"); ok {
		t.Fatal("drill accepted")
	}
}

func TestCLINotifier(t *testing.T) {
	var lines []string
	n := NewCLINotifier(logger.New(logger.LevelOff, nil), func(format string, a ...any) {
		lines = append(lines, fmt.Sprintf(format, a...))
	})
	n.Notify(context.Background(), "saved")
	n.NotifyUrgent(context.Background(), "failed")

	if len(lines) != 2 || !strings.Contains(lines[0], "saved") || !strings.Contains(lines[1], red) {
		t.Fatalf("unexpected output: %q", lines)
	}
}
