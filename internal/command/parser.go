// Package command turns REPL input into commands and prints
// notifications back to the terminal.
package command

import (
	"context"
	"regexp"
	"strings"

	"github.com/hammamikhairi/recipedit/internal/domain"
	"github.com/hammamikhairi/recipedit/internal/logger"
)

// Compile-time interface check.
var _ domain.CommandParser = (*KeywordParser)(nil)

// KeywordParser matches input against a fixed table of patterns. Numeric
// capture groups become Args; a group named "text" becomes Text.
type KeywordParser struct {
	log   *logger.Logger
	rules []rule
}

type rule struct {
	regex *regexp.Regexp
	cmd   domain.CommandType
}

// NewKeywordParser creates the REPL command parser.
func NewKeywordParser(log *logger.Logger) *KeywordParser {
	p := &KeywordParser{log: log}
	p.rules = []rule{
		{regexp.MustCompile(`(?i)^(?:list|ls|recipes)$`), domain.CommandList},
		{regexp.MustCompile(`(?i)^(?:search|find)\s+(?P<text>.+)$`), domain.CommandSearch},
		{regexp.MustCompile(`(?i)^(?:new|create)$`), domain.CommandNew},
		{regexp.MustCompile(`(?i)^edit\s+(\d+)$`), domain.CommandEdit},
		{regexp.MustCompile(`(?i)^(?:show|draft)$`), domain.CommandShow},
		{regexp.MustCompile(`(?i)^name(?:\s+(?P<text>.*))?$`), domain.CommandSetName},
		{regexp.MustCompile(`(?i)^(?:desc|description)(?:\s+(?P<text>.*))?$`), domain.CommandSetDescription},
		{regexp.MustCompile(`(?i)^(?:step|add)\s+(image|takeimage|unscrew|unscrewing)$`), domain.CommandAddStep},
		{regexp.MustCompile(`(?i)^(?:drop|delstep)\s+(\d+)$`), domain.CommandDropStep},
		{regexp.MustCompile(`(?i)^move\s+(\d+)\s+(?:to\s+)?(\d+)$`), domain.CommandMoveStep},
		{regexp.MustCompile(`(?i)^set\s+(\d+)\s+(\w+)(?:\s+(?P<text>.*))?$`), domain.CommandSetField},
		{regexp.MustCompile(`(?i)^(?:submit|save)$`), domain.CommandSubmit},
		{regexp.MustCompile(`(?i)^(?:cancel|discard)$`), domain.CommandCancel},
		{regexp.MustCompile(`(?i)^(?:remove|rm|delete)\s+(\d+)$`), domain.CommandRemove},
		{regexp.MustCompile(`(?i)^export\s+(\d+)(?:\s+(json|yaml|yml))?$`), domain.CommandExport},
		{regexp.MustCompile(`(?i)^(?:import|load)\s+(?P<text>.+)$`), domain.CommandImport},
		{regexp.MustCompile(`(?i)^(?:yes|y|confirm)$`), domain.CommandConfirm},
		{regexp.MustCompile(`(?i)^(?:no|n)$`), domain.CommandDecline},
		{regexp.MustCompile(`(?i)^(?:help|h|\?)$`), domain.CommandHelp},
		{regexp.MustCompile(`(?i)^(?:quit|exit|q)$`), domain.CommandQuit},
	}
	return p
}

// Parse converts one line of input into a command. Unrecognised input
// yields CommandUnknown with the input as Text.
func (p *KeywordParser) Parse(ctx context.Context, input string) (*domain.Command, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return &domain.Command{Type: domain.CommandUnknown}, nil
	}

	p.log.Debug("parsing input: %q", trimmed)

	for _, r := range p.rules {
		m := r.regex.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		cmd := &domain.Command{Type: r.cmd}
		for i, name := range r.regex.SubexpNames() {
			if i == 0 {
				continue
			}
			if name == "text" {
				cmd.Text = strings.TrimSpace(m[i])
				continue
			}
			if m[i] != "" {
				cmd.Args = append(cmd.Args, m[i])
			}
		}
		p.log.Debug("matched command: %s %v", cmd.Type, cmd.Args)
		return cmd, nil
	}

	return &domain.Command{Type: domain.CommandUnknown, Text: trimmed}, nil
}

// StepTypeArg maps the REPL spelling of a step type to the domain value.
func StepTypeArg(arg string) (domain.StepType, bool) {
	switch strings.ToLower(arg) {
	case "image", "takeimage":
		return domain.StepTakeImage, true
	case "unscrew", "unscrewing":
		return domain.StepUnscrewing, true
	}
	return "", false
}
