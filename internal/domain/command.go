package domain

// CommandType classifies what the user wants to do.
type CommandType int

const (
	CommandUnknown CommandType = iota
	CommandList
	CommandSearch
	CommandNew
	CommandEdit
	CommandShow
	CommandSetName
	CommandSetDescription
	CommandAddStep
	CommandDropStep
	CommandMoveStep
	CommandSetField
	CommandSubmit
	CommandCancel
	CommandRemove
	CommandExport
	CommandImport
	CommandConfirm
	CommandDecline
	CommandHelp
	CommandQuit
)

// String returns a human-readable command type.
func (c CommandType) String() string {
	switch c {
	case CommandList:
		return "list"
	case CommandSearch:
		return "search"
	case CommandNew:
		return "new"
	case CommandEdit:
		return "edit"
	case CommandShow:
		return "show"
	case CommandSetName:
		return "set_name"
	case CommandSetDescription:
		return "set_description"
	case CommandAddStep:
		return "add_step"
	case CommandDropStep:
		return "drop_step"
	case CommandMoveStep:
		return "move_step"
	case CommandSetField:
		return "set_field"
	case CommandSubmit:
		return "submit"
	case CommandCancel:
		return "cancel"
	case CommandRemove:
		return "remove"
	case CommandExport:
		return "export"
	case CommandImport:
		return "import"
	case CommandConfirm:
		return "confirm"
	case CommandDecline:
		return "decline"
	case CommandHelp:
		return "help"
	case CommandQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Command represents a parsed user action. Args holds positional
// arguments; Text holds free text such as a recipe name.
type Command struct {
	Type CommandType
	Args []string
	Text string
}

// Arg returns the i-th argument or "".
func (c *Command) Arg(i int) string {
	if i < 0 || i >= len(c.Args) {
		return ""
	}
	return c.Args[i]
}
