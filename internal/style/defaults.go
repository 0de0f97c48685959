package style

// defaultColors is used for roles the configuration does not override.
var defaultColors = map[Role][]string{
	Success:        {"bold", "green"},
	Warning:        {"bold", "yellow"},
	Error:          {"bold", "red"},
	Highlight:      {"bold", "cyan"},
	HighlightMinor: {"white"},
	Text:           {"normal"},
	Faint:          {"faint"},
	Path:           {"bold", "blue"},
	PathItems:      {"bold", "blue"},
	Action:         {"bold", "cyan"},
	ActionDefault:  {"bold", "cyan"},
	ActionDescr:    {"white"},
	Added:          {"green"},
	Removed:        {"red"},
	Changed:        {"bold", "yellow"},
	DiffAdded:      {"bold", "green"},
	DiffRemoved:    {"bold", "red"},
	DiffChanged:    {"bold", "yellow"},
}
