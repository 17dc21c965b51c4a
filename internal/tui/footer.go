package tui

import (
	"fmt"

	"github.com/dm/elasticstat/internal/format"
)

// renderFooter renders the node summary and key hint at full terminal width.
// When app.showHelp is true, shows all key bindings instead of the hint.
func renderFooter(app *App) string {
	width := app.width
	if width <= 0 {
		width = 80
	}
	text := "? for help"
	if app.showHelp {
		text = helpText
	}
	if app.result != nil && !app.showHelp {
		present, missing, docs := summarize(app.result.Nodes)
		text = fmt.Sprintf("nodes: %d  missing: %d  docs: %s  |  %s",
			present, missing, format.FormatNumber(docs), text)
	}
	return StyleDim.Width(width).Render(text)
}
