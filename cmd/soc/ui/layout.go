package ui

// Layout constants
const (
	ViewportHorizontalPadding = 4

	LabelWidth    = 34 // widest feature label plus glyph
	InputWidth    = 16
	MarkdownWidth = 72

	CompactModeWidth = 80
	MinContentWidth  = 40
)

// LayoutConfig provides computed layout dimensions based on terminal size
type LayoutConfig struct {
	TerminalWidth  int
	TerminalHeight int
	IsCompact      bool
}

// NewLayoutConfig creates a layout configuration for the given terminal size
func NewLayoutConfig(width, height int) LayoutConfig {
	return LayoutConfig{
		TerminalWidth:  width,
		TerminalHeight: height,
		IsCompact:      width > 0 && width < CompactModeWidth,
	}
}

// ContentWidth returns the usable content width, never below MinContentWidth.
// An unknown terminal size yields MarkdownWidth.
func (l LayoutConfig) ContentWidth() int {
	if l.TerminalWidth <= 0 {
		return MarkdownWidth
	}
	w := l.TerminalWidth - ViewportHorizontalPadding
	if w < MinContentWidth {
		return MinContentWidth
	}
	return w
}

// MarkdownWrap returns the word-wrap width for rendered markdown.
func (l LayoutConfig) MarkdownWrap() int {
	w := l.ContentWidth()
	if w > MarkdownWidth {
		return MarkdownWidth
	}
	return w
}
