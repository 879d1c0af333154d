package format

import "luafmt/internal/ast"

// IndentKind selects the indentation character.
type IndentKind string

const (
	// IndentTabs indents with tab characters.
	IndentTabs IndentKind = "tabs"
	// IndentSpaces indents with spaces.
	IndentSpaces IndentKind = "spaces"
)

// LineEndings selects the newline sequence.
type LineEndings string

const (
	// LineEndingsUnix ends lines with LF.
	LineEndingsUnix LineEndings = "unix"
	// LineEndingsWindows ends lines with CRLF.
	LineEndingsWindows LineEndings = "windows"
)

// QuoteStyle selects how string literals are quoted.
type QuoteStyle string

const (
	// QuotePreferDouble uses double quotes unless single quotes escape less.
	QuotePreferDouble QuoteStyle = "prefer-double"
	// QuotePreferSingle uses single quotes unless double quotes escape less.
	QuotePreferSingle QuoteStyle = "prefer-single"
	// QuoteForceDouble always uses double quotes.
	QuoteForceDouble QuoteStyle = "force-double"
	// QuoteForceSingle always uses single quotes.
	QuoteForceSingle QuoteStyle = "force-single"
)

// TableSeparator selects the separator between table fields.
type TableSeparator string

const (
	// SeparatorComma separates table fields with commas.
	SeparatorComma TableSeparator = "comma"
	// SeparatorSemicolon separates table fields with semicolons.
	SeparatorSemicolon TableSeparator = "semicolon"
)

// Config is the fixed set of formatting knobs for one run.
type Config struct {
	// ColumnWidth is the approximate target line length. It guides wrapping
	// decisions but is not a hard upper bound.
	ColumnWidth int `toml:"column_width"`
	// IndentKind selects tabs or spaces.
	IndentKind IndentKind `toml:"indent_type"`
	// IndentWidth is the cell width of one indentation level. With tabs it
	// is a heuristic for wrapping decisions only.
	IndentWidth int `toml:"indent_width"`
	// LineEndings selects LF or CRLF output.
	LineEndings LineEndings `toml:"line_endings"`
	// QuoteStyle selects string literal quoting.
	QuoteStyle QuoteStyle `toml:"quote_style"`
	// NoCallParentheses omits parentheses around calls whose sole argument
	// is a string or table literal.
	NoCallParentheses bool `toml:"no_call_parentheses"`
	// TableSeparator selects the separator between table fields.
	TableSeparator TableSeparator `toml:"table_separator"`
	// ExtraSepAtTableEnd adds a separator after the last field of a
	// multi-line table.
	ExtraSepAtTableEnd bool `toml:"extra_sep_at_table_end"`
	// PadTables pads the inside of single-line table braces with spaces.
	PadTables bool `toml:"pad_tables"`
	// PadEmptyTables pads the inside of empty table braces with a space.
	PadEmptyTables bool `toml:"pad_empty_tables"`
}

// DefaultConfig returns the default formatting configuration.
func DefaultConfig() Config {
	return Config{
		ColumnWidth:        120,
		IndentKind:         IndentTabs,
		IndentWidth:        4,
		LineEndings:        LineEndingsUnix,
		QuoteStyle:         QuotePreferDouble,
		NoCallParentheses:  false,
		TableSeparator:     SeparatorComma,
		ExtraSepAtTableEnd: false,
		PadTables:          true,
		PadEmptyTables:     false,
	}
}

// Normalize fills zero-valued knobs with their defaults.
func (c Config) Normalize() Config {
	def := DefaultConfig()
	if c.ColumnWidth == 0 {
		c.ColumnWidth = def.ColumnWidth
	}
	if c.IndentKind == "" {
		c.IndentKind = def.IndentKind
	}
	if c.IndentWidth == 0 {
		c.IndentWidth = def.IndentWidth
	}
	if c.LineEndings == "" {
		c.LineEndings = def.LineEndings
	}
	if c.QuoteStyle == "" {
		c.QuoteStyle = def.QuoteStyle
	}
	if c.TableSeparator == "" {
		c.TableSeparator = def.TableSeparator
	}
	return c
}

// LineEnding returns the configured newline sequence.
func (c Config) LineEnding() string {
	if c.LineEndings == LineEndingsWindows {
		return "\r\n"
	}
	return "\n"
}

// Range restricts formatting to a byte-offset window of the file. Both
// bounds are inclusive; a nil bound is unbounded on that side.
type Range struct {
	Start *int
	End   *int
}

// NewRange builds a range from optional bounds.
func NewRange(start, end *int) *Range {
	return &Range{Start: start, End: end}
}

// Context carries the per-run configuration and optional range through the
// recursive formatting passes. It is immutable after construction.
type Context struct {
	Config Config
	Range  *Range
}

// NewContext builds a context with normalized configuration.
func NewContext(cfg Config, rng *Range) Context {
	return Context{Config: cfg.Normalize(), Range: rng}
}

// ShouldFormatNode reports whether the statement falls inside the requested
// formatting range. Statements outside the range only have their nested
// blocks visited.
func (ctx Context) ShouldFormatNode(stmt ast.Stmt) bool {
	if ctx.Range == nil {
		return true
	}
	sp := stmt.Span()
	if ctx.Range.Start != nil && int(sp.Start) < *ctx.Range.Start {
		return false
	}
	if ctx.Range.End != nil && int(sp.End) > *ctx.Range.End+1 {
		return false
	}
	return true
}
