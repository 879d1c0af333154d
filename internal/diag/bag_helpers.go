package diag

import "luafmt/internal/source"

// AddError is shorthand for adding an error-severity diagnostic.
func (b *Bag) AddError(code Code, msg string, primary source.Span) bool {
	return b.Add(Diagnostic{
		Severity: SevError,
		Code:     code,
		Message:  msg,
		Primary:  primary,
	})
}

// AddWarning is shorthand for adding a warning-severity diagnostic.
func (b *Bag) AddWarning(code Code, msg string, primary source.Span) bool {
	return b.Add(Diagnostic{
		Severity: SevWarning,
		Code:     code,
		Message:  msg,
		Primary:  primary,
	})
}
