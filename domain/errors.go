package domain

import "fmt"

// Error codes for DomainError
const (
	ErrCodeInvalidInput       = "INVALID_INPUT"
	ErrCodeFileNotFound       = "FILE_NOT_FOUND"
	ErrCodeParseError         = "PARSE_ERROR"
	ErrCodeAnalysisError      = "ANALYSIS_ERROR"
	ErrCodeConfigError        = "CONFIG_ERROR"
	ErrCodeOutputError        = "OUTPUT_ERROR"
	ErrCodeUnsupportedFormat  = "UNSUPPORTED_FORMAT"
)

// DomainError is the common error type returned by ambient layers
// (configuration, file collection, output formatting) surrounding the
// affected-set engine. It is never returned by the engine itself, which
// reports its own failures as plain diagnostic strings.
type DomainError struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface
func (e DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Cause.Error())
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap supports errors.Is/errors.As against the wrapped cause
func (e DomainError) Unwrap() error {
	return e.Cause
}

// NewDomainError creates a DomainError with an explicit code
func NewDomainError(code, message string, cause error) error {
	return DomainError{Code: code, Message: message, Cause: cause}
}

// NewInvalidInputError creates an invalid-input DomainError
func NewInvalidInputError(message string, cause error) error {
	return NewDomainError(ErrCodeInvalidInput, message, cause)
}

// NewFileNotFoundError creates a file-not-found DomainError
func NewFileNotFoundError(path string, cause error) error {
	return NewDomainError(ErrCodeFileNotFound, "file not found: "+path, cause)
}

// NewParseError creates a parse-error DomainError
func NewParseError(file string, cause error) error {
	return NewDomainError(ErrCodeParseError, "failed to parse: "+file, cause)
}

// NewAnalysisError creates an analysis-error DomainError
func NewAnalysisError(message string, cause error) error {
	return NewDomainError(ErrCodeAnalysisError, message, cause)
}

// NewConfigError creates a config-error DomainError
func NewConfigError(message string, cause error) error {
	return NewDomainError(ErrCodeConfigError, message, cause)
}

// NewOutputError creates an output-error DomainError
func NewOutputError(message string, cause error) error {
	return NewDomainError(ErrCodeOutputError, message, cause)
}

// NewUnsupportedFormatError creates an unsupported-format DomainError
func NewUnsupportedFormatError(format string) error {
	return NewDomainError(ErrCodeUnsupportedFormat, "unsupported format: "+format, nil)
}

// NewValidationError creates a validation DomainError (reuses InvalidInput)
func NewValidationError(message string) error {
	return NewDomainError(ErrCodeInvalidInput, message, nil)
}

// SourceLocation identifies a span of source text for diagnostics and
// dependency-edge provenance.
type SourceLocation struct {
	FilePath  string `json:"file_path"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
	StartCol  int    `json:"start_col"`
	EndCol    int    `json:"end_col"`
}

// String renders a "file:line" style label
func (l SourceLocation) String() string {
	if l.StartLine == l.EndLine {
		return fmt.Sprintf("%s:%d", l.FilePath, l.StartLine)
	}
	return fmt.Sprintf("%s:%d-%d", l.FilePath, l.StartLine, l.EndLine)
}

// BoolPtr returns a pointer to the given bool, for optional-field request structs.
func BoolPtr(b bool) *bool {
	return &b
}

// OutputFormat identifies a rendering of a response
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
	OutputFormatDOT  OutputFormat = "dot"
)
