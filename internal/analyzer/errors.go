package analyzer

// ErrorKind classifies analyzer failures per the taxonomy in the report
// pipeline's error contract.
type ErrorKind string

const (
	KindConfig ErrorKind = "config_error"
	KindParse  ErrorKind = "parse_error"
	KindAPI    ErrorKind = "api_error"
)

// Error is the analyzer's tagged result type for boundary failures.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

func configError(message string) *Error {
	return &Error{Kind: KindConfig, Message: message}
}

func parseError(message string, cause error) *Error {
	return &Error{Kind: KindParse, Message: message, Cause: cause}
}

func apiError(message string, cause error) *Error {
	return &Error{Kind: KindAPI, Message: message, Cause: cause}
}
