package status

// ErrorCode is a numeric code to classify API errors in a stable way
type ErrorCode int

// Reserved ranges by domain:
//   0-999:     client errors
//   1000-1999: webhook internal errors
//   2000-2999: catalog errors
//   3000-3999: session store errors

const (
	BadRequestBase    ErrorCode = 0
	InternalErrorBase ErrorCode = 1000
	CatalogBase       ErrorCode = 2000
	SessionBase       ErrorCode = 3000
)

// Client errors
const (
	WebhookInvalidRequestBody ErrorCode = BadRequestBase + iota // 0
	WebhookMissingParams                                        // 1
)

// Webhook internal errors
const (
	WebhookInternal      ErrorCode = InternalErrorBase + iota // 1000
	WebhookPanicRecovered                                     // 1001
)

// Catalog errors
const (
	CatalogSourceMissing ErrorCode = CatalogBase + iota // 2000
	CatalogReadFailed                                   // 2001
	CatalogEmpty                                        // 2002
)

// Session store errors
const (
	SessionReadFailed  ErrorCode = SessionBase + iota // 3000
	SessionWriteFailed                                // 3001
)

// CodedError represents an error with an associated ErrorCode
type CodedError interface {
	error
	ErrorCode() ErrorCode
}

type codedError struct {
	code ErrorCode
	err  error
}

func (e codedError) Error() string        { return e.err.Error() }
func (e codedError) Unwrap() error        { return e.err }
func (e codedError) ErrorCode() ErrorCode { return e.code }

// New creates a new CodedError with the given code and underlying error
func New(code ErrorCode, err error) error {
	if err == nil {
		return nil
	}
	return codedError{code: code, err: err}
}

// CodeOf returns the code carried by err, or fallback when err has none.
func CodeOf(err error, fallback ErrorCode) ErrorCode {
	for err != nil {
		if ce, ok := err.(CodedError); ok {
			return ce.ErrorCode()
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return fallback
		}
		err = u.Unwrap()
	}
	return fallback
}
