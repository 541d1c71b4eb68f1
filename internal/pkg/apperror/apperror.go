package apperror

// AppError carries an HTTP status code alongside a user-facing message.
// Services return these as sentinel values; the HTTP layer maps them to
// responses without switching on every concrete error type.
type AppError struct {
	Code    int    // HTTP status code (e.g., 400, 404, 409)
	Message string // User-facing error message
	Err     error  // Underlying cause, if any (never exposed to the client)
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates an AppError with a status code and message.
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap attaches a status code and message to an existing error.
func Wrap(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
