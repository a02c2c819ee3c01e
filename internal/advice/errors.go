package advice

// Kind discriminates the engine's failure modes. Callers branch on the kind;
// the message is what a user sees.
type Kind string

const (
	KindInputInvalid      Kind = "input_invalid"
	KindLookupFailed      Kind = "lookup_failed"
	KindNotFound          Kind = "not_found"
	KindFetchFailed       Kind = "fetch_failed"
	KindMalformedResponse Kind = "malformed_response"
	KindNoCandidates      Kind = "no_candidates"
)

// Error is the engine's uniform failure value. Every terminal failure of an
// advice run is one of these; transport and parse errors never escape raw.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func newError(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

// User-facing messages. NoCandidatesMessage is matched verbatim by clients
// of the original contract and must not be reworded.
const (
	msgInputLocation    = "Please enter a location."
	msgInputDuration    = "Forecast duration must be 1 or 3 days."
	msgLookupFailed     = "An unexpected error occurred during location lookup."
	msgNotFound         = "Could not find a location with that name. Please try again."
	msgFetchFailed      = "An unexpected error occurred while fetching weather data."
	msgMalformed        = "The weather service returned an unexpected response."
	NoCandidatesMessage = "No forecast data found for the selected time block and duration."
)
