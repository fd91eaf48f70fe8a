package argonaut

import "errors"

// Sentinel errors returned by the parser and loader. Callers match against
// these with errors.Is; details (position, field name, ...) are attached
// with fmt.Errorf("%w: ...", sentinel, ...).
var (
	// ErrUnexpectedEOF is returned when the input ends where a value is
	// expected or before an array or object is complete. An unterminated
	// string reports ErrMissingQuotes and a truncated number
	// ErrMissingDigits instead.
	ErrUnexpectedEOF = errors.New("argonaut: unexpected end of input")
	// ErrSyntax is returned when the next byte cannot begin any value.
	ErrSyntax = errors.New("argonaut: syntax error")
	// ErrBadToken is returned when a literal (true/false/null) does not
	// match the expected spelling.
	ErrBadToken = errors.New("argonaut: bad token")
	// ErrMissingKey is returned when an object key is expected but the next
	// non-whitespace byte is not a quote.
	ErrMissingKey = errors.New("argonaut: missing key")
	// ErrMissingQuotes is returned when a string is not terminated before
	// the input ends.
	ErrMissingQuotes = errors.New("argonaut: missing closing quote")
	// ErrMissingComma is returned when an array or object element is not
	// followed by a comma or closing bracket.
	ErrMissingComma = errors.New("argonaut: missing comma")
	// ErrMissingColon is returned when an object key is not followed by a
	// colon.
	ErrMissingColon = errors.New("argonaut: missing colon")
	// ErrMissingDigits is returned when a number is missing a mandatory
	// digit run (the integer part, or the digits after '.' or 'e').
	ErrMissingDigits = errors.New("argonaut: missing digits")
	// ErrJunkAfterInput is returned when Parse finds non-whitespace bytes
	// after a complete top-level value.
	ErrJunkAfterInput = errors.New("argonaut: junk after input")
	// ErrBadUnicodeEscape is returned for a truncated escape, an unknown
	// escape letter, or a \u escape with fewer than four bytes left. Non-hex
	// digits inside a \u escape surface strconv's own parse error instead.
	ErrBadUnicodeEscape = errors.New("argonaut: bad unicode escape")
	// ErrSurrogateHalf is returned when a UTF-16 surrogate half appears
	// without its partner.
	ErrSurrogateHalf = errors.New("argonaut: utf8 cannot encode surrogate half")
	// ErrInternal indicates a broken invariant (a corrupt assembly span);
	// it should never surface from well-formed input.
	ErrInternal = errors.New("argonaut: internal invariant violation")

	// ErrTypeMismatch is returned by the loader when a node's kind cannot
	// be projected onto the requested Go type.
	ErrTypeMismatch = errors.New("argonaut: type mismatch")
	// ErrArraySizeMismatch is returned when a fixed-size array target does
	// not receive exactly that many elements.
	ErrArraySizeMismatch = errors.New("argonaut: array size mismatch")
	// ErrTupleSizeMismatch is returned when a struct loaded positionally
	// (from an array or multi) does not receive enough elements to cover
	// its non-optional fields.
	ErrTupleSizeMismatch = errors.New("argonaut: tuple size mismatch")
	// ErrMissingField is returned when a required struct field has no
	// matching key in the source object and no declared default.
	ErrMissingField = errors.New("argonaut: missing field")
	// ErrUnknownEnumValue is returned when a string node does not match any
	// variant name of the target enum.
	ErrUnknownEnumValue = errors.New("argonaut: unknown enum value")
)

// errRestart is raised internally when an assembly-buffer growth event
// moves the backing storage mid-parse. parseUsing recovers it and restarts
// the whole parse; it must never escape to a caller.
var errRestart = errors.New("argonaut: internal restart")
