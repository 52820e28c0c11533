// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// Validation wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Erro de validação", Fields: fields}
}

// CodigoDuplicados identifies the duplicate-identity conflict on the wire.
const CodigoDuplicados = "DUPLICATE_ENTRIES"

// Duplicados enumerates the conflicting identity values found during a stock
// launch, grouped by the field they were submitted under. A value listed under
// imei1 or imei2 blocks BOTH IMEI fields on the client side, since the two
// fields share one collision namespace.
type Duplicados struct {
	NumeroSerie []string `json:"serialNumber"`
	Imei1       []string `json:"imei1"`
	Imei2       []string `json:"imei2"`
}

// Vazio reports whether no duplicate value was found.
func (d Duplicados) Vazio() bool {
	return len(d.NumeroSerie) == 0 && len(d.Imei1) == 0 && len(d.Imei2) == 0
}

// ErroDuplicados is the typed error returned when a stock launch collides with
// identity values already registered in the system (or repeated within the
// submitted batch). It serializes directly as the HTTP 409 body.
type ErroDuplicados struct {
	Code       string     `json:"code"`
	Duplicates Duplicados `json:"duplicates"`
}

func NewDuplicados(d Duplicados) *ErroDuplicados {
	return &ErroDuplicados{Code: CodigoDuplicados, Duplicates: d}
}

func (e *ErroDuplicados) Error() string {
	return "valores de série/IMEI duplicados"
}
