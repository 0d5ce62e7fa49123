package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrUnauthorized        = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden           = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInvalidTransition   = NewDomainError("INVALID_TRANSITION", "Status transition not allowed from current status")
	ErrConcurrentUpdate    = NewDomainError("CONCURRENT_MODIFICATION", "Resource was modified by another actor")
	ErrEmptyCorrection     = NewDomainError("EMPTY_CORRECTION", "A correction requires at least one field change")
	ErrInvalidDay          = NewDomainError("INVALID_DAY", "Day is outside the expense period")
	ErrInvalidCategory     = NewDomainError("INVALID_CATEGORY", "Category is not applicable to this report")
	ErrEmptyDisputeMessage = NewDomainError("EMPTY_DISPUTE_MESSAGE", "Dispute message cannot be empty")
	ErrDuplicateDispute    = NewDomainError("DUPLICATE_OPEN_DISPUTE", "An open dispute already exists for this report")
	ErrMissingReason       = NewDomainError("MISSING_REJECTION_REASON", "Rejection requires a reason")
)
