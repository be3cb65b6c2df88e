// Package error defines domain-specific errors for the agency operations backend.
package error

import "errors"

// Bookkeeping document domain errors.
var (
	// ErrDocumentNotFound is returned when a document is not found in the system.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrInvalidDocumentKind is returned when the document kind is not one of
	// the known kinds.
	ErrInvalidDocumentKind = errors.New("invalid document kind")

	// ErrDocumentAlreadyReviewed is returned when the review workflow is
	// applied to a document that already left needs_review. Approved and
	// rejected are terminal; corrections require a new document.
	ErrDocumentAlreadyReviewed = errors.New("document has already been reviewed")

	// ErrInvalidReviewAction is returned when the review action is neither
	// approve nor reject.
	ErrInvalidReviewAction = errors.New("invalid review action")

	// ErrInvalidPeriod is returned when the requested quarter is out of range.
	ErrInvalidPeriod = errors.New("invalid period")

	// ErrInvalidBasis is returned when the accounting basis is unknown.
	ErrInvalidBasis = errors.New("invalid accounting basis")

	// ErrNothingToExport is returned when an export is requested for a
	// period with no approved documents.
	ErrNothingToExport = errors.New("no documents in the selected period to export")

	// ErrDocumentUploadFailed is returned when storing a document binary fails.
	ErrDocumentUploadFailed = errors.New("document upload failed")
)

// DocumentErrorCode defines error codes for bookkeeping document errors.
// Format: DOC-XXYYYY where XX is category and YYYY is specific error.
type DocumentErrorCode string

const (
	// Ingestion errors (01XXXX)
	ErrCodeInvalidDocumentKind  DocumentErrorCode = "DOC-010001"
	ErrCodeDocumentUploadFailed DocumentErrorCode = "DOC-010002"
	ErrCodeNoFilesProvided      DocumentErrorCode = "DOC-010003"

	// Review errors (02XXXX)
	ErrCodeDocumentNotFound        DocumentErrorCode = "DOC-020001"
	ErrCodeDocumentAlreadyReviewed DocumentErrorCode = "DOC-020002"
	ErrCodeInvalidReviewAction     DocumentErrorCode = "DOC-020003"

	// Reporting errors (03XXXX)
	ErrCodeInvalidPeriod   DocumentErrorCode = "DOC-030001"
	ErrCodeInvalidBasis    DocumentErrorCode = "DOC-030002"
	ErrCodeNothingToExport DocumentErrorCode = "DOC-030003"
)

// DocumentError represents a document error with code and message.
type DocumentError struct {
	Code    DocumentErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *DocumentError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *DocumentError) Unwrap() error {
	return e.Err
}

// NewDocumentError creates a new DocumentError with the given code and message.
func NewDocumentError(code DocumentErrorCode, message string, err error) *DocumentError {
	return &DocumentError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
