package model

// Standard error codes for API responses
const (
	ErrCodeValidationFailed      = "VALIDATION_FAILED"
	ErrCodeUnauthorized          = "UNAUTHORIZED"
	ErrCodeForbidden             = "FORBIDDEN"
	ErrCodeNotFound              = "NOT_FOUND"
	ErrCodeConflict              = "CONFLICT"
	ErrCodeInsufficientInventory = "INSUFFICIENT_INVENTORY"
	ErrCodeInternalError         = "INTERNAL_ERROR"
)

// DomainError is a business-logic error that maps onto a single HTTP status.
type DomainError struct {
	Code    string
	Message string
}

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

// NewValidationError creates a VALIDATION_FAILED error aggregating one or
// more field-level violations into a single message.
func NewValidationError(violations ...string) *DomainError {
	msg := "validation failed"
	if len(violations) > 0 {
		msg = violations[0]
		for _, v := range violations[1:] {
			msg += ", " + v
		}
	}
	return NewDomainError(ErrCodeValidationFailed, msg)
}

// Common domain errors
var (
	ErrUserNotFound          = NewDomainError(ErrCodeNotFound, "User not found")
	ErrProductNotFound       = NewDomainError(ErrCodeNotFound, "Product not found")
	ErrCategoryNotFound      = NewDomainError(ErrCodeNotFound, "Category not found")
	ErrCartNotFound          = NewDomainError(ErrCodeNotFound, "Cart not found")
	ErrOrderNotFound         = NewDomainError(ErrCodeNotFound, "Order not found")
	ErrReviewNotFound        = NewDomainError(ErrCodeNotFound, "Review not found")
	ErrAddressNotFound       = NewDomainError(ErrCodeNotFound, "Address not found")
	ErrItemNotInCart         = NewDomainError(ErrCodeNotFound, "Item not in cart")
	ErrEmptyCart             = NewDomainError(ErrCodeValidationFailed, "Cart is empty")
	ErrInsufficientInventory = NewDomainError(ErrCodeInsufficientInventory, "Insufficient inventory")
	ErrEmailTaken            = NewDomainError(ErrCodeConflict, "User already exists")
	ErrDuplicateSKU          = NewDomainError(ErrCodeConflict, "Duplicate field value entered")
	ErrDuplicateReview       = NewDomainError(ErrCodeConflict, "You have already reviewed this product")
	ErrCategoryHasProducts   = NewDomainError(ErrCodeConflict, "Cannot delete category with products")
	ErrCategoryHasChildren   = NewDomainError(ErrCodeConflict, "Cannot delete category with subcategories")
	ErrInvalidCredentials    = NewDomainError(ErrCodeUnauthorized, "Invalid credentials")
	ErrWrongPassword         = NewDomainError(ErrCodeUnauthorized, "Current password is incorrect")
	ErrNotAuthenticated      = NewDomainError(ErrCodeUnauthorized, "Not authorized to access this route")
	ErrNotAuthorized         = NewDomainError(ErrCodeForbidden, "Not authorized to access this route")
)
