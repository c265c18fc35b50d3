package entities

import "errors"

// Error kinds. Every sentinel below wraps exactly one of them, so callers can
// branch on errors.Is(err, ErrNotFound) without knowing the specific entity.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation failed")
	ErrUnavailable   = errors.New("unavailable")
)

var (
	ErrUserNotFound        = kindError("user not found", ErrNotFound)
	ErrMaterialNotFound    = kindError("material not found", ErrNotFound)
	ErrLoanNotFound        = kindError("loan not found", ErrNotFound)
	ErrReservationNotFound = kindError("reservation not found", ErrNotFound)
	ErrFavouriteNotFound   = kindError("favourite not found", ErrNotFound)
	ErrRatingNotFound      = kindError("rating not found", ErrNotFound)
	ErrReviewNotFound      = kindError("review not found", ErrNotFound)
	ErrFriendshipNotFound  = kindError("friendship not found", ErrNotFound)

	ErrEmailExists      = kindError("email already registered", ErrAlreadyExists)
	ErrFriendshipExists = kindError("friendship already exists", ErrAlreadyExists)
	ErrFavouriteExists  = kindError("material already in favourites", ErrAlreadyExists)
	ErrRatingExists     = kindError("material already rated by user", ErrAlreadyExists)
	ErrReviewExists     = kindError("material already reviewed by user", ErrAlreadyExists)

	ErrInvalidRating       = kindError("rating must be between 0 and 5", ErrValidation)
	ErrSelfFriendship      = kindError("a user cannot befriend themselves", ErrValidation)
	ErrInvalidMaterialKind = kindError("unknown material kind", ErrValidation)
	ErrInvalidLoanDuration = kindError("loan duration not allowed", ErrValidation)
	ErrNothingToUpdate     = kindError("nothing to update", ErrValidation)

	ErrLoanAlreadyReturned = kindError("loan already returned", ErrUnavailable)
	ErrMaterialUnavailable = kindError("material is not available", ErrUnavailable)
)

type kindErr struct {
	msg  string
	kind error
}

func kindError(msg string, kind error) error {
	return &kindErr{msg: msg, kind: kind}
}

func (e *kindErr) Error() string { return e.msg }

func (e *kindErr) Unwrap() error { return e.kind }
