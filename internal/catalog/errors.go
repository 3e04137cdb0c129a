package catalog

import "errors"

var (
	// ErrDuplicateBarcode means another product already carries the
	// barcode. Surfaced to the user as an actionable message.
	ErrDuplicateBarcode = errors.New("barcode already exists")

	// ErrDuplicateCategory means a category with the same name already
	// exists. Enforced by the usecase, not the store (legacy snapshots
	// with duplicate names still restore).
	ErrDuplicateCategory = errors.New("category already exists")

	// ErrInvalidInput covers rejected write inputs (missing id on update,
	// negative price, empty barcode, ...).
	ErrInvalidInput = errors.New("invalid input")
)
