package catalog

import "errors"

var (
	// ErrProductNotFound reports a lookup, update or delete that
	// matched no product.
	ErrProductNotFound = errors.New("product not found")
	// ErrDuplicateID reports a create with an ID already in the catalog.
	ErrDuplicateID = errors.New("product id already exists")
	// ErrMissingFields reports a create without id, name, price or type.
	ErrMissingFields = errors.New("missing required product fields")
	// ErrInvalidPrice reports a price value that does not parse as a number.
	ErrInvalidPrice = errors.New("invalid product price")
)
