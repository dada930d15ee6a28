package cart

import "errors"

// ErrItemNotFound reports a quantity update targeting an item that is
// not in the cart.
var ErrItemNotFound = errors.New("cart item not found")
