package repository

import "errors"

// ErrStockInsuficiente is returned by conditional stock decrements when the
// row no longer holds the requested quantity.
var ErrStockInsuficiente = errors.New("stock insuficiente")
