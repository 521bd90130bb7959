package domain

import "errors"

var (
	ErrNotFound   = errors.New("product not found")
	ErrOutOfStock = errors.New("product out of stock")
)
