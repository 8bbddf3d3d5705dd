package services

import "errors"

// Domain rejections surfaced by the service layer. Controllers map these to
// 4xx responses; anything else is an infrastructure failure and becomes a 500.
var (
	// ErrInvalidQuantity: non-positive quantity supplied to a stock mutation.
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")

	// ErrInsufficientStock: a sale or adjustment would take quantity below zero.
	ErrInsufficientStock = errors.New("insufficient stock on hand")

	// ErrItemNotFound: the mutation target does not exist.
	ErrItemNotFound = errors.New("inventory item not found")

	// ErrItemArchived: mutations on archived items are rejected.
	ErrItemArchived = errors.New("inventory item is archived")

	// ErrTotalMismatch: a sale's totalAmount does not equal quantity times unitPrice.
	ErrTotalMismatch = errors.New("total amount does not match quantity times unit price")

	// ErrInvalidCredentials: unknown or inactive associate code at login.
	ErrInvalidCredentials = errors.New("invalid associate code")

	// ErrSKUGeneration: could not generate a unique SKU after retrying.
	ErrSKUGeneration = errors.New("could not generate a unique sku")

	// ErrNotFound: generic lookup miss for non-item entities.
	ErrNotFound = errors.New("record not found")
)
