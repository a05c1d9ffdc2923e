package chat

import "errors"

// Domain errors represent business rule failures surfaced to the transport
// layer. These are distinct from provider errors, which are wrapped with
// context where they occur.
var (
	// ErrDocumentTooShort indicates an upload with fewer than the minimum
	// number of characters after trimming.
	ErrDocumentTooShort = errors.New("document too short or empty")

	// ErrUnreadableDocument indicates an upload that could not be decoded
	// as text.
	ErrUnreadableDocument = errors.New("unable to read file")

	// ErrTenantMismatch indicates a request whose body tenant id disagrees
	// with the X-Tenant-ID header.
	ErrTenantMismatch = errors.New("tenant ID mismatch")
)
