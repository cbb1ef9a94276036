package refptr

// Dropper is optionally implemented by resource values that need cleanup.
// When the last strong pointer to a resource releases it, Drop is called
// exactly once before the reference is discarded.
type Dropper interface {
	Drop()
}
