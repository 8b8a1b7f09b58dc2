package services

// ConflictError marks a delete or update that is blocked by dependent
// records, mapped to 409 at the HTTP layer.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}
