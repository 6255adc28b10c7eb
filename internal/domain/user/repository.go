package user

// UpdateResult reports the outcome of a partial update
type UpdateResult struct {
	// Matched is the number of records that matched the identifier
	Matched int64

	// Modified is the number of records whose fields actually changed
	Modified int64
}
