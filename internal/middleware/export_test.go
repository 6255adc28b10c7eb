package middleware

// MemoryStoreLen reports how many keys s currently holds.
func MemoryStoreLen(s *MemoryRateLimitStore) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.counts)
}
