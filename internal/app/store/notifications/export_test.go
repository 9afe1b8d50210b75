package notificationstore

import "time"

// SetNow pins the store clock in tests.
func (s *Store) SetNow(fn func() time.Time) { s.now = fn }
