package specification

import "gorm.io/gorm"

// ByEmail matches the raw email string. Matching is case-sensitive: the
// uniqueness invariant is on the exact string as registered.
type ByEmail struct {
	Email string
}

func (s ByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("email = ?", s.Email)
}
