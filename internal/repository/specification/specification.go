package specification

import "gorm.io/gorm"

// Specification narrows a query. Repositories apply them in order, so
// combinations like ByID + UserOwnedBy compose without custom finders.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}
