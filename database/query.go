package database

import (
	"gorm.io/gorm"
)

// Page describes a pagination request. Page is 1-based; a zero value means
// "first page with the default size".
type Page struct {
	Page         int
	ItemsPerPage int
}

const DefaultItemsPerPage = 20

func (p Page) normalized() Page {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.ItemsPerPage < 1 {
		p.ItemsPerPage = DefaultItemsPerPage
	}
	return p
}

func (p Page) Offset() int {
	p = p.normalized()
	return (p.Page - 1) * p.ItemsPerPage
}

func (p Page) Limit() int {
	return p.normalized().ItemsPerPage
}

// Sort is a caller-supplied ordering override.
type Sort struct {
	Field     string
	Direction string
}

// Clause renders the sort as an ORDER BY fragment, falling back to the given
// default when the field is empty. Direction is normalized to ASC unless the
// caller asked for desc.
func (s Sort) Clause(defaultClause string) string {
	if s.Field == "" {
		return defaultClause
	}
	dir := "ASC"
	if s.Direction == "desc" || s.Direction == "DESC" {
		dir = "DESC"
	}
	return s.Field + " " + dir
}

// FindPage runs the filtered list query and its matching count inside one
// transaction so the page and total reflect a single snapshot.
func FindPage(db *gorm.DB, page Page, order string, dest interface{}, scope func(*gorm.DB) *gorm.DB) (int64, error) {
	var total int64
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := scope(tx.Session(&gorm.Session{})).Model(dest).Count(&total).Error; err != nil {
			return err
		}
		return scope(tx.Session(&gorm.Session{})).
			Order(order).
			Offset(page.Offset()).
			Limit(page.Limit()).
			Find(dest).Error
	})
	return total, err
}
