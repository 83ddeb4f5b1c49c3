package postgres

import (
	"github.com/streamhive/streamhive/internal/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ownerFields limits a preloaded owner to its public display columns. The
// password hash and refresh token never leave the users table on a join.
func ownerFields(db *gorm.DB) *gorm.DB {
	return db.Select("id", "username", "full_name", "avatar")
}

// sortAndPage applies the sort and paginate stages of a ListQuery. The sort
// column has been validated against an allow-list upstream; it is still bound
// as a clause column rather than interpolated.
func sortAndPage(q repository.ListQuery) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Order(clause.OrderByColumn{Column: clause.Column{Name: q.SortBy}, Desc: !q.SortAsc}).
			Offset(q.Offset()).
			Limit(q.Limit)
	}
}
