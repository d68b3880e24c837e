package scope

import (
	"strings"

	"gorm.io/gorm"
)

// NotDeleted hides soft-deleted rows of tables carrying an is_deleted flag.
func NotDeleted(table string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column(table, "is_deleted")+" = ?", false)
	}
}

func Blocked(table string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column(table, "is_blocked")+" = ?", true)
	}
}

// NameSearch matches q case-insensitively against first or last name.
// An empty q leaves the query untouched.
func NameSearch(table, q string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		q = strings.TrimSpace(q)
		if q == "" {
			return db
		}
		like := "%" + q + "%"
		return db.Where(
			"("+column(table, "first_name")+" ILIKE ? OR "+column(table, "last_name")+" ILIKE ?)",
			like, like,
		)
	}
}

func Status(table, status string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if status == "" {
			return db
		}
		return db.Where(column(table, "status")+" = ?", status)
	}
}

func Paginate(page, pageSize int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page < 1 {
			page = 1
		}
		if pageSize < 1 {
			pageSize = 10
		}
		return db.Offset((page - 1) * pageSize).Limit(pageSize)
	}
}

func column(table, name string) string {
	if table == "" {
		return name
	}
	return table + "." + name
}
