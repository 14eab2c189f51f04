package v1

import (
	"fmt"

	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// nameFilters applies the LIKE based name and search filters. An
// explicitly empty name parameter matches resources with an empty name.
func nameFilters(db, query *gorm.DB, setFields []string, name, search string) *gorm.DB {
	if name != "" {
		query = query.Where("name LIKE ?", fmt.Sprintf("%%%s%%", name))
	} else if slices.Contains(setFields, "Name") {
		query = query.Where("name = ''")
	}

	if search != "" {
		query = query.Where(
			db.Where("name LIKE ?", fmt.Sprintf("%%%s%%", search)).Or(
				db.Where("wbs LIKE ?", fmt.Sprintf("%%%s%%", search)),
			),
		)
	}

	return query
}
