package repositories

import (
	"errors"

	gomysql "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a statement matched no row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEntry is returned when a unique constraint rejects a write.
	ErrDuplicateEntry = errors.New("duplicate entry")
)

const mysqlDuplicateEntry = 1062

func isDuplicateEntry(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *gomysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}
