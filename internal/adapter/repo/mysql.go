package repo

import (
	"errors"
	"strings"

	"github.com/aq2208/oms-api/internal/usecase"
	"github.com/go-sql-driver/mysql"
)

const mysqlDupEntry = 1062

// dupNameErr maps a unique-key violation on the name column to the
// validation-style field error the API contract promises, keeping the store's
// constraint as the source of truth for uniqueness.
func dupNameErr(err error, entity string) error {
	var merr *mysql.MySQLError
	if errors.As(err, &merr) && merr.Number == mysqlDupEntry {
		return usecase.FieldErrors{"name": entity + " with this name already exists."}
	}
	return err
}

// placeholders renders "?,?,?" for n args.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
