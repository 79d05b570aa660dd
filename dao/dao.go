// dao/dao.go
package dao

import (
	"strings"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "PRIMARY KEY")
}

func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern wraps s for a substring LIKE with ESCAPE '\'.
func likePattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// setClause accumulates the columns of a partial update.
type setClause struct {
	cols []string
	args []interface{}
}

func (s *setClause) add(col string, value interface{}) {
	s.cols = append(s.cols, col+" = ?")
	s.args = append(s.args, value)
}

func (s *setClause) empty() bool {
	return len(s.cols) == 0
}

func (s *setClause) sql() string {
	return strings.Join(s.cols, ", ")
}
