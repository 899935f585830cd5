package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"ridedispatch/pkg/models"
	"ridedispatch/storage"
)

// mapError turns driver errors into storage sentinels so services never see pgx types.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return fmt.Errorf("%w: %s", storage.ErrConflict, pgErr.ConstraintName)
		case "23503":
			return fmt.Errorf("%w: %s", storage.ErrReference, pgErr.ConstraintName)
		}
	}
	return err
}

// orderClause renders ORDER BY from a whitelist of sortable columns.
func orderClause(q models.ListQuery, sortable map[string]string) string {
	col, ok := sortable[q.Sort]
	if !ok {
		col = sortable["id"]
	}
	dir := "ASC"
	if q.Desc {
		dir = "DESC"
	}
	return fmt.Sprintf(" ORDER BY %s %s", col, dir)
}

// whereBuilder accumulates positional conditions for list queries.
type whereBuilder struct {
	conds []string
	args  []interface{}
}

func (w *whereBuilder) add(cond string, arg interface{}) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, strings.ReplaceAll(cond, "?", fmt.Sprintf("$%d", len(w.args))))
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// search adds a case-insensitive substring match over the given columns.
// The term matches literally: LIKE wildcards in it are escaped.
func (w *whereBuilder) search(term string, cols ...string) {
	if term == "" {
		return
	}
	parts := make([]string, 0, len(cols))
	for _, c := range cols {
		parts = append(parts, c+` ILIKE '%' || ? || '%' ESCAPE '\'`)
	}
	w.add("("+strings.Join(parts, " OR ")+")", likeEscaper.Replace(term))
}

func (w *whereBuilder) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// page appends LIMIT/OFFSET placeholders and returns the full argument list.
func (w *whereBuilder) page(q models.ListQuery) (string, []interface{}) {
	args := append(append([]interface{}{}, w.args...), q.Limit, q.Offset())
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(w.args)+1, len(w.args)+2), args
}
