package postgres

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"khata/internal/domain"
)

// buildLedgerWhere constructs the WHERE clause shared by invoice and purchase
// listings. searchColumns are the expressions matched against filter.Query.
func buildLedgerWhere(tenantID uuid.UUID, filter domain.LedgerFilter, searchColumns ...string) (clause string, args []interface{}) {
	args = []interface{}{tenantID}
	clause = "WHERE tenant_id = $1"
	argN := 2

	if filter.From != nil {
		clause += fmt.Sprintf(" AND date >= $%d", argN)
		args = append(args, *filter.From)
		argN++
	}
	if filter.To != nil {
		clause += fmt.Sprintf(" AND date <= $%d", argN)
		args = append(args, *filter.To)
		argN++
	}
	if q := strings.TrimSpace(filter.Query); q != "" && len(searchColumns) > 0 {
		matches := make([]string, len(searchColumns))
		for i, col := range searchColumns {
			matches[i] = fmt.Sprintf("%s ILIKE $%d", col, argN)
		}
		clause += " AND (" + strings.Join(matches, " OR ") + ")"
		args = append(args, "%"+escapeLike(q)+"%")
		argN++
	}
	switch {
	case filter.Status != "":
		clause += fmt.Sprintf(" AND status = $%d", argN)
		args = append(args, string(filter.Status))
	case filter.Outstanding:
		clause += " AND status IN ('unpaid', 'partial')"
	}

	return clause, args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// pageBounds clamps offset and limit for listing queries.
func pageBounds(filter domain.LedgerFilter) (offset, limit int) {
	offset, limit = filter.Offset, filter.Limit
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = 20
	}
	return offset, limit
}
