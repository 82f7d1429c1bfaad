package postgres

import (
	"database/sql"

	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/types"
	"github.com/lib/pq"
	"github.com/samber/lo"
)

func nullStringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}

func nullIntPtr(i sql.NullInt64) *int {
	if !i.Valid {
		return nil
	}
	return lo.ToPtr(int(i.Int64))
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func toNullInt(i *int) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*i), Valid: true}
}

// daysFromArray keeps NULL distinct from an empty array
func daysFromArray(a pq.StringArray) types.DaysOfWeek {
	if a == nil {
		return nil
	}
	return lo.Map(a, func(s string, _ int) types.Weekday { return types.Weekday(s) })
}

func daysToArray(d types.DaysOfWeek) pq.StringArray {
	if d == nil {
		return nil
	}
	return lo.Map(d, func(w types.Weekday, _ int) string { return string(w) })
}

func monthsFromArray(a pq.Int64Array) []int {
	return lo.Map(a, func(m int64, _ int) int { return int(m) })
}

func monthsToArray(m []int) pq.Int64Array {
	return lo.Map(m, func(v int, _ int) int64 { return int64(v) })
}
