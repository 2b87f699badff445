package users

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"usersvc/lib/metrics"
	"usersvc/lib/query"
	"usersvc/shared/logger"
)

// QueryType labels the listing query in the query-duration histogram
const QueryType = "users_query"

// Selector is the part of the database driver the store needs
type Selector interface {
	Select(ctx context.Context, dest any, sql string, args ...any) error
}

// Store reads user listings from the relational store
type Store struct {
	db      Selector
	metrics metrics.Recorder
}

// NewStore creates a Store
func NewStore(db Selector, rec metrics.Recorder) *Store {
	return &Store{db: db, metrics: rec}
}

// BuildListQuery renders the listing statement for postgres. The division,
// when present, is the only bound parameter.
func BuildListQuery(p ListParams) (string, []any, error) {
	b := query.Select("users u").
		Fields(
			"u.id",
			"u.username",
			"u.full_name",
			"u.birth_date",
			"u.bio",
			"u.long_bio",
			"u.profile_json",
			"u.address",
			"u.phone_number",
			"u.created_at",
			"u.updated_at",
			"a.email",
			"ur.role",
			"ud.division_name",
		).
		LeftJoin("auth a", "u.auth_id = a.id").
		LeftJoin("user_roles ur", "u.id = ur.user_id").
		LeftJoin("user_divisions ud", "u.id = ud.user_id")

	if division, ok := p.Filter(); ok {
		b.Where("ud.division_name", query.EQ, "division", division)
	}

	return b.OrderByDesc("u.created_at").
		Limit(p.Limit).
		Offset(p.Offset).
		Build().
		Render(sqlx.DOLLAR)
}

// List runs the listing query and maps every row. Errors are
// *RequestFailure values tagged with the failing stage.
func (s *Store) List(ctx context.Context, p ListParams) ([]UserRecord, error) {
	sql, args, err := BuildListQuery(p)
	if err != nil {
		return nil, fail(StageQuery, err)
	}

	var rows []userRow
	start := time.Now()
	err = s.db.Select(ctx, &rows, sql, args...)
	elapsed := time.Since(start)
	s.metrics.ObserveQueryDuration(QueryType, elapsed)

	logger.Debug("Users query executed",
		logger.Duration("duration", elapsed),
		logger.Int("rows", len(rows)),
		logger.Bool("filtered", len(args) > 0))

	if err != nil {
		return nil, fail(StageQuery, err)
	}

	limit := p.Limit
	if limit <= 0 || limit > MaxPageSize {
		limit = MaxPageSize
	}
	if len(rows) > limit {
		logger.Warn("Store returned more rows than the page size",
			logger.Int("rows", len(rows)),
			logger.Int("limit", limit))
		rows = rows[:limit]
	}

	records := make([]UserRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := row.toRecord()
		if err != nil {
			return nil, fail(StageMap, err)
		}
		records = append(records, rec)
	}
	return records, nil
}
