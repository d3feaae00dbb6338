package repositories

import (
	"context"
	"errors"
	"fmt"

	"operations-api/internal/models"
	"operations-api/internal/predicate"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrInvalidPageRequest = errors.New("invalid page request")
	ErrUnknownSortField   = errors.New("unknown sort field")
)

// findPage runs one paginated, sorted query against the table of T. A nil
// filter takes the unfiltered path: no WHERE clause is emitted at all.
func findPage[T any](ctx context.Context, db *gorm.DB, filter predicate.Predicate, page models.PageRequest) (*models.Page[T], error) {
	if page.Page < 0 || page.Size <= 0 {
		return nil, ErrInvalidPageRequest
	}

	order, err := orderBy[T](db, page)
	if err != nil {
		return nil, err
	}

	var rows []T
	var total int64

	query := db.WithContext(ctx).Model(new(T))
	query = predicate.Apply(query, filter)

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count rows: %w", err)
	}

	if err := query.Order(order).
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to find rows: %w", err)
	}

	return models.NewPage(rows, total, page), nil
}

// orderBy maps the API sort field to its column. The default and
// "startedAt" sort by started_at; any other name is converted with the
// naming strategy and must name a column of T.
func orderBy[T any](db *gorm.DB, page models.PageRequest) (clause.OrderByColumn, error) {
	column := models.ColumnStartedAt
	if page.SortField != "" && page.SortField != models.DefaultSortField {
		column = db.NamingStrategy.ColumnName("", page.SortField)

		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(new(T)); err != nil {
			return clause.OrderByColumn{}, fmt.Errorf("failed to parse model: %w", err)
		}
		if field := stmt.Schema.LookUpField(column); field == nil || field.DBName == "" {
			return clause.OrderByColumn{}, fmt.Errorf("%w: %s", ErrUnknownSortField, page.SortField)
		}
	}

	return clause.OrderByColumn{
		Column: clause.Column{Name: column},
		Desc:   page.Descending(),
	}, nil
}
