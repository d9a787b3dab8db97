package repository

import (
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"
)

// ListQuery describes a filtered, paginated listing. Column names come from code, never from
// the request, so they are interpolated as-is.
type ListQuery struct {
	SearchColumn string
	Search       string
	Filters      map[string]interface{}
	OrderBy      string
	Offset       int
	Limit        int
}

type crud[T any] struct {
	db *gorm.DB
}

func (r crud[T]) Create(item *T) error {
	return r.db.Create(item).Error
}

func (r crud[T]) GetByID(id uint) (*T, error) {
	var item T
	if err := r.db.First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r crud[T]) List(q ListQuery) ([]T, int64, error) {
	base := r.filtered(q).Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	tx := base
	if q.OrderBy != "" {
		tx = tx.Order(q.OrderBy)
	}
	if q.Offset > 0 {
		tx = tx.Offset(q.Offset)
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	items := make([]T, 0)
	if err := tx.Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// UpdateFields applies fields to every row matching filter and returns the affected row count.
func (r crud[T]) UpdateFields(filter map[string]interface{}, fields map[string]interface{}) (int64, error) {
	result := r.db.Model(new(T)).Where(filter).Updates(fields)
	return result.RowsAffected, result.Error
}

func (r crud[T]) Delete(id uint) (int64, error) {
	result := r.db.Delete(new(T), id)
	return result.RowsAffected, result.Error
}

func (r crud[T]) Count(filter map[string]interface{}) (int64, error) {
	var count int64
	tx := r.db.Model(new(T))
	if len(filter) > 0 {
		tx = tx.Where(filter)
	}
	err := tx.Count(&count).Error
	return count, err
}

// Random returns up to size rows in random order.
func (r crud[T]) Random(size int) ([]T, error) {
	items := make([]T, 0, size)
	err := r.db.Order("RANDOM()").Limit(size).Find(&items).Error
	return items, err
}

func (r crud[T]) filtered(q ListQuery) *gorm.DB {
	tx := r.db.Model(new(T))

	keys := make([]string, 0, len(q.Filters))
	for k := range q.Filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		tx = tx.Where(fmt.Sprintf("%s = ?", k), q.Filters[k])
	}

	if q.SearchColumn != "" && strings.TrimSpace(q.Search) != "" {
		tx = tx.Where(fmt.Sprintf("LOWER(%s) LIKE ? ESCAPE '\\'", q.SearchColumn), containsPattern(q.Search))
	}
	return tx
}

func containsPattern(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
	return "%" + s + "%"
}
