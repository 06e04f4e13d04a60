package pagination

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

const (
	DefaultLimit = 50
	MaxLimit     = 250
)

type Pagination struct {
	Limit  int `form:"limit,default=50" validate:"gte=1,lte=250"`
	Offset int `form:"offset" validate:"gte=0"`
}

// Normalize clamps limit/offset into the supported range.
func (p Pagination) Normalize() Pagination {
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

func (p Pagination) Apply(stmt *gorm.DB) *gorm.DB {
	p = p.Normalize()
	return stmt.Limit(p.Limit).Offset(p.Offset)
}

// Sort is a whitelisted order-by clause. Columns not in the whitelist fall
// back to the default so client input never reaches the SQL string raw.
type Sort struct {
	Column     string
	Descending bool
}

func ParseSort(column, order string, allowed []string, def Sort) Sort {
	column = strings.ToLower(strings.TrimSpace(column))
	sort := def
	for _, candidate := range allowed {
		if column == candidate {
			sort.Column = column
			break
		}
	}
	switch strings.ToLower(strings.TrimSpace(order)) {
	case "asc":
		sort.Descending = false
	case "desc":
		sort.Descending = true
	}
	return sort
}

func (s Sort) OrderClause() string {
	direction := "asc"
	if s.Descending {
		direction = "desc"
	}
	return fmt.Sprintf("%s %s", s.Column, direction)
}
