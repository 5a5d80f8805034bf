package docstore

import "github.com/samber/lo"

// Op 条件类型
type Op int

const (
	OpEq       Op = iota // field = value
	OpIn                 // field IN values
	OpContains           // 列表字段包含value
)

// Direction 排序方向
type Direction int

const (
	Asc Direction = iota
	Desc
)

// Condition 单个过滤条件（多个条件之间是AND）
type Condition struct {
	Op     Op
	Field  string
	Values []string
}

// Sort 排序
type Sort struct {
	Field     string
	Direction Direction
}

// Query 由Option组装的查询描述，后端各自翻译
type Query struct {
	Conditions []Condition
	Fields     []string // 空表示全部字段
	Sort       *Sort

	// empty IN条件必然无结果，后端可以直接返回
	Empty bool
}

// Option 查询选项
type Option func(*Query)

// Where 等值条件
func Where(field, value string) Option {
	return func(q *Query) {
		q.Conditions = append(q.Conditions, Condition{Op: OpEq, Field: field, Values: []string{value}})
	}
}

// In 集合条件
func In(field string, values []string) Option {
	return func(q *Query) {
		if len(values) == 0 {
			q.Empty = true
			return
		}
		q.Conditions = append(q.Conditions, Condition{Op: OpIn, Field: field, Values: values})
	}
}

// Contains 列表字段（如genre_ids）包含某个值
func Contains(field, value string) Option {
	return func(q *Query) {
		q.Conditions = append(q.Conditions, Condition{Op: OpContains, Field: field, Values: []string{value}})
	}
}

// Select 字段投影，id总是返回
func Select(fields ...string) Option {
	return func(q *Query) {
		q.Fields = append(q.Fields, fields...)
	}
}

// SortBy 排序
func SortBy(field string, dir Direction) Option {
	return func(q *Query) {
		q.Sort = &Sort{Field: field, Direction: dir}
	}
}

// Build 应用全部选项
func Build(opts ...Option) Query {
	var q Query
	for _, opt := range opts {
		opt(&q)
	}
	if len(q.Fields) > 0 && !lo.Contains(q.Fields, "id") {
		q.Fields = append([]string{"id"}, q.Fields...)
	}
	return q
}
