// Package memstore 进程内文档集合（store.driver=memory），用于本地演示和测试
//
// 文档以JSON map形式保存，字段名即json tag，与其他后端的字段名一致。
package memstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/samber/lo"
	"github.com/xiebiao/locallibrary/internal/infrastructure/persistence/docstore"
)

type record = map[string]interface{}

// Collection 内存集合，保留插入顺序
type Collection[T any] struct {
	mu    sync.RWMutex
	docs  map[string]record
	order []string
}

// New 创建内存集合
func New[T any]() *Collection[T] {
	return &Collection[T]{docs: make(map[string]record)}
}

var _ docstore.Collection[struct{}] = (*Collection[struct{}])(nil)

func (c *Collection[T]) FindByID(ctx context.Context, id string) (*T, error) {
	c.mu.RLock()
	doc, ok := c.docs[id]
	c.mu.RUnlock()
	if !ok {
		return nil, docstore.ErrNotFound
	}
	return decode[T](doc)
}

func (c *Collection[T]) Find(ctx context.Context, opts ...docstore.Option) ([]T, error) {
	q := docstore.Build(opts...)
	if q.Empty {
		return []T{}, nil
	}

	c.mu.RLock()
	matched := make([]record, 0, len(c.order))
	for _, id := range c.order {
		if doc := c.docs[id]; match(doc, q.Conditions) {
			matched = append(matched, doc)
		}
	}
	c.mu.RUnlock()

	if q.Sort != nil {
		field, desc := q.Sort.Field, q.Sort.Direction == docstore.Desc
		sort.SliceStable(matched, func(i, j int) bool {
			a, b := stringOf(matched[i][field]), stringOf(matched[j][field])
			if desc {
				return a > b
			}
			return a < b
		})
	}

	out := make([]T, 0, len(matched))
	for _, doc := range matched {
		if len(q.Fields) > 0 {
			doc = lo.PickByKeys(doc, q.Fields)
		}
		t, err := decode[T](doc)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, nil
}

func (c *Collection[T]) Count(ctx context.Context, opts ...docstore.Option) (int64, error) {
	q := docstore.Build(opts...)
	if q.Empty {
		return 0, nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	var n int64
	for _, doc := range c.docs {
		if match(doc, q.Conditions) {
			n++
		}
	}
	return n, nil
}

func (c *Collection[T]) Create(ctx context.Context, t *T) error {
	doc, err := encode(t)
	if err != nil {
		return err
	}
	id := stringOf(doc["id"])
	if id == "" {
		return fmt.Errorf("memstore: document has no id")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.docs[id]; ok {
		return fmt.Errorf("memstore: duplicate id %s", id)
	}
	c.docs[id] = doc
	c.order = append(c.order, id)
	return nil
}

func (c *Collection[T]) UpdateByID(ctx context.Context, id string, t *T) error {
	doc, err := encode(t)
	if err != nil {
		return err
	}
	doc["id"] = id

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.docs[id]; !ok {
		return docstore.ErrNotFound
	}
	c.docs[id] = doc
	return nil
}

func (c *Collection[T]) DeleteByID(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.docs[id]; !ok {
		return docstore.ErrNotFound
	}
	delete(c.docs, id)
	c.order = lo.Without(c.order, id)
	return nil
}

// =========================================
// 辅助函数
// =========================================

func match(doc record, conds []docstore.Condition) bool {
	for _, cond := range conds {
		v := doc[cond.Field]
		switch cond.Op {
		case docstore.OpEq:
			if stringOf(v) != cond.Values[0] {
				return false
			}
		case docstore.OpIn:
			if !lo.Contains(cond.Values, stringOf(v)) {
				return false
			}
		case docstore.OpContains:
			list, _ := v.([]interface{})
			if !lo.ContainsBy(list, func(item interface{}) bool { return stringOf(item) == cond.Values[0] }) {
				return false
			}
		}
	}
	return true
}

func stringOf(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}

func encode[T any](t *T) (record, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	var doc record
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func decode[T any](doc record) (*T, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var t T
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	return &t, nil
}
