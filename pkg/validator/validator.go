// Package validator 声明式表单校验链
//
// 每个字段一条链：按声明顺序依次执行清洗(trim/escape)和校验(required/日期/枚举)，
// 链与链之间互不影响，所有失败都会被收集（不短路），便于表单一次性展示全部错误。
// 校验是纯函数：不做I/O，不依赖gin.Context。
package validator

import (
	"net/url"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// FieldError 单个字段错误
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// step 链上的一个环节：sanitize和rule二选一
type step struct {
	sanitize func(string) string
	rule     validation.Rule
	message  string
}

// Chain 单个字段的规则链
type Chain struct {
	field    string
	optional bool
	each     bool
	date     bool
	steps    []step
}

// Field 声明一个字段的规则链
func Field(name string) *Chain {
	return &Chain{field: name}
}

// Optional 值为falsy（缺失或空串）时跳过整条链：不报错，也不产生解析后的日期
func (c *Chain) Optional() *Chain {
	c.optional = true
	return c
}

// Each 多值字段（如genre复选框），规则逐个作用于每个值
func (c *Chain) Each() *Chain {
	c.each = true
	return c
}

// Trim 去除首尾空白
func (c *Chain) Trim() *Chain {
	return c.Sanitize(strings.TrimSpace)
}

// Escape HTML转义
func (c *Chain) Escape() *Chain {
	return c.Sanitize(Escape)
}

// Sanitize 自定义清洗函数
func (c *Chain) Sanitize(fn func(string) string) *Chain {
	c.steps = append(c.steps, step{sanitize: fn})
	return c
}

// Required 非空校验
func (c *Chain) Required(message string) *Chain {
	return c.Check(validation.Required, message)
}

// MinLength 最小长度（按字符数），空值同样视为失败
func (c *Chain) MinLength(min int, message string) *Chain {
	return c.Check(validation.By(func(value interface{}) error {
		s, _ := value.(string)
		if err := validation.Validate(s, validation.Required); err != nil {
			return err
		}
		return validation.Validate(s, validation.RuneLength(min, 0))
	}), message)
}

// OneOf 枚举校验，空值跳过（由调用方决定默认值）
func (c *Chain) OneOf(message string, allowed ...string) *Chain {
	elems := make([]interface{}, len(allowed))
	for i, v := range allowed {
		elems[i] = v
	}
	return c.Check(validation.In(elems...), message)
}

// ISO8601 日期校验，通过后可以用Result.Date取到解析后的时间
func (c *Chain) ISO8601(message string) *Chain {
	c.date = true
	return c.Check(validation.By(func(value interface{}) error {
		s, _ := value.(string)
		if _, ok := ParseISO8601(s); !ok {
			return validation.NewError("validation_is_iso8601", message)
		}
		return nil
	}), message)
}

// Check 挂载任意ozzo规则
func (c *Chain) Check(rule validation.Rule, message string) *Chain {
	c.steps = append(c.steps, step{rule: rule, message: message})
	return c
}

// run 执行整条链，返回清洗后的值和错误
func (c *Chain) run(raw []string) ([]string, []FieldError) {
	if !c.each {
		v := ""
		if len(raw) > 0 {
			v = raw[0]
		}
		raw = []string{v}
	}

	if c.optional && isFalsy(raw) {
		return raw, nil
	}

	out := make([]string, len(raw))
	var errs []FieldError
	for i, v := range raw {
		for _, s := range c.steps {
			if s.sanitize != nil {
				v = s.sanitize(v)
				continue
			}
			if err := validation.Validate(v, s.rule); err != nil {
				errs = append(errs, FieldError{Field: c.field, Message: s.message})
			}
		}
		out[i] = v
	}
	return out, errs
}

func isFalsy(raw []string) bool {
	for _, v := range raw {
		if v != "" {
			return false
		}
	}
	return true
}

// Schema 一个表单的全部规则链（按声明顺序）
type Schema struct {
	chains []*Chain
}

// NewSchema 创建表单schema
func NewSchema(chains ...*Chain) *Schema {
	return &Schema{chains: chains}
}

// Validate 对提交的表单执行全部规则链
func (s *Schema) Validate(form url.Values) *Result {
	r := &Result{
		values: make(map[string][]string, len(s.chains)),
		dates:  make(map[string]time.Time),
	}
	for _, c := range s.chains {
		vals, errs := c.run(form[c.field])
		r.values[c.field] = vals
		r.Errors = append(r.Errors, errs...)

		if c.date && len(errs) == 0 && len(vals) > 0 && vals[0] != "" {
			if t, ok := ParseISO8601(vals[0]); ok {
				r.dates[c.field] = t
			}
		}
	}
	return r
}

// Result 校验结果：清洗后的值 + 有序错误列表
// 无论校验是否通过，都可以用清洗后的值构造候选实体（用于回显表单）
type Result struct {
	values map[string][]string
	dates  map[string]time.Time
	Errors []FieldError
}

// Valid 是否全部通过
func (r *Result) Valid() bool {
	return len(r.Errors) == 0
}

// Value 单值字段清洗后的值
func (r *Result) Value(field string) string {
	vals := r.values[field]
	if len(vals) == 0 {
		return ""
	}
	return vals[0]
}

// Values 多值字段清洗后的值（去掉空串）
func (r *Result) Values(field string) []string {
	out := make([]string, 0, len(r.values[field]))
	for _, v := range r.values[field] {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Date 解析后的日期，字段为空或未通过校验时返回nil
func (r *Result) Date(field string) *time.Time {
	t, ok := r.dates[field]
	if !ok {
		return nil
	}
	return &t
}

// AddError 追加校验之外的错误（如引用的记录不存在）
func (r *Result) AddError(field, message string) {
	r.Errors = append(r.Errors, FieldError{Field: field, Message: message})
}
