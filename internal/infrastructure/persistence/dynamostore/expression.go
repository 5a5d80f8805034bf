package dynamostore

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/samber/lo"

	"github.com/xiebiao/locallibrary/internal/infrastructure/persistence/docstore"
)

// DynamoDB的IN最多100个操作数，超过时拆成多个IN用OR连接
const maxInOperands = 100

// expression Scan用的过滤/投影表达式
type expression struct {
	filter     string
	projection string
	names      map[string]string
	values     map[string]types.AttributeValue
}

// buildExpression docstore条件 → FilterExpression，字段投影 → ProjectionExpression
// 字段名一律走ExpressionAttributeNames，避免与保留字(name、status)冲突
func buildExpression(conds []docstore.Condition, fields []string) expression {
	e := expression{
		names:  map[string]string{},
		values: map[string]types.AttributeValue{},
	}

	clauses := make([]string, 0, len(conds))
	for i, cond := range conds {
		name := fmt.Sprintf("#f%d", i)
		e.names[name] = cond.Field

		switch cond.Op {
		case docstore.OpEq:
			v := fmt.Sprintf(":v%d", i)
			e.values[v] = &types.AttributeValueMemberS{Value: cond.Values[0]}
			clauses = append(clauses, fmt.Sprintf("%s = %s", name, v))
		case docstore.OpContains:
			v := fmt.Sprintf(":v%d", i)
			e.values[v] = &types.AttributeValueMemberS{Value: cond.Values[0]}
			clauses = append(clauses, fmt.Sprintf("contains(%s, %s)", name, v))
		case docstore.OpIn:
			var groups []string
			for g, chunk := range lo.Chunk(cond.Values, maxInOperands) {
				placeholders := make([]string, len(chunk))
				for j, val := range chunk {
					v := fmt.Sprintf(":v%d_%d_%d", i, g, j)
					e.values[v] = &types.AttributeValueMemberS{Value: val}
					placeholders[j] = v
				}
				groups = append(groups, fmt.Sprintf("%s IN (%s)", name, strings.Join(placeholders, ", ")))
			}
			clause := strings.Join(groups, " OR ")
			if len(groups) > 1 {
				clause = "(" + clause + ")"
			}
			clauses = append(clauses, clause)
		}
	}
	e.filter = strings.Join(clauses, " AND ")

	if len(fields) > 0 {
		placeholders := make([]string, len(fields))
		for i, f := range fields {
			name := fmt.Sprintf("#p%d", i)
			e.names[name] = f
			placeholders[i] = name
		}
		e.projection = strings.Join(placeholders, ", ")
	}
	return e
}

func (e expression) apply(input *dynamodb.ScanInput) {
	if e.filter != "" {
		input.FilterExpression = aws.String(e.filter)
	}
	if e.projection != "" {
		input.ProjectionExpression = aws.String(e.projection)
	}
	if len(e.names) > 0 {
		input.ExpressionAttributeNames = e.names
	}
	if len(e.values) > 0 {
		input.ExpressionAttributeValues = e.values
	}
}

// sortItems 按字段排序原始item，缺失的字段按空串处理
func sortItems(items []map[string]types.AttributeValue, field string, desc bool) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := attrString(items[i][field]), attrString(items[j][field])
		if desc {
			return a > b
		}
		return a < b
	})
}

func attrString(av types.AttributeValue) string {
	switch v := av.(type) {
	case *types.AttributeValueMemberS:
		return v.Value
	case *types.AttributeValueMemberN:
		return v.Value
	default:
		return ""
	}
}
