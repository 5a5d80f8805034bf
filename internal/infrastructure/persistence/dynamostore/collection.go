package dynamostore

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/xiebiao/locallibrary/internal/infrastructure/persistence/docstore"
)

// Collection 一张DynamoDB表
type Collection[T any] struct {
	client API
	table  string
}

// NewCollection 创建集合
func NewCollection[T any](client API, table string) *Collection[T] {
	return &Collection[T]{client: client, table: table}
}

var _ docstore.Collection[struct{}] = (*Collection[struct{}])(nil)

func (c *Collection[T]) FindByID(ctx context.Context, id string) (*T, error) {
	out, err := c.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(c.table),
		Key:       key(id),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, docstore.ErrNotFound
	}

	var doc T
	if err := attributevalue.UnmarshalMap(out.Item, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal %s item: %w", c.table, err)
	}
	return &doc, nil
}

func (c *Collection[T]) Find(ctx context.Context, opts ...docstore.Option) ([]T, error) {
	q := docstore.Build(opts...)
	docs := []T{}
	if q.Empty {
		return docs, nil
	}

	input := &dynamodb.ScanInput{TableName: aws.String(c.table)}
	expr := buildExpression(q.Conditions, q.Fields)
	expr.apply(input)

	var items []map[string]types.AttributeValue
	paginator := dynamodb.NewScanPaginator(c.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		items = append(items, page.Items...)
	}

	if q.Sort != nil {
		sortItems(items, q.Sort.Field, q.Sort.Direction == docstore.Desc)
	}

	if err := attributevalue.UnmarshalListOfMaps(items, &docs); err != nil {
		return nil, fmt.Errorf("unmarshal %s items: %w", c.table, err)
	}
	return docs, nil
}

func (c *Collection[T]) Count(ctx context.Context, opts ...docstore.Option) (int64, error) {
	q := docstore.Build(opts...)
	if q.Empty {
		return 0, nil
	}

	input := &dynamodb.ScanInput{
		TableName: aws.String(c.table),
		Select:    types.SelectCount,
	}
	buildExpression(q.Conditions, nil).apply(input)

	var n int64
	paginator := dynamodb.NewScanPaginator(c.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return 0, err
		}
		n += int64(page.Count)
	}
	return n, nil
}

func (c *Collection[T]) Create(ctx context.Context, doc *T) error {
	item, err := attributevalue.MarshalMap(doc)
	if err != nil {
		return fmt.Errorf("marshal %s item: %w", c.table, err)
	}

	_, err = c.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(c.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if isConditionFailed(err) {
		return fmt.Errorf("%s: duplicate id", c.table)
	}
	return err
}

// UpdateByID 整条替换：条件Put保证记录存在
func (c *Collection[T]) UpdateByID(ctx context.Context, id string, doc *T) error {
	item, err := attributevalue.MarshalMap(doc)
	if err != nil {
		return fmt.Errorf("marshal %s item: %w", c.table, err)
	}
	item["id"] = &types.AttributeValueMemberS{Value: id}

	_, err = c.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(c.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_exists(id)"),
	})
	if isConditionFailed(err) {
		return docstore.ErrNotFound
	}
	return err
}

func (c *Collection[T]) DeleteByID(ctx context.Context, id string) error {
	_, err := c.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(c.table),
		Key:                 key(id),
		ConditionExpression: aws.String("attribute_exists(id)"),
	})
	if isConditionFailed(err) {
		return docstore.ErrNotFound
	}
	return err
}

func key(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: id}}
}

func isConditionFailed(err error) bool {
	var condErr *types.ConditionalCheckFailedException
	return errors.As(err, &condErr)
}
