package document

import (
	"time"
)

// 存储层文档模型
// 设计说明：
// 1. 一个结构体同时服务三种后端：gorm tag(关系库)、dynamodbav tag(DynamoDB)、json tag(内存)
// 2. 三种tag的字段名保持一致(snake_case)，docstore查询选项里的字段名就是它们
// 3. domain实体不依赖这些tag，Repository负责两者之间的转换

// Field names used in queries.
const (
	FieldID         = "id"
	FieldFamilyName = "family_name"
	FieldTitle      = "title"
	FieldSummary    = "summary"
	FieldAuthorID   = "author_id"
	FieldGenreIDs   = "genre_ids"
	FieldName       = "name"
	FieldBookID     = "book_id"
	FieldStatus     = "status"
)

// Author 作者文档
type Author struct {
	ID          string     `json:"id" gorm:"primaryKey;size:36" dynamodbav:"id"`
	FirstName   string     `json:"first_name" gorm:"size:100;not null" dynamodbav:"first_name"`
	FamilyName  string     `json:"family_name" gorm:"index;size:100;not null" dynamodbav:"family_name"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty" dynamodbav:"date_of_birth,omitempty"`
	DateOfDeath *time.Time `json:"date_of_death,omitempty" dynamodbav:"date_of_death,omitempty"`
}

// TableName 指定表名
func (Author) TableName() string { return "authors" }

// Book 图书文档
// GenreIDs用JSON序列化存成一列，Contains查询按 "%\"id\"%" 模糊匹配
type Book struct {
	ID       string   `json:"id" gorm:"primaryKey;size:36" dynamodbav:"id"`
	Title    string   `json:"title" gorm:"index;size:200;not null" dynamodbav:"title"`
	AuthorID string   `json:"author_id" gorm:"index;size:36;not null" dynamodbav:"author_id"`
	Summary  string   `json:"summary" gorm:"type:text" dynamodbav:"summary"`
	ISBN     string   `json:"isbn" gorm:"size:40" dynamodbav:"isbn"`
	GenreIDs []string `json:"genre_ids" gorm:"serializer:json;type:text" dynamodbav:"genre_ids"`
}

func (Book) TableName() string { return "books" }

// Genre 分类文档
type Genre struct {
	ID   string `json:"id" gorm:"primaryKey;size:36" dynamodbav:"id"`
	Name string `json:"name" gorm:"index;size:100;not null" dynamodbav:"name"`
}

func (Genre) TableName() string { return "genres" }

// BookInstance 副本文档
type BookInstance struct {
	ID      string     `json:"id" gorm:"primaryKey;size:36" dynamodbav:"id"`
	BookID  string     `json:"book_id" gorm:"index;size:36;not null" dynamodbav:"book_id"`
	Imprint string     `json:"imprint" gorm:"size:200;not null" dynamodbav:"imprint"`
	Status  string     `json:"status" gorm:"index;size:20;not null;default:Maintenance" dynamodbav:"status"`
	DueBack *time.Time `json:"due_back,omitempty" dynamodbav:"due_back,omitempty"`
}

func (BookInstance) TableName() string { return "book_instances" }

// All 全部文档模型(AutoMigrate/建表用)
func All() []interface{} {
	return []interface{}{&Author{}, &Book{}, &Genre{}, &BookInstance{}}
}
