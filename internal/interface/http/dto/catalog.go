package dto

import (
	"github.com/samber/lo"

	"github.com/xiebiao/locallibrary/internal/domain/author"
	"github.com/xiebiao/locallibrary/internal/domain/book"
	"github.com/xiebiao/locallibrary/internal/domain/bookinstance"
	"github.com/xiebiao/locallibrary/internal/domain/genre"
)

// 只读JSON接口(/api/v1)的响应DTO
// 说明:日期统一输出YYYY-MM-DD,空日期省略

// AuthorResponse 作者
type AuthorResponse struct {
	ID          string `json:"id" example:"1b4e28ba-2fa1-11d2-883f-0016d3cca427"`
	FirstName   string `json:"first_name" example:"Jane"`
	FamilyName  string `json:"family_name" example:"Austen"`
	Name        string `json:"name" example:"Austen, Jane"`
	DateOfBirth string `json:"date_of_birth,omitempty" example:"1775-12-16"`
	DateOfDeath string `json:"date_of_death,omitempty" example:"1817-07-18"`
	URL         string `json:"url" example:"/catalog/author/1b4e28ba-2fa1-11d2-883f-0016d3cca427"`
}

// AuthorDetailResponse 作者详情
type AuthorDetailResponse struct {
	AuthorResponse
	Books []BookSummary `json:"books"`
}

// BookSummary 图书摘要(列表、关联展示用)
type BookSummary struct {
	ID      string `json:"id"`
	Title   string `json:"title" example:"Emma"`
	Summary string `json:"summary,omitempty"`
	URL     string `json:"url"`
}

// BookResponse 图书
type BookResponse struct {
	ID       string          `json:"id"`
	Title    string          `json:"title" example:"Emma"`
	Summary  string          `json:"summary"`
	ISBN     string          `json:"isbn" example:"9780141439587"`
	Author   *AuthorResponse `json:"author"` // 作者已删除时为null
	GenreIDs []string        `json:"genre_ids"`
	URL      string          `json:"url"`
}

// BookDetailResponse 图书详情
type BookDetailResponse struct {
	BookResponse
	Genres    []GenreResponse        `json:"genres"`
	Instances []BookInstanceResponse `json:"instances"`
}

// GenreResponse 分类
type GenreResponse struct {
	ID   string `json:"id"`
	Name string `json:"name" example:"Romance"`
	URL  string `json:"url"`
}

// GenreDetailResponse 分类详情
type GenreDetailResponse struct {
	GenreResponse
	Books []BookSummary `json:"books"`
}

// BookInstanceResponse 副本
type BookInstanceResponse struct {
	ID      string       `json:"id"`
	Imprint string       `json:"imprint" example:"Penguin Classics, 2003"`
	Status  string       `json:"status" example:"Available"`
	DueBack string       `json:"due_back,omitempty" example:"2024-06-01"`
	Book    *BookSummary `json:"book,omitempty"`
	URL     string       `json:"url"`
}

// NewAuthorResponse 作者 → DTO,nil返回nil
func NewAuthorResponse(a *author.Author) *AuthorResponse {
	if a == nil {
		return nil
	}
	return &AuthorResponse{
		ID:          a.ID,
		FirstName:   a.FirstName,
		FamilyName:  a.FamilyName,
		Name:        a.Name(),
		DateOfBirth: a.DateOfBirthISO(),
		DateOfDeath: a.DateOfDeathISO(),
		URL:         a.URL(),
	}
}

// NewAuthorList 作者列表 → DTO
func NewAuthorList(list []*author.Author) []AuthorResponse {
	return lo.Map(list, func(a *author.Author, _ int) AuthorResponse { return *NewAuthorResponse(a) })
}

// NewBookSummary 图书 → 摘要DTO,nil返回nil
func NewBookSummary(b *book.Book) *BookSummary {
	if b == nil {
		return nil
	}
	return &BookSummary{ID: b.ID, Title: b.Title, Summary: b.Summary, URL: b.URL()}
}

// NewBookSummaries 图书列表 → 摘要DTO
func NewBookSummaries(list []*book.Book) []BookSummary {
	return lo.Map(list, func(b *book.Book, _ int) BookSummary { return *NewBookSummary(b) })
}

// NewBookResponse 图书(含作者) → DTO
func NewBookResponse(b *book.Book, a *author.Author) BookResponse {
	return BookResponse{
		ID:       b.ID,
		Title:    b.Title,
		Summary:  b.Summary,
		ISBN:     b.ISBN,
		Author:   NewAuthorResponse(a),
		GenreIDs: lo.Ternary(b.GenreIDs == nil, []string{}, b.GenreIDs),
		URL:      b.URL(),
	}
}

// NewGenreList 分类列表 → DTO
func NewGenreList(list []*genre.Genre) []GenreResponse {
	return lo.Map(list, func(g *genre.Genre, _ int) GenreResponse {
		return GenreResponse{ID: g.ID, Name: g.Name, URL: g.URL()}
	})
}

// NewBookInstanceResponse 副本(含图书) → DTO
func NewBookInstanceResponse(bi *bookinstance.BookInstance, b *book.Book) BookInstanceResponse {
	return BookInstanceResponse{
		ID:      bi.ID,
		Imprint: bi.Imprint,
		Status:  string(bi.Status),
		DueBack: bi.DueBackISO(),
		Book:    NewBookSummary(b),
		URL:     bi.URL(),
	}
}
