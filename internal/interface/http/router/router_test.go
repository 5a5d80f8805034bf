package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appauthor "github.com/xiebiao/locallibrary/internal/application/author"
	appbook "github.com/xiebiao/locallibrary/internal/application/book"
	appbookinstance "github.com/xiebiao/locallibrary/internal/application/bookinstance"
	"github.com/xiebiao/locallibrary/internal/application/catalog"
	"github.com/xiebiao/locallibrary/internal/application/catalog/catalogtest"
	appgenre "github.com/xiebiao/locallibrary/internal/application/genre"
	"github.com/xiebiao/locallibrary/internal/domain/author"
	"github.com/xiebiao/locallibrary/internal/domain/book"
	"github.com/xiebiao/locallibrary/internal/domain/bookinstance"
	"github.com/xiebiao/locallibrary/internal/infrastructure/config"
	"github.com/xiebiao/locallibrary/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/locallibrary/internal/interface/http/handler"
	"github.com/xiebiao/locallibrary/internal/interface/http/middleware"
	"github.com/xiebiao/locallibrary/web"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testApp struct {
	engine *gin.Engine
	repos  *catalogtest.Repos
	events *catalogtest.Events
	cookie *http.Cookie
}

func newTestApp(t *testing.T, repos *catalogtest.Repos, mutate ...func(*config.Config)) *testApp {
	t.Helper()

	cfg := &config.Config{}
	cfg.Metrics.Path = "/metrics"
	cfg.Redis.FlashTTL = time.Minute
	for _, m := range mutate {
		m(cfg)
	}

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	tmpl, err := web.Templates()
	require.NoError(t, err)

	events := &catalogtest.Events{}
	authors := appauthor.NewUseCase(repos.Authors, repos.Books, events)
	books := appbook.NewUseCase(repos.Books, repos.Authors, repos.Genres, repos.Instances, events)
	genres := appgenre.NewUseCase(repos.Genres, repos.Books, events)
	instances := appbookinstance.NewUseCase(repos.Instances, repos.Books, events)

	base := handler.NewBase(redis.NewFlashStore(client, cfg))
	engine := New(cfg, tmpl, &Handlers{
		Base:         base,
		Index:        handler.NewIndexHandler(base, catalog.NewIndexUseCase(repos.Authors, repos.Books, repos.Instances, repos.Genres)),
		Author:       handler.NewAuthorHandler(base, authors),
		Book:         handler.NewBookHandler(base, books),
		Genre:        handler.NewGenreHandler(base, genres),
		BookInstance: handler.NewBookInstanceHandler(base, instances),
		API:          handler.NewAPIHandler(authors, books, genres, instances),
	})
	return &testApp{engine: engine, repos: repos, events: events}
}

// do 发送请求，自动带上会话Cookie
func (a *testApp) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.RemoteAddr = "10.0.0.1:1234"
	if a.cookie != nil {
		req.AddCookie(a.cookie)
	}

	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			a.cookie = c
		}
	}
	return w
}

func (a *testApp) seedAuthor(t *testing.T, first, family string) *author.Author {
	t.Helper()
	au := &author.Author{FirstName: first, FamilyName: family}
	require.NoError(t, a.repos.Authors.Create(context.Background(), au))
	return au
}

func (a *testApp) seedBook(t *testing.T, title, authorID string) *book.Book {
	t.Helper()
	b := &book.Book{Title: title, AuthorID: authorID, Summary: "summary", ISBN: "isbn"}
	require.NoError(t, a.repos.Books.Create(context.Background(), b))
	return b
}

func TestOperationalRoutes(t *testing.T) {
	app := newTestApp(t, catalogtest.NewRepos())

	t.Run("根路径重定向到目录首页", func(t *testing.T) {
		w := app.do(http.MethodGet, "/", nil)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/catalog/", w.Header().Get("Location"))
	})

	t.Run("健康检查", func(t *testing.T) {
		w := app.do(http.MethodGet, "/ping", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "pong")
	})

	t.Run("未知路由渲染404页面", func(t *testing.T) {
		w := app.do(http.MethodGet, "/nowhere", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Page not found")
	})
}

func TestIndexPage(t *testing.T) {
	app := newTestApp(t, catalogtest.NewRepos())
	jane := app.seedAuthor(t, "Jane", "Austen")
	app.seedBook(t, "Emma", jane.ID)

	w := app.do(http.MethodGet, "/catalog/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<strong>Books:</strong> 1")
	assert.Contains(t, w.Body.String(), "<strong>Authors:</strong> 1")
}

func TestAuthorPages(t *testing.T) {
	app := newTestApp(t, catalogtest.NewRepos())

	t.Run("创建成功重定向并展示一次提示", func(t *testing.T) {
		w := app.do(http.MethodPost, "/catalog/author/create", url.Values{
			"first_name":    {"Jane"},
			"family_name":   {"Austen"},
			"date_of_birth": {"1775-12-16"},
		})
		require.Equal(t, http.StatusFound, w.Code)
		location := w.Header().Get("Location")
		assert.True(t, strings.HasPrefix(location, "/catalog/author/"))

		page := app.do(http.MethodGet, location, nil)
		require.Equal(t, http.StatusOK, page.Code)
		assert.Contains(t, page.Body.String(), "Austen, Jane")
		assert.Contains(t, page.Body.String(), "Author created")

		again := app.do(http.MethodGet, location, nil)
		assert.NotContains(t, again.Body.String(), "Author created")
	})

	t.Run("校验失败重新渲染表单", func(t *testing.T) {
		w := app.do(http.MethodPost, "/catalog/author/create", url.Values{
			"first_name":    {"   "},
			"family_name":   {"Austen"},
			"date_of_death": {"not-a-date"},
		})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "First name must be specified")
		assert.Contains(t, w.Body.String(), "Invalid date of death")
		assert.Contains(t, w.Body.String(), `value="Austen"`)
	})

	t.Run("不存在的作者返回404", func(t *testing.T) {
		w := app.do(http.MethodGet, "/catalog/author/missing", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Author not found")
	})

	t.Run("有图书的作者不能删除", func(t *testing.T) {
		au := app.seedAuthor(t, "Isaac", "Asimov")
		app.seedBook(t, "Foundation", au.ID)

		w := app.do(http.MethodPost, "/catalog/author/"+au.ID+"/delete", url.Values{"authorid": {au.ID}})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Delete the following books")
		assert.Contains(t, w.Body.String(), "Foundation")

		_, err := app.repos.Authors.FindByID(context.Background(), au.ID)
		assert.NoError(t, err)
	})

	t.Run("按表单里的ID删除", func(t *testing.T) {
		au := app.seedAuthor(t, "Anne", "Bronte")

		confirm := app.do(http.MethodGet, "/catalog/author/"+au.ID+"/delete", nil)
		require.Equal(t, http.StatusOK, confirm.Code)
		assert.Contains(t, confirm.Body.String(), `name="authorid" value="`+au.ID+`"`)

		w := app.do(http.MethodPost, "/catalog/author/ignored/delete", url.Values{"authorid": {au.ID}})
		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/catalog/authors", w.Header().Get("Location"))

		_, err := app.repos.Authors.FindByID(context.Background(), au.ID)
		assert.ErrorIs(t, err, author.ErrAuthorNotFound)
	})

	t.Run("更新表单预填", func(t *testing.T) {
		au := app.seedAuthor(t, "Mary", "Shelley")
		w := app.do(http.MethodGet, "/catalog/author/"+au.ID+"/update", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `value="Shelley"`)
	})
}

func TestBookPages(t *testing.T) {
	app := newTestApp(t, catalogtest.NewRepos())
	jane := app.seedAuthor(t, "Jane", "Austen")

	t.Run("引用不存在的作者", func(t *testing.T) {
		w := app.do(http.MethodPost, "/catalog/book/create", url.Values{
			"title": {"Emma"}, "author": {"missing"}, "summary": {"s"}, "isbn": {"1"},
		})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Author not found")
	})

	t.Run("创建后列表展示作者", func(t *testing.T) {
		w := app.do(http.MethodPost, "/catalog/book/create", url.Values{
			"title": {"Emma"}, "author": {jane.ID}, "summary": {"s"}, "isbn": {"1"},
		})
		require.Equal(t, http.StatusFound, w.Code)

		list := app.do(http.MethodGet, "/catalog/books", nil)
		assert.Contains(t, list.Body.String(), "Emma")
		assert.Contains(t, list.Body.String(), "(Austen, Jane)")
	})

	t.Run("有副本的图书不能删除", func(t *testing.T) {
		b := app.seedBook(t, "Persuasion", jane.ID)
		require.NoError(t, app.repos.Instances.Create(context.Background(),
			&bookinstance.BookInstance{BookID: b.ID, Imprint: "Penguin", Status: bookinstance.StatusAvailable}))

		w := app.do(http.MethodPost, "/catalog/book/"+b.ID+"/delete", url.Values{"bookid": {b.ID}})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Delete the following copies")
	})
}

func TestGenrePages(t *testing.T) {
	app := newTestApp(t, catalogtest.NewRepos())

	w := app.do(http.MethodPost, "/catalog/genre/create", url.Values{"name": {"Fantasy"}})
	require.Equal(t, http.StatusFound, w.Code)
	first := w.Header().Get("Location")

	t.Run("同名分类重定向到已有分类", func(t *testing.T) {
		w := app.do(http.MethodPost, "/catalog/genre/create", url.Values{"name": {"fantasy"}})
		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, first, w.Header().Get("Location"))
	})

	t.Run("名称太短", func(t *testing.T) {
		w := app.do(http.MethodPost, "/catalog/genre/create", url.Values{"name": {"ab"}})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Genre name must contain at least 3 characters")
	})
}

func TestBookInstancePages(t *testing.T) {
	app := newTestApp(t, catalogtest.NewRepos())
	jane := app.seedAuthor(t, "Jane", "Austen")
	emma := app.seedBook(t, "Emma", jane.ID)

	t.Run("从图书详情进入时预选图书", func(t *testing.T) {
		w := app.do(http.MethodGet, "/catalog/bookinstance/create?book="+emma.ID, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `<option value="`+emma.ID+`" selected>`)
		assert.Contains(t, w.Body.String(), `<option value="Maintenance" selected>`)
	})

	t.Run("非法状态和日期", func(t *testing.T) {
		w := app.do(http.MethodPost, "/catalog/bookinstance/create", url.Values{
			"book": {emma.ID}, "imprint": {"Penguin"}, "status": {"Lost"}, "due_back": {"2024-13-45"},
		})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid status")
		assert.Contains(t, w.Body.String(), "Invalid date")
	})

	t.Run("删除不存在的副本回到列表", func(t *testing.T) {
		w := app.do(http.MethodPost, "/catalog/bookinstance/missing/delete", url.Values{"bookinstanceid": {"missing"}})
		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/catalog/bookinstances", w.Header().Get("Location"))
	})

	t.Run("创建并删除", func(t *testing.T) {
		w := app.do(http.MethodPost, "/catalog/bookinstance/create", url.Values{
			"book": {emma.ID}, "imprint": {"Penguin"}, "status": {"Available"},
		})
		require.Equal(t, http.StatusFound, w.Code)
		id := strings.TrimPrefix(w.Header().Get("Location"), "/catalog/bookinstance/")

		del := app.do(http.MethodPost, "/catalog/bookinstance/"+id+"/delete", url.Values{"bookinstanceid": {id}})
		require.Equal(t, http.StatusFound, del.Code)
		assert.Contains(t, app.events.Published(), "catalog.bookinstance.deleted:"+id)
	})
}

func TestStoreFailure(t *testing.T) {
	app := newTestApp(t, catalogtest.NewBrokenRepos())

	w := app.do(http.MethodGet, "/catalog/authors", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal server error")
	assert.NotContains(t, w.Body.String(), catalogtest.ErrUnavailable.Error(), "内部错误不展示给用户")
}

func TestRateLimit(t *testing.T) {
	app := newTestApp(t, catalogtest.NewRepos(), func(cfg *config.Config) {
		cfg.Server.RateLimit = config.RateLimitConfig{Enabled: true, RPS: 0.001, Burst: 1}
	})

	form := url.Values{"name": {"Poetry"}}
	assert.Equal(t, http.StatusFound, app.do(http.MethodPost, "/catalog/genre/create", form).Code)

	w := app.do(http.MethodPost, "/catalog/genre/create", form)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, http.StatusOK, app.do(http.MethodGet, "/catalog/genres", nil).Code, "GET不受限")
}

func TestJSONAPI(t *testing.T) {
	app := newTestApp(t, catalogtest.NewRepos())
	jane := app.seedAuthor(t, "Jane", "Austen")
	app.seedBook(t, "Emma", jane.ID)

	type envelope struct {
		Code    int             `json:"code"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}

	t.Run("作者列表", func(t *testing.T) {
		w := app.do(http.MethodGet, "/api/v1/authors", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp envelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 0, resp.Code)
		assert.Contains(t, string(resp.Data), `"name":"Austen, Jane"`)
		assert.Contains(t, string(resp.Data), `"total":1`)
	})

	t.Run("作者详情包含图书", func(t *testing.T) {
		w := app.do(http.MethodGet, "/api/v1/authors/"+jane.ID, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"title":"Emma"`)
	})

	t.Run("不存在返回40400", func(t *testing.T) {
		w := app.do(http.MethodGet, "/api/v1/books/missing", nil)
		require.Equal(t, http.StatusNotFound, w.Code)

		var resp envelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 40400, resp.Code)
		assert.Equal(t, "Book not found", resp.Message)
	})
}
