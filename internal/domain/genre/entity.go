package genre

// Genre 图书分类
type Genre struct {
	ID   string
	Name string
}

// URL 详情页地址
func (g *Genre) URL() string {
	return "/catalog/genre/" + g.ID
}
