// Package web 内嵌的页面模板
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.tmpl
var files embed.FS

// Funcs 模板函数
var Funcs = template.FuncMap{
	// 入库前已做过HTML转义，直接输出避免二次转义
	"sanitized": func(s string) template.HTML { return template.HTML(s) },
}

// Templates 解析全部页面模板
// 每个页面用{{define "<entity>_<page>"}}命名，c.HTML按该名称渲染
func Templates() (*template.Template, error) {
	return template.New("").Funcs(Funcs).ParseFS(files, "templates/*.tmpl")
}
