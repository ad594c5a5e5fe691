package lang

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/donutnomad/resxgen/internal/utils"
)

// Dialect 描述一种目标语言的全部语法差异
// 生成器只有一套逻辑，所有语言相关的部分都来自这里
type Dialect struct {
	Name       string   // 显示名称，如 "C#"
	Aliases    []string // 语言选择器别名（不区分大小写）
	Extension  string   // 输出文件扩展名
	FileName   string   // 默认输出文件名模板
	Indent     string   // 一级缩进
	LineEnding string   // 行结束符

	// CaseInsensitive 为 true 时标识符与保留字比较不区分大小写（VB）
	CaseInsensitive bool

	// 文档注释
	DocPrefix string
	DocOpen   string
	DocClose  string
	EscapeDoc func(string) string

	// 标识符规则
	IsIdentStart func(r rune) bool
	IsIdentPart  func(r rune) bool
	Reserved     []string // 关键字以及生成代码中使用的成员名

	// Quote 将字符串写成该语言的字符串字面量
	Quote func(s string) string

	// Param 形参声明格式，%s 为参数名
	Param string

	// LiteralTemplate 把复合格式模板转换为该语言本地格式化函数接受的模板
	// 返回值 notes 为无法表达的部分（作为警告上报）；nil 表示原样使用
	LiteralTemplate func(value string) (tmpl string, notes []string)

	// HelperImports 生成共享查找方法时需要的导入
	HelperImports []string
	// FormatImports 本地格式化（无共享方法）时需要的导入
	FormatImports []string

	// 布局
	RequireNamespace bool // 即使命名空间为空也要输出命名空间声明
	NestNamespace    bool // 命名空间内的声明需要缩进并闭合
	NestContainer    bool // 容器内的声明需要缩进并闭合

	Templates Templates

	// Check 校验生成结果的语法，可为 nil
	Check func(src []byte) error

	reserved  map[string]struct{}
	once      sync.Once
	templates *template.Template
	parseErr  error
}

// Templates 每种输出形态对应的模板片段
// 模板输出不带基础缩进，也不带结尾换行
type Templates struct {
	Header       string
	Namespace    string
	NamespaceEnd string
	Container    string
	ContainerEnd string

	Constant        string
	Property        string
	PropertyLiteral string
	Method          string
	MethodLiteral   string
	Helper          string
}

// FileData 文件级模板数据
type FileData struct {
	Namespace string
	ClassName string
	BundleID  string
	Imports   []string
	Resources []DeclData
}

// DeclData 单个声明的模板数据
type DeclData struct {
	ClassName  string
	Identifier string
	Key        string
	Value      string
	Template   string // 本地格式化使用的模板
	Params     string // 形参列表
	Args       string // 实参列表
}

// Fold 返回用于比较的标识符形式
func (d *Dialect) Fold(ident string) string {
	if d.CaseInsensitive {
		return strings.ToLower(ident)
	}
	return ident
}

// IsReserved 判断标识符是否为保留字
func (d *Dialect) IsReserved(ident string) bool {
	_, ok := d.reserved[d.Fold(ident)]
	return ok
}

// IsIdentifier 判断 s 是否可以直接作为标识符使用
func (d *Dialect) IsIdentifier(s string) bool {
	if s == "" || d.IsReserved(s) {
		return false
	}
	for i, r := range s {
		if i == 0 && !d.IsIdentStart(r) {
			return false
		}
		if !d.IsIdentPart(r) {
			return false
		}
	}
	return true
}

// Render 执行指定名称的模板片段
func (d *Dialect) Render(name string, data any) (string, error) {
	d.once.Do(d.parse)
	if d.parseErr != nil {
		return "", d.parseErr
	}
	tmpl := d.templates.Lookup(name)
	if tmpl == nil {
		return "", fmt.Errorf("%s 方言缺少模板 %q", d.Name, name)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("执行 %s 模板 %q 失败: %w", d.Name, name, err)
	}
	return buf.String(), nil
}

// OutputFileName 根据容器名生成默认输出文件名
func (d *Dialect) OutputFileName(className string) (string, error) {
	return d.Render("FileName", FileData{ClassName: className})
}

// funcMap 模板函数: sprig 全部函数，quote/ident 使用方言自身的实现
func (d *Dialect) funcMap() template.FuncMap {
	funcs := sprig.TxtFuncMap()
	funcs["quote"] = d.Quote
	funcs["ident"] = func(s string) string { return Sanitize(s, d) }
	funcs["snake"] = utils.ToSnakeCase
	return funcs
}

func (d *Dialect) parse() {
	root := template.New(d.Name).Funcs(d.funcMap())
	parts := map[string]string{
		"FileName":        d.FileName,
		"Header":          d.Templates.Header,
		"Namespace":       d.Templates.Namespace,
		"NamespaceEnd":    d.Templates.NamespaceEnd,
		"Container":       d.Templates.Container,
		"ContainerEnd":    d.Templates.ContainerEnd,
		"Constant":        d.Templates.Constant,
		"Property":        d.Templates.Property,
		"PropertyLiteral": d.Templates.PropertyLiteral,
		"Method":          d.Templates.Method,
		"MethodLiteral":   d.Templates.MethodLiteral,
		"Helper":          d.Templates.Helper,
	}
	for name, text := range parts {
		if _, err := root.New(name).Parse(text); err != nil {
			d.parseErr = fmt.Errorf("解析 %s 模板 %q 失败: %w", d.Name, name, err)
			return
		}
	}
	d.templates = root
}

// define 初始化方言的内部状态，模板有误时 panic
func define(d *Dialect) *Dialect {
	d.reserved = make(map[string]struct{}, len(d.Reserved))
	for _, word := range d.Reserved {
		d.reserved[d.Fold(word)] = struct{}{}
	}
	d.once.Do(d.parse)
	if d.parseErr != nil {
		panic(d.parseErr)
	}
	return d
}
