package resxgen

import (
	"fmt"
	"slices"
	"strings"

	"github.com/donutnomad/resxgen/lang"
	"github.com/samber/lo"
)

// Shape 单个资源的输出形态
type Shape int

const (
	ShapeProperty        Shape = iota + 1 // 无参访问器，通过共享方法查找
	ShapePropertyLiteral                  // 无参访问器，内联资源值
	ShapeMethod                           // 带位置参数，通过共享方法查找并格式化
	ShapeMethodLiteral                    // 带位置参数，对内联模板本地格式化
	ShapeConstant                         // 保存资源键的常量
)

// template 返回形态对应的模板名
func (s Shape) template() string {
	switch s {
	case ShapeProperty:
		return "Property"
	case ShapePropertyLiteral:
		return "PropertyLiteral"
	case ShapeMethod:
		return "Method"
	case ShapeMethodLiteral:
		return "MethodLiteral"
	case ShapeConstant:
		return "Constant"
	default:
		return ""
	}
}

func (s Shape) String() string {
	if name := s.template(); name != "" {
		return name
	}
	return "unknown"
}

// declaration 单个资源的输出计划
type declaration struct {
	res   *Resource
	shape Shape
	data  lang.DeclData
}

// Emit 根据模型与配置生成完整的源文件
// 相同的输入总是得到逐字节相同的输出
func Emit(m *Model, cfg Config) ([]byte, []Diagnostic, error) {
	d, err := emitDialect(m, cfg)
	if err != nil {
		return nil, nil, err
	}

	// 是否生成共享查找方法，在逐个资源输出之前确定
	emitHelper := !cfg.OmitLookupHelper

	var diags []Diagnostic
	decls := make([]declaration, 0, len(m.Resources))
	for _, res := range m.Resources {
		decl, resDiags := planDeclaration(m, res, cfg, d)
		decls = append(decls, decl)
		diags = append(diags, resDiags...)
	}

	file := lang.FileData{
		Namespace: m.Namespace,
		ClassName: m.ClassName,
		BundleID:  m.BundleID,
		Imports:   collectImports(d, decls, emitHelper),
		Resources: lo.Map(decls, func(decl declaration, _ int) lang.DeclData {
			return decl.data
		}),
	}

	w := newCodeWriter(d)

	w.render("Header", file)
	w.blank()

	hasNamespace := m.Namespace != "" || d.RequireNamespace
	if hasNamespace {
		w.render("Namespace", file)
		if d.NestNamespace {
			w.indent++
		} else {
			w.blank()
		}
	}

	w.render("Container", file)
	if d.NestContainer {
		w.indent++
	} else {
		w.blank()
	}

	for i, decl := range decls {
		if i > 0 {
			w.blank()
		}
		w.lines(docLines(d, decl.res.Comment))
		w.render(decl.shape.template(), decl.data)
	}

	if emitHelper {
		if len(decls) > 0 {
			w.blank()
		}
		w.render("Helper", file)
	}

	if d.NestContainer {
		w.indent--
		w.render("ContainerEnd", file)
	}
	if hasNamespace && d.NestNamespace {
		w.indent--
		w.render("NamespaceEnd", file)
	}

	if w.err != nil {
		return nil, diags, w.err
	}

	src := w.bytes()
	if d.Check != nil {
		if err := d.Check(src); err != nil {
			return nil, diags, fmt.Errorf("生成的 %s 代码存在语法错误: %w", d.Name, err)
		}
	}

	return src, diags, nil
}

// emitDialect 确定输出使用的方言，模型与配置不一致时报错
func emitDialect(m *Model, cfg Config) (*lang.Dialect, error) {
	d := m.Dialect
	if cfg.Language != "" {
		cd, err := cfg.Dialect()
		if err != nil {
			return nil, err
		}
		if d != nil && d != cd {
			return nil, validationError(CodeUnsupportedLanguage, "",
				"模型按 %s 构建，但配置要求输出 %s", d.Name, cd.Name)
		}
		d = cd
	}
	if d == nil {
		return nil, validationError(CodeUnsupportedLanguage, "", "未指定目标语言")
	}
	return d, nil
}

// planDeclaration 按策略表确定单个资源的输出形态
//
//	AsConstants                       -> 常量（保存资源键）
//	EmitFormatMethods && 含占位符     -> 格式化方法
//	其他                               -> 无参访问器
//
// 常量模式下含占位符的资源降级为普通常量；同时要求格式化方法时给出警告。
func planDeclaration(m *Model, res *Resource, cfg Config, d *lang.Dialect) (declaration, []Diagnostic) {
	decl := declaration{
		res: res,
		data: lang.DeclData{
			ClassName:  m.ClassName,
			Identifier: res.Identifier,
			Key:        res.Name,
			Value:      res.Value,
		},
	}

	var diags []Diagnostic

	switch {
	case cfg.AsConstants:
		decl.shape = ShapeConstant
		if res.Kind == KindFormatted && cfg.EmitFormatMethods {
			diags = append(diags, warning(CodeConstantFormatConflict, res.Name,
				"常量模式下不生成格式化方法，常量 %s 只保存资源键", res.Identifier))
		}

	case cfg.EmitFormatMethods && res.Kind == KindFormatted:
		names := lo.Times(res.ArgCount, func(i int) string {
			return fmt.Sprintf("p%d", i)
		})
		decl.data.Params = strings.Join(lo.Map(names, func(name string, _ int) string {
			return fmt.Sprintf(d.Param, name)
		}), ", ")
		decl.data.Args = strings.Join(names, ", ")

		if !cfg.OmitLookupHelper {
			decl.shape = ShapeMethod
			break
		}

		decl.shape = ShapeMethodLiteral
		decl.data.Template = res.Value
		if d.LiteralTemplate != nil {
			tmpl, notes := d.LiteralTemplate(res.Value)
			decl.data.Template = tmpl
			for _, note := range notes {
				diags = append(diags, warning(CodeFormatSpecIgnored, res.Name, "%s", note))
			}
		}

	case cfg.OmitLookupHelper:
		decl.shape = ShapePropertyLiteral

	default:
		decl.shape = ShapeProperty
	}

	return decl, diags
}

// collectImports 收集输出文件需要的导入，排序去重
func collectImports(d *lang.Dialect, decls []declaration, emitHelper bool) []string {
	var imports []string
	if emitHelper {
		imports = append(imports, d.HelperImports...)
	}
	if lo.ContainsBy(decls, func(decl declaration) bool { return decl.shape == ShapeMethodLiteral }) {
		imports = append(imports, d.FormatImports...)
	}
	imports = lo.Uniq(imports)
	slices.Sort(imports)
	return imports
}

// docLines 将资源注释转换为文档注释行
func docLines(d *lang.Dialect, comment string) []string {
	lines := lo.Map(strings.Split(normalizeNewlines(comment), "\n"), func(line string, _ int) string {
		return strings.TrimSpace(line)
	})

	start, end := 0, len(lines)
	for start < end && lines[start] == "" {
		start++
	}
	for end > start && lines[end-1] == "" {
		end--
	}
	if start == end {
		return nil
	}

	bare := strings.TrimRight(d.DocPrefix, " ")
	var out []string
	if d.DocOpen != "" {
		out = append(out, d.DocPrefix+d.DocOpen)
	}
	for _, line := range lines[start:end] {
		if line == "" {
			out = append(out, bare)
			continue
		}
		out = append(out, d.DocPrefix+d.EscapeDoc(line))
	}
	if d.DocClose != "" {
		out = append(out, d.DocPrefix+d.DocClose)
	}
	return out
}

var newlineReplacer = strings.NewReplacer("\r\n", "\n", "\r", "\n")

func normalizeNewlines(s string) string {
	return newlineReplacer.Replace(s)
}

// codeWriter 按行收集输出并处理缩进
// 第一个错误之后的写入都被忽略
type codeWriter struct {
	d      *lang.Dialect
	indent int
	out    []string
	err    error
}

func newCodeWriter(d *lang.Dialect) *codeWriter {
	return &codeWriter{d: d}
}

func (w *codeWriter) render(name string, data any) {
	if w.err != nil {
		return
	}
	text, err := w.d.Render(name, data)
	if err != nil {
		w.err = err
		return
	}
	w.lines(strings.Split(text, "\n"))
}

func (w *codeWriter) lines(lines []string) {
	prefix := strings.Repeat(w.d.Indent, w.indent)
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			w.out = append(w.out, "")
			continue
		}
		w.out = append(w.out, prefix+line)
	}
}

// blank 写入一个空行，不会产生连续空行
func (w *codeWriter) blank() {
	if len(w.out) > 0 && w.out[len(w.out)-1] != "" {
		w.out = append(w.out, "")
	}
}

func (w *codeWriter) bytes() []byte {
	lines := w.out
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	eol := w.d.LineEnding
	return []byte(strings.Join(lines, eol) + eol)
}
