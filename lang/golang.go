package lang

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/donutnomad/resxgen/internal/format"
	"golang.org/x/tools/imports"
)

// Go Go 方言
// 容器是一个空结构体，访问器与共享查找方法都是它的方法；
// 运行时实现通过 <容器名>Lookup 变量接入，同一个包中可以有多个容器
var Go = define(&Dialect{
	Name:       "Go",
	Aliases:    []string{"go", "golang"},
	Extension:  ".go",
	FileName:   "{{snake .ClassName}}.go",
	Indent:     "\t",
	LineEnding: "\n",

	DocPrefix: "// ",
	EscapeDoc: func(s string) string { return s },

	IsIdentStart: func(r rune) bool { return r == '_' || unicode.IsLetter(r) },
	IsIdentPart:  func(r rune) bool { return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) },
	Reserved: append(append(goKeywords, goPredeclared...),
		"_", "init", "fmt", "strconv", "strings",
		"getResourceString", "defaultValue", "formatValue"),

	Quote:           strconv.Quote,
	Param:           "%s any",
	LiteralTemplate: goLiteralTemplate,

	HelperImports: []string{"fmt", "strconv", "strings"},
	FormatImports: []string{"fmt"},

	RequireNamespace: true,

	Templates: Templates{
		Header: "// Code generated by resxgen. DO NOT EDIT.",
		Namespace: `package {{.Namespace | default .ClassName | splitList "." | last | lower | ident}}
{{- if .Imports}}

import (
{{- range .Imports}}
	{{quote .}}
{{- end}}
)
{{- end}}`,
		Container: `// {{.ClassName}} exposes the resources of bundle {{quote .BundleID}}.
type {{.ClassName}} struct{}`,

		Constant: `const {{.Identifier}} = {{quote .Key}}`,
		Property: `func (c {{.ClassName}}) {{.Identifier}}() string {
	return c.getResourceString({{quote .Key}})
}`,
		PropertyLiteral: `func ({{.ClassName}}) {{.Identifier}}() string {
	return {{quote .Value}}
}`,
		Method: `func (c {{.ClassName}}) {{.Identifier}}({{.Params}}) string {
	return c.getResourceString({{quote .Key}}, {{.Args}})
}`,
		MethodLiteral: `func ({{.ClassName}}) {{.Identifier}}({{.Params}}) string {
	return fmt.Sprintf({{quote .Template}}, {{.Args}})
}`,
		Helper: `// {{.ClassName}}Lookup resolves key within bundle at run time. When it
// reports false the value from the resource table is used.
var {{.ClassName}}Lookup = func(bundle, key string) (string, bool) { return "", false }

func (c {{.ClassName}}) getResourceString(key string, args ...any) string {
	value, ok := {{.ClassName}}Lookup({{quote .BundleID}}, key)
	if !ok {
		value = c.defaultValue(key)
	}
	if len(args) == 0 {
		return value
	}
	return c.formatValue(value, args)
}

func ({{.ClassName}}) defaultValue(key string) string {
	switch key {
{{- range .Resources}}
	case {{quote .Key}}:
		return {{quote .Value}}
{{- end}}
	}
	return key
}

// formatValue expands {n} and {n,align} items and the {{"{{"}} and {{"}}"}} escapes.
// Format strings after ':' are ignored.
func ({{.ClassName}}) formatValue(value string, args []any) string {
	var sb strings.Builder
	for i := 0; i < len(value); i++ {
		ch := value[i]
		if (ch == '{' || ch == '}') && i+1 < len(value) && value[i+1] == ch {
			sb.WriteByte(ch)
			i++
			continue
		}
		if ch != '{' {
			sb.WriteByte(ch)
			continue
		}
		end := strings.IndexByte(value[i:], '}')
		if end < 0 {
			sb.WriteString(value[i:])
			break
		}
		item, _, _ := strings.Cut(value[i+1:i+end], ":")
		index, align, hasAlign := strings.Cut(item, ",")
		n, err := strconv.Atoi(strings.TrimSpace(index))
		if err != nil || n < 0 || n >= len(args) {
			sb.WriteString(value[i : i+end+1])
		} else if width, err := strconv.Atoi(strings.TrimSpace(align)); hasAlign && err == nil {
			sb.WriteString(fmt.Sprintf("%*v", width, args[n]))
		} else {
			sb.WriteString(fmt.Sprint(args[n]))
		}
		i += end
	}
	return sb.String()
}`,
	},

	Check: checkGoSyntax,
})

var goKeywords = []string{
	"break", "case", "chan", "const", "continue", "default", "defer", "else",
	"fallthrough", "for", "func", "go", "goto", "if", "import", "interface", "map",
	"package", "range", "return", "select", "struct", "switch", "type", "var",
}

// goPredeclared 预声明标识符，包级声明会遮蔽它们
var goPredeclared = []string{
	"any", "append", "bool", "byte", "cap", "clear", "close", "comparable", "complex",
	"complex128", "complex64", "copy", "delete", "error", "false", "float32", "float64",
	"imag", "int", "int16", "int32", "int64", "int8", "iota", "len", "make", "max", "min",
	"new", "nil", "panic", "print", "println", "real", "recover", "rune", "string", "true",
	"uint", "uint16", "uint32", "uint64", "uint8", "uintptr",
}

// goLiteralTemplate 将复合格式模板转换为 fmt.Sprintf 模板
// {0} -> %[1]v，{0,-5} -> %-5[1]v；格式说明符无法表达，忽略并返回提示
func goLiteralTemplate(value string) (string, []string) {
	phs, err := format.Scan(value)
	if err != nil {
		return goLiteralText(value), nil
	}

	var sb strings.Builder
	var notes []string
	last := 0
	for _, ph := range phs {
		sb.WriteString(goLiteralText(value[last:ph.Start]))
		sb.WriteByte('%')
		if ph.HasAlign {
			sb.WriteString(strconv.Itoa(ph.Align))
		}
		sb.WriteString("[" + strconv.Itoa(ph.Index+1) + "]v")
		if ph.Format != "" {
			notes = append(notes, fmt.Sprintf("占位符 {%d} 的格式说明符 %q 在 Go 中被忽略", ph.Index, ph.Format))
		}
		last = ph.End
	}
	sb.WriteString(goLiteralText(value[last:]))

	return sb.String(), notes
}

var goLiteralReplacer = strings.NewReplacer("{{", "{", "}}", "}", "%", "%%")

func goLiteralText(s string) string {
	return goLiteralReplacer.Replace(s)
}

// checkGoSyntax 只检查语法，不修改内容
func checkGoSyntax(src []byte) error {
	_, err := imports.Process("", src, &imports.Options{
		Comments:   true,
		AllErrors:  true,
		FormatOnly: true,
	})
	return err
}
