package resxgen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/donutnomad/resxgen/internal/format"
	"github.com/donutnomad/resxgen/lang"
	"github.com/samber/lo"
)

// Entry 资源表中的一行
type Entry struct {
	Name    string
	Value   string
	Comment string // 为空表示没有注释
}

// Kind 资源值的分类
type Kind int

const (
	KindPlain     Kind = iota + 1 // 普通字符串
	KindFormatted                 // 含位置占位符
)

func (k Kind) String() string {
	switch k {
	case KindPlain:
		return "plain"
	case KindFormatted:
		return "formatted"
	default:
		return "unknown"
	}
}

// Resource 校验后的资源
type Resource struct {
	Entry
	Identifier   string               // 目标语言中的标识符
	Kind         Kind                 // 分类
	ArgCount     int                  // 格式化所需参数个数（仅 KindFormatted）
	Placeholders []format.Placeholder // 检测到的占位符
}

// Model 校验后的资源模型
type Model struct {
	BundleID  string // 运行时资源包标识
	Namespace string // 命名空间，可为空
	ClassName string // 容器名
	Dialect   *lang.Dialect
	Resources []*Resource
}

// FullName 返回容器的完整名称
func (m *Model) FullName() string {
	if m.Namespace == "" {
		return m.ClassName
	}
	return m.Namespace + "." + m.ClassName
}

// Build 校验资源表并生成模型
// className 可以是带命名空间的完整名称，按最后一个 '.' 拆分。
// bundleID 为空时使用 className。
// 所有校验错误合并返回，任何一个错误都会导致构建失败。
func Build(entries []Entry, bundleID, className string, d *lang.Dialect) (*Model, []Diagnostic, error) {
	if d == nil {
		return nil, nil, validationError(CodeUnsupportedLanguage, "", "未指定目标语言")
	}

	namespace, class := splitClassName(className)
	if err := validateClassName(namespace, class, d); err != nil {
		return nil, nil, err
	}

	if bundleID == "" {
		bundleID = strings.TrimSpace(className)
	}

	var (
		errs  []error
		diags []Diagnostic
		seen  = NewOrderedMap[string, *Resource]()
	)

	for i, e := range entries {
		if e.Name == "" {
			errs = append(errs, validationError(CodeEmptyName, "", "第 %d 个资源的名称为空", i+1))
			continue
		}

		ident := lang.Sanitize(e.Name, d)
		key := d.Fold(ident)

		if prev, ok := seen.Get(key); ok {
			errs = append(errs, validationError(CodeDuplicateIdentifier, e.Name,
				"标识符 %s 与资源 %q 重复", ident, prev.Name))
			continue
		}
		if key == d.Fold(class) {
			errs = append(errs, validationError(CodeClassNameConflict, e.Name,
				"标识符 %s 与容器名相同", ident))
			continue
		}

		res, resDiags := classify(e)
		res.Identifier = ident
		diags = append(diags, resDiags...)
		seen.Set(key, res)
	}

	if len(errs) > 0 {
		return nil, diags, errors.Join(errs...)
	}

	return &Model{
		BundleID:  bundleID,
		Namespace: namespace,
		ClassName: class,
		Dialect:   d,
		Resources: seen.Values(),
	}, diags, nil
}

// classify 扫描占位符并分类
// 占位符语法有误时按普通字符串处理，并给出警告
func classify(e Entry) (*Resource, []Diagnostic) {
	res := &Resource{Entry: e, Kind: KindPlain}

	phs, err := format.Scan(e.Value)
	if err != nil {
		return res, []Diagnostic{warning(CodeMalformedPlaceholder, e.Name,
			"值中的占位符无效，按普通字符串处理: %v", err)}
	}
	if len(phs) == 0 {
		return res, nil
	}

	res.Kind = KindFormatted
	res.Placeholders = phs
	res.ArgCount = format.ArgCount(phs)

	var diags []Diagnostic
	if missing := format.Missing(phs); len(missing) > 0 {
		indexes := lo.Map(missing, func(i int, _ int) string {
			return fmt.Sprintf("{%d}", i)
		})
		diags = append(diags, warning(CodePlaceholderGap, e.Name,
			"占位符 %s 未被使用，但仍会占用参数位置", strings.Join(indexes, ", ")))
	}
	return res, diags
}

// splitClassName 按最后一个 '.' 拆分命名空间与类名
func splitClassName(name string) (namespace, class string) {
	name = strings.TrimSpace(name)
	if idx := strings.LastIndexByte(name, '.'); idx >= 0 {
		return name[:idx], name[idx+1:]
	}
	return "", name
}

func validateClassName(namespace, class string, d *lang.Dialect) error {
	if !d.IsIdentifier(class) {
		return validationError(CodeInvalidClassName, "", "类名 %q 不是合法的 %s 标识符", class, d.Name)
	}
	if namespace == "" {
		return nil
	}
	for _, part := range strings.Split(namespace, ".") {
		if !d.IsIdentifier(part) {
			return validationError(CodeInvalidClassName, "", "命名空间 %q 中的 %q 不是合法的 %s 标识符", namespace, part, d.Name)
		}
	}
	return nil
}
