package lang

import (
	"strings"

	"github.com/samber/lo"
)

// dialects 已支持的目标语言，顺序即帮助信息中的顺序
var dialects = []*Dialect{CSharp, VisualBasic, Go}

// Lookup 按名称或别名查找方言，不区分大小写
func Lookup(name string) (*Dialect, bool) {
	name = strings.TrimSpace(name)
	return lo.Find(dialects, func(d *Dialect) bool {
		if strings.EqualFold(d.Name, name) {
			return true
		}
		return lo.ContainsBy(d.Aliases, func(alias string) bool {
			return strings.EqualFold(alias, name)
		})
	})
}

// All 返回全部方言
func All() []*Dialect {
	return append([]*Dialect(nil), dialects...)
}

// Names 返回全部方言名称
func Names() []string {
	return lo.Map(dialects, func(d *Dialect, _ int) string {
		return d.Name
	})
}
