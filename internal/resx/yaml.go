package resx

import (
	"bytes"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cast"
)

// parseYAML 解析 YAML 资源表
//
// 列表形式:
//
//	- name: Greeting
//	  value: Hello, {0}!
//	  comment: 问候语
//
// 映射形式（保持键的顺序）:
//
//	Greeting: Hello, {0}!
//	Farewell:
//	  value: Goodbye
//	  comment: 告别语
func parseYAML(r io.Reader) ([]Entry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var list []Entry
	if err := yaml.Unmarshal(data, &list); err == nil {
		return list, nil
	}

	var ordered yaml.MapSlice
	if err := yaml.UnmarshalWithOptions(data, &ordered, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("解析 YAML 失败: %w", err)
	}

	entries := make([]Entry, 0, len(ordered))
	for _, item := range ordered {
		name, err := cast.ToStringE(item.Key)
		if err != nil {
			return nil, fmt.Errorf("资源名 %v 不是字符串: %w", item.Key, err)
		}
		entry, err := mapItemEntry(name, item.Value)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// mapItemEntry 映射形式中的值可以是标量，也可以是 {value, comment}
func mapItemEntry(name string, value any) (Entry, error) {
	switch v := value.(type) {
	case nil:
		return Entry{Name: name}, nil
	case yaml.MapSlice:
		entry := Entry{Name: name}
		for _, field := range v {
			key, _ := field.Key.(string)
			switch key {
			case "value":
				entry.Value = cast.ToString(field.Value)
			case "comment":
				entry.Comment = cast.ToString(field.Value)
			default:
				return Entry{}, fmt.Errorf("资源 %s 包含未知字段 %q", name, key)
			}
		}
		return entry, nil
	default:
		s, err := cast.ToStringE(v)
		if err != nil {
			return Entry{}, fmt.Errorf("资源 %s 的值无法转换为字符串: %w", name, err)
		}
		return Entry{Name: name, Value: s}, nil
	}
}
