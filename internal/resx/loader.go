// Package resx 读取资源表文件
//
// 支持三种格式，按扩展名选择:
//   - .resx       XML 资源文件（只读取字符串资源）
//   - .yaml/.yml  条目列表，或 名称 -> 值 的有序映射
//   - .json       条目数组
package resx

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Entry 资源表中的一行，保持文件中的顺序
type Entry struct {
	Name    string `json:"name" yaml:"name"`
	Value   string `json:"value" yaml:"value"`
	Comment string `json:"comment,omitempty" yaml:"comment,omitempty"`
}

// Format 资源表格式
type Format string

const (
	FormatResx Format = "resx"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatOf 根据文件扩展名判断格式
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".resx":
		return FormatResx, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("无法识别的资源表格式: %s", path)
	}
}

// IsTableFile 是否为支持的资源表文件
func IsTableFile(path string) bool {
	_, err := FormatOf(path)
	return err == nil
}

// Load 读取资源表文件
func Load(path string) ([]Entry, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("打开资源表失败: %w", err)
	}
	defer f.Close()

	entries, err := Parse(f, format)
	if err != nil {
		return nil, fmt.Errorf("解析资源表 %s 失败: %w", path, err)
	}
	return entries, nil
}

// Parse 按指定格式解析资源表
func Parse(r io.Reader, format Format) ([]Entry, error) {
	switch format {
	case FormatResx:
		return parseResx(r)
	case FormatYAML:
		return parseYAML(r)
	case FormatJSON:
		return parseJSON(r)
	default:
		return nil, fmt.Errorf("不支持的资源表格式 %q", format)
	}
}
