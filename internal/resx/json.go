package resx

import (
	"fmt"
	"io"

	"github.com/bytedance/sonic"
)

// parseJSON 解析 JSON 资源表: [{"name": ..., "value": ..., "comment": ...}]
func parseJSON(r io.Reader) ([]Entry, error) {
	var entries []Entry
	if err := sonic.ConfigStd.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("解析 JSON 失败: %w", err)
	}
	return entries, nil
}
