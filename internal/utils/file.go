package utils

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// WriteFileAtomic 原子地写入文件
// 先写入同目录下的临时文件再替换目标文件，失败时不会留下写了一半的目标文件
func WriteFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("创建目录失败: %w", err)
	}
	return replaceFile(path, data, 0644)
}

// FileUnchanged 判断文件内容是否与 data 相同
func FileUnchanged(path string, data []byte) bool {
	existing, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return bytes.Equal(existing, data)
}
