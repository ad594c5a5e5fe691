package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/donutnomad/resxgen/resxgen"
	"github.com/goccy/go-yaml"
	"github.com/samber/lo"
)

// Batch 批处理文件
//
//	defaults:
//	  lang: C#
//	  emit-format-methods: true
//	jobs:
//	  - file: Resources/Strings.resx
//	    class: App.Resources.Strings
//	  - file: Resources/Errors.yaml
//	    class: App.Resources.Errors
//	    lang: VB
//
// 每个任务的参数覆盖 defaults；file 与 output 的相对路径相对于批处理文件所在目录
type Batch struct {
	Defaults map[string]any   `yaml:"defaults"`
	Jobs     []map[string]any `yaml:"jobs"`
}

// LoadBatch 读取批处理文件
func LoadBatch(path string) ([]*resxgen.Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取批处理文件失败: %w", err)
	}
	jobs, err := ParseBatch(data, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("解析批处理文件 %s 失败: %w", path, err)
	}
	return jobs, nil
}

// ParseBatch 解析批处理内容，baseDir 用于解析相对路径
func ParseBatch(data []byte, baseDir string) ([]*resxgen.Job, error) {
	var batch Batch
	if err := yaml.UnmarshalWithOptions(data, &batch, yaml.Strict()); err != nil {
		return nil, err
	}
	if len(batch.Jobs) == 0 {
		return nil, fmt.Errorf("没有定义任何任务")
	}

	jobs := make([]*resxgen.Job, 0, len(batch.Jobs))
	for i, item := range batch.Jobs {
		var opts Options
		if err := ApplyParams(lo.Assign(batch.Defaults, item), &opts, OptionDefs); err != nil {
			return nil, fmt.Errorf("第 %d 个任务: %w", i+1, err)
		}
		opts.File = resolvePath(baseDir, opts.File)
		opts.Output = resolvePath(baseDir, opts.Output)
		jobs = append(jobs, opts.Job())
	}
	return jobs, nil
}

func resolvePath(baseDir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}
