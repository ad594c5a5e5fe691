package resxgen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pmezard/go-difflib/difflib"
)

// CheckResult 检查结果
type CheckResult struct {
	*Result
	UpToDate bool   // 磁盘上的文件与重新生成的内容一致
	Diff     string // 不一致时的 unified diff
}

// Check 重新生成源码并与磁盘上的输出文件比较，不写文件
func Check(ctx context.Context, job *Job) (*CheckResult, error) {
	result, err := Render(ctx, job)
	if err != nil {
		return &CheckResult{Result: result}, err
	}

	existing, err := os.ReadFile(result.Output)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &CheckResult{Result: result}, fmt.Errorf("读取 %s 失败: %w", result.Output, err)
	}

	if bytes.Equal(existing, result.Source) {
		return &CheckResult{Result: result, UpToDate: true}, nil
	}

	diff, err := UnifiedDiff(string(existing), string(result.Source), result.Output, result.Output+" (generated)")
	if err != nil {
		return &CheckResult{Result: result}, err
	}
	return &CheckResult{Result: result, Diff: diff}, nil
}

// UnifiedDiff 生成 unified diff 文本
func UnifiedDiff(a, b, fromFile, toFile string) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(a),
		B:        difflib.SplitLines(b),
		FromFile: fromFile,
		ToFile:   toFile,
		Context:  3,
	})
}
