package resxgen

import (
	"fmt"
	"io"
	"sync"
)

//go:generate mockgen -source=reporter.go -destination=mock_reporter_test.go -package=resxgen

// Reporter 接收生成过程中的诊断信息
type Reporter interface {
	Report(job *Job, d Diagnostic)
}

// PrintReporter 将诊断信息逐行写入 io.Writer
type PrintReporter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewPrintReporter 创建 PrintReporter
func NewPrintReporter(w io.Writer) *PrintReporter {
	return &PrintReporter{w: w}
}

func (r *PrintReporter) Report(job *Job, d Diagnostic) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = fmt.Fprintf(r.w, "[resxgen] %s: %s\n", job.ResourceFile, d)
}
