package resx

import (
	"encoding/xml"
	"fmt"
	"io"
)

type resxDocument struct {
	Data []resxData `xml:"data"`
}

type resxData struct {
	Name     string `xml:"name,attr"`
	Type     string `xml:"type,attr"`
	MimeType string `xml:"mimetype,attr"`
	Value    string `xml:"value"`
	Comment  string `xml:"comment"`
}

// parseResx 解析 .resx 文件
// 带 type 或 mimetype 属性的 data 不是字符串资源，跳过
func parseResx(r io.Reader) ([]Entry, error) {
	var doc resxDocument
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("解析 XML 失败: %w", err)
	}

	entries := make([]Entry, 0, len(doc.Data))
	for _, d := range doc.Data {
		if d.Type != "" || d.MimeType != "" {
			continue
		}
		entries = append(entries, Entry{
			Name:    d.Name,
			Value:   d.Value,
			Comment: d.Comment,
		})
	}
	return entries, nil
}
