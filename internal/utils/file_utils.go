package utils

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	ContentTypePDF    = "application/pdf"
	ContentTypeBinary = "application/octet-stream"
)

// DefaultFilenameBase 文件名主体清理后为空时使用
const DefaultFilenameBase = "resume"

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)

// SanitizeFilename 清理上传文件名，去掉路径和不安全字符
// 扩展名单独清理并保留；主体被清空时用 DefaultFilenameBase 代替
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	name = strings.Join(strings.Fields(name), "_")

	rawExt := filepath.Ext(name)
	base := cleanFilenamePart(strings.TrimSuffix(name, rawExt))
	ext := cleanFilenamePart(rawExt)
	if ext != "" {
		ext = "." + ext
	}

	if base == "" {
		if ext == "" {
			return ""
		}
		base = DefaultFilenameBase
	}
	return base + ext
}

func cleanFilenamePart(part string) string {
	part = unsafeFilenameChars.ReplaceAllString(part, "")
	return strings.Trim(part, "._")
}

// VersionedFilename 生成带版本号的文件名: {basename}_v{version}{ext}
func VersionedFilename(name string, version int) string {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	return fmt.Sprintf("%s_v%d%s", base, version, ext)
}

// ContentTypeFor 按扩展名判断内容类型
func ContentTypeFor(filename string) string {
	if strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return ContentTypePDF
	}
	return ContentTypeBinary
}

// WriteCSV 写入CSV格式
func WriteCSV(headers []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("write csv rows: %w", err)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("csv writer: %w", err)
	}

	return buf.Bytes(), nil
}
