package util

import (
	"regexp"
	"strings"
)

// 黑名单式清洗，只覆盖最常见的注入途径，不是完整的 HTML 过滤器。
// 已知弱点，替换方案（白名单过滤或结构化存储）属于产品决策。
var (
	scriptRe    = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	onHandlerRe = regexp.MustCompile(`(?i)\son\w+\s*=\s*("[^"]*"|'[^']*'|[^\s>]+)`)
	jsURIRe     = regexp.MustCompile(`(?i)javascript\s*:`)
)

// Sanitize 去除 script 块、内联事件处理器和 javascript: 伪协议
func Sanitize(text string) string {
	if text == "" {
		return ""
	}
	text = scriptRe.ReplaceAllString(text, "")
	text = onHandlerRe.ReplaceAllString(text, "")
	text = jsURIRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// ParseTags 将逗号/空白分隔的原始串解析为去重后的标签列表
func ParseTags(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})

	tagSet := make(map[string]struct{})
	var tags []string
	for _, f := range fields {
		tag := strings.Trim(f, "#.,!?")
		if tag == "" {
			continue
		}
		if _, exists := tagSet[tag]; !exists {
			tagSet[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}
	return tags
}
