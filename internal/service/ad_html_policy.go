package service

import (
	"strings"

	"github.com/newsportal/internal/constants"

	"github.com/microcosm-cc/bluemonday"
)

// HTMLSanitizer 素材 HTML 处理策略
// raw 模式原样保存，广告代码通常需要脚本。
type HTMLSanitizer struct {
	mode   string
	policy *bluemonday.Policy
}

// NewHTMLSanitizer 按配置创建策略
func NewHTMLSanitizer(mode string) *HTMLSanitizer {
	mode = strings.ToLower(strings.TrimSpace(mode))
	switch mode {
	case constants.HTMLPolicyUGC:
		return &HTMLSanitizer{mode: mode, policy: bluemonday.UGCPolicy()}
	case constants.HTMLPolicyStrict:
		return &HTMLSanitizer{mode: mode, policy: bluemonday.StrictPolicy()}
	default:
		return &HTMLSanitizer{mode: constants.HTMLPolicyRaw}
	}
}

// Mode 当前策略名
func (h *HTMLSanitizer) Mode() string {
	if h == nil {
		return constants.HTMLPolicyRaw
	}
	return h.mode
}

// Sanitize 处理 HTML 片段
func (h *HTMLSanitizer) Sanitize(raw string) string {
	if h == nil || h.policy == nil {
		return raw
	}
	return strings.TrimSpace(h.policy.Sanitize(raw))
}
