package service

import (
	"crypto/sha1"
	"encoding/hex"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/newsportal/internal/constants"
)

// ClientIP 规范化客户端地址
// 取 X-Forwarded-For 的第一个地址，去掉 IPv4 映射前缀 ::ffff:。
func ClientIP(forwardedFor, remoteAddr string) string {
	ip := ""
	if forwardedFor != "" {
		first, _, _ := strings.Cut(forwardedFor, ",")
		ip = strings.TrimSpace(first)
	}
	if ip == "" {
		ip = strings.TrimSpace(remoteAddr)
	}
	if len(ip) >= 7 && strings.EqualFold(ip[:7], "::ffff:") {
		ip = ip[7:]
	}
	return truncateUTF8(ip, 45)
}

// eventFingerprint 生成事件去重指纹
// 同一天内同一客户端对同一投放的重复上报得到相同指纹。
func eventFingerprint(kind string, ymd string, parts ...string) string {
	h := sha1.New()
	h.Write([]byte(kind))
	h.Write([]byte{'|'})
	h.Write([]byte(ymd))
	for _, part := range parts {
		h.Write([]byte{'|'})
		h.Write([]byte(part))
	}
	return hex.EncodeToString(h.Sum(nil))
}

func uintPart(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}

func optionalUintPart(v *uint) string {
	if v == nil {
		return ""
	}
	return uintPart(*v)
}

func optionalStringPart(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

// truncateUserAgent 截断 UA 以适配列宽
func truncateUserAgent(ua string) string {
	return truncateUTF8(strings.TrimSpace(ua), constants.AdMaxUserAgentSize)
}

// normalizeClientToken 清理客户端生成的 uid/sid
func normalizeClientToken(raw *string) *string {
	if raw == nil {
		return nil
	}
	value := strings.TrimSpace(*raw)
	if value == "" {
		return nil
	}
	value = truncateUTF8(value, constants.AdMaxClientIDSize)
	return &value
}

// truncateUTF8 按字节上限截断，不拆分多字节字符
func truncateUTF8(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	n := limit
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
