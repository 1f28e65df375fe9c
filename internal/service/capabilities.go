package service

import (
	"regexp"
	"strconv"
)

// 匹配 PHP 序列化数组中的 s:<n>:"<role>";b:<0|1>; 片段
var capabilityPairPattern = regexp.MustCompile(`s:(\d+):"([^"]*)";b:([01]);`)

// ParseCapabilities 解析 wp_usermeta 中的 capabilities 值
// 只识别 s:<n>:"<role>";b:1; 形式的条目，声明长度与实际长度不一致的条目视为无效，
// b:0 的角色被忽略，无法识别的输入返回空集合。
func ParseCapabilities(raw string) map[string]bool {
	roles := make(map[string]bool)
	for _, match := range capabilityPairPattern.FindAllStringSubmatch(raw, -1) {
		declared, err := strconv.Atoi(match[1])
		if err != nil || declared != len(match[2]) || match[2] == "" {
			continue
		}
		if match[3] == "1" {
			roles[match[2]] = true
		}
	}
	return roles
}
