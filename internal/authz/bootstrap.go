package authz

import (
	"fmt"

	"github.com/newsportal/internal/constants"
)

// RoleSeed 预置角色定义
type RoleSeed struct {
	Role     string
	Policies []Policy
}

// BuiltinRoleSeeds 系统预置策略
// 只有 administrator 能访问后台与广告报表。
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: constants.RoleAdministrator,
			Policies: []Policy{
				{Object: "/admin/*", Action: "*"},
				{Object: "/ads/metrics/summary", Action: "GET"},
				{Object: "/ads/metrics/top", Action: "GET"},
			},
		},
	}
}

// BootstrapBuiltinRoles 写入预置策略，已存在的策略保持不变
func (s *Service) BootstrapBuiltinRoles() error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}
	for _, seed := range BuiltinRoleSeeds() {
		role, err := NormalizeRole(seed.Role)
		if err != nil {
			return err
		}
		for _, policy := range seed.Policies {
			action := NormalizeAction(policy.Action)
			if action == "" {
				return fmt.Errorf("builtin policy action is required")
			}
			if _, err := s.enforcer.AddPolicy(role, NormalizeObject(policy.Object), action); err != nil {
				return fmt.Errorf("add builtin policy failed: %w", err)
			}
		}
	}
	return nil
}
