package cache

import (
	"context"
	"fmt"
	"sort"
	"time"
)

const authStateCacheTTL = 10 * time.Minute

// CapabilityState WordPress 用户角色快照
// Roles 来自 usermeta 中的 capabilities，仅保留 b:1 的角色。
type CapabilityState struct {
	UserID    uint     `json:"user_id"`
	Roles     []string `json:"roles"`
	UpdatedAt int64    `json:"updated_at"`
}

func capabilityStateKey(userID uint) string {
	return fmt.Sprintf("auth:wp_user:%d:caps", userID)
}

// BuildCapabilityState 从角色集合构建快照
func BuildCapabilityState(userID uint, roles map[string]bool) *CapabilityState {
	if userID == 0 {
		return nil
	}
	list := make([]string, 0, len(roles))
	for role, granted := range roles {
		if granted {
			list = append(list, role)
		}
	}
	sort.Strings(list)
	return &CapabilityState{
		UserID:    userID,
		Roles:     list,
		UpdatedAt: time.Now().Unix(),
	}
}

// HasRole 判断快照是否包含角色
func (s *CapabilityState) HasRole(role string) bool {
	if s == nil {
		return false
	}
	for _, item := range s.Roles {
		if item == role {
			return true
		}
	}
	return false
}

// GetCapabilityState 获取角色快照
func GetCapabilityState(ctx context.Context, userID uint) (*CapabilityState, bool, error) {
	if userID == 0 {
		return nil, false, nil
	}
	var state CapabilityState
	hit, err := GetJSON(ctx, capabilityStateKey(userID), &state)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &state, true, nil
}

// SetCapabilityState 写入角色快照
func SetCapabilityState(ctx context.Context, state *CapabilityState) error {
	if state == nil || state.UserID == 0 {
		return nil
	}
	return SetJSON(ctx, capabilityStateKey(state.UserID), state, authStateCacheTTL)
}

// DelCapabilityState 删除角色快照
func DelCapabilityState(ctx context.Context, userID uint) error {
	if userID == 0 {
		return nil
	}
	return Del(ctx, capabilityStateKey(userID))
}
