package queue

import (
	"encoding/json"
	"fmt"

	"github.com/newsportal/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskAdEventsPrune 清理过期的曝光/点击原始日志
	TaskAdEventsPrune = constants.TaskAdEventsPrune
)

// AdEventsPrunePayload 清理任务载荷
// RetentionDays 为 0 时使用配置中的保留天数。
type AdEventsPrunePayload struct {
	RetentionDays int    `json:"retention_days,omitempty"`
	RequestedBy   uint   `json:"requested_by,omitempty"`
	Source        string `json:"source,omitempty"` // schedule / admin
}

// NewAdEventsPruneTask 创建清理任务
func NewAdEventsPruneTask(payload AdEventsPrunePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAdEventsPrune, body), nil
}

// ParseAdEventsPrunePayload 解析清理任务载荷
func ParseAdEventsPrunePayload(task *asynq.Task) (AdEventsPrunePayload, error) {
	var payload AdEventsPrunePayload
	if task == nil || len(task.Payload()) == 0 {
		return payload, nil
	}
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return payload, fmt.Errorf("decode %s payload: %w", TaskAdEventsPrune, err)
	}
	if payload.RetentionDays < 0 {
		payload.RetentionDays = 0
	}
	return payload, nil
}
