package constants

import "time"

// 广告素材类型常量
const (
	CreativeTypeHTML  = "html"
	CreativeTypeImage = "image"
)

// 素材 HTML 处理策略
const (
	HTMLPolicyRaw    = "raw"
	HTMLPolicyUGC    = "ugc"
	HTMLPolicyStrict = "strict"
)

// 统计事件类型常量
const (
	AdEventImpression = "imp"
	AdEventClick      = "click"
	AdEventBatch      = "batch"
)

// 事件记录结果（用于指标标签）
const (
	AdEventResultCounted = "counted"
	AdEventResultDedup   = "dedup"
	AdEventResultFailed  = "failed"
)

// 选取结果（用于指标标签）
const (
	AdPickResultServed       = "served"
	AdPickResultSlotNotFound = "slot_not_found"
	AdPickResultNoEligible   = "no_eligible"
	AdPickResultFailed       = "failed"
)

// 报表排行维度
const (
	AdTopKindSlot     = "slot"
	AdTopKindCreative = "creative"
)

// 报表与批量限制
const (
	AdBatchMaxEvents   = 200
	AdTopDefaultLimit  = 10
	AdTopMaxLimit      = 50
	AdNoActiveReason   = "no-active"
	AdYMDLayout        = "2006-01-02"
	AdMaxUserAgentSize = 255
	AdMaxClientIDSize  = 64
)

// AdDayOffsetSeconds 日统计按固定 UTC+6 切日
const AdDayOffsetSeconds = 6 * 60 * 60

// AdDayZone 日统计使用的固定时区
var AdDayZone = time.FixedZone("Asia/Dhaka", AdDayOffsetSeconds)

// WordPress 角色常量
const (
	RoleAdministrator = "administrator"
)

// WordPress usermeta 键（不含表前缀）
const (
	UserMetaCapabilitiesSuffix = "capabilities"
)

// 文章状态
const (
	PostStatusPublish = "publish"
)

// 队列与任务常量
const (
	QueueDefault      = "default"
	QueueMaintenance  = "maintenance"
	TaskAdEventsPrune = "ads:events_prune"
)
