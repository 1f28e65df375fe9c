package repository

// AdSlotListFilter 查询广告位列表的过滤条件
type AdSlotListFilter struct {
	Page     int
	PageSize int
	Search   string
	Enabled  *bool
}

// AdCreativeListFilter 查询素材列表的过滤条件
type AdCreativeListFilter struct {
	Page     int
	PageSize int
	Type     string
	Search   string
	IsActive *bool
}

// AdPlacementListFilter 查询投放列表的过滤条件
type AdPlacementListFilter struct {
	Page          int
	PageSize      int
	SlotID        uint
	CreativeID    uint
	IsActive      *bool
	WithRelations bool
}

// AdMetricRangeFilter 日聚合查询范围，From/To 均包含
type AdMetricRangeFilter struct {
	From       string
	To         string
	SlotID     uint
	CreativeID uint
}
