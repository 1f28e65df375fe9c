package admin

import (
	handlershared "github.com/newsportal/internal/http/handlers/shared"
	"github.com/newsportal/internal/http/response"
	"github.com/newsportal/internal/service"
)

var adSlotErrorRules = []handlershared.MappedError{
	{Target: service.ErrNotFound, Code: response.CodeNotFound, Message: "slot not found"},
	{Target: service.ErrSlotKeyExists, Code: response.CodeConflict},
	{Target: service.ErrInvalidAdSlot, Code: response.CodeUnprocessableEntity},
}

var adCreativeErrorRules = []handlershared.MappedError{
	{Target: service.ErrNotFound, Code: response.CodeNotFound, Message: "creative not found"},
	{Target: service.ErrInvalidAdCreative, Code: response.CodeUnprocessableEntity},
}

var adPlacementErrorRules = []handlershared.MappedError{
	{Target: service.ErrNotFound, Code: response.CodeNotFound, Message: "placement not found"},
	{Target: service.ErrInvalidAdPlacement, Code: response.CodeUnprocessableEntity},
}

var metricsQueryErrorRules = []handlershared.MappedError{
	{Target: service.ErrInvalidMetricsQuery, Code: response.CodeBadRequest},
}

var pruneErrorRules = []handlershared.MappedError{
	{Target: service.ErrInvalidAdEvent, Code: response.CodeUnprocessableEntity},
}
