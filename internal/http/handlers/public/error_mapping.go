package public

import (
	handlershared "github.com/newsportal/internal/http/handlers/shared"
	"github.com/newsportal/internal/http/response"
	"github.com/newsportal/internal/service"
)

var pickErrorRules = []handlershared.MappedError{
	{Target: service.ErrSlotNotFound, Code: response.CodeNotFound, Message: "slot not found"},
	{Target: service.ErrNoEligibleCreative, Code: response.CodeNotFound, Message: "no eligible creative"},
}

var trackingErrorRules = []handlershared.MappedError{
	{Target: service.ErrInvalidAdEvent, Code: response.CodeUnprocessableEntity},
}

var postViewErrorRules = []handlershared.MappedError{
	{Target: service.ErrPostNotFound, Code: response.CodeNotFound, Message: "post not found"},
}
