package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestErrorUsesStatusAndRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("request_id", "req-1")

	Error(c, CodeUnprocessableEntity, "slot_id is required")

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("unexpected status %d", w.Code)
	}
	var body ErrorBody
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body failed: %v", err)
	}
	if body.Error != "slot_id is required" || body.RequestID != "req-1" {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestBuildPagination(t *testing.T) {
	p := BuildPagination(2, 20, 41)
	if p.TotalPage != 3 || p.Page != 2 || p.Total != 41 {
		t.Fatalf("unexpected pagination %+v", p)
	}
	if BuildPagination(1, 0, 5).TotalPage != 0 {
		t.Fatalf("zero page size should yield zero pages")
	}
}

func TestAppErrorHidesInternalDetails(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	internal := WrapError(CodeInternal, "load slot failed", cause)
	if !errors.Is(internal, cause) {
		t.Fatalf("AppError should unwrap to the cause")
	}
	if internal.PublicMessage() != "internal error" {
		t.Fatalf("internal error leaked message: %s", internal.PublicMessage())
	}
	if internal.Error() != "load slot failed: dial tcp: connection refused" {
		t.Fatalf("unexpected error text: %s", internal.Error())
	}

	invalid := WrapError(CodeUnprocessableEntity, "weight must be >= 0", nil)
	if invalid.Internal() || invalid.PublicMessage() != "weight must be >= 0" {
		t.Fatalf("client errors should keep the message")
	}
}
