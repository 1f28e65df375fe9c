package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/newsportal/internal/constants"
	"github.com/newsportal/internal/models"
)

func boolPtr(v bool) *bool {
	return &v
}

func TestAdSlotServiceLifecycle(t *testing.T) {
	db := setupServiceTestDB(t)
	repos := newAdTestRepos(db)
	svc := NewAdSlotService(repos.slots)
	ctx := context.Background()

	slot, err := svc.Create(ctx, AdSlotInput{SlotKey: stringPtr("HERO_BEFORE_TITLE"), Name: stringPtr("Hero"), MaxAds: intPtr(2)})
	if err != nil {
		t.Fatalf("create slot failed: %v", err)
	}
	if !slot.Enabled || slot.MaxAds == nil || *slot.MaxAds != 2 {
		t.Fatalf("unexpected slot defaults %+v", slot)
	}
	if _, err := svc.Create(ctx, AdSlotInput{SlotKey: stringPtr("HERO_BEFORE_TITLE"), Name: stringPtr("Dup")}); !errors.Is(err, ErrSlotKeyExists) {
		t.Fatalf("expected ErrSlotKeyExists, got %v", err)
	}
	if _, err := svc.Create(ctx, AdSlotInput{SlotKey: stringPtr("bad key!"), Name: stringPtr("Bad")}); !errors.Is(err, ErrInvalidAdSlot) {
		t.Fatalf("expected invalid slot key, got %v", err)
	}
	if _, err := svc.Create(ctx, AdSlotInput{SlotKey: stringPtr("NO_NAME")}); !errors.Is(err, ErrInvalidAdSlot) {
		t.Fatalf("expected missing name error, got %v", err)
	}

	updated, err := svc.Update(ctx, slot.ID, AdSlotInput{Enabled: boolPtr(false), MaxAds: intPtr(0)})
	if err != nil {
		t.Fatalf("update slot failed: %v", err)
	}
	if updated.Enabled || updated.MaxAds != nil || updated.SlotKey != "HERO_BEFORE_TITLE" {
		t.Fatalf("unexpected updated slot %+v", updated)
	}
	reloaded, err := svc.GetByID(ctx, slot.ID)
	if err != nil {
		t.Fatalf("get slot failed: %v", err)
	}
	if reloaded.Enabled || reloaded.MaxAds != nil {
		t.Fatalf("update not persisted: %+v", reloaded)
	}

	list, total, err := svc.List(ctx, "hero", boolPtr(false), 1, 20)
	if err != nil {
		t.Fatalf("list slots failed: %v", err)
	}
	if total != 1 || len(list) != 1 {
		t.Fatalf("expected one disabled slot, got total=%d list=%+v", total, list)
	}

	placement := createTestPlacement(t, db, slot.ID, "A", 1, nil)
	if err := svc.Delete(ctx, slot.ID); err != nil {
		t.Fatalf("delete slot failed: %v", err)
	}
	if _, err := svc.GetByID(ctx, slot.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	var count int64
	if err := db.Model(&models.AdPlacement{}).Where("id = ?", placement.ID).Count(&count).Error; err != nil {
		t.Fatalf("count placements failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("placements of deleted slot should be removed")
	}
}

func TestAdCreativeServiceValidatesContent(t *testing.T) {
	db := setupServiceTestDB(t)
	repos := newAdTestRepos(db)
	svc := NewAdCreativeService(repos.creatives, NewHTMLSanitizer(constants.HTMLPolicyRaw))
	ctx := context.Background()

	if _, err := svc.Create(ctx, AdCreativeInput{Name: stringPtr("empty html")}); !errors.Is(err, ErrInvalidAdCreative) {
		t.Fatalf("expected html required, got %v", err)
	}
	if _, err := svc.Create(ctx, AdCreativeInput{Name: stringPtr("img"), Type: stringPtr("image")}); !errors.Is(err, ErrInvalidAdCreative) {
		t.Fatalf("expected image_url required, got %v", err)
	}
	if _, err := svc.Create(ctx, AdCreativeInput{Name: stringPtr("video"), Type: stringPtr("video")}); !errors.Is(err, ErrInvalidAdCreative) {
		t.Fatalf("expected invalid type, got %v", err)
	}
	from := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	to := from.Add(-time.Hour)
	if _, err := svc.Create(ctx, AdCreativeInput{
		Name:       stringPtr("window"),
		HTML:       stringPtr("<b>x</b>"),
		ActiveFrom: TimePatch{Set: true, Value: &from},
		ActiveTo:   TimePatch{Set: true, Value: &to},
	}); !errors.Is(err, ErrInvalidAdCreative) {
		t.Fatalf("expected window order error, got %v", err)
	}

	creative, err := svc.Create(ctx, AdCreativeInput{
		Name:        stringPtr("banner"),
		Type:        stringPtr("IMAGE"),
		ImageURL:    stringPtr("https://cdn.example.com/a.png"),
		ClickURL:    stringPtr("https://example.com"),
		TargetBlank: boolPtr(true),
	})
	if err != nil {
		t.Fatalf("create creative failed: %v", err)
	}
	if creative.Type != constants.CreativeTypeImage || creative.Weight != 1 || !creative.IsActive || !creative.TargetBlank {
		t.Fatalf("unexpected creative defaults %+v", creative)
	}

	if _, err := svc.Update(ctx, creative.ID, AdCreativeInput{ImageURL: stringPtr("  ")}); !errors.Is(err, ErrInvalidAdCreative) {
		t.Fatalf("clearing image_url on an image creative must fail, got %v", err)
	}
	updated, err := svc.Update(ctx, creative.ID, AdCreativeInput{
		ClickURL:   stringPtr(""),
		ActiveFrom: TimePatch{Set: true, Value: &from},
		IsActive:   boolPtr(false),
	})
	if err != nil {
		t.Fatalf("update creative failed: %v", err)
	}
	if updated.ClickURL != nil || updated.ActiveFrom == nil || updated.IsActive {
		t.Fatalf("unexpected updated creative %+v", updated)
	}
	cleared, err := svc.Update(ctx, creative.ID, AdCreativeInput{ActiveFrom: TimePatch{Set: true}})
	if err != nil {
		t.Fatalf("clear active_from failed: %v", err)
	}
	if cleared.ActiveFrom != nil {
		t.Fatalf("active_from should be cleared")
	}

	list, total, err := svc.List(ctx, "image", "", boolPtr(false), 1, 20)
	if err != nil {
		t.Fatalf("list creatives failed: %v", err)
	}
	if total != 1 || len(list) != 1 || list[0].ID != creative.ID {
		t.Fatalf("unexpected creative list total=%d %+v", total, list)
	}
}

func TestAdCreativeServiceAppliesHTMLPolicy(t *testing.T) {
	db := setupServiceTestDB(t)
	repos := newAdTestRepos(db)
	svc := NewAdCreativeService(repos.creatives, NewHTMLSanitizer(constants.HTMLPolicyUGC))

	creative, err := svc.Create(context.Background(), AdCreativeInput{
		Name: stringPtr("ugc"),
		HTML: stringPtr(`<a href="https://example.com">go</a><script>alert(1)</script>`),
	})
	if err != nil {
		t.Fatalf("create creative failed: %v", err)
	}
	if creative.HTML == nil || *creative.HTML == "" {
		t.Fatalf("sanitized html should keep the link")
	}
	if got := *creative.HTML; strings.Contains(got, "<script>") {
		t.Fatalf("script should be stripped, got %s", got)
	}

	if _, err := svc.Create(context.Background(), AdCreativeInput{
		Name: stringPtr("only script"),
		HTML: stringPtr(`<script>alert(1)</script>`),
	}); !errors.Is(err, ErrInvalidAdCreative) {
		t.Fatalf("html emptied by policy must be rejected, got %v", err)
	}
}

func TestHTMLSanitizerModes(t *testing.T) {
	raw := `<p onclick="x()">hi</p><script>s()</script>`
	if got := NewHTMLSanitizer("").Sanitize(raw); got != raw {
		t.Fatalf("raw mode must keep input, got %s", got)
	}
	if got := NewHTMLSanitizer("strict").Sanitize(raw); got != "hi" {
		t.Fatalf("strict mode must strip tags, got %q", got)
	}
	if NewHTMLSanitizer("UGC").Mode() != constants.HTMLPolicyUGC {
		t.Fatalf("mode should be normalized")
	}
	var nilSanitizer *HTMLSanitizer
	if nilSanitizer.Sanitize(raw) != raw || nilSanitizer.Mode() != constants.HTMLPolicyRaw {
		t.Fatalf("nil sanitizer should behave as raw")
	}
}

func TestAdPlacementServiceLifecycle(t *testing.T) {
	db := setupServiceTestDB(t)
	repos := newAdTestRepos(db)
	svc := NewAdPlacementService(repos.placements, repos.slots, repos.creatives)
	ctx := context.Background()

	slot := createTestSlot(t, db, "SIDEBAR", true)
	html := "<div>x</div>"
	creative := &models.AdCreative{Name: "c", Type: constants.CreativeTypeHTML, HTML: &html, IsActive: true, Weight: 1}
	if err := db.Create(creative).Error; err != nil {
		t.Fatalf("create creative failed: %v", err)
	}

	if _, err := svc.Create(ctx, AdPlacementInput{SlotID: uintPtr(slot.ID)}); !errors.Is(err, ErrInvalidAdPlacement) {
		t.Fatalf("expected creative_id required, got %v", err)
	}
	if _, err := svc.Create(ctx, AdPlacementInput{SlotID: uintPtr(999), CreativeID: uintPtr(creative.ID)}); !errors.Is(err, ErrInvalidAdPlacement) {
		t.Fatalf("expected unknown slot error, got %v", err)
	}
	if _, err := svc.Create(ctx, AdPlacementInput{SlotID: uintPtr(slot.ID), CreativeID: uintPtr(creative.ID), Weight: intPtr(-1)}); !errors.Is(err, ErrInvalidAdPlacement) {
		t.Fatalf("expected negative weight error, got %v", err)
	}

	placement, err := svc.Create(ctx, AdPlacementInput{SlotID: uintPtr(slot.ID), CreativeID: uintPtr(creative.ID)})
	if err != nil {
		t.Fatalf("create placement failed: %v", err)
	}
	if placement.Weight != 1 || !placement.IsActive {
		t.Fatalf("unexpected placement defaults %+v", placement)
	}

	updated, err := svc.Update(ctx, placement.ID, AdPlacementInput{Weight: intPtr(0), IsActive: boolPtr(false)})
	if err != nil {
		t.Fatalf("update placement failed: %v", err)
	}
	if updated.Weight != 0 || updated.IsActive {
		t.Fatalf("unexpected updated placement %+v", updated)
	}
	reloaded, err := svc.GetByID(ctx, placement.ID)
	if err != nil {
		t.Fatalf("get placement failed: %v", err)
	}
	if reloaded.Weight != 0 || reloaded.IsActive {
		t.Fatalf("zero values should persist, got %+v", reloaded)
	}

	list, total, err := svc.List(ctx, slot.ID, 0, nil, 1, 20)
	if err != nil {
		t.Fatalf("list placements failed: %v", err)
	}
	if total != 1 || len(list) != 1 || list[0].Slot == nil || list[0].Creative == nil {
		t.Fatalf("expected placement with relations, got total=%d %+v", total, list)
	}

	if err := svc.Delete(ctx, placement.ID); err != nil {
		t.Fatalf("delete placement failed: %v", err)
	}
	if _, err := svc.GetByID(ctx, placement.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
