package repository

import (
	"fmt"
	"testing"

	"github.com/newsportal/internal/models"
)

func TestPaginateScope(t *testing.T) {
	db := setupAdRepositoryTest(t)
	for i := 0; i < 5; i++ {
		slot := &models.AdSlot{SlotKey: fmt.Sprintf("SLOT_%d", i), Name: "slot", Enabled: true}
		if err := db.Create(slot).Error; err != nil {
			t.Fatalf("create slot failed: %v", err)
		}
	}
	var page []models.AdSlot
	if err := db.Model(&models.AdSlot{}).Order("id ASC").Scopes(paginate(2, 2)).Find(&page).Error; err != nil {
		t.Fatalf("paginate failed: %v", err)
	}
	if len(page) != 2 || page[0].SlotKey != "SLOT_2" {
		t.Fatalf("unexpected page: %+v", page)
	}
	var all []models.AdSlot
	if err := db.Model(&models.AdSlot{}).Scopes(paginate(0, 0)).Find(&all).Error; err != nil {
		t.Fatalf("unpaged find failed: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("pageSize 0 should not limit, got %d", len(all))
	}
}
