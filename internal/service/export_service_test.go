package service

import (
	"context"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"

	"compass-backend/internal/domain"
)

func TestExportMonth(t *testing.T) {
	store, idp, r, logger := setupTestEnv()
	svc := NewExportService(r, newDirectory(r, idp), logger)
	d := store.addSheet(participantID, "2024-04-02", true)
	d.DayNotes = "good day"
	store.addTimestamp(d.ID, "08:00:00", "09:30:00")
	c := store.addCategory("Mood", 1, 10)
	store.ratings = append(store.ratings, domain.Rating{
		ID: store.next(), DaySheetID: d.ID, CategoryID: c.ID, Value: 7, RatingRole: domain.RatingRoleSocialWorker,
	})
	store.addSheet(otherID, "2024-05-01", false)

	buf, name, err := svc.ExportMonth(context.Background(), "2024-04", worker)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if name != "daysheets_2024-04.xlsx" {
		t.Fatalf("filename = %s", name)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(exportSheetDays)
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("want header + 1 row, got %d", len(rows))
	}
	if rows[1][0] != "2024-04-02" || rows[1][1] != "Anna Test" || rows[1][3] != "1.5" || rows[1][4] != "good day" {
		t.Fatalf("row = %v", rows[1])
	}

	ratings, err := f.GetRows(exportSheetRatings)
	if err != nil {
		t.Fatalf("ratings: %v", err)
	}
	if len(ratings) != 2 || ratings[1][2] != "Mood" || ratings[1][3] != "7" || ratings[1][4] != "SOCIAL_WORKER" {
		t.Fatalf("ratings = %v", ratings)
	}
}

func TestExportMonth_Rejects(t *testing.T) {
	_, idp, r, logger := setupTestEnv()
	svc := NewExportService(r, newDirectory(r, idp), logger)

	if _, _, err := svc.ExportMonth(context.Background(), "2024-04", participant); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("participant, got %v", err)
	}
	if _, _, err := svc.ExportMonth(context.Background(), "April", admin); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("bad month, got %v", err)
	}
}
