package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"compass-backend/internal/domain"
	"compass-backend/internal/dto"
	"compass-backend/internal/repo"
)

var ErrExportGenerate = errors.New("generate export workbook failed")

const (
	exportSheetDays    = "DaySheets"
	exportSheetRatings = "Ratings"
)

// ExportService renders a month of day sheets as an xlsx workbook. The caller
// writes the returned buffer to the response.
type ExportService interface {
	ExportMonth(ctx context.Context, month string, p domain.Principal) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repo.Repository
	dir    *directory
	logger *zap.Logger
}

func NewExportService(r *repo.Repository, dir *directory, logger *zap.Logger) ExportService {
	return &exportService{repo: r, dir: dir, logger: logger}
}

func (s *exportService) ExportMonth(ctx context.Context, month string, p domain.Principal) (*bytes.Buffer, string, error) {
	if !p.Role.IsPrivileged() {
		return nil, "", domain.ErrNotPrivileged
	}
	from, to, err := domain.MonthRange(month)
	if err != nil {
		return nil, "", err
	}
	sheets, err := s.repo.DaySheets.ListBetween(ctx, from, to)
	if err != nil {
		s.logger.Error("load day sheets for export failed", zap.String("month", month), zap.Error(err))
		return nil, "", err
	}
	users := map[string]dto.UserDto{}
	if len(sheets) > 0 {
		if users, err = s.dir.all(ctx); err != nil {
			return nil, "", err
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheetDays); err != nil {
		return nil, "", ErrExportGenerate
	}
	if _, err := f.NewSheet(exportSheetRatings); err != nil {
		return nil, "", ErrExportGenerate
	}
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
	})

	rows := [][]any{{"Date", "Participant", "Confirmed", "Hours", "Notes"}}
	ratings := [][]any{{"Date", "Participant", "Category", "Rating", "Rating role"}}
	for i := range sheets {
		d := &sheets[i]
		view := buildDaySheetView(d, p.Role, nil)
		name := participantName(users, d.OwnerID)
		rows = append(rows, []any{
			d.Date, name, d.Confirmed,
			float64(view.TimeSum) / 3600000, d.DayNotes,
		})
		for _, r := range view.MoodRatings {
			ratings = append(ratings, []any{d.Date, name, r.Category.Name, r.Rating, string(r.RatingRole)})
		}
	}

	for sheet, data := range map[string][][]any{exportSheetDays: rows, exportSheetRatings: ratings} {
		for i, row := range data {
			cell, _ := excelize.CoordinatesToCellName(1, i+1)
			if err := f.SetSheetRow(sheet, cell, &row); err != nil {
				s.logger.Error("write export row failed", zap.String("sheet", sheet), zap.Error(err))
				return nil, "", ErrExportGenerate
			}
		}
		_ = f.SetCellStyle(sheet, "A1", "E1", headerStyle)
		_ = f.SetColWidth(sheet, "A", "A", 12)
		_ = f.SetColWidth(sheet, "B", "C", 24)
		_ = f.SetColWidth(sheet, "E", "E", 48)
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("write export workbook failed", zap.Error(err))
		return nil, "", ErrExportGenerate
	}
	return buf, fmt.Sprintf("daysheets_%s.xlsx", month), nil
}

func participantName(users map[string]dto.UserDto, id string) string {
	u := lookup(users, id)
	if u == nil {
		return id
	}
	name := strings.TrimSpace(u.GivenName + " " + u.FamilyName)
	if name == "" {
		return u.Email
	}
	return name
}
