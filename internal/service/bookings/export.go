package bookings

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/slotline/bookingengine/internal/domain"
	"github.com/slotline/bookingengine/internal/service/bookings/models"
	"github.com/slotline/bookingengine/pkg/types"
)

const exportSheetName = "Бронирования"

// ExportXLSX выгружает бронирования за период в Excel-файл и возвращает его
// содержимое. Файл не сохраняется на диск: отдаём байты наружу, доставка
// (HTTP, почта) остаётся за вызывающим.
func (s *Service) ExportXLSX(ctx context.Context, req *models.CalendarRequest) ([]byte, string, error) {
	list, err := s.BookingsInRange(ctx, req)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheetName)
	if err != nil {
		return nil, "", fmt.Errorf("%w: ExportXLSX - creating sheet: %v", ErrInternal, err)
	}
	f.SetActiveSheet(index)

	// Заголовок периода
	_ = f.SetCellValue(exportSheetName, "A1", fmt.Sprintf("Период: %s - %s",
		req.StartDate.Format("02.01.2006"), req.EndDate.Format("02.01.2006")))
	_ = f.MergeCell(exportSheetName, "A1", "I1")

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	_ = f.SetCellStyle(exportSheetName, "A1", "A1", titleStyle)

	writeColumnHeaders(f)
	writeBookingRows(f, list.Bookings)

	_ = f.SetColWidth(exportSheetName, "A", "A", 12)
	_ = f.SetColWidth(exportSheetName, "B", "C", 10)
	_ = f.SetColWidth(exportSheetName, "D", "D", 25)
	_ = f.SetColWidth(exportSheetName, "E", "E", 18)
	_ = f.SetColWidth(exportSheetName, "F", "I", 14)

	_ = f.DeleteSheet("Sheet1")

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("%w: ExportXLSX - writing file: %v", ErrInternal, err)
	}

	fileName := fmt.Sprintf("bookings_%s_to_%s.xlsx",
		req.StartDate.Format(domain.DateFormat),
		req.EndDate.Format(domain.DateFormat))

	s.logger.Info("ExportXLSX: business=%d, %d bookings exported", req.BusinessID, list.Total)

	return buf.Bytes(), fileName, nil
}

func writeColumnHeaders(f *excelize.File) {
	headers := []string{
		"Дата", "Начало", "Конец", "Клиент", "Телефон",
		"Услуга", "Статус", "Цена", "Предоплата",
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
	})

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		_ = f.SetCellValue(exportSheetName, cell, h)
		_ = f.SetCellStyle(exportSheetName, cell, cell, headerStyle)
	}
}

func writeBookingRows(f *excelize.File, bookings []*models.BookingResponse) {
	for i, b := range bookings {
		row := i + 3

		service := "Весь день"
		if b.ServiceID != nil {
			service = fmt.Sprintf("#%d", *b.ServiceID)
		}

		values := []interface{}{
			b.BookingDate,
			b.StartTime,
			endTimeLabel(b),
			b.CustomerName,
			b.CustomerPhone,
			service,
			b.Status,
			b.ServicePrice,
			b.AdvancePaid,
		}

		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			_ = f.SetCellValue(exportSheetName, cell, v)
		}
	}
}

// endTimeLabel считает конец слота из начала и длительности.
// Full-day бронирования (длительность 1440 минут) отображаются как 24:00.
func endTimeLabel(b *models.BookingResponse) string {
	end, err := types.TimeString(b.StartTime).AddMinutes(b.DurationMinutes)
	if err != nil {
		return ""
	}
	return end.String()
}
