// Package sheet записывает прогулки в журнал Google Sheets.
package sheet

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"dog_walking/internal/model"

	"golang.org/x/oauth2/google"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const (
	// JournalDateLayout - формат даты прогулки в таблице.
	JournalDateLayout = "2006-01-02 15:04"
	// HeaderRows пропускаются при поиске свободной строки.
	HeaderRows = 1
)

type SheetService struct {
	SpreadsheetID string
	SheetID       string
	SheetName     string
	srv           *sheets.Service
	limiter       *rate.Limiter
	colMap        ColumnMap
}

// ColumnMap сопоставляет поле прогулки и номер колонки с нуля, например "Dog": 3.
type ColumnMap map[string]int

// Поля журнала, которые знает InsertWalk.
const (
	ColN         = "N"
	ColDate      = "Date"
	ColMinutes   = "Minutes"
	ColDog       = "Dog"
	ColClient    = "Client"
	ColCreatedBy = "CreatedBy"
)

func NewDefaultColumnMap() ColumnMap {
	return ColumnMap{
		ColN:         0,
		ColDate:      1,
		ColMinutes:   2,
		ColDog:       3,
		ColClient:    4,
		ColCreatedBy: 5,
	}
}

// Создает ColumnMap из строки порядка через запятую,
// например "N,Date,Dog,Client,Minutes". Пустая строка дает порядок по умолчанию.
func CreateColumnMapFromOrder(order string) ColumnMap {
	if strings.TrimSpace(order) == "" {
		return NewDefaultColumnMap()
	}
	m := make(ColumnMap)
	for idx, field := range strings.Split(order, ",") {
		if f := strings.TrimSpace(field); f != "" {
			m[f] = idx
		}
	}
	return m
}

func (m ColumnMap) width() int {
	w := 0
	for _, idx := range m {
		if idx+1 > w {
			w = idx + 1
		}
	}
	return w
}

// Конструктор SheetService. Учетные данные сервисного аккаунта в base64.
// pauseMs - минимальная пауза между запросами к API.
func NewSheetService(ctx context.Context, base64Creds, spreadsheetID, sheetID string, pauseMs int, colMap ColumnMap) (*SheetService, error) {
	credBytes, err := base64.StdEncoding.DecodeString(base64Creds)
	if err != nil {
		return nil, fmt.Errorf("decode base64 credentials: %w", err)
	}
	creds, err := google.CredentialsFromJSON(ctx, credBytes, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("credentials from json: %w", err)
	}
	return NewSheetServiceWithOptions(ctx, spreadsheetID, sheetID, pauseMs, colMap, option.WithCredentials(creds))
}

func NewSheetServiceWithOptions(ctx context.Context, spreadsheetID, sheetID string, pauseMs int, colMap ColumnMap, opts ...option.ClientOption) (*SheetService, error) {
	srv, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("init google sheets service: %w", err)
	}
	if colMap == nil {
		colMap = NewDefaultColumnMap()
	}

	limit := rate.Inf
	if pauseMs > 0 {
		limit = rate.Every(time.Duration(pauseMs) * time.Millisecond)
	}

	s := &SheetService{
		SpreadsheetID: spreadsheetID,
		SheetID:       sheetID,
		srv:           srv,
		limiter:       rate.NewLimiter(limit, 1),
		colMap:        colMap,
	}
	if err := s.fetchSheetName(ctx); err != nil {
		return nil, fmt.Errorf("resolve sheet name: %w", err)
	}
	return s, nil
}

func (s *SheetService) fetchSheetName(ctx context.Context) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	resp, err := s.srv.Spreadsheets.Get(s.SpreadsheetID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("get spreadsheet: %w", err)
	}

	for _, sh := range resp.Sheets {
		if sh.Properties != nil && fmt.Sprint(sh.Properties.SheetId) == s.SheetID {
			s.SheetName = sh.Properties.Title
			return nil
		}
	}
	return fmt.Errorf("sheet with id %s not found", s.SheetID)
}

// Row возвращает значения ячеек, которые пишет InsertWalk.
func (s *SheetService) Row(walk model.Walk) []interface{} {
	values := make([]interface{}, s.colMap.width())
	for i := range values {
		values[i] = ""
	}
	for field, idx := range s.colMap {
		switch field {
		case ColN:
			values[idx] = walk.ID
		case ColDate:
			values[idx] = walk.WalkDate.Format(JournalDateLayout)
		case ColMinutes:
			values[idx] = walk.DurationMinutes
		case ColDog:
			if walk.Dog != nil {
				values[idx] = walk.Dog.Name
			}
		case ColClient:
			if walk.Dog != nil && walk.Dog.Client != nil {
				values[idx] = walk.Dog.Client.Name
			}
		case ColCreatedBy:
			values[idx] = walk.CreatedBy
		}
	}
	return values
}

func (s *SheetService) InsertWalk(ctx context.Context, row int, walk model.Walk) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	vr := &sheets.ValueRange{
		Values: [][]interface{}{s.Row(walk)},
	}
	rangeStr := fmt.Sprintf("%s!A%d", s.SheetName, row)
	_, err := s.srv.Spreadsheets.Values.Update(s.SpreadsheetID, rangeStr, vr).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("write walk %d to row %d: %w", walk.ID, row, err)
	}
	return nil
}

// FindFirstFreeRow возвращает строку (с 1) после последней непустой
// в первой колонке, но не строку заголовка.
func (s *SheetService) FindFirstFreeRow(ctx context.Context) (int, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return 0, err
	}

	rangeStr := fmt.Sprintf("%s!A:A", s.SheetName)
	resp, err := s.srv.Spreadsheets.Values.Get(s.SpreadsheetID, rangeStr).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("read rows: %w", err)
	}

	last := 0
	for i, row := range resp.Values {
		if len(row) > 0 && strings.TrimSpace(fmt.Sprint(row[0])) != "" {
			last = i + 1
		}
	}
	if last < HeaderRows {
		last = HeaderRows
	}
	return last + 1, nil
}
