package history

import (
	"context"
	"encoding/json"

	"dice-service/internal/model"
	"dice-service/internal/service/dice"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Service stores finished dice sessions.
type Service struct {
	db *gorm.DB
}

type ListResult struct {
	Items []model.DiceMatch `json:"items"`
	Total int64             `json:"total"`
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Record persists the terminal report of a session.
func (s *Service) Record(ctx context.Context, report dice.Report) error {
	raw, err := json.Marshal(report)
	if err != nil {
		return err
	}
	row := model.DiceMatch{
		RoomID:     report.RoomID,
		Tag:        report.Tag,
		HostID:     report.HostID,
		Bet:        report.Bet,
		Capacity:   report.Capacity,
		Outcome:    string(report.Outcome),
		Pot:        report.Pot,
		Remainder:  report.Remainder,
		Forfeited:  report.Forfeited,
		ResultJSON: datatypes.JSON(raw),
		EndedAt:    report.ResolvedAt,
	}
	return s.db.WithContext(ctx).Create(&row).Error
}

// List returns the sessions of roomID, newest first.
func (s *Service) List(ctx context.Context, roomID int64, page, size int) (*ListResult, error) {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = 20
	}
	if size > 100 {
		size = 100
	}

	var total int64
	if err := s.db.WithContext(ctx).
		Model(&model.DiceMatch{}).
		Where("room_id = ?", roomID).
		Count(&total).Error; err != nil {
		return nil, err
	}

	matches := []model.DiceMatch{}
	if total > 0 {
		offset := (page - 1) * size
		if err := s.db.WithContext(ctx).
			Model(&model.DiceMatch{}).
			Where("room_id = ?", roomID).
			Order("id DESC").
			Limit(size).
			Offset(offset).
			Find(&matches).Error; err != nil {
			return nil, err
		}
	}

	return &ListResult{
		Items: matches,
		Total: total,
	}, nil
}

// Report decodes the stored report of a match row.
func Report(row model.DiceMatch) (*dice.Report, error) {
	var report dice.Report
	if err := json.Unmarshal(row.ResultJSON, &report); err != nil {
		return nil, err
	}
	return &report, nil
}
