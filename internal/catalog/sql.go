package catalog

import (
	"context"
	"fmt"

	"exam-quiz-skill/internal/quiz"

	"gorm.io/gorm"
)

// TopicRecord is a row of the topics table.
type TopicRecord struct {
	ID        uint             `gorm:"primaryKey"`
	Name      string           `gorm:"size:255;uniqueIndex;not null"`
	Position  int              `gorm:"not null;default:0"`
	Questions []QuestionRecord `gorm:"foreignKey:TopicID"`
}

func (TopicRecord) TableName() string { return "topics" }

// QuestionRecord is a row of the questions table. Its text columns carry the
// same free-form content as the spreadsheet cells.
type QuestionRecord struct {
	ID          uint   `gorm:"primaryKey"`
	TopicID     uint   `gorm:"index;not null"`
	Position    int    `gorm:"not null;default:0"`
	Text        string `gorm:"type:text;not null"`
	Options     string `gorm:"type:text"`
	Correct     string `gorm:"size:255"`
	Explanation string `gorm:"type:text"`
	Image       string `gorm:"size:255"`
}

func (QuestionRecord) TableName() string { return "questions" }

// SQLSource loads topics and questions from a database, ordered by their
// position columns.
type SQLSource struct {
	DB   *gorm.DB
	Rows RowParser
}

func (s SQLSource) Load(ctx context.Context) ([]quiz.Topic, error) {
	var records []TopicRecord
	err := s.DB.WithContext(ctx).
		Preload("Questions", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("position, id")
		}).
		Order("position, id").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("query topics: %w", err)
	}
	return topicsFromRecords(records, s.Rows), nil
}

// Migrate creates the catalog tables when missing.
func (s SQLSource) Migrate(ctx context.Context) error {
	return s.DB.WithContext(ctx).AutoMigrate(&TopicRecord{}, &QuestionRecord{})
}

func topicsFromRecords(records []TopicRecord, rows RowParser) []quiz.Topic {
	topics := make([]quiz.Topic, 0, len(records))
	for _, r := range records {
		t := quiz.Topic{Name: r.Name}
		for _, qr := range r.Questions {
			q, ok := rows.Parse([]string{qr.Text, qr.Options, qr.Correct, qr.Explanation, qr.Image})
			if ok {
				t.Questions = append(t.Questions, q)
			}
		}
		topics = append(topics, t)
	}
	return topics
}
