package catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"exam-quiz-skill/config"
	"exam-quiz-skill/internal/quiz"
	"exam-quiz-skill/pkg/logger"

	"github.com/xuri/excelize/v2"
)

// XLSXSource reads a workbook with one sheet per topic. Row 1 is a header;
// columns are question, options, correct labels, explanation, image name.
type XLSXSource struct {
	Path string
	Rows RowParser
}

func (s XLSXSource) Load(ctx context.Context) ([]quiz.Topic, error) {
	if _, err := os.Stat(s.Path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceMissing, s.Path)
		}
		return nil, err
	}

	f, err := excelize.OpenFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", s.Path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	topics := make([]quiz.Topic, 0, len(sheets))
	for _, sheet := range sheets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
		}

		topic := quiz.Topic{Name: sheet}
		for i, cells := range rows {
			if i == 0 {
				continue
			}
			if q, ok := s.Rows.Parse(cells); ok {
				topic.Questions = append(topic.Questions, q)
			}
		}
		logger.WithModule(config.ModuleCatalog).Debugf("sheet %q: %d questions", sheet, len(topic.Questions))
		topics = append(topics, topic)
	}
	return topics, nil
}
