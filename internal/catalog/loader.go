package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"exam-quiz-skill/config"
	"exam-quiz-skill/internal/database"
	"exam-quiz-skill/internal/quiz"
	"exam-quiz-skill/pkg/apperror/status"
	"exam-quiz-skill/pkg/logger"
	s3client "exam-quiz-skill/pkg/s3"
)

// ErrSourceMissing means the configured question source does not exist.
var ErrSourceMissing = errors.New("catalog: source not found")

// Source produces topics in display order.
type Source interface {
	Load(ctx context.Context) ([]quiz.Topic, error)
}

// Load reads src into a catalog.
func Load(ctx context.Context, src Source, opts ...quiz.Option) (*quiz.Catalog, error) {
	topics, err := src.Load(ctx)
	if err != nil {
		code := status.CatalogReadFailed
		if errors.Is(err, ErrSourceMissing) {
			code = status.CatalogSourceMissing
		}
		return nil, status.New(code, err)
	}
	if len(topics) == 0 {
		return nil, status.New(status.CatalogEmpty, errors.New("catalog: source has no topics"))
	}

	c := quiz.NewCatalog(topics, opts...)
	logger.WithFields(map[string]interface{}{
		"module":    config.ModuleCatalog,
		"topics":    len(c.Topics()),
		"questions": c.Size(),
	}).Info("catalog loaded")
	for _, t := range topics {
		if len(t.Questions) == 0 {
			logger.Warn("%v: topic %q has no questions", config.ModuleCatalog, t.Name)
		}
	}
	return c, nil
}

// SourceFromConfig builds the source selected by config.Cfg.Catalog. For the
// xlsx source with an s3_key the workbook is downloaded first.
func SourceFromConfig(ctx context.Context) (Source, error) {
	rows := RowParser{
		Labels: DefaultLabels,
		Images: DefaultImages.Merge(config.Cfg.Images),
	}

	switch config.Cfg.Catalog.Source {
	case config.SourceMySQL:
		db, err := database.GetDB(ctx)
		if err != nil {
			return nil, fmt.Errorf("%v: %w", config.ModuleDatabase, err)
		}
		return SQLSource{DB: db, Rows: rows}, nil

	case config.SourceXLSX, "":
		path := config.Cfg.Catalog.Path
		if key := strings.TrimSpace(config.Cfg.Catalog.S3Key); key != "" {
			cli, err := s3client.GetClient(ctx)
			if err != nil {
				return nil, fmt.Errorf("%v: client: %w", config.ModuleS3, err)
			}
			if err := s3client.Download(ctx, cli, config.Cfg.S3.Bucket, key, path); err != nil {
				return nil, fmt.Errorf("%v: %w", config.ModuleS3, err)
			}
			logger.Info("%v: fetched s3://%s/%s to %s", config.ModuleCatalog, config.Cfg.S3.Bucket, key, path)
		}
		return XLSXSource{Path: path, Rows: rows}, nil

	default:
		return nil, fmt.Errorf("%v: unknown source %q", config.ModuleCatalog, config.Cfg.Catalog.Source)
	}
}

// Open loads the catalog described by config.Cfg.
func Open(ctx context.Context) (*quiz.Catalog, error) {
	src, err := SourceFromConfig(ctx)
	if err != nil {
		return nil, err
	}
	return Load(ctx, src)
}
