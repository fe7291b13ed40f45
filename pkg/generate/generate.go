package generate

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/leizor/go-onebot-model-generator/pkg/config"
	"github.com/leizor/go-onebot-model-generator/pkg/model"
	"github.com/leizor/go-onebot-model-generator/pkg/parse"
)

const (
	APIFileName     = "api.go"
	EventFileName   = "event.go"
	MessageFileName = "message.go"
)

// Run parses the configured documents and writes the generated Go files to the output
// directory. message.go is always written since MESSAGE fields depend on it.
func Run(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	schema, err := LoadSchema(ctx, cfg, logger)
	if err != nil {
		return err
	}

	err = os.MkdirAll(cfg.OutputDir, os.ModePerm)
	if err != nil {
		return fmt.Errorf("problem creating output directory '%s': %w", cfg.OutputDir, err)
	}

	pkg := NewPackage(cfg.Package)
	type output struct {
		filename string
		render   func() ([]byte, error)
	}
	var outputs []output
	if len(schema.APIs) > 0 {
		outputs = append(outputs, output{APIFileName, func() ([]byte, error) {
			return pkg.RenderAPIs(schema.APIs)
		}})
	}
	if len(schema.Events) > 0 {
		outputs = append(outputs, output{EventFileName, func() ([]byte, error) {
			return pkg.RenderEvents(schema.Events, cfg.EventName)
		}})
	}
	outputs = append(outputs, output{MessageFileName, func() ([]byte, error) {
		return pkg.RenderMessageSegments(schema.Segments)
	}})

	for _, o := range outputs {
		src, err := o.render()
		if err != nil {
			return fmt.Errorf("problem generating file '%s': %w", o.filename, err)
		}
		fullPath := filepath.Join(cfg.OutputDir, o.filename)
		err = writeFile(fullPath, src)
		if err != nil {
			return fmt.Errorf("problem writing file '%s': %w", o.filename, err)
		}
		logger.Info().Str("file", fullPath).Msg("generated")
	}

	return nil
}

// LoadSchema parses every configured document, at most cfg.MaxWorkers at a time. A missing
// input directory is an error; missing documents are logged and skipped. Events keep the order of cfg.EventFiles.
func LoadSchema(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*model.Schema, error) {
	if _, err := os.Stat(cfg.InputDir); err != nil {
		return nil, fmt.Errorf("problem reading input directory '%s': %w", cfg.InputDir, err)
	}

	parser := parse.NewParser(logger)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.MaxWorkers, 1))

	schema := &model.Schema{
		APIs:     []model.APIDefinition{},
		Events:   []model.EventModel{},
		Segments: []model.MessageSegment{},
	}

	if path := cfg.APIPath(); path != "" {
		g.Go(func() error {
			apis, err := parseDocument(ctx, logger, path, parser.ParseAPIFile)
			if err != nil {
				return err
			}
			if apis != nil {
				schema.APIs = apis
			}
			return nil
		})
	}

	eventPaths := cfg.EventPaths()
	eventsByFile := make([][]model.EventModel, len(eventPaths))
	for i, path := range eventPaths {
		g.Go(func() error {
			events, err := parseDocument(ctx, logger, path, parser.ParseEventFile)
			if err != nil {
				return err
			}
			eventsByFile[i] = events
			return nil
		})
	}

	if path := cfg.SegmentPath(); path != "" {
		g.Go(func() error {
			segments, err := parseDocument(ctx, logger, path, parser.ParseMessageSegmentFile)
			if err != nil {
				return err
			}
			if segments != nil {
				schema.Segments = segments
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, events := range eventsByFile {
		schema.Events = append(schema.Events, events...)
	}
	logger.Debug().
		Int("apis", len(schema.APIs)).
		Int("events", len(schema.Events)).
		Int("segments", len(schema.Segments)).
		Msg("loaded schema")
	return schema, nil
}

func parseDocument[T any](ctx context.Context, logger zerolog.Logger, path string, parseFile func(string) ([]T, error)) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defs, err := parseFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Warn().Str("path", path).Msg("document not found, skipping")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("path", path).Int("count", len(defs)).Msg("parsed document")
	return defs, nil
}

func writeFile(fullPath string, src []byte) error {
	f, err := os.Create(fullPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	_, err = f.Write(src)
	return err
}
