package dataset

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"insightgraph/internal/model"
)

type Paths struct {
	Dataset    string
	HotLayer   string
	RawRecords string
}

// LoadFiles reads and parses the three documents concurrently. The load
// fails as a whole if any one of them cannot be read or decoded.
func LoadFiles(ctx context.Context, paths Paths) (*model.Dataset, error) {
	var (
		doc *Document
		hot *HotLayer
		raw []model.RawRecord
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		data, err := readFile(ctx, paths.Dataset)
		if err != nil {
			return err
		}
		doc, err = ParseDataset(data)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", paths.Dataset, err)
		}
		return nil
	})
	g.Go(func() error {
		data, err := readFile(ctx, paths.HotLayer)
		if err != nil {
			return err
		}
		hot, err = ParseHotLayer(data)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", paths.HotLayer, err)
		}
		return nil
	})
	g.Go(func() error {
		data, err := readFile(ctx, paths.RawRecords)
		if err != nil {
			return err
		}
		raw, err = ParseRawRecords(data)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", paths.RawRecords, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("loading dataset: %w", err)
	}

	return Assemble(doc, hot, raw), nil
}

func readFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// FileSource adapts LoadFiles to the store's Source interface.
type FileSource struct {
	Paths Paths
}

func (s FileSource) Load(ctx context.Context) (*model.Dataset, error) {
	return LoadFiles(ctx, s.Paths)
}

// StaticSource serves an already-assembled dataset.
type StaticSource struct {
	Dataset *model.Dataset
}

func (s StaticSource) Load(ctx context.Context) (*model.Dataset, error) {
	if s.Dataset == nil {
		return nil, fmt.Errorf("static dataset is nil")
	}
	return s.Dataset, nil
}
