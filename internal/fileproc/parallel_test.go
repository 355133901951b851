package fileproc

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/prismlab/prism/pkg/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapFilesEmpty(t *testing.T) {
	results, errs := MapFiles(context.Background(), nil, func(p *parser.Parser, path string) (int, error) {
		return 0, nil
	})
	assert.Nil(t, results)
	assert.Nil(t, errs)
}

func TestMapFilesWithProgress(t *testing.T) {
	files := []string{"a.tsx", "b.tsx", "c.tsx", "d.tsx"}
	var progressed atomic.Int64

	results, errs := MapFilesWithProgress(context.Background(), files,
		func(psr *parser.Parser, path string) (string, error) {
			src := fmt.Sprintf("const X = () => <div>%s</div>;", path)
			result, err := psr.Parse([]byte(src), parser.LangTSX, path)
			if err != nil {
				return "", err
			}
			return result.Path, nil
		},
		func() { progressed.Add(1) })

	require.Nil(t, errs)
	assert.Len(t, results, len(files))
	assert.Equal(t, int64(len(files)), progressed.Load())
}

func TestMapFilesCollectsPerFileErrors(t *testing.T) {
	files := []string{"ok1.tsx", "bad.tsx", "ok2.tsx"}
	failure := errors.New("unreadable")

	results, errs := MapFiles(context.Background(), files, func(psr *parser.Parser, path string) (string, error) {
		if strings.HasPrefix(path, "bad") {
			return "", failure
		}
		return path, nil
	})

	require.NotNil(t, errs)
	assert.True(t, errs.HasErrors())
	require.Len(t, errs.Errors, 1)
	assert.Equal(t, "bad.tsx", errs.Errors[0].Path)
	assert.ErrorIs(t, errs.Errors[0].Err, failure)
	// The failing file must not stop the others.
	assert.Len(t, results, 2)
}

func TestMapFilesCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, errs := MapFiles(ctx, []string{"a.tsx", "b.tsx"}, func(psr *parser.Parser, path string) (string, error) {
		return path, nil
	})

	require.NotNil(t, errs)
	assert.True(t, errs.HasErrors())
	assert.Empty(t, results)
}

func TestMapFilesReusesWorkerParsers(t *testing.T) {
	files := make([]string, 64)
	for i := range files {
		files[i] = fmt.Sprintf("file%d.tsx", i)
	}

	var seen sync.Map
	results, errs := MapFiles(context.Background(), files, func(psr *parser.Parser, path string) (string, error) {
		seen.Store(psr, true)
		return path, nil
	})
	require.Nil(t, errs)
	assert.Len(t, results, len(files))

	distinct := 0
	seen.Range(func(_, _ any) bool {
		distinct++
		return true
	})
	assert.LessOrEqual(t, distinct, runtime.NumCPU()*DefaultWorkerMultiplier)
}

func TestProcessingErrorsError(t *testing.T) {
	errs := &ProcessingErrors{}
	assert.False(t, errs.HasErrors())

	errs.Add("x.tsx", errors.New("boom"))
	assert.Equal(t, "x.tsx: boom", errs.Error())

	errs.Add("y.tsx", errors.New("bang"))
	assert.Contains(t, errs.Error(), "2 files failed")
}
