package app

import (
	"context"
	"fixturecheck/internal/core/config"
	"fixturecheck/internal/core/errors"
	"fixturecheck/internal/core/ports"
	"fixturecheck/internal/data/history"
	"fixturecheck/internal/engine/checker"
	"fixturecheck/internal/shared/observability"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSource = `import pytest


@pytest.fixture()
def sample_string() -> str:
    return 'hello'


@pytest.fixture()
def sample_missing_return_type():
    return 1


def test_hello(sample_string: int):
    pass
`

const cleanSource = `import pytest


@pytest.fixture()
def db() -> int:
    return 1


def test_db(db: int):
    pass
`

const cyclicSource = `import pytest


@pytest.fixture()
def a(b: int) -> int:
    return b


@pytest.fixture()
def b(a: int) -> int:
    return a


def test_a(a: int):
    pass
`

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestApp(t *testing.T, opts ...Option) *App {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Workers = 2
	a, err := New(cfg, opts...)
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a
}

type fakeHistory struct {
	mu        sync.Mutex
	project   string
	snapshots []history.Snapshot
	err       error
}

func (f *fakeHistory) SaveSnapshot(projectKey string, snapshot history.Snapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.project = projectKey
	f.snapshots = append(f.snapshots, snapshot)
	return nil
}

func (f *fakeHistory) LoadSnapshots(string, time.Time, int) ([]history.Snapshot, error) {
	return f.snapshots, nil
}

type countingProgress struct {
	mu       sync.Mutex
	total    int
	checked  []string
	complete int
}

func (p *countingProgress) OnStart(total int) { p.total = total }

func (p *countingProgress) OnFileChecked(path string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.checked = append(p.checked, path)
}

func (p *countingProgress) OnComplete() { p.complete++ }

func TestNew_RequiresConfig(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeValidationError))
}

func TestDiscover_ExplicitFilesAndDirectories(t *testing.T) {
	dir := t.TempDir()
	explicit := writeFile(t, filepath.Join(dir, "notes.txt"), "not python")
	writeFile(t, filepath.Join(dir, "pkg", "test_a.py"), cleanSource)

	a := newTestApp(t)
	files, warnings, err := a.Discover(context.Background(), ports.CheckRequest{
		Paths: []string{explicit, filepath.Join(dir, "pkg")},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{explicit}, files)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "skipping directory")
}

func TestDiscover_RecursiveAppliesGlobs(t *testing.T) {
	dir := t.TempDir()
	keep := writeFile(t, filepath.Join(dir, "tests", "test_a.py"), cleanSource)
	keepNested := writeFile(t, filepath.Join(dir, "tests", "unit", "test_b.py"), cleanSource)
	writeFile(t, filepath.Join(dir, "tests", "README.md"), "# docs")
	writeFile(t, filepath.Join(dir, ".venv", "lib", "test_vendored.py"), cleanSource)
	writeFile(t, filepath.Join(dir, "tests", "generated_pb2.py"), cleanSource)

	a := newTestApp(t)
	a.Config.Discovery.ExcludeFiles = []string{"*_pb2.py"}
	files, warnings, err := a.Discover(context.Background(), ports.CheckRequest{
		Paths:     []string{dir, keep},
		Recursive: true,
	})
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, []string{keep, keepNested}, files)
}

func TestDiscover_RelativePathPatterns(t *testing.T) {
	dir := t.TempDir()
	keep := writeFile(t, filepath.Join(dir, "tests", "test_a.py"), cleanSource)
	writeFile(t, filepath.Join(dir, "tests", "generated", "test_gen.py"), cleanSource)
	writeFile(t, filepath.Join(dir, "tests", "legacy", "test_old.py"), cleanSource)
	keepDeep := writeFile(t, filepath.Join(dir, "tests", "generated", "deep", "test_deep.py"), cleanSource)

	a := newTestApp(t)
	a.Config.Discovery.ExcludeFiles = []string{"tests/generated/*.py"}
	a.Config.Discovery.ExcludeDirs = []string{"tests/legacy"}
	files, _, err := a.Discover(context.Background(), ports.CheckRequest{Paths: []string{dir}, Recursive: true})
	require.NoError(t, err)
	assert.Equal(t, []string{keep, keepDeep}, files)
}

func TestDiscover_MissingPath(t *testing.T) {
	a := newTestApp(t)
	_, _, err := a.Discover(context.Background(), ports.CheckRequest{
		Paths: []string{filepath.Join(t.TempDir(), "missing.py")},
	})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeNotFound))
}

func TestDiscover_InvalidGlob(t *testing.T) {
	a := newTestApp(t)
	a.Config.Discovery.Include = []string{"[broken"}
	_, _, err := a.Discover(context.Background(), ports.CheckRequest{Paths: []string{t.TempDir()}})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeValidationError))
}

func TestCheck_ReportsSortedDiagnostics(t *testing.T) {
	dir := t.TempDir()
	sample := writeFile(t, filepath.Join(dir, "test_sample.py"), sampleSource)
	clean := writeFile(t, filepath.Join(dir, "test_clean.py"), cleanSource)

	store := &fakeHistory{}
	progress := &countingProgress{}
	a := newTestApp(t, WithHistory(store), WithProgress(progress))
	a.Config.History.Project = "proj"

	result, err := a.Check(context.Background(), ports.CheckRequest{Paths: []string{dir}, Recursive: true})
	require.NoError(t, err)
	assert.False(t, result.Clean())
	assert.NotEmpty(t, result.RunID)

	require.Len(t, result.Files, 2)
	assert.Equal(t, clean, result.Files[0].Path)
	assert.Empty(t, result.Files[0].Diagnostics)
	assert.Equal(t, sample, result.Files[1].Path)

	assert.Equal(t, []checker.Diagnostic{
		{Kind: checker.KindFixtureMissingReturnType, File: sample, FixtureName: "sample_missing_return_type", Line: 10},
		{Kind: checker.KindIncorrectArgumentType, File: sample, FunctionName: "test_hello", ArgumentName: "sample_string", ExpectedType: "str", ProvidedType: "int", Line: 14},
	}, result.Diagnostics)

	assert.Equal(t, 2, progress.total)
	assert.ElementsMatch(t, []string{clean, sample}, progress.checked)
	assert.Equal(t, 1, progress.complete)

	require.Len(t, store.snapshots, 1)
	assert.Equal(t, "proj", store.project)
	snap := store.snapshots[0]
	assert.Equal(t, result.RunID, snap.RunID)
	assert.Equal(t, 2, snap.FileCount)
	assert.Equal(t, 2, snap.DiagnosticCount)
	assert.Equal(t, 1, snap.MissingReturn)
	assert.Equal(t, 1, snap.IncorrectArgument)
}

func TestCheck_CleanRun(t *testing.T) {
	path := writeFile(t, filepath.Join(t.TempDir(), "test_clean.py"), cleanSource)
	a := newTestApp(t)

	result, err := a.Check(context.Background(), ports.CheckRequest{Paths: []string{path}})
	require.NoError(t, err)
	assert.True(t, result.Clean())
	require.Len(t, result.Files, 1)
}

func TestCheck_UnparsableFile(t *testing.T) {
	path := writeFile(t, filepath.Join(t.TempDir(), "test_broken.py"), "def test_x(:\n    pass\n")
	a := newTestApp(t)

	result, err := a.Check(context.Background(), ports.CheckRequest{Paths: []string{path}})
	require.NoError(t, err)
	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, checker.KindUnparsableFile, result.Diagnostics[0].Kind)
	assert.Equal(t, path, result.Diagnostics[0].File)
}

func TestCheck_HistoryFailureIsNotFatal(t *testing.T) {
	path := writeFile(t, filepath.Join(t.TempDir(), "test_clean.py"), cleanSource)
	a := newTestApp(t, WithHistory(&fakeHistory{err: assert.AnError}))

	_, err := a.Check(context.Background(), ports.CheckRequest{Paths: []string{path}})
	require.NoError(t, err)
}

func TestCheckFiles_UsesCacheForUnchangedContent(t *testing.T) {
	path := writeFile(t, filepath.Join(t.TempDir(), "test_sample.py"), sampleSource)
	a := newTestApp(t)

	first, err := a.CheckFiles(context.Background(), []string{path})
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.False(t, first[0].Cached)

	second, err := a.CheckFiles(context.Background(), []string{path})
	require.NoError(t, err)
	assert.True(t, second[0].Cached)
	assert.Equal(t, first[0].Diagnostics, second[0].Diagnostics)

	writeFile(t, path, cleanSource)
	third, err := a.CheckFiles(context.Background(), []string{path})
	require.NoError(t, err)
	assert.False(t, third[0].Cached)
	assert.Empty(t, third[0].Diagnostics)
}

func gaugeValue(t *testing.T, g interface{ Write(*dto.Metric) error }) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, g.Write(&m))
	return m.GetGauge().GetValue()
}

func TestCheck_ExportsCacheSize(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "test_a.py"), cleanSource)
	writeFile(t, filepath.Join(dir, "test_b.py"), sampleSource)
	a := newTestApp(t)

	_, err := a.Check(context.Background(), ports.CheckRequest{Paths: []string{dir}, Recursive: true})
	require.NoError(t, err)
	assert.Equal(t, 2, a.cache.Len())
	assert.Equal(t, float64(2), gaugeValue(t, observability.CacheEntries))

	var disabled *reportCache
	assert.Zero(t, disabled.Len())
}

func TestCheckFiles_DisabledCache(t *testing.T) {
	path := writeFile(t, filepath.Join(t.TempDir(), "test_clean.py"), cleanSource)
	cfg := config.DefaultConfig()
	cfg.Cache.Entries = 0
	a, err := New(cfg)
	require.NoError(t, err)
	defer a.Close()

	_, err = a.CheckFiles(context.Background(), []string{path})
	require.NoError(t, err)
	again, err := a.CheckFiles(context.Background(), []string{path})
	require.NoError(t, err)
	assert.False(t, again[0].Cached)
}

func TestCheckFiles_PreservesInputOrder(t *testing.T) {
	dir := t.TempDir()
	var files []string
	for _, name := range []string{"z.py", "b.py", "m.py", "a.py", "q.py"} {
		files = append(files, writeFile(t, filepath.Join(dir, name), cleanSource))
	}
	a := newTestApp(t)

	reports, err := a.CheckFiles(context.Background(), files)
	require.NoError(t, err)
	require.Len(t, reports, len(files))
	for i, r := range reports {
		assert.Equal(t, files[i], r.Path)
	}
}

func TestCheckFiles_ReadErrorAborts(t *testing.T) {
	a := newTestApp(t)
	_, err := a.CheckFiles(context.Background(), []string{filepath.Join(t.TempDir(), "gone.py")})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeIO))
}

func TestCheckFiles_CanceledContext(t *testing.T) {
	path := writeFile(t, filepath.Join(t.TempDir(), "test_clean.py"), cleanSource)
	a := newTestApp(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := a.CheckFiles(ctx, []string{path})
	require.Error(t, err)
}

func TestCheckFiles_Empty(t *testing.T) {
	a := newTestApp(t)
	reports, err := a.CheckFiles(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, reports)
}

func TestBuildGraphs_DetectsCycles(t *testing.T) {
	dir := t.TempDir()
	cyclic := writeFile(t, filepath.Join(dir, "test_cycle.py"), cyclicSource)
	writeFile(t, filepath.Join(dir, "test_broken.py"), "def (:\n")

	a := newTestApp(t)
	graphs, err := a.BuildGraphs(context.Background(), ports.CheckRequest{Paths: []string{dir}, Recursive: true})
	require.NoError(t, err)
	require.Len(t, graphs, 1)
	assert.Equal(t, cyclic, graphs[0].Path)
	require.Len(t, graphs[0].Cycles, 1)
	assert.ElementsMatch(t, []string{"a", "b"}, graphs[0].Cycles[0])
}

func TestSnapshotFromResult(t *testing.T) {
	result := ports.CheckResult{
		RunID:    "run",
		Files:    []ports.FileReport{{Path: "a.py"}, {Path: "b.py"}},
		Duration: 1500 * time.Millisecond,
		Diagnostics: []checker.Diagnostic{
			{Kind: checker.KindUnparsableFile},
			{Kind: checker.KindMissingArgumentType},
			{Kind: checker.KindMissingArgumentType},
			{Kind: checker.KindFixtureDoesNotExist},
		},
	}
	snap := SnapshotFromResult(result)
	assert.Equal(t, "run", snap.RunID)
	assert.Equal(t, int64(1500), snap.DurationMS)
	assert.Equal(t, 2, snap.FileCount)
	assert.Equal(t, 4, snap.DiagnosticCount)
	assert.Equal(t, 1, snap.UnparsableCount)
	assert.Equal(t, 2, snap.MissingArgument)
	assert.Equal(t, 1, snap.UnknownFixture)
	assert.Equal(t, history.SchemaVersion, snap.SchemaVersion)
}
