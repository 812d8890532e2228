package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/manifold/internal/app"
	"github.com/specialistvlad/manifold/internal/config"
	"github.com/specialistvlad/manifold/internal/hcl"
	"github.com/specialistvlad/manifold/internal/yamlconf"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Dir       string
	Output    string
	LogOutput string
	Err       error
	App       *app.App
}

// ReportedDependency mirrors one dependency of the JSON report.
type ReportedDependency struct {
	Kind    string `json:"kind"`
	ID      string `json:"id"`
	Version string `json:"version"`
	Reason  string `json:"reason"`
}

// ReportedUnit mirrors one unit of the JSON report.
type ReportedUnit struct {
	Unit         string               `json:"unit"`
	Description  string               `json:"description"`
	Plugins      []string             `json:"plugins"`
	Dependencies []ReportedDependency `json:"dependencies"`
	Collapsed    []struct {
		Key            string `json:"key"`
		FirstIndex     int    `json:"firstIndex"`
		DuplicateIndex int    `json:"duplicateIndex"`
		ReasonAdopted  bool   `json:"reasonAdopted"`
	} `json:"collapsed"`
}

// WriteFiles writes files (relative path to content) under a fresh temporary
// directory and returns it.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		filePath := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}
	return dir
}

// RunIntegrationTest provides a standardized harness for running integration tests
// using a default background context.
func RunIntegrationTest(t *testing.T, files map[string]string, mutate func(*app.Config)) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithContext(context.Background(), t, files, mutate)
}

// RunIntegrationTestWithContext loads files through both declaration loaders
// and runs the app with a JSON report. mutate may adjust the configuration
// before it is validated.
func RunIntegrationTestWithContext(ctx context.Context, t *testing.T, files map[string]string, mutate func(*app.Config)) *HarnessResult {
	t.Helper()

	dir := WriteFiles(t, files)

	raw := app.Config{
		UnitPaths:   []string{dir},
		Format:      "json",
		LogLevel:    "debug",
		LogFormat:   "text",
		WorkerCount: 4,
	}
	if mutate != nil {
		mutate(&raw)
	}
	appConfig, err := app.NewConfig(raw)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	logBuffer := &SafeBuffer{}
	loader := config.NewDispatcher(hcl.NewLoader(), yamlconf.NewLoader())

	result := &HarnessResult{Dir: dir}
	result.App, result.Err = app.NewApp(ctx, out, logBuffer, appConfig, loader, nil)
	if result.Err == nil {
		result.Err = result.App.Run(ctx)
	}

	if os.Getenv("MANIFOLD_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	result.Output = out.String()
	result.LogOutput = logBuffer.String()
	return result
}

// Units decodes the JSON report of a harness run.
func (r *HarnessResult) Units(t *testing.T) []ReportedUnit {
	t.Helper()

	var units []ReportedUnit
	require.NoError(t, json.Unmarshal([]byte(r.Output), &units), "report is not valid JSON:\n%s", r.Output)
	return units
}
