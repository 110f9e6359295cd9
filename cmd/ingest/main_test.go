package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	cfg := "database:\n" +
		"  driver: sqlite\n" +
		"  path: " + filepath.Join(dir, "carmate.db") + "\n" +
		"  log_level: silent\n" +
		"ingest:\n" +
		"  batch_size: 2\n" +
		"  archive_uploads: false\n" +
		"log:\n" +
		"  level: error\n"
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRunIngestsFile(t *testing.T) {
	configPath := writeConfig(t)

	out, err := execute(t, "company", "add", "--config", configPath, "--name", "카메이트 모터스", "--code", "CM")
	require.NoError(t, err)
	assert.Contains(t, out, "company 1")

	_, err = execute(t, "company", "add", "--config", configPath, "--name", "다른 회사", "--code", "CM")
	assert.ErrorContains(t, err, "already used")

	csvPath := filepath.Join(t.TempDir(), "cars.csv")
	data := "carNumber,manufacturer,model,type,manufacturingYear,mileage,price,accidentCount,explanation,accidentDetails\n" +
		"12가1234,현대,쏘나타,세단,2020,35000,1500,0,,\n" +
		"34나5678,기아,K5,세단,2021,12000,2100,,,\n" +
		"56다9012,기아,K5,세단,2022,5000,2500,0,,\n"
	require.NoError(t, os.WriteFile(csvPath, []byte(data), 0o644))

	out, err = execute(t, "run", "--config", configPath, "--kind", "car", "--company", "1", "--file", csvPath)
	require.NoError(t, err)
	assert.Contains(t, out, "persisted: 3 (2 batches)")
	assert.Contains(t, out, "succeeded")

	// same file again collides with the stored car numbers
	out, err = execute(t, "run", "--config", configPath, "--kind", "car", "--company", "1", "--file", csvPath)
	require.Error(t, err)
	assert.ErrorContains(t, err, "row 1")
	assert.Contains(t, out, "persisted: 0")
}

func TestRunRejectsBadFlags(t *testing.T) {
	configPath := writeConfig(t)

	_, err := execute(t, "run", "--config", configPath, "--kind", "contract", "--company", "1", "--file", "x.csv")
	assert.ErrorContains(t, err, "invalid --kind")

	_, err = execute(t, "run", "--config", configPath, "--kind", "car")
	assert.Error(t, err)

	_, err = execute(t, "run", "--config", configPath, "--kind", "car", "--company", "1", "--file", filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorContains(t, err, "failed to read")
}
