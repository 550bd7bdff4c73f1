package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/falk/sl2-go/internal/testsave"
	"github.com/falk/sl2-go/pkg/items"
	"github.com/falk/sl2-go/pkg/keys"
	"github.com/falk/sl2-go/pkg/snapshot"
)

func writeSave(t *testing.T, dir string) string {
	t.Helper()

	es := make([]testsave.Entry, 11)
	for i := range es {
		es[i] = testsave.Entry{Name: fmt.Sprintf("USER_DATA%03d", i), Content: []byte{0}}
	}
	es[1].Content = testsave.DSRSlot{
		Name:  "Solaire",
		Level: 25,
		Class: 1,
		Items: []testsave.Item{{Type: items.TypeWeapon, ID: 200002, Amount: 1}},
	}.Bytes()

	path := filepath.Join(dir, "DRAKS0005.sl2")
	data := testsave.Build(es, testsave.Options{Key: keys.Default().Get(keys.DSR), UTF16: true})
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	savePath := writeSave(t, dir)

	catalogPath := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(catalogPath, []byte(`
dsr:
  - {type: 0, id: 200000, name: Dagger, category: weapons_shields}
`), 0o600))
	exportPath := filepath.Join(dir, "out.snap")

	t.Setenv("SL2_CONFIG", "")
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{
		"--catalog", catalogPath,
		"--items",
		"--log-level", "warn",
		"-o", exportPath,
		savePath,
	}, &stdout, &stderr)
	require.NoError(t, err, stderr.String())

	out := stdout.String()
	assert.Contains(t, out, "Title: DSR (11 entries)")
	assert.Contains(t, out, "Slot 1: Solaire  level 25")
	assert.Contains(t, out, "class Knight")
	assert.Contains(t, out, "Dagger +2")

	data, err := os.ReadFile(exportPath)
	require.NoError(t, err)
	sum, err := snapshot.Unmarshal(data)
	require.NoError(t, err)
	require.Len(t, sum.Characters, 1)
	assert.Equal(t, "Solaire", sum.Characters[0].Name)
}

func TestRunUsage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), nil, &stdout, &stderr)
	assert.ErrorIs(t, err, errUsage)
}

func TestRunBadConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "sl2.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("log: {level: loud}\n"), 0o600))

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"-c", cfgPath, writeSave(t, dir)}, &stdout, &stderr)
	assert.ErrorContains(t, err, "log.level")
}
