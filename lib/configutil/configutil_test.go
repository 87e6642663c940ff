package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Name   string `json:"name"`
	Port   int    `json:"port"`
	Secret string `json:"secret"`
}

func writeFile(t testing.TB, path, contents string) {
	t.Helper()
	err := os.WriteFile(path, []byte(contents), 0600)
	if err != nil {
		t.Fatal(err)
	}
}

func TestReadConfigMergesLocal(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.json5"), `{
		// comments are allowed
		name: "default",
		port: 8000,
	}`)
	writeFile(t, filepath.Join(dir, "config.local.json5"), `{ port: 9000 }`)

	cfg, err := ReadConfig[testConfig](filepath.Join(dir, "config.json5"))
	require.NoError(t, err)
	require.Equal(t, "default", cfg.Name)
	require.Equal(t, 9000, cfg.Port)
}

func TestReadConfigLocalExplicitZero(t *testing.T) {
	type limits struct {
		Retries *int `json:"retries"`
		Burst   *int `json:"burst"`
	}

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "limits.json5"), `{ retries: 3, burst: 5 }`)
	writeFile(t, filepath.Join(dir, "limits.local.json5"), `{ retries: 0 }`)

	cfg, err := ReadConfig[limits](filepath.Join(dir, "limits.json5"))
	require.NoError(t, err)
	require.Equal(t, 0, *cfg.Retries)
	require.Equal(t, 5, *cfg.Burst)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "config.json5"))
	require.True(t, os.IsNotExist(err))
}

func TestReadConfigExpandsEnv(t *testing.T) {
	t.Setenv("DIYA_TEST_SECRET", "hunter2")

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.json5"), `{ secret: "$ENV{DIYA_TEST_SECRET}" }`)

	cfg, err := ReadConfig[testConfig](filepath.Join(dir, "config.json5"))
	require.NoError(t, err)
	require.Equal(t, "hunter2", cfg.Secret)
}

func TestExpandEnvUnset(t *testing.T) {
	require.Equal(t, `"x"`, string(ExpandEnv([]byte(`"$ENV{DIYA_DEFINITELY_UNSET}x"`))))
}

func TestReadRecursively(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0777))
	writeFile(t, filepath.Join(root, "telemetry.json5"), `{ name: "root" }`)

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(nested))
	t.Cleanup(func() { os.Chdir(wd) })

	cfg, err := ReadRecursively[testConfig]("telemetry.json5")
	require.NoError(t, err)
	require.Equal(t, "root", cfg.Name)
}
