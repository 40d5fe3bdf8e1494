package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleUDF = `SampleIdent,Quartz ,/
DataAngleRange,   10.0000, 12.0000,/
ScanStepSize,    0.500,/
RawScan
    100,    250,    900,    240
    110/
`

func runRoot(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	root := NewRootCommand()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	code := run(root, args)
	return code, out.String(), errOut.String()
}

func TestNewRootCommand_Subcommands(t *testing.T) {
	root := NewRootCommand()

	for _, name := range []string{"inspect", "detect", "validate", "formats", "version"} {
		assert.True(t, isBuiltinCommand(root, name), "missing subcommand %s", name)
	}
	assert.True(t, isBuiltinCommand(root, "help"))
	assert.False(t, isBuiltinCommand(root, "export"))
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
}

func TestPluginCandidate(t *testing.T) {
	root := NewRootCommand()

	tests := []struct {
		args     []string
		wantName string
		want     bool
	}{
		{nil, "", false},
		{[]string{"--help"}, "", false},
		{[]string{"inspect", "a.udf"}, "inspect", false},
		{[]string{"export", "a.udf"}, "export", true},
	}
	for _, tt := range tests {
		name, ok := pluginCandidate(root, tt.args)
		assert.Equal(t, tt.wantName, name, "args %v", tt.args)
		assert.Equal(t, tt.want, ok, "args %v", tt.args)
	}
}

func TestRun_InspectWithConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "quartz.udf"), []byte(sampleUDF), 0644))

	configPath := filepath.Join(dir, "xrdscan.yaml")
	cfg := "sources:\n  - " + filepath.Join(dir, "*.udf") + "\noutput: json\n"
	require.NoError(t, os.WriteFile(configPath, []byte(cfg), 0644))

	code, out, _ := runRoot(t, "inspect", "--config", configPath)

	assert.Equal(t, 0, code)
	assert.Contains(t, out, `"FilesDecoded": 1`)
	assert.Contains(t, out, `"ConfigFile": "`+configPath+`"`)
}

func TestRun_InvalidConfigExitsTwo(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("output: xml\n"), 0644))

	code, _, errOut := runRoot(t, "validate", "--config", configPath, "x.udf")

	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "Error: loading config")
}

func TestRun_FailedFileExitsOne(t *testing.T) {
	code, out, _ := runRoot(t, "validate", filepath.Join(t.TempDir(), "missing.udf"))

	assert.Equal(t, 1, code)
	assert.Contains(t, out, "INVALID")
}

func TestRun_UnknownCommandShowsPluginHint(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	code, _, errOut := runRoot(t, "export", "a.udf")

	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, `unknown command "export" for "xrdscan"`)
	assert.Contains(t, errOut, "xrdscan-export")
}

func TestRun_ExecutesPlugin(t *testing.T) {
	binDir := t.TempDir()
	t.Setenv("PATH", binDir)
	t.Setenv("HOME", t.TempDir())

	plugin := filepath.Join(binDir, "xrdscan-hello")
	require.NoError(t, os.WriteFile(plugin, []byte("#!/bin/sh\nexit 4\n"), 0755))

	code, _, _ := runRoot(t, "hello")
	assert.Equal(t, 4, code)
}

func TestRun_Version(t *testing.T) {
	code, out, _ := runRoot(t, "version")

	assert.Equal(t, 0, code)
	assert.True(t, strings.HasPrefix(out, "xrdscan "), out)
}
