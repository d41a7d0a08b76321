// pkg/argus_io/yaml_test.go

package argus_io

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleProfile struct {
	Channel       string `yaml:"channel"`
	ConfigureUFW  bool   `yaml:"configure_ufw"`
	RemediateOnce bool   `yaml:"remediate_once"`
}

func TestWriteAndReadYAML(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "profile.yaml")

	in := sampleProfile{Channel: "edge", ConfigureUFW: true, RemediateOnce: true}
	require.NoError(t, WriteYAML(ctx, path, in))

	var out sampleProfile
	require.NoError(t, ReadYAML(ctx, path, &out))
	assert.Equal(t, in, out)
}

func TestReadYAMLMissingFile(t *testing.T) {
	ctx := context.Background()

	var out sampleProfile
	err := ReadYAML(ctx, filepath.Join(t.TempDir(), "nope.yaml"), &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read YAML file")
}

func TestReadYAMLMalformed(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("channel: [unclosed\n"), 0o644))

	var out sampleProfile
	err := ReadYAML(ctx, path, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal YAML")
}

func TestNewContextPopulatesFields(t *testing.T) {
	rc := NewContext(context.Background(), "create netdata")

	require.NotNil(t, rc.Ctx)
	require.NotNil(t, rc.Log)
	require.NotNil(t, rc.Span)
	assert.Equal(t, "create netdata", rc.Command)
	assert.NotEmpty(t, rc.Component)
	assert.NotNil(t, rc.Attributes)
	assert.False(t, rc.Timestamp.IsZero())
}

func TestHandlePanicConvertsToError(t *testing.T) {
	rc := NewContext(context.Background(), "panic-test")

	var err error
	func() {
		defer rc.HandlePanic(&err)
		panic("boom")
	}()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestClassifyCommand(t *testing.T) {
	assert.Equal(t, "lifecycle", classifyCommand("create netdata"))
	assert.Equal(t, "lifecycle", classifyCommand("delete netdata"))
	assert.Equal(t, "general", classifyCommand("inspect netdata"))
}
