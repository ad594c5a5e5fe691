package resxgen

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTable 在临时目录写入一个 YAML 资源表
func writeTable(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const greetingTable = `- name: Greeting
  value: "Hello, {0}!"
  comment: Greets the user by name.
- name: Farewell
  value: Goodbye
`

func TestGenerate_WritesOutput(t *testing.T) {
	dir := t.TempDir()
	table := writeTable(t, dir, "strings.yaml", greetingTable)

	job := &Job{
		ResourceFile: table,
		ClassName:    "App.Strings",
		Config:       Config{Language: "cs", EmitFormatMethods: true},
	}

	result, err := Generate(context.Background(), job)
	require.NoError(t, err)
	assert.True(t, result.Written)
	assert.Empty(t, result.Diagnostics)
	assert.Equal(t, filepath.Join(dir, "Strings.Designer.cs"), result.Output)

	data, err := os.ReadFile(result.Output)
	require.NoError(t, err)
	assert.Equal(t, result.Source, data)
	assert.Contains(t, string(data), `internal static string Greeting(object p0) => GetResourceString("Greeting", p0);`)
	assert.Contains(t, string(data), `new global::System.Resources.ResourceManager("App.Strings", typeof(Strings).Assembly)`)

	// 内容不变时不重写
	again, err := Generate(context.Background(), job)
	require.NoError(t, err)
	assert.False(t, again.Written)
}

func TestGenerate_ExplicitOutputAndBundle(t *testing.T) {
	dir := t.TempDir()
	table := writeTable(t, dir, "strings.yaml", greetingTable)
	out := filepath.Join(dir, "gen", "messages.go")

	result, err := Generate(context.Background(), &Job{
		ResourceFile: table,
		ResourceName: "app.messages",
		ClassName:    "Messages",
		Output:       out,
		Config:       Config{Language: "go"},
	})
	require.NoError(t, err)
	assert.Equal(t, out, result.Output)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "package messages")
	assert.Contains(t, string(data), `value, ok := MessagesLookup("app.messages", key)`)
}

func TestGenerate_DefaultGoFileName(t *testing.T) {
	dir := t.TempDir()
	table := writeTable(t, dir, "strings.yaml", greetingTable)

	result, err := Generate(context.Background(), &Job{
		ResourceFile: table,
		ClassName:    "TestStrings",
		Config:       Config{Language: "go"},
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "test_strings.go"), result.Output)
}

// 致命错误时不写文件，已有文件保持不变
func TestGenerate_ValidationErrorLeavesOutputUntouched(t *testing.T) {
	dir := t.TempDir()
	table := writeTable(t, dir, "strings.yaml", `- name: a.b
  value: one
- name: a_b
  value: two
`)
	out := filepath.Join(dir, "Strings.Designer.cs")
	require.NoError(t, os.WriteFile(out, []byte("previous"), 0644))

	result, err := Generate(context.Background(), &Job{
		ResourceFile: table,
		ClassName:    "Strings",
		Config:       Config{Language: "cs"},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
	assert.False(t, result.Written)

	ves := ValidationErrors(err)
	require.Len(t, ves, 1)
	assert.Equal(t, CodeDuplicateIdentifier, ves[0].Code)
	assert.Equal(t, "a_b", ves[0].Resource)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(data))

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestGenerate_NoOutputOnValidationError(t *testing.T) {
	dir := t.TempDir()
	table := writeTable(t, dir, "strings.yaml", "- name: \"\"\n  value: x\n")

	_, err := Generate(context.Background(), &Job{
		ResourceFile: table,
		ClassName:    "Strings",
		Config:       Config{Language: "vb"},
	})
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(dir, "Strings.Designer.vb"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestGenerate_UnsupportedLanguage(t *testing.T) {
	dir := t.TempDir()
	table := writeTable(t, dir, "strings.yaml", greetingTable)

	_, err := Generate(context.Background(), &Job{
		ResourceFile: table,
		ClassName:    "Strings",
		Config:       Config{Language: "fsharp"},
	})
	require.Error(t, err)
	ves := ValidationErrors(err)
	require.Len(t, ves, 1)
	assert.Equal(t, CodeUnsupportedLanguage, ves[0].Code)
}

func TestGenerate_WarningsAsErrors(t *testing.T) {
	dir := t.TempDir()
	table := writeTable(t, dir, "strings.yaml", "- name: Gap\n  value: \"{0} {2}\"\n")
	job := &Job{
		ResourceFile: table,
		ClassName:    "Strings",
		Config:       Config{Language: "cs", EmitFormatMethods: true},
	}

	result, err := Generate(context.Background(), job, WithWarningsAsErrors(true))
	require.ErrorIs(t, err, ErrWarnings)
	assert.False(t, result.Written)
	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, CodePlaceholderGap, result.Diagnostics[0].Code)
	_, statErr := os.Stat(filepath.Join(dir, "Strings.Designer.cs"))
	assert.True(t, os.IsNotExist(statErr))

	// 默认只报告警告
	result, err = Generate(context.Background(), job)
	require.NoError(t, err)
	assert.True(t, result.Written)
	assert.Contains(t, string(result.Source), "Gap(object p0, object p1, object p2)")
}

func TestGenerate_MissingFile(t *testing.T) {
	_, err := Generate(context.Background(), &Job{
		ResourceFile: filepath.Join(t.TempDir(), "missing.resx"),
		ClassName:    "Strings",
		Config:       Config{Language: "cs"},
	})
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrValidation))
}

func TestGenerate_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Generate(ctx, &Job{ResourceFile: "strings.yaml", ClassName: "Strings", Config: Config{Language: "cs"}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRender_ResxTable(t *testing.T) {
	result, err := Render(context.Background(), &Job{
		ResourceFile: filepath.Join("..", "internal", "resx", "testdata", "strings.resx"),
		ClassName:    "Strings",
		Config:       Config{Language: "cs", OmitLookupHelper: true},
	})
	require.NoError(t, err)
	out := string(result.Source)
	assert.Contains(t, out, "Greeting")
	assert.Contains(t, out, `"a < b && c"`)
	assert.NotContains(t, out, "Logo")
	assert.True(t, strings.HasPrefix(out, "// <auto-generated/>\n"))
}
