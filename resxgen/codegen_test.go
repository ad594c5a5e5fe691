package resxgen

import (
	"flag"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/donutnomad/resxgen/lang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var update = flag.Bool("update", false, "重新生成 testdata/golden 下的期望输出")

const sampleClass = "Microsoft.DotNet.TestStrings"

func sampleEntries() []Entry {
	return []Entry{
		{Name: "Greeting", Value: "Hello, {0}!", Comment: "Greets the user by name."},
		{Name: "Farewell", Value: "Goodbye"},
		{Name: "Plural", Value: "{0} of {1} items", Comment: "  Singular or plural form.\r\n  Used in the footer.\n"},
		{Name: "Quoted", Value: `Say "cheese" & smile`, Comment: "Contains <quotes> & ampersands."},
		{Name: "my.dotted key", Value: "Dotted"},
	}
}

func buildSample(t *testing.T, d *lang.Dialect) *Model {
	t.Helper()
	m, diags, err := Build(sampleEntries(), "", sampleClass, d)
	require.NoError(t, err)
	assert.Empty(t, diags)
	return m
}

// assertGolden 比较输出与 testdata/golden 下的期望文件，忽略换行风格
func assertGolden(t *testing.T, name string, got []byte) {
	t.Helper()
	path := filepath.Join("testdata", "golden", name+".golden")

	if *update {
		require.NoError(t, os.WriteFile(path, got, 0644))
		return
	}

	want, err := os.ReadFile(path)
	require.NoError(t, err)

	a := normalizeNewlines(string(want))
	b := normalizeNewlines(string(got))
	if a != b {
		diff, _ := UnifiedDiff(a, b, path, "generated")
		t.Errorf("输出与 %s 不一致:\n%s", path, diff)
	}
}

func TestEmit_Golden(t *testing.T) {
	tests := []struct {
		golden string
		d      *lang.Dialect
		cfg    Config
	}{
		{"cs_default", lang.CSharp, Config{}},
		{"cs_format_methods", lang.CSharp, Config{EmitFormatMethods: true}},
		{"cs_constants", lang.CSharp, Config{AsConstants: true}},
		{"cs_constants_literal", lang.CSharp, Config{AsConstants: true, OmitLookupHelper: true}},
		{"cs_literal", lang.CSharp, Config{OmitLookupHelper: true}},
		{"cs_format_literal", lang.CSharp, Config{EmitFormatMethods: true, OmitLookupHelper: true}},
		{"vb_format_methods", lang.VisualBasic, Config{EmitFormatMethods: true}},
		{"go_format_methods", lang.Go, Config{EmitFormatMethods: true}},
		{"go_format_literal", lang.Go, Config{EmitFormatMethods: true, OmitLookupHelper: true}},
	}

	for _, tt := range tests {
		t.Run(tt.golden, func(t *testing.T) {
			m := buildSample(t, tt.d)
			src, diags, err := Emit(m, tt.cfg)
			require.NoError(t, err)
			assert.Empty(t, diags)
			assertGolden(t, tt.golden, src)
		})
	}
}

// 常量模式与格式化方法同时开启时降级为常量，并对含占位符的资源给出警告
func TestEmit_ConstantsWinOverFormatMethods(t *testing.T) {
	m := buildSample(t, lang.CSharp)

	src, diags, err := Emit(m, Config{AsConstants: true, EmitFormatMethods: true})
	require.NoError(t, err)
	assertGolden(t, "cs_constants", src)

	require.Len(t, diags, 2)
	for _, d := range diags {
		assert.Equal(t, SeverityWarning, d.Severity)
		assert.Equal(t, CodeConstantFormatConflict, d.Code)
	}
	assert.Equal(t, "Greeting", diags[0].Resource)
	assert.Equal(t, "Plural", diags[1].Resource)
}

func TestEmit_Deterministic(t *testing.T) {
	for _, d := range lang.All() {
		for _, cfg := range []Config{
			{},
			{EmitFormatMethods: true},
			{AsConstants: true},
			{EmitFormatMethods: true, OmitLookupHelper: true},
		} {
			first, _, err := Emit(buildSample(t, d), cfg)
			require.NoError(t, err)
			second, _, err := Emit(buildSample(t, d), cfg)
			require.NoError(t, err)
			assert.Equal(t, first, second, "%s %+v", d.Name, cfg)
			assert.True(t, strings.HasSuffix(string(first), "\n"))
			assert.False(t, strings.HasSuffix(string(first), "\n\n"))
			assert.NotContains(t, string(first), "\r")
		}
	}
}

func TestEmit_GreetingScenario(t *testing.T) {
	m, _, err := Build([]Entry{{Name: "Greeting", Value: "Hello, {0}!"}}, "", "Strings", lang.CSharp)
	require.NoError(t, err)

	src, diags, err := Emit(m, Config{EmitFormatMethods: true})
	require.NoError(t, err)
	assert.Empty(t, diags)
	out := string(src)
	assert.Contains(t, out, `internal static string Greeting(object p0) => GetResourceString("Greeting", p0);`)
	assert.Equal(t, 1, strings.Count(out, "GetResourceString(string resourceKey"))

	src, _, err = Emit(m, Config{AsConstants: true})
	require.NoError(t, err)
	out = string(src)
	assert.Contains(t, out, `internal const string Greeting = "Greeting";`)
	assert.NotContains(t, out, "Greeting(")
}

func TestEmit_NoNamespace(t *testing.T) {
	m, _, err := Build([]Entry{{Name: "A", Value: "a"}}, "Bundle", "Strings", lang.CSharp)
	require.NoError(t, err)

	src, _, err := Emit(m, Config{OmitLookupHelper: true})
	require.NoError(t, err)
	want := strings.Join([]string{
		"// <auto-generated/>",
		"",
		"internal static partial class Strings",
		"{",
		`    internal static string A => "a";`,
		"}",
		"",
	}, "\n")
	assert.Equal(t, want, string(src))
}

func TestEmit_EmptyModel(t *testing.T) {
	for _, d := range lang.All() {
		m, _, err := Build(nil, "", "Strings", d)
		require.NoError(t, err)

		_, _, err = Emit(m, Config{})
		require.NoError(t, err, d.Name)
		_, _, err = Emit(m, Config{OmitLookupHelper: true})
		require.NoError(t, err, d.Name)
	}
}

func TestEmit_GoPackageFromClassName(t *testing.T) {
	m, _, err := Build([]Entry{{Name: "A", Value: "a"}}, "", "Messages", lang.Go)
	require.NoError(t, err)

	src, _, err := Emit(m, Config{AsConstants: true, OmitLookupHelper: true})
	require.NoError(t, err)
	want := strings.Join([]string{
		"// Code generated by resxgen. DO NOT EDIT.",
		"",
		"package messages",
		"",
		`// Messages exposes the resources of bundle "Messages".`,
		"type Messages struct{}",
		"",
		`const A = "A"`,
		"",
	}, "\n")
	assert.Equal(t, want, string(src))
}

// 同一个包中的多个容器可以一起编译；共享查找与本地格式化的结果一致
func TestEmit_GoContainersShareOnePackage(t *testing.T) {
	if testing.Short() {
		t.Skip("需要 go 命令")
	}
	goBin, err := exec.LookPath("go")
	if err != nil {
		t.Skip("找不到 go 命令")
	}

	entries := []Entry{
		{Name: "Escaped", Value: "{{0}} {0}"},
		{Name: "Padded", Value: "[{0,-4}|{1,3}]"},
		{Name: "Title", Value: "Hi"},
	}
	jobs := []struct {
		class string
		cfg   Config
	}{
		{"App.Res.Strings", Config{EmitFormatMethods: true}},
		{"App.Res.Errors", Config{EmitFormatMethods: true}},
		{"App.Res.Literal", Config{EmitFormatMethods: true, OmitLookupHelper: true}},
	}

	dir := t.TempDir()
	pkgDir := filepath.Join(dir, "res")
	require.NoError(t, os.MkdirAll(pkgDir, 0755))
	for _, job := range jobs {
		m, _, err := Build(entries, "", job.class, lang.Go)
		require.NoError(t, err)
		src, _, err := Emit(m, job.cfg)
		require.NoError(t, err)
		name, err := lang.Go.OutputFileName(m.ClassName)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(pkgDir, name), src, 0644))
	}

	// 常量模式下名为 init 的资源，与其他容器在同一个包中
	m, _, err := Build([]Entry{{Name: "init", Value: "x"}}, "", "App.Res.Keys", lang.Go)
	require.NoError(t, err)
	src, _, err := Emit(m, Config{AsConstants: true, OmitLookupHelper: true})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(pkgDir, "keys.go"), src, 0644))

	mainSrc := `package main

import (
	"fmt"

	"restest/res"
)

func main() {
	res.ErrorsLookup = func(bundle, key string) (string, bool) {
		return bundle + "/" + key, key == "Title"
	}
	fmt.Println(res.Strings{}.Escaped("W"))
	fmt.Println(res.Literal{}.Escaped("W"))
	fmt.Println(res.Strings{}.Padded("ab", 7))
	fmt.Println(res.Literal{}.Padded("ab", 7))
	fmt.Println(res.Strings{}.Title())
	fmt.Println(res.Errors{}.Title())
}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.go"), []byte(mainSrc), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module restest\n\ngo 1.21\n"), 0644))

	cmd := exec.Command(goBin, "run", ".")
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GOFLAGS=-mod=mod", "GOWORK=off")
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, string(out))

	assert.Equal(t, strings.Join([]string{
		"{0} W",
		"{0} W",
		"[ab  |  7]",
		"[ab  |  7]",
		"Hi",
		"App.Res.Errors/Title",
	}, "\n")+"\n", string(out))
}

func TestEmit_GoFormatSpecIgnored(t *testing.T) {
	m, _, err := Build([]Entry{{Name: "Price", Value: "{0:C2} total, {1,-5}|"}}, "", "Strings", lang.Go)
	require.NoError(t, err)

	src, diags, err := Emit(m, Config{EmitFormatMethods: true, OmitLookupHelper: true})
	require.NoError(t, err)
	assert.Contains(t, string(src), `fmt.Sprintf("%[1]v total, %-5[2]v|", p0, p1)`)
	require.Len(t, diags, 1)
	assert.Equal(t, CodeFormatSpecIgnored, diags[0].Code)
}

func TestEmit_DialectMismatch(t *testing.T) {
	m := buildSample(t, lang.CSharp)

	_, _, err := Emit(m, Config{Language: "vb"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	_, _, err = Emit(m, Config{Language: "cobol"})
	assert.ErrorIs(t, err, ErrValidation)

	_, _, err = Emit(m, Config{Language: "cs"})
	assert.NoError(t, err)
}

func TestEmit_ControlCharacters(t *testing.T) {
	entries := []Entry{{Name: "Lines", Value: "one\ntwo\t\"three\""}}

	m, _, err := Build(entries, "", "Strings", lang.CSharp)
	require.NoError(t, err)
	src, _, err := Emit(m, Config{OmitLookupHelper: true})
	require.NoError(t, err)
	assert.Contains(t, string(src), `internal static string Lines => "one\ntwo\t\"three\"";`)

	m, _, err = Build(entries, "", "Strings", lang.VisualBasic)
	require.NoError(t, err)
	src, _, err = Emit(m, Config{OmitLookupHelper: true})
	require.NoError(t, err)
	assert.Contains(t, string(src), `Return "one" & ChrW(10) & "two" & ChrW(9) & """three"""`)
}

func TestPlanDeclaration_Shapes(t *testing.T) {
	plain := &Resource{Entry: Entry{Name: "P", Value: "p"}, Identifier: "P", Kind: KindPlain}
	formatted := &Resource{Entry: Entry{Name: "F", Value: "{0}"}, Identifier: "F", Kind: KindFormatted, ArgCount: 1}
	m := &Model{ClassName: "Strings", Dialect: lang.CSharp}

	tests := []struct {
		cfg        Config
		plain, fmt Shape
	}{
		{Config{}, ShapeProperty, ShapeProperty},
		{Config{EmitFormatMethods: true}, ShapeProperty, ShapeMethod},
		{Config{AsConstants: true}, ShapeConstant, ShapeConstant},
		{Config{AsConstants: true, EmitFormatMethods: true}, ShapeConstant, ShapeConstant},
		{Config{OmitLookupHelper: true}, ShapePropertyLiteral, ShapePropertyLiteral},
		{Config{EmitFormatMethods: true, OmitLookupHelper: true}, ShapePropertyLiteral, ShapeMethodLiteral},
		{Config{AsConstants: true, OmitLookupHelper: true}, ShapeConstant, ShapeConstant},
	}

	for _, tt := range tests {
		decl, _ := planDeclaration(m, plain, tt.cfg, lang.CSharp)
		assert.Equal(t, tt.plain, decl.shape, "plain %+v", tt.cfg)
		decl, _ = planDeclaration(m, formatted, tt.cfg, lang.CSharp)
		assert.Equal(t, tt.fmt, decl.shape, "formatted %+v", tt.cfg)
	}
}

func TestDocLines(t *testing.T) {
	assert.Nil(t, docLines(lang.CSharp, ""))
	assert.Nil(t, docLines(lang.CSharp, " \n\t\n"))
	assert.Equal(t, []string{
		"/// <summary>",
		"/// a &amp; b",
		"///",
		"/// c",
		"/// </summary>",
	}, docLines(lang.CSharp, "\n a & b \r\n\r\n c\n"))
	assert.Equal(t, []string{"// x < y"}, docLines(lang.Go, "x < y"))
}

func TestCodeWriter_Blank(t *testing.T) {
	w := newCodeWriter(lang.CSharp)
	w.blank()
	w.lines([]string{"a"})
	w.blank()
	w.blank()
	w.indent = 1
	w.lines([]string{"b", "  "})
	w.blank()
	assert.Equal(t, "a\n\n    b\n", string(w.bytes()))
}
