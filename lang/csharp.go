package lang

import (
	"fmt"
	"strings"
)

// CSharp C# 方言
var CSharp = define(&Dialect{
	Name:       "C#",
	Aliases:    []string{"cs", "csharp", "c#"},
	Extension:  ".cs",
	FileName:   "{{.ClassName}}.Designer.cs",
	Indent:     "    ",
	LineEnding: "\n",

	DocPrefix: "/// ",
	DocOpen:   "<summary>",
	DocClose:  "</summary>",
	EscapeDoc: escapeXML,

	IsIdentStart: isLetterStart,
	IsIdentPart:  isLetterPart,
	Reserved: append(csharpKeywords,
		"s_resourceManager", "ResourceManager", "Culture", "GetResourceString"),

	Quote: quoteCSharp,
	Param: "object %s",

	NestNamespace: true,
	NestContainer: true,

	Templates: Templates{
		Header:       "// <auto-generated/>",
		Namespace:    "namespace {{.Namespace}}\n{",
		NamespaceEnd: "}",
		Container:    "internal static partial class {{.ClassName}}\n{",
		ContainerEnd: "}",

		Constant:        `internal const string {{.Identifier}} = {{quote .Key}};`,
		Property:        `internal static string {{.Identifier}} => GetResourceString({{quote .Key}});`,
		PropertyLiteral: `internal static string {{.Identifier}} => {{quote .Value}};`,
		Method:          `internal static string {{.Identifier}}({{.Params}}) => GetResourceString({{quote .Key}}, {{.Args}});`,
		MethodLiteral:   `internal static string {{.Identifier}}({{.Params}}) => string.Format({{quote .Template}}, {{.Args}});`,
		Helper: `private static global::System.Resources.ResourceManager s_resourceManager;

internal static global::System.Resources.ResourceManager ResourceManager => s_resourceManager ?? (s_resourceManager = new global::System.Resources.ResourceManager({{quote .BundleID}}, typeof({{.ClassName}}).Assembly));

internal static global::System.Globalization.CultureInfo Culture { get; set; }

internal static string GetResourceString(string resourceKey, params object[] args)
{
    var value = ResourceManager.GetString(resourceKey, Culture) ?? resourceKey;
    return args.Length == 0 ? value : string.Format(Culture, value, args);
}`,
	},
})

var csharpKeywords = []string{
	"abstract", "as", "base", "bool", "break", "byte", "case", "catch", "char", "checked",
	"class", "const", "continue", "decimal", "default", "delegate", "do", "double", "else",
	"enum", "event", "explicit", "extern", "false", "finally", "fixed", "float", "for",
	"foreach", "goto", "if", "implicit", "in", "int", "interface", "internal", "is", "lock",
	"long", "namespace", "new", "null", "object", "operator", "out", "override", "params",
	"private", "protected", "public", "readonly", "ref", "return", "sbyte", "sealed",
	"short", "sizeof", "stackalloc", "static", "string", "struct", "switch", "this",
	"throw", "true", "try", "typeof", "uint", "ulong", "unchecked", "unsafe", "ushort",
	"using", "virtual", "void", "volatile", "while",
}

// quoteCSharp 生成 C# 普通字符串字面量
func quoteCSharp(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case 0:
			sb.WriteString(`\0`)
		default:
			if r < 0x20 || r == 0x7f || r == 0x85 || r == 0x2028 || r == 0x2029 {
				fmt.Fprintf(&sb, `\u%04X`, r)
			} else {
				sb.WriteRune(r)
			}
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
