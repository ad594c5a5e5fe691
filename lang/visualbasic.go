package lang

import (
	"strconv"
	"strings"
)

// VisualBasic Visual Basic 方言，标识符不区分大小写
var VisualBasic = define(&Dialect{
	Name:       "VB",
	Aliases:    []string{"vb", "visualbasic", "vbnet"},
	Extension:  ".vb",
	FileName:   "{{.ClassName}}.Designer.vb",
	Indent:     "    ",
	LineEnding: "\n",

	CaseInsensitive: true,

	DocPrefix: "''' ",
	DocOpen:   "<summary>",
	DocClose:  "</summary>",
	EscapeDoc: escapeXML,

	IsIdentStart: isLetterStart,
	IsIdentPart:  isLetterPart,
	// 单独的 '_' 是续行符，不能作为标识符
	Reserved: append(vbKeywords,
		"_", "s_resourceManager", "ResourceManager", "Culture", "GetResourceString"),

	Quote: quoteVB,
	Param: "%s As Object",

	NestNamespace: true,
	NestContainer: true,

	Templates: Templates{
		Header:       "' <auto-generated/>\nOption Strict On\nOption Explicit On",
		Namespace:    "Namespace {{.Namespace}}",
		NamespaceEnd: "End Namespace",
		Container:    "Friend Module {{.ClassName}}",
		ContainerEnd: "End Module",

		Constant: `Friend Const {{.Identifier}} As String = {{quote .Key}}`,
		Property: `Friend ReadOnly Property {{.Identifier}} As String
    Get
        Return GetResourceString({{quote .Key}})
    End Get
End Property`,
		PropertyLiteral: `Friend ReadOnly Property {{.Identifier}} As String
    Get
        Return {{quote .Value}}
    End Get
End Property`,
		Method: `Friend Function {{.Identifier}}({{.Params}}) As String
    Return GetResourceString({{quote .Key}}, {{.Args}})
End Function`,
		MethodLiteral: `Friend Function {{.Identifier}}({{.Params}}) As String
    Return String.Format({{quote .Template}}, {{.Args}})
End Function`,
		Helper: `Private s_resourceManager As Global.System.Resources.ResourceManager

Friend ReadOnly Property ResourceManager As Global.System.Resources.ResourceManager
    Get
        If s_resourceManager Is Nothing Then
            s_resourceManager = New Global.System.Resources.ResourceManager({{quote .BundleID}}, GetType({{.ClassName}}).Assembly)
        End If
        Return s_resourceManager
    End Get
End Property

Friend Property Culture As Global.System.Globalization.CultureInfo

Friend Function GetResourceString(resourceKey As String, ParamArray args As Object()) As String
    Dim value = If(ResourceManager.GetString(resourceKey, Culture), resourceKey)
    Return If(args.Length = 0, value, String.Format(Culture, value, args))
End Function`,
	},
})

var vbKeywords = []string{
	"AddHandler", "AddressOf", "Alias", "And", "AndAlso", "As", "Boolean", "ByRef", "Byte",
	"ByVal", "Call", "Case", "Catch", "CBool", "CByte", "CChar", "CDate", "CDbl", "CDec",
	"Char", "CInt", "Class", "CLng", "CObj", "Const", "Continue", "CSByte", "CShort",
	"CSng", "CStr", "CType", "CUInt", "CULng", "CUShort", "Date", "Decimal", "Declare",
	"Default", "Delegate", "Dim", "DirectCast", "Do", "Double", "Each", "Else", "ElseIf",
	"End", "EndIf", "Enum", "Erase", "Error", "Event", "Exit", "False", "Finally", "For",
	"Friend", "Function", "Get", "GetType", "GetXMLNamespace", "Global", "GoSub", "GoTo",
	"Handles", "If", "Implements", "Imports", "In", "Inherits", "Integer", "Interface",
	"Is", "IsNot", "Let", "Lib", "Like", "Long", "Loop", "Me", "Mod", "Module",
	"MustInherit", "MustOverride", "MyBase", "MyClass", "Namespace", "Narrowing", "New",
	"Next", "Not", "Nothing", "NotInheritable", "NotOverridable", "Object", "Of", "On",
	"Operator", "Option", "Optional", "Or", "OrElse", "Overloads", "Overridable",
	"Overrides", "ParamArray", "Partial", "Private", "Property", "Protected", "Public",
	"RaiseEvent", "ReadOnly", "ReDim", "REM", "RemoveHandler", "Resume", "Return",
	"SByte", "Select", "Set", "Shadows", "Shared", "Short", "Single", "Static", "Step",
	"Stop", "String", "Structure", "Sub", "SyncLock", "Then", "Throw", "To", "True", "Try",
	"TryCast", "TypeOf", "UInteger", "ULong", "UShort", "Using", "Variant", "Wend", "When",
	"While", "Widening", "With", "WithEvents", "WriteOnly", "Xor",
}

// quoteVB 生成 VB 字符串字面量
// VB 字面量中不能出现控制字符，控制字符使用 ChrW(n) 拼接
func quoteVB(s string) string {
	if s == "" {
		return `""`
	}

	var parts []string
	var cur strings.Builder
	open := false

	flush := func() {
		if open {
			cur.WriteByte('"')
			parts = append(parts, cur.String())
			cur.Reset()
			open = false
		}
	}

	for _, r := range s {
		if r < 0x20 || r == 0x7f || r == 0x85 || r == 0x2028 || r == 0x2029 {
			flush()
			parts = append(parts, "ChrW("+strconv.Itoa(int(r))+")")
			continue
		}
		if !open {
			cur.WriteByte('"')
			open = true
		}
		if r == '"' {
			cur.WriteString(`""`)
		} else {
			cur.WriteRune(r)
		}
	}
	flush()

	return strings.Join(parts, " & ")
}
