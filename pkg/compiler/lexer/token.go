package lexer

// Kind identifies the variant of a Token in the closed token set.
type Kind uint8

const (
	KindNumber Kind = iota
	KindId
	KindString
	KindChar

	KindClass
	KindReturn
	KindIf
	KindElse
	KindDef
	KindNewline
	KindPrint
	KindIndent
	KindDedent
	KindAnd
	KindOr
	KindNot
	KindEq
	KindNotEq
	KindLessOrEq
	KindGreaterOrEq
	KindNone
	KindTrue
	KindFalse
	KindEof
)

var keywords = map[string]Kind{
	"class":  KindClass,
	"return": KindReturn,
	"if":     KindIf,
	"else":   KindElse,
	"def":    KindDef,
	"print":  KindPrint,
	"and":    KindAnd,
	"or":     KindOr,
	"not":    KindNot,
	"None":   KindNone,
	"True":   KindTrue,
	"False":  KindFalse,
}

// Token is the tagged variant described in the data model: payload-bearing
// kinds (Number, Id, String, Char) carry exactly one of the fields below;
// payload-free kinds carry none.
type Token struct {
	Kind Kind
	Num  int32
	Str  string
	Char byte
	Line uint32
}

// Equal reports structural equality: same tag, and for payload variants,
// equal payload. Line is positional metadata, not part of identity.
func (t Token) Equal(o Token) bool {
	if t.Kind != o.Kind {
		return false
	}
	switch t.Kind {
	case KindNumber:
		return t.Num == o.Num
	case KindId, KindString:
		return t.Str == o.Str
	case KindChar:
		return t.Char == o.Char
	default:
		return true
	}
}

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "Number"
	case KindId:
		return "Id"
	case KindString:
		return "String"
	case KindChar:
		return "Char"
	case KindClass:
		return "Class"
	case KindReturn:
		return "Return"
	case KindIf:
		return "If"
	case KindElse:
		return "Else"
	case KindDef:
		return "Def"
	case KindNewline:
		return "Newline"
	case KindPrint:
		return "Print"
	case KindIndent:
		return "Indent"
	case KindDedent:
		return "Dedent"
	case KindAnd:
		return "And"
	case KindOr:
		return "Or"
	case KindNot:
		return "Not"
	case KindEq:
		return "Eq"
	case KindNotEq:
		return "NotEq"
	case KindLessOrEq:
		return "LessOrEq"
	case KindGreaterOrEq:
		return "GreaterOrEq"
	case KindNone:
		return "None"
	case KindTrue:
		return "True"
	case KindFalse:
		return "False"
	case KindEof:
		return "Eof"
	default:
		return "Unknown"
	}
}
