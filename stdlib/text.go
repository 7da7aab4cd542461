package stdlib

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/robbyt/go-formula/platform/expression"
)

var (
	text        = expression.String
	integer     = expression.Integer
	textResult  = expression.FixedResult(text, text)
	textToBool  = expression.FixedResult(expression.Boolean, text)
	textToInt   = expression.FixedResult(integer, text)
	textAndInts = expression.FixedResult(text, text, integer)
)

// runeSlice returns the runes of s between start and end, which must lie
// within the string.
func runeSlice(s string, start, end int) (string, error) {
	runes := []rune(s)
	if start < 0 || end > len(runes) || start > end {
		return "", fmt.Errorf("%w: [%d, %d) of %d characters", ErrOutOfRange, start, end, len(runes))
	}
	return string(runes[start:end]), nil
}

func cut(s string, start, length float64) (string, error) {
	return runeSlice(s, int(start), int(start)+int(length))
}

func prefix(s string, n float64) (string, error) {
	count := utf8.RuneCountInString(s)
	return runeSlice(s, 0, min(max(int(n), 0), count))
}

func suffix(s string, n float64) (string, error) {
	count := utf8.RuneCountInString(s)
	return runeSlice(s, count-min(max(int(n), 0), count), count)
}

func char(s string, index float64) (string, error) {
	return runeSlice(s, int(index), int(index)+1)
}

// runeIndex returns the character position of the first occurrence of sub
// in s, or -1.
func runeIndex(s, sub string) float64 {
	i := strings.Index(s, sub)
	if i < 0 {
		return -1
	}
	return float64(utf8.RuneCountInString(s[:i]))
}

func textFunctions() []expression.Function {
	return []expression.Function{
		expression.UnaryFunction(describe(GroupText, "length", 1, 1, textToInt),
			expression.Safe1(func(s string) float64 { return float64(utf8.RuneCountInString(s)) })),
		expression.UnaryFunction(describe(GroupText, "lower", 1, 1, textResult), expression.Safe1(strings.ToLower)),
		expression.UnaryFunction(describe(GroupText, "upper", 1, 1, textResult), expression.Safe1(strings.ToUpper)),
		expression.UnaryFunction(describe(GroupText, "trim", 1, 1, textResult), expression.Safe1(strings.TrimSpace)),
		expression.VariadicFunction(describe(GroupText, "concat", 1, expression.UnboundedArgs, textResult),
			expression.SafeN(func(parts []string) string { return strings.Join(parts, "") })),
		expression.BinaryFunction(describe(GroupText, "contains", 2, 2, textToBool), expression.Safe2(strings.Contains)),
		expression.BinaryFunction(describe(GroupText, "starts", 2, 2, textToBool), expression.Safe2(strings.HasPrefix)),
		expression.BinaryFunction(describe(GroupText, "ends", 2, 2, textToBool), expression.Safe2(strings.HasSuffix)),
		expression.BinaryFunction(describe(GroupText, "index", 2, 2, textToInt), expression.Safe2(runeIndex)),
		expression.TernaryFunction(describe(GroupText, "replace", 3, 3, textResult), expression.Safe3(strings.ReplaceAll)),
		expression.TernaryFunction(describe(GroupText, "cut", 3, 3, textAndInts), cut),
		expression.BinaryFunction(describe(GroupText, "prefix", 2, 2, textAndInts), prefix),
		expression.BinaryFunction(describe(GroupText, "suffix", 2, 2, textAndInts), suffix),
		expression.BinaryFunction(describe(GroupText, "char", 2, 2, textAndInts), char),
		expression.BinaryFunction(describe(GroupText, "compare", 2, 2, textToInt),
			expression.Safe2(func(a, b string) float64 { return float64(strings.Compare(a, b)) })),
		expression.BinaryFunction(describe(GroupText, "equals", 2, 2, textToBool),
			expression.Safe2(func(a, b string) bool { return a == b })),
	}
}
