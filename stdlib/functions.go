package stdlib

import "github.com/robbyt/go-formula/platform/expression"

// newFunctions assembles the standard function library together with the
// date unit constants.
func newFunctions() *expression.SimpleModule {
	var functions []expression.Function
	functions = append(functions, mathFunctions()...)
	functions = append(functions, roundingFunctions()...)
	functions = append(functions, textFunctions()...)
	functions = append(functions, conversionFunctions()...)
	functions = append(functions, logicalFunctions()...)
	functions = append(functions, dateFunctions()...)
	return expression.MustModule(FunctionsKey, functions, dateUnitConstants())
}
