// Package stdlib provides the standard modules every formula environment
// starts from: basic constants, the standard function library and the
// operators.
package stdlib

import (
	"sync"

	"github.com/robbyt/go-formula/platform/expression"
)

// Module keys of the standard modules.
const (
	ConstantsKey  = "core.basic_constants"
	FunctionsKey  = "core.standard_functions"
	OperationsKey = "core.standard_operations"
)

// Function groups used for documentation.
const (
	GroupBasic      = "basic"
	GroupMath       = "math"
	GroupRounding   = "rounding"
	GroupText       = "text"
	GroupConversion = "conversion"
	GroupLogical    = "logical"
	GroupDate       = "date"
	GroupOperators  = "operators"
)

var (
	constantsModule  = sync.OnceValue(newConstants)
	functionsModule  = sync.OnceValue(newFunctions)
	operationsModule = sync.OnceValue(newOperations)
)

// Constants returns the basic constants module.
func Constants() expression.Module { return constantsModule() }

// Functions returns the standard function module.
func Functions() expression.Module { return functionsModule() }

// Operations returns the operator module.
func Operations() expression.Module { return operationsModule() }

// All returns the standard modules in registration order.
func All() []expression.Module {
	return []expression.Module{Constants(), Functions(), Operations()}
}

func describe(
	group, name string,
	minArgs, maxArgs int,
	result expression.ResultTypeFunc,
	opts ...expression.DescriptionOption,
) expression.FunctionDescription {
	opts = append([]expression.DescriptionOption{expression.WithGroup(group)}, opts...)
	return expression.MustDescription(name, minArgs, maxArgs, result, opts...)
}
