package expression

import (
	"context"
	"fmt"
	"time"
)

// Value is the set of Go types carried by Evaluator accessors. Double and
// Integer use float64, Boolean uses bool, String uses string and Date uses
// time.Time.
type Value interface {
	float64 | string | bool | time.Time
}

// Accessor computes a value for the row bound to ctx. Constant accessors
// ignore ctx.
type Accessor[T Value] func(ctx context.Context) (T, error)

// Evaluator is one compiled expression node. It holds exactly one accessor
// matching its type and never changes after construction.
type Evaluator struct {
	typ      Type
	constant bool

	double  Accessor[float64]
	str     Accessor[string]
	boolean Accessor[bool]
	date    Accessor[time.Time]
}

// NewEvaluator wraps fn as an Evaluator of type typ. The Go type of the
// accessor must match typ: float64 for Double and Integer, string for
// String, bool for Boolean and time.Time for Date.
func NewEvaluator[T Value](typ Type, fn Accessor[T], constant bool) (*Evaluator, error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: nil accessor for %s evaluator", ErrWrongAccessor, typ)
	}
	ev := &Evaluator{typ: typ, constant: constant}
	ok := false
	switch f := any(fn).(type) {
	case Accessor[float64]:
		ev.double, ok = f, typ.IsNumeric()
	case Accessor[string]:
		ev.str, ok = f, typ == String
	case Accessor[bool]:
		ev.boolean, ok = f, typ == Boolean
	case Accessor[time.Time]:
		ev.date, ok = f, typ == Date
	}
	if !ok {
		return nil, fmt.Errorf("%w: %T cannot back a %s evaluator", ErrWrongAccessor, fn, typ)
	}
	return ev, nil
}

// Constant returns a constant Evaluator of type typ always yielding v.
func Constant[T Value](typ Type, v T) (*Evaluator, error) {
	return NewEvaluator(typ, func(context.Context) (T, error) { return v, nil }, true)
}

// ConstantDouble returns a constant Double evaluator.
func ConstantDouble(v float64) *Evaluator {
	return &Evaluator{typ: Double, constant: true, double: func(context.Context) (float64, error) { return v, nil }}
}

// ConstantInteger returns a constant Integer evaluator.
func ConstantInteger(v int64) *Evaluator {
	f := float64(v)
	return &Evaluator{typ: Integer, constant: true, double: func(context.Context) (float64, error) { return f, nil }}
}

// ConstantString returns a constant String evaluator.
func ConstantString(v string) *Evaluator {
	return &Evaluator{typ: String, constant: true, str: func(context.Context) (string, error) { return v, nil }}
}

// ConstantBoolean returns a constant Boolean evaluator.
func ConstantBoolean(v bool) *Evaluator {
	return &Evaluator{typ: Boolean, constant: true, boolean: func(context.Context) (bool, error) { return v, nil }}
}

// ConstantDate returns a constant Date evaluator.
func ConstantDate(v time.Time) *Evaluator {
	return &Evaluator{typ: Date, constant: true, date: func(context.Context) (time.Time, error) { return v, nil }}
}

// Type returns the declared value domain.
func (e *Evaluator) Type() Type {
	return e.typ
}

// IsConstant reports whether the accessor always yields the same value.
func (e *Evaluator) IsConstant() bool {
	return e.constant
}

func (e *Evaluator) String() string {
	if e.constant {
		return fmt.Sprintf("Evaluator{Type: %s, Constant}", e.typ)
	}
	return fmt.Sprintf("Evaluator{Type: %s}", e.typ)
}

// DoubleFunc returns the accessor of a Double or Integer evaluator.
func (e *Evaluator) DoubleFunc() (Accessor[float64], error) {
	if e.double == nil {
		return nil, e.wrongAccessor(Double)
	}
	return e.double, nil
}

// StringFunc returns the accessor of a String evaluator.
func (e *Evaluator) StringFunc() (Accessor[string], error) {
	if e.str == nil {
		return nil, e.wrongAccessor(String)
	}
	return e.str, nil
}

// BooleanFunc returns the accessor of a Boolean evaluator.
func (e *Evaluator) BooleanFunc() (Accessor[bool], error) {
	if e.boolean == nil {
		return nil, e.wrongAccessor(Boolean)
	}
	return e.boolean, nil
}

// DateFunc returns the accessor of a Date evaluator.
func (e *Evaluator) DateFunc() (Accessor[time.Time], error) {
	if e.date == nil {
		return nil, e.wrongAccessor(Date)
	}
	return e.date, nil
}

func (e *Evaluator) wrongAccessor(requested Type) error {
	return fmt.Errorf("%w: requested %s from %s evaluator", ErrWrongAccessor, requested, e.typ)
}

// Double invokes the double accessor.
func (e *Evaluator) Double(ctx context.Context) (float64, error) {
	fn, err := e.DoubleFunc()
	if err != nil {
		return 0, err
	}
	return fn(ctx)
}

// Str invokes the string accessor.
func (e *Evaluator) Str(ctx context.Context) (string, error) {
	fn, err := e.StringFunc()
	if err != nil {
		return "", err
	}
	return fn(ctx)
}

// Bool invokes the boolean accessor.
func (e *Evaluator) Bool(ctx context.Context) (bool, error) {
	fn, err := e.BooleanFunc()
	if err != nil {
		return false, err
	}
	return fn(ctx)
}

// Time invokes the date accessor.
func (e *Evaluator) Time(ctx context.Context) (time.Time, error) {
	fn, err := e.DateFunc()
	if err != nil {
		return time.Time{}, err
	}
	return fn(ctx)
}

// Value invokes the accessor matching the declared type and returns the
// result as float64, string, bool or time.Time.
func (e *Evaluator) Value(ctx context.Context) (any, error) {
	switch e.typ {
	case Double, Integer:
		return e.Double(ctx)
	case String:
		return e.Str(ctx)
	case Boolean:
		return e.Bool(ctx)
	case Date:
		return e.Time(ctx)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownType, e.typ)
}

// AccessorOf returns the accessor of ev for the Go type T.
func AccessorOf[T Value](ev *Evaluator) (Accessor[T], error) {
	if ev == nil {
		return nil, ErrNilEvaluator
	}
	var fn any
	var err error
	switch any(*new(T)).(type) {
	case float64:
		fn, err = ev.DoubleFunc()
	case string:
		fn, err = ev.StringFunc()
	case bool:
		fn, err = ev.BooleanFunc()
	case time.Time:
		fn, err = ev.DateFunc()
	}
	if err != nil {
		return nil, err
	}
	return fn.(Accessor[T]), nil
}

// allConstant reports whether every input is constant. No inputs counts as
// constant.
func allConstant(inputs []*Evaluator) bool {
	for _, in := range inputs {
		if !in.IsConstant() {
			return false
		}
	}
	return true
}

// inputTypes returns the declared types of inputs.
func inputTypes(inputs []*Evaluator) ([]Type, error) {
	out := make([]Type, len(inputs))
	for i, in := range inputs {
		if in == nil {
			return nil, fmt.Errorf("%w: argument %d", ErrNilEvaluator, i+1)
		}
		out[i] = in.Type()
	}
	return out, nil
}
