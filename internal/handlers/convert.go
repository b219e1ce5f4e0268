package handlers

import (
	"encoding"
	"fmt"
	"reflect"
	"time"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

var (
	stringType          = reflect.TypeFor[string]()
	durationType        = reflect.TypeFor[time.Duration]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
)

// ConvertString converts a configuration string to target. Strings, durations
// and encoding.TextUnmarshaler implementations (slog.Level, net.IP, ...) are
// handled directly; everything else goes through cty's conversion rules.
// A nil target yields the string unchanged.
func ConvertString(s string, target reflect.Type) (any, error) {
	if target == nil {
		return s, nil
	}

	switch {
	case target.Kind() == reflect.Interface:
		if !stringType.AssignableTo(target) {
			return nil, fmt.Errorf("cannot convert a string to %s", target)
		}
		return s, nil
	case target == durationType:
		d, err := time.ParseDuration(s)
		if err != nil {
			return nil, fmt.Errorf("invalid duration %q: %w", s, err)
		}
		return d, nil
	case reflect.PointerTo(target).Implements(textUnmarshalerType):
		ptr := reflect.New(target)
		if err := ptr.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(s)); err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", target, s, err)
		}
		return ptr.Elem().Interface(), nil
	case target.Kind() == reflect.String:
		v := reflect.New(target).Elem()
		v.SetString(s)
		return v.Interface(), nil
	}

	ty, err := gocty.ImpliedType(reflect.Zero(target).Interface())
	if err != nil {
		return nil, fmt.Errorf("no conversion from string to %s: %w", target, err)
	}
	val, err := convert.Convert(cty.StringVal(s), ty)
	if err != nil {
		return nil, fmt.Errorf("cannot convert %q to %s: %w", s, target, err)
	}
	ptr := reflect.New(target)
	if err := gocty.FromCtyValue(val, ptr.Interface()); err != nil {
		return nil, fmt.Errorf("cannot convert %q to %s: %w", s, target, err)
	}
	return ptr.Elem().Interface(), nil
}

// Convertible reports whether ConvertString can ever succeed for target.
func Convertible(target reflect.Type) bool {
	if target == nil || target == durationType || target.Kind() == reflect.String {
		return true
	}
	if target.Kind() == reflect.Interface {
		return stringType.AssignableTo(target)
	}
	if reflect.PointerTo(target).Implements(textUnmarshalerType) {
		return true
	}
	ty, err := gocty.ImpliedType(reflect.Zero(target).Interface())
	if err != nil {
		return false
	}
	// String to bool and number conversions are only available as unsafe ones.
	return convert.GetConversionUnsafe(cty.String, ty) != nil
}
