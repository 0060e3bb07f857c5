// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package labels

import (
	"reflect"
	"strconv"
	"strings"

	"cogentcore.org/inspect/base/reflectx"
)

// FriendlyTypeName returns a user-friendly version of the name of the given type.
// It transforms it into sentence case, excludes the package, and converts various
// builtin types into more friendly forms (eg: "int" to "Number").
func FriendlyTypeName(typ reflect.Type) string {
	if typ == nil {
		return "None"
	}
	nptyp := reflectx.NonPointerType(typ)
	nm := nptyp.Name()

	// if it is named, we use that
	if nm != "" {
		switch nm {
		case "string":
			return "Text"
		case "bool":
			return "Switch"
		case "float32", "float64", "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64", "uintptr":
			return "Number"
		}
		return Sentence(nm)
	}

	// otherwise, we fall back on Kind
	switch nptyp.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		bnm := FriendlyTypeName(nptyp.Elem())
		if strings.HasSuffix(bnm, "s") {
			return "List of " + bnm
		}
		return bnm + "s"
	case reflect.Func:
		return "Function"
	}
	if nptyp.Kind() == reflect.Interface && nptyp.NumMethod() == 0 {
		return "Value"
	}
	return nptyp.String()
}

// FriendlyCollectionLabel returns a user-friendly label for the
// given slice, array or map value, such as "3 Numbers".
func FriendlyCollectionLabel(v reflect.Value) string {
	npv, ok := reflectx.Indirect(v)
	if !ok {
		return "None"
	}
	switch npv.Kind() {
	case reflect.Slice, reflect.Map:
		if npv.IsNil() {
			return "None"
		}
	case reflect.Array:
	default:
		return FriendlyTypeName(npv.Type())
	}
	bnm := FriendlyTypeName(npv.Type().Elem())
	n := npv.Len()
	if n == 1 {
		return "1 " + bnm
	}
	if strings.HasSuffix(bnm, "s") {
		return Sentence(strings.Join([]string{strconv.Itoa(n), "lists of", bnm}, " "))
	}
	return strconv.Itoa(n) + " " + bnm + "s"
}
