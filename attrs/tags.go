// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package attrs

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"cogentcore.org/inspect/base/errors"
)

// TagKey is the struct tag key that attributes are parsed from.
const TagKey = "inspect"

// Parse returns the attributes declared in the [TagKey] entry of the
// given struct tag. The entry is a comma-separated list of items:
//
//	-                      Hide
//	show                   ShowInInspector
//	readonly               ReadOnly
//	label=Text             LabelText
//	showif=Member[:value]  ShowIf (value defaults to true)
//	hideif=Member[:value]  HideIf
//	button[=Label]         Button
//	onchange=Method        OnValueChanged
//	list=opt|opt           ListDrawerSettings
//	metro=opt|opt          MetroListDrawerSettings
//	number=opt|opt         NumberDrawerSettings
//	group=[kind:]Name      BeginGroup (kind defaults to box)
//	endgroup[=kind]        EndGroup
//
// Items that cannot be parsed are reported in the returned error,
// which joins all of them; the other items are still returned.
func Parse(tag reflect.StructTag) ([]any, error) {
	s, ok := tag.Lookup(TagKey)
	if !ok || s == "" {
		return nil, nil
	}
	var list []any
	var errs []error
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		a, err := parseItem(item)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		list = append(list, a)
	}
	return list, errors.Join(errs...)
}

func parseItem(item string) (any, error) {
	name, value, _ := strings.Cut(item, "=")
	switch name {
	case "-":
		return &Hide{}, nil
	case "show":
		return &ShowInInspector{}, nil
	case "readonly":
		return &ReadOnly{}, nil
	case "label":
		return &LabelText{Text: value}, nil
	case "showif", "hideif":
		if value == "" {
			return nil, fmt.Errorf("attrs.Parse: %s needs a member name", name)
		}
		cond, v, has := strings.Cut(value, ":")
		var val any = true
		if has {
			val = parseScalar(v)
		}
		if name == "showif" {
			return &ShowIf{Condition: cond, Value: val}, nil
		}
		return &HideIf{Condition: cond, Value: val}, nil
	case "button":
		return &Button{Label: value}, nil
	case "onchange":
		if value == "" {
			return nil, fmt.Errorf("attrs.Parse: onchange needs a method name")
		}
		return &OnValueChanged{Method: value}, nil
	case "list":
		ls := &ListDrawerSettings{}
		err := parseOptions(value, func(k, v string) bool { return listOption(ls, k, v) })
		return ls, err
	case "metro":
		ms := &MetroListDrawerSettings{}
		err := parseOptions(value, func(k, v string) bool {
			switch k {
			case "color":
				ms.SideLineColor = v
			case "icon":
				ms.IconGetter = v
			default:
				return listOption(&ms.ListDrawerSettings, k, v)
			}
			return true
		})
		return ms, err
	case "number":
		ns := &NumberDrawerSettings{}
		err := parseOptions(value, func(k, v string) bool {
			if k == "spin" {
				ns.Style = NumberSpinBox
				return true
			}
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return false
			}
			switch k {
			case "min":
				ns.Min = &f
			case "max":
				ns.Max = &f
			case "step":
				ns.Step = &f
			default:
				return false
			}
			return true
		})
		return ns, err
	case "group":
		kind, gname, has := strings.Cut(value, ":")
		if !has {
			kind, gname = "box", value
		}
		return &BeginGroup{Kind: kind, Name: gname}, nil
	case "endgroup":
		if value == "" {
			value = "box"
		}
		return &EndGroup{Kind: value}, nil
	}
	return nil, fmt.Errorf("attrs.Parse: unknown item %q", item)
}

// parseOptions calls set for each "key" or "key:value" option in the
// given |-separated list, returning an error for options it rejects.
func parseOptions(s string, set func(k, v string) bool) error {
	var errs []error
	for _, opt := range strings.Split(s, "|") {
		if opt == "" {
			continue
		}
		k, v, _ := strings.Cut(opt, ":")
		if !set(k, v) {
			errs = append(errs, fmt.Errorf("attrs.Parse: invalid option %q", opt))
		}
	}
	return errors.Join(errs...)
}

func listOption(ls *ListDrawerSettings, k, v string) bool {
	switch k {
	case "readonly":
		ls.ReadOnly = true
	case "noadd":
		ls.HideAddButton = true
	case "noremove":
		ls.HideRemoveButton = true
	case "nodrag":
		ls.NoDrag = true
	case "index":
		ls.ShowIndexLabels = true
	case "added":
		ls.OnAdded = v
	case "removed":
		ls.OnRemoved = v
	case "create":
		ls.CreateElement = v
	case "remove":
		ls.RemoveElement = v
	case "removeindex":
		ls.RemoveIndex = v
	case "indexlabel":
		ls.IndexLabel = v
	default:
		return false
	}
	return true
}

// parseScalar returns the given text as a bool, int, float64,
// or string, in that order of preference.
func parseScalar(s string) any {
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
