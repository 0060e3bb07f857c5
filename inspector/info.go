// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inspector

import (
	"reflect"
)

// MemberKinds are the kinds of members a property can come from.
type MemberKinds int32

const (
	// MemberField is a struct field.
	MemberField MemberKinds = iota

	// MemberAccessor is a registered synthetic accessor.
	MemberAccessor

	// MemberMethod is a method.
	MemberMethod
)

// MemberInfo describes the member of a struct type that a property comes from.
type MemberInfo struct {
	Kind MemberKinds

	// Owner is the struct type that has the member.
	Owner reflect.Type

	// Field is the field, for [MemberField].
	Field reflect.StructField

	// Method is the method, for [MemberMethod].
	Method reflect.Method

	// Attributes are the attributes declared on the member.
	Attributes []any
}

// PropertyInfo is the immutable description of one child slot of a
// property, produced by a [PropertyResolver]. Infos are compared by
// identity, so a resolver returns the same info for the same slot
// until it is deinitialized.
type PropertyInfo struct {

	// Name is the name of the slot, a member name or an
	// element name such as "[2]".
	Name string

	// Type is the declared type of the slot.
	Type reflect.Type

	// Accessor accesses the slot on its owner. It is nil for logic roots.
	Accessor ValueAccessor

	// LogicRoot is whether this is the synthetic root representing
	// the whole target set, which always resolves children.
	LogicRoot bool

	// Member is the member the slot comes from, if any.
	Member *MemberInfo
}

func (pi *PropertyInfo) String() string {
	if pi.Type == nil {
		return pi.Name
	}
	return pi.Name + " " + pi.Type.String()
}

// MemberAttributes returns the attributes declared on the member of the slot.
func (pi *PropertyInfo) MemberAttributes() []any {
	if pi.Member == nil {
		return nil
	}
	return pi.Member.Attributes
}

// IsMethod returns whether the slot is a method.
func (pi *PropertyInfo) IsMethod() bool {
	return pi.Member != nil && pi.Member.Kind == MemberMethod
}
