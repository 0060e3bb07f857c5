// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inspector

import (
	"fmt"
	"reflect"

	"cogentcore.org/inspect/attrs"
	"cogentcore.org/inspect/base/errors"
	"cogentcore.org/inspect/base/reflectx"
	"gopkg.in/yaml.v3"
)

// DefaultDrawers are the drawers used by trees without [WithDrawers].
var DefaultDrawers = StandardDrawers()

// StandardDrawers returns a new registry with the standard drawers,
// to which custom drawers can be added.
func StandardDrawers() *Drawers {
	return NewDrawers(
		&DrawerSpec{Name: "showif", Priority: PrioritySuper + 10000, Attribute: reflect.TypeFor[*attrs.ShowIf](), New: func() Drawer { return &ConditionDrawer{} }},
		&DrawerSpec{Name: "hideif", Priority: PrioritySuper + 10000, Attribute: reflect.TypeFor[*attrs.HideIf](), New: func() Drawer { return &ConditionDrawer{hide: true} }},
		&DrawerSpec{Name: "onchange", Priority: PrioritySuper, Attribute: reflect.TypeFor[*attrs.OnValueChanged](), New: func() Drawer { return &OnValueChangedDrawer{} }},
		&DrawerSpec{Name: "group", Priority: PriorityWrapper, Attribute: reflect.TypeFor[*attrs.BeginGroup](), New: func() Drawer { return &GroupDrawer{} }},
		&DrawerSpec{Name: "label", Priority: PriorityWrapper - 1, Attribute: reflect.TypeFor[*attrs.LabelText](), New: func() Drawer { return &LabelTextDrawer{} }},
		&DrawerSpec{Name: "button", Priority: PriorityAttribute, Attribute: reflect.TypeFor[*attrs.Button](), Match: func(p *Property) bool { return p.info.IsMethod() }, New: func() Drawer { return &ButtonDrawer{} }},
		&DrawerSpec{Name: "number", Priority: PriorityAttribute, Attribute: reflect.TypeFor[*attrs.NumberDrawerSettings](), Match: isNumber, New: func() Drawer { return &NumberDrawer{} }},
		&DrawerSpec{Name: "collection", Priority: PriorityValue + 9, Match: isCollection, New: func() Drawer { return &CollectionDrawer{} }},
		&DrawerSpec{Name: "composite", Priority: PriorityValue, Match: isComposite, New: func() Drawer { return &CompositeDrawer{} }},
		&DrawerSpec{Name: "primitive", Priority: PriorityValue - 1, Match: isPrimitive, New: func() Drawer { return &PrimitiveDrawer{} }},
	)
}

func isNumber(p *Property) bool {
	return reflectx.KindIsNumber(reflectx.NonPointerType(p.ValueType()).Kind())
}

func isCollection(p *Property) bool {
	_, ok := p.Collection()
	return ok
}

func isComposite(p *Property) bool {
	return p.resolver != nil && !isCollection(p)
}

func isPrimitive(p *Property) bool {
	return p.resolver == nil && !p.info.IsMethod()
}

// memberOf returns the value of the exported field or the result of the
// method without arguments with the given name on the given owner.
func memberOf(owner reflect.Value, name string) (reflect.Value, error) {
	c, ok := reflectx.Indirect(owner)
	if !ok {
		return reflect.Value{}, ErrUnavailable
	}
	if c.Kind() == reflect.Struct {
		if f, ok := c.Type().FieldByName(name); ok && f.IsExported() {
			return c.FieldByIndexErr(f.Index)
		}
	}
	m := reflectx.OnePointerValue(c).MethodByName(name)
	if !m.IsValid() || m.Type().NumIn() != 0 || m.Type().NumOut() != 1 {
		return reflect.Value{}, fmt.Errorf("%v has no field or method %s without arguments: %w", c.Type(), name, ErrNotFound)
	}
	return m.Call(nil)[0], nil
}

// hasMember returns whether values of the given type have a member
// that [memberOf] can get.
func hasMember(typ reflect.Type, name string) bool {
	nt := reflectx.NonPointerType(typ)
	if nt.Kind() == reflect.Struct {
		if f, ok := nt.FieldByName(name); ok && f.IsExported() {
			return true
		}
	}
	m, ok := reflect.PointerTo(nt).MethodByName(name)
	return ok && m.Type.NumIn() == 1 && m.Type.NumOut() == 1
}

// attributeOwner returns the property whose values declare the given
// attribute of the given property: its parent for member attributes,
// and itself for type attributes.
func attributeOwner(p *Property, a any) *Property {
	src, err := p.AttributeSource(a)
	if err != nil || src == SourceType || p.parent == nil {
		return p
	}
	return p.parent
}

// ConditionDrawer draws the rest of the chain only when the member
// named by an [attrs.ShowIf] (or not when named by an [attrs.HideIf])
// has the value of the attribute for some target.
type ConditionDrawer struct {
	hide      bool
	condition string
	value     any
	owner     *Property
}

func (cd *ConditionDrawer) Init(p *Property) error {
	if cd.hide {
		a, _ := Attribute[*attrs.HideIf](p)
		cd.condition, cd.value, cd.owner = a.Condition, a.Value, attributeOwner(p, a)
	} else {
		a, _ := Attribute[*attrs.ShowIf](p)
		cd.condition, cd.value, cd.owner = a.Condition, a.Value, attributeOwner(p, a)
	}
	if !hasMember(cd.owner.ValueType(), cd.condition) {
		return &ResolutionError{Path: p.path, Err: fmt.Errorf("condition %q: %v has no field or method %s: %w", cd.condition, cd.owner.ValueType(), cd.condition, ErrNotFound)}
	}
	return nil
}

// met returns whether the condition holds for any target.
func (cd *ConditionDrawer) met() bool {
	want := cd.value
	if want == nil {
		want = true
	}
	e := cd.owner.entry
	for i := range e.ValueCount() {
		v, err := memberOf(e.Value(i), cd.condition)
		if err != nil {
			continue
		}
		w, err := reflectx.ToType(want, v.Type())
		if err == nil && reflectx.Equal(v, w) {
			return true
		}
	}
	return false
}

func (cd *ConditionDrawer) Draw(c *DrawContext, label string) {
	if cd.met() != cd.hide {
		c.CallNext(label)
	}
}

// OnValueChangedDrawer calls the method named by an [attrs.OnValueChanged]
// on the owner of the property for each target changed through it.
type OnValueChangedDrawer struct {
	remove func()
	busy   bool
}

func (od *OnValueChangedDrawer) Init(p *Property) error {
	a, _ := Attribute[*attrs.OnValueChanged](p)
	owner := attributeOwner(p, a)
	m, ok := reflect.PointerTo(reflectx.NonPointerType(owner.ValueType())).MethodByName(a.Method)
	if !ok || m.Type.NumIn() != 1 {
		return &ResolutionError{Path: p.path, Err: fmt.Errorf("on value changed: %v has no method %s without arguments: %w", owner.ValueType(), a.Method, ErrNotFound)}
	}
	od.remove = p.entry.OnValueChanged(func(i int) {
		if od.busy {
			return
		}
		od.busy = true
		defer func() { od.busy = false }()
		err := withOwner(owner, i, func(pv reflect.Value) error {
			pv.MethodByName(a.Method).Call(nil)
			return nil
		})
		if err != nil {
			p.tree.logger.Warn("inspector: on value changed", "path", p.path, "method", a.Method, "err", err)
		}
	})
	return nil
}

func (od *OnValueChangedDrawer) Draw(c *DrawContext, label string) {
	c.CallNext(label)
}

func (od *OnValueChangedDrawer) Dispose() {
	if od.remove != nil {
		od.remove()
		od.remove = nil
	}
}

// withOwner calls the given function with a pointer to the value of the
// given property for the given target. Values that cannot be changed in
// place are copied, and the copy is written back if the function succeeds.
func withOwner(owner *Property, i int, fun func(pv reflect.Value) error) error {
	v := owner.entry.Value(i)
	if !v.IsValid() {
		return ErrUnavailable
	}
	if reflectx.WritableInPlace(v) {
		return fun(reflectx.OnePointerValue(v))
	}
	cp := reflectx.AddressableCopy(v)
	if err := fun(cp.Addr()); err != nil {
		return err
	}
	return owner.entry.SetValue(i, cp)
}

// LabelTextDrawer replaces the label with the text of an [attrs.LabelText].
type LabelTextDrawer struct {
	text string
}

func (ld *LabelTextDrawer) Init(p *Property) error {
	a, _ := Attribute[*attrs.LabelText](p)
	ld.text = a.Text
	return nil
}

func (ld *LabelTextDrawer) Draw(c *DrawContext, label string) {
	c.CallNext(ld.text)
}

// GroupDrawer draws the properties in the group started by an
// [attrs.BeginGroup] inside a group of the painter, and makes them skip
// their own next draw. Groups of kind "foldout" can be collapsed.
type GroupDrawer struct {
	group *attrs.BeginGroup
}

func (gd *GroupDrawer) Init(p *Property) error {
	gd.group, _ = Attribute[*attrs.BeginGroup](p)
	return nil
}

func (gd *GroupDrawer) Draw(c *DrawContext, label string) {
	p, pt := c.Property, c.Painter
	members := p.GroupProperties(gd.group.Kind)
	for _, q := range members[1:] {
		q.SkipDrawCount++
	}
	if gd.group.Kind == "foldout" {
		expanded := Context(p, "group", gd.group.Name, p.tree.settings.DefaultExpanded)
		*expanded = pt.Foldout(gd.group.Name, *expanded)
		if !*expanded {
			return
		}
	}
	pt.BeginGroup(gd.group.Kind, gd.group.Name)
	c.CallNext(label)
	for _, q := range members[1:] {
		q.SkipDrawCount--
		q.Draw(pt, q.Label())
		q.SkipDrawCount++
	}
	pt.EndGroup()
}

// ButtonDrawer draws a method with an [attrs.Button] as a button
// that calls it on every target.
type ButtonDrawer struct {
	label string
}

func (bd *ButtonDrawer) Init(p *Property) error {
	a, _ := Attribute[*attrs.Button](p)
	bd.label = a.Label
	if p.ValueType().NumIn() != 0 {
		return &ResolutionError{Path: p.path, Err: fmt.Errorf("button methods cannot have arguments: %w", ErrUnsupported)}
	}
	return nil
}

func (bd *ButtonDrawer) Draw(c *DrawContext, label string) {
	if bd.label != "" {
		label = bd.label
	}
	if !c.Painter.Button(label) {
		return
	}
	p := c.Property
	InvokeMethod(p)
}

// InvokeMethod calls the method of the given property on every target
// that has it available, and makes the tree re-read all values. Methods
// of values that cannot be changed in place are called on a copy, which
// is written back to the owner. A method that panics is logged, and its
// copy is not written back.
func InvokeMethod(p *Property) {
	ma, isMethod := p.info.Accessor.(*MethodAccessor)
	for i := range p.entry.ValueCount() {
		var err error
		if isMethod && p.parent != nil {
			err = withOwner(p.parent, i, func(pv reflect.Value) error {
				return callMethod(pv.MethodByName(ma.method.Name))
			})
		} else {
			err = callMethod(p.entry.Value(i))
		}
		if err != nil && !errors.Is(err, ErrUnavailable) {
			p.tree.logger.Warn("inspector: invoke method", "path", p.path, "target", i, "err", err)
		}
	}
	p.tree.root.markStale()
}

// callMethod calls the given method value without arguments,
// returning a panic in it as an error.
func callMethod(m reflect.Value) (err error) {
	if !m.IsValid() || m.Kind() != reflect.Func {
		return ErrUnavailable
	}
	defer func() {
		if r := recover(); r != nil {
			err = errors.FromPanic(r)
		}
	}()
	m.Call(nil)
	return nil
}

// NumberDrawer draws a number field whose edits are constrained
// by an [attrs.NumberDrawerSettings].
type NumberDrawer struct {
	settings *attrs.NumberDrawerSettings
}

func (nd *NumberDrawer) Init(p *Property) error {
	nd.settings, _ = Attribute[*attrs.NumberDrawerSettings](p)
	return nil
}

func (nd *NumberDrawer) Draw(c *DrawContext, label string) {
	p := c.Property
	nv, ok := drawField(c, label)
	if !ok {
		return
	}
	fv, err := reflectx.ToType(nv, reflect.TypeFor[float64]())
	if err != nil {
		p.tree.logger.Warn("inspector: number field", "path", p.path, "err", err)
		return
	}
	v, err := reflectx.ToType(nd.settings.Clamp(fv.Float()), reflectx.NonPointerType(p.ValueType()))
	if err == nil {
		err = p.entry.SetAll(v)
	}
	if err != nil {
		p.tree.logger.Warn("inspector: number field", "path", p.path, "err", err)
	}
}

// drawField draws a field for the values of the property, with the
// conflict placeholder if they are conflicted, and returns the edited
// value converted to the value type, if there is one.
func drawField(c *DrawContext, label string) (reflect.Value, bool) {
	p := c.Property
	e := p.entry
	var value any
	mixed := e.IsConflicted()
	if mixed {
		value = p.tree.settings.ConflictPlaceholder
	} else if v, ok := e.SmartValue(); ok {
		value = v
	}
	nv, edited := c.Painter.Field(label, value, mixed)
	if !edited {
		return reflect.Value{}, false
	}
	v, err := ParseInput(nv, p.ValueType())
	if err != nil {
		p.tree.logger.Warn("inspector: invalid input", "path", p.path, "input", nv, "err", err)
		return reflect.Value{}, false
	}
	return v, true
}

// ParseInput converts the given input to the given type. Text input for
// values of other types is parsed as YAML, so that "3" is a number and
// "[1, 2]" is a list.
func ParseInput(input any, typ reflect.Type) (reflect.Value, error) {
	if s, ok := input.(string); ok && reflectx.NonPointerType(typ).Kind() != reflect.String && typ.Kind() != reflect.Interface {
		pv := reflect.New(typ)
		if err := yaml.Unmarshal([]byte(s), pv.Interface()); err != nil {
			return reflect.Value{}, err
		}
		return pv.Elem(), nil
	}
	return reflectx.ToType(input, typ)
}

// CompositeDrawer draws a property with children as a foldout
// with its children inside.
type CompositeDrawer struct{}

func (cd *CompositeDrawer) Init(p *Property) error { return nil }

func (cd *CompositeDrawer) Draw(c *DrawContext, label string) {
	p, pt := c.Property, c.Painter
	if p.entry.State() == ValuesUnavailable {
		pt.Label(label, "None")
		return
	}
	st := p.State()
	st.SetExpanded(pt.Foldout(label, st.Expanded()))
	if !st.Expanded() || p.children == nil {
		return
	}
	pt.BeginGroup("children", label)
	for i := 0; i < p.children.Len(); i++ {
		q := p.children.Get(i)
		q.Draw(pt, q.Label())
	}
	pt.EndGroup()
}

// PrimitiveDrawer draws a property without children as one field,
// whose edits are applied to all targets.
type PrimitiveDrawer struct{}

func (pd *PrimitiveDrawer) Init(p *Property) error { return nil }

func (pd *PrimitiveDrawer) Draw(c *DrawContext, label string) {
	p := c.Property
	if p.entry.State() == ValuesUnavailable {
		c.Painter.Label(label, "None")
		return
	}
	v, ok := drawField(c, label)
	if !ok {
		return
	}
	if err := p.entry.SetAll(v); err != nil {
		p.tree.logger.Warn("inspector: setting value", "path", p.path, "err", err)
	}
}

// ErrorDrawer draws an error as a message.
type ErrorDrawer struct {
	Err error
}

func (ed *ErrorDrawer) Init(p *Property) error { return nil }

func (ed *ErrorDrawer) Draw(c *DrawContext, label string) {
	text := ed.Err.Error()
	if label != "" {
		text = label + ": " + text
	}
	c.Painter.MessageBox(text, MessageError)
}
