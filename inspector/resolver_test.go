// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inspector

import (
	"reflect"
	"slices"
	"testing"

	"cogentcore.org/inspect/attrs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func childNames(p *Property) []string {
	var names []string
	for _, c := range p.Children().All() {
		names = append(names, c.Name())
	}
	return names
}

func TestGenericMembers(t *testing.T) {
	tr := newTestTree(t, targetsOf(newPlayers(1)))
	assert.Equal(t, []string{"Name", "Health", "Stats", "Tags", "Nums", "Pos", "Scores", "Pet", "Level", "Heal"}, childNames(tr.Root()))

	heal := find(t, tr, "Heal")
	assert.True(t, heal.Info().IsMethod())
	assert.False(t, heal.IsSelfReadOnly())
	_, err := tr.Find("Skip")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = tr.Find("secret")
	assert.ErrorIs(t, err, ErrNotFound)
}

type base struct {
	ID int
}

type derived struct {
	base
	Extra  string
	hidden int
	Shown  chan int `inspect:"show"`
}

func TestEmbeddedAndShown(t *testing.T) {
	tr := newTestTree(t, []any{&derived{base: base{ID: 4}}})
	assert.Equal(t, []string{"ID", "Extra", "Shown"}, childNames(tr.Root()))
	id := find(t, tr, "ID")
	require.NoError(t, id.ValueEntry().SetValue(0, 5))
	assert.Equal(t, 5, tr.Targets()[0].(*derived).ID)
}

type computed struct {
	Width, Height float64
}

func init() {
	AddAccessor(reflect.TypeFor[computed](), "Area", NewFuncAccessor(func(c *computed) float64 { return c.Width * c.Height }, nil))
	AddAccessor(reflect.TypeFor[computed](), "Square", NewFuncAccessor(
		func(c *computed) float64 { return c.Width },
		func(c *computed, v float64) { c.Width, c.Height = v, v }), &attrs.LabelText{Text: "Side"})
}

func TestRegisteredAccessors(t *testing.T) {
	c := &computed{Width: 2, Height: 3}
	tr := newTestTree(t, []any{c})
	assert.Equal(t, []string{"Width", "Height", "Area", "Square"}, childNames(tr.Root()))

	area := find(t, tr, "Area")
	assert.Equal(t, 6.0, area.ValueEntry().Value(0).Float())
	assert.True(t, area.IsReadOnly())
	assert.ErrorIs(t, area.ValueEntry().SetValue(0, 1.0), ErrUnsupported)

	sq := find(t, tr, "Square")
	require.NoError(t, sq.ValueEntry().SetValue(0, 4))
	assert.Equal(t, computed{Width: 4, Height: 4}, *c)
	tr.Update(false)
	assert.Equal(t, 16.0, area.ValueEntry().Value(0).Float())
	la, ok := Attribute[*attrs.LabelText](sq)
	assert.True(t, ok)
	assert.Equal(t, "Side", la.Text)
}

type failing struct {
	err error
}

func TestFuncAccessorInterface(t *testing.T) {
	acc := NewFuncAccessor(func(f *failing) error { return f.err }, func(f *failing, err error) { f.err = err })
	f := &failing{}
	v, err := acc.Get(reflect.ValueOf(f))
	require.NoError(t, err)
	assert.True(t, v.IsNil())

	set := &UnsupportedError{Op: "set"}
	require.NoError(t, acc.Set(reflect.ValueOf(f), reflect.ValueOf(set)))
	assert.Same(t, set, f.err)
	require.NoError(t, acc.Set(reflect.ValueOf(f), reflect.Value{}))
	assert.Nil(t, f.err)
}

func TestTreeAccessors(t *testing.T) {
	reg := NewAccessors()
	c := &computed{Width: 2, Height: 3}
	tr := newTestTree(t, []any{c}, WithAccessors(reg))
	assert.Equal(t, []string{"Width", "Height"}, childNames(tr.Root()))

	reg.Add(reflect.TypeFor[*computed](), "Perimeter", NewFuncAccessor(func(c *computed) float64 { return 2 * (c.Width + c.Height) }, nil))
	tr.Root().Refresh()
	tr.Update(false)
	assert.Equal(t, []string{"Width", "Height", "Perimeter"}, childNames(tr.Root()))
	assert.Equal(t, 10.0, find(t, tr, "Perimeter").ValueEntry().Value(0).Float())

	other := newTestTree(t, []any{c})
	assert.Equal(t, []string{"Width", "Height", "Area", "Square"}, childNames(other.Root()))
}

func TestListQueue(t *testing.T) {
	ps := newPlayers(1)
	tr := newTestTree(t, targetsOf(ps))
	tags := find(t, tr, "Tags")
	cr, ok := tags.Collection()
	require.True(t, ok)
	assert.True(t, cr.Ordered())
	assert.Equal(t, reflect.TypeFor[string](), cr.ElementType())

	require.NoError(t, cr.QueueInsertAt(0, 2, "v"))
	require.NoError(t, cr.QueueRemoveAt(0, 0))
	assert.True(t, cr.HasPendingChanges())
	assert.Equal(t, []string{"a", "b", "c"}, ps[0].Tags)

	changed, err := tr.ApplyChanges()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.False(t, cr.HasPendingChanges())
	assert.Equal(t, []string{"b", "v", "c"}, ps[0].Tags)
	assert.Equal(t, 3, tags.Children().Len())
	assert.Equal(t, "v", tags.Children().Get(1).ValueEntry().Value(0).String())

	changed, err = tr.ApplyChanges()
	assert.NoError(t, err)
	assert.False(t, changed)
}

func TestListInsertAllTargets(t *testing.T) {
	ps := newPlayers(2)
	tr := newTestTree(t, targetsOf(ps))
	nums := find(t, tr, "Nums")
	cr, _ := nums.Collection()
	for i := range 2 {
		require.NoError(t, cr.QueueInsertAt(i, 1, 9))
	}
	_, err := tr.ApplyChanges()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 9, 2, 3}, ps[0].Nums)
	assert.Equal(t, []int{1, 9, 2, 3}, ps[1].Nums)

	for i := range 2 {
		require.NoError(t, cr.QueueAdd(i, 4))
		require.NoError(t, cr.QueueRemove(i, 9))
		require.NoError(t, cr.QueueMove(i, 0, 3))
	}
	_, err = tr.ApplyChanges()
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 4, 1}, ps[1].Nums)

	require.NoError(t, cr.QueueInsertAt(0, 10, 1))
	_, err = tr.ApplyChanges()
	assert.Error(t, err)
	assert.Error(t, cr.QueueInsertAt(2, 0, 1))
	assert.Error(t, cr.QueueAdd(0, "x"))
}

func TestListMinLength(t *testing.T) {
	ps := newPlayers(2)
	ps[1].Nums = ps[1].Nums[:2]
	tr := newTestTree(t, targetsOf(ps))
	assert.Equal(t, 2, find(t, tr, "Nums").Children().Len())

	ps[1].Nums = nil
	tr.Update(false)
	assert.Equal(t, 0, find(t, tr, "Nums").Children().Len())
}

func TestListSharedBacking(t *testing.T) {
	shared := make([]int, 2, 10)
	ps := newPlayers(2)
	ps[0].Nums, ps[1].Nums = shared, shared
	tr := newTestTree(t, targetsOf(ps))
	cr, _ := find(t, tr, "Nums").Collection()
	require.NoError(t, cr.QueueAdd(0, 7))
	require.NoError(t, cr.QueueAdd(1, 8))
	_, err := tr.ApplyChanges()
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 7}, ps[0].Nums)
	assert.Equal(t, []int{0, 0, 8}, ps[1].Nums)
}

func TestArrayResolver(t *testing.T) {
	ps := newPlayers(1)
	tr := newTestTree(t, targetsOf(ps))
	pos := find(t, tr, "Pos")
	cr, ok := pos.Collection()
	require.True(t, ok)
	assert.ErrorIs(t, cr.QueueAdd(0, 1), ErrUnsupported)
	assert.ErrorIs(t, cr.QueueInsertAt(0, 0, 1), ErrUnsupported)
	assert.ErrorIs(t, cr.QueueRemoveAt(0, 0), ErrUnsupported)
	assert.ErrorIs(t, cr.QueueRemove(0, 1), ErrUnsupported)
	_, err := pos.ChildrenResolver().ChildNameToIndex("[0]")
	assert.ErrorIs(t, err, ErrUnsupported)

	require.NoError(t, cr.QueueMove(0, 0, 2))
	_, err = tr.ApplyChanges()
	require.NoError(t, err)
	assert.Equal(t, [3]int{2, 3, 1}, ps[0].Pos)

	require.NoError(t, find(t, tr, "Pos[1]").ValueEntry().SetValue(0, 5))
	assert.Equal(t, [3]int{2, 5, 1}, ps[0].Pos)
}

func TestMapResolver(t *testing.T) {
	ps := newPlayers(2)
	ps[0].Scores = map[string]int{"a": 1, "b": 2}
	ps[1].Scores = map[string]int{"b": 3, "c": 4}
	tr := newTestTree(t, targetsOf(ps))
	scores := find(t, tr, "Scores")
	assert.Equal(t, []string{"[b]"}, childNames(scores))
	assert.True(t, find(t, tr, "Scores[b]").ValueEntry().IsConflicted())

	byName, err := scores.Children().ByName("b")
	require.NoError(t, err)
	assert.Equal(t, "Scores[b]", byName.Path())

	cr, _ := scores.Collection()
	assert.False(t, cr.Ordered())
	assert.ErrorIs(t, cr.QueueInsertAt(0, 0, 1), ErrUnsupported)
	assert.ErrorIs(t, cr.QueueRemoveAt(0, 0), ErrUnsupported)
	assert.ErrorIs(t, cr.QueueMove(0, 0, 1), ErrUnsupported)
	assert.Error(t, cr.QueueAdd(0, 5))

	for i := range 2 {
		require.NoError(t, cr.QueueAdd(i, MapEntry{Key: "d", Value: 5}))
		require.NoError(t, cr.QueueRemove(i, "b"))
	}
	_, err = tr.ApplyChanges()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a": 1, "d": 5}, ps[0].Scores)
	assert.Equal(t, []string{"[d]"}, childNames(scores))

	require.NoError(t, cr.QueueAdd(0, MapEntry{Key: "d", Value: 6}))
	_, err = tr.ApplyChanges()
	assert.Error(t, err)
	_, err = scores.Children().ByName("zz")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMapNilCreated(t *testing.T) {
	ps := newPlayers(1)
	tr := newTestTree(t, targetsOf(ps))
	cr, _ := find(t, tr, "Scores").Collection()
	require.NoError(t, cr.QueueAdd(0, MapEntry{Key: "x", Value: 1}))
	_, err := tr.ApplyChanges()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"x": 1}, ps[0].Scores)
}

func TestMapInterfaceKeys(t *testing.T) {
	type lookup struct {
		Keys map[any]int
	}
	lk := &lookup{Keys: map[any]int{1: 10, "1": 20, 1.5: 30}}
	tr := newTestTree(t, []any{lk})
	assert.Equal(t, []string{`["1"]`, "[1]", "[float64(1.5)]"}, childNames(find(t, tr, "Keys")))
	assert.Equal(t, 10, find(t, tr, "Keys[1]").ValueEntry().Value(0).Interface())
	assert.Equal(t, 20, find(t, tr, `Keys["1"]`).ValueEntry().Value(0).Interface())

	require.NoError(t, find(t, tr, `Keys["1"]`).ValueEntry().SetValue(0, 25))
	assert.Equal(t, map[any]int{1: 10, "1": 25, 1.5: 30}, lk.Keys)
}

func TestReadOnlyCollection(t *testing.T) {
	type locked struct {
		Items []int `inspect:"readonly"`
	}
	tr := newTestTree(t, []any{&locked{Items: []int{1}}})
	cr, _ := find(t, tr, "Items").Collection()
	assert.True(t, cr.ReadOnly())
	assert.ErrorIs(t, cr.QueueAdd(0, 2), ErrUnsupported)
	assert.True(t, find(t, tr, "Items[0]").IsReadOnly())
}

func TestResolverLocator(t *testing.T) {
	_, err := NewTree([]any{3})
	require.NoError(t, err)
	tr := newTestTree(t, []any{3})
	assert.ErrorIs(t, tr.Root().Err(), ErrUnsupported)
	var re *ResolutionError
	assert.ErrorAs(t, tr.Root().Err(), &re)

	rl := NewResolverLocator().Register(reflect.TypeFor[stats](), func() PropertyResolver { return &ListResolver{} })
	tr = newTestTree(t, targetsOf(newPlayers(1)), WithResolvers(rl))
	st := find(t, tr, "Stats")
	assert.ErrorAs(t, st.Err(), &re)
	assert.Nil(t, st.Children())
}

func TestCustomChildrenResolver(t *testing.T) {
	tr := newTestTree(t, targetsOf(newPlayers(1)))
	st := find(t, tr, "Stats")
	assert.Equal(t, []string{"Speed", "Armor"}, childNames(st))
	st.SetChildrenResolver(&GenericResolver{})
	tr.Update(false)
	_, ok := st.ChildrenResolver().(*GenericResolver)
	assert.True(t, ok)
	assert.Equal(t, []string{"Speed", "Armor"}, childNames(st))
}

func TestQueueModel(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		start := rapid.SliceOfN(rapid.IntRange(0, 9), 0, 6).Draw(rt, "init")
		ps := newPlayers(1)
		ps[0].Nums = slices.Clone(start)
		tr, err := NewTree(targetsOf(ps))
		if err != nil {
			rt.Fatal(err)
		}
		defer tr.Close()
		nums, err := tr.Find("Nums")
		if err != nil {
			rt.Fatal(err)
		}
		cr, _ := nums.Collection()
		model := slices.Clone(start)
		nops := rapid.IntRange(1, 8).Draw(rt, "nops")
		for range nops {
			switch rapid.IntRange(0, 3).Draw(rt, "op") {
			case 0:
				v := rapid.IntRange(0, 9).Draw(rt, "v")
				cr.QueueAdd(0, v)
				model = append(model, v)
			case 1:
				i := rapid.IntRange(0, len(model)).Draw(rt, "i")
				v := rapid.IntRange(0, 9).Draw(rt, "v")
				cr.QueueInsertAt(0, i, v)
				model = slices.Insert(model, i, v)
			case 2:
				if len(model) == 0 {
					continue
				}
				i := rapid.IntRange(0, len(model)-1).Draw(rt, "i")
				cr.QueueRemoveAt(0, i)
				model = slices.Delete(model, i, i+1)
			case 3:
				if len(model) == 0 {
					continue
				}
				from := rapid.IntRange(0, len(model)-1).Draw(rt, "from")
				to := rapid.IntRange(0, len(model)-1).Draw(rt, "to")
				cr.QueueMove(0, from, to)
				v := model[from]
				model = slices.Insert(slices.Delete(model, from, from+1), to, v)
			}
		}
		if _, err := tr.ApplyChanges(); err != nil {
			rt.Fatal(err)
		}
		if !slices.Equal(model, ps[0].Nums) && (len(model) > 0 || len(ps[0].Nums) > 0) {
			rt.Fatalf("got %v, want %v", ps[0].Nums, model)
		}
		if nums.Children().Len() != len(model) {
			rt.Fatalf("%d children for %d elements", nums.Children().Len(), len(model))
		}
	})
}
