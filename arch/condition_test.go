package arch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConditionPasses(t *testing.T) {
	type flags struct{ n, z, c, v bool }

	cases := []struct {
		cond Condition
		in   flags
		want bool
	}{
		{Eq, flags{z: true}, true},
		{Eq, flags{}, false},
		{Ne, flags{}, true},
		{Ne, flags{z: true}, false},
		{Cs, flags{c: true}, true},
		{Cc, flags{c: true}, false},
		{Mi, flags{n: true}, true},
		{Pl, flags{n: true}, false},
		{Vs, flags{v: true}, true},
		{Vc, flags{}, true},
		{Hi, flags{c: true}, true},
		{Hi, flags{c: true, z: true}, false},
		{Ls, flags{z: true}, true},
		{Ls, flags{c: true}, false},
		{Ge, flags{n: true, v: true}, true},
		{Ge, flags{n: true}, false},
		{Lt, flags{v: true}, true},
		{Lt, flags{}, false},
		{Gt, flags{}, true},
		{Gt, flags{z: true}, false},
		{Le, flags{z: true}, true},
		{Le, flags{n: true}, true},
		{Le, flags{}, false},
		{Al, flags{}, true},
		{Al, flags{n: true, z: true, c: true, v: true}, true},
		{Nv, flags{}, false},
		{Nv, flags{n: true, z: true, c: true, v: true}, false},
	}

	for _, c := range cases {
		have := c.cond.Passes(c.in.n, c.in.z, c.in.c, c.in.v)
		assert.Equal(t, c.want, have, "%s with %+v", c.cond, c.in)
	}
}

func TestRegisterString(t *testing.T) {
	assert.Equal(t, "R0", R0.String())
	assert.Equal(t, "R12", R12.String())
	assert.Equal(t, "SP", SP.String())
	assert.Equal(t, "LR", LR.String())
	assert.Equal(t, "PC", PC.String())
}

func TestRegisterList(t *testing.T) {
	list := RegisterList(0b10100101)

	assert.Equal(t, 4, list.Len())
	assert.Equal(t, []Register{R0, R2, R5, R7}, list.Registers())

	assert.Equal(t, 0, RegisterList(0).Len())
	assert.Empty(t, RegisterList(0).Registers())
}
