package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type component struct {
	id Identity
}

func (c *component) NotificationIdentity() Identity { return c.id }

func TestNewIdentity_Unique(t *testing.T) {
	seen := make(map[Identity]struct{})
	for i := 0; i < 1000; i++ {
		id := NewIdentity()
		require.False(t, id.IsAny(), "NewIdentity 不应返回 AnySender")
		_, dup := seen[id]
		require.False(t, dup, "重复身份 %s", id)
		seen[id] = struct{}{}
	}
}

func TestIdentity_String(t *testing.T) {
	assert.Equal(t, "*", AnySender.String())
	assert.Equal(t, "obj-42", Identity(42).String())
}

func TestIdentitiesOf(t *testing.T) {
	a := &component{id: NewIdentity()}
	b := &component{id: NewIdentity()}

	ids := IdentitiesOf([]*component{a, b})
	assert.Equal(t, []Identity{a.id, b.id}, ids)
	assert.Len(t, NewIdentities(3), 3)
}

func TestPayload_Clone(t *testing.T) {
	var empty Payload
	assert.Nil(t, empty.Clone())

	p := Payload{"value": 5}
	c := p.Clone()
	c["value"] = 6
	v, ok := p.Get("value")
	require.True(t, ok)
	assert.Equal(t, 5, v)
}
