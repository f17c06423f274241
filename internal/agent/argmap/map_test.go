package argmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap_ZeroValue(t *testing.T) {
	var m Map

	assert.Equal(t, 0, m.Len())
	assert.Empty(t, m.Keys())
	assert.Empty(t, m.AsMap())

	_, ok := m.Get("port")
	assert.False(t, ok)
	assert.True(t, m.Equal(Map{}))
}

func TestMap_TypedAccessors(t *testing.T) {
	m, err := Parse("host=h,port=5556,load=0.5")
	require.NoError(t, err)

	_, ok := m.Int("host")
	assert.False(t, ok, "text value is not an integer")

	_, ok = m.Text("port")
	assert.False(t, ok, "integer value is not text")

	load, ok := m.Float("load")
	assert.True(t, ok)
	assert.Equal(t, float32(0.5), load)

	_, ok = m.Float("missing")
	assert.False(t, ok)
}

func TestMap_CopiesDoNotLeak(t *testing.T) {
	m, err := Parse("host=h,port=1")
	require.NoError(t, err)

	plain := m.AsMap()
	plain["host"] = "changed"
	delete(plain, "port")

	keys := m.Keys()
	keys[0] = "changed"

	host, _ := m.Text("host")
	assert.Equal(t, "h", host)
	assert.Equal(t, []string{"host", "port"}, m.Keys())
}

func TestMap_Each(t *testing.T) {
	m, err := Parse("port=1,dt=2,host=h")
	require.NoError(t, err)

	var got []string
	m.Each(func(key string, v Value) {
		got = append(got, key+"="+v.String())
	})

	assert.Equal(t, []string{"dt=2", "host=h", "port=1"}, got)
}

func TestMap_EqualDistinguishesKinds(t *testing.T) {
	a, err := Parse("port=1")
	require.NoError(t, err)
	b, err := Parse("other=1")
	require.NoError(t, err)

	assert.False(t, a.Equal(b))
	assert.False(t, TextValue("1") == IntValue(1))
}

func TestValue_String(t *testing.T) {
	assert.Equal(t, "5556", IntValue(5556).String())
	assert.Equal(t, "0.5", FloatValue(0.5).String())
	assert.Equal(t, "my.host", TextValue("my.host").String())
	assert.Equal(t, "integer", KindInt.String())
	assert.Equal(t, "float", KindFloat.String())
	assert.Equal(t, "text", KindText.String())
}
