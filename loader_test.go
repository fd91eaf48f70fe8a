package argonaut

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func parseForLoad(t *testing.T, src string) Node {
	t.Helper()
	p := NewParser()
	n, err := p.Parse([]byte(src))
	require.NoError(t, err)
	return n
}

func TestLoadScalars(t *testing.T) {
	b, err := Load[bool](parseForLoad(t, "true"))
	require.NoError(t, err)
	require.True(t, b)

	i, err := Load[int32](parseForLoad(t, "-42"))
	require.NoError(t, err)
	require.Equal(t, int32(-42), i)

	u, err := Load[uint64](parseForLoad(t, "42"))
	require.NoError(t, err)
	require.Equal(t, uint64(42), u)

	f, err := Load[float64](parseForLoad(t, "3.5e2"))
	require.NoError(t, err)
	require.Equal(t, 350.0, f)

	s, err := Load[string](parseForLoad(t, `"hi\nthere"`))
	require.NoError(t, err)
	require.Equal(t, "hi\nthere", s)
}

func TestLoadOptionalPointer(t *testing.T) {
	var out *int
	out, err := Load[*int](parseForLoad(t, "null"))
	require.NoError(t, err)
	require.Nil(t, out)

	out, err = Load[*int](parseForLoad(t, "7"))
	require.NoError(t, err)
	require.NotNil(t, out)
	require.Equal(t, 7, *out)
}

func TestLoadFixedArray(t *testing.T) {
	arr, err := Load[[3]int](parseForLoad(t, "[1, -2, 3]"))
	require.NoError(t, err)
	require.Equal(t, [3]int{1, -2, 3}, arr)

	_, err = Load[[2]int](parseForLoad(t, "[1,2,3]"))
	require.ErrorIs(t, err, ErrArraySizeMismatch)
}

func TestLoadSlice(t *testing.T) {
	s, err := Load[[]int32](parseForLoad(t, "[1, -2, 3]"))
	require.NoError(t, err)
	require.Equal(t, []int32{1, -2, 3}, s)
}

func TestLoadSliceFromMulti(t *testing.T) {
	p := NewParser()
	root, err := p.ParseMulti([]byte("1 2 3"))
	require.NoError(t, err)
	s, err := Load[[]int](root)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3}, s)
}

func TestLoadByteSlice(t *testing.T) {
	s, err := Load[[]byte](parseForLoad(t, `"hello"`))
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), s)

	s, err = Load[[]byte](parseForLoad(t, `"hi\nthere"`))
	require.NoError(t, err)
	require.Equal(t, []byte("hi\nthere"), s)
}

func TestLoadOwnedPointerToStruct(t *testing.T) {
	type Point struct {
		X int `json:"x"`
		Y int `json:"y"`
	}
	pt, err := Load[*Point](parseForLoad(t, `{"x":100,"y":200}`))
	require.NoError(t, err)
	require.Equal(t, &Point{X: 100, Y: 200}, pt)
}

func TestLoadStructByName(t *testing.T) {
	type Point struct {
		X int `json:"x"`
		Y int `json:"y"`
	}
	pt, err := Load[Point](parseForLoad(t, `{"x":100,"y":200}`))
	require.NoError(t, err)
	require.Equal(t, Point{X: 100, Y: 200}, pt)
}

func TestLoadStructWithDefaultField(t *testing.T) {
	type Point struct {
		X int `json:"x"`
		Y int `json:"y"`
		Z int `json:"z" default:"0"`
	}
	pt, err := Load[Point](parseForLoad(t, `{"z":300,"x":100,"y":200}`))
	require.NoError(t, err)
	require.Equal(t, Point{X: 100, Y: 200, Z: 300}, pt)

	pt, err = Load[Point](parseForLoad(t, `{"x":100,"y":200}`))
	require.NoError(t, err)
	require.Equal(t, Point{X: 100, Y: 200, Z: 0}, pt)
}

func TestLoadStructMissingRequiredField(t *testing.T) {
	type Point struct {
		X int `json:"x"`
		Y int `json:"y"`
	}
	_, err := Load[Point](parseForLoad(t, `{"x":100}`))
	require.ErrorIs(t, err, ErrMissingField)
}

func TestLoadStructOptionalPointerFieldAbsent(t *testing.T) {
	type Profile struct {
		Name string  `json:"name"`
		Bio  *string `json:"bio"`
	}
	p, err := Load[Profile](parseForLoad(t, `{"name":"Andy"}`))
	require.NoError(t, err)
	require.Equal(t, "Andy", p.Name)
	require.Nil(t, p.Bio)
}

func TestLoadStructIgnoresUnrecognisedFields(t *testing.T) {
	type Point struct {
		X int `json:"x"`
	}
	pt, err := Load[Point](parseForLoad(t, `{"x":1,"junk":"ignored"}`))
	require.NoError(t, err)
	require.Equal(t, Point{X: 1}, pt)
}

func TestLoadStructFromTuple(t *testing.T) {
	type Point struct {
		X int
		Y int
	}
	pt, err := Load[Point](parseForLoad(t, `[1,2]`))
	require.NoError(t, err)
	require.Equal(t, Point{X: 1, Y: 2}, pt)
}

func TestLoadStructFromTupleWithOptionalTail(t *testing.T) {
	type Point struct {
		X int
		Y int
		Z int `default:"9"`
	}
	pt, err := Load[Point](parseForLoad(t, `[1,2]`))
	require.NoError(t, err)
	require.Equal(t, Point{X: 1, Y: 2, Z: 9}, pt)

	_, err = Load[Point](parseForLoad(t, `[1]`))
	require.ErrorIs(t, err, ErrTupleSizeMismatch)
}

type direction int

const (
	directionNorth direction = iota
	directionSouth
	directionEast
	directionWest
)

var directionNames = map[string]direction{
	"north": directionNorth,
	"south": directionSouth,
	"east":  directionEast,
	"west":  directionWest,
	"\n":    directionNorth,
}

func (d *direction) ParseEnumName(name string) (int64, bool) {
	v, ok := directionNames[name]
	if !ok {
		return 0, false
	}
	return int64(v), true
}

func TestLoadEnum(t *testing.T) {
	d, err := Load[direction](parseForLoad(t, `"south"`))
	require.NoError(t, err)
	require.Equal(t, directionSouth, d)
}

func TestLoadEnumDecodesJSONStringFirst(t *testing.T) {
	d, err := Load[direction](parseForLoad(t, `"\n"`))
	require.NoError(t, err)
	require.Equal(t, directionNorth, d)
}

func TestLoadEnumUnknownValue(t *testing.T) {
	_, err := Load[direction](parseForLoad(t, `"up"`))
	require.True(t, errors.Is(err, ErrUnknownEnumValue))
}

func TestLoadNestedStructs(t *testing.T) {
	type Contact struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	type Envelope struct {
		ID Contact `json:"id"`
	}
	p := NewParser()
	root, err := p.Parse([]byte(`{"id":{"name":"Andy","email":"andy@example.com"}}`))
	require.NoError(t, err)
	env, err := Load[Envelope](root)
	require.NoError(t, err)
	require.Equal(t, Envelope{ID: Contact{Name: "Andy", Email: "andy@example.com"}}, env)
}

func TestLoadTypeMismatch(t *testing.T) {
	_, err := Load[bool](parseForLoad(t, "1"))
	require.ErrorIs(t, err, ErrTypeMismatch)
}
