package argonaut

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseScalars(t *testing.T) {
	for _, test := range []struct {
		input string
		kind  Kind
	}{
		{"null", KindNull},
		{"true", KindBool},
		{"false", KindBool},
		{"42", KindNumber},
		{"-42.5e10", KindNumber},
		{`"hello"`, KindSafeString},
		{`"hi\nthere"`, KindJSONString},
	} {
		t.Run(test.input, func(t *testing.T) {
			p := NewParser()
			n, err := p.Parse([]byte(test.input))
			require.NoError(t, err)
			require.Equal(t, test.kind, n.Kind())
		})
	}
}

func TestParseArray(t *testing.T) {
	p := NewParser()
	root, err := p.Parse([]byte(`[1,2,3]`))
	require.NoError(t, err)
	require.Equal(t, KindArray, root.Kind())
	values, err := root.ArrayValues()
	require.NoError(t, err)
	require.Len(t, values, 3)
	require.Equal(t, "1", string(values[0].Text()))
	require.Equal(t, "2", string(values[1].Text()))
	require.Equal(t, "3", string(values[2].Text()))
}

func TestParseEmptyArray(t *testing.T) {
	p := NewParser()
	root, err := p.Parse([]byte(`[]`))
	require.NoError(t, err)
	values, err := root.ArrayValues()
	require.NoError(t, err)
	require.Len(t, values, 0)
}

func TestParseEmptyObject(t *testing.T) {
	p := NewParser()
	root, err := p.Parse([]byte(`{}`))
	require.NoError(t, err)
	class, err := root.ObjectClass()
	require.NoError(t, err)
	require.Len(t, class.Names, 0)
}

func TestParseObject(t *testing.T) {
	p := NewParser()
	root, err := p.Parse([]byte(`{"tags":[1,2,3]}`))
	require.NoError(t, err)
	class, err := root.ObjectClass()
	require.NoError(t, err)
	require.Equal(t, []byte("tags"), class.Names[0])
	values, err := root.ObjectValues()
	require.NoError(t, err)
	require.Len(t, values, 1)
	arr, err := values[0].ArrayValues()
	require.NoError(t, err)
	require.Len(t, arr, 3)
}

func TestParseSharesClassAcrossRepeatedParses(t *testing.T) {
	p := NewParser()
	root1, err := p.Parse([]byte(`{"id":{"name":"Andy","email":"andy@example.com"}}`))
	require.NoError(t, err)
	outerClass1, _ := root1.ObjectClass()
	values1, _ := root1.ObjectValues()
	innerClass1, _ := values1[0].ObjectClass()

	root2, err := p.Parse([]byte(`{"id":{"name":"Smoo","email":"smoo@example.com"}}`))
	require.NoError(t, err)
	outerClass2, _ := root2.ObjectClass()
	values2, _ := root2.ObjectValues()
	innerClass2, _ := values2[0].ObjectClass()

	require.Same(t, outerClass1, outerClass2)
	require.Same(t, innerClass1, innerClass2)
}

func TestParseMultiSharesClassAcrossValues(t *testing.T) {
	p := NewParser()
	root, err := p.ParseMulti([]byte("{\"name\":\"Andy\"}\n{\"name\":\"Smoo\"}"))
	require.NoError(t, err)
	require.Equal(t, KindMulti, root.Kind())
	values, err := root.MultiValues()
	require.NoError(t, err)
	require.Len(t, values, 2)
	class1, _ := values[0].ObjectClass()
	class2, _ := values[1].ObjectClass()
	require.Same(t, class1, class2)
}

func TestParseMultiToleratesLeadingAndTrailingComma(t *testing.T) {
	p := NewParser()
	root, err := p.ParseMulti([]byte(",1,2,3,"))
	require.NoError(t, err)
	values, err := root.MultiValues()
	require.NoError(t, err)
	require.Len(t, values, 3)
}

func TestParseGrowsAssemblyBufferAndRestarts(t *testing.T) {
	p := NewParser()
	var sb strings.Builder
	sb.WriteByte('[')
	for i := 0; i < 200; i++ {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "%d", i)
	}
	sb.WriteByte(']')

	root, err := p.Parse([]byte(sb.String()))
	require.NoError(t, err)
	values, err := root.ArrayValues()
	require.NoError(t, err)
	require.Len(t, values, 200)
	require.Equal(t, "0", string(values[0].Text()))
	require.Equal(t, "199", string(values[199].Text()))
}

func TestParseErrors(t *testing.T) {
	for _, test := range []struct {
		input string
		want  error
	}{
		{"{", ErrUnexpectedEOF},
		{"[1,2,", ErrUnexpectedEOF},
		{`{ "a": 1 } junk`, ErrJunkAfterInput},
		{"[1 2]", ErrMissingComma},
		{`{"a" 1}`, ErrMissingColon},
		{`{1:2}`, ErrMissingKey},
		{`"unterminated`, ErrMissingQuotes},
		{"-", ErrMissingDigits},
		{"nope", ErrBadToken},
		{"@", ErrSyntax},
	} {
		t.Run(test.input, func(t *testing.T) {
			p := NewParser()
			_, err := p.Parse([]byte(test.input))
			require.Error(t, err)
			require.True(t, errors.Is(err, test.want), "expected %v got %v", test.want, err)
		})
	}
}

func TestParseOwnedSurvivesNextParse(t *testing.T) {
	p := NewParser()
	tree, err := p.ParseOwned(defaultAllocator{}, []byte(`[1,2,3]`))
	require.NoError(t, err)

	_, err = p.Parse([]byte(`{"a":1}`))
	require.NoError(t, err)

	values, err := tree.Root().ArrayValues()
	require.NoError(t, err)
	require.Len(t, values, 3)
}

func TestTakeAssemblyResetsParser(t *testing.T) {
	p := NewParser()
	_, err := p.Parse([]byte(`[1,2,3]`))
	require.NoError(t, err)

	tree := p.TakeAssembly()
	require.Len(t, tree.Nodes, 4) // root slot (the array) + its three number elements

	root2, err := p.Parse([]byte(`true`))
	require.NoError(t, err)
	got, err := root2.Bool()
	require.NoError(t, err)
	require.True(t, got)
}

func TestParserReentrancyPanics(t *testing.T) {
	p := NewParser()
	defer func() {
		require.NotNil(t, recover())
	}()
	p.parsing = true
	_, _ = p.Parse([]byte(`1`))
}

func TestParserDiagnostics(t *testing.T) {
	p := NewParser()
	_, err := p.Parse([]byte("[1,\n2 3]"))
	require.Error(t, err)
	require.Equal(t, 2, p.Line())
	require.Greater(t, p.Col(), 0)
}
