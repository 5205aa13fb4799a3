package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	cases := map[string]string{
		"sarees":          "Saree",
		"SAREES":          "Saree",
		"salwar-kurti":    "Salwar Kurti",
		"nighty":          "Nighty",
		"pickle":          "Pickle",
		"organic-masalas": "Masala",
		"unknown-thing":   "unknown-thing",
		"":                "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Resolve(in), "slug %q", in)
	}
}

func TestSlugFor(t *testing.T) {
	s, ok := SlugFor("Salwar Kurti")
	require.True(t, ok)
	assert.Equal(t, "salwar-kurti", s)

	_, ok = SlugFor("Shoes")
	assert.False(t, ok)
}

func TestCompile(t *testing.T) {
	t.Run("price phrase and name", func(t *testing.T) {
		f := Compile("Saree under 500", "Saree")
		require.NotNil(t, f.MaxPrice)
		assert.Equal(t, "500", f.MaxPrice.String())
		assert.Equal(t, "saree", f.Name)
		assert.Equal(t, "Saree", f.Category)
	})

	t.Run("below without space", func(t *testing.T) {
		f := Compile("cotton below1200", "")
		require.NotNil(t, f.MaxPrice)
		assert.Equal(t, "1200", f.MaxPrice.String())
		assert.Equal(t, "cotton", f.Name)
	})

	t.Run("only the first phrase counts", func(t *testing.T) {
		f := Compile("under 300 under 900", "")
		require.NotNil(t, f.MaxPrice)
		assert.Equal(t, "300", f.MaxPrice.String())
		assert.Equal(t, "under 900", f.Name)
	})

	t.Run("no phrase", func(t *testing.T) {
		f := Compile("  Mango Pickle ", "Pickle")
		assert.Nil(t, f.MaxPrice)
		assert.Equal(t, "mango pickle", f.Name)
	})

	t.Run("phrase only", func(t *testing.T) {
		f := Compile("UNDER 250", "Nighty")
		require.NotNil(t, f.MaxPrice)
		assert.Equal(t, "250", f.MaxPrice.String())
		assert.Empty(t, f.Name)
	})

	t.Run("removal collapses surrounding spaces", func(t *testing.T) {
		f := Compile("red under 400 silk", "")
		assert.Equal(t, "red silk", f.Name)
	})

	t.Run("inner spacing kept without a phrase", func(t *testing.T) {
		f := Compile("silk  saree", "Saree")
		assert.Equal(t, "silk  saree", f.Name)
	})

	t.Run("only the splice is collapsed", func(t *testing.T) {
		f := Compile("red  silk   below 900   saree", "")
		assert.Equal(t, "red  silk saree", f.Name)
	})

	t.Run("empty input", func(t *testing.T) {
		f := Compile("", "Masala")
		assert.Nil(t, f.MaxPrice)
		assert.Empty(t, f.Name)
		assert.Equal(t, "Masala", f.Category)
	})
}

func TestFilterQueryOmitsEmptyFields(t *testing.T) {
	q := Compile("under 500", "").Query()
	assert.Equal(t, "maxPrice=500", q.Encode())

	q = Compile("silk", "Saree").Query()
	assert.Equal(t, "category=Saree&search=silk", q.Encode())

	q = Filter{}.Query()
	assert.Empty(t, q.Encode())
}
