package patch

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type name struct {
	BN string `json:"bn"`
	EN string `json:"en"`
}

func TestBuild_ExcludesIdentity(t *testing.T) {
	u, err := Build("products", []Field{
		{Column: "id", Kind: Scalar, Value: "x"},
		{Column: "name", Kind: Structured, Value: name{BN: "নাম", EN: "Name"}},
	})

	require.NoError(t, err)
	assert.Equal(t, "name = ?", u.SetClause)
	assert.NotContains(t, u.Columns(), "id")
	assert.Equal(t, []any{`{"bn":"নাম","en":"Name"}`}, u.Args)
}

func TestBuild_OnlyIdentityFails(t *testing.T) {
	_, err := Build("products", []Field{{Column: "id", Kind: Scalar, Value: "x"}})
	assert.ErrorIs(t, err, ErrNoFields)

	_, err = Build("products", nil)
	assert.ErrorIs(t, err, ErrNoFields)
}

func TestBuild_KindsAndOrder(t *testing.T) {
	u, err := Build("products", []Field{
		{Column: "slug", Kind: Scalar, Value: "fashion-store-pro"},
		{Column: "features", Kind: Structured, Value: map[string][]string{"en": {"Wishlist"}}},
		{Column: "is_featured", Kind: Boolean, Value: true},
		{Column: "is_active", Kind: Boolean, Value: false},
	})

	require.NoError(t, err)
	assert.Equal(t, "slug = ?, features = ?, is_featured = ?, is_active = ?", u.SetClause)
	assert.Equal(t, []any{"fashion-store-pro", `{"en":["Wishlist"]}`, 1, 0}, u.Args)
	assert.Equal(t, "UPDATE products SET slug = ?, features = ?, is_featured = ?, is_active = ? WHERE id = ?", u.Statement())
	assert.Equal(t, []any{"fashion-store-pro", `{"en":["Wishlist"]}`, 1, 0, "p1"}, u.ArgsWithID("p1"))
}

func TestBuild_RejectsUnsafeNames(t *testing.T) {
	_, err := Build("products; DROP TABLE x", []Field{{Column: "slug", Value: "a"}})
	assert.Error(t, err)

	_, err = Build("products", []Field{{Column: "slug = 1 --", Value: "a"}})
	assert.Error(t, err)
}

func TestTruthy(t *testing.T) {
	tr := true
	cases := []struct {
		in   any
		want bool
	}{
		{nil, false},
		{true, true},
		{false, false},
		{&tr, true},
		{1, true},
		{0, false},
		{int64(2), true},
		{0.0, false},
		{"1", true},
		{"true", true},
		{"on", true},
		{"0", false},
		{"false", false},
		{"", false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Truthy(c.in), "Truthy(%#v)", c.in)
	}
}

func TestSet(t *testing.T) {
	slug := "gift-shop"
	var missing *string

	fields := Set(nil, "slug", Scalar, &slug)
	fields = Set(fields, "thumbnail", Scalar, missing)

	require.Len(t, fields, 1)
	assert.Equal(t, Field{Column: "slug", Kind: Scalar, Value: "gift-shop"}, fields[0])
}

func TestFlag_UnmarshalJSON(t *testing.T) {
	var out struct {
		A Flag `json:"a"`
		B Flag `json:"b"`
		C Flag `json:"c"`
		D Flag `json:"d"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":1,"b":"true","c":false,"d":0}`), &out))

	assert.True(t, bool(out.A))
	assert.True(t, bool(out.B))
	assert.False(t, bool(out.C))
	assert.False(t, bool(out.D))
	assert.True(t, Truthy(Flag(true)))
}
