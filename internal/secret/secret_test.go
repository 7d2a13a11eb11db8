package secret

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const plain = "hunter2-correct-horse"

func TestValue_RevealReturnsPlaintext(t *testing.T) {
	v := New(plain)
	assert.Equal(t, plain, v.Reveal())
	assert.False(t, v.IsZero())
	assert.True(t, New("").IsZero())
}

func TestValue_FormattingNeverLeaks(t *testing.T) {
	v := New(plain)
	type holder struct {
		Password Value
		Ptr      *Value
	}
	h := holder{Password: v, Ptr: Ptr(plain)}

	outputs := []string{
		v.String(),
		v.GoString(),
		fmt.Sprint(v),
		fmt.Sprintf("%v", v),
		fmt.Sprintf("%s", v),
		fmt.Sprintf("%q", v),
		fmt.Sprintf("%#v", v),
		fmt.Sprintf("%+v", v),
		fmt.Sprintf("%x", v),
		fmt.Sprintf("%v", h),
		fmt.Sprintf("%+v", h),
		fmt.Sprintf("%v", *h.Ptr),
	}
	for _, out := range outputs {
		assert.NotContains(t, out, plain)
	}
	assert.Equal(t, Redacted, fmt.Sprint(v))
	assert.Equal(t, `"`+Redacted+`"`, fmt.Sprintf("%q", v))
}

func TestValue_DefaultJSONIsRedacted(t *testing.T) {
	b, err := json.Marshal(struct {
		P Value  `json:"p"`
		Q *Value `json:"q"`
	}{P: New(plain), Q: Ptr(plain)})
	require.NoError(t, err)
	assert.NotContains(t, string(b), plain)
	assert.JSONEq(t, `{"p":"**********","q":"**********"}`, string(b))
}

func TestValue_UnmarshalWrapsPlaintext(t *testing.T) {
	var got struct {
		P *Value `json:"p"`
		N *Value `json:"n"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"p":"`+plain+`","n":null}`), &got))
	require.NotNil(t, got.P)
	assert.Equal(t, plain, got.P.Reveal())
	assert.Nil(t, got.N)

	var bad Value
	assert.Error(t, json.Unmarshal([]byte(`123`), &bad))

	var txt Value
	require.NoError(t, txt.UnmarshalText([]byte(plain)))
	assert.Equal(t, plain, txt.Reveal())
}

func TestValue_Equal(t *testing.T) {
	assert.True(t, New("a").Equal(New("a")))
	assert.False(t, New("a").Equal(New("b")))
	assert.False(t, New("a").Equal(New("")))
}

func TestRevealPtr(t *testing.T) {
	assert.Nil(t, RevealPtr(nil))
	p := RevealPtr(Ptr(plain))
	require.NotNil(t, p)
	assert.Equal(t, plain, *p)
}
