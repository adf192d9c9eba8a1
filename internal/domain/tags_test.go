package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTagsStringPreservesOrder(t *testing.T) {
	assert.Equal(t, "b, a", Tags{"b", "a"}.String())
	assert.Equal(t, "", Tags(nil).String())
}

func TestTagsEqualIgnoresOrder(t *testing.T) {
	assert.True(t, Tags{"a", "b"}.Equal(Tags{"b", "a"}))
	assert.True(t, Tags{}.Equal(nil))
	assert.False(t, Tags{"a", "a"}.Equal(Tags{"a", "b"}))
	assert.False(t, Tags{"a"}.Equal(Tags{"a", "b"}))
}

func TestParseTags(t *testing.T) {
	assert.Equal(t, Tags{"a", "b"}, ParseTags(" a, b ,"))
	assert.Equal(t, Tags{}, ParseTags(""))
}

func TestTagsOrEmpty(t *testing.T) {
	assert.NotNil(t, Tags(nil).OrEmpty())
	assert.Equal(t, Tags{"x"}, Tags{"x"}.OrEmpty())
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{name: "Homo sapiens chr1", want: "Homo_sapiens_chr1"},
		{name: "seq/../etc", want: "seq..etc"},
		{name: "a-b_c.d", want: "a-b_c.d"},
		{name: "ŽluťoučkýKůň", want: "ŽluťoučkýKůň"},
		{name: "(x)*?", want: "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeName(tt.name))
		})
	}
}
