package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePages(t *testing.T) {
	tests := []struct {
		in      string
		want    PageSelector
		wantErr bool
	}{
		{in: "all", want: AllPages()},
		{in: "ALL", want: AllPages()},
		{in: "", want: AllPages()},
		{in: "5", want: PageSelector{Pages: []int{5}}},
		{in: "1,2,3", want: PageSelector{Pages: []int{1, 2, 3}}},
		{in: "144, 145", want: PageSelector{Pages: []int{144, 145}}},
		{in: "0", wantErr: true},
		{in: "-2", wantErr: true},
		{in: "1,x", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParsePages(tc.in)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPageSelectorString(t *testing.T) {
	assert.Equal(t, "all", AllPages().String())
	assert.Equal(t, "1,2,3", PageSelector{Pages: []int{1, 2, 3}}.String())
}

func TestPageSelectorMax(t *testing.T) {
	assert.Equal(t, 0, AllPages().Max())
	assert.Equal(t, 145, PageSelector{Pages: []int{144, 145, 12}}.Max())
}

func TestLooksLikePageList(t *testing.T) {
	assert.True(t, LooksLikePageList("1,2,3"))
	assert.True(t, LooksLikePageList("144, 145"))
	assert.False(t, LooksLikePageList("12"))        // no comma: could be a filename
	assert.False(t, LooksLikePageList("out,csv"))
	assert.False(t, LooksLikePageList(","))
}
