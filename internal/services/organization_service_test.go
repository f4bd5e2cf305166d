package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"Warung Kopi", "warung-kopi"},
		{"  Toko  Baru  ", "toko-baru"},
		{"Cafe #1 (Pusat)", "cafe-1-pusat"},
		{"---", ""},
		{"UPPER", "upper"},
		{"toko-sudah-slug", "toko-sudah-slug"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.in), "input %q", tc.in)
	}
}
