package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Clay & Canvas":       "clay-canvas",
		"  Atelier Nord  ":    "atelier-nord",
		"already-slugged":     "already-slugged",
		"UPPER Case Store 99": "upper-case-store-99",
		"éclat":               "clat",
		"---":                 "",
	}

	for in, want := range cases {
		assert.Equal(t, want, slugify(in), "slugify(%q)", in)
	}
}
