package twplug

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSheet() List {
	return List{
		Line(`@import "tailwindcss" prefix(tw);`),
		R("@theme", R("--color-brand", "#123456")),
		R("@utility btn", R(
			"background-image", []string{"linear-gradient(red, blue)", "linear-gradient(in oklab, red, blue)"},
			"&:hover", R("color", "white"),
		)),
	}
}

func TestRenderJSON(t *testing.T) {
	want := `[
    "@import \"tailwindcss\" prefix(tw);",
    {
        "@theme": {
            "--color-brand": "#123456"
        }
    },
    {
        "@utility btn": {
            "background-image": [
                "linear-gradient(red, blue)",
                "linear-gradient(in oklab, red, blue)"
            ],
            "&:hover": {
                "color": "white"
            }
        }
    }
]`
	assert.Equal(t, want, RenderJSON(sampleSheet()))
}

func TestRenderJSONIsValidAndStable(t *testing.T) {
	out := RenderJSON(sampleSheet())

	var decoded []any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Len(t, decoded, 3)

	// rendering the same statements twice gives the same text
	assert.Equal(t, out, RenderJSON(sampleSheet()))
}

func TestRenderJSONEdgeCases(t *testing.T) {
	assert.Equal(t, "[]", RenderJSON(nil))
	assert.Equal(t, "[\n    {}\n]", RenderJSON(List{R()}))
	assert.Equal(t, "[\n    \"a < b & c\"\n]", RenderJSON(List{Line("a < b & c")}))
}

func TestRenderCSS(t *testing.T) {
	want := `@import "tailwindcss" prefix(tw);

@theme {
  --color-brand: #123456;
}

@utility btn {
  background-image: linear-gradient(red, blue);
  background-image: linear-gradient(in oklab, red, blue);
  &:hover {
    color: white;
  }
}
`
	assert.Equal(t, want, RenderCSS(sampleSheet()))
}

func TestRenderCSSRepeatsSiblingBlocks(t *testing.T) {
	stmts := List{R("@layer components", R(".card", List{
		R("color", "black", "&.a", R("color", "white")),
		R("color", "black", "&.b", R("color", "white")),
	}))}

	want := `@layer components {
  .card {
    color: black;
    &.a {
      color: white;
    }
  }
  .card {
    color: black;
    &.b {
      color: white;
    }
  }
}
`
	assert.Equal(t, want, RenderCSS(stmts))
}

func TestRenderTree(t *testing.T) {
	out := RenderTree(sampleSheet())

	assert.Contains(t, out, "stylesheet")
	assert.Contains(t, out, `@import "tailwindcss" prefix(tw);`)
	assert.Contains(t, out, "@theme")
	assert.Contains(t, out, "--color-brand: #123456")
	assert.Contains(t, out, "background-image: linear-gradient(in oklab, red, blue)")
	assert.Contains(t, out, "color: white")
}
