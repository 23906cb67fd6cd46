package generator

import (
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepairJSON_CodeFence(t *testing.T) {
	raw := "```json\n[{\"title\":\"a\"}]\n```"
	assert.Equal(t, `[{"title":"a"}]`, RepairJSON(raw))

	raw = "```\n{\"x\":1}\n```"
	assert.Equal(t, `{"x":1}`, RepairJSON(raw))
}

func TestRepairJSON_TeksDiSekitar(t *testing.T) {
	raw := `Here are your exercises:
[{"title":"Hilsener","difficulty":1}]
Hope this helps!`
	got := RepairJSON(raw)
	assert.Equal(t, `[{"title":"Hilsener","difficulty":1}]`, got)
}

func TestRepairJSON_TrailingComma(t *testing.T) {
	raw := `{"a":1,"b":[1,2,],}`
	got := RepairJSON(raw)

	var out map[string]any
	require.NoError(t, sonic.Unmarshal([]byte(got), &out))
	assert.Equal(t, float64(1), out["a"])
}

func TestRepairJSON_KomaDalamString(t *testing.T) {
	// koma dan kurung di dalam string tidak boleh disentuh
	raw := `{"sentence":"Jeg bor i Oslo, }x] Norge,"}`
	got := RepairJSON(raw)

	var out map[string]string
	require.NoError(t, sonic.Unmarshal([]byte(got), &out))
	assert.Equal(t, "Jeg bor i Oslo, }x] Norge,", out["sentence"])
}

func TestRepairJSON_NestedTerluar(t *testing.T) {
	raw := `noise {"outer":{"inner":[1,2,3]}} trailing`
	assert.Equal(t, `{"outer":{"inner":[1,2,3]}}`, RepairJSON(raw))
}

func TestRepairJSON_EscapedQuote(t *testing.T) {
	raw := `prefix {"q":"han sa \"hei\", og gikk"} suffix`
	got := RepairJSON(raw)

	var out map[string]string
	require.NoError(t, sonic.Unmarshal([]byte(got), &out))
	assert.Equal(t, `han sa "hei", og gikk`, out["q"])
}

func TestRepairJSON_TanpaJSON(t *testing.T) {
	// tidak ada blok JSON: dikembalikan apa adanya (parse akan gagal di caller)
	assert.Equal(t, "no json here", RepairJSON("no json here"))
}
