package prompts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedDefaults(t *testing.T) {
	loader := NewLoader()
	for _, name := range []string{
		"root_agent", "itinerary_agent", "pricing_agent",
		"search_agent", "recommendation_agent", "sql_generation",
	} {
		prompt, err := loader.Load(name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, prompt.Name, name)
		assert.NotEmpty(t, prompt.Instruction, name)
	}

	// extension is optional
	withExt, err := loader.Load("root_agent.yaml")
	require.NoError(t, err)
	noExt, err := loader.Load("root_agent")
	require.NoError(t, err)
	assert.Equal(t, withExt, noExt)

	_, err = loader.Load("missing_agent")
	assert.Error(t, err)
}

func TestDirOverride(t *testing.T) {
	dir := t.TempDir()
	content := "name: CustomAgent\ninstruction: custom instruction\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "root_agent.yaml"), []byte(content), 0o644))

	loader := NewLoader(WithDir(dir))
	instruction, err := loader.Instruction("root_agent")
	require.NoError(t, err)
	assert.Equal(t, "custom instruction", instruction)

	// file absent in dir falls back to the embedded default
	name, err := loader.Name("pricing_agent")
	require.NoError(t, err)
	assert.Equal(t, "PricingAgent", name)
}

func TestReloadBypassesCache(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "root_agent.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: A\ninstruction: one\n"), 0o644))

	loader := NewLoader(WithDir(dir))
	first, err := loader.Instruction("root_agent")
	require.NoError(t, err)
	assert.Equal(t, "one", first)

	require.NoError(t, os.WriteFile(path, []byte("name: A\ninstruction: two\n"), 0o644))
	cached, err := loader.Instruction("root_agent")
	require.NoError(t, err)
	assert.Equal(t, "one", cached, "cache hit returns stale content")

	reloaded, err := loader.Reload("root_agent")
	require.NoError(t, err)
	assert.Equal(t, "two", reloaded.Instruction)
}

func TestSQLGenerationPrompt(t *testing.T) {
	loader := NewLoader()
	out, err := loader.SQLGenerationPrompt("cruises to Alaska under $1000", []string{"cruise_id", "destination", "price_per_person"}, "cruises")
	require.NoError(t, err)
	assert.Contains(t, out, "cruises to Alaska under $1000")
	assert.Contains(t, out, "cruise_id, destination, price_per_person")
	assert.Contains(t, out, "table 'cruises'")
	assert.NotContains(t, out, "{prompt}")
	assert.NotContains(t, out, "{columns}")
	assert.NotContains(t, out, "{table_name}")
}
