// Package prompts loads agent instructions from YAML files. Built-in
// defaults are embedded; a directory override lets operators tune prompts
// without rebuilding.
package prompts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"embed"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/*.yaml
var defaultsFS embed.FS

// Prompt is one agent prompt definition.
type Prompt struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Instruction string `yaml:"instruction"`
}

// Loader reads prompt files and caches parsed results. When a directory is
// configured it takes precedence over the embedded defaults, falling back
// per file.
type Loader struct {
	dir string

	mu    sync.RWMutex
	cache map[string]*Prompt
}

type LoaderOption func(*Loader)

// WithDir sets a directory whose YAML files override the embedded prompts.
func WithDir(dir string) LoaderOption {
	return func(l *Loader) {
		l.dir = dir
	}
}

func NewLoader(opts ...LoaderOption) *Loader {
	ret := &Loader{
		cache: make(map[string]*Prompt),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

func normalize(name string) string {
	if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
		return name
	}
	return name + ".yaml"
}

// Load returns the prompt for the given name, with or without extension.
func (l *Loader) Load(name string) (*Prompt, error) {
	filename := normalize(name)
	l.mu.RLock()
	cached, ok := l.cache[filename]
	l.mu.RUnlock()
	if ok {
		return cached, nil
	}
	raw, err := l.read(filename)
	if err != nil {
		return nil, err
	}
	prompt := new(Prompt)
	if err := yaml.Unmarshal(raw, prompt); err != nil {
		return nil, fmt.Errorf("prompts: parse %s: %w", filename, err)
	}
	l.mu.Lock()
	l.cache[filename] = prompt
	l.mu.Unlock()
	return prompt, nil
}

func (l *Loader) read(filename string) ([]byte, error) {
	if l.dir != "" {
		raw, err := os.ReadFile(filepath.Join(l.dir, filename))
		if err == nil {
			return raw, nil
		}
		if !os.IsNotExist(err) {
			return nil, err
		}
	}
	raw, err := defaultsFS.ReadFile("defaults/" + filename)
	if err != nil {
		return nil, fmt.Errorf("prompts: prompt file not found: %s", filename)
	}
	return raw, nil
}

// Instruction returns the instruction text of a prompt.
func (l *Loader) Instruction(name string) (string, error) {
	prompt, err := l.Load(name)
	if err != nil {
		return "", err
	}
	return prompt.Instruction, nil
}

// Name returns the agent name of a prompt.
func (l *Loader) Name(name string) (string, error) {
	prompt, err := l.Load(name)
	if err != nil {
		return "", err
	}
	return prompt.Name, nil
}

// Reload re-reads a prompt file, bypassing the cache.
func (l *Loader) Reload(name string) (*Prompt, error) {
	filename := normalize(name)
	l.mu.Lock()
	delete(l.cache, filename)
	l.mu.Unlock()
	return l.Load(name)
}

// ClearCache drops all cached prompts.
func (l *Loader) ClearCache() {
	l.mu.Lock()
	l.cache = make(map[string]*Prompt)
	l.mu.Unlock()
}

// SQLGenerationPrompt fills the sql_generation template with the user
// request and the table schema. Placeholders are {prompt}, {columns} and
// {table_name}.
func (l *Loader) SQLGenerationPrompt(userPrompt string, columns []string, tableName string) (string, error) {
	template, err := l.Instruction("sql_generation")
	if err != nil {
		return "", err
	}
	r := strings.NewReplacer(
		"{prompt}", userPrompt,
		"{columns}", strings.Join(columns, ", "),
		"{table_name}", tableName,
	)
	return r.Replace(template), nil
}
