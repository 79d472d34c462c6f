package systemprompt

// ContextProvider is an interface that defines the title and info of a context provider
type ContextProvider interface {
	Title() string
	Info() string
}

// StaticProvider is a fixed title/info pair.
type StaticProvider struct {
	title string
	info  string
}

func NewStaticProvider(title, info string) *StaticProvider {
	return &StaticProvider{title: title, info: info}
}

func (p StaticProvider) Title() string {
	return p.title
}

func (p StaticProvider) Info() string {
	return p.info
}

// FuncProvider resolves its info lazily at prompt generation time.
type FuncProvider struct {
	title string
	fn    func() string
}

func NewFuncProvider(title string, fn func() string) *FuncProvider {
	return &FuncProvider{title: title, fn: fn}
}

func (p FuncProvider) Title() string {
	return p.title
}

func (p FuncProvider) Info() string {
	return p.fn()
}
