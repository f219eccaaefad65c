package model

// Option configures an entity at construction. Entity options apply to
// every constructor; the others are ignored where they make no sense.
type Option func(*settings)

type settings struct {
	label    string
	icon     IconRef
	help     string
	context  *Context
	check    func() bool
	deps     []AbstractVar
	resolver DefaultResolver
}

func collect(opts []Option) settings {
	var s settings
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	return s
}

// Label sets the label.
func Label(label string) Option {
	return func(s *settings) { s.label = label }
}

// Icon sets the icon.
func Icon(icon IconRef) Option {
	return func(s *settings) { s.icon = icon }
}

// Help sets the help message.
func Help(help string) Option {
	return func(s *settings) { s.help = help }
}

// InContext sets the owning context.
func InContext(ctx *Context) Option {
	return func(s *settings) { s.context = ctx }
}

// CheckFunc sets the check function of an action.
func CheckFunc(fn func() bool) Option {
	return func(s *settings) { s.check = fn }
}

// DependsOn appends variables to the dependencies of an action.
func DependsOn(vars ...AbstractVar) Option {
	return func(s *settings) { s.deps = append(s.deps, vars...) }
}

// WithResolver sets the resolver a standard type uses for its default value.
func WithResolver(r DefaultResolver) Option {
	return func(s *settings) { s.resolver = r }
}
