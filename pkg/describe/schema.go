package describe

// document is the YAML form of an application description.
type document struct {
	Format  string              `yaml:"format,omitempty"`
	App     appSpec             `yaml:"app"`
	Types   map[string]typeSpec `yaml:"types,omitempty"`
	Vars    []varSpec           `yaml:"vars,omitempty"`
	Actions []actionSpec        `yaml:"actions,omitempty"`
	Views   []viewSpec          `yaml:"views,omitempty"`
	Main    string              `yaml:"main,omitempty"`
}

type appSpec struct {
	Name      string `yaml:"name,omitempty"`
	Version   string `yaml:"version,omitempty"`
	Resources string `yaml:"resources,omitempty"`
}

// meta holds the entity fields shared by every described object.
type meta struct {
	Label string `yaml:"label,omitempty"`
	Icon  string `yaml:"icon,omitempty"`
	Help  string `yaml:"help,omitempty"`
}

// typeSpec sets exactly one of Standard, Enum, Range, Record or Collection.
type typeSpec struct {
	Meta       meta            `yaml:",inline"`
	Standard   string          `yaml:"standard,omitempty"`
	Enum       []enumValueSpec `yaml:"enum,omitempty"`
	Range      *rangeSpec      `yaml:"range,omitempty"`
	Record     []fieldSpec     `yaml:"record,omitempty"`
	Collection string          `yaml:"collection,omitempty"`
}

type enumValueSpec struct {
	Meta  meta `yaml:",inline"`
	Value any  `yaml:"value"`
}

type rangeSpec struct {
	Low  int `yaml:"low"`
	High int `yaml:"high"`
}

type fieldSpec struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type varSpec struct {
	Name  string `yaml:"name"`
	Meta  meta   `yaml:",inline"`
	Type  string `yaml:"type,omitempty"`
	Value any    `yaml:"value,omitempty"`
}

type actionSpec struct {
	Name    string       `yaml:"name"`
	Meta    meta         `yaml:",inline"`
	Depends []string     `yaml:"depends,omitempty"`
	Enabled string       `yaml:"enabled,omitempty"`
	Do      []effectSpec `yaml:"do,omitempty"`
}

// effectSpec sets exactly one of its fields.
type effectSpec struct {
	Print string   `yaml:"print,omitempty"`
	Warn  string   `yaml:"warn,omitempty"`
	Set   *setSpec `yaml:"set,omitempty"`
	Quit  bool     `yaml:"quit,omitempty"`
}

type setSpec struct {
	Var  string `yaml:"var"`
	Expr string `yaml:"expr"`
}

type viewSpec struct {
	Name     string        `yaml:"name"`
	Meta     meta          `yaml:",inline"`
	Kind     string        `yaml:"kind"`
	Actions  []string      `yaml:"actions,omitempty"`
	Vars     []string      `yaml:"vars,omitempty"`
	Sections []sectionSpec `yaml:"sections,omitempty"`
}

type sectionSpec struct {
	Label string   `yaml:"label,omitempty"`
	Items []string `yaml:"items"`
}
