package model

import "strings"

// StockIcon identifies an icon every driver provides.
type StockIcon int

const (
	// NoIcon means no stock icon.
	NoIcon StockIcon = iota
	QuitIcon
	AboutIcon
	AddIcon
	ApplyIcon
	CancelIcon
	ClearIcon
	CloseIcon
	BoldIcon
	CDROMIcon
)

var stockNames = map[StockIcon]string{
	NoIcon:     "none",
	QuitIcon:   "quit",
	AboutIcon:  "about",
	AddIcon:    "add",
	ApplyIcon:  "apply",
	CancelIcon: "cancel",
	ClearIcon:  "clear",
	CloseIcon:  "close",
	BoldIcon:   "bold",
	CDROMIcon:  "cdrom",
}

func (s StockIcon) String() string {
	if name, ok := stockNames[s]; ok {
		return name
	}
	return "unknown"
}

// ParseStockIcon returns the stock icon with the given name.
func ParseStockIcon(name string) (StockIcon, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for s, n := range stockNames {
		if n == name && s != NoIcon {
			return s, true
		}
	}
	return NoIcon, false
}

// IconRef references an icon either by stock id or by a resource name
// resolved against the context of the entity carrying it.
type IconRef struct {
	Stock StockIcon
	Name  string
}

// Stock returns a reference to a stock icon.
func Stock(s StockIcon) IconRef {
	return IconRef{Stock: s}
}

// NamedIcon returns a reference to a resource icon.
func NamedIcon(name string) IconRef {
	return IconRef{Name: name}
}

// IsZero reports whether the reference designates no icon.
func (r IconRef) IsZero() bool {
	return r.Stock == NoIcon && r.Name == ""
}

// IsStock reports whether the reference designates a stock icon.
func (r IconRef) IsStock() bool {
	return r.Stock != NoIcon
}

func (r IconRef) String() string {
	switch {
	case r.IsStock():
		return "stock:" + r.Stock.String()
	case r.Name != "":
		return r.Name
	default:
		return ""
	}
}
