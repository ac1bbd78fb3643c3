package tool

import "strings"

// Name represents tool name
type Name string

// Service returns the handler class part in slash notation.
func (t Name) Service() string {
	tool := string(t)
	if idx := strings.LastIndex(tool, "-"); idx != -1 {
		return strings.ReplaceAll(tool[:idx], "_", "/")
	}
	return tool
}

// Method returns the method part, empty when the name has no separator.
func (t Name) Method() string {
	tool := string(t)
	if idx := strings.LastIndex(tool, "-"); idx != -1 {
		return tool[idx+1:]
	}
	return ""
}

func (t Name) String() string {
	return string(t)
}

// NewName new name
func NewName(service, name string) Name {
	return Name(strings.ReplaceAll(service, "/", "_") + "-" + name)
}

// Canonical normalises the accepted spellings of a tool reference
// ("svc/name-method", "svc/name.method", "svc/name/method") into the
// canonical "svc_name-method" form.
func Canonical(name string) string {
	name = strings.TrimSpace(name)
	if idx := strings.LastIndex(name, "-"); idx != -1 {
		return NewName(name[:idx], name[idx+1:]).String()
	}
	slash := strings.LastIndex(name, "/")
	if idx := strings.LastIndex(name, "."); idx > slash {
		return NewName(name[:idx], name[idx+1:]).String()
	}
	if slash != -1 {
		return NewName(name[:slash], name[slash+1:]).String()
	}
	return name
}
