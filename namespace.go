package cacheengine

import (
	"strings"
	"unicode"
)

// ValidateNamespace checks a segment name against memcached's key rules.
// Callers validate once per namespace binding; Get/Set/Drop do not repeat it.
//
// https://github.com/memcached/memcached/blob/master/doc/protocol.txt (Keys)
func (e *Engine) ValidateNamespace(name string) error {
	return validateNamespace(name, e.settings.Partition)
}

func validateNamespace(name, partition string) error {
	if name == "" {
		return &NamespaceError{Name: name, Reason: "empty string"}
	}
	if strings.IndexByte(name, 0) >= 0 {
		return &NamespaceError{Name: name, Reason: "includes null character"}
	}
	if strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		return &NamespaceError{Name: name, Reason: "includes spacing character(s)"}
	}
	if len(name)+len(partition) > maxKeyLength {
		return &NamespaceError{Name: name, Reason: "segment and partition name lengths exceed 250 characters"}
	}
	return nil
}
