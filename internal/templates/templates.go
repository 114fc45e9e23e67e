// Package templates ships example programs that can be loaded into the
// editor. Each one classifies to the animation it is meant to demonstrate.
package templates

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed javascript/*.js python/*.py
var files embed.FS

var (
	ErrUnknownLanguage = errors.New("templates: unknown language")
	ErrUnknownTemplate = errors.New("templates: unknown template")
)

// Language describes where a language's templates live.
type Language struct {
	Name string
	Ext  string
}

var languages = []Language{
	{Name: "javascript", Ext: ".js"},
	{Name: "python", Ext: ".py"},
}

// Languages lists the supported template languages.
func Languages() []string {
	names := make([]string, len(languages))
	for i, l := range languages {
		names[i] = l.Name
	}
	return names
}

// Lookup resolves a language name or its js/py alias.
func Lookup(lang string) (Language, error) {
	key := strings.ToLower(strings.TrimSpace(lang))
	switch key {
	case "js":
		key = "javascript"
	case "py":
		key = "python"
	}
	for _, l := range languages {
		if l.Name == key {
			return l, nil
		}
	}
	return Language{}, fmt.Errorf("%w: %q", ErrUnknownLanguage, lang)
}

// Names returns the template names available for lang, sorted.
func Names(lang string) ([]string, error) {
	l, err := Lookup(lang)
	if err != nil {
		return nil, err
	}
	entries, err := fs.ReadDir(files, l.Name)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), l.Ext))
	}
	sort.Strings(names)
	return names, nil
}

// Get returns the source of template name in lang.
func Get(lang, name string) (string, error) {
	l, err := Lookup(lang)
	if err != nil {
		return "", err
	}
	data, err := files.ReadFile(path.Join(l.Name, strings.ToLower(name)+l.Ext))
	if err != nil {
		return "", fmt.Errorf("%w: %s/%s", ErrUnknownTemplate, l.Name, name)
	}
	return string(data), nil
}
