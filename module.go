package dataparser

import (
	"errors"
	"fmt"

	"github.com/gofhir/dataparser/matcher"
	"github.com/gofhir/dataparser/module/boolean"
	"github.com/gofhir/dataparser/module/date"
	"github.com/gofhir/dataparser/module/locale"
	"github.com/gofhir/dataparser/module/number"
	"github.com/gofhir/dataparser/module/unit"
)

// ModuleName names a value module that can be loaded into a Parser.
type ModuleName string

// Available value modules.
const (
	// ModuleBoolean recognises locale truthy and falsy words.
	ModuleBoolean ModuleName = "boolean"
	// ModuleNumber recognises integers, decimals, exponents, hex and units.
	ModuleNumber ModuleName = "number"
	// ModuleDate recognises ISO and locale-ordered dates.
	ModuleDate ModuleName = "date"
)

// ErrUnknownModule is returned for a module name that is not in the table.
var ErrUnknownModule = errors.New("unknown module")

// String returns the module name.
func (n ModuleName) String() string {
	return string(n)
}

// IsValid returns true if n names an available module.
func (n ModuleName) IsValid() bool {
	_, ok := moduleConfigs[n]
	return ok
}

// moduleConfig holds how a module is built for a locale.
type moduleConfig struct {
	build func(loc *locale.Locale, o *Options) matcher.Module
}

// moduleConfigs maps module names to their builders.
var moduleConfigs = map[ModuleName]moduleConfig{
	ModuleBoolean: {
		build: func(loc *locale.Locale, _ *Options) matcher.Module {
			return boolean.New(loc)
		},
	},
	ModuleNumber: {
		build: func(loc *locale.Locale, o *Options) matcher.Module {
			if o.StrictUnits {
				return number.New(loc, number.WithUnits(unit.DefaultCatalog()))
			}
			return number.New(loc)
		},
	},
	ModuleDate: {
		build: func(loc *locale.Locale, _ *Options) matcher.Module {
			return date.New(loc)
		},
	},
}

// DefaultModules returns the modules loaded when none are configured.
func DefaultModules() []ModuleName {
	return []ModuleName{ModuleNumber, ModuleDate, ModuleBoolean}
}

// dateModules are loaded by the matcher behind ParseDate.
var dateModules = []ModuleName{ModuleNumber, ModuleDate}

// ParseModuleNames converts names to module names, rejecting unknown ones.
func ParseModuleNames(names []string) ([]ModuleName, error) {
	out := make([]ModuleName, 0, len(names))
	for _, name := range names {
		n := ModuleName(name)
		if !n.IsValid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownModule, name)
		}
		out = append(out, n)
	}
	return out, nil
}

// buildModules instantiates names for loc. Duplicates are built once.
func buildModules(names []ModuleName, loc *locale.Locale, o *Options) ([]matcher.Module, error) {
	seen := make(map[ModuleName]bool, len(names))
	mods := make([]matcher.Module, 0, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		cfg, ok := moduleConfigs[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownModule, name)
		}
		seen[name] = true
		mods = append(mods, cfg.build(loc, o))
	}
	return mods, nil
}
