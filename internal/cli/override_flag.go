package cli

import (
	"strconv"

	"github.com/spf13/pflag"
)

const (
	overrideFlagTypeName   = "override"
	overrideFlagUnsetValue = "unset"
)

// overrideFlagValue is a boolean flag that stays nil until it is given on the
// command line, so configuration values apply unless the flag overrides them.
type overrideFlagValue struct {
	target  **bool
	flagKey string
}

func (value *overrideFlagValue) Set(input string) error {
	parsed, err := parseBooleanLiteral(value.flagKey, input)
	if err != nil {
		return err
	}
	*value.target = &parsed
	return nil
}

func (value *overrideFlagValue) String() string {
	if value == nil || value.target == nil || *value.target == nil {
		return overrideFlagUnsetValue
	}
	return strconv.FormatBool(**value.target)
}

func (value *overrideFlagValue) Type() string {
	return overrideFlagTypeName
}

func registerOverrideFlag(flagSet *pflag.FlagSet, target **bool, name string, usage string) {
	if flagSet == nil || target == nil {
		return
	}
	*target = nil
	flagSet.Var(&overrideFlagValue{target: target, flagKey: name}, name, usage)
	if lookup := flagSet.Lookup(name); lookup != nil {
		lookup.DefValue = ""
		lookup.NoOptDefVal = booleanFlagTrueLiteral
	}
}
