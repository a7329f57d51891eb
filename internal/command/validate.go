package command

import (
	"fmt"
	"strings"
)

// Normalize coerces a raw value to the type declared by spec.
func Normalize(raw Value, spec *ArgSpec) (Value, error) {
	switch spec.Type {
	case ArgString:
		return String(raw.String()), nil

	case ArgNumber:
		if raw.IsNumber() {
			return raw, nil
		}
		if raw.IsString() {
			if n, ok := parseNumber(raw.str); ok {
				return Number(n), nil
			}
		}
		return Value{}, fmt.Errorf("%s must be a number", spec.Name)

	case ArgBoolean:
		if raw.IsBool() {
			return raw, nil
		}
		if raw.IsString() {
			switch strings.ToLower(raw.str) {
			case "true":
				return Bool(true), nil
			case "false":
				return Bool(false), nil
			}
		}
		return Value{}, fmt.Errorf("%s must be a boolean", spec.Name)

	case ArgNodeID:
		// A bare --flag carries boolean true, which never names a node.
		if !raw.IsBool() {
			if id := strings.TrimSpace(raw.String()); id != "" {
				return String(id), nil
			}
		}
		return Value{}, fmt.Errorf("%s must be a valid node ID", spec.Name)

	default:
		return Value{}, fmt.Errorf("%s has unknown type %s", spec.Name, spec.Type)
	}
}

// normalizeDefault converts and normalizes the default of spec.
func normalizeDefault(spec *ArgSpec) (Value, error) {
	v, ok := ValueOf(spec.Default)
	if !ok {
		return Value{}, fmt.Errorf("unsupported default type %T", spec.Default)
	}
	return Normalize(v, spec)
}

// Validate checks args against the schema of cmd and returns the normalized
// arguments.
//
// Schema arguments are processed in declaration order. A non-boolean argument
// that was not given by name binds the lowest-indexed positional value that is
// still unclaimed. Absent arguments take their default; absent required
// arguments are reported. All problems are gathered into one ValidationError.
//
// Commands without a schema accept any arguments unchanged.
func Validate(args Args, cmd *Command) (Args, error) {
	out := args.Clone()
	if len(cmd.Args) == 0 {
		return out, nil
	}

	positionals := args.PositionalKeys()
	next := 0

	var problems []string
	for i := range cmd.Args {
		spec := &cmd.Args[i]

		raw, present := out[spec.Name]
		if !present && spec.Type != ArgBoolean && next < len(positionals) {
			key := positionals[next]
			next++
			raw, present = out[key], true
			delete(out, key)
		}

		if !present {
			if spec.HasDefault() {
				v, err := normalizeDefault(spec)
				if err != nil {
					problems = append(problems, fmt.Sprintf("invalid default for %s: %v", spec.Name, err))
					continue
				}
				out[spec.Name] = v
				continue
			}
			if spec.Required {
				problems = append(problems, "Missing required argument: "+spec.Name)
			}
			continue
		}

		v, err := Normalize(raw, spec)
		if err != nil {
			problems = append(problems, err.Error())
			continue
		}
		out[spec.Name] = v
	}

	if len(problems) > 0 {
		return nil, &ValidationError{Command: cmd.Name, Problems: problems}
	}
	return out, nil
}
