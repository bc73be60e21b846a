package msg

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML decodes the config-file form of a message: a bare tag scalar
// (`FocusNext`) or a single-key mapping (`SwitchMode: default`,
// `AddNodeFilter: {kind: ..., input: ...}`).
func (m *Message) UnmarshalYAML(value *yaml.Node) error {
	var tag string
	var payload *yaml.Node

	switch value.Kind {
	case yaml.ScalarNode:
		if err := value.Decode(&tag); err != nil {
			return err
		}
	case yaml.MappingNode:
		if len(value.Content) != 2 {
			return fmt.Errorf("message must have exactly one tag")
		}
		if err := value.Content[0].Decode(&tag); err != nil {
			return err
		}
		payload = value.Content[1]
	default:
		return fmt.Errorf("invalid message node")
	}

	kind := Kind(tag)
	shape, known := shapes[kind]
	if !known {
		return fmt.Errorf("unknown message: %q", tag)
	}

	out := Message{Kind: kind}
	if shape != payloadNone && payload == nil {
		return fmt.Errorf("%s requires a value", kind)
	}
	switch shape {
	case payloadNone:
		if payload != nil {
			return fmt.Errorf("%s takes no value", kind)
		}
	case payloadString:
		if err := payload.Decode(&out.Str); err != nil {
			return fmt.Errorf("%s: %w", kind, err)
		}
	case payloadInt:
		if err := payload.Decode(&out.Index); err != nil {
			return fmt.Errorf("%s: %w", kind, err)
		}
	case payloadFilter:
		if err := payload.Decode(&out.Filter); err != nil {
			return fmt.Errorf("%s: %w", kind, err)
		}
	case payloadFilterKind:
		if err := payload.Decode(&out.FilterKind); err != nil {
			return fmt.Errorf("%s: %w", kind, err)
		}
	case payloadSorter:
		if err := payload.Decode(&out.Sorter); err != nil {
			return fmt.Errorf("%s: %w", kind, err)
		}
	case payloadSorterKind:
		if err := payload.Decode(&out.SorterKind); err != nil {
			return fmt.Errorf("%s: %w", kind, err)
		}
	case payloadCall:
		if err := payload.Decode(&out.Call); err != nil {
			return fmt.Errorf("%s: %w", kind, err)
		}
	}

	if err := out.Validate(); err != nil {
		return err
	}
	*m = out
	return nil
}

// MarshalYAML encodes the message in the same externally-tagged form.
func (m Message) MarshalYAML() (interface{}, error) {
	switch shapes[m.Kind] {
	case payloadString:
		return map[string]string{string(m.Kind): m.Str}, nil
	case payloadInt:
		return map[string]int{string(m.Kind): m.Index}, nil
	case payloadFilter:
		return map[string]interface{}{string(m.Kind): m.Filter}, nil
	case payloadFilterKind:
		return map[string]string{string(m.Kind): string(m.FilterKind)}, nil
	case payloadSorter:
		return map[string]interface{}{string(m.Kind): m.Sorter}, nil
	case payloadSorterKind:
		return map[string]string{string(m.Kind): string(m.SorterKind)}, nil
	case payloadCall:
		return map[string]interface{}{string(m.Kind): m.Call}, nil
	default:
		return string(m.Kind), nil
	}
}
