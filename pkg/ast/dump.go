package ast

import (
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	debugDataType = reflect.TypeOf(DebugData{})
	marshalerType = reflect.TypeOf((*yaml.Marshaler)(nil)).Elem()
)

// Dump renders nodes as a YAML sequence. Each node becomes a mapping
// whose first keys are its kind and source line; nil children are omitted.
func Dump(nodes []Expr) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.SequenceNode}
	for _, n := range nodes {
		child, err := encodeValue(reflect.ValueOf(n))
		if err != nil {
			return nil, err
		}
		root.Content = append(root.Content, child)
	}
	return yaml.Marshal(root)
}

func encodeValue(v reflect.Value) (*yaml.Node, error) {
	for v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
		}
		v = v.Elem()
	}

	switch {
	case v.Type().Implements(marshalerType):
		return encodeScalar(v.Interface())
	case v.Kind() == reflect.Struct:
		return encodeStruct(v)
	case v.Kind() == reflect.Slice:
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for i := 0; i < v.Len(); i++ {
			child, err := encodeValue(v.Index(i))
			if err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, child)
		}
		return seq, nil
	}
	return encodeScalar(v.Interface())
}

func encodeStruct(v reflect.Value) (*yaml.Node, error) {
	m := &yaml.Node{Kind: yaml.MappingNode}
	add := func(key string, value *yaml.Node) {
		m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: key}, value)
	}

	t := v.Type()
	if _, isNode := v.Interface().(Expr); isNode {
		add("kind", &yaml.Node{Kind: yaml.ScalarNode, Value: t.Name()})
	} else if _, isType := v.Interface().(DataType); isType {
		add("type", &yaml.Node{Kind: yaml.ScalarNode, Value: t.Name()})
	}

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		fv := v.Field(i)
		if f.Type == debugDataType {
			line, err := encodeScalar(fv.Interface().(DebugData).Line)
			if err != nil {
				return nil, err
			}
			add("line", line)
			continue
		}
		if (fv.Kind() == reflect.Interface || fv.Kind() == reflect.Slice) && fv.IsNil() {
			continue
		}
		child, err := encodeValue(fv)
		if err != nil {
			return nil, err
		}
		add(strings.ToLower(f.Name[:1])+f.Name[1:], child)
	}
	return m, nil
}

func encodeScalar(v any) (*yaml.Node, error) {
	n := &yaml.Node{}
	if err := n.Encode(v); err != nil {
		return nil, err
	}
	return n, nil
}
