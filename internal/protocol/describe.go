package protocol

// TypeSummary is the inspectable form of a compiled message type.
type TypeSummary struct {
	Type     string           `json:"type" yaml:"type"`
	Element  string           `json:"element" yaml:"element"`
	Bindings []BindingSummary `json:"bindings" yaml:"bindings"`
}

type BindingSummary struct {
	Field     string   `json:"field" yaml:"field"`
	Kind      string   `json:"kind" yaml:"kind"`
	Name      string   `json:"name,omitempty" yaml:"name,omitempty"`
	Wrapper   []string `json:"wrapper,omitempty" yaml:"wrapper,omitempty"`
	Arity     string   `json:"arity" yaml:"arity"`
	Key       string   `json:"key,omitempty" yaml:"key,omitempty"`
	Shape     string   `json:"shape" yaml:"shape"`
	Transform string   `json:"transform,omitempty" yaml:"transform,omitempty"`
	Variants  []string `json:"variants,omitempty" yaml:"variants,omitempty"`
}

// Schema is the serializable summary of a compiled registry.
type Schema struct {
	Namespaces []Namespace   `json:"namespaces" yaml:"namespaces"`
	Types      []TypeSummary `json:"types" yaml:"types"`
}

// Describe summarizes every compiled type in declaration order.
func (r *Registry) Describe() Schema {
	out := Schema{Namespaces: r.ns.All(), Types: make([]TypeSummary, 0, len(r.order))}
	for _, mt := range r.order {
		ts := TypeSummary{
			Type:     mt.GoType.String(),
			Element:  mt.Name.String(),
			Bindings: make([]BindingSummary, 0, len(mt.Bindings)),
		}
		for _, b := range mt.Bindings {
			bs := BindingSummary{
				Field:     b.Field,
				Kind:      b.Kind.String(),
				Name:      b.Name.String(),
				Arity:     b.Arity.String(),
				Key:       b.Key,
				Shape:     b.Shape.String(),
				Transform: b.Transform,
			}
			for _, w := range b.Wrapper {
				bs.Wrapper = append(bs.Wrapper, w.String())
			}
			for _, v := range b.choices {
				bs.Variants = append(bs.Variants, v.Name.String())
			}
			ts.Bindings = append(ts.Bindings, bs)
		}
		out.Types = append(out.Types, ts)
	}
	return out
}
