// Package flatmap provides:
//
// - Bidirectional conversion between object graphs and flat string maps (form
//   posts, query strings, flat config stores) driven by a mapping tree
// - Composable node kinds: Simple, Class, Collection and Composite
// - Key derivation across nested collections via a replaceable KeyNamingPolicy
// - A stable error model via Issues (key, code, message)
//
// Design policy:
// - Keep the mapping model in the root package; ready-made converters live under
//   codec/, the field-selector builder under dsl/, and boundary adapters for
//   query strings, JSON and YAML under source/.
// - Ordinary conversion failures are silent: the node contributes nothing.
//   Nodes marked Mandatory veto their parent instead, and a mandatory failure
//   that reaches the caller is returned as an error with CodeMandatory.
// - Trees are configured once and then only read; concurrent calls are safe
//   under that discipline.
//
// Typical usage:
//
//  name := flatmap.NewSimple(codec.String())
//  person := flatmap.NewClass[Person]().Add(
//      flatmap.Bind(flatmap.Property[Person, string]{Name: "Name", Get: getName, Set: setName}, name),
//  )
//  vals, ok, err := flatmap.Serialize(ctx, person, p)
//  back, ok, err := flatmap.Deserialize(ctx, person, vals)
package flatmap
