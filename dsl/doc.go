// Package dsl provides a compact, type-safe way to declare flatmap trees for
// plain Go structs.
//
// Overview
//   - Prop binds a child mapping to a struct field picked by a selector
//     (func(*T) *V). The flat key name comes from the field's tags, so a
//     renamed or removed field is a compile error rather than a silent miss.
//   - Struct, Slice, Tags, Text, Int, Bool, Time and Scalar wrap the root
//     constructors with the options most forms need.
//   - Build validates a whole tree up front; MustBuild panics instead, for
//     package-level declarations.
//
// Key resolution
//
//	flatmap:"name=..."  >  form:"..."  >  field name;  "-" disables the field
//
// Example
//
//	type Signup struct {
//	    Email string   `form:"email"`
//	    Age   int      `form:"age"`
//	    Tags  []string `form:"tags"`
//	}
//
//	var signup = dsl.MustBuild(dsl.Struct[Signup](
//	    dsl.Prop(func(s *Signup) *string { return &s.Email }, dsl.Text(flatmap.Mandatory())),
//	    dsl.Prop(func(s *Signup) *int { return &s.Age }, dsl.Int[int]()),
//	    dsl.Prop(func(s *Signup) *[]string { return &s.Tags }, dsl.Tags(dsl.Text())),
//	))
//
//	v, ok, err := flatmap.Deserialize(ctx, signup, source.Query(r.URL.RawQuery))
package dsl
