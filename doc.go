// Package varcfg implements parsing and serializing of variant-typed,
// sectioned configuration files.
//
// The format is INI-like: keys grouped into [section]s, with a typed value
// grammar on the right-hand side of each =. Values are booleans, integers,
// floats, strings, nested arrays, and nested dictionaries; quoted strings
// and bracketed collections may span multiple physical lines. Lines whose
// first non-space character is ; are comments.
//
//	; a basic document
//	greeting="hello world"
//
//	[player]
//	name=Erin
//	level=7
//	position=Vector2(20, 30)
//	inventory=["sword", {"potion": 2}]
//
// Parsing is best-effort: a malformed line never fails the document, it is
// skipped (use [ParseAll] to observe what was dropped). A duplicate key
// overwrites the earlier value. Section order, key order and dictionary
// entry order are preserved, so [Encode] produces stable output; on output
// dictionary keys are always quoted and always use the : separator.
//
// Values are retrieved either raw via [Store.Get], or coerced to a target
// type with [As] and the Store getters, which return a caller-supplied
// default instead of an error:
//
//	store := varcfg.Parse(data)
//	level := store.GetInt("player", "level", 1)
//	inv, _ := store.Get("player", "inventory")
//	names := varcfg.As(inv, []string(nil))
//
// Like the builtin json package, varcfg can also convert whole documents to
// and from Go structs with [Marshal] and [Unmarshal], using `varcfg:"name"`
// tags (falling back to `json:"name"`). Struct or map fields become
// sections; other fields become keys in the default (headerless) section.
package varcfg
