package a

//update:generate
//update:forward(nolint:revive)
type Good struct {
	test  string `update:"group(UpdateBoth)"`
	test2 int    `update:"group(UpdateBoth)"`
}

type Plain struct {
	value string
}

// Records without directives or tags are not checked.
type Options struct {
	Apply bool
}

type Ids struct {
	id, ID string
}

//update:generate
type Marked struct { // want `Marked\.Apply: generated name conflicts with field`
	Apply bool
}

type BadGroup struct {
	a string `update:"group(1)"` // want `BadGroup\.a: "group\(1\)": malformed directive: argument "1" is not an identifier`
}

type BadRename struct {
	b string `update:"rename_default()"` // want `BadRename\.b: "rename_default\(\)": malformed rename_default`
}

type Unknown struct {
	c string `json:"c" update:"skip"` // want `Unknown\.c: "skip": unknown directive`
}

type Typo struct {
	h string `update:"supress_default"` // want `Typo\.h: "supress_default": unknown directive: did you mean "suppress_default"\?`
}

type FirstWins struct {
	d string `update:"oops"` // want `FirstWins\.d: "oops": unknown directive`
	e string `update:"group(2)"`
}

type Collide struct { // want `Collide: groups "load_state" and "LoadState" both produce CollideUpdateLoadState: variant name collision`
	f string `update:"group(load_state)"`
	g string `update:"group(LoadState)"`
}

type Clash struct { // want `Clash\.ModifyCount: generated name conflicts with field`
	ModifyCount int `update:"group(count)"`
}
