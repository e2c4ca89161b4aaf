package custom

type State struct {
	a int `enum:"group(1)"` // want `State\.a: "group\(1\)": malformed directive`
	b int `update:"group(1)"`
}
