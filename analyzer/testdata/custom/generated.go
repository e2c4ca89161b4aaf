// Code generated by hand. DO NOT EDIT.

package custom

type Generated struct {
	a int `enum:"nope"`
}
