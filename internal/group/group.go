// Package group aggregates field memberships into ordered groups.
package group

import "enum-update-generator/internal/model"

// Aggregate collects the fields of every group. Groups are ordered by the
// first time their name is seen while scanning fields top to bottom, and
// members keep field declaration order. Fields without groups are dropped.
func Aggregate(fields []model.FieldDescriptor) []model.GroupDescriptor {
	var groups []model.GroupDescriptor

	index := make(map[string]int)

	for i := range fields {
		field := &fields[i]

		for _, name := range field.Groups() {
			pos, ok := index[name]
			if !ok {
				pos = len(groups)
				index[name] = pos
				groups = append(groups, model.GroupDescriptor{Name: name})
			}

			groups[pos].Members = append(groups[pos].Members, model.Member{
				Field: field.Name,
				Type:  field.Type,
			})
		}
	}

	return groups
}

// Ungrouped returns the names of fields that belong to no group.
func Ungrouped(fields []model.FieldDescriptor) []string {
	var names []string

	for i := range fields {
		if len(fields[i].Groups()) == 0 {
			names = append(names, fields[i].Name)
		}
	}

	return names
}
