// Package example carries the example test tree: two top-level groups,
// with a third group nested inside the second one. It doubles as the
// default tree wired into the ret binary.
package example

import (
	"github.com/embedded-infra/ret/registry"
)

// RegisterAll registers the example test groups. group_2_tests is not
// registered on its own: it runs nested under group_1_tests.
func RegisterAll(reg *registry.Registry) error {
	for _, g := range []registry.Group{group0, group1} {
		if err := reg.Register(g); err != nil {
			return err
		}
	}
	return nil
}
