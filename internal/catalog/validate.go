package catalog

import "fmt"

// ValidateWorkflow checks that step ids are unique, dependencies reference
// known steps, and the dependency graph is acyclic.
func ValidateWorkflow(w Workflow) error {
	steps := make(map[string][]string, len(w.Steps))
	for _, s := range w.Steps {
		if s.ID == "" {
			return fmt.Errorf("step with empty id")
		}
		if _, dup := steps[s.ID]; dup {
			return fmt.Errorf("duplicate step id %s", s.ID)
		}
		steps[s.ID] = s.DependsOn
	}

	for id, deps := range steps {
		for _, dep := range deps {
			if _, known := steps[dep]; !known {
				return fmt.Errorf("step %s depends on unknown step %s", id, dep)
			}
		}
	}

	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	state := make(map[string]int, len(steps))

	var visit func(id string) error
	visit = func(id string) error {
		switch state[id] {
		case visiting:
			return fmt.Errorf("%w: involving step %s", ErrCyclicWorkflow, id)
		case done:
			return nil
		}

		state[id] = visiting
		for _, dep := range steps[id] {
			if err := visit(dep); err != nil {
				return err
			}
		}
		state[id] = done
		return nil
	}

	for _, s := range w.Steps {
		if err := visit(s.ID); err != nil {
			return err
		}
	}

	return nil
}
