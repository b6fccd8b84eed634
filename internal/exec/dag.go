package exec

import (
	"fmt"
	"sort"
	"strings"

	"typeforge/internal/synth"
)

// nodeState tags a DAG node's evaluation status during one ExecuteDAG run
// (spec.md §4.5 "State machine": {Unvisited, Computed} per node).
type nodeState int

const (
	stateUnvisited nodeState = iota
	stateComputed
)

// ExecuteDAG interprets dag against sourceValues, the caller-supplied
// mapping from external input to value (spec.md §4.5 "execute_dag").
// Returns the value computed at dag.GoalID.
func ExecuteDAG(dag *synth.DAG, sourceValues map[string]any, ctx *Context) (any, error) {
	order, err := topoOrder(dag)
	if err != nil {
		return nil, err
	}

	states := make(map[string]nodeState, len(dag.Nodes))
	values := make(map[string]any, len(dag.Nodes))
	entityIDs := make(map[string]string, len(dag.Nodes))

	for _, id := range order {
		if ctx.cancelled() {
			return nil, &CancelledError{NodeID: id}
		}
		node := dag.Nodes[id]

		switch node.Kind {
		case synth.NodeSource:
			v := resolveSourceValue(node.ID, node.TypeName, sourceValues)
			values[id] = v
			if ctx.TrackProvenance {
				entityIDs[id] = ctx.Tracker.RecordSource(node.TypeName, stringify(v))
			}

		case synth.NodeTransform:
			if len(node.Inputs) != 1 {
				return nil, fmt.Errorf("dag: transform node %q expects exactly one input, has %d", id, len(node.Inputs))
			}
			in := node.Inputs[0]
			v, entID, err := executePathTracked(node.Path, values[in], entityIDs[in], ctx)
			if err != nil {
				return nil, err
			}
			values[id] = v
			entityIDs[id] = entID

		case synth.NodeAggregate, synth.NodeGoal:
			v, entID, err := evalAggregateNode(node, values, entityIDs, ctx)
			if err != nil {
				return nil, err
			}
			values[id] = v
			entityIDs[id] = entID

		default:
			return nil, fmt.Errorf("dag: node %q has unknown kind %q", id, node.Kind)
		}

		states[id] = stateComputed
	}

	result, ok := values[dag.GoalID]
	if !ok {
		return nil, fmt.Errorf("dag: goal node %q was never computed", dag.GoalID)
	}
	return result, nil
}

// evalAggregateNode implements the aggregate/goal rule of spec.md §4.5
// step 2: a single input behaves as a transform; multiple inputs are
// assembled into an ordered tuple (argument-position order, i.e.
// node.Inputs order) before the node's path is applied.
func evalAggregateNode(node *synth.Node, values map[string]any, entityIDs map[string]string, ctx *Context) (any, string, error) {
	if len(node.Inputs) == 1 {
		in := node.Inputs[0]
		return executePathTracked(node.Path, values[in], entityIDs[in], ctx)
	}

	tuple := make([]float64, 0, len(node.Inputs))
	inputEntityIDs := make([]string, 0, len(node.Inputs))
	for _, in := range node.Inputs {
		f, ok := toFloat(values[in])
		if !ok {
			return nil, "", fmt.Errorf("dag: aggregate node %q: input %q is not numeric", node.ID, in)
		}
		tuple = append(tuple, f)
		inputEntityIDs = append(inputEntityIDs, entityIDs[in])
	}

	var tupleValue any = tuple
	tupleEntityID := ""
	if ctx.TrackProvenance {
		h := ctx.Tracker.BeginActivity("tuple_assembly", "tuple", inputEntityIDs)
		tupleEntityID = ctx.Tracker.EndActivity(h, "Tuple", stringify(tuple), inputEntityIDs)
	}

	return executePathTracked(node.Path, tupleValue, tupleEntityID, ctx)
}

// topoOrder returns dag's nodes in dependency order via DFS from the goal
// node through Inputs (spec.md §4.5 step 1).
func topoOrder(dag *synth.DAG) ([]string, error) {
	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	mark := make(map[string]int, len(dag.Nodes))
	var order []string

	var visit func(id string) error
	visit = func(id string) error {
		switch mark[id] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("dag: cycle detected at node %q", id)
		}
		mark[id] = visiting
		node, ok := dag.Nodes[id]
		if !ok {
			return fmt.Errorf("dag: node %q referenced but not declared", id)
		}
		for _, in := range node.Inputs {
			if err := visit(in); err != nil {
				return err
			}
		}
		mark[id] = done
		order = append(order, id)
		return nil
	}

	if err := visit(dag.GoalID); err != nil {
		return nil, err
	}
	return order, nil
}

// resolveSourceValue implements the fuzzy source-binding fallback of
// spec.md §4.5 step 2 / §9.5: exact id match first, then the first
// (in sorted key order, for determinism) entry whose key is a substring
// of typeName or vice versa, then the first provided value overall.
func resolveSourceValue(nodeID, typeName string, sourceValues map[string]any) any {
	if v, ok := sourceValues[nodeID]; ok {
		return v
	}

	keys := make([]string, 0, len(sourceValues))
	for k := range sourceValues {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		kl, tl := strings.ToLower(k), strings.ToLower(typeName)
		if strings.Contains(kl, tl) || strings.Contains(tl, kl) {
			return sourceValues[k]
		}
	}
	if len(keys) > 0 {
		return sourceValues[keys[0]]
	}
	return nil
}
