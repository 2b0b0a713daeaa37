package linter

import (
	"fmt"
	"sort"

	"github.com/Sumatoshi-tech/lintfang/pkg/tree"
	"github.com/Sumatoshi-tech/lintfang/pkg/walker"
)

// traversal phases.
const (
	phaseEnter = iota
	phaseLeave
)

// traversalStep is one pre-materialized node event.
type traversalStep struct {
	node  *tree.Node
	phase int
}

// listenerEntry associates a registered listener with its owning rule so
// failures can be decorated before propagating.
type listenerEntry struct {
	ruleID string
	fn     Listener
}

// dispatcher turns one traversal into rule-observable events and collects
// Problems. It owns the pass-scoped parent map: parent links are derived
// during materialization and discarded with the dispatcher, never written
// into the shared tree.
type dispatcher struct {
	src       *SourceCode
	parents   map[*tree.Node]*tree.Node
	steps     []traversalStep
	listeners map[string][]listenerEntry

	problems []Problem
	fatal    error
	current  *tree.Node
}

func newDispatcher(src *SourceCode) *dispatcher {
	d := &dispatcher{
		src:       src,
		parents:   make(map[*tree.Node]*tree.Node),
		listeners: make(map[string][]listenerEntry),
	}
	d.materialize()

	return d
}

// materialize runs the walker once, recording the full enter/leave queue
// and the parent of every reachable node. Materializing first means
// listener registration happens once and the traversal order is fixed and
// inspectable before any rule code runs.
func (d *dispatcher) materialize() {
	w := walker.New(
		d.src.VisitorKeys,
		func(node, parent *tree.Node) {
			d.parents[node] = parent
			d.steps = append(d.steps, traversalStep{node: node, phase: phaseEnter})
		},
		func(node, _ *tree.Node) {
			d.steps = append(d.steps, traversalStep{node: node, phase: phaseLeave})
		},
	)
	w.Traverse(d.src.AST)
}

func (d *dispatcher) register(ruleID, selector string, fn Listener) {
	d.listeners[selector] = append(d.listeners[selector], listenerEntry{ruleID: ruleID, fn: fn})
}

func (d *dispatcher) addProblem(problem Problem) {
	d.problems = append(d.problems, problem)
}

// setFatal records the first fatal defect; later ones are dropped since
// the pass aborts at the first.
func (d *dispatcher) setFatal(err error) {
	if d.fatal == nil {
		d.fatal = err
	}
}

func (d *dispatcher) currentNode() *tree.Node {
	return d.current
}

// ancestorsOfCurrent returns the current node's ancestor chain root-first,
// resolved through the pass-scoped parent map.
func (d *dispatcher) ancestorsOfCurrent() []*tree.Node {
	var chain []*tree.Node
	for node := d.parents[d.current]; node != nil; node = d.parents[node] {
		chain = append(chain, node)
	}

	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}

	return chain
}

// run replays the materialized queue through the listener tables,
// optionally routing events through the flow builder when the tree is
// Program-rooted. That wrapping is a single policy decision made once per
// pass.
func (d *dispatcher) run(flow FlowBuilder) ([]Problem, error) {
	handlers := EventHandlers{
		Enter: func(node *tree.Node) { d.emit(node.Type, node) },
		Leave: func(node *tree.Node) { d.emit(node.Type+ExitSuffix, node) },
	}

	if flow != nil && d.src.AST != nil && d.src.AST.Type == tree.Program {
		handlers = flow.Wrap(handlers)
	}

	for _, step := range d.steps {
		if d.fatal != nil {
			break
		}

		d.current = step.node

		if step.phase == phaseEnter {
			handlers.Enter(step.node)
		} else {
			handlers.Leave(step.node)
		}
	}

	if d.fatal != nil {
		return nil, d.fatal
	}

	return d.problems, nil
}

func (d *dispatcher) emit(selector string, node *tree.Node) {
	for _, entry := range d.listeners[selector] {
		if d.fatal != nil {
			return
		}

		d.invoke(entry, node)
	}
}

// invoke calls one listener with panic isolation: a panicking rule is
// converted into a RuleError carrying the rule id and the current node's
// line, which terminates the whole pass.
func (d *dispatcher) invoke(entry listenerEntry, node *tree.Node) {
	defer func() {
		if recovered := recover(); recovered != nil {
			d.setFatal(&RuleError{
				RuleID: entry.ruleID,
				Line:   nodeLine(node),
				Err:    fmt.Errorf("listener panicked: %v", recovered),
			})
		}
	}()

	entry.fn(node)
}

// registerRules resolves every configured rule, skipping disabled ones
// before any context is built, synthesizing a Problem for ids with no
// registered implementation, and registering the listeners of the rest.
func (d *dispatcher) registerRules(
	shared *sharedContext,
	ruleConfigs map[string]any,
	lookup func(string) (Rule, bool),
) error {
	ids := make([]string, 0, len(ruleConfigs))
	for id := range ruleConfigs {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	for _, id := range ids {
		severity := ResolveSeverity(ruleConfigs[id])
		if severity == SeverityOff {
			continue
		}

		rule, ok := lookup(id)
		if !ok {
			d.addProblem(missingRuleProblem(id))

			continue
		}

		ctx := newContext(shared, id, RuleOptions(ruleConfigs[id]), severity, &rule.Meta)

		listeners, err := d.createListeners(id, rule, ctx)
		if err != nil {
			return err
		}

		selectors := make([]string, 0, len(listeners))
		for selector := range listeners {
			selectors = append(selectors, selector)
		}

		sort.Strings(selectors)

		for _, selector := range selectors {
			d.register(id, selector, listeners[selector])
		}
	}

	return nil
}

func (d *dispatcher) createListeners(id string, rule Rule, ctx *Context) (listeners ListenerMap, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = &RuleError{RuleID: id, Err: fmt.Errorf("listener factory panicked: %v", recovered)}
		}
	}()

	return rule.Create(ctx), nil
}

func missingRuleProblem(id string) Problem {
	return Problem{
		RuleID:    id,
		Severity:  SeverityError,
		Message:   fmt.Sprintf("Definition for rule '%s' was not found.", id),
		Line:      1,
		Column:    1,
		EndLine:   1,
		EndColumn: 2,
	}
}

func nodeLine(node *tree.Node) int {
	if node == nil || node.Pos == nil {
		return 0
	}

	return node.Pos.StartLine
}
