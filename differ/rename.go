package differ

import (
	"slices"

	"github.com/erraggy/oasdelta/internal/maputil"
	"github.com/erraggy/oasdelta/internal/pathutil"
	"github.com/erraggy/oasdelta/parser"
)

// candidateTable counts rename evidence: old name -> new name -> votes.
type candidateTable map[string]map[string]int

func (t candidateTable) vote(oldName, newName string) {
	targets, ok := t[oldName]
	if !ok {
		targets = make(map[string]int)
		t[oldName] = targets
	}
	targets[newName]++
}

// renameDecision is the resolved target for one removed schema.
type renameDecision struct {
	oldName string
	newName string
	status  RenameStatus
}

type renamePair struct {
	oldName, newName string
}

// renameEngine pairs schemas reported as removed with schemas reported as
// new. Evidence comes from $ref changes already present in the diff, and
// every resolved pair is walked for nested refs, so a child rename that is
// only visible through its parent is found on a later iteration.
type renameEngine struct {
	source, target parser.Document
	removed, added map[string]bool
	candidates     candidateTable
	processed      map[renamePair]bool
	logger         parser.Logger
}

// detectRenames rewrites result so that renamed schemas are reported as
// renames instead of an unrelated removal and addition.
func detectRenames(result *DiffResult, source, target parser.Document, logger parser.Logger) {
	removed := result.RemovedComponents[ComponentSchemas]
	added := result.NewComponents[ComponentSchemas]
	if len(removed) == 0 || len(added) == 0 {
		return
	}
	if logger == nil {
		logger = parser.NopLogger{}
	}

	e := &renameEngine{
		source:     source,
		target:     target,
		removed:    toSet(removed),
		added:      toSet(added),
		candidates: make(candidateTable),
		processed:  make(map[renamePair]bool),
		logger:     logger,
	}

	e.seed(result)
	e.logger.Debug("rename seeds collected", "removed", len(removed), "new", len(added), "candidates", len(e.candidates))

	for iteration := 1; ; iteration++ {
		progressed := 0
		for _, dec := range e.resolveAll() {
			pair := renamePair{dec.oldName, dec.newName}
			if e.processed[pair] {
				continue
			}
			e.processed[pair] = true
			progressed++

			sourceSchema, _ := e.source.Schema(dec.oldName)
			targetSchema, _ := e.target.Schema(dec.newName)
			e.propagate(sourceSchema, targetSchema)
		}
		e.logger.Debug("rename iteration", "iteration", iteration, "new_pairs", progressed, "candidates", len(e.candidates))
		if progressed == 0 {
			break
		}
	}

	decisions := e.resolveAll()
	e.apply(result, decisions)
	e.logger.Debug("rename detection finished", "renames", len(decisions))
}

// register records one vote when sourceRef names a removed schema and
// targetRef names a new one.
func (e *renameEngine) register(sourceRef, targetRef any) {
	sr, ok := sourceRef.(string)
	if !ok {
		return
	}
	tr, ok := targetRef.(string)
	if !ok {
		return
	}
	oldName, ok := pathutil.SchemaNameFromRef(sr)
	if !ok || !e.removed[oldName] {
		return
	}
	newName, ok := pathutil.SchemaNameFromRef(tr)
	if !ok || !e.added[newName] {
		return
	}
	e.candidates.vote(oldName, newName)
}

// seed scans the path and component diffs for $ref changes, and for
// combinators where exactly one ref member was swapped for another.
func (e *renameEngine) seed(result *DiffResult) {
	visit := func(d *SchemaDiff) {
		if d.Ref != nil {
			e.register(d.Ref.Old, d.Ref.New)
		}
		for _, name := range maputil.SortedKeys(d.Combinators) {
			change := d.Combinators[name]
			if len(change.Added) != 1 || len(change.Removed) != 1 {
				continue
			}
			removed, _ := change.Removed[0].(map[string]any)
			added, _ := change.Added[0].(map[string]any)
			e.register(removed["$ref"], added["$ref"])
		}
	}

	for _, path := range maputil.SortedKeys(result.ModifiedPaths) {
		walkSchemaDiffs(result.ModifiedPaths[path], visit)
	}
	for _, category := range maputil.SortedKeys(result.ModifiedComponents) {
		modified := result.ModifiedComponents[category]
		for _, name := range maputil.SortedKeys(modified) {
			walkSchemaDiffs(modified[name], visit)
		}
	}
}

// resolveAll decides a target for every old name with candidates, in name
// order.
func (e *renameEngine) resolveAll() []renameDecision {
	var decisions []renameDecision
	for _, oldName := range maputil.SortedKeys(e.candidates) {
		if dec, ok := e.resolve(oldName); ok {
			decisions = append(decisions, dec)
		}
	}
	return decisions
}

// resolve picks the target for oldName. Content-identical targets win,
// by vote count then by name. Without one, the target with the smallest
// schema diff wins and the rename is reported as a modification.
func (e *renameEngine) resolve(oldName string) (renameDecision, bool) {
	sourceSchema, ok := e.source.Schema(oldName)
	if !ok {
		return renameDecision{}, false
	}
	votes := e.candidates[oldName]
	targets := maputil.SortedKeys(votes)

	var identical []string
	for _, name := range targets {
		targetSchema, ok := e.target.Schema(name)
		if ok && contentIdentical(e.source, e.target, sourceSchema, targetSchema) {
			identical = append(identical, name)
		}
	}

	if len(identical) > 0 {
		best := identical[0]
		for _, name := range identical[1:] {
			if votes[name] > votes[best] {
				best = name
			}
		}
		e.logger.Debug("rename resolved", "old", oldName, "new", best, "status", string(RenameStatusRename),
			"identical", len(identical), "votes", votes[best])
		return renameDecision{oldName: oldName, newName: best, status: RenameStatusRename}, true
	}

	best, bestScore := "", 0
	for _, name := range targets {
		targetSchema, ok := e.target.Schema(name)
		if !ok {
			continue
		}
		score := diffSchema(sourceSchema, targetSchema).Size()
		if best == "" || score < bestScore {
			best, bestScore = name, score
		}
	}
	if best == "" {
		return renameDecision{}, false
	}
	e.logger.Debug("rename resolved", "old", oldName, "new", best, "status", string(RenameStatusModification),
		"score", bestScore)
	return renameDecision{oldName: oldName, newName: best, status: RenameStatusModification}, true
}

// propagate walks two schema bodies side by side along their literal
// nesting and registers every pair of refs found in matching slots.
func (e *renameEngine) propagate(source, target map[string]any) {
	if source == nil || target == nil {
		return
	}
	e.register(source["$ref"], target["$ref"])

	sp, _ := source["properties"].(map[string]any)
	tp, _ := target["properties"].(map[string]any)
	for _, name := range maputil.SortedKeys(sp) {
		if tv, ok := tp[name]; ok {
			e.propagateValues(sp[name], tv)
		}
	}

	if si, ok := source["items"]; ok {
		if ti, ok := target["items"]; ok {
			e.propagateValues(si, ti)
		}
	}

	for _, name := range schemaCombinators {
		sl, _ := source[name].([]any)
		tl, _ := target[name].([]any)
		if len(sl) == 0 || len(sl) != len(tl) {
			continue
		}
		for i := range sl {
			e.propagateValues(sl[i], tl[i])
		}
	}
}

func (e *renameEngine) propagateValues(source, target any) {
	sm, _ := source.(map[string]any)
	tm, _ := target.(map[string]any)
	e.propagate(sm, tm)
}

// apply records the decisions in result.
func (e *renameEngine) apply(result *DiffResult, decisions []renameDecision) {
	if len(decisions) == 0 {
		return
	}

	renamed := make(map[string]string, len(decisions))
	targets := make(map[string]bool, len(decisions))
	modified := result.ModifiedComponents[ComponentSchemas]
	if modified == nil {
		modified = make(map[string]Node)
		result.ModifiedComponents[ComponentSchemas] = modified
	}

	for _, dec := range decisions {
		renamed[dec.oldName] = dec.newName
		targets[dec.newName] = true

		sourceSchema, _ := e.source.Schema(dec.oldName)
		targetSchema, _ := e.target.Schema(dec.newName)
		diff := diffSchema(sourceSchema, targetSchema)
		if diff == nil {
			diff = &SchemaDiff{}
		}
		diff.Rename = &RenameInfo{NewName: dec.newName, Status: dec.status}
		modified[dec.oldName] = diff
	}

	result.RenamedComponents[ComponentSchemas] = renamed
	result.RemovedComponents[ComponentSchemas] = slices.DeleteFunc(result.RemovedComponents[ComponentSchemas], func(name string) bool {
		_, ok := renamed[name]
		return ok
	})
	result.NewComponents[ComponentSchemas] = slices.DeleteFunc(result.NewComponents[ComponentSchemas], func(name string) bool {
		return targets[name]
	})
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}
