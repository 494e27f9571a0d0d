package ssa

import (
	"sort"

	"github.com/briolir/briolir/internal/cfg"
	"github.com/briolir/briolir/internal/ir"
)

// blockSet is a set of basic blocks, used throughout the dominator engine
// (spec.md §4.3).
type blockSet map[*cfg.BasicBlock]bool

func (s blockSet) clone() blockSet {
	out := make(blockSet, len(s))
	for b := range s {
		out[b] = true
	}
	return out
}

func (s blockSet) intersect(other blockSet) {
	for b := range s {
		if !other[b] {
			delete(s, b)
		}
	}
}

func (s blockSet) equal(other blockSet) bool {
	if len(s) != len(other) {
		return false
	}
	for b := range s {
		if !other[b] {
			return false
		}
	}
	return true
}

// DomInfo bundles the dominator sets, immediate dominators, dominance
// frontiers, and dominator-tree children for one function's CFG (spec.md
// §3, "Dominator data").
type DomInfo struct {
	Dom      map[*cfg.BasicBlock]blockSet
	Idom     map[*cfg.BasicBlock]*cfg.BasicBlock
	DF       map[*cfg.BasicBlock]blockSet
	Children map[*cfg.BasicBlock][]*cfg.BasicBlock
}

// ComputeDominance runs the full dominator engine (component C) over c.
func ComputeDominance(fnName string, c *cfg.CFG) (*DomInfo, error) {
	dom := computeDominatorSets(c)
	idom, err := computeImmediateDominators(fnName, c, dom)
	if err != nil {
		return nil, err
	}
	df := computeDominanceFrontiers(c, idom)
	children := computeDomTreeChildren(c, idom)
	return &DomInfo{Dom: dom, Idom: idom, DF: df, Children: children}, nil
}

// computeDominatorSets is the iterative fixed-point algorithm of spec.md
// §4.3: dom[entry] = {entry}; dom[b] = universe for all others; repeat
// dom[b] = {b} ∪ ⋂ dom[preds(b)] until no change.
func computeDominatorSets(c *cfg.CFG) map[*cfg.BasicBlock]blockSet {
	blocks := c.OrderedBlocks()
	universe := make(blockSet, len(blocks))
	for _, b := range blocks {
		universe[b] = true
	}

	dom := make(map[*cfg.BasicBlock]blockSet, len(blocks))
	dom[c.Entry] = blockSet{c.Entry: true}
	for _, b := range blocks {
		if b == c.Entry {
			continue
		}
		dom[b] = universe.clone()
	}

	for changed := true; changed; {
		changed = false
		for _, b := range blocks {
			if b == c.Entry {
				continue
			}
			var next blockSet
			if len(b.Preds) == 0 {
				next = blockSet{b: true}
			} else {
				next = dom[b.Preds[0]].clone()
				for _, p := range b.Preds[1:] {
					next.intersect(dom[p])
				}
				next[b] = true
			}
			if !next.equal(dom[b]) {
				dom[b] = next
				changed = true
			}
		}
	}
	return dom
}

// computeImmediateDominators picks, for each non-entry block, the member of
// dom[b]\{b} with the largest dominator set (spec.md §4.3).
func computeImmediateDominators(fnName string, c *cfg.CFG, dom map[*cfg.BasicBlock]blockSet) (map[*cfg.BasicBlock]*cfg.BasicBlock, error) {
	idom := make(map[*cfg.BasicBlock]*cfg.BasicBlock, len(dom))
	idom[c.Entry] = nil

	for _, b := range c.OrderedBlocks() {
		if b == c.Entry {
			continue
		}
		maxSize := -1
		for d := range dom[b] {
			if d == b {
				continue
			}
			if n := len(dom[d]); n > maxSize {
				maxSize = n
			}
		}
		if maxSize < 0 {
			return nil, ir.NewError(ir.StructuralCFG, fnName,
				"block "+b.Label+" has no dominator other than itself").WithBlock(b.Label, -1)
		}
		var candidates []*cfg.BasicBlock
		for d := range dom[b] {
			if d != b && len(dom[d]) == maxSize {
				candidates = append(candidates, d)
			}
		}
		if len(candidates) != 1 {
			sort.Slice(candidates, func(i, j int) bool { return candidates[i].Label < candidates[j].Label })
			return nil, ir.NewError(ir.StructuralCFG, fnName,
				"block "+b.Label+" has no unique immediate dominator").WithBlock(b.Label, -1)
		}
		idom[b] = candidates[0]
	}
	return idom, nil
}

// computeDominanceFrontiers implements spec.md §4.3: for each block b with
// two or more predecessors, walk each predecessor up the idom chain, adding
// b to the frontier at every step up to (excluding) idom[b].
func computeDominanceFrontiers(c *cfg.CFG, idom map[*cfg.BasicBlock]*cfg.BasicBlock) map[*cfg.BasicBlock]blockSet {
	df := make(map[*cfg.BasicBlock]blockSet, len(c.Order))
	for _, b := range c.OrderedBlocks() {
		df[b] = blockSet{}
	}
	for _, b := range c.OrderedBlocks() {
		if len(b.Preds) < 2 {
			continue
		}
		for _, p := range b.Preds {
			for cur := p; cur != idom[b]; cur = idom[cur] {
				df[cur][b] = true
				if cur == c.Entry {
					break
				}
			}
		}
	}
	return df
}

// computeDomTreeChildren groups blocks by their immediate dominator and
// sorts each parent's children by label for deterministic traversal.
func computeDomTreeChildren(c *cfg.CFG, idom map[*cfg.BasicBlock]*cfg.BasicBlock) map[*cfg.BasicBlock][]*cfg.BasicBlock {
	children := make(map[*cfg.BasicBlock][]*cfg.BasicBlock)
	for _, b := range c.OrderedBlocks() {
		if b == c.Entry {
			continue
		}
		p := idom[b]
		children[p] = append(children[p], b)
	}
	for p := range children {
		sort.Slice(children[p], func(i, j int) bool { return children[p][i].Label < children[p][j].Label })
	}
	return children
}
