package search

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/FreddieMercy/minigo/internal/goboard"
)

// Exploration constant for the PUCT selection rule.
const cPUCT = 1.38

// Node is one node of the search tree. Child statistics live on the parent,
// indexed by flat move, so unvisited moves still have visit counts and priors
// available for selection and for policy targets.
//
// Accumulated values are kept from Black's perspective throughout; Q > 0
// favors Black no matter whose turn it is.
type Node struct {
	parent     *Node
	fmove      int
	pos        *goboard.Position
	expanded   bool
	visits     int
	totalValue float64
	childN     []float64
	childW     []float64
	priors     []float64
	children   map[int]*Node
}

// NewNode creates a detached root for pos.
func NewNode(pos *goboard.Position) *Node {
	return newNode(nil, -1, pos)
}

func newNode(parent *Node, fmove int, pos *goboard.Position) *Node {
	n := goboard.NumMoves(pos.Size())
	return &Node{
		parent:   parent,
		fmove:    fmove,
		pos:      pos,
		childN:   make([]float64, n),
		childW:   make([]float64, n),
		priors:   make([]float64, n),
		children: make(map[int]*Node),
	}
}

func (n *Node) Position() *goboard.Position { return n.pos }

func (n *Node) Parent() *Node { return n.parent }

func (n *Node) Visits() int { return n.visits }

func (n *Node) Expanded() bool { return n.expanded }

// ChildVisits returns a copy of the per-child visit counts, pass included.
func (n *Node) ChildVisits() []float64 {
	return append([]float64(nil), n.childN...)
}

// Q is the mean value of the node from Black's perspective.
func (n *Node) Q() float64 {
	if n.visits == 0 {
		return 0
	}
	return n.totalValue / float64(n.visits)
}

// QPerspective is Q seen from the side to move.
func (n *Node) QPerspective() float64 {
	return n.Q() * float64(n.pos.ToPlay())
}

func (n *Node) childQ(f int) float64 {
	if n.childN[f] == 0 {
		return 0
	}
	return n.childW[f] / n.childN[f]
}

// SelectLeaf walks down from n by the PUCT rule until it reaches a node that
// has not been expanded yet, materializing children along the way.
func (n *Node) SelectLeaf() (*Node, error) {
	cur := n
	for cur.expanded {
		toPlay := float64(cur.pos.ToPlay())
		sqrtN := math.Sqrt(float64(cur.visits) + 1)
		best, bestScore := -1, math.Inf(-1)
		for f := range cur.priors {
			if cur.priors[f] == 0 && cur.childN[f] == 0 {
				continue
			}
			score := cur.childQ(f)*toPlay + cPUCT*cur.priors[f]*sqrtN/(1+cur.childN[f])
			if score > bestScore {
				bestScore = score
				best = f
			}
		}
		if best < 0 {
			// Expanded node with every move masked off; treat as a leaf.
			return cur, nil
		}
		child, err := cur.maybeAddChild(best)
		if err != nil {
			return nil, fmt.Errorf("select leaf: %w", err)
		}
		cur = child
	}
	return cur, nil
}

func (n *Node) maybeAddChild(f int) (*Node, error) {
	if child, ok := n.children[f]; ok {
		return child, nil
	}
	next, err := n.pos.PlayMove(goboard.Unflatten(n.pos.Size(), f))
	if err != nil {
		return nil, err
	}
	child := newNode(n, f, next)
	n.children[f] = child
	return child, nil
}

// IncorporateResults installs the evaluation of this leaf and folds its value
// back up to upTo. Priors for illegal moves are zeroed and the rest
// renormalized. value is in [-1, 1] from the side to move's perspective.
// Terminal leaves are never expanded so they stay revisitable.
func (n *Node) IncorporateResults(priors []float64, value float64, upTo *Node) {
	if !n.expanded && !n.pos.IsGameOver() {
		legal := n.pos.AllLegalMoves()
		var sum float64
		for f := range n.priors {
			if f < len(priors) && legal[f] {
				n.priors[f] = priors[f]
				sum += priors[f]
			} else {
				n.priors[f] = 0
			}
		}
		if sum > 0 {
			for f := range n.priors {
				n.priors[f] /= sum
			}
		} else {
			// Evaluator put no mass on legal moves; fall back to uniform.
			var count float64
			for _, ok := range legal {
				if ok {
					count++
				}
			}
			for f, ok := range legal {
				if ok {
					n.priors[f] = 1 / count
				}
			}
		}
		n.expanded = true
	}
	n.backup(value*float64(n.pos.ToPlay()), upTo)
}

// backup adds a Black-perspective value along the path from n up to upTo.
func (n *Node) backup(blackValue float64, upTo *Node) {
	for cur := n; cur != nil; cur = cur.parent {
		cur.visits++
		cur.totalValue += blackValue
		if cur.parent != nil {
			cur.parent.childN[cur.fmove]++
			cur.parent.childW[cur.fmove] += blackValue
		}
		if cur == upTo {
			return
		}
	}
}

// AdvanceRoot makes the child for flat move f the new root, creating it if it
// was never visited, and releases every sibling subtree of the old root. The
// returned node is detached from its parent.
func (n *Node) AdvanceRoot(f int) (*Node, error) {
	child, err := n.maybeAddChild(f)
	if err != nil {
		return nil, err
	}
	child.parent = nil
	n.children = nil
	return child, nil
}

// ChildrenAsPi returns the normalized child-visit distribution. With squash
// set, counts are sharpened before normalizing so the distribution
// concentrates on the most-visited move.
func (n *Node) ChildrenAsPi(squash bool) []float64 {
	probs := n.ChildVisits()
	var sum float64
	for f := range probs {
		if squash {
			probs[f] = math.Pow(probs[f], 8)
		}
		sum += probs[f]
	}
	if sum > 0 {
		for f := range probs {
			probs[f] /= sum
		}
	}
	return probs
}

// MostVisitedPath renders the chain of most-visited children from n as text,
// e.g. "D4 (132) ==> C3 (75) ==> Q: 0.123".
func (n *Node) MostVisitedPath() string {
	var parts []string
	cur := n
	for {
		best, bestN := -1, 0.0
		for f, v := range cur.childN {
			if v > bestN {
				bestN = v
				best = f
			}
		}
		if best < 0 {
			break
		}
		child, ok := cur.children[best]
		if !ok {
			break
		}
		parts = append(parts, fmt.Sprintf("%s (%d)",
			goboard.HumanCoord(cur.pos.Size(), goboard.Unflatten(cur.pos.Size(), best)), int(bestN)))
		cur = child
	}
	parts = append(parts, fmt.Sprintf("Q: %.5f", n.Q()))
	return strings.Join(parts, " ==> ")
}

// Describe summarizes the root statistics and its strongest children.
func (n *Node) Describe() string {
	size := n.pos.Size()
	type childStat struct {
		f int
		v float64
	}
	stats := make([]childStat, 0, len(n.childN))
	for f, v := range n.childN {
		if v > 0 {
			stats = append(stats, childStat{f, v})
		}
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].v > stats[j].v })

	var b strings.Builder
	fmt.Fprintf(&b, "Q: %.5f, visits: %d\n", n.Q(), n.visits)
	fmt.Fprintf(&b, "%s\n", n.MostVisitedPath())
	const maxLines = 10
	for i, s := range stats {
		if i >= maxLines {
			break
		}
		fmt.Fprintf(&b, "%s N=%d Q=%.3f P=%.3f\n",
			goboard.HumanCoord(size, goboard.Unflatten(size, s.f)),
			int(s.v), n.childQ(s.f), n.priors[s.f])
	}
	return b.String()
}
