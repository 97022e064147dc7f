package model

import (
	"errors"
	"fmt"
	"math"

	"github.com/idlab-discover/ecoscore-cli/internal/features"
)

// treeNode is one node of an XGBoost JSON dump. Split nodes carry children;
// leaves carry a value. Gain and Cover come from dumps written with
// with_stats=True and are not used for scoring.
type treeNode struct {
	NodeID         int        `json:"nodeid" yaml:"nodeid"`
	Depth          int        `json:"depth" yaml:"depth"`
	Split          string     `json:"split" yaml:"split"`
	SplitCondition float64    `json:"split_condition" yaml:"split_condition"`
	Yes            int        `json:"yes" yaml:"yes"`
	No             int        `json:"no" yaml:"no"`
	Missing        *int       `json:"missing" yaml:"missing"`
	Children       []treeNode `json:"children" yaml:"children"`
	Leaf           *float64   `json:"leaf" yaml:"leaf"`
	Gain           float64    `json:"gain" yaml:"gain"`
	Cover          float64    `json:"cover" yaml:"cover"`
}

type node struct {
	leaf      bool
	value     float64
	feature   int
	threshold float64
	yes       int
	no        int
	missing   int
}

// tree is indexed by node id.
type tree []node

// ensemble is a sum of regression trees on top of a base score.
type ensemble struct {
	base  float64
	trees []tree
}

func compileEnsemble(roots []treeNode, base float64) (*ensemble, error) {
	if len(roots) == 0 {
		return nil, errors.New("tree ensemble has no trees")
	}
	e := &ensemble{base: base, trees: make([]tree, 0, len(roots))}
	for i, r := range roots {
		t, err := compileTree(r)
		if err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
		e.trees = append(e.trees, t)
	}
	return e, nil
}

func compileTree(root treeNode) (tree, error) {
	flat := map[int]treeNode{}
	var collect func(n treeNode) error
	collect = func(n treeNode) error {
		if _, dup := flat[n.NodeID]; dup {
			return fmt.Errorf("duplicate node id %d", n.NodeID)
		}
		flat[n.NodeID] = n
		for _, c := range n.Children {
			if err := collect(c); err != nil {
				return err
			}
		}
		return nil
	}
	if err := collect(root); err != nil {
		return nil, err
	}
	if root.NodeID != 0 {
		return nil, fmt.Errorf("root node id is %d, want 0", root.NodeID)
	}

	maxID := 0
	for id := range flat {
		if id < 0 {
			return nil, fmt.Errorf("negative node id %d", id)
		}
		maxID = max(maxID, id)
	}

	t := make(tree, maxID+1)
	present := make([]bool, maxID+1)
	for id, n := range flat {
		present[id] = true
		if n.Leaf != nil {
			t[id] = node{leaf: true, value: *n.Leaf}
			continue
		}
		col, ok := features.ColumnIndex(n.Split)
		if !ok {
			return nil, fmt.Errorf("node %d splits on unknown feature %q", id, n.Split)
		}
		missing := n.Yes
		if n.Missing != nil {
			missing = *n.Missing
		}
		t[id] = node{feature: col, threshold: n.SplitCondition, yes: n.Yes, no: n.No, missing: missing}
	}

	// Children always carry larger ids than their parent, so walks terminate.
	for id, n := range t {
		if !present[id] || n.leaf {
			continue
		}
		for _, c := range []int{n.yes, n.no, n.missing} {
			if c <= id || c > maxID || !present[c] {
				return nil, fmt.Errorf("node %d references invalid child %d", id, c)
			}
		}
	}
	return t, nil
}

func (t tree) eval(row features.Row) float64 {
	i := 0
	for {
		n := t[i]
		if n.leaf {
			return n.value
		}
		v := row[n.feature]
		switch {
		case math.IsNaN(v):
			i = n.missing
		case v < n.threshold:
			i = n.yes
		default:
			i = n.no
		}
	}
}

func (e *ensemble) Predict(row features.Row) (float64, error) {
	if err := checkWidth(row); err != nil {
		return 0, err
	}
	sum := e.base
	for _, t := range e.trees {
		sum += t.eval(row)
	}
	return sum, nil
}
