package quant

import (
	"image"
	"image/color"
	"sort"
)

// Only the top bits of each channel are considered
const octreeDepth = 6

type octreeNode struct {
	r, g, b  uint64
	count    uint64
	leaf     bool
	children [8]*octreeNode
}

type octree struct {
	root   *octreeNode
	levels [octreeDepth][]*octreeNode
	leaves int
}

func childIndex(c color.NRGBA, level int) int {
	shift := 7 - uint(level)
	return int(c.R>>shift&1)<<2 | int(c.G>>shift&1)<<1 | int(c.B>>shift&1)
}

func newOctree(m image.Image) *octree {
	t := &octree{root: new(octreeNode)}
	t.levels[0] = []*octreeNode{t.root}

	b := m.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			t.add(color.NRGBAModel.Convert(m.At(x, y)).(color.NRGBA))
		}
	}
	return t
}

func (t *octree) add(c color.NRGBA) {
	n := t.root
	for level := 0; level < octreeDepth; level++ {
		i := childIndex(c, level)
		if n.children[i] == nil {
			child := new(octreeNode)
			if level == octreeDepth-1 {
				child.leaf = true
				t.leaves++
			} else {
				t.levels[level+1] = append(t.levels[level+1], child)
			}
			n.children[i] = child
		}
		n = n.children[i]
	}
	n.r += uint64(c.R)
	n.g += uint64(c.G)
	n.b += uint64(c.B)
	n.count++
}

// weight is the number of pixels below n, only valid once every child of n
// is a leaf
func (n *octreeNode) weight() uint64 {
	w := n.count
	for _, c := range n.children {
		if c != nil {
			w += c.count
		}
	}
	return w
}

// merge folds the leaf children of n into n
func (t *octree) merge(n *octreeNode) {
	removed := 0
	for i, c := range n.children {
		if c == nil {
			continue
		}
		n.r += c.r
		n.g += c.g
		n.b += c.b
		n.count += c.count
		n.children[i] = nil
		removed++
	}
	n.leaf = true
	t.leaves -= removed - 1
}

func (t *octree) reduce(max int) {
	for level := octreeDepth - 1; level >= 0 && t.leaves > max; level-- {
		nodes := t.levels[level]
		sort.SliceStable(nodes, func(i, j int) bool {
			return nodes[i].weight() < nodes[j].weight()
		})
		for _, n := range nodes {
			if t.leaves <= max {
				break
			}
			t.merge(n)
		}
	}
}

func (t *octree) collect(n *octreeNode, p color.Palette) color.Palette {
	if n.leaf {
		if n.count == 0 {
			return p
		}
		return append(p, color.RGBA{
			uint8(n.r / n.count),
			uint8(n.g / n.count),
			uint8(n.b / n.count),
			0xff,
		})
	}
	for _, c := range n.children {
		if c != nil {
			p = t.collect(c, p)
		}
	}
	return p
}

// palette reduces the tree to at most max leaves and returns their average
// colors
func (t *octree) palette(max int) color.Palette {
	t.reduce(max)
	return t.collect(t.root, nil)
}
