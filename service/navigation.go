package service

import (
	"fmt"
	"slices"

	"github.com/beka-birhanu/vinom-backrooms/maze"
	"github.com/beka-birhanu/vinom-backrooms/service/i"
)

// navigation rebuilds the walkable graph once every room of a run is placed and
// solves the entry to exit route on it.
type navigation struct {
	logger i.Logger
	graph  map[maze.Cell][]maze.Cell
	route  []maze.Cell
}

var _ maze.Notifier = &navigation{}

// GenerationComplete implements maze.Notifier.
func (n *navigation) GenerationComplete(result *maze.Result) {
	n.graph = make(map[maze.Cell][]maze.Cell, len(result.Order))
	for _, p := range result.Passages {
		n.graph[p.From] = append(n.graph[p.From], p.To)
		n.graph[p.To] = append(n.graph[p.To], p.From)
	}

	n.route = n.solve(result.Entry, result.Exit)
	if n.route == nil {
		n.logger.Warning(fmt.Sprintf("navigation: no route from %s to %s", result.Entry, result.Exit))
		return
	}
	n.logger.Info(fmt.Sprintf("navigation rebuilt: %d nodes, route length %d", len(n.graph), len(n.route)))
}

// solve runs a breadth-first search and returns the route from start to end inclusive.
func (n *navigation) solve(start, end maze.Cell) []maze.Cell {
	if start == end {
		return []maze.Cell{start}
	}

	cameFrom := map[maze.Cell]maze.Cell{start: start}
	queue := []maze.Cell{start}
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		if curr == end {
			path := []maze.Cell{curr}
			for curr != start {
				curr = cameFrom[curr]
				path = append(path, curr)
			}
			slices.Reverse(path)
			return path
		}

		for _, next := range n.graph[curr] {
			if _, seen := cameFrom[next]; !seen {
				cameFrom[next] = curr
				queue = append(queue, next)
			}
		}
	}
	return nil
}
