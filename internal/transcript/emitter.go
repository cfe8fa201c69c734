// Package transcript derives the turn-by-turn movement log from an
// assembled schedule.
package transcript

import (
	"fmt"
	"strings"

	"github.com/Edugs94/fly-in/internal/route"
	"github.com/Edugs94/fly-in/internal/teg"
)

// Emit produces one line per turn that has at least one drone record,
// tokens ordered by ascending drone id, per spec.md §4.6/§6.
func Emit(g *teg.Graph, schedule *route.Schedule) []string {
	events := map[int]map[int]string{}
	lastTurn := 0

	for _, d := range schedule.Order {
		path := schedule.Routes[d]
		if len(path) == 0 {
			continue
		}
		if arrival := g.Node(path[len(path)-1]).Turn; arrival > lastTurn {
			lastTurn = arrival
		}

		for i := 0; i < len(path)-1; i++ {
			u, v := path[i], path[i+1]
			uNode, vNode := g.Node(u), g.Node(v)
			if uNode.Hub.Name == vNode.Hub.Name {
				continue // wait edge: nothing to emit
			}

			duration := vNode.Turn - uNode.Turn
			var token string
			if duration == 2 {
				token = fmt.Sprintf("D%d-%s-%s", d, uNode.Hub.Name, vNode.Hub.Name)
			} else {
				token = fmt.Sprintf("D%d-%s", d, vNode.Hub.Name)
			}

			recordEvent(events, uNode.Turn, d, token)
			if duration == 2 {
				recordEvent(events, uNode.Turn+1, d, token)
			}
		}
	}

	var lines []string
	for t := 0; t < lastTurn; t++ {
		perTurn, ok := events[t]
		if !ok {
			continue
		}
		tokens := make([]string, 0, len(perTurn))
		for _, d := range schedule.Order {
			if tok, ok := perTurn[d]; ok {
				tokens = append(tokens, tok)
			}
		}
		if len(tokens) > 0 {
			lines = append(lines, strings.Join(tokens, " "))
		}
	}
	return lines
}

func recordEvent(events map[int]map[int]string, turn, drone int, token string) {
	perTurn, ok := events[turn]
	if !ok {
		perTurn = make(map[int]string)
		events[turn] = perTurn
	}
	perTurn[drone] = token
}
