package unit

import (
	"math"
	"strconv"
)

// Names is an ordered multiset of display symbols, each with an integer
// power ({m: 1, s: -1} renders as "m/s"). Symbols keep first-insertion order
// and zero powers are dropped.
//
// Names values are never modified after construction; every method returns a
// new value, so copies of a Unit never share mutable name state.
type Names struct {
	order  []string
	powers map[string]int
}

// NewNames returns Names holding a single symbol with power 1.
func NewNames(symbol string) Names {
	return Names{}.With(symbol, 1)
}

// With returns a copy with power added to symbol.
func (n Names) With(symbol string, power int) Names {
	out := n.clone()
	out.add(symbol, power)
	return out
}

// Len returns the number of symbols with a non-zero power.
func (n Names) Len() int {
	return len(n.order)
}

// Symbols returns the symbols in insertion order.
func (n Names) Symbols() []string {
	out := make([]string, len(n.order))
	copy(out, n.order)
	return out
}

// Power returns the power of symbol, or 0 if absent.
func (n Names) Power(symbol string) int {
	return n.powers[symbol]
}

// Merge returns the union of a and b with powers summed.
func Merge(a, b Names) Names {
	out := a.clone()
	for _, sym := range b.order {
		out.add(sym, b.powers[sym])
	}
	return out
}

// Difference returns a with the powers of b subtracted.
func Difference(a, b Names) Names {
	out := a.clone()
	for _, sym := range b.order {
		out.add(sym, -b.powers[sym])
	}
	return out
}

// Scale multiplies every power by k.
func (n Names) Scale(k int) Names {
	var out Names
	for _, sym := range n.order {
		out.add(sym, n.powers[sym]*k)
	}
	return out
}

func (n Names) maxAbs() int {
	m := 0
	for _, p := range n.powers {
		m = max(m, absInt(p))
	}
	return m
}

// Root divides every power by r. The second result is false when some power
// is not a multiple of r.
func (n Names) Root(r int) (Names, bool) {
	if r == 0 {
		return Names{}, false
	}
	var out Names
	for _, sym := range n.order {
		p := n.powers[sym]
		if p%r != 0 {
			return Names{}, false
		}
		out.add(sym, p/r)
	}
	return out, true
}

// Equal reports whether both multisets hold the same symbols and powers in
// the same order.
func (n Names) Equal(o Names) bool {
	if len(n.order) != len(o.order) {
		return false
	}
	for i, sym := range n.order {
		if o.order[i] != sym || o.powers[sym] != n.powers[sym] {
			return false
		}
	}
	return true
}

func (n Names) clone() Names {
	out := Names{
		order:  make([]string, len(n.order), len(n.order)+1),
		powers: make(map[string]int, len(n.powers)+1),
	}
	copy(out.order, n.order)
	for k, v := range n.powers {
		out.powers[k] = v
	}
	return out
}

// add mutates the receiver; only called on freshly cloned values.
func (n *Names) add(symbol string, power int) {
	if power == 0 {
		return
	}
	if n.powers == nil {
		n.powers = make(map[string]int)
	}
	current, ok := n.powers[symbol]
	if !ok {
		n.order = append(n.order, symbol)
	}
	current += power
	if current != 0 {
		n.powers[symbol] = current
		return
	}
	delete(n.powers, symbol)
	for i, sym := range n.order {
		if sym == symbol {
			n.order = append(n.order[:i:i], n.order[i+1:]...)
			break
		}
	}
}

// FormatNumber is the canonical text of a numeric name term: the shortest
// decimal that round-trips to the same float64.
func FormatNumber(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e21 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
