//go:build ignore

// Command gen builds the packed dictionary index from the sorted bip39
// word list and writes it to tables.go.
//
// The 2048 words are split in three rounds: 9 groups at first letter
// boundaries, 9 cells per group and at most 9 ranges of at most 6 words
// per cell. Each round minimizes a cost by dynamic programming; cuts
// between words sharing long prefixes are penalized so the labels stay
// short and distinct.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"go/format"
	"log"
	"os"

	"seedhammer.com/recovery/bip39"
)

var output = flag.String("o", "tables.go", "output file")

const inf = 1 << 62

var words = bip39.Wordlist

func lcp(a, b string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}

// boundary is the common prefix length across the cut before word b.
func boundary(b int) int {
	return lcp(words[b-1], words[b])
}

type splitter struct {
	kmin, kmax int
	smin, smax int
	cost       func(size, n int) int
	penalty    func(cut int) int
	allowed    func(cut int) bool
}

// split partitions words[lo:hi] into between kmin and kmax parts and
// returns the cut points including lo and hi.
func (s splitter) split(lo, hi int) []int {
	n := hi - lo
	dp := make([][]int, s.kmax+1)
	prev := make([][]int, s.kmax+1)
	for k := range dp {
		dp[k] = make([]int, n+1)
		prev[k] = make([]int, n+1)
		for i := range dp[k] {
			dp[k][i], prev[k][i] = inf, -1
		}
	}
	dp[0][0] = 0
	for k := 1; k <= s.kmax; k++ {
		for i := 1; i <= n; i++ {
			if i < n && !s.allowed(lo+i) {
				continue
			}
			best, arg := inf, -1
			for j := max(0, i-s.smax); j <= i-s.smin; j++ {
				if dp[k-1][j] >= inf {
					continue
				}
				c := dp[k-1][j] + s.cost(i-j, n)
				if j > 0 {
					c += s.penalty(lo + j)
				}
				if c < best {
					best, arg = c, j
				}
			}
			dp[k][i], prev[k][i] = best, arg
		}
	}
	bestk, best := -1, inf
	for k := s.kmin; k <= s.kmax; k++ {
		if dp[k][n] < best {
			best, bestk = dp[k][n], k
		}
	}
	if bestk <= 0 {
		log.Fatalf("gen: no split of [%d,%d)", lo, hi)
	}
	cuts := make([]int, bestk+1)
	i := n
	for k := bestk; k > 0; k-- {
		cuts[k] = lo + i
		i = prev[k][i]
	}
	cuts[0] = lo
	return cuts
}

// prefix returns the number of leading characters needed to tell the
// words in [start,end) apart from their neighbours.
func prefix(start, end int) int {
	first, last := words[start], words[end-1]
	need := 1
	if start > 0 {
		need = max(need, lcp(words[start-1], first)+1)
	}
	if first[0] != last[0] {
		return min(need, 4)
	}
	if end < len(words) {
		need = max(need, lcp(last, words[end])+1)
	}
	return min(need, lcp(first, last)+1, 4)
}

func square(x int) int { return x * x }

func main() {
	flag.Parse()
	n := len(words)
	groups := splitter{
		kmin: 9, kmax: 9, smin: 81, smax: 486,
		cost:    func(s, n int) int { return square(9*s - n) },
		penalty: func(int) int { return 0 },
		allowed: func(b int) bool { return boundary(b) == 0 },
	}.split(0, n)
	type span struct{ start, end int }
	var cells []span
	for g := 0; g < len(groups)-1; g++ {
		c := splitter{
			kmin: 9, kmax: 9, smin: 1, smax: 54,
			cost:    func(s, n int) int { return square(9*s - n) },
			penalty: func(b int) int { return 2000 * square(boundary(b)) },
			allowed: func(int) bool { return true },
		}.split(groups[g], groups[g+1])
		for i := 0; i < len(c)-1; i++ {
			cells = append(cells, span{c[i], c[i+1]})
		}
	}
	if len(cells) != 81 {
		log.Fatalf("gen: %d cells", len(cells))
	}
	var t1, t2 []uint16
	var ranges []span
	for _, c := range cells {
		m := c.end - c.start
		r := splitter{
			kmin: (m + 5) / 6, kmax: min(9, m), smin: 1, smax: 6,
			cost:    func(s, n int) int { return square(6 - s) },
			penalty: func(b int) int { return 60 * square(boundary(b)) },
			allowed: func(int) bool { return true },
		}.split(c.start, c.end)
		t1 = append(t1, uint16(prefix(c.start, c.end)<<12|len(ranges)))
		for i := 0; i < len(r)-1; i++ {
			ranges = append(ranges, span{r[i], r[i+1]})
		}
	}
	t1 = append(t1, uint16(len(ranges)))
	for _, r := range ranges {
		t2 = append(t2, uint16(prefix(r.start, r.end)<<12|r.start))
	}
	t2 = append(t2, uint16(n))

	buf := new(bytes.Buffer)
	fmt.Fprintln(buf, "// Code generated by gen.go; DO NOT EDIT.")
	fmt.Fprintln(buf)
	fmt.Fprintln(buf, "package wordtable")
	writeTable(buf, "table1", t1)
	writeTable(buf, "table2", t2)
	src, err := format.Source(buf.Bytes())
	if err != nil {
		log.Fatal(err)
	}
	if err := os.WriteFile(*output, src, 0o644); err != nil {
		log.Fatal(err)
	}
}

func writeTable(buf *bytes.Buffer, name string, t []uint16) {
	fmt.Fprintf(buf, "\nvar %s = [...]uint16{\n", name)
	for i, v := range t {
		if i%8 == 0 {
			buf.WriteByte('\t')
		}
		fmt.Fprintf(buf, "0x%04x,", v)
		if i%8 == 7 || i == len(t)-1 {
			buf.WriteByte('\n')
		} else {
			buf.WriteByte(' ')
		}
	}
	fmt.Fprintln(buf, "}")
}
