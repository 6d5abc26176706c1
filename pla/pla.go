// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package pla ingests files in the Programmable Logic Array format used in
// logic-synthesis benchmarks, and builds polydd diagrams from the parsed
// sum-of-products. The recognised subset covers comment lines, the
// .i/.o/.p/.ilb/.ob/.e option lines, and product lines whose cube and
// output fields use 0, 1 and the two don't-care spellings "-" and "~".
package pla

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/polydd/polydd"
)

// Value is one entry of a Cube: an ordinary 0/1 or the don't-care sentinel.
type Value uint8

const (
	Zero     Value = 0b00
	One      Value = 0b01
	DontCare Value = 0b11
)

// Cube is a row of 2-bit-packed values, four positions per byte.
type Cube struct {
	bits []byte
	size int
}

func newCube(size int) Cube {
	return Cube{bits: make([]byte, size/4+1), size: size}
}

// Size returns the number of positions in the cube.
func (c Cube) Size() int { return c.size }

// Get returns the value at position i.
func (c Cube) Get(i int) Value {
	shift := uint(i%4) * 2
	return Value((c.bits[i/4] >> shift) & 0b11)
}

func (c Cube) set(i int, v Value) {
	shift := uint(i%4) * 2
	c.bits[i/4] &^= 0b11 << shift
	c.bits[i/4] |= byte(v) << shift
}

// Product is one line of a PLA file: an input cube and the output vector it
// asserts.
type Product struct {
	Cube  Cube
	FVals Cube
}

// File is the parsed content of a PLA file: its products plus any input and
// output labels declared by .ilb/.ob option lines.
type File struct {
	VarCount     int
	FuncCount    int
	Products     []Product
	InputLabels  []string
	OutputLabels []string
}

// Load reads and parses the PLA file at path. Malformed headers, mismatched
// field lengths, or illegal cube characters are reported as an error; no
// partial File is ever returned alongside one.
func Load(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("pla: cannot open %s: %w", path, err)
	}
	defer f.Close()
	return parse(f)
}

func parse(f *os.File) (*File, error) {
	scanner := bufio.NewScanner(f)

	options := make(map[string]string)
	var dataLines []string
	headerDone := false

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}
		if !headerDone {
			if !strings.HasPrefix(line, ".") {
				headerDone = true
				dataLines = append(dataLines, line)
				continue
			}
			fields := strings.SplitN(line, " ", 2)
			key := fields[0]
			val := ""
			if len(fields) == 2 {
				val = strings.TrimSpace(fields[1])
			}
			if key == ".e" {
				continue
			}
			options[key] = val
			continue
		}
		if strings.HasPrefix(line, ".") {
			// Only ".e" is expected to terminate the product section; any
			// other option this late ends parsing rather than being
			// treated as data.
			break
		}
		dataLines = append(dataLines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("pla: read error: %w", err)
	}

	varCount, err := parseOption(options, ".i")
	if err != nil {
		return nil, err
	}
	fCount, err := parseOption(options, ".o")
	if err != nil {
		return nil, err
	}
	lineCount, err := parseOption(options, ".p")
	if err != nil {
		return nil, err
	}

	products := make([]Product, 0, lineCount)
	for _, line := range dataLines {
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("pla: malformed product line %q", line)
		}
		vars, fs := fields[0], fields[1]
		if len(vars) != varCount || len(fs) != fCount {
			return nil, fmt.Errorf("pla: product line %q has the wrong field widths", line)
		}
		cube := newCube(varCount)
		for i := 0; i < varCount; i++ {
			v, err := cubeValue(vars[i], '0', '1')
			if err != nil {
				return nil, err
			}
			cube.set(i, v)
		}
		fVals := newCube(fCount)
		for i := 0; i < fCount; i++ {
			v, err := cubeValue(fs[i], '0', '1')
			if err != nil {
				return nil, err
			}
			fVals.set(i, v)
		}
		products = append(products, Product{Cube: cube, FVals: fVals})
	}
	if len(products) != lineCount {
		return nil, fmt.Errorf("pla: expected %d product lines, got %d", lineCount, len(products))
	}

	return &File{
		VarCount:     varCount,
		FuncCount:    fCount,
		Products:     products,
		InputLabels:  words(options[".ilb"]),
		OutputLabels: words(options[".ob"]),
	}, nil
}

func parseOption(options map[string]string, key string) (int, error) {
	raw, ok := options[key]
	if !ok {
		return 0, fmt.Errorf("pla: missing required option %s", key)
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("pla: invalid value for %s: %q", key, raw)
	}
	return n, nil
}

func cubeValue(c byte, zero, one byte) (Value, error) {
	switch c {
	case zero:
		return Zero, nil
	case one:
		return One, nil
	case '-', '~':
		return DontCare, nil
	default:
		return 0, fmt.Errorf("pla: illegal cube character %q", c)
	}
}

func words(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Fields(s)
}

// BuildFunction folds every product asserting output outputIndex into a
// single polydd diagram over m (one variable per input column, in column
// order): each product contributes the conjunction of its non-don't-care
// literals, and the contributing products are OR-folded together. m must
// have exactly f.VarCount variables, each of domain 2.
func (f *File) BuildFunction(m *polydd.Manager, outputIndex int) *polydd.Node {
	if m.Varnum() != f.VarCount {
		panic("pla: manager variable count does not match the PLA file")
	}
	// Intermediates are pinned with handles across the fold: a large PLA
	// can put the manager under enough allocation pressure to trigger a
	// sweep between two Apply calls, and an unpinned partial result would
	// not survive it.
	result := m.Ref(m.Constant(0))
	for _, p := range f.Products {
		if p.FVals.Get(outputIndex) != One {
			continue
		}
		term := m.Ref(m.Constant(1))
		for i := 0; i < f.VarCount; i++ {
			switch p.Cube.Get(i) {
			case Zero:
				lit := m.Apply(polydd.OPxor, m.Variable(i), m.Constant(1))
				next := m.Ref(m.Apply(polydd.OPand, term.Node(), lit))
				term.Release()
				term = next
			case One:
				next := m.Ref(m.Apply(polydd.OPand, term.Node(), m.Variable(i)))
				term.Release()
				term = next
			case DontCare:
				// unconstrained: omit the variable from the conjunction.
			}
		}
		next := m.Ref(m.Apply(polydd.OPor, result.Node(), term.Node()))
		term.Release()
		result.Release()
		result = next
	}
	root := result.Node()
	result.Release()
	return root
}
