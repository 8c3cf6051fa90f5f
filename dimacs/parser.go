// Package dimacs reads problems in the DIMACS CNF format (plain or
// gzip-compressed) directly onto a solver.Solver. It is adapted from
// crillab/gophersat's solver/parser.go, which parses the same grammar but
// builds its own Problem value; here the parser calls NewLit/AddClause on
// a caller-supplied Solver instead, matching the incremental API this
// repository's solver package exposes.
package dimacs

import (
	"bufio"
	"compress/gzip"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/audemard/minicdcl/solver"
)

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// readInt reads a possibly-negative integer from r. b holds the last byte
// read (a space, '-', or digit); all leading whitespace is skipped.
func readInt(b *byte, r *bufio.Reader) (res int, err error) {
	for err == nil && isSpace(*b) {
		*b, err = r.ReadByte()
	}
	if err == io.EOF {
		return res, io.EOF
	}
	if err != nil {
		return res, errors.Wrap(err, "cannot read digit")
	}
	neg := 1
	if *b == '-' {
		neg = -1
		*b, err = r.ReadByte()
		if err != nil {
			return 0, errors.Wrap(err, "cannot read int")
		}
	}
	for err == nil {
		if *b < '0' || *b > '9' {
			return 0, errors.Errorf("cannot read int: %q is not a digit", *b)
		}
		res = 10*res + int(*b-'0')
		*b, err = r.ReadByte()
		if isSpace(*b) {
			break
		}
	}
	return res * neg, err
}

// parseHeader reads the rest of a "p cnf N M" header line whose leading
// 'p' the caller has already consumed.
func parseHeader(r *bufio.Reader) (nbVars, nbClauses int, err error) {
	line, err := r.ReadString('\n')
	if err != nil {
		return 0, 0, errors.Wrap(err, "cannot read header")
	}
	fields := strings.Fields(line)
	if len(fields) < 3 || fields[0] != "cnf" {
		return 0, 0, errors.Errorf("invalid DIMACS header %q", "p"+line)
	}
	nbVars, err = strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, errors.Wrapf(err, "nbvars %q is not an int", fields[1])
	}
	nbClauses, err = strconv.Atoi(fields[2])
	if err != nil {
		return 0, 0, errors.Wrapf(err, "nbclauses %q is not an int", fields[2])
	}
	return nbVars, nbClauses, nil
}

// Parse reads a DIMACS CNF stream from r and declares its variables and
// clauses on s via NewLit/AddClause, returning the number of variables
// declared. It transparently decompresses gzip input by sniffing the
// stream's magic bytes.
func Parse(r io.Reader, s *solver.Solver) (nbVars int, err error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(2)
	if err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, gzErr := gzip.NewReader(br)
		if gzErr != nil {
			return 0, errors.Wrap(gzErr, "cannot open gzip stream")
		}
		defer gz.Close()
		br = bufio.NewReader(gz)
	}

	var vars []solver.Lit
	b, err := br.ReadByte()
	for err == nil {
		switch {
		case b == 'c':
			for err == nil && b != '\n' {
				b, err = br.ReadByte()
			}
		case b == 'p':
			nbVars, _, err = parseHeader(br)
			if err != nil {
				return 0, errors.Wrap(err, "cannot parse CNF header")
			}
			vars = make([]solver.Lit, nbVars)
			for i := range vars {
				vars[i] = s.NewLit()
			}
		default:
			lits := make([]solver.Lit, 0, 3)
			for {
				val, rerr := readInt(&b, br)
				if rerr == io.EOF {
					if len(lits) != 0 {
						return 0, errors.New("unfinished clause at EOF")
					}
					return nbVars, nil
				}
				if rerr != nil {
					return 0, errors.Wrap(rerr, "cannot parse clause")
				}
				if val == 0 {
					s.AddClause(lits...)
					break
				}
				v := val
				if v < 0 {
					v = -v
				}
				if v > nbVars {
					return 0, errors.Errorf("literal %d out of range for %d declared variables", val, nbVars)
				}
				lit := vars[v-1]
				if val < 0 {
					lit = lit.Negation()
				}
				lits = append(lits, lit)
			}
		}
		b, err = br.ReadByte()
	}
	if err != io.EOF {
		return 0, err
	}
	return nbVars, nil
}
