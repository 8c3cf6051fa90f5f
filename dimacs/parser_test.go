package dimacs

import (
	"bytes"
	"compress/gzip"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/audemard/minicdcl/solver"
)

const sampleCNF = `c a trivial satisfiable instance
p cnf 3 2
1 2 3 0
-1 2 0
`

func TestParsePlainCNF(t *testing.T) {
	s := solver.New(solver.DefaultConfig(), nil)
	nbVars, err := Parse(strings.NewReader(sampleCNF), s)
	require.NoError(t, err)
	assert.Equal(t, 3, nbVars)

	status, err := s.Solve()
	require.NoError(t, err)
	assert.Equal(t, solver.Sat, status)
}

func TestParseGzippedCNF(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write([]byte(sampleCNF))
	require.NoError(t, err)
	require.NoError(t, gz.Close())

	s := solver.New(solver.DefaultConfig(), nil)
	nbVars, err := Parse(&buf, s)
	require.NoError(t, err)
	assert.Equal(t, 3, nbVars)
}

func TestParseDetectsUnsat(t *testing.T) {
	const cnf = `p cnf 1 2
1 0
-1 0
`
	s := solver.New(solver.DefaultConfig(), nil)
	_, err := Parse(strings.NewReader(cnf), s)
	require.NoError(t, err)

	status, err := s.Solve()
	require.NoError(t, err)
	assert.Equal(t, solver.Unsat, status)
}

func TestParseRejectsOutOfRangeLiteral(t *testing.T) {
	const cnf = `p cnf 1 1
2 0
`
	s := solver.New(solver.DefaultConfig(), nil)
	_, err := Parse(strings.NewReader(cnf), s)
	assert.Error(t, err)
}
