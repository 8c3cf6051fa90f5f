/*
Package solver implements a CDCL (Conflict-Driven Clause Learning) decision
procedure for propositional satisfiability.

Given a set of clauses in conjunctive normal form, the solver reports the
problem SATISFIABLE (with a model binding every variable), UNSATISFIABLE, or
INDETERMINATE if it is stopped by a resource budget or an asynchronous
interrupt before a verdict is reached.

Describing a problem

A Solver owns its own variable and clause space; there is no separate
Problem value. Variables are declared one at a time and referenced by the
Lit values returned:

    s := solver.New(solver.DefaultConfig(), nil)
    x1 := s.NewLit()
    x2 := s.NewLit()
    x3 := s.NewLit()
    s.AddClause(x1, x2, x3)
    s.AddClause(x1.Negation(), x2)

Solving a problem

    status, err := s.Solve()

If the status is Sat, Solver.Model returns a binding for every declared
variable:

    if status == solver.Sat {
        model := s.Model()
    }

Resource budgets (conflict and propagation counts) and cooperative
interruption (Solver.Interrupt) cause Solve to return Indet instead of
running forever; see Config's ConflictBudget and PropagationBudget fields.

DIMACS CNF problems, including gzip-compressed ones, are read by the
sibling dimacs package, which calls NewLit/AddClause on a Solver it is
handed.
*/
package solver
