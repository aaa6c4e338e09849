package mutator

import (
	"math/rand"

	"github.com/funvibe/lolc/internal/ast"
)

// ASTMutator applies random mutations to an AST.
type ASTMutator struct {
	rnd *rand.Rand
}

// NewASTMutator creates a new ASTMutator with the given seed.
func NewASTMutator(seed int64) *ASTMutator {
	return &ASTMutator{
		rnd: rand.New(rand.NewSource(seed)),
	}
}

var binaryOps = []ast.Operator{
	ast.OpSum, ast.OpDiff, ast.OpProdukt, ast.OpQuoshunt, ast.OpMod,
	ast.OpBiggr, ast.OpSmallr, ast.OpBoth, ast.OpEither, ast.OpWon,
	ast.OpSaem, ast.OpDiffrint,
}

var variadicOps = []ast.Operator{ast.OpAll, ast.OpAny, ast.OpSmoosh}

var typeNames = []string{"NUMBER", "NUMBAR", "YARN", "TROOF"}

// Mutate applies a random mutation to the program.
// It modifies the AST in place.
func (m *ASTMutator) Mutate(program *ast.Program) {
	program.Statements = m.mutateStatements(program.Statements)
}

// mutateStatements deletes or mutates one statement. KTHXBYE is never
// deleted.
func (m *ASTMutator) mutateStatements(stmts []ast.Statement) []ast.Statement {
	if len(stmts) == 0 {
		return stmts
	}
	idx := m.rnd.Intn(len(stmts))
	if _, end := stmts[idx].(*ast.KthxbyeStatement); !end && m.rnd.Float32() < 0.1 {
		return append(stmts[:idx], stmts[idx+1:]...)
	}
	m.mutateStatement(stmts[idx])
	return stmts
}

func (m *ASTMutator) mutateStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		m.mutateExpression(s.Expression)
	case *ast.DeclarationStatement:
		if s.Value != nil && m.rnd.Float32() < 0.7 {
			m.mutateExpression(s.Value)
		} else {
			s.Type.Name = typeNames[m.rnd.Intn(len(typeNames))]
		}
	case *ast.AssignmentStatement:
		m.mutateExpression(s.Value)
	case *ast.VisibleStatement:
		if m.rnd.Float32() < 0.2 {
			s.Bang = !s.Bang
			return
		}
		m.mutateExpression(s.Operands[m.rnd.Intn(len(s.Operands))])
	case *ast.IfStatement:
		s.Then = m.mutateStatements(s.Then)
	case *ast.LoopStatement:
		s.Body = m.mutateStatements(s.Body)
	case *ast.FunctionStatement:
		s.Body = m.mutateStatements(s.Body)
	}
}

func (m *ASTMutator) mutateExpression(expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.BinaryExpression:
		r := m.rnd.Float32()
		if r < 0.33 {
			e.Operator = binaryOps[m.rnd.Intn(len(binaryOps))]
		} else if r < 0.66 {
			m.mutateExpression(e.Left)
		} else {
			m.mutateExpression(e.Right)
		}
	case *ast.NotExpression:
		m.mutateExpression(e.Operand)
	case *ast.VariadicExpression:
		if m.rnd.Float32() < 0.3 {
			e.Operator = variadicOps[m.rnd.Intn(len(variadicOps))]
			return
		}
		m.mutateExpression(e.Operands[m.rnd.Intn(len(e.Operands))])
	case *ast.MaekExpression:
		if m.rnd.Float32() < 0.5 {
			e.Type.Name = typeNames[m.rnd.Intn(len(typeNames))]
			return
		}
		m.mutateExpression(e.Value)
	case *ast.NumberLiteral:
		e.Value += m.rnd.Int63n(21) - 10 // -10 to +10
	case *ast.NumbarLiteral:
		e.Value = e.Value*2 - 1
		// The printer prefers the source spelling.
		e.Token.Literal = ""
	case *ast.TroofLiteral:
		e.Value = !e.Value
	case *ast.YarnLiteral:
		if len(e.Value) > 0 {
			runes := []rune(e.Value)
			idx := m.rnd.Intn(len(runes))
			runes[idx] = rune(32 + m.rnd.Intn(95)) // printable ASCII
			e.Value = string(runes)
		} else {
			e.Value = "x"
		}
	}
}
