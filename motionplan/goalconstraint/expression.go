package goalconstraint

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"regexp"

	"github.com/pkg/errors"
	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

// ExpressionEvaluatorName is the registered name of the expression evaluator.
const ExpressionEvaluatorName = "expression"

func init() {
	RegisterEvaluator(ExpressionEvaluatorName, func() Evaluator { return &expressionEvaluator{} })
}

// expressionEvaluator accepts a boolean Go expression over x and y, e.g.
// `hypot(x, y) < 2 and x > 0`. The words and, or and not may be used for &&, || and !.
type expressionEvaluator struct {
	predicate func(x, y float64) bool
}

const expressionSource = `package main

import "math"

var pi = math.Pi

func sqrt(v float64) float64     { return math.Sqrt(v) }
func abs(v float64) float64      { return math.Abs(v) }
func hypot(a, b float64) float64 { return math.Hypot(a, b) }
func pow(a, b float64) float64   { return math.Pow(a, b) }
func atan2(a, b float64) float64 { return math.Atan2(a, b) }

func inRegion(x, y float64) bool {
	return %s
}
`

var (
	andWord = regexp.MustCompile(`\band\b`)
	orWord  = regexp.MustCompile(`\bor\b`)
	notWord = regexp.MustCompile(`\bnot\b`)
)

func translateExpression(definition string) string {
	definition = andWord.ReplaceAllString(definition, "&&")
	definition = orWord.ReplaceAllString(definition, "||")
	return notWord.ReplaceAllString(definition, "!")
}

func (ee *expressionEvaluator) Init(definition string) error {
	ee.predicate = nil

	expr := translateExpression(definition)
	// a single expression only; anything that would close the function body is rejected here
	parsed, err := parser.ParseExpr(expr)
	if err != nil {
		return errors.Wrapf(ErrInvalidConstraint, "%q is not an expression: %v", definition, err)
	}
	if err := checkExpression(parsed); err != nil {
		return errors.Wrapf(ErrInvalidConstraint, "%q: %v", definition, err)
	}

	i := interp.New(interp.Options{})
	if err := i.Use(interp.Exports{"math/math": stdlib.Symbols["math/math"]}); err != nil {
		return errors.Wrap(err, "failed to load math symbols")
	}
	if _, err := i.Eval(fmt.Sprintf(expressionSource, expr)); err != nil {
		return errors.Wrapf(ErrInvalidConstraint, "%q does not compile to a boolean predicate of x and y: %v", definition, err)
	}
	v, err := i.Eval("main.inRegion")
	if err != nil {
		return errors.Wrapf(ErrInvalidConstraint, "%q: %v", definition, err)
	}
	predicate, ok := v.Interface().(func(float64, float64) bool)
	if !ok {
		return errors.Wrapf(ErrInvalidConstraint, "%q has an unexpected predicate type %T", definition, v.Interface())
	}
	ee.predicate = predicate
	return nil
}

// checkExpression rejects constructs that could keep a predicate from returning: function
// literals, channel receives and calls back into the predicate itself.
func checkExpression(expr ast.Expr) error {
	var err error
	ast.Inspect(expr, func(n ast.Node) bool {
		if err != nil {
			return false
		}
		switch n := n.(type) {
		case *ast.FuncLit:
			err = errors.New("function literals are not allowed")
		case *ast.UnaryExpr:
			if n.Op == token.ARROW {
				err = errors.New("channel receives are not allowed")
			}
		case *ast.ChanType:
			err = errors.New("channels are not allowed")
		case *ast.Ident:
			if n.Name == "inRegion" {
				err = errors.New("the predicate cannot call itself")
			}
		}
		return err == nil
	})
	return err
}

func (ee *expressionEvaluator) Evaluate(x, y float64) bool {
	if ee.predicate == nil {
		return false
	}
	return ee.predicate(x, y)
}
