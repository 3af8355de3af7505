package tools

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/yadavanujkumar/reagent"
)

// NewCalculator creates the arithmetic evaluation tool.
//
// The evaluator accepts numbers, parentheses, unary minus, and the operators
// + - * / and ** (power). There is no name or attribute access: the input is
// arithmetic only, so model-supplied text can never reach anything beyond
// this parser. Syntax errors and division by zero are returned as tool
// errors, which the agent feeds back to the model as observations.
func NewCalculator() *reagent.ToolFunc {
	return reagent.NewToolFunc(
		"Calculator",
		"Useful for performing mathematical calculations. Input should be a "+
			"mathematical expression like '2 + 2' or '10 * 5'.",
		func(_ context.Context, input string) (string, error) {
			result, err := evaluate(input)
			if err != nil {
				return "", &reagent.ToolError{
					Tool: "Calculator",
					Message: fmt.Sprintf(
						"cannot calculate %q: %v. Only basic arithmetic "+
							"operations (+, -, *, /, **) are supported", input, err),
				}
			}
			return fmt.Sprintf("The result of %s is %s",
				strings.TrimSpace(input), formatNumber(result)), nil
		},
	)
}

// formatNumber renders a result without a trailing ".0" for whole numbers.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// evaluate parses and evaluates an arithmetic expression.
func evaluate(input string) (float64, error) {
	p := &exprParser{input: input}
	result, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	p.skipSpaces()
	if p.pos < len(p.input) {
		return 0, fmt.Errorf("unexpected %q at position %d",
			p.input[p.pos:p.pos+1], p.pos)
	}
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0, errors.New("result is not a finite number")
	}
	return result, nil
}

// exprParser is a recursive-descent parser over the grammar:
//
//	expr    = term  { ("+" | "-") term }
//	term    = power { ("*" | "/") power }
//	power   = unary [ "**" power ]        (right-associative)
//	unary   = "-" unary | primary
//	primary = number | "(" expr ")"
type exprParser struct {
	input string
	pos   int
}

func (p *exprParser) parseExpr() (float64, error) {
	left, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		p.skipSpaces()
		switch {
		case p.peek("+"):
			p.pos++
			right, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			left += right
		case p.peek("-"):
			p.pos++
			right, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			left -= right
		default:
			return left, nil
		}
	}
}

func (p *exprParser) parseTerm() (float64, error) {
	left, err := p.parsePower()
	if err != nil {
		return 0, err
	}
	for {
		p.skipSpaces()
		switch {
		// "**" is power, not multiplication; parsePower consumed it already,
		// so a "*" here is always multiplication.
		case p.peek("*"):
			p.pos++
			right, err := p.parsePower()
			if err != nil {
				return 0, err
			}
			left *= right
		case p.peek("/"):
			p.pos++
			right, err := p.parsePower()
			if err != nil {
				return 0, err
			}
			if right == 0 {
				return 0, errors.New("division by zero")
			}
			left /= right
		default:
			return left, nil
		}
	}
}

func (p *exprParser) parsePower() (float64, error) {
	base, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	p.skipSpaces()
	if p.peek("**") {
		p.pos += 2
		exponent, err := p.parsePower()
		if err != nil {
			return 0, err
		}
		return math.Pow(base, exponent), nil
	}
	return base, nil
}

func (p *exprParser) parseUnary() (float64, error) {
	p.skipSpaces()
	if p.peek("-") {
		p.pos++
		value, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		return -value, nil
	}
	return p.parsePrimary()
}

func (p *exprParser) parsePrimary() (float64, error) {
	p.skipSpaces()
	if p.pos >= len(p.input) {
		return 0, errors.New("unexpected end of expression")
	}

	if p.peek("(") {
		p.pos++
		value, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		p.skipSpaces()
		if !p.peek(")") {
			return 0, errors.New("missing closing parenthesis")
		}
		p.pos++
		return value, nil
	}

	start := p.pos
	for p.pos < len(p.input) && (isDigit(p.input[p.pos]) || p.input[p.pos] == '.') {
		p.pos++
	}
	if p.pos == start {
		return 0, fmt.Errorf("unexpected %q at position %d",
			p.input[start:start+1], start)
	}

	value, err := strconv.ParseFloat(p.input[start:p.pos], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", p.input[start:p.pos])
	}
	return value, nil
}

func (p *exprParser) peek(s string) bool {
	// "*" must not match the first half of "**".
	if s == "*" && strings.HasPrefix(p.input[p.pos:], "**") {
		return false
	}
	return strings.HasPrefix(p.input[p.pos:], s)
}

func (p *exprParser) skipSpaces() {
	for p.pos < len(p.input) && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t') {
		p.pos++
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
