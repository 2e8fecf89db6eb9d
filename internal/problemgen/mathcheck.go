package problemgen

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/abhisek/mathquest/internal/progress"
)

// MathCheckValidator independently recomputes simple arithmetic questions
// and checks the result against the option marked correct. Questions that
// are not a single binary operation (word problems, algebra, geometry)
// pass through silently, as do options that are not plain numbers.
type MathCheckValidator struct{}

func (v *MathCheckValidator) Name() string { return "math-check" }

func (v *MathCheckValidator) Validate(p *progress.Problem, _ GenerateInput) *ValidationError {
	computed, err := computeAnswer(p.Question)
	if err != nil {
		return nil
	}
	claimed, err := parseNumber(p.CorrectOption())
	if err != nil {
		return nil
	}
	if !nearlyEqual(computed, claimed) {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("computed %s but option %d is %q", formatNumber(computed), p.CorrectOptionIndex, p.CorrectOption()),
			Retryable: true,
		}
	}
	return nil
}

var (
	// Fraction arithmetic: "a/b + c/d", "a/b - c/d", "a/b * c/d", "a/b ÷ c/d"
	fractionArithRe = regexp.MustCompile(`(-?\d+)\s*/\s*(\d+)\s*([+\-*×÷])\s*(-?\d+)\s*/\s*(\d+)`)

	// Integer/decimal arithmetic with +, -, *, ×
	intArithRe = regexp.MustCompile(`(?:^|[^\d/])(-?\d+(?:\.\d+)?)\s*([+\-*×])\s*(-?\d+(?:\.\d+)?)(?:[^\d/]|$)`)

	// Division requires spaces around the operator to distinguish from fractions (3/4 vs 144 / 12).
	intDivRe = regexp.MustCompile(`(-?\d+(?:\.\d+)?)\s+[/÷]\s+(-?\d+(?:\.\d+)?)`)

	numberRe = regexp.MustCompile(`\d+(?:\.\d+)?`)
)

// computeAnswer extracts a single arithmetic operation from question text
// and evaluates it. Text with more numbers than the operation uses is
// treated as not computable.
func computeAnswer(text string) (float64, error) {
	numbers := len(numberRe.FindAllString(text, -1))

	if numbers == 4 {
		if m := fractionArithRe.FindStringSubmatch(text); m != nil {
			return computeFractionOp(m)
		}
	}
	if numbers == 2 {
		if m := intArithRe.FindStringSubmatch(text); m != nil {
			return computeOp(m[1], normalizeOp(m[2]), m[3])
		}
		if m := intDivRe.FindStringSubmatch(text); m != nil {
			return computeOp(m[1], "/", m[2])
		}
	}
	return 0, fmt.Errorf("not computable")
}

func computeFractionOp(m []string) (float64, error) {
	aN, _ := strconv.ParseFloat(m[1], 64)
	aD, _ := strconv.ParseFloat(m[2], 64)
	bN, _ := strconv.ParseFloat(m[4], 64)
	bD, _ := strconv.ParseFloat(m[5], 64)
	if aD == 0 || bD == 0 {
		return 0, fmt.Errorf("zero denominator")
	}
	return apply(aN/aD, normalizeOp(m[3]), bN/bD)
}

func computeOp(aStr, op, bStr string) (float64, error) {
	a, err := strconv.ParseFloat(aStr, 64)
	if err != nil {
		return 0, err
	}
	b, err := strconv.ParseFloat(bStr, 64)
	if err != nil {
		return 0, err
	}
	return apply(a, op, b)
}

func apply(a float64, op string, b float64) (float64, error) {
	switch op {
	case "+":
		return a + b, nil
	case "-":
		return a - b, nil
	case "*":
		return a * b, nil
	case "/":
		if b == 0 {
			return 0, fmt.Errorf("division by zero")
		}
		return a / b, nil
	default:
		return 0, fmt.Errorf("unsupported operator: %s", op)
	}
}

// normalizeOp normalizes multiplication and division symbols.
func normalizeOp(op string) string {
	switch op {
	case "×":
		return "*"
	case "÷":
		return "/"
	default:
		return op
	}
}

// parseNumber parses an option as an integer, decimal, or "a/b" fraction.
// Thousands separators are ignored.
func parseNumber(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid numerator: %w", err)
		}
		d, err := strconv.ParseFloat(strings.TrimSpace(den), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid denominator: %w", err)
		}
		if d == 0 {
			return 0, fmt.Errorf("zero denominator")
		}
		return n / d, nil
	}
	return strconv.ParseFloat(s, 64)
}

func nearlyEqual(a, b float64) bool {
	return math.Abs(a-b) <= 1e-6*math.Max(1, math.Abs(a))
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
