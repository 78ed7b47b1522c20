package cfg

import (
	"errors"
	"fmt"

	"github.com/apex/log"

	"github.com/fossas/activedeps/env"
)

// ErrUnevaluable is matched by every error returned when a predicate uses
// syntax that cannot be evaluated.
var ErrUnevaluable = errors.New("cfg predicate cannot be evaluated")

// An UnevaluableError names the fragment that could not be evaluated.
type UnevaluableError struct {
	Fragment string
	Reason   string
}

func (e *UnevaluableError) Error() string {
	return fmt.Sprintf("cannot evaluate cfg fragment `%s`: %s", e.Fragment, e.Reason)
}

func (e *UnevaluableError) Is(target error) bool {
	return target == ErrUnevaluable
}

// An Evaluator decides whether cfg predicates hold for the configuration
// values in Env (CARGO_CFG_*). Diagnostics for unsupported constructs are
// written to Log.
type Evaluator struct {
	Env env.Env
	Log log.Interface
}

// Evaluate parses text and evaluates it against e.
func Evaluate(text string, e env.Env, l log.Interface) (bool, error) {
	root, err := Parse(text)
	if err != nil {
		return false, err
	}
	ev := Evaluator{Env: e, Log: l}
	return ev.EvalRoot(root)
}

// EvalRoot evaluates the `cfg(...)` wrapper, which takes exactly one argument.
func (ev *Evaluator) EvalRoot(root Expr) (bool, error) {
	if root.Kind != List {
		return false, &UnevaluableError{Fragment: root.String(), Reason: "not a cfg(...) list"}
	}
	if len(root.Args) != 1 {
		return false, ev.diagnose(root, "cfg(...) takes a single argument, %d provided", len(root.Args))
	}
	return ev.Eval(root.Args[0])
}

// Eval evaluates a single predicate. `any` and `all` stop at the first
// deciding or unevaluable argument; later arguments are never looked at.
func (ev *Evaluator) Eval(e Expr) (bool, error) {
	switch e.Kind {
	case List:
		name, ok := e.Ident()
		if !ok {
			return false, &UnevaluableError{Fragment: e.String(), Reason: "predicate name is a path"}
		}
		switch name {
		case "any":
			for _, arg := range e.Args {
				v, err := ev.Eval(arg)
				if err != nil {
					return false, err
				}
				if v {
					return true, nil
				}
			}
			return false, nil
		case "all":
			for _, arg := range e.Args {
				v, err := ev.Eval(arg)
				if err != nil {
					return false, err
				}
				if !v {
					return false, nil
				}
			}
			return true, nil
		case "not":
			if len(e.Args) != 1 {
				return false, ev.diagnose(e, "not(...) takes a single argument, %d provided", len(e.Args))
			}
			v, err := ev.Eval(e.Args[0])
			if err != nil {
				return false, err
			}
			return !v, nil
		}
		return false, ev.diagnose(e, "unexpected cfg fragment: %s", name)

	case NameValue:
		name, ok := e.Ident()
		if !ok {
			return false, &UnevaluableError{Fragment: e.String(), Reason: "option name is a path"}
		}
		if e.Value.Kind != String {
			return false, ev.diagnose(e, "cfg options require strings, got %s", e.Value)
		}
		v, ok := ev.Env.Lookup(env.CfgKey(name))
		return ok && v == e.Value.Text, nil

	case Word:
		return false, &UnevaluableError{Fragment: e.String(), Reason: "options without a value are not supported"}

	case Lit:
		return false, &UnevaluableError{Fragment: e.String(), Reason: "literals are not predicates"}
	}
	return false, &UnevaluableError{Fragment: e.String(), Reason: "unknown expression"}
}

func (ev *Evaluator) diagnose(e Expr, format string, args ...interface{}) error {
	reason := fmt.Sprintf(format, args...)
	ev.logger().WithField("fragment", e.String()).Warn(reason)
	return &UnevaluableError{Fragment: e.String(), Reason: reason}
}

func (ev *Evaluator) logger() log.Interface {
	if ev.Log == nil {
		return log.Log
	}
	return ev.Log
}
