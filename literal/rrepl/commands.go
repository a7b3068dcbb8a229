package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/mdrange/runtime"
	"github.com/pterm/pterm"
)

var errQuit = errors.New("quit")

// command is a REPL command, operating on the arguments following the
// command's keyword.
type command func(intp *Intp, args string) (value, error)

var commands map[string]command

func init() {
	commands = map[string]command{
		"let":      (*Intp).let,
		"show":     (*Intp).show,
		"shape":    (*Intp).shape,
		"at":       (*Intp).at,
		"sum":      combination("sum"),
		"mul":      combination("mul"),
		"contract": (*Intp).contract,
		"view":     (*Intp).view,
		"format":   (*Intp).format,
		"hash":     (*Intp).hash,
		"vars":     (*Intp).vars,
		"begin":    (*Intp).begin,
		"end":      (*Intp).end,
		"help":     (*Intp).help,
		"quit":     func(*Intp, string) (value, error) { return nil, errQuit },
	}
}

// Eval interprets a single input line. Values resulting from a command are
// bound to the name "_".
func (intp *Intp) Eval(line string) (quit bool, err error) {
	intp.lastInput = line
	keyword, args, _ := strings.Cut(strings.TrimSpace(line), " ")
	cmd, ok := commands[keyword]
	if !ok {
		err = fmt.Errorf("unknown command %q, try 'help'", keyword)
		pterm.Error.Println(err.Error())
		return false, err
	}
	v, err := cmd(intp, strings.TrimSpace(args))
	if err == errQuit {
		return true, nil
	} else if err != nil {
		pterm.Error.Println(err.Error())
		return false, err
	}
	if v != nil {
		intp.lastValue = v
		if _, err = intp.rt.Bind("_", v.Kind(), v); err != nil {
			return false, err
		}
		if lit, err := v.Literal(); err == nil {
			pterm.Info.Println(lit)
		}
	}
	return false, nil
}

// let NAME [KIND[SHAPE]] = LITERAL
func (intp *Intp) let(args string) (value, error) {
	lhs, text, ok := strings.Cut(args, "=")
	if !ok {
		return nil, errors.New("usage: let NAME [KIND[SHAPE]] = LITERAL")
	}
	fields := strings.Fields(lhs)
	if len(fields) == 0 {
		return nil, errors.New("let: missing name")
	}
	name := fields[0]
	k, shape, err := kindAndShape(strings.Join(fields[1:], ""))
	if err != nil {
		return nil, err
	}
	v, err := readValue(k, strings.TrimSpace(text), shape)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("%s = %s", name, v)
	if _, err = intp.rt.Bind(name, k, v); err != nil {
		return nil, err
	}
	return v, nil
}

// kindAndShape decodes a type annotation like "int" or "float[2,3]".
// The default kind is float, without a shape.
func kindAndShape(annot string) (runtime.Kind, []int, error) {
	if annot == "" {
		return runtime.FloatRange, nil, nil
	}
	name, rest, hasShape := strings.Cut(annot, "[")
	k, ok := kindNames[name]
	if !ok {
		return runtime.Undefined, nil, fmt.Errorf("unknown kind %q", name)
	}
	if !hasShape {
		return k, nil, nil
	}
	if !strings.HasSuffix(rest, "]") {
		return k, nil, fmt.Errorf("unterminated shape in %q", annot)
	}
	shape, err := intList(strings.TrimSuffix(rest, "]"))
	return k, shape, err
}

func intList(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return []int{}, nil
	}
	var list []int
	for _, f := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' }) {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("not an integer: %q", f)
		}
		list = append(list, n)
	}
	return list, nil
}

func (intp *Intp) lookup(name string) (value, error) {
	tag, err := intp.rt.Lookup(name)
	if err != nil {
		return nil, err
	}
	v, ok := tag.Value.(value)
	if !ok {
		return nil, fmt.Errorf("%s does not hold a range", tag)
	}
	return v, nil
}

// show NAME
func (intp *Intp) show(args string) (value, error) {
	v, err := intp.lookup(args)
	if err != nil {
		return nil, err
	}
	pterm.Println(fmt.Sprintf("%s : %s %v", args, kindName(v.Kind()), v.Shape()))
	pterm.DefaultTree.WithRoot(v.Tree()).Render()
	return nil, nil
}

// shape NAME
func (intp *Intp) shape(args string) (value, error) {
	v, err := intp.lookup(args)
	if err != nil {
		return nil, err
	}
	pterm.Info.Println(fmt.Sprintf("%v", v.Shape()))
	return nil, nil
}

// at NAME i j …
func (intp *Intp) at(args string) (value, error) {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return nil, errors.New("usage: at NAME COORD…")
	}
	v, err := intp.lookup(fields[0])
	if err != nil {
		return nil, err
	}
	coords, err := intList(strings.Join(fields[1:], " "))
	if err != nil {
		return nil, err
	}
	x, err := v.At(coords)
	if err != nil {
		return nil, err
	}
	pterm.Info.Println(fmt.Sprintf("%v", x))
	return nil, nil
}

// sum A B, mul A B
func combination(op string) command {
	return func(intp *Intp, args string) (value, error) {
		fields := strings.Fields(args)
		if len(fields) != 2 {
			return nil, fmt.Errorf("usage: %s A B", op)
		}
		a, err := intp.lookup(fields[0])
		if err != nil {
			return nil, err
		}
		b, err := intp.lookup(fields[1])
		if err != nil {
			return nil, err
		}
		return a.Combine(op, b)
	}
}

// contract NAME AXIS AXIS …
func (intp *Intp) contract(args string) (value, error) {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return nil, errors.New("usage: contract NAME AXIS…")
	}
	v, err := intp.lookup(fields[0])
	if err != nil {
		return nil, err
	}
	axes, err := intList(strings.Join(fields[1:], " "))
	if err != nil {
		return nil, err
	}
	return v.Contract(axes)
}

// view NAME [i,…] [j,…] …
func (intp *Intp) view(args string) (value, error) {
	name, rest, _ := strings.Cut(args, " ")
	v, err := intp.lookup(name)
	if err != nil {
		return nil, err
	}
	var indices [][]int
	for rest = strings.TrimSpace(rest); rest != ""; rest = strings.TrimSpace(rest) {
		if rest[0] != '[' {
			return nil, fmt.Errorf("expected index list, have %q", rest)
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return nil, errors.New("unterminated index list")
		}
		list, err := intList(rest[1:end])
		if err != nil {
			return nil, err
		}
		indices = append(indices, list)
		rest = rest[end+1:]
	}
	return v.View(indices)
}

// format NAME
func (intp *Intp) format(args string) (value, error) {
	v, err := intp.lookup(args)
	if err != nil {
		return nil, err
	}
	lit, err := v.Literal()
	if err != nil {
		return nil, err
	}
	pterm.Println(lit)
	return nil, nil
}

// hash NAME
func (intp *Intp) hash(args string) (value, error) {
	v, err := intp.lookup(args)
	if err != nil {
		return nil, err
	}
	h, err := v.Fingerprint()
	if err != nil {
		return nil, err
	}
	pterm.Info.Println(h)
	return nil, nil
}

// vars lists all names visible from the current scope.
func (intp *Intp) vars(string) (value, error) {
	intp.rt.Visible(func(name string, tag *runtime.Tag) {
		if v, ok := tag.Value.(value); ok {
			pterm.Println(fmt.Sprintf("%-8s %s %v", name, kindName(v.Kind()), v.Shape()))
		}
	})
	return nil, nil
}

// begin opens a local scope. Names bound until the matching end, "_"
// included, shadow outer names and vanish afterwards.
func (intp *Intp) begin(string) (value, error) {
	sc := intp.rt.Enter(fmt.Sprintf("local-%d", intp.rt.Depth()+1))
	tracer().Debugf("entered %s", sc)
	return nil, nil
}

func (intp *Intp) end(string) (value, error) {
	sc, err := intp.rt.Leave()
	if err != nil {
		return nil, err
	}
	tracer().Debugf("left %s", sc)
	return nil, nil
}

func (intp *Intp) help(string) (value, error) {
	pterm.Println(`let NAME [KIND[SHAPE]] = LITERAL    read a literal, KIND is int|float|decimal|string
show NAME                           print elements as a tree
shape NAME                          print the shape
at NAME COORD…                      print a single element
sum A B                             element-wise sum
mul A B                             outer product
contract NAME AXIS…                 fold the diagonal over axes
view NAME [i,…] …                   copy a sub-range
format NAME                         write as a literal
hash NAME                           print a fingerprint
vars                                list names
begin / end                         open / close a local scope
quit`)
	return nil, nil
}
