package kbd

import "strings"

// Expr is a node of a parsed configuration file: an Atom or a List.
type Expr interface {
	expr()
	String() string
}

type Atom string

func (Atom) expr() {}

func (a Atom) String() string {
	return string(a)
}

type List []Expr

func (List) expr() {}

func (l List) String() string {
	parts := make([]string, 0, len(l))
	for _, e := range l {
		parts = append(parts, e.String())
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// Head returns the leading atom of the list, if there is one.
func (l List) Head() (string, bool) {
	if len(l) == 0 {
		return "", false
	}
	atom, ok := l[0].(Atom)
	return string(atom), ok
}

// Section is a top-level list together with the file it was read from.
type Section struct {
	Path string
	Body List
}

func (s Section) Head() string {
	head, _ := s.Body.Head()
	return head
}

func (s Section) Args() List {
	if len(s.Body) == 0 {
		return nil
	}
	return s.Body[1:]
}
