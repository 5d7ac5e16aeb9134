// internal/core/domain/interval.go
package domain

import "sort"

// Interval es la primera y última captura en la que se vio un identificador.
// Invariante: FirstSeen <= LastSeen.
type Interval struct {
	FirstSeen Timestamp
	LastSeen  Timestamp
}

// NewInterval crea un intervalo de un solo punto.
func NewInterval(ts Timestamp) Interval {
	return Interval{FirstSeen: ts, LastSeen: ts}
}

// Extend devuelve el intervalo ampliado para incluir ts.
// Es un min/max puro, por lo que el orden de llegada no altera el resultado.
func (iv Interval) Extend(ts Timestamp) Interval {
	if ts.Before(iv.FirstSeen) {
		iv.FirstSeen = ts
	}
	if ts.After(iv.LastSeen) {
		iv.LastSeen = ts
	}
	return iv
}

// Occurrences son los identificadores distintos hallados en un documento, por clase.
type Occurrences map[IdentifierClass][]string

// Total cuenta identificadores en todas las clases.
func (o Occurrences) Total() int {
	n := 0
	for _, ids := range o {
		n += len(ids)
	}
	return n
}

// CodeIntervals es el resultado agregado de una URL: clase -> identificador -> intervalo.
type CodeIntervals map[IdentifierClass]map[string]Interval

// NewCodeIntervals crea un resultado vacío con las tres clases presentes.
func NewCodeIntervals() CodeIntervals {
	ci := make(CodeIntervals, len(IdentifierClasses))
	for _, c := range IdentifierClasses {
		ci[c] = make(map[string]Interval)
	}
	return ci
}

// Clone devuelve una copia profunda.
func (ci CodeIntervals) Clone() CodeIntervals {
	out := NewCodeIntervals()
	for class, ids := range ci {
		if out[class] == nil {
			out[class] = make(map[string]Interval, len(ids))
		}
		for id, iv := range ids {
			out[class][id] = iv
		}
	}
	return out
}

// Total cuenta identificadores distintos en todas las clases.
func (ci CodeIntervals) Total() int {
	n := 0
	for _, ids := range ci {
		n += len(ids)
	}
	return n
}

// Sorted devuelve los identificadores de una clase en orden alfabético.
func (ci CodeIntervals) Sorted(class IdentifierClass) []string {
	ids := make([]string, 0, len(ci[class]))
	for id := range ci[class] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
