// SPDX-License-Identifier: MIT

package notation

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/katalvlaran/rowtrace/matrix"
	"github.com/katalvlaran/rowtrace/solution"
)

// Message keys double as the English templates.
const (
	keyInitial       = "Initial augmented matrix."
	keySwap          = "Swap row %d and row %d."
	keyScale         = "Multiply row %d by %s."
	keyAdd           = "Add %s times row %d to row %d."
	keySubtract      = "Subtract %s times row %d from row %d."
	keyAddOnce       = "Add row %d to row %d."
	keySubtractOnce  = "Subtract row %d from row %d."
	keyComplete      = "The matrix is now in %s."
	keyREF           = "row echelon form (REF)"
	keyRREF          = "reduced row echelon form (RREF)"
	keyUnique        = "The system has a unique solution."
	keyInfinite      = "The system has infinitely many solutions."
	keyNone          = "The system has no solution."
	keyUnknownOpText = "Unknown operation."
)

var spanish = map[string]string{
	keyInitial:       "Matriz aumentada inicial.",
	keySwap:          "Intercambiar la fila %d y la fila %d.",
	keyScale:         "Multiplicar la fila %d por %s.",
	keyAdd:           "Sumar %s veces la fila %d a la fila %d.",
	keySubtract:      "Restar %s veces la fila %d de la fila %d.",
	keyAddOnce:       "Sumar la fila %d a la fila %d.",
	keySubtractOnce:  "Restar la fila %d de la fila %d.",
	keyComplete:      "La matriz está ahora en %s.",
	keyREF:           "forma escalonada (REF)",
	keyRREF:          "forma escalonada reducida (RREF)",
	keyUnique:        "El sistema tiene solución única.",
	keyInfinite:      "El sistema tiene infinitas soluciones.",
	keyNone:          "El sistema no tiene solución.",
	keyUnknownOpText: "Operación desconocida.",
}

// Supported lists the explanation locales; the first entry is the fallback.
var Supported = []language.Tag{language.English, language.Spanish}

// Explainer renders plain-language explanations in one locale.
// It is immutable and safe for concurrent use.
type Explainer struct {
	tag     language.Tag
	printer *message.Printer
}

// NewExplainer returns an Explainer for the closest supported locale to tag.
func NewExplainer(tag language.Tag) (*Explainer, error) {
	cat, err := buildCatalog()
	if err != nil {
		return nil, fmt.Errorf("notation: build catalog: %w", err)
	}
	_, idx, _ := language.NewMatcher(Supported).Match(tag)
	best := Supported[idx]

	return &Explainer{
		tag:     best,
		printer: message.NewPrinter(best, message.Catalog(cat)),
	}, nil
}

// ParseLocale resolves a BCP 47 string such as "es-MX" to a supported locale.
func ParseLocale(s string) (language.Tag, error) {
	tag, err := language.Parse(s)
	if err != nil {
		return language.Und, fmt.Errorf("notation: parse locale %q: %w", s, err)
	}
	_, idx, _ := language.NewMatcher(Supported).Match(tag)

	return Supported[idx], nil
}

// Default returns the English explainer.
func Default() *Explainer { return defaultExplainer }

var defaultExplainer = mustExplainer(language.English)

func mustExplainer(tag language.Tag) *Explainer {
	e, err := NewExplainer(tag)
	if err != nil {
		panic(err)
	}

	return e
}

func buildCatalog() (*catalog.Builder, error) {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, es := range spanish {
		if err := b.SetString(language.English, key, key); err != nil {
			return nil, err
		}
		if err := b.SetString(language.Spanish, key, es); err != nil {
			return nil, err
		}
	}

	return b, nil
}

// Locale returns the resolved locale.
func (e *Explainer) Locale() language.Tag { return e.tag }

// Initial explains the first snapshot.
func (e *Explainer) Initial() string { return e.printer.Sprintf(keyInitial) }

// Operation explains op with 1-based row numbers.
func (e *Explainer) Operation(op matrix.RowOperation) string {
	switch o := op.(type) {
	case matrix.Swap:
		return e.printer.Sprintf(keySwap, o.Row1+1, o.Row2+1)
	case matrix.Scale:
		return e.printer.Sprintf(keyScale, o.Row+1, FormatScalar(o.Scalar))
	case matrix.AddMultiple:
		mag := FormatScalar(math.Abs(o.Scalar))
		switch {
		case o.Scalar < 0 && mag == "1":
			return e.printer.Sprintf(keySubtractOnce, o.Source+1, o.Target+1)
		case o.Scalar < 0:
			return e.printer.Sprintf(keySubtract, mag, o.Source+1, o.Target+1)
		case mag == "1":
			return e.printer.Sprintf(keyAddOnce, o.Source+1, o.Target+1)
		default:
			return e.printer.Sprintf(keyAdd, mag, o.Source+1, o.Target+1)
		}
	default:
		return e.printer.Sprintf(keyUnknownOpText)
	}
}

// Complete names the achieved form.
func (e *Explainer) Complete(reduced bool) string {
	form := keyREF
	if reduced {
		form = keyRREF
	}

	return e.printer.Sprintf(keyComplete, e.printer.Sprintf(form))
}

// Outcome describes a classification.
func (e *Explainer) Outcome(k solution.Kind) string {
	switch k {
	case solution.Unique:
		return e.printer.Sprintf(keyUnique)
	case solution.Infinite:
		return e.printer.Sprintf(keyInfinite)
	default:
		return e.printer.Sprintf(keyNone)
	}
}

// Explain is Default().Operation(op).
func Explain(op matrix.RowOperation) string { return defaultExplainer.Operation(op) }
