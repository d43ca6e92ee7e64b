// Package bundle holds the user-visible message texts. Every problem message
// and inspection label is looked up here by key.
package bundle

import (
	"fmt"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys.
const (
	InspectionDisplayName = "inspection.lombok.display.name"
	InspectionGroup       = "inspection.lombok.group"
	InspectionShortName   = "inspection.lombok.short.name"

	DefaultConstructorMissing = "inspection.default.constructor.missing"

	ValNoInitializer    = "inspection.val.no.initializer"
	ValNullInitializer  = "inspection.val.null.initializer"
	ValArrayInitializer = "inspection.val.array.initializer"
	ValSelfReference    = "inspection.val.self.reference"
	ValParamNotForEach  = "inspection.val.param.not.foreach"

	EqualsHashCodeBothExist = "inspection.equals.hashcode.both.exist"
	EqualsHashCodeOneExists = "inspection.equals.hashcode.one.exists"
	EqualsHashCodeOfExclude = "inspection.equals.hashcode.of.exclude"
	UnknownField            = "inspection.unknown.field"
	SingularNotCollection   = "inspection.singular.not.collection"
	NoArgsConstructorExists = "inspection.noargs.constructor.exists"
)

var english = map[string]string{
	InspectionDisplayName: "Lombok annotations inspection",
	InspectionGroup:       "Probable bugs",
	InspectionShortName:   "Lombok",

	DefaultConstructorMissing: "Default constructor doesn't exist",

	ValNoInitializer:    "'%s' on a local variable requires an initializer expression",
	ValNullInitializer:  "variable initializer is 'null'",
	ValArrayInitializer: "'%s' is not compatible with array initializer expressions. Use the full form (new int[] { ... } instead of just { ... })",
	ValSelfReference:    "'%s' cannot infer the type of '%s' from an initializer that references it",
	ValParamNotForEach:  "'%s' works only on local variables and on for-each loops",

	EqualsHashCodeBothExist: "Not generating equals and hashCode: A method with one of those names already exists. (Either both or none of these methods will be generated).",
	EqualsHashCodeOneExists: "Not generating %s: A method with that name already exists",
	EqualsHashCodeOfExclude: "exclude and of are mutually exclusive; the 'exclude' parameter will be ignored",
	UnknownField:            "The field '%s' does not exist",
	SingularNotCollection:   "Lombok does not know how to create the singular-form builder methods for type '%s'; they won't be generated",
	NoArgsConstructorExists: "Constructor () already defined",
}

// Bundle resolves message keys for one language.
type Bundle struct {
	printer *message.Printer
	keys    map[string]struct{}
}

// New builds a bundle for tag. Messages missing for tag fall back to English.
func New(tag language.Tag) (*Bundle, error) {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	keys := make(map[string]struct{}, len(english))
	for key, msg := range english {
		if err := b.SetString(language.English, key, msg); err != nil {
			return nil, fmt.Errorf("bundle key %s: %w", key, err)
		}
		keys[key] = struct{}{}
	}
	return &Bundle{
		printer: message.NewPrinter(tag, message.Catalog(b)),
		keys:    keys,
	}, nil
}

var (
	defaultOnce   sync.Once
	defaultBundle *Bundle
)

// Default returns the shared English bundle.
func Default() *Bundle {
	defaultOnce.Do(func() {
		b, err := New(language.English)
		if err != nil {
			panic(err)
		}
		defaultBundle = b
	})
	return defaultBundle
}

// Has reports whether key is known.
func (b *Bundle) Has(key string) bool {
	_, ok := b.keys[key]
	return ok
}

// Message formats the message for key. An unknown key renders as "!key!".
func (b *Bundle) Message(key string, args ...any) string {
	if !b.Has(key) {
		return "!" + key + "!"
	}
	return b.printer.Sprintf(key, args...)
}

// MessageOrDefault formats key, or def when key is unknown.
func (b *Bundle) MessageOrDefault(key, def string, args ...any) string {
	if !b.Has(key) {
		return b.printer.Sprintf(def, args...)
	}
	return b.printer.Sprintf(key, args...)
}

// Message formats key with the default bundle.
func Message(key string, args ...any) string {
	return Default().Message(key, args...)
}

// MessageOrDefault formats key with the default bundle, or def when unknown.
func MessageOrDefault(key, def string, args ...any) string {
	return Default().MessageOrDefault(key, def, args...)
}
