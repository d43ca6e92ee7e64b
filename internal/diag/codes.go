package diag

import "fmt"

type Code uint16

const (
	UnknownCode Code = 0

	// type-inference declarations
	ValInfo             Code = 1000
	ValNoInitializer    Code = 1001
	ValNullInitializer  Code = 1002
	ValArrayInitializer Code = 1003
	ValSelfReference    Code = 1004
	ValParamNotForEach  Code = 1005

	// constructor delegation
	CtorInfo           Code = 2000
	CtorDefaultMissing Code = 2001

	// annotation analyzers
	AnnInfo                  Code = 3000
	AnnEqualsHashCodeExists  Code = 3001
	AnnOfAndExclude          Code = 3002
	AnnUnknownField          Code = 3003
	AnnSingularNotCollection Code = 3004
	AnnNoArgsCtorExists      Code = 3005

	// model loading
	PrjInfo          Code = 5000
	PrjInvalidModel  Code = 5001
	PrjBadTypeSyntax Code = 5002
	PrjDuplicateType Code = 5003
	PrjCyclicType    Code = 5004
	PrjUnknownKey    Code = 5005
)

var codeDescription = map[Code]string{
	UnknownCode:              "Unknown problem",
	ValInfo:                  "Type inference information",
	ValNoInitializer:         "Inferred variable without initializer",
	ValNullInitializer:       "Inferred variable initialized with null",
	ValArrayInitializer:      "Inferred variable initialized with array initializer",
	ValSelfReference:         "Inferred variable references itself",
	ValParamNotForEach:       "Inferred parameter outside for-each",
	CtorInfo:                 "Constructor information",
	CtorDefaultMissing:       "Default constructor doesn't exist",
	AnnInfo:                  "Annotation information",
	AnnEqualsHashCodeExists:  "equals/hashCode already present",
	AnnOfAndExclude:          "Both 'of' and 'exclude' are set",
	AnnUnknownField:          "Unknown field name",
	AnnSingularNotCollection: "@Singular on a non-collection field",
	AnnNoArgsCtorExists:      "No-args constructor already present",
	PrjInfo:                  "Model information",
	PrjInvalidModel:          "Invalid declaration model",
	PrjBadTypeSyntax:         "Malformed type",
	PrjDuplicateType:         "Duplicate type declaration",
	PrjCyclicType:            "Cyclic inheritance",
	PrjUnknownKey:            "Unknown model key",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("VAL%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("CTR%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("ANN%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
