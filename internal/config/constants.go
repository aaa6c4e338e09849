package config

const SourceFileExt = ".lol"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".lol", ".lols"}

// Version is the compiler version reported by `lolc version`.
const Version = "0.4.0"

// LanguageVersion is the only LOLCODE version accepted after HAI.
const LanguageVersion = "1.2"

// Implicit result variable
const (
	ImplicitVarName = "IT"
	EntryScopeName  = "main"
	EntryFuncName   = "main"
)

// Foreign routine names. The C runtime and the reference VM both implement
// exactly this set.
const (
	PrintStringFunc   = "print_string"
	PrendFunc         = "prend"
	ReadStringFunc    = "read_string"
	IntToStringFunc   = "int_to_string"
	FloatToStringFunc = "float_to_string"
	TroofToStringFunc = "troof_to_string"
	StringToIntFunc   = "string_to_int"
	StringToFloatFunc = "string_to_float"
	FloatToIntFunc    = "float_to_int"
	IntToFloatFunc    = "int_to_float"
)

// ForeignRoutines lists every foreign routine with its stack effect
// (values popped, values pushed).
var ForeignRoutines = map[string][2]int{
	PrintStringFunc:   {2, 0},
	PrendFunc:         {0, 0},
	ReadStringFunc:    {2, 0},
	IntToStringFunc:   {2, 0},
	FloatToStringFunc: {2, 0},
	TroofToStringFunc: {2, 0},
	StringToIntFunc:   {2, 1},
	StringToFloatFunc: {2, 1},
	FloatToIntFunc:    {1, 1},
	IntToFloatFunc:    {1, 1},
}

// Yarn buffer sizes (in cells)
const (
	// ConvertedYarnSize is the capacity of a YARN produced by MAEK.
	ConvertedYarnSize = 32
	// InputYarnSize is the capacity of a YARN filled by GIMMEH.
	InputYarnSize = 128
)

// Default machine budgets
const (
	DefaultStackSize = 4096
	DefaultHeapSize  = 65536
)

// Build defaults
const (
	DefaultTarget   = "c"
	DefaultOutput   = "main"
	DefaultCC       = "cc"
	DefaultCacheDir = ".lolc"
	ConfigFileName  = "lolc.yaml"
)

// DefaultCFlags are passed to the C compiler before the output flags.
var DefaultCFlags = []string{"-O2"}
