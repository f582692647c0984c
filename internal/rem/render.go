package rem

// Assemble renders the declarations emitted for one property.
// In px-rem mode the px fallback comes first and the rem declaration second,
// so engines that understand rem take the later one.
func Assemble(property string, original, converted Value, ctx Context) []string {
	remLine := declaration(property, converted)
	if ctx.Mode != ModePxRem {
		return []string{remLine}
	}

	pxLine := declaration(property, FallbackValue(original, ctx))
	return []string{pxLine, remLine}
}

// Declare parses, converts and assembles a single property
func Declare(property, expr string, opts Options) []string {
	ctx := opts.Context(property)
	original := Parse(expr)
	return Assemble(property, original, ConvertValue(original, ctx), ctx)
}

// DeclareAll assembles several properties in their given order, each with
// its own rounding policy
func DeclareAll(decls []Declaration, opts Options) []string {
	converted := ConvertDeclarations(decls, opts)

	var lines []string
	for i, decl := range decls {
		ctx := opts.Context(decl.Property)
		lines = append(lines, Assemble(decl.Property, decl.Value, converted[i].Value, ctx)...)
	}
	return lines
}

func declaration(property string, v Value) string {
	return property + ": " + v.String() + ";"
}
